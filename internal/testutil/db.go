// Package testutil provides shared fixtures for backend tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"rawabit/internal/database"
	"rawabit/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewTestDB returns a migrated in-memory SQLite database private to t. The
// shared-cache DSN lets every pooled connection see the same schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts a user with a deterministic email and returns it.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hashed",
		FirstName: strings.ToUpper(username[:1]) + username[1:],
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateContent inserts a content item authored by authorID.
func CreateContent(t *testing.T, db *gorm.DB, kind models.ContentKind, authorID uint, title string) *models.Content {
	t.Helper()
	c := &models.Content{Kind: kind, Title: title, AuthorID: authorID}
	require.NoError(t, db.Create(c).Error)
	return c
}
