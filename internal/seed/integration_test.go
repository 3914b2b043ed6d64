//go:build integration

package seed

import (
	"net/url"
	"os"
	"strings"
	"testing"

	"rawabit/internal/config"
	"rawabit/internal/database"
	"rawabit/internal/models"

	"github.com/stretchr/testify/require"
)

func parseDatabaseURLToConfig(dsn string) (*config.Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, err
	}
	password := ""
	if u.User != nil {
		password, _ = u.User.Password()
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	return &config.Config{
		DBDriver:       "postgres",
		DBHost:         u.Hostname(),
		DBPort:         port,
		DBUser:         u.User.Username(),
		DBPassword:     password,
		DBName:         strings.TrimPrefix(u.Path, "/"),
		DBSSLMode:      "disable",
		DBMaxOpenConns: 5,
		DBMaxIdleConns: 2,
		Env:            "test",
		DBSchemaMode:   database.SchemaModeAuto,
	}, nil
}

func TestIntegration_SeedPostgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration seed test")
	}
	cfg, err := parseDatabaseURLToConfig(dsn)
	require.NoError(t, err)

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	opts := DefaultOptions()
	opts.NumUsers = 10
	opts.ItemsPerKind = 3
	opts.SkipBcrypt = true
	sum, err := NewSeeder(db, opts).Run()
	require.NoError(t, err)

	var cnt int64
	require.NoError(t, db.Model(&models.Content{}).Count(&cnt).Error)
	require.EqualValues(t, 3*len(models.ContentKinds), cnt)
	require.Equal(t, 10, sum.Users)
}
