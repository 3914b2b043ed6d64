package service

import (
	"testing"

	"rawabit/internal/models"
	"rawabit/internal/repository"
	"rawabit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires real repositories over an in-memory SQLite database.
type testEnv struct {
	db            *gorm.DB
	users         repository.UserRepository
	contents      repository.ContentRepository
	lexicon       repository.LexiconRepository
	reactions     repository.ReactionRepository
	comments      repository.CommentRepository
	shares        repository.ShareRepository
	friends       repository.FriendRepository
	chat          repository.ChatRepository
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &testEnv{
		db:            db,
		users:         repository.NewUserRepository(db),
		contents:      repository.NewContentRepository(db),
		lexicon:       repository.NewLexiconRepository(db),
		reactions:     repository.NewReactionRepository(db),
		comments:      repository.NewCommentRepository(db),
		shares:        repository.NewShareRepository(db),
		friends:       repository.NewFriendRepository(db),
		chat:          repository.NewChatRepository(db),
		notifications: NewNotificationService(repository.NewNotificationRepository(db)),
	}
}

func (e *testEnv) countNotifications(t *testing.T, userID uint, typ models.NotificationType) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, typ).
		Count(&n).Error)
	return n
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, status, models.HTTPStatus(err), "unexpected error: %v", err)
}
