package repository

import (
	"context"
	"testing"
	"time"

	"rawabit/internal/models"
	"rawabit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	user1 := testutil.CreateUser(t, db, "user1")
	user2 := testutil.CreateUser(t, db, "user2")
	key := models.DirectConversationKey(user2.ID, user1.ID)

	var conv *models.Conversation

	t.Run("GetOrCreateConversation is idempotent", func(t *testing.T) {
		var err error
		conv, err = repo.GetOrCreateConversation(ctx,
			&models.Conversation{Kind: models.ConversationDirect, Key: key, CreatedBy: user1.ID},
			[]uint{user1.ID, user2.ID})
		require.NoError(t, err)
		assert.NotZero(t, conv.ID)
		assert.Len(t, conv.Participants, 2)

		again, err := repo.GetOrCreateConversation(ctx,
			&models.Conversation{Kind: models.ConversationDirect, Key: key, CreatedBy: user2.ID},
			[]uint{user2.ID, user1.ID})
		require.NoError(t, err)
		assert.Equal(t, conv.ID, again.ID)
		assert.Len(t, again.Participants, 2)

		byKey, err := repo.GetConversationByKey(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, conv.ID, byKey.ID)
	})

	t.Run("Membership", func(t *testing.T) {
		ok, err := repo.IsParticipant(ctx, conv.ID, user1.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = repo.IsParticipant(ctx, conv.ID, 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Messages newest page in chronological order", func(t *testing.T) {
		base := time.Now().Add(-time.Hour)
		for i, body := range []string{"one", "two", "three"} {
			msg := &models.Message{ConversationID: conv.ID, SenderID: user1.ID, Body: body, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
			require.NoError(t, repo.CreateMessage(ctx, msg))
		}

		page, err := models.NewPageRequest(1, 2)
		require.NoError(t, err)
		msgs, total, err := repo.ListMessages(ctx, conv.ID, page)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, msgs, 2)
		assert.Equal(t, "two", msgs[0].Body)
		assert.Equal(t, "three", msgs[1].Body)

		got, err := repo.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastMessageAt)
	})

	t.Run("Last messages and unread counts", func(t *testing.T) {
		last, err := repo.LastMessages(ctx, []uint{conv.ID})
		require.NoError(t, err)
		assert.Equal(t, "three", last[conv.ID].Body)

		unread, err := repo.UnreadCounts(ctx, user2.ID, []uint{conv.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 3, unread[conv.ID])

		own, err := repo.UnreadCounts(ctx, user1.ID, []uint{conv.ID})
		require.NoError(t, err)
		assert.Zero(t, own[conv.ID])

		require.NoError(t, repo.MarkRead(ctx, conv.ID, user2.ID, time.Now()))
		unread, err = repo.UnreadCounts(ctx, user2.ID, []uint{conv.ID})
		require.NoError(t, err)
		assert.Zero(t, unread[conv.ID])

		var readCount int64
		db.Model(&models.Message{}).Where("conversation_id = ? AND is_read = ?", conv.ID, true).Count(&readCount)
		assert.EqualValues(t, 3, readCount)
	})

	t.Run("ListUserConversations filters by kind", func(t *testing.T) {
		group, err := repo.GetOrCreateConversation(ctx,
			&models.Conversation{Kind: models.ConversationGroup, Key: models.GroupConversationKey}, []uint{user1.ID})
		require.NoError(t, err)

		direct, err := repo.ListUserConversations(ctx, user1.ID, models.ConversationDirect)
		require.NoError(t, err)
		require.Len(t, direct, 1)
		assert.Equal(t, conv.ID, direct[0].ID)

		groups, err := repo.ListUserConversations(ctx, user1.ID, models.ConversationGroup)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, group.ID, groups[0].ID)
	})
}
