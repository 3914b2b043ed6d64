package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"rawabit/internal/models"
	"rawabit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(env *testEnv) *ChatService {
	svc := NewChatService(env.chat, env.users, env.notifications, "")
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	var tick int
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestChatService_DirectMessageRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := newChatService(env)
	ctx := context.Background()

	a := testutil.CreateUser(t, env.db, "amal")
	b := testutil.CreateUser(t, env.db, "bilal")

	msg, conv, err := svc.SendDirect(ctx, a.ID, b.ID, "  مرحباً يا بلال  ")
	require.NoError(t, err)
	assert.Equal(t, models.DirectConversationKey(a.ID, b.ID), conv.Key)
	assert.Equal(t, "مرحباً يا بلال", msg.Body)

	list, err := svc.ListConversations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].OtherUser)
	assert.Equal(t, b.ID, list[0].OtherUser.ID)
	require.NotNil(t, list[0].LastMessage)
	assert.Equal(t, "مرحباً يا بلال", list[0].LastMessage.Body)
	assert.Zero(t, list[0].UnreadCount, "own messages are never unread")

	bList, err := svc.ListConversations(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, bList, 1)
	assert.Equal(t, int64(1), bList[0].UnreadCount)
	assert.Equal(t, int64(1), env.countNotifications(t, b.ID, models.NotificationMessage))

	require.NoError(t, svc.MarkRead(ctx, b.ID, conv.ID))
	bList, err = svc.ListConversations(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, bList[0].UnreadCount)

	again, err := svc.OpenDirect(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID, "the pair shares one conversation regardless of order")
}

func TestChatService_MembershipRequired(t *testing.T) {
	env := newTestEnv(t)
	svc := newChatService(env)
	ctx := context.Background()

	a := testutil.CreateUser(t, env.db, "amal")
	b := testutil.CreateUser(t, env.db, "bilal")
	c := testutil.CreateUser(t, env.db, "camilia")

	_, conv, err := svc.SendDirect(ctx, a.ID, b.ID, "hi")
	require.NoError(t, err)

	_, _, err = svc.SendToConversation(ctx, c.ID, conv.ID, "let me in")
	assertStatus(t, err, 403)
	_, err = svc.Messages(ctx, c.ID, conv.ID, models.PageRequest{Page: 1, Limit: 10})
	assertStatus(t, err, 403)
	assertStatus(t, svc.MarkRead(ctx, c.ID, conv.ID), 403)

	_, _, err = svc.SendToConversation(ctx, b.ID, 9999, "hello?")
	assertStatus(t, err, 404)
}

func TestChatService_MessageValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := newChatService(env)
	ctx := context.Background()

	a := testutil.CreateUser(t, env.db, "amal")
	b := testutil.CreateUser(t, env.db, "bilal")

	_, _, err := svc.SendDirect(ctx, a.ID, b.ID, "   ")
	assertStatus(t, err, 400)
	_, _, err = svc.SendDirect(ctx, a.ID, b.ID, strings.Repeat("ب", maxMessageLength+1))
	assertStatus(t, err, 400)
	_, _, err = svc.SendDirect(ctx, a.ID, a.ID, "me")
	assertStatus(t, err, 400)
	_, _, err = svc.SendDirect(ctx, a.ID, 9999, "ghost")
	assertStatus(t, err, 404)
}

func TestChatService_MessagesPageChronological(t *testing.T) {
	env := newTestEnv(t)
	svc := newChatService(env)
	ctx := context.Background()

	a := testutil.CreateUser(t, env.db, "amal")
	b := testutil.CreateUser(t, env.db, "bilal")

	var convID uint
	for _, body := range []string{"1", "2", "3", "4", "5"} {
		_, conv, err := svc.SendDirect(ctx, a.ID, b.ID, body)
		require.NoError(t, err)
		convID = conv.ID
	}

	page, err := svc.Messages(ctx, b.ID, convID, models.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "4", page.Items[0].Body)
	assert.Equal(t, "5", page.Items[1].Body)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, "totalMessages", page.Pagination.TotalKey)
	assert.True(t, page.Pagination.HasNextPage)
}

func TestChatService_GroupChatAutoJoins(t *testing.T) {
	env := newTestEnv(t)
	svc := newChatService(env)
	ctx := context.Background()

	a := testutil.CreateUser(t, env.db, "amal")
	b := testutil.CreateUser(t, env.db, "bilal")

	empty, err := svc.GroupMessages(ctx, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, conv, err := svc.PostGroupMessage(ctx, a.ID, "السلام عليكم")
	require.NoError(t, err)
	assert.Equal(t, models.GroupConversationKey, conv.Key)
	assert.Equal(t, DefaultGroupTitle, conv.Title)
	_, _, err = svc.PostGroupMessage(ctx, b.ID, "وعليكم السلام")
	require.NoError(t, err)

	page, err := svc.GroupMessages(ctx, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "السلام عليكم", page.Items[0].Body)
	require.NotNil(t, page.Items[1].Sender)
	assert.Equal(t, "bilal", page.Items[1].Sender.Username)

	ok, err := env.chat.IsParticipant(ctx, conv.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := svc.ListConversations(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "the group chat is not a direct conversation")
	assert.Zero(t, env.countNotifications(t, a.ID, models.NotificationMessage))
}

func TestSortConversations(t *testing.T) {
	t.Parallel()
	at := func(min int) *models.Message {
		return &models.Message{ID: uint(min), CreatedAt: time.Date(2024, 1, 1, 0, min, 0, 0, time.UTC)}
	}
	list := []models.ConversationSummary{
		{ConversationID: 1},
		{ConversationID: 2, LastMessage: at(5)},
		{ConversationID: 3, LastMessage: at(30)},
		{ConversationID: 4},
		{ConversationID: 5, LastMessage: at(1), Pinned: true},
	}

	SortConversations(list)

	got := make([]uint, 0, len(list))
	for _, s := range list {
		got = append(got, s.ConversationID)
	}
	assert.Equal(t, []uint{5, 3, 2, 4, 1}, got)
}
