package service

import (
	"context"
	"errors"
	"testing"

	"rawabit/internal/cache"
	"rawabit/internal/models"
	"rawabit/internal/repository"
	"rawabit/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_ListReadAndCount(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	env := newTestEnv(t)
	svc := env.notifications
	ctx := context.Background()

	me := testutil.CreateUser(t, env.db, "amal")
	other := testutil.CreateUser(t, env.db, "bilal")

	for i := 0; i < 3; i++ {
		svc.Notify(ctx, models.NewNotification(models.NotificationComment, me.ID, other, models.KindPost.Target(), 1, nil))
	}

	count, err := svc.UnreadCount(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.True(t, mr.Exists(cache.UnreadKey(me.ID)))

	page, err := svc.List(ctx, me.ID, false, models.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "totalNotifications", page.Pagination.TotalKey)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	read, err := svc.SetRead(ctx, &page.Items[0], true)
	require.NoError(t, err)
	assert.True(t, read.Read)
	assert.False(t, mr.Exists(cache.UnreadKey(me.ID)), "marking read drops the cached count")

	count, err = svc.UnreadCount(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	unread, err := svc.List(ctx, me.ID, true, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, unread.Items, 2)

	changed, err := svc.MarkAllRead(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	count, err = svc.UnreadCount(ctx, me.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationService_NotifySkipsSelf(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, "amal")

	env.notifications.Notify(context.Background(), models.NewNotification(models.NotificationReaction, me.ID, me, models.KindPost.Target(), 1, nil))
	assert.Zero(t, env.countNotifications(t, me.ID, models.NotificationReaction))
}

type failingNotificationRepo struct {
	repository.NotificationRepository
}

func (failingNotificationRepo) Create(context.Context, *models.Notification) error {
	return models.NewInternalError(errors.New("insert failed"))
}

func TestNotificationService_NotifyFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	svc := NewNotificationService(failingNotificationRepo{})
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), &models.Notification{UserID: 1, Type: models.NotificationShare})
	})
}
