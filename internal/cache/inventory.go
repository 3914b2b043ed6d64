package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	ContentKeyPrefix   = "content:%s:%d"
	ReactionsKeyPrefix = "reactions:%s:%d"
	UnreadKeyPrefix    = "notifications:unread:%d"
)

const (
	UserTTL      = 5 * time.Minute
	ContentTTL   = 10 * time.Minute
	ReactionsTTL = 2 * time.Minute
	UnreadTTL    = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ContentKey(kind string, id uint) string {
	return fmt.Sprintf(ContentKeyPrefix, kind, id)
}

// ReactionsKey is the per-target reaction summary key.
func ReactionsKey(targetKind string, id uint) string {
	return fmt.Sprintf(ReactionsKeyPrefix, targetKind, id)
}

func UnreadKey(userID uint) string {
	return fmt.Sprintf(UnreadKeyPrefix, userID)
}

// Invalidate deletes keys, ignoring errors.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateContent drops a content item and its reaction summary.
func InvalidateContent(ctx context.Context, kind string, id uint) {
	Invalidate(ctx, ContentKey(kind, id), ReactionsKey(kind, id))
}

func InvalidateReactions(ctx context.Context, targetKind string, id uint) {
	Invalidate(ctx, ReactionsKey(targetKind, id))
}

func InvalidateUnread(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadKey(userID))
}
