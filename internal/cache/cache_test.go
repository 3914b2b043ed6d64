package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	Total int            `json:"total"`
	Emoji map[string]int `json:"emoji"`
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideMissThenHit(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()
	key := ReactionsKey("post", 7)

	calls := 0
	fetch := func(dest *summary) func() error {
		return func() error {
			calls++
			*dest = summary{Total: 2, Emoji: map[string]int{"👍": 2}}
			return nil
		}
	}

	var first summary
	hit, err := Aside(ctx, key, &first, time.Minute, fetch(&first))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, first.Total)
	assert.True(t, mr.Exists(key))

	var second summary
	hit, err = Aside(ctx, key, &second, time.Minute, fetch(&second))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	InvalidateReactions(ctx, "post", 7)
	assert.False(t, mr.Exists(key))
}

func TestAsideWithoutClientAlwaysFetches(t *testing.T) {
	SetClient(nil)
	var out summary
	hit, err := Aside(context.Background(), "k", &out, time.Minute, func() error {
		out.Total = 1
		return nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, out.Total)
}

func TestAsideFetchErrorIsNotCached(t *testing.T) {
	mr := setupRedis(t)
	boom := errors.New("db down")
	var out summary
	_, err := Aside(context.Background(), "reactions:book:1", &out, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("reactions:book:1"))
}

func TestAsideRedisDownFallsThrough(t *testing.T) {
	mr := setupRedis(t)
	mr.Close()
	var out summary
	hit, err := Aside(context.Background(), "reactions:idea:3", &out, time.Minute, func() error {
		out.Total = 4
		return nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4, out.Total)
}

func TestInvalidateContentDropsBothKeys(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()
	require.NoError(t, SetJSON(ctx, ContentKey("book", 3), map[string]string{"title": "x"}, time.Minute))
	require.NoError(t, SetJSON(ctx, ReactionsKey("book", 3), summary{Total: 1}, time.Minute))

	InvalidateContent(ctx, "book", 3)
	assert.False(t, mr.Exists("content:book:3"))
	assert.False(t, mr.Exists("reactions:book:3"))
}
