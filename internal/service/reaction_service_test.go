package service

import (
	"context"
	"testing"

	"rawabit/internal/cache"
	"rawabit/internal/featureflags"
	"rawabit/internal/models"
	"rawabit/internal/repository"
	"rawabit/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldReactions(t *testing.T) {
	t.Parallel()

	rows := []models.ReactionRow{
		{TargetID: 1, Emoji: "❤️", UserID: 10, Username: "amal", FirstName: "Amal"},
		{TargetID: 1, Emoji: "👍", UserID: 11, Username: "bilal"},
		{TargetID: 1, Emoji: "❤️", UserID: 12, Username: "camilia", FirstName: "Camilia", LastName: "Nasser"},
		{TargetID: 2, Emoji: "😂", UserID: 10, Username: "amal"},
		{TargetID: 0, Emoji: "👍", UserID: 13, Username: "orphan"},
		{TargetID: 99, Emoji: "👍", UserID: 14, Username: "stray"},
	}

	got := FoldReactions([]uint{1, 2, 3}, rows)
	require.Len(t, got, 3)

	first := got[1]
	assert.Equal(t, 3, first.Total)
	require.Len(t, first.Summary, 2)
	assert.Equal(t, "❤️", first.Summary[0].Emoji)
	assert.Equal(t, 2, first.Summary[0].Count)
	assert.Equal(t, "👍", first.Summary[1].Emoji)
	assert.Equal(t, "Camilia Nasser", first.ByEmoji["❤️"][1].DisplayName)
	assert.Equal(t, "bilal", first.ByEmoji["👍"][0].DisplayName, "display name falls back to username")

	assert.Equal(t, 1, got[2].Total)
	assert.Equal(t, 0, got[3].Total)
	assert.NotNil(t, got[3].Summary)
	assert.Empty(t, got[3].ByEmoji)

	for id, sum := range got {
		n := 0
		for _, s := range sum.Summary {
			n += s.Count
			assert.Len(t, sum.ByEmoji[s.Emoji], s.Count)
		}
		assert.Equal(t, sum.Total, n, "summary counts must add up to total for %d", id)
	}
}

func TestFoldReactions_TiesBreakByEmoji(t *testing.T) {
	t.Parallel()
	rows := []models.ReactionRow{
		{TargetID: 1, Emoji: "b", UserID: 1},
		{TargetID: 1, Emoji: "a", UserID: 2},
	}
	sum := FoldReactions([]uint{1}, rows)[1]
	require.Len(t, sum.Summary, 2)
	assert.Equal(t, "a", sum.Summary[0].Emoji)
	assert.Equal(t, "b", sum.Summary[1].Emoji)
}

func newReactionService(env *testEnv, flags *featureflags.Manager) *ReactionService {
	return NewReactionService(env.reactions, env.contents, env.lexicon, env.users, env.notifications, flags)
}

func TestReactionService_ReactReplaceAndUnreact(t *testing.T) {
	env := newTestEnv(t)
	svc := newReactionService(env, nil)
	ctx := context.Background()

	author := testutil.CreateUser(t, env.db, "amal")
	fan := testutil.CreateUser(t, env.db, "bilal")
	post := testutil.CreateContent(t, env.db, models.KindPost, author.ID, "أول منشور")
	target := models.KindPost.Target()

	sum, err := svc.React(ctx, fan.ID, target, post.ID, "❤️")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, int64(1), env.countNotifications(t, author.ID, models.NotificationReaction))

	sum, err = svc.React(ctx, fan.ID, target, post.ID, "😂")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total, "reacting again replaces the emoji")
	require.Len(t, sum.Summary, 1)
	assert.Equal(t, "😂", sum.Summary[0].Emoji)
	assert.Equal(t, int64(1), env.countNotifications(t, author.ID, models.NotificationReaction), "changing the emoji does not notify again")

	_, err = svc.React(ctx, author.ID, target, post.ID, "👍")
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.countNotifications(t, author.ID, models.NotificationReaction), "reacting to your own item does not notify")

	mine, err := svc.Mine(ctx, fan.ID, target, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "😂", mine)

	sum, err = svc.Unreact(ctx, fan.ID, target, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total)

	sum, err = svc.Unreact(ctx, fan.ID, target, post.ID)
	require.NoError(t, err, "removing a missing reaction is a no-op")
	assert.Equal(t, 1, sum.Total)
}

func TestReactionService_ValidatesEmojiAndTarget(t *testing.T) {
	env := newTestEnv(t)
	svc := newReactionService(env, nil)
	ctx := context.Background()

	u := testutil.CreateUser(t, env.db, "amal")
	post := testutil.CreateContent(t, env.db, models.KindPost, u.ID, "post")

	for _, emoji := range []string{"", "   ", "this-is-way-too-long-for-an-emoji"} {
		_, err := svc.React(ctx, u.ID, models.KindPost.Target(), post.ID, emoji)
		assertStatus(t, err, 400)
	}

	_, err := svc.React(ctx, u.ID, models.KindPost.Target(), 9999, "👍")
	assertStatus(t, err, 404)

	_, err = svc.React(ctx, u.ID, models.KindBook.Target(), post.ID, "👍")
	assertStatus(t, err, 404)

	_, err = svc.Unreact(ctx, u.ID, models.KindPost.Target(), 9999)
	assertStatus(t, err, 404)
}

func TestReactionService_LexiconTargets(t *testing.T) {
	env := newTestEnv(t)
	svc := newReactionService(env, nil)
	ctx := context.Background()

	u := testutil.CreateUser(t, env.db, "amal")
	word := &models.LexiconEntry{Kind: models.LexiconWord, Text: "سلام", AuthorID: u.ID, Language: "ar"}
	require.NoError(t, env.db.Create(word).Error)

	sum, err := svc.React(ctx, u.ID, models.LexiconWord.Target(), word.ID, "🌟")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total)

	_, err = svc.React(ctx, u.ID, models.LexiconSentence.Target(), word.ID, "🌟")
	assertStatus(t, err, 404)
}

type countingReactionRepo struct {
	repository.ReactionRepository
	rowsCalls int
	lastIDs   []uint
}

func (r *countingReactionRepo) Rows(ctx context.Context, kind models.TargetKind, ids []uint) ([]models.ReactionRow, error) {
	r.rowsCalls++
	r.lastIDs = append([]uint(nil), ids...)
	return r.ReactionRepository.Rows(ctx, kind, ids)
}

func TestReactionService_SummarizeUsesCacheWhenFlagged(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	env := newTestEnv(t)
	repo := &countingReactionRepo{ReactionRepository: env.reactions}
	svc := NewReactionService(repo, env.contents, env.lexicon, env.users, env.notifications, featureflags.NewManager("reaction_cache=on"))
	ctx := context.Background()

	u := testutil.CreateUser(t, env.db, "amal")
	p1 := testutil.CreateContent(t, env.db, models.KindPost, u.ID, "one")
	p2 := testutil.CreateContent(t, env.db, models.KindPost, u.ID, "two")
	target := models.KindPost.Target()

	_, err := svc.React(ctx, u.ID, target, p1.ID, "👍")
	require.NoError(t, err)
	repo.rowsCalls = 0

	first, err := svc.Summarize(ctx, target, []uint{p1.ID, p2.ID, p1.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, first[p1.ID].Total)
	assert.Equal(t, 0, first[p2.ID].Total)
	assert.Equal(t, 1, repo.rowsCalls, "one batched query for all misses")
	assert.True(t, mr.Exists(cache.ReactionsKey(string(target), p1.ID)))

	second, err := svc.Summarize(ctx, target, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.rowsCalls, "second call is served from cache")
	assert.Equal(t, first[p1.ID].Total, second[p1.ID].Total)
	assert.NotNil(t, second[p2.ID].Summary)

	_, err = svc.Unreact(ctx, u.ID, target, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.rowsCalls, "unreact invalidates and reloads the target")
	assert.Equal(t, []uint{p1.ID}, repo.lastIDs)

	third, err := svc.Summarize(ctx, target, []uint{p1.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, third[p1.ID].Total)
}

func TestReactionService_SummarizeWithoutFlagSkipsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	env := newTestEnv(t)
	repo := &countingReactionRepo{ReactionRepository: env.reactions}
	svc := NewReactionService(repo, env.contents, env.lexicon, env.users, env.notifications, featureflags.NewManager("reaction_cache=off"))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Summarize(ctx, models.KindPost.Target(), []uint{1, 2})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, repo.rowsCalls)
	assert.Empty(t, mr.Keys())
}
