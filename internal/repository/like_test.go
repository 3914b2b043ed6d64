package repository

import (
	"context"
	"testing"

	"rawabit/internal/models"
	"rawabit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionRepository_UpsertLastWriteWins(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "yara")
	kind := models.TargetKind(models.KindPost)

	prev, err := repo.Upsert(ctx, &models.Like{UserID: u.ID, TargetKind: kind, TargetID: 7, Emoji: "👍"})
	require.NoError(t, err)
	assert.Empty(t, prev)

	prev, err = repo.Upsert(ctx, &models.Like{UserID: u.ID, TargetKind: kind, TargetID: 7, Emoji: "❤️"})
	require.NoError(t, err)
	assert.Equal(t, "👍", prev)

	var n int64
	db.Model(&models.Like{}).Where("user_id = ?", u.ID).Count(&n)
	assert.EqualValues(t, 1, n)

	emoji, err := repo.UserEmoji(ctx, u.ID, kind, 7)
	require.NoError(t, err)
	assert.Equal(t, "❤️", emoji)

	removed, err := repo.Delete(ctx, u.ID, kind, 7)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.Delete(ctx, u.ID, kind, 7)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestReactionRepository_RowsSingleBatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "adel")
	b := testutil.CreateUser(t, db, "basma")
	word := models.TargetKind(models.LexiconWord)

	for _, l := range []models.Like{
		{UserID: a.ID, TargetKind: word, TargetID: 1, Emoji: "👍"},
		{UserID: b.ID, TargetKind: word, TargetID: 1, Emoji: "👍"},
		{UserID: a.ID, TargetKind: word, TargetID: 2, Emoji: "😮"},
		{UserID: a.ID, TargetKind: models.TargetKind(models.LexiconSentence), TargetID: 1, Emoji: "😢"},
	} {
		l := l
		require.NoError(t, db.Create(&l).Error)
	}

	rows, err := repo.Rows(ctx, word, []uint{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.NotEmpty(t, r.Username)
		assert.Contains(t, []uint{1, 2}, r.TargetID)
	}

	rows, err = repo.Rows(ctx, word, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
