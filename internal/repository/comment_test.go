package repository

import (
	"context"
	"testing"

	"rawabit/internal/models"
	"rawabit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	shares := NewShareRepository(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "commenter")
	target := models.TargetKind(models.KindQuestion)

	c := &models.Comment{UserID: u.ID, TargetKind: target, TargetID: 4, Body: "سؤال جيد"}
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, "commenter", c.User.Username)
	require.NoError(t, repo.Create(ctx, &models.Comment{UserID: u.ID, TargetKind: target, TargetID: 4, Body: "second"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{UserID: u.ID, TargetKind: models.TargetKind(models.KindAd), TargetID: 4, Body: "elsewhere"}))

	page, err := models.NewPageRequest(1, 10)
	require.NoError(t, err)
	list, total, err := repo.ListByTarget(ctx, target, 4, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "سؤال جيد", list[0].Body)

	c.Body = "edited"
	require.NoError(t, repo.Update(ctx, c))
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Body)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.GetByID(ctx, c.ID)
	assert.True(t, models.IsNotFound(err))
	assert.True(t, models.IsNotFound(repo.Delete(ctx, c.ID)))

	require.NoError(t, shares.Create(ctx, &models.Share{UserID: u.ID, TargetKind: target, TargetID: 4}))
	n, err := shares.CountByTarget(ctx, target, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
