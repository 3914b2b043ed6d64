package service

import (
	"context"
	"testing"

	"rawabit/internal/models"
	"rawabit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeContent(t *testing.T) {
	t.Parallel()

	full := func(kind models.ContentKind) *models.Content {
		return &models.Content{
			Kind:            kind,
			Price:           ptr(10.0),
			Pages:           ptr(300),
			DurationSeconds: ptr(90),
			TargetAmount:    ptr(5000.0),
			Answered:        ptr(true),
		}
	}

	product := full(models.KindProduct)
	NormalizeContent(product)
	assert.NotNil(t, product.Price)
	assert.Equal(t, "SAR", product.Currency)
	assert.Nil(t, product.Pages)
	assert.Nil(t, product.DurationSeconds)
	assert.Nil(t, product.TargetAmount)
	assert.Nil(t, product.Answered)

	book := full(models.KindBook)
	NormalizeContent(book)
	assert.Nil(t, book.Price)
	assert.Equal(t, 300, *book.Pages)

	video := full(models.KindVideo)
	NormalizeContent(video)
	assert.Equal(t, 90, *video.DurationSeconds)

	idea := full(models.KindIdea)
	NormalizeContent(idea)
	assert.Equal(t, 5000.0, *idea.TargetAmount)

	question := &models.Content{Kind: models.KindQuestion}
	NormalizeContent(question)
	require.NotNil(t, question.Answered)
	assert.False(t, *question.Answered)
}

func TestContentService_CreateGetUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.contents)
	ctx := context.Background()

	author := testutil.CreateUser(t, env.db, "amal")

	c, err := svc.Create(ctx, author.ID, models.KindBook, ContentInput{
		Title:    "  ألف ليلة وليلة ",
		Body:     "حكايات",
		Category: "أدب",
		Pages:    ptr(820),
		Price:    ptr(40.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "ألف ليلة وليلة", c.Title)
	assert.Equal(t, "amal", c.Author.Username)
	require.NotNil(t, c.Pages)
	assert.Nil(t, c.Price, "books carry no price")

	got, err := svc.Get(ctx, models.KindBook, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
	got, err = svc.Get(ctx, models.KindBook, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)

	_, err = svc.Get(ctx, models.KindPost, c.ID)
	assertStatus(t, err, 404)

	updated, err := svc.Update(ctx, got, ContentPatch{Title: ptr("كليلة ودمنة"), Pages: ptr(200)})
	require.NoError(t, err)
	assert.Equal(t, "كليلة ودمنة", updated.Title)
	assert.Equal(t, "حكايات", updated.Body, "omitted fields are kept")
	assert.Equal(t, 200, *updated.Pages)

	require.NoError(t, svc.Delete(ctx, updated))
	_, err = svc.Get(ctx, models.KindBook, c.ID)
	assertStatus(t, err, 404)
}

func TestContentService_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.contents)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "amal")

	_, err := svc.Create(ctx, author.ID, models.KindPost, ContentInput{Title: "   "})
	assertStatus(t, err, 400)
	_, err = svc.Create(ctx, author.ID, models.KindAd, ContentInput{Title: "sale", Price: ptr(-1.0)})
	assertStatus(t, err, 400)

	c, err := svc.Create(ctx, author.ID, models.KindPost, ContentInput{Title: "ok"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, c, ContentPatch{Title: ptr("")})
	assertStatus(t, err, 400)
}

func TestContentService_ListPagination(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.contents)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "amal")

	for i := 0; i < 25; i++ {
		testutil.CreateContent(t, env.db, models.KindPost, author.ID, "post")
	}
	testutil.CreateContent(t, env.db, models.KindIdea, author.ID, "idea")

	page, err := svc.List(ctx, models.ContentFilter{Kind: models.KindPost}, models.PageRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPreviousPage)

	body := page.Body()
	meta := body["pagination"].(map[string]interface{})
	assert.Equal(t, int64(25), meta["totalPosts"])
}
