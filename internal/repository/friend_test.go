package repository

import (
	"context"
	"testing"

	"rawabit/internal/models"
	"rawabit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRepository_RequestAcceptRemove(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	x := testutil.CreateUser(t, db, "xena")
	y := testutil.CreateUser(t, db, "yusuf")

	note := &models.Notification{UserID: y.ID, ActorID: &x.ID, Type: models.NotificationFriendRequest, Message: "طلب"}
	req, err := repo.CreateRequest(ctx, x.ID, y.ID, note)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, req.Status)
	assert.NotZero(t, note.ID)

	pending, err := repo.PendingRequest(ctx, x.ID, y.ID)
	require.NoError(t, err)
	require.NotNil(t, pending)

	incoming, err := repo.ListIncoming(ctx, y.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "xena", incoming[0].Sender.Username)

	sent, err := repo.ListSent(ctx, x.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "yusuf", sent[0].Receiver.Username)

	require.NoError(t, repo.AcceptRequest(ctx, x.ID, y.ID, nil))
	for _, pair := range [][2]uint{{x.ID, y.ID}, {y.ID, x.ID}} {
		ok, err := repo.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, ok)
	}

	err = repo.AcceptRequest(ctx, x.ID, y.ID, nil)
	assert.Equal(t, 400, models.HTTPStatus(err), "accepting twice is illegal")

	friends, err := repo.ListFriends(ctx, y.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, x.ID, friends[0].ID)

	require.NoError(t, repo.RemoveFriendship(ctx, y.ID, x.ID))
	for _, pair := range [][2]uint{{x.ID, y.ID}, {y.ID, x.ID}} {
		ok, err := repo.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, ok)
	}
	var reqs int64
	db.Model(&models.FriendRequest{}).Count(&reqs)
	assert.Zero(t, reqs)
}

func TestFriendRepository_DeclineThenResend(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "aziz")
	b := testutil.CreateUser(t, db, "bushra")

	_, err := repo.CreateRequest(ctx, a.ID, b.ID, nil)
	require.NoError(t, err)
	require.NoError(t, repo.DeclineRequest(ctx, a.ID, b.ID))

	pending, err := repo.PendingRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Nil(t, pending)

	req, err := repo.CreateRequest(ctx, a.ID, b.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, req.Status)

	var rows int64
	db.Model(&models.FriendRequest{}).Count(&rows)
	assert.EqualValues(t, 1, rows, "rejected row is re-opened")

	require.NoError(t, repo.CancelRequests(ctx, b.ID, a.ID))
	peers, err := repo.PendingPeerIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, peers)
}

func TestFriendRepository_MutualCandidates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	me := testutil.CreateUser(t, db, "me")
	f1 := testutil.CreateUser(t, db, "friendone")
	f2 := testutil.CreateUser(t, db, "friendtwo")
	both := testutil.CreateUser(t, db, "both")
	one := testutil.CreateUser(t, db, "onlyone")
	pending := testutil.CreateUser(t, db, "pending")

	befriend := func(a, b uint) {
		require.NoError(t, db.Create(&[]models.Friendship{{UserID: a, FriendID: b}, {UserID: b, FriendID: a}}).Error)
	}
	befriend(me.ID, f1.ID)
	befriend(me.ID, f2.ID)
	befriend(f1.ID, both.ID)
	befriend(f2.ID, both.ID)
	befriend(f1.ID, one.ID)
	befriend(f1.ID, pending.ID)
	befriend(f1.ID, f2.ID)
	_, err := repo.CreateRequest(ctx, pending.ID, me.ID, nil)
	require.NoError(t, err)

	got, err := repo.MutualCandidates(ctx, me.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, MutualCandidate{UserID: both.ID, Mutual: 2}, got[0])
	assert.Equal(t, MutualCandidate{UserID: one.ID, Mutual: 1}, got[1])
}
