package repository

import (
	"context"
	"errors"

	"rawabit/internal/i18n"
	"rawabit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository persists friend requests and the symmetric friendship rows.
// Every multi-row transition runs in one transaction.
type FriendRepository interface {
	AreFriends(ctx context.Context, a, b uint) (bool, error)
	PendingRequest(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error)
	CreateRequest(ctx context.Context, senderID, receiverID uint, notify *models.Notification) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, senderID, receiverID uint, notify *models.Notification) error
	DeclineRequest(ctx context.Context, senderID, receiverID uint) error
	CancelRequests(ctx context.Context, a, b uint) error
	RemoveFriendship(ctx context.Context, a, b uint) error
	ListFriends(ctx context.Context, userID uint) ([]models.User, error)
	FriendIDs(ctx context.Context, userID uint) ([]uint, error)
	ListIncoming(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	ListSent(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	PendingPeerIDs(ctx context.Context, userID uint) ([]uint, error)
	MutualCandidates(ctx context.Context, userID uint, limit int) ([]MutualCandidate, error)
}

// MutualCandidate is a friend-of-a-friend and how many friends they share with the viewer.
type MutualCandidate struct {
	UserID uint
	Mutual int64
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", a, b).
		Count(&n).Error
	return n > 0, asInternal(err)
}

// PendingRequest returns nil, nil when senderID has no pending request to receiverID.
func (r *friendRepository) PendingRequest(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.FriendRequestPending).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// CreateRequest inserts the pending request, or re-opens an earlier row for
// the same ordered pair, and writes notify in the same transaction.
func (r *friendRepository) CreateRequest(ctx context.Context, senderID, receiverID uint, notify *models.Notification) (*models.FriendRequest, error) {
	req := &models.FriendRequest{SenderID: senderID, ReceiverID: receiverID, Status: models.FriendRequestPending}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sender_id"}, {Name: "receiver_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"status": models.FriendRequestPending, "updated_at": gorm.Expr("CURRENT_TIMESTAMP")}),
			Where:     clause.Where{Exprs: []clause.Expression{clause.Neq{Column: clause.Column{Table: "friend_requests", Name: "status"}, Value: models.FriendRequestPending}}},
		}).Create(req).Error
		if err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(req).Error; err != nil {
			return err
		}
		if notify != nil {
			return tx.Create(notify).Error
		}
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return req, nil
}

// AcceptRequest flips the pending request to accepted and materializes both
// friendship directions. It returns a validation error if the request is no
// longer pending.
func (r *friendRepository) AcceptRequest(ctx context.Context, senderID, receiverID uint, notify *models.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.FriendRequest{}).
			Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.FriendRequestPending).
			Update("status", models.FriendRequestAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewValidationError(i18n.FriendNoIncoming)
		}

		rows := []models.Friendship{
			{UserID: senderID, FriendID: receiverID},
			{UserID: receiverID, FriendID: senderID},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return err
		}
		if notify != nil {
			return tx.Create(notify).Error
		}
		return nil
	})
	return asInternal(err)
}

func (r *friendRepository) DeclineRequest(ctx context.Context, senderID, receiverID uint) error {
	res := r.db.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.FriendRequestPending).
		Update("status", models.FriendRequestRejected)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewValidationError(i18n.FriendNoIncoming)
	}
	return nil
}

// CancelRequests deletes pending requests between a and b in either direction.
func (r *friendRepository) CancelRequests(ctx context.Context, a, b uint) error {
	err := r.db.WithContext(ctx).
		Where("status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			models.FriendRequestPending, a, b, b, a).
		Delete(&models.FriendRequest{}).Error
	return asInternal(err)
}

// RemoveFriendship deletes both friendship rows and every request between the pair.
func (r *friendRepository) RemoveFriendship(ctx context.Context, a, b uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
			Delete(&models.FriendRequest{}).Error
	})
	return asInternal(err)
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	users := []models.User{}
	err := readDB(r.db).WithContext(ctx).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Order("friendships.created_at DESC, users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *friendRepository) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := readDB(r.db).WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, asInternal(err)
}

func (r *friendRepository) ListIncoming(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	reqs := []models.FriendRequest{}
	err := readDB(r.db).WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *friendRepository) ListSent(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	reqs := []models.FriendRequest{}
	err := readDB(r.db).WithContext(ctx).
		Preload("Receiver").
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// PendingPeerIDs lists users with a pending request to or from userID.
func (r *friendRepository) PendingPeerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var reqs []models.FriendRequest
	err := readDB(r.db).WithContext(ctx).
		Where("status = ? AND (sender_id = ? OR receiver_id = ?)", models.FriendRequestPending, userID, userID).
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	ids := make([]uint, 0, len(reqs))
	for _, req := range reqs {
		if req.SenderID == userID {
			ids = append(ids, req.ReceiverID)
		} else {
			ids = append(ids, req.SenderID)
		}
	}
	return ids, nil
}

// MutualCandidates ranks friends-of-friends by mutual friend count. The
// viewer, their friends and anyone with a pending request either way are
// excluded.
func (r *friendRepository) MutualCandidates(ctx context.Context, userID uint, limit int) ([]MutualCandidate, error) {
	out := []MutualCandidate{}
	err := readDB(r.db).WithContext(ctx).
		Table("friendships AS f1").
		Select("f2.friend_id AS user_id, COUNT(*) AS mutual").
		Joins("JOIN friendships AS f2 ON f2.user_id = f1.friend_id").
		Where("f1.user_id = ? AND f2.friend_id <> ?", userID, userID).
		Where("f2.friend_id NOT IN (SELECT friend_id FROM friendships WHERE user_id = ?)", userID).
		Where("f2.friend_id NOT IN (SELECT receiver_id FROM friend_requests WHERE sender_id = ? AND status = ?)", userID, models.FriendRequestPending).
		Where("f2.friend_id NOT IN (SELECT sender_id FROM friend_requests WHERE receiver_id = ? AND status = ?)", userID, models.FriendRequestPending).
		Group("f2.friend_id").
		Order("mutual DESC, f2.friend_id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return out, nil
}
