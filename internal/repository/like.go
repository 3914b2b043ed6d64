package repository

import (
	"context"
	"errors"
	"time"

	"rawabit/internal/models"
	"rawabit/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository persists emoji reactions on any target kind.
type ReactionRepository interface {
	// Upsert sets the user's emoji on the target and returns the emoji it
	// replaced, or "" when the user had not reacted.
	Upsert(ctx context.Context, like *models.Like) (previous string, err error)
	Delete(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (bool, error)
	Rows(ctx context.Context, kind models.TargetKind, targetIDs []uint) ([]models.ReactionRow, error)
	UserEmoji(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (string, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Upsert(ctx context.Context, like *models.Like) (string, error) {
	var previous string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", like.UserID, like.TargetKind, like.TargetID).
			First(&existing).Error
		switch {
		case err == nil:
			previous = existing.Emoji
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		like.UpdatedAt = time.Now()
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_kind"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"emoji", "updated_at"}),
		}).Create(like).Error
	})
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return previous, nil
}

func (r *reactionRepository) Delete(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Rows fetches every reaction on the given targets with the reacting user's
// display fields in a single query.
func (r *reactionRepository) Rows(ctx context.Context, kind models.TargetKind, targetIDs []uint) ([]models.ReactionRow, error) {
	rows := []models.ReactionRow{}
	if len(targetIDs) == 0 {
		return rows, nil
	}
	defer observability.TrackQuery("select", "likes")()
	err := readDB(r.db).WithContext(ctx).
		Table("likes").
		Select("likes.target_id, likes.emoji, likes.user_id, users.username, users.first_name, users.last_name, users.avatar").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.target_kind = ? AND likes.target_id IN ?", kind, targetIDs).
		Order("likes.created_at ASC, likes.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *reactionRepository) UserEmoji(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (string, error) {
	var emoji []string
	err := readDB(r.db).WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		Limit(1).
		Pluck("emoji", &emoji).Error
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if len(emoji) == 0 {
		return "", nil
	}
	return emoji[0], nil
}
