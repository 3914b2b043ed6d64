package repository

import (
	"context"

	"rawabit/internal/models"

	"gorm.io/gorm"
)

// ShareRepository records shares of content items.
type ShareRepository interface {
	Create(ctx context.Context, share *models.Share) error
	CountByTarget(ctx context.Context, kind models.TargetKind, targetID uint) (int64, error)
}

type shareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, share *models.Share) error {
	return asInternal(r.db.WithContext(ctx).Create(share).Error)
}

func (r *shareRepository) CountByTarget(ctx context.Context, kind models.TargetKind, targetID uint) (int64, error) {
	var n int64
	err := readDB(r.db).WithContext(ctx).Model(&models.Share{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Count(&n).Error
	return n, asInternal(err)
}
