package repository

import (
	"context"

	"rawabit/internal/models"

	"gorm.io/gorm"
)

// CommentRepository stores comments on content items.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByTarget(ctx context.Context, kind models.TargetKind, targetID uint, page models.PageRequest) ([]models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return asInternal(r.db.WithContext(ctx).Preload("User").First(comment, comment.ID).Error)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := readDB(r.db).WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, wrapErr(err, "comment", id)
	}
	return &comment, nil
}

// ListByTarget returns comments oldest first so threads read top to bottom.
func (r *commentRepository) ListByTarget(ctx context.Context, kind models.TargetKind, targetID uint, page models.PageRequest) ([]models.Comment, int64, error) {
	db := readDB(r.db).WithContext(ctx).Model(&models.Comment{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	comments := []models.Comment{}
	if total == 0 {
		return comments, 0, nil
	}
	if err := paginate(db, page).Preload("User").Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return asInternal(r.db.WithContext(ctx).Model(comment).Select("body").Updates(comment).Error)
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}
