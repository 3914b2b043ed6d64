package repository

import (
	"context"

	"rawabit/internal/models"

	"gorm.io/gorm"
)

// LexiconRepository stores word and sentence entries.
type LexiconRepository interface {
	Create(ctx context.Context, e *models.LexiconEntry) error
	GetByID(ctx context.Context, kind models.LexiconKind, id uint) (*models.LexiconEntry, error)
	Exists(ctx context.Context, kind models.LexiconKind, id uint) (bool, error)
	List(ctx context.Context, kind models.LexiconKind, page models.PageRequest) ([]models.LexiconEntry, int64, error)
	Update(ctx context.Context, e *models.LexiconEntry) error
	Delete(ctx context.Context, kind models.LexiconKind, id uint) error
}

type lexiconRepository struct {
	db *gorm.DB
}

func NewLexiconRepository(db *gorm.DB) LexiconRepository {
	return &lexiconRepository{db: db}
}

func (r *lexiconRepository) Create(ctx context.Context, e *models.LexiconEntry) error {
	return asInternal(r.db.WithContext(ctx).Create(e).Error)
}

func (r *lexiconRepository) GetByID(ctx context.Context, kind models.LexiconKind, id uint) (*models.LexiconEntry, error) {
	var e models.LexiconEntry
	err := readDB(r.db).WithContext(ctx).Preload("Author").Where("kind = ?", kind).First(&e, id).Error
	if err != nil {
		return nil, wrapErr(err, string(kind), id)
	}
	return &e, nil
}

func (r *lexiconRepository) Exists(ctx context.Context, kind models.LexiconKind, id uint) (bool, error) {
	var n int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.LexiconEntry{}).
		Where("kind = ? AND id = ?", kind, id).Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *lexiconRepository) List(ctx context.Context, kind models.LexiconKind, page models.PageRequest) ([]models.LexiconEntry, int64, error) {
	db := readDB(r.db).WithContext(ctx).Model(&models.LexiconEntry{}).Where("kind = ?", kind)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	items := []models.LexiconEntry{}
	if total == 0 {
		return items, 0, nil
	}
	if err := paginate(db, page).Preload("Author").Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return items, total, nil
}

func (r *lexiconRepository) Update(ctx context.Context, e *models.LexiconEntry) error {
	err := r.db.WithContext(ctx).Model(e).Select("text", "translation", "language").Updates(e).Error
	return asInternal(err)
}

// Delete removes the entry and its reactions.
func (r *lexiconRepository) Delete(ctx context.Context, kind models.LexiconKind, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("kind = ?", kind).Delete(&models.LexiconEntry{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError(string(kind), id)
		}
		return tx.Where("target_kind = ? AND target_id = ?", kind.Target(), id).Delete(&models.Like{}).Error
	})
	return asInternal(err)
}
