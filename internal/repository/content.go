package repository

import (
	"context"
	"strings"

	"rawabit/internal/models"
	"rawabit/internal/observability"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ContentCounts are the engagement counters shown on an item.
type ContentCounts struct {
	Likes    int64
	Comments int64
	Shares   int64
}

// ContentRepository stores all nine content kinds in one table.
type ContentRepository interface {
	Create(ctx context.Context, c *models.Content) error
	GetByID(ctx context.Context, kind models.ContentKind, id uint) (*models.Content, error)
	Exists(ctx context.Context, kind models.ContentKind, id uint) (bool, error)
	List(ctx context.Context, filter models.ContentFilter, page models.PageRequest) ([]models.Content, int64, error)
	Counts(ctx context.Context, target models.TargetKind, id uint) (ContentCounts, error)
	Update(ctx context.Context, c *models.Content) error
	Delete(ctx context.Context, kind models.ContentKind, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentCountsSelect = "contents.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.target_kind = contents.kind AND likes.target_id = contents.id) AS likes_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.target_kind = contents.kind AND comments.target_id = contents.id AND comments.deleted_at IS NULL) AS comments_count, " +
	"(SELECT COUNT(*) FROM shares WHERE shares.target_kind = contents.kind AND shares.target_id = contents.id) AS shares_count"

func (r *contentRepository) Create(ctx context.Context, c *models.Content) error {
	defer observability.TrackQuery("insert", "contents")()
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID loads the item with its author. The three counters are read
// concurrently.
func (r *contentRepository) GetByID(ctx context.Context, kind models.ContentKind, id uint) (*models.Content, error) {
	defer observability.TrackQuery("select", "contents")()
	var c models.Content
	err := readDB(r.db).WithContext(ctx).
		Preload("Author").
		Where("kind = ?", kind).
		First(&c, id).Error
	if err != nil {
		return nil, wrapErr(err, string(kind), id)
	}

	counts, err := r.Counts(ctx, kind.Target(), id)
	if err != nil {
		return nil, err
	}
	c.LikesCount, c.CommentsCount, c.SharesCount = counts.Likes, counts.Comments, counts.Shares
	return &c, nil
}

func (r *contentRepository) Exists(ctx context.Context, kind models.ContentKind, id uint) (bool, error) {
	var n int64
	err := readDB(r.db).WithContext(ctx).Model(&models.Content{}).
		Where("kind = ? AND id = ?", kind, id).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *contentRepository) Counts(ctx context.Context, target models.TargetKind, id uint) (ContentCounts, error) {
	var out ContentCounts
	db := readDB(r.db).WithContext(ctx)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return db.Model(&models.Like{}).Where("target_kind = ? AND target_id = ?", target, id).Count(&out.Likes).Error
	})
	g.Go(func() error {
		return db.Model(&models.Comment{}).Where("target_kind = ? AND target_id = ?", target, id).Count(&out.Comments).Error
	})
	g.Go(func() error {
		return db.Model(&models.Share{}).Where("target_kind = ? AND target_id = ?", target, id).Count(&out.Shares).Error
	})
	if err := g.Wait(); err != nil {
		return ContentCounts{}, models.NewInternalError(err)
	}
	return out, nil
}

func applyContentFilter(db *gorm.DB, f models.ContentFilter) *gorm.DB {
	db = db.Where("contents.kind = ?", f.Kind)
	if f.Category != "" {
		db = db.Where("contents.category = ?", f.Category)
	}
	if f.Subcategory != "" {
		db = db.Where("contents.subcategory = ?", f.Subcategory)
	}
	if f.AuthorID != 0 {
		db = db.Where("contents.author_id = ?", f.AuthorID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("LOWER(contents.title) LIKE ? OR LOWER(contents.body) LIKE ?", like, like)
	}
	return db
}

// List returns one page of a kind, newest first, with counters filled.
func (r *contentRepository) List(ctx context.Context, filter models.ContentFilter, page models.PageRequest) ([]models.Content, int64, error) {
	defer observability.TrackQuery("select", "contents")()
	db := readDB(r.db).WithContext(ctx)

	var total int64
	if err := applyContentFilter(db.Model(&models.Content{}), filter).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	items := []models.Content{}
	if total == 0 {
		return items, 0, nil
	}
	err := paginate(applyContentFilter(db.Model(&models.Content{}), filter), page).
		Select(contentCountsSelect).
		Preload("Author").
		Order("contents.created_at DESC, contents.id DESC").
		Find(&items).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return items, total, nil
}

// Update writes the mutable columns of c.
func (r *contentRepository) Update(ctx context.Context, c *models.Content) error {
	err := r.db.WithContext(ctx).Model(c).
		Select("title", "body", "category", "subcategory", "image_url", "price", "currency",
			"pages", "duration_seconds", "target_amount", "answered", "attributes").
		Updates(c).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the item together with its reactions, comments and shares.
func (r *contentRepository) Delete(ctx context.Context, kind models.ContentKind, id uint) error {
	target := kind.Target()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("kind = ?", kind).Delete(&models.Content{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError(string(kind), id)
		}
		for _, m := range []interface{}{&models.Like{}, &models.Comment{}, &models.Share{}} {
			if err := tx.Where("target_kind = ? AND target_id = ?", target, id).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return asInternal(err)
}

func (r *contentRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
