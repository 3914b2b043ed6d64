package repository

import (
	"context"
	"time"

	"rawabit/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository stores per-user notifications. Rows are never
// deleted; only the read flag changes.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	List(ctx context.Context, userID uint, unreadOnly bool, page models.PageRequest) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	SetRead(ctx context.Context, id uint, read bool) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return asInternal(r.db.WithContext(ctx).Omit("Actor").Create(n).Error)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).Preload("Actor").First(&n, id).Error; err != nil {
		return nil, wrapErr(err, "notification", id)
	}
	return &n, nil
}

func (r *notificationRepository) List(ctx context.Context, userID uint, unreadOnly bool, page models.PageRequest) ([]models.Notification, int64, error) {
	db := readDB(r.db).WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	items := []models.Notification{}
	if total == 0 {
		return items, 0, nil
	}
	if err := paginate(db, page).Preload("Actor").Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return items, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, asInternal(err)
}

func (r *notificationRepository) SetRead(ctx context.Context, id uint, read bool) error {
	var readAt *time.Time
	if read {
		now := time.Now()
		readAt = &now
	}
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": read, "read_at": readAt})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("notification", id)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
