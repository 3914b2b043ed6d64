package service

import (
	"context"
	"log/slog"

	"rawabit/internal/cache"
	"rawabit/internal/models"
	"rawabit/internal/observability"
	"rawabit/internal/repository"
)

// NotificationService stores and reads per-user notifications.
type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify persists n. Self-notifications are skipped. A failed write is logged
// and does not fail the action that caused it.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if s == nil || n == nil || n.UserID == 0 {
		return
	}
	if n.ActorID != nil && *n.ActorID == n.UserID {
		return
	}
	if err := s.repo.Create(ctx, n); err != nil {
		observability.GlobalLogger.WarnContext(ctx, "failed to create notification",
			slog.String("type", string(n.Type)),
			slog.Uint64("user_id", uint64(n.UserID)),
			slog.String("error", err.Error()),
		)
		return
	}
	recordCreated(ctx, n)
}

// recordCreated records a notification written elsewhere, e.g. inside a friend
// request transaction.
func recordCreated(ctx context.Context, n *models.Notification) {
	observability.NotificationsCreatedTotal.WithLabelValues(string(n.Type)).Inc()
	cache.InvalidateUnread(ctx, n.UserID)
}

func (s *NotificationService) Get(ctx context.Context, id uint) (*models.Notification, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, page models.PageRequest) (models.Page[models.Notification], error) {
	items, total, err := s.repo.List(ctx, userID, unreadOnly, page)
	if err != nil {
		return models.Page[models.Notification]{}, err
	}
	return models.Page[models.Notification]{
		Items:      items,
		Pagination: models.NewPagination(page, total, "totalNotifications"),
	}, nil
}

// UnreadCount is cached briefly per user and invalidated on every write.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	_, err := cache.Aside(ctx, cache.UnreadKey(userID), &count, cache.UnreadTTL, func() error {
		var err error
		count, err = s.repo.CountUnread(ctx, userID)
		return err
	})
	return count, err
}

// SetRead flips the read flag of n, which the caller has already loaded and
// authorized.
func (s *NotificationService) SetRead(ctx context.Context, n *models.Notification, read bool) (*models.Notification, error) {
	if err := s.repo.SetRead(ctx, n.ID, read); err != nil {
		return nil, err
	}
	cache.InvalidateUnread(ctx, n.UserID)
	return s.repo.GetByID(ctx, n.ID)
}

// MarkAllRead marks every unread notification of the user and returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	cache.InvalidateUnread(ctx, userID)
	return n, nil
}
