package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"rawabit/internal/cache"
	"rawabit/internal/i18n"
	"rawabit/internal/models"
	"rawabit/internal/repository"
)

const (
	maxCommentLength = 10000
	maxShareNote     = 1000
)

// CommentService handles comments and shares on reactable targets.
type CommentService struct {
	commentRepo   repository.CommentRepository
	shareRepo     repository.ShareRepository
	userRepo      repository.UserRepository
	targets       targets
	notifications *NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	shareRepo repository.ShareRepository,
	contentRepo repository.ContentRepository,
	lexiconRepo repository.LexiconRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		shareRepo:     shareRepo,
		userRepo:      userRepo,
		targets:       targets{contents: contentRepo, lexicon: lexiconRepo},
		notifications: notifications,
	}
}

func (s *CommentService) Create(ctx context.Context, userID uint, kind models.TargetKind, targetID uint, body string) (*models.Comment, error) {
	body, err := cleanComment(body)
	if err != nil {
		return nil, err
	}
	ownerID, err := s.targets.owner(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: userID, TargetKind: kind, TargetID: targetID, Body: body}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	cache.InvalidateContent(ctx, string(kind), targetID)

	if ownerID != userID {
		s.notifications.Notify(ctx, models.NewNotification(models.NotificationComment, ownerID, &comment.User, kind, targetID,
			map[string]interface{}{"commentId": comment.ID}))
	}
	return comment, nil
}

// List returns comments on the target, oldest first.
func (s *CommentService) List(ctx context.Context, kind models.TargetKind, targetID uint, page models.PageRequest) (models.Page[models.Comment], error) {
	if _, err := s.targets.owner(ctx, kind, targetID); err != nil {
		return models.Page[models.Comment]{}, err
	}
	items, total, err := s.commentRepo.ListByTarget(ctx, kind, targetID, page)
	if err != nil {
		return models.Page[models.Comment]{}, err
	}
	return models.Page[models.Comment]{
		Items:      items,
		Pagination: models.NewPagination(page, total, "totalComments"),
	}, nil
}

func (s *CommentService) Get(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// Update replaces the body of c, which the caller has loaded and authorized.
func (s *CommentService) Update(ctx context.Context, c *models.Comment, body string) (*models.Comment, error) {
	body, err := cleanComment(body)
	if err != nil {
		return nil, err
	}
	c.Body = body
	if err := s.commentRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, c.ID)
}

func (s *CommentService) Delete(ctx context.Context, c *models.Comment) error {
	if err := s.commentRepo.Delete(ctx, c.ID); err != nil {
		return err
	}
	cache.InvalidateContent(ctx, string(c.TargetKind), c.TargetID)
	return nil
}

// Share records userID sharing the target and returns the new share count.
func (s *CommentService) Share(ctx context.Context, userID uint, kind models.TargetKind, targetID uint, note string) (*models.Share, int64, error) {
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) > maxShareNote {
		return nil, 0, models.NewFieldError(i18n.FieldTooLong, "body", maxShareNote)
	}
	ownerID, err := s.targets.owner(ctx, kind, targetID)
	if err != nil {
		return nil, 0, err
	}
	share := &models.Share{UserID: userID, TargetKind: kind, TargetID: targetID, Note: note}
	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, 0, err
	}
	cache.InvalidateContent(ctx, string(kind), targetID)

	if ownerID != userID {
		if actor, err := s.userRepo.GetByID(ctx, userID); err == nil {
			s.notifications.Notify(ctx, models.NewNotification(models.NotificationShare, ownerID, actor, kind, targetID, nil))
		}
	}
	count, err := s.shareRepo.CountByTarget(ctx, kind, targetID)
	if err != nil {
		return nil, 0, err
	}
	return share, count, nil
}

func cleanComment(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", models.NewValidationError(i18n.CommentEmpty)
	}
	if utf8.RuneCountInString(body) > maxCommentLength {
		return "", models.NewFieldError(i18n.FieldTooLong, "body", maxCommentLength)
	}
	return body, nil
}
