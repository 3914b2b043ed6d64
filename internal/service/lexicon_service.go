package service

import (
	"context"
	"strings"

	"rawabit/internal/cache"
	"rawabit/internal/i18n"
	"rawabit/internal/models"
	"rawabit/internal/repository"
	"rawabit/internal/validation"
)

type LexiconInput struct {
	Text        string `json:"text" validate:"required,notblank,max=2000"`
	Translation string `json:"translation" validate:"max=2000"`
	Language    string `json:"language" validate:"omitempty,oneof=ar en"`
}

type LexiconPatch struct {
	Text        *string `json:"text" validate:"omitnil,notblank,max=2000"`
	Translation *string `json:"translation" validate:"omitempty,max=2000"`
	Language    *string `json:"language" validate:"omitempty,oneof=ar en"`
}

// LexiconService manages word and sentence entries.
type LexiconService struct {
	lexiconRepo repository.LexiconRepository
}

func NewLexiconService(lexiconRepo repository.LexiconRepository) *LexiconService {
	return &LexiconService{lexiconRepo: lexiconRepo}
}

func (s *LexiconService) Create(ctx context.Context, authorID uint, kind models.LexiconKind, in LexiconInput) (*models.LexiconEntry, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	lang := in.Language
	if lang == "" {
		lang = string(i18n.Arabic)
	}
	e := &models.LexiconEntry{
		Kind:        kind,
		Text:        strings.TrimSpace(in.Text),
		Translation: strings.TrimSpace(in.Translation),
		Language:    lang,
		AuthorID:    authorID,
	}
	if err := s.lexiconRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return s.lexiconRepo.GetByID(ctx, kind, e.ID)
}

func (s *LexiconService) Get(ctx context.Context, kind models.LexiconKind, id uint) (*models.LexiconEntry, error) {
	return s.lexiconRepo.GetByID(ctx, kind, id)
}

func (s *LexiconService) List(ctx context.Context, kind models.LexiconKind, page models.PageRequest) (models.Page[models.LexiconEntry], error) {
	items, total, err := s.lexiconRepo.List(ctx, kind, page)
	if err != nil {
		return models.Page[models.LexiconEntry]{}, err
	}
	return models.Page[models.LexiconEntry]{
		Items:      items,
		Pagination: models.NewPagination(page, total, kind.TotalKey()),
	}, nil
}

func (s *LexiconService) Update(ctx context.Context, e *models.LexiconEntry, patch LexiconPatch) (*models.LexiconEntry, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	if patch.Text != nil {
		e.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.Translation != nil {
		e.Translation = strings.TrimSpace(*patch.Translation)
	}
	if patch.Language != nil {
		e.Language = *patch.Language
	}
	if err := s.lexiconRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return s.lexiconRepo.GetByID(ctx, e.Kind, e.ID)
}

func (s *LexiconService) Delete(ctx context.Context, e *models.LexiconEntry) error {
	if err := s.lexiconRepo.Delete(ctx, e.Kind, e.ID); err != nil {
		return err
	}
	cache.InvalidateReactions(ctx, string(e.Kind), e.ID)
	return nil
}
