package service

import (
	"context"
	"strings"

	"rawabit/internal/cache"
	"rawabit/internal/models"
	"rawabit/internal/repository"
	"rawabit/internal/validation"
)

// ContentInput is the body of a create request for any content kind.
// Fields a kind does not use are dropped.
type ContentInput struct {
	Title           string                 `json:"title" validate:"required,notblank,max=200"`
	Body            string                 `json:"body" validate:"max=20000"`
	Category        string                 `json:"category" validate:"max=100"`
	Subcategory     string                 `json:"subcategory" validate:"max=100"`
	ImageURL        string                 `json:"imageUrl" validate:"max=500"`
	Price           *float64               `json:"price" validate:"omitempty,gte=0"`
	Currency        string                 `json:"currency" validate:"max=8"`
	Pages           *int                   `json:"pages" validate:"omitempty,gte=1"`
	DurationSeconds *int                   `json:"durationSeconds" validate:"omitempty,gte=0"`
	TargetAmount    *float64               `json:"targetAmount" validate:"omitempty,gte=0"`
	Answered        *bool                  `json:"answered"`
	Attributes      map[string]interface{} `json:"attributes"`
}

// ContentPatch is a partial update; nil fields are left unchanged.
type ContentPatch struct {
	Title           *string                `json:"title" validate:"omitnil,notblank,max=200"`
	Body            *string                `json:"body" validate:"omitempty,max=20000"`
	Category        *string                `json:"category" validate:"omitempty,max=100"`
	Subcategory     *string                `json:"subcategory" validate:"omitempty,max=100"`
	ImageURL        *string                `json:"imageUrl" validate:"omitempty,max=500"`
	Price           *float64               `json:"price" validate:"omitempty,gte=0"`
	Currency        *string                `json:"currency" validate:"omitempty,max=8"`
	Pages           *int                   `json:"pages" validate:"omitempty,gte=1"`
	DurationSeconds *int                   `json:"durationSeconds" validate:"omitempty,gte=0"`
	TargetAmount    *float64               `json:"targetAmount" validate:"omitempty,gte=0"`
	Answered        *bool                  `json:"answered"`
	Attributes      map[string]interface{} `json:"attributes"`
}

// ContentService implements CRUD for the nine content kinds.
type ContentService struct {
	contentRepo repository.ContentRepository
}

func NewContentService(contentRepo repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

func (s *ContentService) Create(ctx context.Context, authorID uint, kind models.ContentKind, in ContentInput) (*models.Content, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	c := &models.Content{
		Kind:            kind,
		Title:           strings.TrimSpace(in.Title),
		Body:            in.Body,
		Category:        strings.TrimSpace(in.Category),
		Subcategory:     strings.TrimSpace(in.Subcategory),
		AuthorID:        authorID,
		ImageURL:        strings.TrimSpace(in.ImageURL),
		Price:           in.Price,
		Currency:        strings.ToUpper(strings.TrimSpace(in.Currency)),
		Pages:           in.Pages,
		DurationSeconds: in.DurationSeconds,
		TargetAmount:    in.TargetAmount,
		Answered:        in.Answered,
		Attributes:      in.Attributes,
	}
	NormalizeContent(c)
	if err := s.contentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.contentRepo.GetByID(ctx, kind, c.ID)
}

// Get returns the item and counts the view.
func (s *ContentService) Get(ctx context.Context, kind models.ContentKind, id uint) (*models.Content, error) {
	c, err := s.contentRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := s.contentRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	c.Views++
	return c, nil
}

// Load reads an item for an ownership check. It may be served from cache and
// does not count a view.
func (s *ContentService) Load(ctx context.Context, kind models.ContentKind, id uint) (*models.Content, error) {
	var c models.Content
	_, err := cache.Aside(ctx, cache.ContentKey(string(kind), id), &c, cache.ContentTTL, func() error {
		loaded, err := s.contentRepo.GetByID(ctx, kind, id)
		if err != nil {
			return err
		}
		c = *loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ContentService) List(ctx context.Context, filter models.ContentFilter, page models.PageRequest) (models.Page[models.Content], error) {
	items, total, err := s.contentRepo.List(ctx, filter, page)
	if err != nil {
		return models.Page[models.Content]{}, err
	}
	return models.Page[models.Content]{
		Items:      items,
		Pagination: models.NewPagination(page, total, filter.Kind.TotalKey()),
	}, nil
}

// Update applies patch to c, which the caller has loaded and authorized.
func (s *ContentService) Update(ctx context.Context, c *models.Content, patch ContentPatch) (*models.Content, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		c.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Body != nil {
		c.Body = *patch.Body
	}
	if patch.Category != nil {
		c.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Subcategory != nil {
		c.Subcategory = strings.TrimSpace(*patch.Subcategory)
	}
	if patch.ImageURL != nil {
		c.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.Price != nil {
		c.Price = patch.Price
	}
	if patch.Currency != nil {
		c.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
	}
	if patch.Pages != nil {
		c.Pages = patch.Pages
	}
	if patch.DurationSeconds != nil {
		c.DurationSeconds = patch.DurationSeconds
	}
	if patch.TargetAmount != nil {
		c.TargetAmount = patch.TargetAmount
	}
	if patch.Answered != nil {
		c.Answered = patch.Answered
	}
	if patch.Attributes != nil {
		c.Attributes = patch.Attributes
	}
	NormalizeContent(c)

	if err := s.contentRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	cache.InvalidateContent(ctx, string(c.Kind), c.ID)
	return s.contentRepo.GetByID(ctx, c.Kind, c.ID)
}

// Delete removes c with its reactions, comments and shares.
func (s *ContentService) Delete(ctx context.Context, c *models.Content) error {
	if err := s.contentRepo.Delete(ctx, c.Kind, c.ID); err != nil {
		return err
	}
	cache.InvalidateContent(ctx, string(c.Kind), c.ID)
	return nil
}

// NormalizeContent clears the type-specific fields c's kind does not use.
func NormalizeContent(c *models.Content) {
	if !c.Kind.HasPrice() {
		c.Price = nil
		c.Currency = ""
	} else if c.Price != nil && c.Currency == "" {
		c.Currency = "SAR"
	}
	if c.Kind != models.KindBook {
		c.Pages = nil
	}
	if c.Kind != models.KindVideo {
		c.DurationSeconds = nil
	}
	if c.Kind != models.KindIdea {
		c.TargetAmount = nil
	}
	if c.Kind != models.KindQuestion {
		c.Answered = nil
	} else if c.Answered == nil {
		answered := false
		c.Answered = &answered
	}
}
