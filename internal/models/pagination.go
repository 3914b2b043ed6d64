package models

import "rawabit/internal/i18n"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is a validated page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest validates page and limit. Zero values take the defaults.
func NewPageRequest(page, limit int) (PageRequest, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		return PageRequest{}, NewValidationError(i18n.InvalidPage)
	}
	if limit < 1 || limit > MaxLimit {
		return PageRequest{}, NewValidationError(i18n.InvalidLimit, MaxLimit)
	}
	return PageRequest{Page: page, Limit: limit}, nil
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata block returned with every paged listing.
// Total is emitted under a kind-specific key such as "totalPosts".
type Pagination struct {
	CurrentPage     int
	TotalPages      int
	Total           int64
	TotalKey        string
	HasNextPage     bool
	HasPreviousPage bool
	Limit           int
}

// NewPagination computes page metadata for total rows.
func NewPagination(req PageRequest, total int64, totalKey string) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return Pagination{
		CurrentPage:     req.Page,
		TotalPages:      totalPages,
		Total:           total,
		TotalKey:        totalKey,
		HasNextPage:     req.Page < totalPages,
		HasPreviousPage: req.Page > 1,
		Limit:           req.Limit,
	}
}

// Map renders the pagination block with its kind-specific total key.
func (p Pagination) Map() map[string]interface{} {
	key := p.TotalKey
	if key == "" {
		key = "totalItems"
	}
	return map[string]interface{}{
		"currentPage":     p.CurrentPage,
		"totalPages":      p.TotalPages,
		key:               p.Total,
		"hasNextPage":     p.HasNextPage,
		"hasPreviousPage": p.HasPreviousPage,
		"limit":           p.Limit,
	}
}

// Page is a page of items plus its metadata.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// Body is the JSON response shape {items, pagination}.
func (p Page[T]) Body() map[string]interface{} {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return map[string]interface{}{
		"items":      items,
		"pagination": p.Pagination.Map(),
	}
}
