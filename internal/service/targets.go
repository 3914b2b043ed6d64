package service

import (
	"context"

	"rawabit/internal/i18n"
	"rawabit/internal/models"
	"rawabit/internal/repository"
)

// targets resolves a reactable target to its owner.
type targets struct {
	contents repository.ContentRepository
	lexicon  repository.LexiconRepository
}

// owner returns the author of the target, or a not-found error.
func (t targets) owner(ctx context.Context, kind models.TargetKind, id uint) (uint, error) {
	if id == 0 {
		return 0, models.NewNotFoundError(string(kind), id)
	}
	if kind.IsContent() {
		c, err := t.contents.GetByID(ctx, models.ContentKind(kind), id)
		if err != nil {
			return 0, err
		}
		return c.AuthorID, nil
	}
	if lk, ok := models.ParseLexiconKind(string(kind)); ok {
		e, err := t.lexicon.GetByID(ctx, lk, id)
		if err != nil {
			return 0, err
		}
		return e.AuthorID, nil
	}
	return 0, models.NewValidationError(i18n.UnknownKind, string(kind))
}
