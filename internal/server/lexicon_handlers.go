package server

import (
	"rawabit/internal/authz"
	"rawabit/internal/i18n"
	"rawabit/internal/middleware"
	"rawabit/internal/models"
	"rawabit/internal/present"
	"rawabit/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) loadLexicon(c *fiber.Ctx) (authz.Resource, error) {
	kind, err := parseLexiconKind(c)
	if err != nil {
		return nil, err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}
	return s.lexiconService.Get(c.UserContext(), kind, id)
}

// ListLexicon handles GET /api/main/lexicon/:entryKind
// @Summary List words or sentences
// @Tags lexicon
// @Produce json
// @Param entryKind path string true "word or sentence"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} object{items=[]present.Entry,pagination=object}
// @Router /main/lexicon/{entryKind} [get]
func (s *Server) ListLexicon(c *fiber.Ctx) error {
	kind, err := parseLexiconKind(c)
	if err != nil {
		return nil
	}
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	result, err := s.lexiconService.List(ctx, kind, page)
	if err != nil {
		return respondErr(c, err)
	}
	ids := make([]uint, 0, len(result.Items))
	for _, e := range result.Items {
		ids = append(ids, e.ID)
	}
	sums, err := s.reactionService.Summarize(ctx, kind.Target(), ids)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(models.Page[present.Entry]{
		Items:      s.presenter(c).Entries(result.Items, sums),
		Pagination: result.Pagination,
	}.Body())
}

// GetLexicon handles GET /api/main/lexicon/:entryKind/:id
// @Summary Get one entry
// @Tags lexicon
// @Produce json
// @Param entryKind path string true "word or sentence"
// @Param id path int true "Entry ID"
// @Success 200 {object} present.Entry
// @Failure 404 {object} models.ErrorResponse
// @Router /main/lexicon/{entryKind}/{id} [get]
func (s *Server) GetLexicon(c *fiber.Ctx) error {
	kind, err := parseLexiconKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	entry, err := s.lexiconService.Get(ctx, kind, id)
	if err != nil {
		return respondErr(c, err)
	}
	sum, err := s.reactionService.SummarizeOne(ctx, kind.Target(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Entry(entry, &sum))
}

// CreateLexicon handles POST /api/main/lexicon/:entryKind
// @Summary Add a word or sentence
// @Tags lexicon
// @Accept json
// @Produce json
// @Param entryKind path string true "word or sentence"
// @Param request body service.LexiconInput true "Entry"
// @Success 201 {object} present.Entry
// @Failure 400 {object} models.ErrorResponse
// @Router /main/lexicon/{entryKind} [post]
func (s *Server) CreateLexicon(c *fiber.Ctx) error {
	kind, err := parseLexiconKind(c)
	if err != nil {
		return nil
	}
	var in service.LexiconInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}

	entry, err := s.lexiconService.Create(c.UserContext(), currentUserID(c), kind, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.presenter(c).Entry(entry, nil))
}

// UpdateLexicon handles PATCH /api/main/lexicon/:entryKind/:id. Author only.
// @Summary Edit an entry
// @Tags lexicon
// @Accept json
// @Produce json
// @Param entryKind path string true "word or sentence"
// @Param id path int true "Entry ID"
// @Param request body service.LexiconPatch true "Fields to change"
// @Success 200 {object} present.Entry
// @Failure 403 {object} models.ErrorResponse
// @Router /main/lexicon/{entryKind}/{id} [patch]
func (s *Server) UpdateLexicon(c *fiber.Ctx) error {
	entry := authorizedResource[*models.LexiconEntry](c)
	var patch service.LexiconPatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}

	updated, err := s.lexiconService.Update(c.UserContext(), entry, patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Entry(updated, nil))
}

// DeleteLexicon handles DELETE /api/main/lexicon/:entryKind/:id. Author only.
// @Summary Delete an entry
// @Tags lexicon
// @Produce json
// @Param entryKind path string true "word or sentence"
// @Param id path int true "Entry ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/lexicon/{entryKind}/{id} [delete]
func (s *Server) DeleteLexicon(c *fiber.Ctx) error {
	entry := authorizedResource[*models.LexiconEntry](c)
	if err := s.lexiconService.Delete(c.UserContext(), entry); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": i18n.T(middleware.Lang(c), i18n.Deleted)})
}
