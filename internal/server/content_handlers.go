package server

import (
	"rawabit/internal/authz"
	"rawabit/internal/i18n"
	"rawabit/internal/middleware"
	"rawabit/internal/models"
	"rawabit/internal/present"
	"rawabit/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

func (s *Server) loadContent(c *fiber.Ctx) (authz.Resource, error) {
	kind, err := parseContentKind(c)
	if err != nil {
		return nil, err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}
	return s.contentService.Load(c.UserContext(), kind, id)
}

// ListContent handles GET /api/main/content/:kind
// @Summary List content of one kind
// @Tags content
// @Produce json
// @Param kind path string true "Content kind, singular or plural"
// @Param category query string false "Category"
// @Param subcategory query string false "Subcategory"
// @Param search query string false "Title/body search"
// @Param authorId query int false "Author filter"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} object{items=[]present.Item,pagination=object}
// @Failure 400 {object} models.ErrorResponse
// @Router /main/content/{kind} [get]
func (s *Server) ListContent(c *fiber.Ctx) error {
	kind, err := parseContentKind(c)
	if err != nil {
		return nil
	}
	page, err := parsePage(c)
	if err != nil {
		return nil
	}
	filter := models.ContentFilter{
		Kind:        kind,
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Search:      c.Query("search"),
		AuthorID:    uint(max(c.QueryInt("authorId", 0), 0)),
	}

	ctx := c.UserContext()
	result, err := s.contentService.List(ctx, filter, page)
	if err != nil {
		return respondErr(c, err)
	}
	ids := make([]uint, 0, len(result.Items))
	for _, item := range result.Items {
		ids = append(ids, item.ID)
	}
	sums, err := s.reactionService.Summarize(ctx, kind.Target(), ids)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(models.Page[present.Item]{
		Items:      s.presenter(c).Items(result.Items, sums),
		Pagination: result.Pagination,
	}.Body())
}

// GetContent handles GET /api/main/content/:kind/:id and counts a view.
// @Summary Get one content item
// @Tags content
// @Produce json
// @Param kind path string true "Content kind"
// @Param id path int true "Item ID"
// @Success 200 {object} object{item=present.Item,myReaction=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /main/content/{kind}/{id} [get]
func (s *Server) GetContent(c *fiber.Ctx) error {
	kind, err := parseContentKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	item, err := s.contentService.Get(ctx, kind, id)
	if err != nil {
		return respondErr(c, err)
	}

	userID := currentUserID(c)
	var (
		sum  models.ReactionSummary
		mine string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sum, err = s.reactionService.SummarizeOne(gctx, kind.Target(), id)
		return err
	})
	g.Go(func() error {
		var err error
		mine, err = s.reactionService.Mine(gctx, userID, kind.Target(), id)
		return err
	})
	if err := g.Wait(); err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{
		"item":       s.presenter(c).Item(item, &sum),
		"myReaction": mine,
	})
}

// CreateContent handles POST /api/main/content/:kind
// @Summary Create a content item
// @Tags content
// @Accept json
// @Produce json
// @Param kind path string true "Content kind"
// @Param request body service.ContentInput true "Item fields"
// @Success 201 {object} present.Item
// @Failure 400 {object} models.ErrorResponse
// @Router /main/content/{kind} [post]
func (s *Server) CreateContent(c *fiber.Ctx) error {
	kind, err := parseContentKind(c)
	if err != nil {
		return nil
	}
	var in service.ContentInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}

	item, err := s.contentService.Create(c.UserContext(), currentUserID(c), kind, in)
	if err != nil {
		return respondErr(c, err)
	}

	view := s.presenter(c).Item(item, nil)
	s.publishBroadcastEvent(c, EventContentCreated, fiber.Map{"kind": kind, "id": item.ID, "authorId": item.AuthorID})
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdateContent handles PATCH /api/main/content/:kind/:id. Author only.
// @Summary Update a content item
// @Tags content
// @Accept json
// @Produce json
// @Param kind path string true "Content kind"
// @Param id path int true "Item ID"
// @Param request body service.ContentPatch true "Fields to change"
// @Success 200 {object} present.Item
// @Failure 403 {object} models.ErrorResponse
// @Router /main/content/{kind}/{id} [patch]
func (s *Server) UpdateContent(c *fiber.Ctx) error {
	item := authorizedResource[*models.Content](c)
	var patch service.ContentPatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}

	updated, err := s.contentService.Update(c.UserContext(), item, patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Item(updated, nil))
}

// DeleteContent handles DELETE /api/main/content/:kind/:id. Author only.
// @Summary Delete a content item
// @Tags content
// @Produce json
// @Param kind path string true "Content kind"
// @Param id path int true "Item ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/content/{kind}/{id} [delete]
func (s *Server) DeleteContent(c *fiber.Ctx) error {
	item := authorizedResource[*models.Content](c)
	if err := s.contentService.Delete(c.UserContext(), item); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": i18n.T(middleware.Lang(c), i18n.Deleted)})
}
