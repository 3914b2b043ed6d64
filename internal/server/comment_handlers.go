package server

import (
	"rawabit/internal/authz"
	"rawabit/internal/i18n"
	"rawabit/internal/middleware"
	"rawabit/internal/models"
	"rawabit/internal/present"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Body string `json:"body"`
}

type shareRequest struct {
	Note string `json:"note"`
}

func (s *Server) loadComment(c *fiber.Ctx) (authz.Resource, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}
	return s.commentService.Get(c.UserContext(), id)
}

// ListComments handles GET /api/main/content/:kind/:id/comments
// @Summary List comments on an item
// @Tags comments
// @Produce json
// @Param kind path string true "Content kind"
// @Param id path int true "Item ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} object{items=[]present.Comment,pagination=object}
// @Failure 404 {object} models.ErrorResponse
// @Router /main/content/{kind}/{id}/comments [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	kind, err := parseContentKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	result, err := s.commentService.List(c.UserContext(), kind.Target(), id, page)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(models.Page[present.Comment]{
		Items:      s.presenter(c).Comments(result.Items),
		Pagination: result.Pagination,
	}.Body())
}

// CreateComment handles POST /api/main/content/:kind/:id/comments
// @Summary Comment on an item
// @Tags comments
// @Accept json
// @Produce json
// @Param kind path string true "Content kind"
// @Param id path int true "Item ID"
// @Param request body commentRequest true "Comment"
// @Success 201 {object} present.Comment
// @Failure 400 {object} models.ErrorResponse
// @Router /main/content/{kind}/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	kind, err := parseContentKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.Create(c.UserContext(), currentUserID(c), kind.Target(), id, req.Body)
	if err != nil {
		return respondErr(c, err)
	}

	view := s.presenter(c).Comment(comment)
	s.publishBroadcastEvent(c, EventCommentCreated, fiber.Map{"targetKind": kind, "targetId": id, "comment": view})
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdateComment handles PATCH /api/main/comments/:id. Author only.
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body commentRequest true "New body"
// @Success 200 {object} present.Comment
// @Failure 403 {object} models.ErrorResponse
// @Router /main/comments/{id} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	comment := authorizedResource[*models.Comment](c)
	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	updated, err := s.commentService.Update(c.UserContext(), comment, req.Body)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Comment(updated))
}

// DeleteComment handles DELETE /api/main/comments/:id. Author only.
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	comment := authorizedResource[*models.Comment](c)
	if err := s.commentService.Delete(c.UserContext(), comment); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": i18n.T(middleware.Lang(c), i18n.Deleted)})
}

// ShareContent handles POST /api/main/content/:kind/:id/shares
// @Summary Share an item
// @Tags comments
// @Accept json
// @Produce json
// @Param kind path string true "Content kind"
// @Param id path int true "Item ID"
// @Param request body shareRequest false "Optional note"
// @Success 201 {object} object{id=int,sharesCount=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /main/content/{kind}/{id}/shares [post]
func (s *Server) ShareContent(c *fiber.Ctx) error {
	kind, err := parseContentKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req shareRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return nil
		}
	}

	share, count, err := s.commentService.Share(c.UserContext(), currentUserID(c), kind.Target(), id, req.Note)
	if err != nil {
		return respondErr(c, err)
	}

	s.publishBroadcastEvent(c, EventContentShared, fiber.Map{"targetKind": kind, "targetId": id, "sharesCount": count})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          share.ID,
		"sharesCount": count,
	})
}
