package server

import (
	"strconv"
	"strings"

	"rawabit/internal/i18n"
	"rawabit/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxSummaryIDs = 100

type reactRequest struct {
	Emoji string `json:"emoji"`
}

// parseIDList reads a comma separated ?ids= query.
func parseIDList(c *fiber.Ctx) ([]uint, error) {
	raw := strings.TrimSpace(c.Query("ids"))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) > maxSummaryIDs {
		_ = respondErr(c, models.NewFieldError(i18n.InvalidParam, "ids"))
		return nil, errResponseWritten
	}
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || id == 0 {
			_ = respondErr(c, models.NewFieldError(i18n.InvalidParam, "ids"))
			return nil, errResponseWritten
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// SummarizeReactions handles GET /api/main/reactions/:targetKind?ids=1,2,3
// @Summary Reaction summaries for many targets
// @Tags reactions
// @Produce json
// @Param targetKind path string true "Target kind"
// @Param ids query string true "Comma separated target IDs"
// @Success 200 {object} map[string]models.ReactionSummary
// @Failure 400 {object} models.ErrorResponse
// @Router /main/reactions/{targetKind} [get]
func (s *Server) SummarizeReactions(c *fiber.Ctx) error {
	kind, err := parseTargetKind(c)
	if err != nil {
		return nil
	}
	ids, err := parseIDList(c)
	if err != nil {
		return nil
	}

	sums, err := s.reactionService.Summarize(c.UserContext(), kind, ids)
	if err != nil {
		return respondErr(c, err)
	}
	out := make(map[string]models.ReactionSummary, len(sums))
	for id, sum := range sums {
		out[strconv.FormatUint(uint64(id), 10)] = sum
	}
	return c.JSON(out)
}

// GetReactions handles GET /api/main/reactions/:targetKind/:id
// @Summary Reaction summary for one target
// @Tags reactions
// @Produce json
// @Param targetKind path string true "Target kind"
// @Param id path int true "Target ID"
// @Success 200 {object} object{summary=models.ReactionSummary,myReaction=string}
// @Router /main/reactions/{targetKind}/{id} [get]
func (s *Server) GetReactions(c *fiber.Ctx) error {
	kind, err := parseTargetKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	sum, err := s.reactionService.SummarizeOne(ctx, kind, id)
	if err != nil {
		return respondErr(c, err)
	}
	mine, err := s.reactionService.Mine(ctx, currentUserID(c), kind, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"summary": sum, "myReaction": mine})
}

// React handles POST /api/main/reactions/:targetKind/:id. Reacting again
// with a different emoji replaces the previous one.
// @Summary React to a target
// @Tags reactions
// @Accept json
// @Produce json
// @Param targetKind path string true "Target kind"
// @Param id path int true "Target ID"
// @Param request body reactRequest true "Emoji"
// @Success 200 {object} object{summary=models.ReactionSummary,myReaction=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /main/reactions/{targetKind}/{id} [post]
func (s *Server) React(c *fiber.Ctx) error {
	kind, err := parseTargetKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req reactRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	sum, err := s.reactionService.React(c.UserContext(), currentUserID(c), kind, id, req.Emoji)
	if err != nil {
		return respondErr(c, err)
	}
	s.publishBroadcastEvent(c, EventReactionUpdated, fiber.Map{"targetKind": kind, "targetId": id, "summary": sum})
	return c.JSON(fiber.Map{"summary": sum, "myReaction": strings.TrimSpace(req.Emoji)})
}

// Unreact handles DELETE /api/main/reactions/:targetKind/:id
// @Summary Remove my reaction
// @Tags reactions
// @Produce json
// @Param targetKind path string true "Target kind"
// @Param id path int true "Target ID"
// @Success 200 {object} object{summary=models.ReactionSummary,myReaction=string}
// @Router /main/reactions/{targetKind}/{id} [delete]
func (s *Server) Unreact(c *fiber.Ctx) error {
	kind, err := parseTargetKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	sum, err := s.reactionService.Unreact(c.UserContext(), currentUserID(c), kind, id)
	if err != nil {
		return respondErr(c, err)
	}
	s.publishBroadcastEvent(c, EventReactionUpdated, fiber.Map{"targetKind": kind, "targetId": id, "summary": sum})
	return c.JSON(fiber.Map{"summary": sum, "myReaction": ""})
}
