package server

import (
	"rawabit/internal/models"
	"rawabit/internal/present"
	"rawabit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// publicProfile is another user's profile as seen by the session user.
type publicProfile struct {
	present.Profile
	FriendshipStatus models.FriendshipStatus `json:"friendshipStatus"`
	Online           bool                    `json:"online"`
}

// GetMyProfile handles GET /api/main/users/me
// @Summary My profile
// @Tags users
// @Produce json
// @Success 200 {object} present.Profile
// @Failure 401 {object} models.ErrorResponse
// @Router /main/users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Profile(user, true))
}

// UpdateMyProfile handles PATCH /api/main/users/me. Omitted fields are kept.
// @Summary Edit my profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileInput true "Fields to change"
// @Success 200 {object} present.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /main/users/me [patch]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var in service.UpdateProfileInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Profile(user, true))
}

// GetUserProfile handles GET /api/main/users/:id
// @Summary Another user's profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} publicProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /main/users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	user, err := s.userService.GetUserByID(ctx, id)
	if err != nil {
		return respondErr(c, err)
	}

	viewerID := currentUserID(c)
	if viewerID == id {
		return c.JSON(publicProfile{Profile: s.presenter(c).Profile(user, true)})
	}
	status, err := s.friendService.Status(ctx, viewerID, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(publicProfile{
		Profile:          s.presenter(c).Profile(user, false),
		FriendshipStatus: status,
		Online:           s.hub != nil && s.hub.IsOnline(id),
	})
}
