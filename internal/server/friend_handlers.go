package server

import (
	"rawabit/internal/i18n"
	"rawabit/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxSuggestions = 20

// friendRequestBody names both sides of a request. The session user must be
// the side that acts: the sender for request and cancel, the receiver for
// accept and decline.
type friendRequestBody struct {
	SenderID   uint `json:"senderId"`
	ReceiverID uint `json:"receiverId"`
}

type friendPairBody struct {
	UserID   uint `json:"userId"`
	FriendID uint `json:"friendId"`
}

func parseFriendRequest(c *fiber.Ctx) (friendRequestBody, error) {
	var body friendRequestBody
	if err := parseBody(c, &body); err != nil {
		return body, err
	}
	if body.SenderID == 0 {
		_ = respondErr(c, models.NewFieldError(i18n.FieldRequired, "senderId"))
		return body, errResponseWritten
	}
	if body.ReceiverID == 0 {
		_ = respondErr(c, models.NewFieldError(i18n.FieldRequired, "receiverId"))
		return body, errResponseWritten
	}
	return body, nil
}

// subjectUser resolves ?userId= for the friend lists. Absent means the session
// user; naming anyone else is rejected.
func subjectUser(c *fiber.Ctx) (uint, error) {
	userID := currentUserID(c)
	if raw := c.QueryInt("userId", 0); raw != 0 {
		if err := requireActor(c, uint(raw)); err != nil {
			return 0, err
		}
	}
	return userID, nil
}

// SendFriendRequest handles POST /api/main/friends/request
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body friendRequestBody true "Sender and receiver"
// @Success 201 {object} present.FriendRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /main/friends/request [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	body, err := parseFriendRequest(c)
	if err != nil {
		return nil
	}
	if err := requireActor(c, body.SenderID); err != nil {
		return nil
	}

	req, err := s.friendService.SendRequest(c.UserContext(), body.SenderID, body.ReceiverID)
	if err != nil {
		return respondErr(c, err)
	}

	view := s.presenter(c).FriendRequests([]models.FriendRequest{*req})[0]
	s.publishUserEvent(c, body.ReceiverID, EventFriendRequestReceived, view)
	s.publishUserEvent(c, body.SenderID, EventFriendRequestSent, view)
	s.publishUnread(c, body.ReceiverID)
	return c.Status(fiber.StatusCreated).JSON(view)
}

// AcceptFriendRequest handles POST /api/main/friends/accept
// @Summary Accept an incoming request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body friendRequestBody true "Sender and receiver"
// @Success 200 {object} object{status=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/friends/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	body, err := parseFriendRequest(c)
	if err != nil {
		return nil
	}
	if err := requireActor(c, body.ReceiverID); err != nil {
		return nil
	}

	if err := s.friendService.AcceptRequest(c.UserContext(), body.ReceiverID, body.SenderID); err != nil {
		return respondErr(c, err)
	}

	payload := fiber.Map{"senderId": body.SenderID, "receiverId": body.ReceiverID}
	s.publishUserEvent(c, body.SenderID, EventFriendRequestAccepted, payload)
	s.publishUserEvent(c, body.ReceiverID, EventFriendRequestAccepted, payload)
	s.publishUnread(c, body.SenderID)
	return c.JSON(fiber.Map{"status": models.FriendshipFriends})
}

// DeclineFriendRequest handles POST /api/main/friends/decline
// @Summary Decline an incoming request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body friendRequestBody true "Sender and receiver"
// @Success 200 {object} object{status=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/friends/decline [post]
func (s *Server) DeclineFriendRequest(c *fiber.Ctx) error {
	body, err := parseFriendRequest(c)
	if err != nil {
		return nil
	}
	if err := requireActor(c, body.ReceiverID); err != nil {
		return nil
	}

	if err := s.friendService.DeclineRequest(c.UserContext(), body.ReceiverID, body.SenderID); err != nil {
		return respondErr(c, err)
	}
	s.publishUserEvent(c, body.SenderID, EventFriendRequestDeclined, fiber.Map{"receiverId": body.ReceiverID})
	return c.JSON(fiber.Map{"status": models.FriendshipNone})
}

// CancelFriendRequest handles POST /api/main/friends/cancel
// @Summary Withdraw a sent request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body friendRequestBody true "Sender and receiver"
// @Success 200 {object} object{status=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/friends/cancel [post]
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	body, err := parseFriendRequest(c)
	if err != nil {
		return nil
	}
	if err := requireActor(c, body.SenderID); err != nil {
		return nil
	}

	if err := s.friendService.CancelRequest(c.UserContext(), body.SenderID, body.ReceiverID); err != nil {
		return respondErr(c, err)
	}
	s.publishUserEvent(c, body.ReceiverID, EventFriendRequestCancelled, fiber.Map{"senderId": body.SenderID})
	return c.JSON(fiber.Map{"status": models.FriendshipNone})
}

// RemoveFriend handles POST /api/main/friends/remove
// @Summary Unfriend
// @Tags friends
// @Accept json
// @Produce json
// @Param request body friendPairBody true "User and friend"
// @Success 200 {object} object{status=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /main/friends/remove [post]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	var body friendPairBody
	if err := parseBody(c, &body); err != nil {
		return nil
	}
	if body.FriendID == 0 {
		return respondErr(c, models.NewFieldError(i18n.FieldRequired, "friendId"))
	}
	if err := requireActor(c, body.UserID); err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(c.UserContext(), body.UserID, body.FriendID); err != nil {
		return respondErr(c, err)
	}
	s.publishUserEvent(c, body.FriendID, EventFriendRemoved, fiber.Map{"userId": body.UserID})
	return c.JSON(fiber.Map{"status": models.FriendshipNone})
}

// GetFriends handles GET /api/main/friends
// @Summary List my friends
// @Tags friends
// @Produce json
// @Param userId query int false "Must be the session user"
// @Success 200 {array} present.UserSummary
// @Router /main/friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID, err := subjectUser(c)
	if err != nil {
		return nil
	}
	friends, err := s.friendService.GetFriends(c.UserContext(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Users(friends))
}

// GetPendingRequests handles GET /api/main/friends/pending
// @Summary Incoming friend requests
// @Tags friends
// @Produce json
// @Param userId query int false "Must be the session user"
// @Success 200 {array} present.FriendRequest
// @Router /main/friends/pending [get]
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	userID, err := subjectUser(c)
	if err != nil {
		return nil
	}
	reqs, err := s.friendService.GetPendingRequests(c.UserContext(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).FriendRequests(reqs))
}

// GetSentRequests handles GET /api/main/friends/sent
// @Summary Outgoing friend requests
// @Tags friends
// @Produce json
// @Success 200 {array} present.FriendRequest
// @Router /main/friends/sent [get]
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	userID, err := subjectUser(c)
	if err != nil {
		return nil
	}
	reqs, err := s.friendService.GetSentRequests(c.UserContext(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).FriendRequests(reqs))
}

// GetSuggestions handles GET /api/main/friends/suggestions
// @Summary People you may know
// @Tags friends
// @Produce json
// @Param userId query int false "Must be the session user"
// @Param limit query int false "Max results"
// @Success 200 {array} present.Suggestion
// @Router /main/friends/suggestions [get]
func (s *Server) GetSuggestions(c *fiber.Ctx) error {
	userID, err := subjectUser(c)
	if err != nil {
		return nil
	}
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > maxSuggestions {
		limit = 10
	}
	list, err := s.friendService.Suggestions(c.UserContext(), userID, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s.presenter(c).Suggestions(list))
}

// GetFriendshipStatus handles GET /api/main/friends/status/:userId
// @Summary Relationship between me and another user
// @Tags friends
// @Produce json
// @Param userId path int true "Other user"
// @Success 200 {object} object{status=string}
// @Router /main/friends/status/{userId} [get]
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	targetID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}
	status, err := s.friendService.Status(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}
