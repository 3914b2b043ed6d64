package server

import (
	"strings"

	"rawabit/internal/i18n"
	"rawabit/internal/middleware"
	"rawabit/internal/models"
	"rawabit/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body signupRequest true "Signup request"
// @Success 201 {object} object{token=string,user=present.Profile}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validation.Struct(req); err != nil {
		return respondErr(c, err)
	}
	for _, check := range []error{
		validation.ValidateUsername(req.Username),
		validation.ValidateEmail(req.Email),
		validation.ValidatePassword(req.Password),
	} {
		if check != nil {
			return respondErr(c, check)
		}
	}

	ctx := c.UserContext()
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return respondErr(c, err)
	}
	if existing != nil {
		return respondErr(c, models.NewConflictError(i18n.UserExists))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return respondErr(c, err)
	}

	token, exp, err := s.issueToken(user)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token, exp)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  s.presenter(c).Profile(user, true),
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Login credentials"
// @Success 200 {object} object{token=string,user=present.Profile}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if err := validation.Struct(req); err != nil {
		return respondErr(c, err)
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return respondErr(c, err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return respondErr(c, models.NewUnauthorizedError(i18n.InvalidLogin))
	}

	token, exp, err := s.issueToken(user)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token, exp)

	return c.JSON(fiber.Map{
		"token": token,
		"user":  s.presenter(c).Profile(user, true),
	})
}

// Logout handles POST /api/auth/logout. The presented token is revoked
// until its expiry; an absent or invalid token only clears the cookie.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	raw := middleware.TokenFromRequest(c, s.config.SessionCookie)
	if raw != "" {
		if claims, err := middleware.ParseSessionToken(raw, s.config.JWTSecret, s.config.JWTIssuer, s.config.JWTAudience); err == nil {
			if err := s.revoke(c.UserContext(), claims.JTI, claims.ExpiresAt); err != nil {
				return respondErr(c, models.NewInternalError(err))
			}
		}
	}
	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": i18n.T(middleware.Lang(c), i18n.LoggedOut)})
}
