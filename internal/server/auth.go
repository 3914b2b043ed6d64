package server

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"rawabit/internal/i18n"
	"rawabit/internal/middleware"
	"rawabit/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const revokedKeyPrefix = "blacklist:"

// AuthRequired accepts the session cookie or a Bearer token, rejects
// revoked tokens and stores the user ID in locals and the request context.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := middleware.TokenFromRequest(c, s.config.SessionCookie)
		if raw == "" {
			return respondErr(c, models.NewUnauthorizedError(i18n.AuthRequired))
		}

		claims, err := middleware.ParseSessionToken(raw, s.config.JWTSecret, s.config.JWTIssuer, s.config.JWTAudience)
		if err != nil {
			return respondErr(c, models.NewUnauthorizedError(i18n.InvalidToken))
		}
		if s.isRevoked(c.UserContext(), claims.JTI) {
			return respondErr(c, models.NewUnauthorizedError(i18n.TokenRevoked))
		}

		c.Locals("userID", claims.UserID)
		c.Locals("jti", claims.JTI)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, claims.UserID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// isRevoked fails open when Redis is unavailable.
func (s *Server) isRevoked(ctx context.Context, jti string) bool {
	if jti == "" || s.redis == nil {
		return false
	}
	n, err := s.redis.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		middleware.Logger.WarnContext(ctx, "token revocation check failed", slog.String("error", err.Error()))
		return false
	}
	return n > 0
}

// revoke blacklists jti until the token would have expired anyway.
func (s *Server) revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" || s.redis == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (s *Server) sessionTTL() time.Duration {
	if s.config.SessionTTLH <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(s.config.SessionTTLH) * time.Hour
}

// issueToken signs an HS256 session token for user.
func (s *Server) issueToken(user *models.User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.sessionTTL())
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"iss":      s.config.JWTIssuer,
		"aud":      s.config.JWTAudience,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	return signed, exp, err
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	if s.config.SessionCookie == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	if s.config.SessionCookie == "" {
		return
	}
	c.ClearCookie(s.config.SessionCookie)
}
