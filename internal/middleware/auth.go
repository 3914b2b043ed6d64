package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

// TokenFromRequest returns the raw session token from the session cookie or
// the Authorization header. WebSocket upgrades may also pass ?token=.
func TokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if cookieName != "" {
		if v := c.Cookies(cookieName); v != "" {
			return v
		}
	}
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if strings.EqualFold(c.Get(fiber.HeaderUpgrade), "websocket") {
		return c.Query("token")
	}
	return ""
}

// ParseSessionToken verifies an HS256 session token and its issuer, audience and subject.
func ParseSessionToken(raw, secret, issuer, audience string) (*SessionClaims, error) {
	if raw == "" {
		return nil, errors.New("empty token")
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, fmt.Errorf("invalid subject %q", sub)
	}

	out := &SessionClaims{UserID: uint(userID)}
	if jti, ok := claims["jti"].(string); ok {
		out.JTI = jti
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
