package middleware

import (
	"context"
	"errors"
	"time"

	"rawabit/internal/i18n"
	"rawabit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Locale negotiates the response language. An explicit ?lang= wins over
// Accept-Language; Arabic is the fallback.
func Locale() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := i18n.FromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
		if q := c.Query("lang"); q != "" {
			lang = i18n.Parse(q)
		}
		c.Locals(i18n.LocalsKey, lang)
		c.Set(fiber.HeaderContentLanguage, string(lang))
		return c.Next()
	}
}

// Lang returns the language negotiated by Locale.
func Lang(c *fiber.Ctx) i18n.Lang {
	if l, ok := c.Locals(i18n.LocalsKey).(i18n.Lang); ok {
		return l
	}
	return i18n.Default
}

// Timeout bounds the request context. Handlers that pass c.UserContext()
// down to the database see their queries cancelled once d elapses.
func Timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && c.Response().StatusCode() >= fiber.StatusInternalServerError {
			return models.RespondWithError(c, fiber.StatusGatewayTimeout, models.NewTimeoutError())
		}
		return err
	}
}
