package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rawabit/internal/i18n"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocale(t *testing.T) {
	app := fiber.New()
	app.Use(Locale())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(string(Lang(c)))
	})

	tests := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{"default arabic", "", "", "ar"},
		{"english header", "en-GB,en;q=0.9", "", "en"},
		{"unsupported header", "de-DE", "", "ar"},
		{"query overrides header", "en", "ar", "ar"},
		{"query english", "", "en", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/"
			if tt.query != "" {
				target += "?lang=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.want, string(body))
			assert.Equal(t, tt.want, resp.Header.Get("Content-Language"))
		})
	}
}

func TestLangWithoutMiddlewareDefaultsToArabic(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(string(Lang(c)))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, string(i18n.Arabic), string(body))
}

func TestTimeoutBoundsUserContext(t *testing.T) {
	app := fiber.New()
	app.Use(Timeout(50 * time.Millisecond))
	app.Get("/", func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		if !ok || time.Until(deadline) > 50*time.Millisecond {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/slow", func(c *fiber.Ctx) error {
		<-c.UserContext().Done()
		if c.UserContext().Err() == context.DeadlineExceeded {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/slow", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusGatewayTimeout, resp.StatusCode)
}
