package server

import (
	"errors"
	"log/slog"

	"rawabit/internal/authz"
	"rawabit/internal/i18n"
	"rawabit/internal/middleware"
	"rawabit/internal/models"
	"rawabit/internal/present"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const resourceLocalsKey = "authorizedResource"

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

func currentActor(c *fiber.Ctx) authz.Actor {
	return authz.Actor{UserID: currentUserID(c)}
}

func (s *Server) presenter(c *fiber.Ctx) present.Presenter {
	return present.New(middleware.Lang(c), s.now())
}

// respondErr writes err in the request language. Server-side failures are
// logged with the request context; the client only sees the generic message.
func respondErr(c *fiber.Ctx, err error) error {
	if models.HTTPStatus(err) >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.Respond(c, err)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewFieldError(i18n.InvalidParam, param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage reads ?page= and ?limit=. Missing values take the defaults.
func parsePage(c *fiber.Ctx) (models.PageRequest, error) {
	page, err := models.NewPageRequest(c.QueryInt("page", 0), c.QueryInt("limit", 0))
	if err != nil {
		_ = respondErr(c, err)
		return page, errResponseWritten
	}
	return page, nil
}

func parseContentKind(c *fiber.Ctx) (models.ContentKind, error) {
	raw := c.Params("kind")
	kind, ok := models.ParseContentKind(raw)
	if !ok {
		_ = respondErr(c, models.NewValidationError(i18n.UnknownKind, raw))
		return "", errResponseWritten
	}
	return kind, nil
}

func parseLexiconKind(c *fiber.Ctx) (models.LexiconKind, error) {
	raw := c.Params("entryKind")
	kind, ok := models.ParseLexiconKind(raw)
	if !ok {
		_ = respondErr(c, models.NewValidationError(i18n.UnknownKind, raw))
		return "", errResponseWritten
	}
	return kind, nil
}

func parseTargetKind(c *fiber.Ctx) (models.TargetKind, error) {
	raw := c.Params("targetKind")
	kind, ok := models.ParseTargetKind(raw)
	if !ok {
		_ = respondErr(c, models.NewValidationError(i18n.UnknownKind, raw))
		return "", errResponseWritten
	}
	return kind, nil
}

// parseBody decodes the JSON body into dest, writing a 400 on failure.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		_ = respondErr(c, models.NewValidationError(i18n.InvalidBody))
		return errResponseWritten
	}
	return nil
}

// resourceLoader loads the resource a route names. It may write the
// response itself and return errResponseWritten.
type resourceLoader func(c *fiber.Ctx) (authz.Resource, error)

// requireCapability loads the route's resource, checks that the session
// user may perform action on it and hands it to the next handler via
// authorizedResource. Denials are 403 and leave the resource untouched.
func (s *Server) requireCapability(action authz.Action, load resourceLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := load(c)
		if err != nil {
			if errors.Is(err, errResponseWritten) {
				return nil
			}
			return respondErr(c, err)
		}
		if !currentActor(c).Can(action, r) {
			return respondErr(c, models.NewForbiddenError(i18n.ForbiddenOwner))
		}
		c.Locals(resourceLocalsKey, r)
		return c.Next()
	}
}

func authorizedResource[T authz.Resource](c *fiber.Ctx) T {
	v, _ := c.Locals(resourceLocalsKey).(T)
	return v
}

// requireActor rejects bodies that name someone other than the session
// user as the acting party.
func requireActor(c *fiber.Ctx, userID uint) error {
	if !currentActor(c).Is(userID) {
		_ = respondErr(c, models.NewForbiddenError(i18n.ForbiddenActor))
		return errResponseWritten
	}
	return nil
}
