package models

import (
	"errors"
	"fmt"

	"rawabit/internal/i18n"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeTimeout      = "TIMEOUT"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError is an application error whose user-facing text is a catalog key
// rendered in the caller's language at response time.
type AppError struct {
	Code    string
	Key     i18n.Key
	Args    []any
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Localize renders the error text for lang. Internal errors never expose their cause.
func (e *AppError) Localize(lang i18n.Lang) string {
	if e.Key == "" {
		return e.Message
	}
	return i18n.T(lang, e.Key, localizeArgs(lang, e.Args)...)
}

// resourceName marks an argument that should be translated as a resource name.
type resourceName string

func localizeArgs(lang i18n.Lang, args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		if r, ok := a.(resourceName); ok {
			out[i] = i18n.Resource(lang, string(r))
			continue
		}
		out[i] = a
	}
	return out
}

func newAppError(code string, key i18n.Key, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Args:    args,
		Message: i18n.T(i18n.English, key, localizeArgs(i18n.English, args)...),
	}
}

// NewNotFoundError reports a missing resource; resource is a catalog resource name such as "post".
func NewNotFoundError(resource string, id interface{}) *AppError {
	return newAppError(CodeNotFound, i18n.NotFound, resourceName(resource), id)
}

func NewValidationError(key i18n.Key, args ...any) *AppError {
	return newAppError(CodeValidation, key, args...)
}

// NewFieldError is a validation error whose first argument is a field name to translate.
func NewFieldError(key i18n.Key, field string, args ...any) *AppError {
	return newAppError(CodeValidation, key, append([]any{resourceName(field)}, args...)...)
}

func NewUnauthorizedError(key i18n.Key) *AppError {
	return newAppError(CodeUnauthorized, key)
}

func NewForbiddenError(key i18n.Key) *AppError {
	return newAppError(CodeForbidden, key)
}

func NewConflictError(key i18n.Key) *AppError {
	return newAppError(CodeConflict, key)
}

func NewRateLimitError() *AppError {
	return newAppError(CodeRateLimited, i18n.TooManyRequests)
}

func NewTimeoutError() *AppError {
	return newAppError(CodeTimeout, i18n.RequestTimeout)
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Key:     i18n.Internal,
		Message: i18n.T(i18n.English, i18n.Internal),
		Err:     err,
	}
}

// HTTPStatus maps an error to its response status. Unknown errors are 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	case CodeTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeNotFound
}

// RespondWithError writes a localized error body. Non-AppErrors and internal
// errors are rendered with the generic internal message.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	lang, ok := c.Locals(i18n.LocalsKey).(i18n.Lang)
	if !ok {
		lang = i18n.Default
	}

	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code == CodeInternal {
		return c.Status(status).JSON(ErrorResponse{
			Error: i18n.T(lang, i18n.Internal),
			Code:  CodeInternal,
		})
	}
	return c.Status(status).JSON(ErrorResponse{
		Error: appErr.Localize(lang),
		Code:  appErr.Code,
	})
}

// Respond writes err with the status HTTPStatus derives for it.
func Respond(c *fiber.Ctx, err error) error {
	return RespondWithError(c, HTTPStatus(err), err)
}
