// Package validation provides input validation utilities
package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"rawabit/internal/i18n"
	"rawabit/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct validates v against its `validate` tags and returns the first
// failure as a localized validation error.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return models.NewValidationError(i18n.InvalidBody)
	}
	return fieldError(fieldErrs[0])
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return models.NewFieldError(i18n.FieldRequired, field)
	case "max":
		if n, err := strconv.Atoi(fe.Param()); err == nil && fe.Kind() == reflect.String {
			return models.NewFieldError(i18n.FieldTooLong, field, n)
		}
	case "min":
		if n, err := strconv.Atoi(fe.Param()); err == nil && fe.Kind() == reflect.String {
			return models.NewFieldError(i18n.FieldTooShort, field, n)
		}
	case "email":
		return models.NewValidationError(i18n.EmailInvalid)
	}
	return models.NewFieldError(i18n.FieldInvalid, field)
}
