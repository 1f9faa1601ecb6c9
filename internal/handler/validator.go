package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
)

// validate is shared by all handlers. validator.Validate caches struct
// metadata, so one instance per process is the intended usage.
var validate = validator.New()

// validateStruct runs the `validate` tags on a request struct and folds
// any failures into a single apperror validation error, so the boundary
// check happens before a service or the database is ever touched.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		field := ""
		if len(ve) > 0 {
			field = strings.ToLower(ve[0].Field())
		}
		return apperror.ValidationFailed(field, strings.Join(msgs, "; "))
	}
	return apperror.ValidationFailed("", "invalid request")
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
