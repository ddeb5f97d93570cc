package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/collectionkit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by the key users write in config files.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Validate validates a struct using `validate` tags.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.InvalidArgument("", "validation failed").WithCause(err)
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fe := FieldError{Field: fieldPath(e), Message: formatValidationError(e)}
		fieldErrors = append(fieldErrors, fe)
		messages = append(messages, fe.Field+" "+fe.Message)
	}

	field := ""
	if len(fieldErrors) == 1 {
		field = fieldErrors[0].Field
	}
	appErr := errors.InvalidArgument(field, strings.Join(messages, "; "))
	appErr.WithDetail("fields", fieldErrors)
	return appErr
}

// fieldPath drops the top-level struct name from the namespace so nested
// fields read like config keys (collection.limit).
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
