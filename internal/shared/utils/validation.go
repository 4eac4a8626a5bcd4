package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gohub-app/gohub/internal/shared/errors"
)

// registrationNumberPattern: alphanumeric, 5-50 characters, no leading zero.
var registrationNumberPattern = regexp.MustCompile(`^[A-Za-z1-9][A-Za-z0-9]{4,49}$`)

// IsValidRegistrationNumber reports whether s is an acceptable registration number.
func IsValidRegistrationNumber(s string) bool {
	return registrationNumberPattern.MatchString(s)
}

// RegisterValidators installs the custom tags and JSON field naming on v.
// It is called for gin's binding engine at router start-up.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("regnumber", func(fl validator.FieldLevel) bool {
		return IsValidRegistrationNumber(fl.Field().String())
	})
}

var installOnce sync.Once
var installErr error

// InstallBindingValidators registers the custom tags on gin's binding engine.
// Safe to call more than once.
func InstallBindingValidators() error {
	installOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			installErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		installErr = RegisterValidators(v)
	})
	return installErr
}

// FormatBindingError converts a binding failure into a validation AppError.
func FormatBindingError(err error) error {
	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.NewValidationError("Invalid request body", err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return errors.NewValidationError("Validation failed", strings.Join(messages, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "regnumber":
		return fmt.Sprintf("%s must be 5-50 alphanumeric characters and must not start with 0", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
