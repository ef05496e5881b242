// Package validation checks request payloads before they reach the service layer.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	maxUsernameLength = 50
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return ValidateUsername(fl.Field().String()) == nil
		})
		_ = validate.RegisterValidation("prep_time", func(fl validator.FieldLevel) bool {
			return prepTimeRegex.MatchString(strings.TrimSpace(fl.Field().String()))
		})
	})
	return validate
}

var prepTimeRegex = regexp.MustCompile(`^\d{1,3}\s*:\s*\d{1,2}$`)

// Struct validates s against its `validate` tags and returns one readable
// error joining every failing field.
func Struct(s any) error {
	if err := instance().Struct(s); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "username":
		return field + " may only contain letters, digits, '.', '_' and '-' (max 50)"
	case "prep_time":
		return field + " must look like HH:MM"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// ValidateUsername checks length and allowed characters of a username.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return errors.New("username may only contain letters, digits, '.', '_' and '-'")
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(password string) error {
	n := len([]rune(password))
	if n < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if n > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}
	return nil
}
