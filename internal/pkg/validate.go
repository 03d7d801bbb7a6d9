package pkg

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// Text trims value and checks that its length in runes lies in [min, max].
func Text(field, value string, min, max int) (string, error) {
	value = strings.TrimSpace(value)
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0 && min > 0:
		return "", domain.Validationf(field + " is required")
	case n < min:
		return "", domain.Validationf(fmt.Sprintf("%s must be at least %d characters", field, min))
	case max > 0 && n > max:
		return "", domain.Validationf(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return value, nil
}

// OptionalText trims *value; nil and blank values yield nil.
func OptionalText(field string, value *string, max int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v, err := Text(field, *value, 0, max)
	if err != nil {
		return nil, err
	}
	if v == "" {
		return nil, nil
	}
	return &v, nil
}

// OptionalID checks that a non-blank *value is a UUID. Blank values yield nil.
func OptionalID(field string, value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.ToLower(strings.TrimSpace(*value))
	if v == "" {
		return nil, nil
	}
	if !ValidID(v) {
		return nil, domain.Validationf(field + " must be a valid UUID")
	}
	return &v, nil
}

// RequireID checks that value is a UUID and returns it normalized.
func RequireID(field, value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", domain.Validationf(field + " is required")
	}
	if !ValidID(v) {
		return "", domain.Validationf(field + " must be a valid UUID")
	}
	return v, nil
}
