package validation

import (
	"errors"
	"strings"
)

// ValidateName validates a profile display name.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("name is required")
	}

	if err := Validator().Var(trimmed, "max=100"); err != nil {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}
