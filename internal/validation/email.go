package validation

import (
	"errors"
)

// ValidateEmail checks format and the 254 character limit of RFC 5321.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	if err := Validator().Var(email, "email"); err != nil {
		return errors.New("invalid email address format")
	}

	return nil
}
