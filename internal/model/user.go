package model

import (
	"time"
)

// User accounts are passwordless; sign-in happens through emailed links.
type User struct {
	ID              string     `db:"id"`
	Email           string     `db:"email"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
