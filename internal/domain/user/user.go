package user

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound means no row matched the requested id.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken means the email collides with another stored user.
	ErrEmailTaken = errors.New("email already in use")
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UpdateParams carries the mutable fields for an update. Name and Email are
// always written; PasswordHash only when a new password was submitted.
type UpdateParams struct {
	Name         string
	Email        string
	PasswordHash *string
}

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// the unique constraint behaves case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
