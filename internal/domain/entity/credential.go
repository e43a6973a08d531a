// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential represents an account's login secret. Exactly one credential
// exists per account; it stores a bcrypt hash, never the plaintext password.
type Credential struct {
	AccountID    uuid.UUID // Links this credential to the Account it belongs to.
	PasswordHash string    // The bcrypt-hashed password.
	CreatedAt    time.Time // Timestamp of when this credential was created.
	UpdatedAt    time.Time // Timestamp of the last password change.
}
