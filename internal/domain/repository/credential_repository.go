// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ratinity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCredentialNotFound is returned when no credential exists for an account.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository defines the standard operations for credential persistence.
type CredentialRepository interface {
	// FindByAccountID retrieves the credential belonging to an account.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Credential, error)

	// Create persists a new credential for an account.
	Create(ctx context.Context, credential *entity.Credential) error

	// UpdatePassword overwrites the stored hash for an account and bumps
	// the credential's UpdatedAt timestamp.
	UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error
}
