package usecase

import (
	"context"

	"ratinity/internal/domain/entity"

	"github.com/google/uuid"
)

// ListAccountsInput defines the optional filters for listing accounts.
type ListAccountsInput struct {
	Name  string
	Email string
	Role  string
}

// CreateAccountInput defines the data for an admin-initiated account creation.
// Unlike self-registration, any valid role may be assigned.
type CreateAccountInput struct {
	Name     string
	Email    string
	Address  string
	Password string
	Role     entity.Role
}

// AccountUsecase defines the interface for account administration operations.
type AccountUsecase interface {
	ListAccounts(ctx context.Context, input *ListAccountsInput) ([]*entity.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error)
}
