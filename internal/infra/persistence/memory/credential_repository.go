package memory

import (
	"context"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"

	"github.com/google/uuid"
)

// credentialRepository implements repository.CredentialRepository on the in-memory DB.
type credentialRepository struct {
	db *DB
}

// NewCredentialRepository is the constructor for the in-memory credential repository.
func NewCredentialRepository(db *DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

func (repo *credentialRepository) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.Credential, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	credential, ok := repo.db.credentials[accountID]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return cloneCredential(credential), nil
}

func (repo *credentialRepository) Create(_ context.Context, credential *entity.Credential) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.accounts[credential.AccountID]; !ok {
		return domainerrors.ErrAccountNotFound.WrapMessage("account does not exist")
	}
	if _, exists := repo.db.credentials[credential.AccountID]; exists {
		return domainerrors.ErrConflict.WrapMessage("credential already exists for this account")
	}

	now := repo.db.now()
	credential.CreatedAt = now
	credential.UpdatedAt = now

	repo.db.credentials[credential.AccountID] = cloneCredential(credential)

	return nil
}

func (repo *credentialRepository) UpdatePassword(_ context.Context, accountID uuid.UUID, passwordHash string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	credential, ok := repo.db.credentials[accountID]
	if !ok {
		return repository.ErrCredentialNotFound
	}

	credential.PasswordHash = passwordHash
	credential.UpdatedAt = repo.db.now()

	return nil
}
