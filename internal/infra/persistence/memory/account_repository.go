package memory

import (
	"context"
	"sort"
	"strings"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"

	"github.com/google/uuid"
)

// accountRepository implements repository.AccountRepository on the in-memory DB.
type accountRepository struct {
	db *DB
}

// NewAccountRepository is the constructor for the in-memory account repository.
func NewAccountRepository(db *DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	account, ok := repo.db.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

func (repo *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	id, ok := repo.db.emailIndex[normalizeEmail(email)]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneAccount(repo.db.accounts[id]), nil
}

func (repo *accountRepository) List(_ context.Context, filter repository.AccountFilter) ([]*entity.Account, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	accounts := make([]*entity.Account, 0, len(repo.db.accounts))
	for _, account := range repo.db.accounts {
		if filter.Name != "" && !containsFold(account.Name, filter.Name) {
			continue
		}
		if filter.Email != "" && !containsFold(account.Email, filter.Email) {
			continue
		}
		if filter.Role != "" && account.Role != filter.Role {
			continue
		}
		accounts = append(accounts, cloneAccount(account))
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})

	return accounts, nil
}

func (repo *accountRepository) Count(_ context.Context) (int64, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return int64(len(repo.db.accounts)), nil
}

func (repo *accountRepository) Create(_ context.Context, account *entity.Account) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	email := normalizeEmail(account.Email)
	if _, exists := repo.db.emailIndex[email]; exists {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists")
	}

	now := repo.db.now()
	if account.ID == uuid.Nil {
		account.ID = newID()
	}
	account.CreatedAt = now
	account.UpdatedAt = now

	repo.db.accounts[account.ID] = cloneAccount(account)
	repo.db.emailIndex[email] = account.ID

	return nil
}

func (repo *accountRepository) Update(_ context.Context, account *entity.Account) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	existing, ok := repo.db.accounts[account.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}

	email := normalizeEmail(account.Email)
	if id, exists := repo.db.emailIndex[email]; exists && id != account.ID {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists")
	}

	delete(repo.db.emailIndex, normalizeEmail(existing.Email))
	account.UpdatedAt = repo.db.now()
	repo.db.accounts[account.ID] = cloneAccount(account)
	repo.db.emailIndex[email] = account.ID

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
