package memory

import (
	"context"
	"sort"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"

	"github.com/google/uuid"
)

// storeRepository implements repository.StoreRepository on the in-memory DB.
type storeRepository struct {
	db *DB
}

// NewStoreRepository is the constructor for the in-memory store repository.
func NewStoreRepository(db *DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

func (repo *storeRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	store, ok := repo.db.stores[id]
	if !ok {
		return nil, repository.ErrStoreNotFound
	}

	return cloneStore(store), nil
}

// LockByID behaves like FindByID here. Write serialization is provided by the
// transaction manager, which admits one transaction at a time.
func (repo *storeRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	return repo.FindByID(ctx, id)
}

func (repo *storeRepository) List(_ context.Context, filter repository.StoreFilter) ([]*entity.Store, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	stores := make([]*entity.Store, 0, len(repo.db.stores))
	for _, store := range repo.db.stores {
		if filter.Search != "" &&
			!containsFold(store.Name, filter.Search) &&
			!containsFold(store.Address, filter.Search) {
			continue
		}
		if filter.OwnerID != nil {
			if store.OwnerID == nil || *store.OwnerID != *filter.OwnerID {
				continue
			}
		}
		stores = append(stores, cloneStore(store))
	}

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].Name < stores[j].Name
	})

	return stores, nil
}

func (repo *storeRepository) Count(_ context.Context) (int64, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return int64(len(repo.db.stores)), nil
}

func (repo *storeRepository) Create(_ context.Context, store *entity.Store) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	email := normalizeEmail(store.Email)
	for _, existing := range repo.db.stores {
		if normalizeEmail(existing.Email) == email {
			return domainerrors.ErrStoreAlreadyExists.WrapMessage("store email already exists")
		}
	}
	if store.OwnerID != nil {
		if _, ok := repo.db.accounts[*store.OwnerID]; !ok {
			return domainerrors.ErrAccountNotFound.WrapMessage("owner account does not exist")
		}
	}

	now := repo.db.now()
	if store.ID == uuid.Nil {
		store.ID = newID()
	}
	store.CreatedAt = now
	store.UpdatedAt = now

	repo.db.stores[store.ID] = cloneStore(store)

	return nil
}

func (repo *storeRepository) UpdateSummary(_ context.Context, id uuid.UUID, summary entity.RatingSummary) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	store, ok := repo.db.stores[id]
	if !ok {
		return repository.ErrStoreNotFound
	}

	store.ApplySummary(summary)
	store.UpdatedAt = repo.db.now()

	return nil
}
