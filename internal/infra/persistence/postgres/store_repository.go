package postgres

import (
	"context"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"
	"ratinity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storeRepository implements the repository.StoreRepository interface using GORM.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

// FindByID retrieves a single store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	return toStoreDomain(&storeM), nil
}

// LockByID retrieves a store row under a row-level write lock.
// Callers must invoke this inside a transaction; the lock is held until
// the surrounding transaction commits or rolls back, so concurrent rating
// writes against the same store are serialized.
func (repo *storeRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to lock store by id")
	}

	return toStoreDomain(&storeM), nil
}

// List returns all stores matching the filter, ordered by name.
func (repo *storeRepository) List(ctx context.Context, filter repository.StoreFilter) ([]*entity.Store, error) {
	query := repo.db.WithContext(ctx).Model(&model.StoreModel{})

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var storeMs []model.StoreModel
	if err := query.Order("name ASC").Find(&storeMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	stores := make([]*entity.Store, 0, len(storeMs))
	for i := range storeMs {
		stores = append(stores, toStoreDomain(&storeMs[i]))
	}

	return stores, nil
}

// Count returns the total number of stores.
func (repo *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.StoreModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stores")
	}

	return count, nil
}

// Create persists a new store entity to the database.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStoreAlreadyExists.WrapMessage("store email already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound.WrapMessage("owner account does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// UpdateSummary overwrites the cached rating aggregate columns of a store.
func (repo *storeRepository) UpdateSummary(ctx context.Context, id uuid.UUID, summary entity.RatingSummary) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"average_rating": summary.Average,
			"total_ratings":  summary.Count,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update store summary")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:            data.ID,
		Name:          data.Name,
		Email:         data.Email,
		Address:       data.Address,
		OwnerID:       data.OwnerID,
		AverageRating: data.AverageRating,
		TotalRatings:  data.TotalRatings,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel for persistence.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:            data.ID,
		Name:          data.Name,
		Email:         data.Email,
		Address:       data.Address,
		OwnerID:       data.OwnerID,
		AverageRating: data.AverageRating,
		TotalRatings:  data.TotalRatings,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
