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
)

// ratingRepository implements the repository.RatingRepository interface using GORM.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

// FindByAccountAndStore retrieves the single rating an account has submitted for a store.
func (repo *ratingRepository) FindByAccountAndStore(ctx context.Context, accountID, storeID uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("account_id = ? AND store_id = ?", accountID, storeID).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by account and store")
	}

	return toRatingDomain(&ratingM, nil), nil
}

// ListByStore returns all ratings for a store, newest first.
// When withSubmitter is true the submitter account is joined in so callers
// can render who left each rating.
func (repo *ratingRepository) ListByStore(ctx context.Context, storeID uuid.UUID, withSubmitter bool) ([]*entity.Rating, error) {
	var ratingMs []model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("updated_at DESC").
		Find(&ratingMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by store")
	}

	if !withSubmitter || len(ratingMs) == 0 {
		return toRatingDomains(ratingMs, nil), nil
	}

	accountIDs := make([]uuid.UUID, 0, len(ratingMs))
	for i := range ratingMs {
		accountIDs = append(accountIDs, ratingMs[i].AccountID)
	}

	var accountMs []model.AccountModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", accountIDs).
		Find(&accountMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load rating submitters")
	}

	submitters := make(map[uuid.UUID]*entity.Account, len(accountMs))
	for i := range accountMs {
		submitters[accountMs[i].ID] = toAccountDomain(&accountMs[i])
	}

	return toRatingDomains(ratingMs, submitters), nil
}

// ListByAccount returns all ratings submitted by an account, newest first.
func (repo *ratingRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Rating, error) {
	var ratingMs []model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("updated_at DESC").
		Find(&ratingMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by account")
	}

	return toRatingDomains(ratingMs, nil), nil
}

// Count returns the total number of ratings.
func (repo *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.RatingModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings")
	}

	return count, nil
}

// Create persists a new rating entity to the database.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("rating already exists for this account and store")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("account or store does not exist")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidScore
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// Update overwrites the score of an existing rating.
func (repo *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Save(ratingM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidScore
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update rating")
	}

	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

func toRatingDomains(ratingMs []model.RatingModel, submitters map[uuid.UUID]*entity.Account) []*entity.Rating {
	ratings := make([]*entity.Rating, 0, len(ratingMs))
	for i := range ratingMs {
		var submitter *entity.Account
		if submitters != nil {
			submitter = submitters[ratingMs[i].AccountID]
		}
		ratings = append(ratings, toRatingDomain(&ratingMs[i], submitter))
	}

	return ratings
}

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel, submitter *entity.Account) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		AccountID: data.AccountID,
		StoreID:   data.StoreID,
		Score:     data.Score,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
		Submitter: submitter,
	}
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel for persistence.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		StoreID:   data.StoreID,
		Score:     data.Score,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
