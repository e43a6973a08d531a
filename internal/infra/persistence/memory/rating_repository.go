package memory

import (
	"context"
	"sort"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"

	"github.com/google/uuid"
)

// ratingRepository implements repository.RatingRepository on the in-memory DB.
type ratingRepository struct {
	db *DB
}

// NewRatingRepository is the constructor for the in-memory rating repository.
func NewRatingRepository(db *DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (repo *ratingRepository) FindByAccountAndStore(_ context.Context, accountID, storeID uuid.UUID) (*entity.Rating, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	id, ok := repo.db.ratingIndex[ratingKey{accountID: accountID, storeID: storeID}]
	if !ok {
		return nil, repository.ErrRatingNotFound
	}

	return cloneRating(repo.db.ratings[id]), nil
}

func (repo *ratingRepository) ListByStore(_ context.Context, storeID uuid.UUID, withSubmitter bool) ([]*entity.Rating, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	ratings := make([]*entity.Rating, 0)
	for _, rating := range repo.db.ratings {
		if rating.StoreID != storeID {
			continue
		}
		clone := cloneRating(rating)
		if withSubmitter {
			clone.Submitter = cloneAccount(repo.db.accounts[rating.AccountID])
		}
		ratings = append(ratings, clone)
	}

	sortRatingsNewestFirst(ratings)

	return ratings, nil
}

func (repo *ratingRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.Rating, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	ratings := make([]*entity.Rating, 0)
	for _, rating := range repo.db.ratings {
		if rating.AccountID != accountID {
			continue
		}
		ratings = append(ratings, cloneRating(rating))
	}

	sortRatingsNewestFirst(ratings)

	return ratings, nil
}

func (repo *ratingRepository) Count(_ context.Context) (int64, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return int64(len(repo.db.ratings)), nil
}

func (repo *ratingRepository) Create(_ context.Context, rating *entity.Rating) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if !entity.ValidScore(rating.Score) {
		return domainerrors.ErrInvalidScore
	}
	if _, ok := repo.db.accounts[rating.AccountID]; !ok {
		return domainerrors.ErrNotFound.WrapMessage("account does not exist")
	}
	if _, ok := repo.db.stores[rating.StoreID]; !ok {
		return domainerrors.ErrNotFound.WrapMessage("store does not exist")
	}

	key := ratingKey{accountID: rating.AccountID, storeID: rating.StoreID}
	if _, exists := repo.db.ratingIndex[key]; exists {
		return domainerrors.ErrConflict.WrapMessage("rating already exists for this account and store")
	}

	now := repo.db.now()
	if rating.ID == uuid.Nil {
		rating.ID = newID()
	}
	rating.CreatedAt = now
	rating.UpdatedAt = now

	repo.db.ratings[rating.ID] = cloneRating(rating)
	repo.db.ratingIndex[key] = rating.ID

	return nil
}

func (repo *ratingRepository) Update(_ context.Context, rating *entity.Rating) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if !entity.ValidScore(rating.Score) {
		return domainerrors.ErrInvalidScore
	}

	existing, ok := repo.db.ratings[rating.ID]
	if !ok {
		return repository.ErrRatingNotFound
	}

	existing.Score = rating.Score
	existing.UpdatedAt = repo.db.now()
	rating.UpdatedAt = existing.UpdatedAt

	return nil
}

func sortRatingsNewestFirst(ratings []*entity.Rating) {
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].UpdatedAt.After(ratings[j].UpdatedAt)
	})
}
