package usecase

import (
	"context"

	"ratinity/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitRatingInput defines the data required to submit or revise a rating.
type SubmitRatingInput struct {
	AccountID uuid.UUID
	StoreID   uuid.UUID
	Score     int
}

// SubmitRatingOutput returns the upserted rating together with the store's
// freshly recomputed aggregates.
type SubmitRatingOutput struct {
	Rating *entity.Rating `json:"rating"`
	Store  *entity.Store  `json:"store"`
}

// RatingUsecase defines the interface for rating-related business operations.
type RatingUsecase interface {
	// SubmitRating creates the account's rating for a store, or updates its
	// score in place when one already exists. The store's cached aggregate is
	// recomputed in the same transaction.
	SubmitRating(ctx context.Context, input *SubmitRatingInput) (*SubmitRatingOutput, error)

	ListStoreRatings(ctx context.Context, storeID uuid.UUID, withSubmitter bool) ([]*entity.Rating, error)
	ListAccountRatings(ctx context.Context, accountID uuid.UUID) ([]*entity.Rating, error)

	// ReconcileAggregates recomputes every store's cached aggregate from its
	// ratings and rewrites the ones that drifted. It returns how many stores
	// were corrected.
	ReconcileAggregates(ctx context.Context) (int, error)
}
