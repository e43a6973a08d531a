// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ratinity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRatingNotFound is a domain-specific error returned when a rating is not found.
var ErrRatingNotFound = errors.New("rating not found")

// RatingRepository defines the standard operations for rating persistence.
// A rating is keyed by its natural compound key (AccountID, StoreID); the
// storage enforces at most one record per pair.
type RatingRepository interface {
	// FindByAccountAndStore retrieves the single rating for a compound key,
	// or ErrRatingNotFound.
	FindByAccountAndStore(ctx context.Context, accountID, storeID uuid.UUID) (*entity.Rating, error)

	// ListByStore returns every rating submitted for one store. When
	// withSubmitter is set, each rating carries its submitting account.
	ListByStore(ctx context.Context, storeID uuid.UUID, withSubmitter bool) ([]*entity.Rating, error)

	// ListByAccount returns every rating one account has submitted.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Rating, error)

	// Count returns the total number of ratings.
	Count(ctx context.Context) (int64, error)

	// Create persists a new rating record.
	Create(ctx context.Context, rating *entity.Rating) error

	// Update modifies an existing rating record (score and UpdatedAt; the id
	// and CreatedAt are preserved).
	Update(ctx context.Context, rating *entity.Rating) error
}
