// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store is a rateable business entity, optionally owned by an Account with the
// STORE_OWNER role.
//
// AverageRating and TotalRatings are not independent state. They are a cached
// projection over the store's Ratings and must always equal
// SummarizeRatings(ratings for this store); every rating write recomputes them
// synchronously in the same transaction.
type Store struct {
	ID            uuid.UUID  `json:"id"`                 // The Global Unique Identifier (GUID) for the store.
	Name          string     `json:"name"`               // The store's display name.
	Email         string     `json:"email"`              // The store's contact email.
	Address       string     `json:"address"`            // The store's postal address.
	OwnerID       *uuid.UUID `json:"owner_id,omitempty"` // Optional reference to the owning Account. Nil for unclaimed stores.
	AverageRating float64    `json:"average_rating"`     // Derived: mean of the store's rating scores, rounded to one decimal.
	TotalRatings  int64      `json:"total_ratings"`      // Derived: number of ratings submitted for this store.
	CreatedAt     time.Time  `json:"created_at"`         // Timestamp of when this store was created.
	UpdatedAt     time.Time  `json:"updated_at"`         // Timestamp of the last modification to this store's data.
}

// ApplySummary overwrites the store's cached rating projection.
func (s *Store) ApplySummary(summary RatingSummary) {
	s.AverageRating = summary.Average
	s.TotalRatings = summary.Count
}
