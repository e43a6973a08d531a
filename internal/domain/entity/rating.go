// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Rating score bounds. Scores are whole stars.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a single (Account, Store) score record. At most one Rating exists
// per (AccountID, StoreID) pair; submitting again updates the existing record's
// score and UpdatedAt instead of creating a duplicate.
type Rating struct {
	ID        uuid.UUID `json:"id"`         // The unique ID for this rating record.
	AccountID uuid.UUID `json:"account_id"` // The account that submitted the rating.
	StoreID   uuid.UUID `json:"store_id"`   // The store the rating applies to.
	Score     int       `json:"score"`      // Whole-star score in [MinScore, MaxScore].
	CreatedAt time.Time `json:"created_at"` // Timestamp of the first submission for this (account, store) pair.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the most recent submission.

	// Submitter is an optional view-layer join: the account that submitted
	// this rating. Populated only by read operations that request it.
	Submitter *Account `json:"submitter,omitempty"`
}

// ValidScore reports whether a submitted score is a whole star within bounds.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// RatingSummary is the derived (average, count) projection cached on a Store.
type RatingSummary struct {
	Average float64
	Count   int64
}

// SummarizeRatings computes the aggregate projection for one store's rating
// set. It is pure and idempotent: the same input always yields the same output.
//
// The average is the arithmetic mean of scores rounded to one decimal place,
// half away from zero at the tenths digit, and 0 for an empty set.
func SummarizeRatings(ratings []*Rating) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}

	var sum int
	for _, r := range ratings {
		sum += r.Score
	}

	mean := float64(sum) / float64(len(ratings))

	return RatingSummary{
		Average: math.Round(mean*10) / 10,
		Count:   int64(len(ratings)),
	}
}
