package service

import (
	"context"
)

// RatingEvent is emitted after a rating upsert commits. Downstream consumers
// (owner notification pipelines, analytics) receive the fresh aggregate so
// they never need to re-query the store.
type RatingEvent struct {
	RequestID     string  `json:"request_id,omitempty"` // For distributed tracing
	RatingID      string  `json:"rating_id"`
	AccountID     string  `json:"account_id"`
	StoreID       string  `json:"store_id"`
	Score         int     `json:"score"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishRatingEvent publishes a rating event for async processing
	PublishRatingEvent(ctx context.Context, event *RatingEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
