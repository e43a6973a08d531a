package model

import (
	"time"

	"github.com/google/uuid"
)

// RatingModel mirrors the 'ratings' table. The composite unique index enforces
// the one-rating-per-(account, store) invariant at the storage layer.
type RatingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_account_store"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_account_store;index"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 5"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Account *AccountModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
