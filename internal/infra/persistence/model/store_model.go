package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel mirrors the 'stores' table. AverageRating and TotalRatings are a
// cached projection over the store's ratings, rewritten on every rating upsert.
type StoreModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name          string     `gorm:"type:varchar(100);not null"`
	Email         string     `gorm:"type:varchar(255);not null"`
	Address       string     `gorm:"type:varchar(400)"`
	OwnerID       *uuid.UUID `gorm:"type:uuid;index"`
	AverageRating float64    `gorm:"not null;default:0"`
	TotalRatings  int64      `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Owner   *AccountModel `gorm:"foreignKey:OwnerID"`
	Ratings []RatingModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}
