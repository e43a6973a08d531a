package usecase

import (
	"context"

	"ratinity/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminStats holds the platform-wide counters shown on the admin dashboard.
type AdminStats struct {
	TotalAccounts int64 `json:"totalAccounts"`
	TotalStores   int64 `json:"totalStores"`
	TotalRatings  int64 `json:"totalRatings"`
}

// OwnerStoreDashboard pairs one owned store with the ratings it has received,
// each enriched with its submitting account.
type OwnerStoreDashboard struct {
	Store   *entity.Store    `json:"store"`
	Ratings []*entity.Rating `json:"ratings"`
}

// DashboardUsecase defines the interface for dashboard read models.
type DashboardUsecase interface {
	// AdminStats returns platform-wide totals. Results may be served from the
	// stats cache and can therefore be slightly stale.
	AdminStats(ctx context.Context) (*AdminStats, error)

	// OwnerDashboard returns every store owned by the account together with
	// its ratings and their submitters.
	OwnerDashboard(ctx context.Context, ownerID uuid.UUID) ([]*OwnerStoreDashboard, error)
}
