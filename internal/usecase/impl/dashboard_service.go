package impl

import (
	"context"
	"log/slog"
	"time"

	"ratinity/config"
	deliverycontext "ratinity/internal/delivery/context"
	"ratinity/internal/domain/repository"
	"ratinity/internal/domain/service"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const adminStatsCacheKey = "dashboard:admin_stats"

const defaultStatsTTL = 30 * time.Second

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	accountRepo repository.AccountRepository
	storeRepo   repository.StoreRepository
	ratingRepo  repository.RatingRepository
	statsCache  service.StatsCache
	statsTTL    time.Duration
	logger      *slog.Logger
}

// DashboardServiceParams holds dependencies for DashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	StoreRepo   repository.StoreRepository
	RatingRepo  repository.RatingRepository
	StatsCache  service.StatsCache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	statsTTL := defaultStatsTTL
	if params.Config != nil && params.Config.Redis != nil && params.Config.Redis.StatsTTL > 0 {
		statsTTL = params.Config.Redis.StatsTTL
	}

	return &dashboardService{
		accountRepo: params.AccountRepo,
		storeRepo:   params.StoreRepo,
		ratingRepo:  params.RatingRepo,
		statsCache:  params.StatsCache,
		statsTTL:    statsTTL,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AdminStats returns platform-wide totals, served from the stats cache when warm.
func (srv *dashboardService) AdminStats(ctx context.Context) (*usecase.AdminStats, error) {
	var stats usecase.AdminStats

	hit, err := srv.statsCache.Get(ctx, adminStatsCacheKey, &stats)
	if err != nil {
		// A broken cache should not take the dashboard down.
		srv.log(ctx).Warn("Stats cache read failed, falling back to repositories", "error", err.Error())
	}
	if hit {
		return &stats, nil
	}

	if stats.TotalAccounts, err = srv.accountRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count accounts")
	}
	if stats.TotalStores, err = srv.storeRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count stores")
	}
	if stats.TotalRatings, err = srv.ratingRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count ratings")
	}

	if err := srv.statsCache.Set(ctx, adminStatsCacheKey, &stats, srv.statsTTL); err != nil {
		srv.log(ctx).Warn("Stats cache write failed", "error", err.Error())
	}

	return &stats, nil
}

// OwnerDashboard returns every store owned by the account together with its
// ratings, each enriched with the submitting account.
func (srv *dashboardService) OwnerDashboard(ctx context.Context, ownerID uuid.UUID) ([]*usecase.OwnerStoreDashboard, error) {
	stores, err := srv.storeRepo.List(ctx, repository.StoreFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owned stores")
	}

	dashboards := make([]*usecase.OwnerStoreDashboard, 0, len(stores))
	for _, store := range stores {
		ratings, err := srv.ratingRepo.ListByStore(ctx, store.ID, true)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list store ratings")
		}
		dashboards = append(dashboards, &usecase.OwnerStoreDashboard{
			Store:   store,
			Ratings: ratings,
		})
	}

	return dashboards, nil
}
