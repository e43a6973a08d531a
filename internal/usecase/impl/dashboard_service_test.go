package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"ratinity/config"
	"ratinity/internal/domain/entity"
	"ratinity/internal/domain/repository"
	mockRepo "ratinity/internal/mocks/repository"
	mockSvc "ratinity/internal/mocks/service"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// dashboardServiceFixtures holds all test dependencies for dashboard service tests.
type dashboardServiceFixtures struct {
	service     usecase.DashboardUsecase
	accountRepo *mockRepo.MockAccountRepository
	storeRepo   *mockRepo.MockStoreRepository
	ratingRepo  *mockRepo.MockRatingRepository
	statsCache  *mockSvc.MockStatsCache
}

func createTestDashboardService(t *testing.T) dashboardServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	storeRepo := mockRepo.NewMockStoreRepository(t)
	ratingRepo := mockRepo.NewMockRatingRepository(t)
	statsCache := mockSvc.NewMockStatsCache(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewDashboardService(DashboardServiceParams{
		AccountRepo: accountRepo,
		StoreRepo:   storeRepo,
		RatingRepo:  ratingRepo,
		StatsCache:  statsCache,
		Config:      &config.Config{},
		Logger:      logger,
	})

	return dashboardServiceFixtures{
		service:     service,
		accountRepo: accountRepo,
		storeRepo:   storeRepo,
		ratingRepo:  ratingRepo,
		statsCache:  statsCache,
	}
}

func TestDashboardService_AdminStats_CacheMiss(t *testing.T) {
	fx := createTestDashboardService(t)

	ctx := context.Background()

	fx.statsCache.EXPECT().
		Get(ctx, "dashboard:admin_stats", mock.AnythingOfType("*usecase.AdminStats")).
		Return(false, nil)
	fx.accountRepo.EXPECT().Count(ctx).Return(int64(5), nil)
	fx.storeRepo.EXPECT().Count(ctx).Return(int64(3), nil)
	fx.ratingRepo.EXPECT().Count(ctx).Return(int64(12), nil)
	fx.statsCache.EXPECT().
		Set(ctx, "dashboard:admin_stats", mock.AnythingOfType("*usecase.AdminStats"), 30*time.Second).
		Return(nil)

	stats, err := fx.service.AdminStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalAccounts)
	assert.Equal(t, int64(3), stats.TotalStores)
	assert.Equal(t, int64(12), stats.TotalRatings)
}

func TestDashboardService_AdminStats_CacheHit(t *testing.T) {
	fx := createTestDashboardService(t)

	ctx := context.Background()

	fx.statsCache.EXPECT().
		Get(ctx, "dashboard:admin_stats", mock.AnythingOfType("*usecase.AdminStats")).
		Run(func(ctx context.Context, key string, dest interface{}) {
			cached := dest.(*usecase.AdminStats)
			cached.TotalAccounts = 7
			cached.TotalStores = 4
			cached.TotalRatings = 19
		}).
		Return(true, nil)

	stats, err := fx.service.AdminStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalAccounts)
	assert.Equal(t, int64(4), stats.TotalStores)
	assert.Equal(t, int64(19), stats.TotalRatings)
}

func TestDashboardService_AdminStats_CacheFailureFallsBack(t *testing.T) {
	fx := createTestDashboardService(t)

	ctx := context.Background()

	fx.statsCache.EXPECT().
		Get(ctx, "dashboard:admin_stats", mock.AnythingOfType("*usecase.AdminStats")).
		Return(false, errors.New("redis unreachable"))
	fx.accountRepo.EXPECT().Count(ctx).Return(int64(2), nil)
	fx.storeRepo.EXPECT().Count(ctx).Return(int64(1), nil)
	fx.ratingRepo.EXPECT().Count(ctx).Return(int64(0), nil)
	fx.statsCache.EXPECT().
		Set(ctx, "dashboard:admin_stats", mock.AnythingOfType("*usecase.AdminStats"), 30*time.Second).
		Return(errors.New("redis unreachable"))

	stats, err := fx.service.AdminStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalAccounts)
}

func TestDashboardService_OwnerDashboard(t *testing.T) {
	fx := createTestDashboardService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	store := &entity.Store{ID: uuid.New(), Name: "Tech Paradise", OwnerID: &ownerID}
	ratings := []*entity.Rating{
		{
			ID:        uuid.New(),
			StoreID:   store.ID,
			Score:     4,
			Submitter: &entity.Account{Name: "John Doe", Email: "john@example.com"},
		},
	}

	fx.storeRepo.EXPECT().
		List(ctx, repository.StoreFilter{OwnerID: &ownerID}).
		Return([]*entity.Store{store}, nil)
	fx.ratingRepo.EXPECT().
		ListByStore(ctx, store.ID, true).
		Return(ratings, nil)

	dashboards, err := fx.service.OwnerDashboard(ctx, ownerID)

	require.NoError(t, err)
	require.Len(t, dashboards, 1)
	assert.Equal(t, store, dashboards[0].Store)
	assert.Equal(t, ratings, dashboards[0].Ratings)
}

func TestDashboardService_OwnerDashboard_NoStores(t *testing.T) {
	fx := createTestDashboardService(t)

	ctx := context.Background()
	ownerID := uuid.New()

	fx.storeRepo.EXPECT().
		List(ctx, repository.StoreFilter{OwnerID: &ownerID}).
		Return([]*entity.Store{}, nil)

	dashboards, err := fx.service.OwnerDashboard(ctx, ownerID)

	require.NoError(t, err)
	assert.Empty(t, dashboards)
}
