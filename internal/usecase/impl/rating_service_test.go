package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/infra/persistence/memory"
	mockSvc "ratinity/internal/mocks/service"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ratingServiceFixtures holds all test dependencies for rating service tests.
type ratingServiceFixtures struct {
	service   usecase.RatingUsecase
	db        *memory.DB
	publisher *mockSvc.MockEventPublisher
}

func createTestRatingService(t *testing.T) ratingServiceFixtures {
	db := memory.NewDB()
	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().
		PublishRatingEvent(mock.Anything, mock.AnythingOfType("*service.RatingEvent")).
		Return(nil).
		Maybe()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewRatingService(RatingServiceParams{
		TxManager:      memory.NewTransactionManager(db),
		RatingRepo:     memory.NewRatingRepository(db),
		StoreRepo:      memory.NewStoreRepository(db),
		EventPublisher: publisher,
		Logger:         logger,
	})

	return ratingServiceFixtures{
		service:   service,
		db:        db,
		publisher: publisher,
	}
}

func (f ratingServiceFixtures) seedAccount(t *testing.T, email string) *entity.Account {
	t.Helper()

	account := &entity.Account{
		Name:    "Test Rating Account Name",
		Email:   email,
		Address: "90 Fixture Lane, Test City, TC 00003",
		Role:    entity.RoleNormalUser,
	}
	require.NoError(t, memory.NewAccountRepository(f.db).Create(context.Background(), account))

	return account
}

func (f ratingServiceFixtures) seedStore(t *testing.T, name string) *entity.Store {
	t.Helper()

	store := &entity.Store{
		Name:    name,
		Email:   name + "@example.com",
		Address: "12 Fixture Avenue, Test City, TC 00004",
	}
	require.NoError(t, memory.NewStoreRepository(f.db).Create(context.Background(), store))

	return store
}

func (f ratingServiceFixtures) storeState(t *testing.T, id uuid.UUID) *entity.Store {
	t.Helper()

	store, err := memory.NewStoreRepository(f.db).FindByID(context.Background(), id)
	require.NoError(t, err)

	return store
}

func TestRatingService_SubmitRating_CreatesAndRecomputes(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	store := f.seedStore(t, "aggregate-store")
	accounts := []*entity.Account{
		f.seedAccount(t, "first@example.com"),
		f.seedAccount(t, "second@example.com"),
		f.seedAccount(t, "third@example.com"),
	}

	for i, score := range []int{4, 3, 5} {
		out, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
			AccountID: accounts[i].ID,
			StoreID:   store.ID,
			Score:     score,
		})
		require.NoError(t, err)
		assert.Equal(t, score, out.Rating.Score)
	}

	state := f.storeState(t, store.ID)
	assert.Equal(t, 4.0, state.AverageRating)
	assert.Equal(t, int64(3), state.TotalRatings)

	// A fourth submitter lowers the mean to 3.5.
	fourth := f.seedAccount(t, "fourth@example.com")
	out, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		AccountID: fourth.ID,
		StoreID:   store.ID,
		Score:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3.5, out.Store.AverageRating)
	assert.Equal(t, int64(4), out.Store.TotalRatings)
}

func TestRatingService_SubmitRating_Idempotent(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	store := f.seedStore(t, "idempotent-store")
	account := f.seedAccount(t, "repeat@example.com")

	input := &usecase.SubmitRatingInput{AccountID: account.ID, StoreID: store.ID, Score: 4}

	first, err := f.service.SubmitRating(ctx, input)
	require.NoError(t, err)
	second, err := f.service.SubmitRating(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, first.Rating.ID, second.Rating.ID)
	assert.Equal(t, 4, second.Rating.Score)

	state := f.storeState(t, store.ID)
	assert.Equal(t, 4.0, state.AverageRating)
	assert.Equal(t, int64(1), state.TotalRatings)
}

func TestRatingService_SubmitRating_UpdatesInPlace(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	store := f.seedStore(t, "update-store")
	account := f.seedAccount(t, "revise@example.com")

	first, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		AccountID: account.ID, StoreID: store.ID, Score: 3,
	})
	require.NoError(t, err)

	second, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		AccountID: account.ID, StoreID: store.ID, Score: 5,
	})
	require.NoError(t, err)

	// Same record, revised score; createdAt survives, the aggregate reflects
	// only the latest score.
	assert.Equal(t, first.Rating.ID, second.Rating.ID)
	assert.Equal(t, first.Rating.CreatedAt, second.Rating.CreatedAt)
	assert.Equal(t, 5, second.Rating.Score)
	assert.Equal(t, 5.0, second.Store.AverageRating)
	assert.Equal(t, int64(1), second.Store.TotalRatings)
}

func TestRatingService_SubmitRating_RoundsHalfAwayFromZero(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	store := f.seedStore(t, "rounding-store")

	for _, score := range []int{4, 4, 5} {
		account := f.seedAccount(t, uuid.NewString()[:8]+"@example.com")
		_, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
			AccountID: account.ID, StoreID: store.ID, Score: score,
		})
		require.NoError(t, err)
	}

	// mean 4.333... rounds down to 4.3 at the tenths digit.
	state := f.storeState(t, store.ID)
	assert.Equal(t, 4.3, state.AverageRating)
}

func TestRatingService_SubmitRating_InvalidScore(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	store := f.seedStore(t, "invalid-score-store")
	account := f.seedAccount(t, "invalid@example.com")

	for _, score := range []int{0, 6, -1} {
		_, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
			AccountID: account.ID, StoreID: store.ID, Score: score,
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidScore)
	}
}

func TestRatingService_SubmitRating_UnknownStore(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	account := f.seedAccount(t, "orphan@example.com")

	_, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		AccountID: account.ID, StoreID: uuid.New(), Score: 4,
	})
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestRatingService_SubmitRating_UnknownAccount(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	store := f.seedStore(t, "no-account-store")

	_, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		AccountID: uuid.New(), StoreID: store.ID, Score: 4,
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestRatingService_ReconcileAggregates_FixesDrift(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	store := f.seedStore(t, "drift-store")
	account := f.seedAccount(t, "drift@example.com")

	_, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		AccountID: account.ID, StoreID: store.ID, Score: 4,
	})
	require.NoError(t, err)

	// Corrupt the cached aggregate behind the engine's back.
	require.NoError(t, memory.NewStoreRepository(f.db).UpdateSummary(ctx, store.ID, entity.RatingSummary{
		Average: 1.1,
		Count:   99,
	}))

	corrected, err := f.service.ReconcileAggregates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)

	state := f.storeState(t, store.ID)
	assert.Equal(t, 4.0, state.AverageRating)
	assert.Equal(t, int64(1), state.TotalRatings)

	// A second sweep finds nothing to fix.
	corrected, err = f.service.ReconcileAggregates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, corrected)
}

func TestRatingService_ListStoreRatings_WithSubmitter(t *testing.T) {
	f := createTestRatingService(t)
	ctx := context.Background()

	store := f.seedStore(t, "list-store")
	account := f.seedAccount(t, "lister@example.com")

	_, err := f.service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		AccountID: account.ID, StoreID: store.ID, Score: 5,
	})
	require.NoError(t, err)

	ratings, err := f.service.ListStoreRatings(ctx, store.ID, true)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	require.NotNil(t, ratings[0].Submitter)
	assert.Equal(t, account.Email, ratings[0].Submitter.Email)
}

func TestRatingService_ListStoreRatings_UnknownStore(t *testing.T) {
	f := createTestRatingService(t)

	_, err := f.service.ListStoreRatings(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}
