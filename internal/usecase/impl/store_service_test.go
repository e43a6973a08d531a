package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"
	"ratinity/internal/infra/qrcode"
	mockRepo "ratinity/internal/mocks/repository"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// storeServiceFixtures holds all test dependencies for store service tests.
type storeServiceFixtures struct {
	service    usecase.StoreUsecase
	txManager  *mockRepo.MockTransactionManager
	storeRepo  *mockRepo.MockStoreRepository
	ratingRepo *mockRepo.MockRatingRepository
}

func createTestStoreService(t *testing.T) storeServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	storeRepo := mockRepo.NewMockStoreRepository(t)
	ratingRepo := mockRepo.NewMockRatingRepository(t)
	qrcodeService := qrcode.NewQRCodeService(256, "M")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewStoreService(txManager, storeRepo, ratingRepo, qrcodeService, logger)

	return storeServiceFixtures{
		service:    service,
		txManager:  txManager,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

func TestStoreService_ListStores_AttachesRequesterRatings(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()
	requesterID := uuid.New()
	ratedStore := &entity.Store{ID: uuid.New(), Name: "Tech Paradise"}
	unratedStore := &entity.Store{ID: uuid.New(), Name: "Food Central"}
	myRating := &entity.Rating{ID: uuid.New(), AccountID: requesterID, StoreID: ratedStore.ID, Score: 4}

	fx.storeRepo.EXPECT().
		List(ctx, repository.StoreFilter{}).
		Return([]*entity.Store{ratedStore, unratedStore}, nil)
	fx.ratingRepo.EXPECT().
		ListByAccount(ctx, requesterID).
		Return([]*entity.Rating{myRating}, nil)

	items, err := fx.service.ListStores(ctx, &usecase.ListStoresInput{RequesterID: &requesterID})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, myRating, items[0].MyRating)
	assert.Nil(t, items[1].MyRating)
}

func TestStoreService_ListStores_WithoutRequester(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()

	fx.storeRepo.EXPECT().
		List(ctx, repository.StoreFilter{Search: "tech"}).
		Return([]*entity.Store{{ID: uuid.New(), Name: "Tech Paradise"}}, nil)

	items, err := fx.service.ListStores(ctx, &usecase.ListStoresInput{Search: "tech"})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].MyRating)
}

func TestStoreService_GetStore_NotFound(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()
	storeID := uuid.New()

	fx.storeRepo.EXPECT().
		FindByID(ctx, storeID).
		Return(nil, repository.ErrStoreNotFound)

	_, err := fx.service.GetStore(ctx, storeID)

	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestStoreService_CreateStore_IneligibleOwner(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	input := &usecase.CreateStoreInput{
		Name:    "Tech Paradise Downtown Branch",
		Email:   "downtown@techparadise.com",
		Address: "400 Tech Street, Silicon Valley, CA 94000",
		OwnerID: &ownerID,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)
			mockAccountRepo.EXPECT().FindByID(ctx, ownerID).
				Return(&entity.Account{ID: ownerID, Role: entity.RoleNormalUser}, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrOwnerNotEligible, "store creation failed"))

	_, err := fx.service.CreateStore(ctx, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnerNotEligible))
}

func TestStoreService_CreateStore_WithoutOwner(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()
	storeID := uuid.New()
	input := &usecase.CreateStoreInput{
		Name:    "Tech Paradise Downtown Branch",
		Email:   "downtown@techparadise.com",
		Address: "400 Tech Street, Silicon Valley, CA 94000",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockStoreRepo := mockRepo.NewMockStoreRepository(t)

			mockFactory.EXPECT().StoreRepo().Return(mockStoreRepo)
			mockStoreRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Store")).
				Run(func(ctx context.Context, store *entity.Store) {
					store.ID = storeID
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	store, err := fx.service.CreateStore(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, storeID, store.ID)
	assert.Nil(t, store.OwnerID)
	assert.Zero(t, store.AverageRating)
	assert.Zero(t, store.TotalRatings)
}

func TestStoreService_GenerateStoreQR(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()
	storeID := uuid.New()

	fx.storeRepo.EXPECT().
		FindByID(ctx, storeID).
		Return(&entity.Store{ID: storeID, Name: "Tech Paradise"}, nil)

	pngBytes, err := fx.service.GenerateStoreQR(ctx, storeID)

	require.NoError(t, err)
	assert.NotEmpty(t, pngBytes)
}

func TestStoreService_GenerateStoreQR_UnknownStore(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()
	storeID := uuid.New()

	fx.storeRepo.EXPECT().
		FindByID(ctx, storeID).
		Return(nil, repository.ErrStoreNotFound)

	_, err := fx.service.GenerateStoreQR(ctx, storeID)

	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestStoreService_ResolveStoreQR(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()
	store := &entity.Store{ID: uuid.New(), Name: "Tech Paradise"}

	fx.storeRepo.EXPECT().
		FindByID(ctx, store.ID).
		Return(store, nil)

	payload := fmt.Sprintf(`{"store_id":"%s","type":"store"}`, store.ID)
	resolved, err := fx.service.ResolveStoreQR(ctx, payload)

	require.NoError(t, err)
	assert.Equal(t, store, resolved)
}

func TestStoreService_ResolveStoreQR_InvalidPayload(t *testing.T) {
	fx := createTestStoreService(t)

	resolved, err := fx.service.ResolveStoreQR(context.Background(), "not a store code")

	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQRCode)
}

func TestStoreService_ResolveStoreQR_UnknownStore(t *testing.T) {
	fx := createTestStoreService(t)

	ctx := context.Background()
	storeID := uuid.New()

	fx.storeRepo.EXPECT().
		FindByID(ctx, storeID).
		Return(nil, repository.ErrStoreNotFound)

	payload := fmt.Sprintf(`{"store_id":"%s","type":"store"}`, storeID)
	_, err := fx.service.ResolveStoreQR(ctx, payload)

	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}
