package impl

import (
	"context"
	"log/slog"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"
	"ratinity/internal/domain/service"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager     repository.TransactionManager
	storeRepo     repository.StoreRepository
	ratingRepo    repository.RatingRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(
	txManager repository.TransactionManager,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	qrcodeService service.QRCodeService,
	logger *slog.Logger,
) usecase.StoreUsecase {
	return &storeService{
		txManager:     txManager,
		storeRepo:     storeRepo,
		ratingRepo:    ratingRepo,
		qrcodeService: qrcodeService,
		logger:        logger,
	}
}

// ListStores returns all stores matching the filter. When the input carries a
// requester ID, each item also carries that account's own rating for the store.
func (srv *storeService) ListStores(ctx context.Context, input *usecase.ListStoresInput) ([]*usecase.StoreListItem, error) {
	stores, err := srv.storeRepo.List(ctx, repository.StoreFilter{
		Search:  input.Search,
		OwnerID: input.OwnerID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	items := make([]*usecase.StoreListItem, 0, len(stores))

	var myRatings map[uuid.UUID]*entity.Rating
	if input.RequesterID != nil {
		ratings, err := srv.ratingRepo.ListByAccount(ctx, *input.RequesterID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list requester ratings")
		}
		myRatings = make(map[uuid.UUID]*entity.Rating, len(ratings))
		for _, rating := range ratings {
			myRatings[rating.StoreID] = rating
		}
	}

	for _, store := range stores {
		item := &usecase.StoreListItem{Store: store}
		if myRatings != nil {
			item.MyRating = myRatings[store.ID]
		}
		items = append(items, item)
	}

	return items, nil
}

// GetStore retrieves a single store by ID.
func (srv *storeService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound.WrapMessage("store lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return store, nil
}

// CreateStore creates a new store. An owner reference, when present, must
// point at an existing account holding the STORE_OWNER role.
func (srv *storeService) CreateStore(ctx context.Context, input *usecase.CreateStoreInput) (*entity.Store, error) {
	srv.logger.Info("Creating store", "name", input.Name)

	var createdStore *entity.Store

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// 1. Validate the owner reference.
		if input.OwnerID != nil {
			owner, err := repoFactory.AccountRepo().FindByID(ctx, *input.OwnerID)
			if err != nil {
				if errors.Is(err, repository.ErrAccountNotFound) {
					return domainerrors.ErrAccountNotFound.WrapMessage("store owner does not exist")
				}

				return errors.Wrap(err, "failed to find owner account")
			}
			if !owner.CanOwnStores() {
				return domainerrors.ErrOwnerNotEligible.WrapMessage("store creation failed")
			}
		}

		// 2. Create the store with zeroed aggregates.
		newStore := &entity.Store{
			Name:    input.Name,
			Email:   input.Email,
			Address: input.Address,
			OwnerID: input.OwnerID,
		}
		if err := repoFactory.StoreRepo().Create(ctx, newStore); err != nil {
			return errors.WithStack(err)
		}
		createdStore = newStore

		return nil
	})

	if err != nil {
		srv.logger.Error("Failed to execute store creation transaction", "error", err, "name", input.Name)

		return nil, err
	}
	srv.logger.Debug("Store created successfully", "storeID", createdStore.ID)

	return createdStore, nil
}

// GenerateStoreQR renders a QR code for an existing store's rating page.
func (srv *storeService) GenerateStoreQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.GetStore(ctx, id); err != nil {
		return nil, err
	}

	pngBytes, err := srv.qrcodeService.GenerateStoreQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate store QR code")
	}

	return pngBytes, nil
}

// ResolveStoreQR decodes a scanned QR payload and returns the referenced
// store, so a customer who scans the counter code lands on its rating page.
func (srv *storeService) ResolveStoreQR(ctx context.Context, qrData string) (*entity.Store, error) {
	storeID, err := srv.qrcodeService.ParseStoreQR(qrData)
	if err != nil {
		return nil, domainerrors.ErrInvalidQRCode.WrapMessage("store QR resolution failed")
	}

	return srv.GetStore(ctx, storeID)
}
