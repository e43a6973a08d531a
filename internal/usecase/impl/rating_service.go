package impl

import (
	"context"
	"log/slog"

	deliverycontext "ratinity/internal/delivery/context"
	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"
	"ratinity/internal/domain/service"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager      repository.TransactionManager
	ratingRepo     repository.RatingRepository
	storeRepo      repository.StoreRepository
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// RatingServiceParams holds dependencies for RatingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	RatingRepo     repository.RatingRepository
	StoreRepo      repository.StoreRepository
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		txManager:      params.TxManager,
		ratingRepo:     params.RatingRepo,
		storeRepo:      params.StoreRepo,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitRating upserts the account's rating for a store and recomputes the
// store's cached aggregate, all inside one transaction. Locking the store row
// first serializes concurrent submissions against the same store, so the
// cached aggregate always equals a recomputation over the committed ratings.
func (srv *ratingService) SubmitRating(ctx context.Context, input *usecase.SubmitRatingInput) (*usecase.SubmitRatingOutput, error) {
	srv.log(ctx).Info("Submitting rating",
		"accountID", input.AccountID,
		"storeID", input.StoreID,
		"score", input.Score,
	)

	if !entity.ValidScore(input.Score) {
		return nil, domainerrors.ErrInvalidScore.WrapMessage("rating submission failed")
	}

	var upserted *entity.Rating
	var updatedStore *entity.Store

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		// 1. Lock the store row for the duration of the transaction.
		store, err := storeRepo.LockByID(ctx, input.StoreID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound.WrapMessage("rating submission failed")
			}

			return errors.Wrap(err, "failed to lock store")
		}

		// 2. Confirm the submitting account exists.
		if _, err := repoFactory.AccountRepo().FindByID(ctx, input.AccountID); err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("rating submission failed")
			}

			return errors.Wrap(err, "failed to find account")
		}

		// 3. Find-or-create the (account, store) rating.
		existing, err := ratingRepo.FindByAccountAndStore(ctx, input.AccountID, input.StoreID)
		switch {
		case err == nil:
			existing.Score = input.Score
			if err := ratingRepo.Update(ctx, existing); err != nil {
				return errors.Wrap(err, "failed to update rating")
			}
			upserted = existing
		case errors.Is(err, repository.ErrRatingNotFound):
			newRating := &entity.Rating{
				AccountID: input.AccountID,
				StoreID:   input.StoreID,
				Score:     input.Score,
			}
			if err := ratingRepo.Create(ctx, newRating); err != nil {
				return errors.Wrap(err, "failed to create rating")
			}
			upserted = newRating
		default:
			return errors.Wrap(err, "failed to find rating")
		}

		// 4. Recompute the store's aggregate over all of its ratings.
		ratings, err := ratingRepo.ListByStore(ctx, input.StoreID, false)
		if err != nil {
			return errors.Wrap(err, "failed to list store ratings")
		}
		summary := entity.SummarizeRatings(ratings)

		if err := storeRepo.UpdateSummary(ctx, input.StoreID, summary); err != nil {
			return errors.Wrap(err, "failed to update store summary")
		}

		store.ApplySummary(summary)
		updatedStore = store

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Rating submission failed",
			"accountID", input.AccountID,
			"storeID", input.StoreID,
			"error", err.Error(),
		)

		return nil, err
	}

	srv.publishRatingEvent(ctx, upserted, updatedStore)

	srv.log(ctx).Debug("Rating submitted successfully",
		"ratingID", upserted.ID,
		"average", updatedStore.AverageRating,
		"count", updatedStore.TotalRatings,
	)

	return &usecase.SubmitRatingOutput{Rating: upserted, Store: updatedStore}, nil
}

// publishRatingEvent emits the rating event after the transaction commits.
// Publishing is best-effort; a failure is logged and never surfaced to the caller.
func (srv *ratingService) publishRatingEvent(ctx context.Context, rating *entity.Rating, store *entity.Store) {
	event := &service.RatingEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		RatingID:      rating.ID.String(),
		AccountID:     rating.AccountID.String(),
		StoreID:       store.ID.String(),
		Score:         rating.Score,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
	}

	if err := srv.eventPublisher.PublishRatingEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish rating event",
			"ratingID", event.RatingID,
			"error", err.Error(),
		)
	}
}

// ListStoreRatings returns all ratings for a store, optionally joined with
// each rating's submitting account.
func (srv *ratingService) ListStoreRatings(ctx context.Context, storeID uuid.UUID, withSubmitter bool) ([]*entity.Rating, error) {
	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound.WrapMessage("rating listing failed")
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	ratings, err := srv.ratingRepo.ListByStore(ctx, storeID, withSubmitter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store ratings")
	}

	return ratings, nil
}

// ListAccountRatings returns all ratings submitted by an account.
func (srv *ratingService) ListAccountRatings(ctx context.Context, accountID uuid.UUID) ([]*entity.Rating, error) {
	ratings, err := srv.ratingRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list account ratings")
	}

	return ratings, nil
}

// ReconcileAggregates recomputes every store's cached aggregate from its
// ratings and rewrites the ones that drifted. Each store is reconciled in its
// own transaction so one failure does not abort the sweep.
func (srv *ratingService) ReconcileAggregates(ctx context.Context) (int, error) {
	stores, err := srv.storeRepo.List(ctx, repository.StoreFilter{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to list stores")
	}

	corrected := 0

	for _, store := range stores {
		fixed, err := srv.reconcileStore(ctx, store.ID)
		if err != nil {
			srv.log(ctx).Error("Failed to reconcile store aggregate",
				"storeID", store.ID,
				"error", err.Error(),
			)

			continue
		}
		if fixed {
			corrected++
		}
	}

	srv.log(ctx).Info("Aggregate reconciliation completed",
		"stores", len(stores),
		"corrected", corrected,
	)

	return corrected, nil
}

func (srv *ratingService) reconcileStore(ctx context.Context, storeID uuid.UUID) (bool, error) {
	var drifted bool

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()

		store, err := storeRepo.LockByID(ctx, storeID)
		if err != nil {
			return errors.Wrap(err, "failed to lock store")
		}

		ratings, err := repoFactory.RatingRepo().ListByStore(ctx, storeID, false)
		if err != nil {
			return errors.Wrap(err, "failed to list store ratings")
		}

		summary := entity.SummarizeRatings(ratings)
		if store.AverageRating == summary.Average && store.TotalRatings == summary.Count {
			return nil
		}

		drifted = true
		srv.log(ctx).Warn("Store aggregate drifted from its ratings",
			"storeID", storeID,
			"cachedAverage", store.AverageRating,
			"cachedCount", store.TotalRatings,
			"average", summary.Average,
			"count", summary.Count,
		)

		return storeRepo.UpdateSummary(ctx, storeID, summary)
	})
	if err != nil {
		return false, err
	}

	return drifted, nil
}
