package handler

import (
	"log/slog"
	"net/http"

	"ratinity/internal/delivery/http/middleware"
	"ratinity/internal/delivery/http/response"
	"ratinity/internal/domain/entity"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RatingHandlerParams holds dependencies for RatingHandler, injected by Fx.
type RatingHandlerParams struct {
	fx.In

	RatingUC usecase.RatingUsecase
	Logger   *slog.Logger
}

// RatingHandler holds dependencies for rating-related handlers
type RatingHandler struct {
	ratingUC usecase.RatingUsecase
	logger   *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler
func NewRatingHandler(params RatingHandlerParams) *RatingHandler {
	return &RatingHandler{
		ratingUC: params.RatingUC,
		logger:   params.Logger,
	}
}

// SubmitRatingRequest represents the request body for a rating submission
type SubmitRatingRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// SubmitRating records or overwrites the caller's rating for a store and
// returns the rating together with the store's refreshed aggregates.
func (h *RatingHandler) SubmitRating(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid store ID")
	}

	var req SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.ratingUC.SubmitRating(c.Request().Context(), &usecase.SubmitRatingInput{
		AccountID: accountID,
		StoreID:   storeID,
		Score:     req.Score,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

// ListStoreRatings returns all ratings for a store. Administrators and store
// owners also see who submitted each rating.
func (h *RatingHandler) ListStoreRatings(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid store ID")
	}

	withSubmitter := middleware.HasRole(c, entity.RoleAdmin) || middleware.HasRole(c, entity.RoleStoreOwner)

	ratings, err := h.ratingUC.ListStoreRatings(c.Request().Context(), storeID, withSubmitter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ratings)
}

// ListMyRatings returns every rating the caller has submitted.
func (h *RatingHandler) ListMyRatings(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	ratings, err := h.ratingUC.ListAccountRatings(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ratings)
}
