package handler

import (
	"log/slog"
	"net/http"

	"ratinity/internal/delivery/http/middleware"
	"ratinity/internal/delivery/http/response"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StoreHandlerParams holds dependencies for StoreHandler, injected by Fx.
type StoreHandlerParams struct {
	fx.In

	StoreUC usecase.StoreUsecase
	Logger  *slog.Logger
}

// StoreHandler holds dependencies for store-related handlers
type StoreHandler struct {
	storeUC usecase.StoreUsecase
	logger  *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler
func NewStoreHandler(params StoreHandlerParams) *StoreHandler {
	return &StoreHandler{
		storeUC: params.StoreUC,
		logger:  params.Logger,
	}
}

// CreateStoreRequest represents the request body for store creation
type CreateStoreRequest struct {
	Name    string     `json:"name" validate:"required,min=2,max=60"`
	Email   string     `json:"email" validate:"required,email"`
	Address string     `json:"address" validate:"required,min=10,max=400"`
	OwnerID *uuid.UUID `json:"owner_id"`
}

// ResolveStoreQRRequest carries a scanned QR payload to resolve.
type ResolveStoreQRRequest struct {
	Data string `json:"data" validate:"required"`
}

// ListStores returns stores matching the optional search query. Each item
// carries the caller's own rating for the store when one exists.
func (h *StoreHandler) ListStores(c echo.Context) error {
	input := &usecase.ListStoresInput{
		Search: c.QueryParam("search"),
	}

	if ownerIDParam := c.QueryParam("owner_id"); ownerIDParam != "" {
		ownerID, err := uuid.Parse(ownerIDParam)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid owner ID")
		}
		input.OwnerID = &ownerID
	}

	if requesterID, ok := middleware.GetAccountID(c); ok {
		input.RequesterID = &requesterID
	}

	items, err := h.storeUC.ListStores(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items)
}

// GetStore returns a single store by ID.
func (h *StoreHandler) GetStore(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid store ID")
	}

	store, err := h.storeUC.GetStore(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, store)
}

// CreateStore registers a new store with zeroed rating aggregates.
func (h *StoreHandler) CreateStore(c echo.Context) error {
	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.storeUC.CreateStore(c.Request().Context(), &usecase.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, store)
}

// GetStoreQR renders the store's rating-page QR code as a PNG image.
func (h *StoreHandler) GetStoreQR(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid store ID")
	}

	pngBytes, err := h.storeUC.GenerateStoreQR(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", pngBytes)
}

// ResolveStoreQR resolves a scanned QR payload to the store it references.
func (h *StoreHandler) ResolveStoreQR(c echo.Context) error {
	var req ResolveStoreQRRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid QR payload")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.storeUC.ResolveStoreQR(c.Request().Context(), req.Data)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, store)
}
