package handler

import (
	"log/slog"
	"net/http"

	"ratinity/internal/delivery/http/response"
	"ratinity/internal/domain/entity"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AccountHandler holds dependencies for administrator account management handlers
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// CreateAccountRequest represents the request body for admin account creation
type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,min=10,max=400"`
	Password string `json:"password" validate:"required,min=8,max=16"`
	Role     string `json:"role" validate:"required,oneof=ADMIN NORMAL_USER STORE_OWNER"`
}

// ListAccounts returns accounts filtered by the optional name, email and role
// query parameters.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	input := &usecase.ListAccountsInput{
		Name:  c.QueryParam("name"),
		Email: c.QueryParam("email"),
		Role:  c.QueryParam("role"),
	}

	accounts, err := h.accountUC.ListAccounts(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, accounts)
}

// GetAccount returns a single account by ID.
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	account, err := h.accountUC.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account)
}

// CreateAccount creates an account with an explicit role. Unlike
// self-registration this may mint administrators and store owners.
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.accountUC.CreateAccount(c.Request().Context(), &usecase.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, account)
}
