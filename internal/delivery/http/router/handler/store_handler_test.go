package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"ratinity/internal/delivery/http/validator"
	"ratinity/internal/infra/persistence/memory"
	"ratinity/internal/infra/qrcode"
	"ratinity/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStoreHandler(t *testing.T) *StoreHandler {
	db := memory.NewDB()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	storeUC := impl.NewStoreService(
		memory.NewTransactionManager(db),
		memory.NewStoreRepository(db),
		memory.NewRatingRepository(db),
		qrcode.NewQRCodeService(256, "M"),
		logger,
	)

	return &StoreHandler{storeUC: storeUC, logger: logger}
}

func TestStoreHandler_CreateStore(t *testing.T) {
	handler := newTestStoreHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	body := `{
		"name": "Tech Paradise",
		"email": "contact@techparadise.example.com",
		"address": "12 Commerce Street, Test City, TC 00012"
	}`
	c, rec := newTestContext(e, http.MethodPost, "/api/v1/stores", body)

	err := handler.CreateStore(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tech Paradise")
}

func TestStoreHandler_CreateStore_NameTooShort(t *testing.T) {
	handler := newTestStoreHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	body := `{
		"name": "T",
		"email": "contact@techparadise.example.com",
		"address": "12 Commerce Street, Test City, TC 00012"
	}`
	c, rec := newTestContext(e, http.MethodPost, "/api/v1/stores", body)

	err := handler.CreateStore(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestStoreHandler_CreateStore_AddressTooShort(t *testing.T) {
	handler := newTestStoreHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	body := `{
		"name": "Tech Paradise",
		"email": "contact@techparadise.example.com",
		"address": "Short"
	}`
	c, rec := newTestContext(e, http.MethodPost, "/api/v1/stores", body)

	err := handler.CreateStore(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestStoreHandler_ResolveStoreQR(t *testing.T) {
	handler := newTestStoreHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	createBody := `{
		"name": "Tech Paradise",
		"email": "contact@techparadise.example.com",
		"address": "12 Commerce Street, Test City, TC 00012"
	}`
	c, rec := newTestContext(e, http.MethodPost, "/api/v1/stores", createBody)
	require.NoError(t, handler.CreateStore(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	resolveBody := fmt.Sprintf(`{"data": "{\"store_id\":\"%s\",\"type\":\"store\"}"}`, created.Data.ID)
	c, rec = newTestContext(e, http.MethodPost, "/api/v1/stores/qr/resolve", resolveBody)

	err := handler.ResolveStoreQR(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.Data.ID)
	assert.Contains(t, rec.Body.String(), "Tech Paradise")
}

func TestStoreHandler_ResolveStoreQR_InvalidPayload(t *testing.T) {
	handler := newTestStoreHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/stores/qr/resolve", `{"data": "not a store code"}`)

	err := handler.ResolveStoreQR(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_QR_CODE")
}
