package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ratinity/config"
	"ratinity/internal/delivery/http/validator"
	"ratinity/internal/infra/auth"
	"ratinity/internal/infra/persistence/memory"
	"ratinity/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	db := memory.NewDB()
	hasher := auth.NewBcryptHasher(cfg)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authUC := impl.NewAuthService(memory.NewTransactionManager(db), hasher, tokenService, logger)

	return &AuthHandler{authUC: authUC, logger: logger}
}

func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	handler := newTestAuthHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	body := `{
		"name": "Johnathan Doe Test Account",
		"email": "newuser@example.com",
		"address": "77 Registration Road, Test City, TC 00005",
		"password": "Secure123!"
	}`
	c, rec := newTestContext(e, http.MethodPost, "/auth/register", body)

	err := handler.Register(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "newuser@example.com")
	assert.Contains(t, rec.Body.String(), "NORMAL_USER")
	assert.NotContains(t, rec.Body.String(), "Secure123!")
}

func TestAuthHandler_Register_NameTooShort(t *testing.T) {
	handler := newTestAuthHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	body := `{
		"name": "Shorty",
		"email": "newuser@example.com",
		"address": "77 Registration Road, Test City, TC 00005",
		"password": "Secure123!"
	}`
	c, rec := newTestContext(e, http.MethodPost, "/auth/register", body)

	err := handler.Register(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandler_Register_AddressTooShort(t *testing.T) {
	handler := newTestAuthHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	body := `{
		"name": "Johnathan Doe Test Account",
		"email": "newuser@example.com",
		"address": "Short",
		"password": "Secure123!"
	}`
	c, rec := newTestContext(e, http.MethodPost, "/auth/register", body)

	err := handler.Register(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler := newTestAuthHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	registerBody := `{
		"name": "Johnathan Doe Test Account",
		"email": "newuser@example.com",
		"address": "77 Registration Road, Test City, TC 00005",
		"password": "Secure123!"
	}`
	c, _ := newTestContext(e, http.MethodPost, "/auth/register", registerBody)
	require.NoError(t, handler.Register(c))

	loginBody := `{"email": "newuser@example.com", "password": "Wrong123!"}`
	c, rec := newTestContext(e, http.MethodPost, "/auth/login", loginBody)

	err := handler.Login(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := newTestAuthHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	registerBody := `{
		"name": "Johnathan Doe Test Account",
		"email": "newuser@example.com",
		"address": "77 Registration Road, Test City, TC 00005",
		"password": "Secure123!"
	}`
	c, _ := newTestContext(e, http.MethodPost, "/auth/register", registerBody)
	require.NoError(t, handler.Register(c))

	loginBody := `{"email": "newuser@example.com", "password": "Secure123!"}`
	c, rec := newTestContext(e, http.MethodPost, "/auth/login", loginBody)

	err := handler.Login(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
	assert.Contains(t, rec.Body.String(), "refresh_token")
}

func TestAuthHandler_VerifyCredentials_UnknownEmail(t *testing.T) {
	handler := newTestAuthHandler(t)
	e := echo.New()
	e.Validator = validator.New()

	body := `{"email": "missing@example.com", "password": "Whatever1!"}`
	c, rec := newTestContext(e, http.MethodPost, "/auth/verify", body)

	err := handler.VerifyCredentials(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matched":false`)
}
