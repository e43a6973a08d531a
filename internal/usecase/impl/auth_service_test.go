package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ratinity/config"
	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/infra/auth"
	"ratinity/internal/infra/persistence/memory"
	"ratinity/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service usecase.AuthUsecase
	db      *memory.DB
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	db := memory.NewDB()
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	hasher := auth.NewBcryptHasher(cfg)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAuthService(memory.NewTransactionManager(db), hasher, tokenService, logger)

	return authServiceFixtures{service: service, db: db}
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Name:     "Johnathan Doe Test Account",
		Email:    "newuser@example.com",
		Address:  "77 Registration Road, Test City, TC 00005",
		Password: "Secure123!",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	f := createTestAuthService(t)

	out, err := f.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleNormalUser, out.Account.Role)
	assert.Equal(t, "newuser@example.com", out.Account.Email)
	assert.False(t, out.Account.CreatedAt.IsZero())
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := createTestAuthService(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = f.service.Register(ctx, validRegisterInput())
	assert.ErrorIs(t, err, domainerrors.ErrAccountAlreadyExists)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	f := createTestAuthService(t)

	input := validRegisterInput()
	input.Password = "short"

	_, err := f.service.Register(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestAuthService_Login_Success(t *testing.T) {
	f := createTestAuthService(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	out, err := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "newuser@example.com",
		Password: "Secure123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "newuser@example.com", out.Account.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := createTestAuthService(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = f.service.Login(ctx, &usecase.LoginInput{
		Email:    "newuser@example.com",
		Password: "Wrong123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := createTestAuthService(t)

	_, err := f.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Secure123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_VerifyCredentials(t *testing.T) {
	f := createTestAuthService(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	ok, err := f.service.VerifyCredentials(ctx, "newuser@example.com", "Secure123!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.service.VerifyCredentials(ctx, "newuser@example.com", "Wrong123!")
	require.NoError(t, err)
	assert.False(t, ok)

	// Missing accounts report false without an error.
	ok, err = f.service.VerifyCredentials(ctx, "missing@x.com", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	f := createTestAuthService(t)
	ctx := context.Background()

	out, err := f.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, &usecase.ChangePasswordInput{
		AccountID:       out.Account.ID,
		CurrentPassword: "Secure123!",
		NewPassword:     "Updated456!",
	})
	require.NoError(t, err)

	ok, err := f.service.VerifyCredentials(ctx, "newuser@example.com", "Updated456!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.service.VerifyCredentials(ctx, "newuser@example.com", "Secure123!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	f := createTestAuthService(t)
	ctx := context.Background()

	out, err := f.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, &usecase.ChangePasswordInput{
		AccountID:       out.Account.ID,
		CurrentPassword: "Wrong123!",
		NewPassword:     "Updated456!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrIncorrectPassword)

	// The stored password is untouched.
	ok, err := f.service.VerifyCredentials(ctx, "newuser@example.com", "Secure123!")
	require.NoError(t, err)
	assert.True(t, ok)
}
