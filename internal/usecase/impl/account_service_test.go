package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ratinity/config"
	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"
	"ratinity/internal/infra/auth"
	mockRepo "ratinity/internal/mocks/repository"
	"ratinity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	txManager   *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAccountService(txManager, accountRepo, hasher, logger)

	return accountServiceFixtures{
		service:     service,
		txManager:   txManager,
		accountRepo: accountRepo,
	}
}

func TestAccountService_ListAccounts_FiltersByRole(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	expected := []*entity.Account{
		{ID: uuid.New(), Name: "Store Owner Account", Role: entity.RoleStoreOwner},
	}

	fx.accountRepo.EXPECT().
		List(ctx, repository.AccountFilter{Role: entity.RoleStoreOwner}).
		Return(expected, nil)

	accounts, err := fx.service.ListAccounts(ctx, &usecase.ListAccountsInput{Role: "STORE_OWNER"})

	require.NoError(t, err)
	assert.Equal(t, expected, accounts)
}

func TestAccountService_ListAccounts_InvalidRole(t *testing.T) {
	fx := createTestAccountService(t)

	_, err := fx.service.ListAccounts(context.Background(), &usecase.ListAccountsInput{Role: "SUPERUSER"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestAccountService_GetAccount_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accountRepo.EXPECT().
		FindByID(ctx, accountID).
		Return(nil, repository.ErrAccountNotFound)

	_, err := fx.service.GetAccount(ctx, accountID)

	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAccountService_CreateAccount_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()
	input := &usecase.CreateAccountInput{
		Name:     "Administrator Created Owner",
		Email:    "owner@example.com",
		Address:  "500 Owner Street, Commerce City, CC 10001",
		Password: "Owner123!",
		Role:     entity.RoleStoreOwner,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)
			mockCredentialRepo := mockRepo.NewMockCredentialRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)
			mockFactory.EXPECT().CredentialRepo().Return(mockCredentialRepo)
			mockAccountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrAccountNotFound)
			mockAccountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, account *entity.Account) {
					account.ID = accountID
				}).
				Return(nil)
			mockCredentialRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Credential")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	account, err := fx.service.CreateAccount(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, accountID, account.ID)
	assert.Equal(t, entity.RoleStoreOwner, account.Role)
	assert.Equal(t, input.Email, account.Email)
}

func TestAccountService_CreateAccount_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Name:     "Administrator Created Owner",
		Email:    "owner@example.com",
		Address:  "500 Owner Street, Commerce City, CC 10001",
		Password: "Owner123!",
		Role:     entity.RoleStoreOwner,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)
			mockAccountRepo.EXPECT().FindByEmail(ctx, input.Email).
				Return(&entity.Account{ID: uuid.New(), Email: input.Email}, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrAccountAlreadyExists, "account creation failed"))

	_, err := fx.service.CreateAccount(ctx, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
}

func TestAccountService_CreateAccount_InvalidRole(t *testing.T) {
	fx := createTestAccountService(t)

	_, err := fx.service.CreateAccount(context.Background(), &usecase.CreateAccountInput{
		Name:     "Administrator Created Owner",
		Email:    "owner@example.com",
		Address:  "500 Owner Street, Commerce City, CC 10001",
		Password: "Owner123!",
		Role:     entity.Role("MANAGER"),
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}
