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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	txManager repository.TransactionManager,
	accountRepo repository.AccountRepository,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager:   txManager,
		accountRepo: accountRepo,
		hasher:      hasher,
		logger:      logger,
	}
}

// ListAccounts returns all accounts matching the filter.
func (srv *accountService) ListAccounts(ctx context.Context, input *usecase.ListAccountsInput) ([]*entity.Account, error) {
	filter := repository.AccountFilter{
		Name:  input.Name,
		Email: input.Email,
	}
	if input.Role != "" {
		role := entity.Role(input.Role)
		if !role.IsValid() {
			return nil, domainerrors.ErrInvalidRole.WrapMessage("unknown role filter")
		}
		filter.Role = role
	}

	accounts, err := srv.accountRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return accounts, nil
}

// GetAccount retrieves a single account by ID.
func (srv *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}

// CreateAccount performs an admin-initiated account creation with an explicit role.
func (srv *accountService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	srv.logger.Info("Creating account", "email", input.Email, "role", input.Role.String())

	if !input.Role.IsValid() {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("account creation failed")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	var createdAccount *entity.Account

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, err := accountRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("account creation failed")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to find account by email")
		}

		newAccount := &entity.Account{
			Name:    input.Name,
			Email:   input.Email,
			Address: input.Address,
			Role:    input.Role,
		}
		if err := accountRepo.Create(ctx, newAccount); err != nil {
			return errors.WithStack(err)
		}

		newCredential := &entity.Credential{
			AccountID:    newAccount.ID,
			PasswordHash: hashedPassword,
		}
		if err := repoFactory.CredentialRepo().Create(ctx, newCredential); err != nil {
			return errors.WithStack(err)
		}
		createdAccount = newAccount

		return nil
	})

	if err != nil {
		srv.logger.Error("Failed to execute account creation transaction", "error", err, "email", input.Email)

		return nil, err
	}
	srv.logger.Debug("Account created successfully", "accountID", createdAccount.ID)

	return createdAccount, nil
}
