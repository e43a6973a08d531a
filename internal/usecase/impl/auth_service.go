// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"ratinity/internal/domain/entity"
	domainerrors "ratinity/internal/domain/errors"
	"ratinity/internal/domain/repository"
	"ratinity/internal/domain/service"
	"ratinity/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register orchestrates the self-registration process. Self-registered
// accounts always get the NORMAL_USER role.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Starting account registration", "email", input.Email)

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredAccount *entity.Account

	// Execute the entire creation process within a single database transaction
	// to ensure data consistency (atomicity).
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 1. Check if an account with this email already exists.
		_, err := accountRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("account registration failed")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to find account by email")
		}

		// 2. Create the account entity.
		newAccount := &entity.Account{
			Name:    input.Name,
			Email:   input.Email,
			Address: input.Address,
			Role:    entity.RoleNormalUser,
		}
		if err := accountRepo.Create(ctx, newAccount); err != nil {
			return errors.WithStack(err)
		}

		// 3. Create its credential.
		newCredential := &entity.Credential{
			AccountID:    newAccount.ID,
			PasswordHash: hashedPassword,
		}
		if err := repoFactory.CredentialRepo().Create(ctx, newCredential); err != nil {
			return errors.WithStack(err)
		}
		registeredAccount = newAccount

		return nil
	})

	if err != nil {
		srv.logger.Error("Failed to execute registration transaction", "error", err, "email", input.Email)

		return nil, err
	}
	srv.logger.Debug("Account registered successfully", "accountID", registeredAccount.ID)

	return &usecase.RegisterOutput{Account: registeredAccount}, nil
}

// Login orchestrates the account login process.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting account login", "email", input.Email)

	var loggedInAccount *entity.Account
	var accessToken, refreshToken string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 1. Find the account. A missing account is reported the same way as
		// a wrong password so the response does not leak which emails exist.
		account, err := accountRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		// 2. Check the password against the stored credential.
		credential, err := repoFactory.CredentialRepo().FindByAccountID(ctx, account.ID)
		if err != nil {
			return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		if !srv.hasher.Check(input.Password, credential.PasswordHash) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		// 3. Generate the token pair.
		accessToken, refreshToken, err = srv.tokenService.GenerateTokens(account.ID, []string{account.Role.String()})
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}
		loggedInAccount = account

		return nil
	})

	if err != nil {
		srv.logger.Warn("Login failed", "email", input.Email, "error", err.Error())

		return nil, err
	}
	srv.logger.Debug("Account logged in successfully", "accountID", loggedInAccount.ID)

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      loggedInAccount,
	}, nil
}

// ChangePassword verifies the current password and replaces the stored hash.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	srv.logger.Info("Changing account password", "accountID", input.AccountID)

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		credentialRepo := repoFactory.CredentialRepo()

		// 1. Confirm the account exists.
		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("change password failed")
			}

			return errors.Wrap(err, "failed to find account")
		}

		// 2. Verify the current password.
		credential, err := credentialRepo.FindByAccountID(ctx, account.ID)
		if err != nil {
			return errors.Wrap(err, "failed to find credential")
		}
		if !srv.hasher.Check(input.CurrentPassword, credential.PasswordHash) {
			return domainerrors.ErrIncorrectPassword.WrapMessage("change password failed")
		}

		// 3. Overwrite the stored hash and bump the account's updatedAt.
		if err := credentialRepo.UpdatePassword(ctx, account.ID, newHash); err != nil {
			return errors.Wrap(err, "failed to update password")
		}
		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to touch account")
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Password change failed", "accountID", input.AccountID, "error", err.Error())

		return err
	}
	srv.logger.Debug("Password changed successfully", "accountID", input.AccountID)

	return nil
}

// VerifyCredentials reports whether the email/password pair matches a stored
// credential. A missing account or credential yields false, never an error.
func (srv *authService) VerifyCredentials(ctx context.Context, email, password string) (bool, error) {
	var matched bool

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := repoFactory.AccountRepo().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find account by email")
		}

		credential, err := repoFactory.CredentialRepo().FindByAccountID(ctx, account.ID)
		if err != nil {
			if errors.Is(err, repository.ErrCredentialNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find credential")
		}

		matched = srv.hasher.Check(password, credential.PasswordHash)

		return nil
	})
	if err != nil {
		return false, err
	}

	return matched, nil
}
