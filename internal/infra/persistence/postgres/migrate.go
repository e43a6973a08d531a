package postgres

import (
	"context"
	"log/slog"

	"ratinity/config"
	"ratinity/internal/domain/entity"
	"ratinity/internal/domain/repository"
	"ratinity/internal/domain/service"
	"ratinity/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the database schema for all persistence models.
func AutoMigrate(db *gorm.DB) error {
	// The id columns default to uuid_generate_v7(), which lives in the
	// pg_uuidv7 extension.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_uuidv7").Error; err != nil {
		return errors.Wrap(err, "failed to ensure pg_uuidv7 extension")
	}

	if err := db.AutoMigrate(
		&model.AccountModel{},
		&model.CredentialModel{},
		&model.StoreModel{},
		&model.RatingModel{},
	); err != nil {
		return errors.Wrap(err, "failed to auto migrate schema")
	}

	return nil
}

// SeedAdmin ensures the bootstrap administrator account exists.
// It is a no-op when seeding is disabled or the account already exists.
func SeedAdmin(
	ctx context.Context,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	cfg *config.Config,
	logger *slog.Logger,
) error {
	if cfg.Seed == nil || !cfg.Seed.Enabled {
		return nil
	}

	return txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		accountRepo := factory.AccountRepo()

		_, err := accountRepo.FindByEmail(ctx, cfg.Seed.AdminEmail)
		if err == nil {
			return nil // already seeded
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check for existing admin account")
		}

		hash, err := hasher.Hash(cfg.Seed.AdminPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash admin password")
		}

		admin := &entity.Account{
			Name:    cfg.Seed.AdminName,
			Email:   cfg.Seed.AdminEmail,
			Address: cfg.Seed.AdminAddress,
			Role:    entity.RoleAdmin,
		}
		if err := accountRepo.Create(ctx, admin); err != nil {
			return errors.Wrap(err, "failed to create admin account")
		}

		credential := &entity.Credential{
			AccountID:    admin.ID,
			PasswordHash: hash,
		}
		if err := factory.CredentialRepo().Create(ctx, credential); err != nil {
			return errors.Wrap(err, "failed to create admin credential")
		}

		logger.InfoContext(ctx, "seeded administrator account", slog.String("email", admin.Email))

		return nil
	})
}
