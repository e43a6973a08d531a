package memory

import (
	"context"

	"ratinity/internal/domain/entity"
	"ratinity/internal/domain/service"

	"github.com/pkg/errors"
)

type seedAccount struct {
	name     string
	email    string
	address  string
	role     entity.Role
	password string
}

type seedStore struct {
	name       string
	email      string
	address    string
	ownerEmail string
}

type seedRating struct {
	accountEmail string
	storeName    string
	score        int
}

// Seed populates an empty record store with the default development dataset:
// one account of each role, three stores, and two ratings from the normal
// user. Cached store aggregates are recomputed from the seeded ratings so
// they start out consistent. Seeding an already-populated DB is a no-op.
func Seed(ctx context.Context, db *DB, hasher service.PasswordHasher) error {
	accountRepo := NewAccountRepository(db)

	count, err := accountRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seedAccounts := []seedAccount{
		{
			name:     "Admin User",
			email:    "admin@ratinity.com",
			address:  "123 Admin Street, Admin City, AC 12345",
			role:     entity.RoleAdmin,
			password: "Admin123!",
		},
		{
			name:     "John Doe",
			email:    "john@example.com",
			address:  "456 User Street, User City, UC 67890",
			role:     entity.RoleNormalUser,
			password: "User123!",
		},
		{
			name:     "Store Manager",
			email:    "manager@store.com",
			address:  "789 Store Avenue, Store City, SC 11111",
			role:     entity.RoleStoreOwner,
			password: "Manager123!",
		},
	}

	seedStores := []seedStore{
		{
			name:       "Tech Paradise",
			email:      "contact@techparadise.com",
			address:    "100 Tech Street, Silicon Valley, CA 94000",
			ownerEmail: "manager@store.com",
		},
		{
			name:    "Food Central",
			email:   "info@foodcentral.com",
			address: "200 Food Boulevard, Foodie Town, FT 12345",
		},
		{
			name:    "Fashion Hub",
			email:   "contact@fashionhub.com",
			address: "300 Style Street, Fashion District, FD 56789",
		},
	}

	seedRatings := []seedRating{
		{accountEmail: "john@example.com", storeName: "Tech Paradise", score: 4},
		{accountEmail: "john@example.com", storeName: "Food Central", score: 3},
	}

	credentialRepo := NewCredentialRepository(db)
	accountsByEmail := make(map[string]*entity.Account, len(seedAccounts))

	for _, seed := range seedAccounts {
		account := &entity.Account{
			Name:    seed.name,
			Email:   seed.email,
			Address: seed.address,
			Role:    seed.role,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			return errors.Wrapf(err, "failed to seed account %s", seed.email)
		}

		hash, err := hasher.Hash(seed.password)
		if err != nil {
			return errors.Wrapf(err, "failed to hash seed password for %s", seed.email)
		}
		credential := &entity.Credential{AccountID: account.ID, PasswordHash: hash}
		if err := credentialRepo.Create(ctx, credential); err != nil {
			return errors.Wrapf(err, "failed to seed credential for %s", seed.email)
		}

		accountsByEmail[seed.email] = account
	}

	storeRepo := NewStoreRepository(db)
	storesByName := make(map[string]*entity.Store, len(seedStores))

	for _, seed := range seedStores {
		store := &entity.Store{
			Name:    seed.name,
			Email:   seed.email,
			Address: seed.address,
		}
		if seed.ownerEmail != "" {
			owner, ok := accountsByEmail[seed.ownerEmail]
			if !ok {
				return errors.Errorf("seed store %s references unknown owner %s", seed.name, seed.ownerEmail)
			}
			ownerID := owner.ID
			store.OwnerID = &ownerID
		}
		if err := storeRepo.Create(ctx, store); err != nil {
			return errors.Wrapf(err, "failed to seed store %s", seed.name)
		}

		storesByName[seed.name] = store
	}

	ratingRepo := NewRatingRepository(db)

	for _, seed := range seedRatings {
		account := accountsByEmail[seed.accountEmail]
		store := storesByName[seed.storeName]
		if account == nil || store == nil {
			return errors.Errorf("seed rating references unknown account or store")
		}

		rating := &entity.Rating{
			AccountID: account.ID,
			StoreID:   store.ID,
			Score:     seed.score,
		}
		if err := ratingRepo.Create(ctx, rating); err != nil {
			return errors.Wrapf(err, "failed to seed rating for %s", seed.storeName)
		}
	}

	// Recompute cached aggregates so they match the seeded ratings.
	for _, store := range storesByName {
		ratings, err := ratingRepo.ListByStore(ctx, store.ID, false)
		if err != nil {
			return err
		}
		if err := storeRepo.UpdateSummary(ctx, store.ID, entity.SummarizeRatings(ratings)); err != nil {
			return err
		}
	}

	return nil
}
