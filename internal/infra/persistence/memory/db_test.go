package memory

import (
	"context"
	"testing"

	"ratinity/config"
	"ratinity/internal/domain/entity"
	"ratinity/internal/domain/repository"
	"ratinity/internal/infra/auth"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(email string, role entity.Role) *entity.Account {
	return &entity.Account{
		Name:    "Test Account Holder Name",
		Email:   email,
		Address: "12 Example Road, Test City, TC 00001",
		Role:    role,
	}
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	repo := NewAccountRepository(db)

	account := newTestAccount("alice@example.com", entity.RoleNormalUser)
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", account.ID.String())
	assert.False(t, account.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Email, found.Email)

	byEmail, err := repo.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	repo := NewAccountRepository(db)

	require.NoError(t, repo.Create(ctx, newTestAccount("dup@example.com", entity.RoleNormalUser)))
	err := repo.Create(ctx, newTestAccount("dup@example.com", entity.RoleStoreOwner))
	assert.Error(t, err)
}

func TestAccountRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	repo := NewAccountRepository(db)

	account := newTestAccount("copy@example.com", entity.RoleNormalUser)
	require.NoError(t, repo.Create(ctx, account))

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	found.Name = "Mutated Outside The Repository"

	again, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Account Holder Name", again.Name)
}

func TestRatingRepository_OneRatingPerAccountAndStore(t *testing.T) {
	ctx := context.Background()
	db := NewDB()

	account := newTestAccount("rater@example.com", entity.RoleNormalUser)
	require.NoError(t, NewAccountRepository(db).Create(ctx, account))

	store := &entity.Store{
		Name:    "Sample Corner Store",
		Email:   "corner@example.com",
		Address: "34 Market Street, Test City, TC 00002",
	}
	require.NoError(t, NewStoreRepository(db).Create(ctx, store))

	ratingRepo := NewRatingRepository(db)
	first := &entity.Rating{AccountID: account.ID, StoreID: store.ID, Score: 4}
	require.NoError(t, ratingRepo.Create(ctx, first))

	duplicate := &entity.Rating{AccountID: account.ID, StoreID: store.ID, Score: 5}
	assert.Error(t, ratingRepo.Create(ctx, duplicate))

	// Updating the existing rating is the supported path.
	first.Score = 5
	require.NoError(t, ratingRepo.Update(ctx, first))

	found, err := ratingRepo.FindByAccountAndStore(ctx, account.ID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Score)
}

func TestRatingRepository_RejectsOutOfRangeScore(t *testing.T) {
	ctx := context.Background()
	db := NewDB()

	account := newTestAccount("range@example.com", entity.RoleNormalUser)
	require.NoError(t, NewAccountRepository(db).Create(ctx, account))
	store := &entity.Store{Name: "Range Store", Email: "range@store.com", Address: "56 Range Road, Test City"}
	require.NoError(t, NewStoreRepository(db).Create(ctx, store))

	ratingRepo := NewRatingRepository(db)
	assert.Error(t, ratingRepo.Create(ctx, &entity.Rating{AccountID: account.ID, StoreID: store.ID, Score: 0}))
	assert.Error(t, ratingRepo.Create(ctx, &entity.Rating{AccountID: account.ID, StoreID: store.ID, Score: 6}))
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	txManager := NewTransactionManager(db)

	sentinel := errors.New("business rule failed")
	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if createErr := factory.AccountRepo().Create(ctx, newTestAccount("rollback@example.com", entity.RoleNormalUser)); createErr != nil {
			return createErr
		}

		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = NewAccountRepository(db).FindByEmail(ctx, "rollback@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestTransactionManager_CommitKeepsWrites(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	txManager := NewTransactionManager(db)

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.AccountRepo().Create(ctx, newTestAccount("commit@example.com", entity.RoleNormalUser))
	})
	require.NoError(t, err)

	_, err = NewAccountRepository(db).FindByEmail(ctx, "commit@example.com")
	assert.NoError(t, err)
}

func TestSeed_ProducesConsistentAggregates(t *testing.T) {
	ctx := context.Background()
	db := NewDB()

	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	hasher := auth.NewBcryptHasher(cfg)

	require.NoError(t, Seed(ctx, db, hasher))

	// Seeding twice must not duplicate data.
	require.NoError(t, Seed(ctx, db, hasher))

	accountRepo := NewAccountRepository(db)
	count, err := accountRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	admin, err := accountRepo.FindByEmail(ctx, "admin@ratinity.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	credential, err := NewCredentialRepository(db).FindByAccountID(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, hasher.Check("Admin123!", credential.PasswordHash))

	stores, err := NewStoreRepository(db).List(ctx, repository.StoreFilter{})
	require.NoError(t, err)
	require.Len(t, stores, 3)

	byName := make(map[string]*entity.Store, len(stores))
	for _, store := range stores {
		byName[store.Name] = store
	}

	assert.Equal(t, 4.0, byName["Tech Paradise"].AverageRating)
	assert.Equal(t, int64(1), byName["Tech Paradise"].TotalRatings)
	assert.Equal(t, 3.0, byName["Food Central"].AverageRating)
	assert.Equal(t, int64(1), byName["Food Central"].TotalRatings)
	assert.Equal(t, 0.0, byName["Fashion Hub"].AverageRating)
	assert.Equal(t, int64(0), byName["Fashion Hub"].TotalRatings)
}
