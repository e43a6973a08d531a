package memory

import (
	"context"

	"ratinity/internal/domain/repository"
)

// transactionManager implements repository.TransactionManager for the
// in-memory DB. Transactions run one at a time; a snapshot taken before the
// callback is restored when the callback returns an error or panics, so a
// failed transaction leaves no partial writes behind.
type transactionManager struct {
	db *DB
}

// repositoryFactory implements repository.RepositoryFactory over the shared DB.
type repositoryFactory struct {
	db *DB
}

// AccountRepo creates an account repository bound to the record store.
func (f *repositoryFactory) AccountRepo() repository.AccountRepository {
	return NewAccountRepository(f.db)
}

// StoreRepo creates a store repository bound to the record store.
func (f *repositoryFactory) StoreRepo() repository.StoreRepository {
	return NewStoreRepository(f.db)
}

// RatingRepo creates a rating repository bound to the record store.
func (f *repositoryFactory) RatingRepo() repository.RatingRepository {
	return NewRatingRepository(f.db)
}

// CredentialRepo creates a credential repository bound to the record store.
func (f *repositoryFactory) CredentialRepo() repository.CredentialRepository {
	return NewCredentialRepository(f.db)
}

// NewTransactionManager is the constructor for the in-memory transaction manager.
func NewTransactionManager(db *DB) repository.TransactionManager {
	return &transactionManager{db: db}
}

// Execute runs the given function as a single serialized transaction.
func (tm *transactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tm.db.txMu.Lock()
	defer tm.db.txMu.Unlock()

	snap := tm.db.takeSnapshot()

	defer func() {
		if r := recover(); r != nil {
			tm.db.restoreSnapshot(snap)
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{db: tm.db}); err != nil {
		tm.db.restoreSnapshot(snap)

		return err
	}

	return nil
}
