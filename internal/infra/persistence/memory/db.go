// Package memory provides an in-process implementation of the persistence
// layer. It backs local development and tests when no PostgreSQL connection
// is configured, and ships with a small seeded dataset so the service is
// usable immediately after startup.
package memory

import (
	"sync"
	"time"

	"ratinity/internal/domain/entity"

	"github.com/google/uuid"
)

// DB is the shared in-memory record store. All repositories created from the
// same DB observe the same data. Individual operations take the data mutex;
// transactions additionally serialize through a dedicated transaction mutex
// and restore a snapshot when the transactional function fails.
type DB struct {
	mu sync.RWMutex

	accounts    map[uuid.UUID]*entity.Account
	emailIndex  map[string]uuid.UUID
	credentials map[uuid.UUID]*entity.Credential
	stores      map[uuid.UUID]*entity.Store
	ratings     map[uuid.UUID]*entity.Rating

	// ratingIndex maps (accountID, storeID) to the rating ID, enforcing the
	// one-rating-per-account-per-store invariant.
	ratingIndex map[ratingKey]uuid.UUID

	// txMu serializes transactions so snapshot/restore is race-free.
	txMu sync.Mutex

	now func() time.Time
}

type ratingKey struct {
	accountID uuid.UUID
	storeID   uuid.UUID
}

// NewDB creates an empty in-memory record store.
func NewDB() *DB {
	return &DB{
		accounts:    make(map[uuid.UUID]*entity.Account),
		emailIndex:  make(map[string]uuid.UUID),
		credentials: make(map[uuid.UUID]*entity.Credential),
		stores:      make(map[uuid.UUID]*entity.Store),
		ratings:     make(map[uuid.UUID]*entity.Rating),
		ratingIndex: make(map[ratingKey]uuid.UUID),
		now:         time.Now,
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to v4.
		return uuid.New()
	}

	return id
}

// snapshot captures a deep copy of the current state.
type snapshot struct {
	accounts    map[uuid.UUID]*entity.Account
	emailIndex  map[string]uuid.UUID
	credentials map[uuid.UUID]*entity.Credential
	stores      map[uuid.UUID]*entity.Store
	ratings     map[uuid.UUID]*entity.Rating
	ratingIndex map[ratingKey]uuid.UUID
}

func (db *DB) takeSnapshot() *snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()

	snap := &snapshot{
		accounts:    make(map[uuid.UUID]*entity.Account, len(db.accounts)),
		emailIndex:  make(map[string]uuid.UUID, len(db.emailIndex)),
		credentials: make(map[uuid.UUID]*entity.Credential, len(db.credentials)),
		stores:      make(map[uuid.UUID]*entity.Store, len(db.stores)),
		ratings:     make(map[uuid.UUID]*entity.Rating, len(db.ratings)),
		ratingIndex: make(map[ratingKey]uuid.UUID, len(db.ratingIndex)),
	}
	for id, account := range db.accounts {
		snap.accounts[id] = cloneAccount(account)
	}
	for email, id := range db.emailIndex {
		snap.emailIndex[email] = id
	}
	for id, credential := range db.credentials {
		snap.credentials[id] = cloneCredential(credential)
	}
	for id, store := range db.stores {
		snap.stores[id] = cloneStore(store)
	}
	for id, rating := range db.ratings {
		snap.ratings[id] = cloneRating(rating)
	}
	for key, id := range db.ratingIndex {
		snap.ratingIndex[key] = id
	}

	return snap
}

func (db *DB) restoreSnapshot(snap *snapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.accounts = snap.accounts
	db.emailIndex = snap.emailIndex
	db.credentials = snap.credentials
	db.stores = snap.stores
	db.ratings = snap.ratings
	db.ratingIndex = snap.ratingIndex
}

// --- entity clones ---
// Repositories store and return copies so callers never alias internal state.

func cloneAccount(src *entity.Account) *entity.Account {
	if src == nil {
		return nil
	}
	dst := *src

	return &dst
}

func cloneCredential(src *entity.Credential) *entity.Credential {
	if src == nil {
		return nil
	}
	dst := *src

	return &dst
}

func cloneStore(src *entity.Store) *entity.Store {
	if src == nil {
		return nil
	}
	dst := *src
	if src.OwnerID != nil {
		ownerID := *src.OwnerID
		dst.OwnerID = &ownerID
	}

	return &dst
}

func cloneRating(src *entity.Rating) *entity.Rating {
	if src == nil {
		return nil
	}
	dst := *src
	dst.Submitter = cloneAccount(src.Submitter)

	return &dst
}
