// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ratinity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is a domain-specific error returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreFilter narrows store listings. Search matches a case-insensitive
// substring of the store name or address, mirroring the dashboard search box.
type StoreFilter struct {
	Search  string
	OwnerID *uuid.UUID
}

// StoreRepository defines the standard operations for store persistence.
type StoreRepository interface {
	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// LockByID retrieves a store and, on backends that support it, acquires a
	// write lock held for the remainder of the surrounding transaction.
	// Rating upserts use this to serialize aggregate recomputation per store.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// List returns all stores matching the filter, ordered by name.
	List(ctx context.Context, filter StoreFilter) ([]*entity.Store, error)

	// Count returns the total number of stores.
	Count(ctx context.Context) (int64, error)

	// Create persists a new store entity to the storage.
	Create(ctx context.Context, store *entity.Store) error

	// UpdateSummary overwrites a store's cached rating projection and bumps
	// its UpdatedAt timestamp.
	UpdateSummary(ctx context.Context, id uuid.UUID, summary entity.RatingSummary) error
}
