package usecase

import (
	"context"

	"ratinity/internal/domain/entity"

	"github.com/google/uuid"
)

// ListStoresInput defines the optional filters for listing stores.
// RequesterID, when set, attaches the requester's own rating to each store.
type ListStoresInput struct {
	Search      string
	OwnerID     *uuid.UUID
	RequesterID *uuid.UUID
}

// CreateStoreInput defines the data required to create a new store.
// OwnerID is optional; when set it must reference a STORE_OWNER account.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID *uuid.UUID
}

// StoreListItem pairs a store with the requesting account's own rating, if any.
type StoreListItem struct {
	Store    *entity.Store  `json:"store"`
	MyRating *entity.Rating `json:"my_rating,omitempty"`
}

// StoreUsecase defines the interface for store-related business operations.
type StoreUsecase interface {
	ListStores(ctx context.Context, input *ListStoresInput) ([]*StoreListItem, error)
	GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error)

	// GenerateStoreQR renders a PNG QR code that links to the store's rating page.
	GenerateStoreQR(ctx context.Context, id uuid.UUID) ([]byte, error)

	// ResolveStoreQR resolves a scanned QR payload to the store it references.
	ResolveStoreQR(ctx context.Context, qrData string) (*entity.Store, error)
}
