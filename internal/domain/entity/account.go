// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered identity with a role. It is the core entity of the
// platform: normal users submit ratings, store owners receive them, and
// administrators manage both.
type Account struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the account.
	Name      string    `json:"name"`       // The account holder's full name.
	Email     string    `json:"email"`      // The primary contact email, used as the login identifier. Unique across accounts.
	Address   string    `json:"address"`    // The account holder's postal address.
	Role      Role      `json:"role"`       // The account's role. Immutable after creation.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this account was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification to this account's data.
}

// IsAdmin reports whether the account has administrator capabilities.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanOwnStores reports whether stores may reference this account as owner.
func (a *Account) CanOwnStores() bool {
	return a.Role == RoleStoreOwner
}
