// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core identity entity, representing a single account.
// A user authenticates either with a password (local provider) or through a
// federated provider such as Google; the two are reconciled into one record.
type User struct {
	ID         int64        // Numeric identity assigned by the store.
	Username   string       // Unique login identifier. Federated accounts use their email here.
	Email      string       // The user's contact email, unique when set, optional for local accounts.
	Password   string       // bcrypt hash of the password. Legacy rows may still hold plaintext until first login migrates them.
	Role       Role         // Authorization role, either RoleUser or RoleAdmin.
	Provider   AuthProvider // The provider that owns this identity (local or a federated provider).
	ProviderID string       // The provider-assigned external id. Empty for local accounts.
	CreatedAt  time.Time    // Timestamp of when this account was created.
	UpdatedAt  time.Time    // Timestamp of the last modification to this account.
}

// IsFederated reports whether the account is linked to an external identity provider.
func (u *User) IsFederated() bool {
	return u.Provider != "" && u.Provider != ProviderLocal
}
