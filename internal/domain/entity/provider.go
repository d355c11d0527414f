// Package entity contains the core business objects of the project.
package entity

// AuthProvider identifies which identity provider owns an account's credentials.
type AuthProvider string

const (
	// ProviderLocal indicates a password-based account managed by this service.
	ProviderLocal AuthProvider = "local"
	// ProviderGoogle indicates an account linked to Google Sign-In.
	ProviderGoogle AuthProvider = "google"
)

// String returns the string representation of the AuthProvider.
func (p AuthProvider) String() string {
	return string(p)
}
