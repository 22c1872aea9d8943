// Package oauth normalizes third-party identities. Provider adapters turn
// provider-specific responses into a Profile so the rest of the service never
// branches on provider shapes.
package oauth

import "time"

// Profile is the normalized identity a provider vouches for.
type Profile struct {
	ProviderID string
	Email      string
	FirstName  string
	LastName   string
	Avatar     string
}

// Tokens are the provider credentials stored alongside the link.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

// Config is the per-provider configuration record.
type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Scopes       []string
}
