package oauth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const appleIssuer = "https://appleid.apple.com"

type appleClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// AppleProvider verifies Apple identity tokens against Apple's published
// signing keys. Apple's native sign-in hands the client an identity token
// rather than an authorization code, so there is no code exchange here.
type AppleProvider struct {
	clientID string
	keys     *appleKeySet
}

// NewAppleProvider wants the app's client id (bundle id), which must match
// the token audience.
func NewAppleProvider(cfg Config) *AppleProvider {
	return &AppleProvider{
		clientID: cfg.ClientID,
		keys:     newAppleKeySet(),
	}
}

func (p *AppleProvider) Name() string {
	return "apple"
}

// VerifyIdentityToken checks signature, issuer, audience and expiry, and
// maps the claims onto a Profile. Apple only sends the user's name on first
// authorization, so the caller may overlay a name from the sign-in request.
func (p *AppleProvider) VerifyIdentityToken(identityToken string) (Profile, Tokens, error) {
	claims := &appleClaims{}
	token, err := jwt.ParseWithClaims(identityToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		return p.keys.get(kid)
	},
		jwt.WithIssuer(appleIssuer),
		jwt.WithAudience(p.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Profile{}, Tokens{}, fmt.Errorf("apple identity token verification failed: %w", err)
	}

	email := claims.Email
	if email == "" {
		// Hidden-email users get a private relay address derived from the
		// stable subject.
		email = claims.Subject + "@privaterelay.appleid.com"
	}

	profile := Profile{
		ProviderID: claims.Subject,
		Email:      email,
	}

	tokens := Tokens{AccessToken: identityToken}
	if claims.ExpiresAt != nil {
		expiry := claims.ExpiresAt.Time
		tokens.ExpiresAt = &expiry
	} else {
		expiry := time.Now().Add(time.Hour)
		tokens.ExpiresAt = &expiry
	}

	return profile, tokens, nil
}

// SplitFullName breaks a display name into first/last for profile storage.
func SplitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
