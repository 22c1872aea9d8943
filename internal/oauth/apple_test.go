package oauth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		in    string
		first string
		last  string
	}{
		{"", "", ""},
		{"Jane", "Jane", ""},
		{"Jane Doe", "Jane", "Doe"},
		{"Jane van der Berg", "Jane", "van der Berg"},
		{"  Jane   Doe  ", "Jane", "Doe"},
	}

	for _, tc := range cases {
		first, last := SplitFullName(tc.in)
		assert.Equal(t, tc.first, first, "input %q", tc.in)
		assert.Equal(t, tc.last, last, "input %q", tc.in)
	}
}

func TestAppleProvider_VerifyIdentityToken_Garbage(t *testing.T) {
	p := NewAppleProvider(Config{ClientID: "app.votehub.ios"})

	_, _, err := p.VerifyIdentityToken("not-a-jwt")
	assert.Error(t, err)
}

const testKid = "test-key"

// newAppleTestProvider serves a JWKS for the given key from a local server
// and points the provider's key set at it.
func newAppleTestProvider(t *testing.T, clientID string, pub *rsa.PublicKey) *AppleProvider {
	t.Helper()

	body := fmt.Sprintf(`{"keys":[{"kty":"RSA","kid":%q,"use":"sig","alg":"RS256","n":%q,"e":%q}]}`,
		testKid,
		base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"AQAB",
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	p := NewAppleProvider(Config{ClientID: clientID})
	p.keys.url = srv.URL
	return p
}

func signAppleToken(t *testing.T, key *rsa.PrivateKey, claims appleClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAppleProvider_VerifyIdentityToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	const clientID = "app.votehub.ios"
	validClaims := func() appleClaims {
		return appleClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    appleIssuer,
				Audience:  jwt.ClaimStrings{clientID},
				Subject:   "apple-sub-1",
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	t.Run("valid token", func(t *testing.T) {
		p := newAppleTestProvider(t, clientID, &key.PublicKey)
		claims := validClaims()
		claims.Email = "jane@example.com"

		profile, tokens, err := p.VerifyIdentityToken(signAppleToken(t, key, claims))
		require.NoError(t, err)
		assert.Equal(t, "apple-sub-1", profile.ProviderID)
		assert.Equal(t, "jane@example.com", profile.Email)
		require.NotNil(t, tokens.ExpiresAt)
	})

	t.Run("hidden email falls back to private relay", func(t *testing.T) {
		p := newAppleTestProvider(t, clientID, &key.PublicKey)

		profile, _, err := p.VerifyIdentityToken(signAppleToken(t, key, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "apple-sub-1@privaterelay.appleid.com", profile.Email)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		p := newAppleTestProvider(t, clientID, &key.PublicKey)
		claims := validClaims()
		claims.Issuer = "https://accounts.example.com"

		_, _, err := p.VerifyIdentityToken(signAppleToken(t, key, claims))
		assert.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		p := newAppleTestProvider(t, clientID, &key.PublicKey)
		claims := validClaims()
		claims.Audience = jwt.ClaimStrings{"some.other.app"}

		_, _, err := p.VerifyIdentityToken(signAppleToken(t, key, claims))
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		p := newAppleTestProvider(t, clientID, &key.PublicKey)
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

		_, _, err := p.VerifyIdentityToken(signAppleToken(t, key, claims))
		assert.Error(t, err)
	})

	t.Run("unknown signing key", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		// JWKS serves the other key, so ours is not in the set.
		p := newAppleTestProvider(t, clientID, &otherKey.PublicKey)

		_, _, err = p.VerifyIdentityToken(signAppleToken(t, key, validClaims()))
		assert.Error(t, err)
	})
}
