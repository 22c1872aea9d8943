package oauth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

const appleJWKSURL = "https://appleid.apple.com/auth/keys"

type appleJWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// appleKeySet caches Apple's signing keys for a day, refetching on unknown
// key ids.
type appleKeySet struct {
	httpClient *http.Client
	url        string

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

func newAppleKeySet() *appleKeySet {
	return &appleKeySet{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        appleJWKSURL,
		keys:       make(map[string]*rsa.PublicKey),
	}
}

func (ks *appleKeySet) get(kid string) (*rsa.PublicKey, error) {
	ks.mu.RLock()
	if key, ok := ks.keys[kid]; ok && time.Now().Before(ks.expiresAt) {
		ks.mu.RUnlock()
		return key, nil
	}
	ks.mu.RUnlock()

	if err := ks.refresh(); err != nil {
		return nil, err
	}

	ks.mu.RLock()
	defer ks.mu.RUnlock()
	if key, ok := ks.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("apple signing key %q not found", kid)
}

func (ks *appleKeySet) refresh() error {
	resp, err := ks.httpClient.Get(ks.url)
	if err != nil {
		return fmt.Errorf("failed to fetch apple keys: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("apple keys endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Keys []appleJWK `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode apple keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(payload.Keys))
	for _, jwk := range payload.Keys {
		pub, err := jwkToRSA(jwk)
		if err != nil {
			continue
		}
		keys[jwk.Kid] = pub
	}

	ks.mu.Lock()
	ks.keys = keys
	ks.expiresAt = time.Now().Add(24 * time.Hour)
	ks.mu.Unlock()
	return nil
}

func jwkToRSA(jwk appleJWK) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	var e int
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}
