package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

// AccessClaims is the payload carried by a signed access token.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// UserID parses the token subject.
func (c *AccessClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues HS256 access tokens and persisted refresh tokens.
// Access tokens are stateless; refresh tokens are stored by value so they can
// be revoked. Refresh tokens are not rotated on use.
type TokenService struct {
	tokens        repository.RefreshTokenRepository
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewTokenService(tokens repository.RefreshTokenRepository, secret string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	return &TokenService{
		tokens:        tokens,
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

func (s *TokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	return s.sign(userID, s.accessExpiry, "")
}

// IssueRefreshToken signs a long-lived token and persists it with a matching
// expiry. The stored row is what makes revocation possible.
func (s *TokenService) IssueRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	expiresAt := s.now().Add(s.refreshExpiry)
	token, err := s.sign(userID, s.refreshExpiry, uuid.NewString())
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Create(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

// VerifyAccessToken checks signature and expiry only; no storage lookup.
func (s *TokenService) VerifyAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh mints a new access token for the user behind a stored refresh
// token. Absent, revoked and expired tokens all fail the same way.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	stored, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("failed to load refresh token: %w", err)
	}

	if stored.Revoked || s.now().After(stored.ExpiresAt) {
		return "", ErrInvalidRefreshToken
	}

	return s.IssueAccessToken(stored.UserID)
}

// Revoke invalidates a refresh token. Unknown and already-revoked tokens
// succeed silently so callers cannot probe for token existence.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// sign builds a token for the subject. A non-empty jti keeps otherwise
// identical tokens distinct, which matters for refresh tokens stored under a
// unique constraint.
func (s *TokenService) sign(userID uuid.UUID, validity time.Duration, jti string) (string, error) {
	now := s.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			ID:        jti,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
