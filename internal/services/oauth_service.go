package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/oauth"
	"github.com/votehub/votehub-api/internal/repository"
)

// OAuthService reconciles a verified third-party identity with a local user:
// an existing link wins, then an existing account with the same email gets
// linked, and only then is a fresh user created.
type OAuthService struct {
	users    repository.UserRepository
	accounts repository.OAuthAccountRepository
}

func NewOAuthService(users repository.UserRepository, accounts repository.OAuthAccountRepository) *OAuthService {
	return &OAuthService{users: users, accounts: accounts}
}

// Reconcile maps the profile onto a local user, creating user and link rows
// as needed. The lookup-then-create sequence is not atomic; when a concurrent
// reconciliation wins a create, the store's unique constraints report a
// duplicate and the sequence restarts down the account-exists path.
func (s *OAuthService) Reconcile(ctx context.Context, provider string, profile oauth.Profile, tokens oauth.Tokens) (*models.User, error) {
	const maxAttempts = 2
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		user, err := s.reconcileOnce(ctx, provider, profile, tokens)
		if errors.Is(err, repository.ErrDuplicate) {
			slog.Warn("oauth reconciliation raced, retrying",
				"provider", provider, "email", profile.Email)
			lastErr = err
			continue
		}
		return user, err
	}
	return nil, fmt.Errorf("oauth reconciliation did not converge: %w", lastErr)
}

func (s *OAuthService) reconcileOnce(ctx context.Context, provider string, profile oauth.Profile, tokens oauth.Tokens) (*models.User, error) {
	account, err := s.accounts.GetByProviderID(ctx, profile.ProviderID)
	switch {
	case err == nil:
		return s.refreshLinkedUser(ctx, provider, account, tokens)
	case errors.Is(err, repository.ErrNotFound):
		// fall through to email lookup
	default:
		return nil, fmt.Errorf("failed to look up oauth account: %w", err)
	}

	email := strings.ToLower(profile.Email)
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		// First-time link of an existing password account.
	case errors.Is(err, repository.ErrNotFound):
		user, err = s.createUser(ctx, email, profile)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if err := s.createLink(ctx, user.ID, provider, profile, tokens); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *OAuthService) refreshLinkedUser(ctx context.Context, provider string, account *models.OAuthAccount, tokens oauth.Tokens) (*models.User, error) {
	err := s.accounts.UpdateTokens(ctx, account.UserID, provider, tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update provider tokens: %w", err)
	}

	user, err := s.users.GetByID(ctx, account.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// A link must never outlive its user.
			return nil, ErrOrphanedOAuthLink
		}
		return nil, fmt.Errorf("failed to load linked user: %w", err)
	}
	return user, nil
}

func (s *OAuthService) createUser(ctx context.Context, email string, profile oauth.Profile) (*models.User, error) {
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "",
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Image:     profile.Avatar,
		// The provider already verified this address.
		IsEmailVerified: true,
		Role:            models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}
	return user, nil
}

func (s *OAuthService) createLink(ctx context.Context, userID uuid.UUID, provider string, profile oauth.Profile, tokens oauth.Tokens) error {
	account := &models.OAuthAccount{
		UserID:         userID,
		Provider:       provider,
		ProviderID:     profile.ProviderID,
		Email:          profile.Email,
		AccessToken:    tokens.AccessToken,
		RefreshToken:   tokens.RefreshToken,
		TokenExpiresAt: tokens.ExpiresAt,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to create oauth account: %w", err)
	}
	return nil
}
