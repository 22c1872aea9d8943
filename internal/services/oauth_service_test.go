package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/oauth"
	"github.com/votehub/votehub-api/internal/repository"
)

func googleProfile() oauth.Profile {
	return oauth.Profile{
		ProviderID: "google-123",
		Email:      "Jane@Example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Avatar:     "https://lh3.example.com/photo.jpg",
	}
}

func googleTokens() oauth.Tokens {
	expires := time.Now().Add(time.Hour)
	return oauth.Tokens{
		AccessToken:  "provider-access",
		RefreshToken: "provider-refresh",
		ExpiresAt:    &expires,
	}
}

func TestOAuthService_Reconcile_ExistingLink(t *testing.T) {
	users := new(mockUserRepository)
	accounts := new(mockOAuthAccountRepository)
	svc := NewOAuthService(users, accounts)

	userID := uuid.New()
	linked := &models.User{ID: userID, Email: "jane@example.com"}

	accounts.On("GetByProviderID", mock.Anything, "google-123").
		Return(&models.OAuthAccount{UserID: userID, Provider: models.ProviderGoogle, ProviderID: "google-123"}, nil)
	accounts.On("UpdateTokens", mock.Anything, userID, models.ProviderGoogle,
		"provider-access", "provider-refresh", mock.AnythingOfType("*time.Time")).Return(nil)
	users.On("GetByID", mock.Anything, userID).Return(linked, nil)

	user, err := svc.Reconcile(context.Background(), models.ProviderGoogle, googleProfile(), googleTokens())
	require.NoError(t, err)
	assert.Same(t, linked, user)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOAuthService_Reconcile_LinksExistingAccount(t *testing.T) {
	users := new(mockUserRepository)
	accounts := new(mockOAuthAccountRepository)
	svc := NewOAuthService(users, accounts)

	existing := &models.User{ID: uuid.New(), Email: "jane@example.com", Password: "some-hash"}

	accounts.On("GetByProviderID", mock.Anything, "google-123").Return(nil, repository.ErrNotFound)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(existing, nil)

	var link *models.OAuthAccount
	accounts.On("Create", mock.Anything, mock.AnythingOfType("*models.OAuthAccount")).
		Run(func(args mock.Arguments) {
			link = args.Get(1).(*models.OAuthAccount)
		}).
		Return(nil)

	user, err := svc.Reconcile(context.Background(), models.ProviderGoogle, googleProfile(), googleTokens())
	require.NoError(t, err)
	assert.Same(t, existing, user)

	require.NotNil(t, link)
	assert.Equal(t, existing.ID, link.UserID)
	assert.Equal(t, models.ProviderGoogle, link.Provider)
	assert.Equal(t, "google-123", link.ProviderID)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOAuthService_Reconcile_CreatesUser(t *testing.T) {
	users := new(mockUserRepository)
	accounts := new(mockOAuthAccountRepository)
	svc := NewOAuthService(users, accounts)

	accounts.On("GetByProviderID", mock.Anything, "google-123").Return(nil, repository.ErrNotFound)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, repository.ErrNotFound)

	var created *models.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
		}).
		Return(nil)
	accounts.On("Create", mock.Anything, mock.AnythingOfType("*models.OAuthAccount")).Return(nil)

	user, err := svc.Reconcile(context.Background(), models.ProviderGoogle, googleProfile(), googleTokens())
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Same(t, created, user)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, "Jane", created.FirstName)
	// The provider vouched for the address; no local code without a password.
	assert.True(t, created.IsEmailVerified)
	assert.Empty(t, created.Password)
}

func TestOAuthService_Reconcile_OrphanedLink(t *testing.T) {
	users := new(mockUserRepository)
	accounts := new(mockOAuthAccountRepository)
	svc := NewOAuthService(users, accounts)

	userID := uuid.New()
	accounts.On("GetByProviderID", mock.Anything, "google-123").
		Return(&models.OAuthAccount{UserID: userID, Provider: models.ProviderGoogle, ProviderID: "google-123"}, nil)
	accounts.On("UpdateTokens", mock.Anything, userID, models.ProviderGoogle,
		"provider-access", "provider-refresh", mock.AnythingOfType("*time.Time")).Return(nil)
	users.On("GetByID", mock.Anything, userID).Return(nil, repository.ErrNotFound)

	_, err := svc.Reconcile(context.Background(), models.ProviderGoogle, googleProfile(), googleTokens())
	assert.ErrorIs(t, err, ErrOrphanedOAuthLink)
}

func TestOAuthService_Reconcile_RetriesLostCreateRace(t *testing.T) {
	users := new(mockUserRepository)
	accounts := new(mockOAuthAccountRepository)
	svc := NewOAuthService(users, accounts)

	winner := &models.User{ID: uuid.New(), Email: "jane@example.com"}

	accounts.On("GetByProviderID", mock.Anything, "google-123").Return(nil, repository.ErrNotFound)
	// First pass: nobody has the email, but a concurrent reconciliation
	// creates the user between the lookup and our insert.
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, repository.ErrNotFound).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicate).Once()
	// Second pass finds the winner and links it.
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(winner, nil).Once()
	accounts.On("Create", mock.Anything, mock.AnythingOfType("*models.OAuthAccount")).Return(nil).Once()

	user, err := svc.Reconcile(context.Background(), models.ProviderGoogle, googleProfile(), googleTokens())
	require.NoError(t, err)
	assert.Same(t, winner, user)
}
