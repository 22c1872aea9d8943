package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

type authFixture struct {
	users  *mockUserRepository
	otps   *mockOtpRepository
	tokens *mockRefreshTokenRepository
	mailer *mockSender
	svc    *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  new(mockUserRepository),
		otps:   new(mockOtpRepository),
		tokens: new(mockRefreshTokenRepository),
		mailer: new(mockSender),
	}
	f.svc = NewAuthService(
		f.users,
		NewOtpService(f.otps),
		NewTokenService(f.tokens, testSecret, time.Hour, 168*time.Hour),
		f.mailer,
	)
	return f
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture()

	var created *models.User
	f.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
		}).
		Return(nil)
	f.otps.On("DeleteBySubject", mock.Anything, models.OtpTypeEmailVerification, mock.Anything, "jane@example.com").Return(nil)
	f.otps.On("Create", mock.Anything, mock.AnythingOfType("*models.Otp")).Return(nil)
	f.tokens.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)
	// Delivery happens off the request path; it may or may not land before
	// the test ends.
	f.mailer.On("SendVerificationEmail", "jane@example.com", mock.AnythingOfType("string")).Return(nil).Maybe()

	result, err := f.svc.Register(context.Background(), "Jane@Example.com", "secret123", "Jane", "Doe")
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.False(t, created.IsEmailVerified)
	// The stored password is a hash, never the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Same(t, created, result.User)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	f.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicate)

	_, err := f.svc.Register(context.Background(), "jane@example.com", "secret123", "Jane", "Doe")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	f.otps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_OtpStorageFailure(t *testing.T) {
	f := newAuthFixture()

	f.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	f.otps.On("DeleteBySubject", mock.Anything, models.OtpTypeEmailVerification, mock.Anything, "jane@example.com").Return(nil)
	f.otps.On("Create", mock.Anything, mock.AnythingOfType("*models.Otp")).
		Return(errors.New("connection refused"))

	// If the verification code cannot be stored the registration fails as a
	// whole; no tokens, no mail.
	result, err := f.svc.Register(context.Background(), "jane@example.com", "secret123", "Jane", "Doe")
	require.Error(t, err)
	assert.Nil(t, result)
	f.tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "jane@example.com", Password: hash}

	f.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	f.tokens.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	result, err := f.svc.Login(context.Background(), "Jane@Example.com", "secret123")
	require.NoError(t, err)
	assert.Same(t, user, result.User)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("GetByEmail", mock.Anything, "jane@example.com").
			Return(&models.User{ID: uuid.New(), Email: "jane@example.com", Password: hash}, nil)

		_, err := f.svc.Login(context.Background(), "jane@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

		// Indistinguishable from a wrong password.
		_, err := f.svc.Login(context.Background(), "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	otp := &models.Otp{
		ID:        uuid.New(),
		Type:      models.OtpTypeEmailVerification,
		UserID:    &userID,
		Email:     "jane@example.com",
		CodeHash:  hashCode(t, "123456"),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	f.otps.On("GetActive", mock.Anything, models.OtpTypeEmailVerification, &userID, "jane@example.com").Return(otp, nil)
	f.otps.On("MarkUsed", mock.Anything, otp.ID).Return(true, nil)
	f.users.On("SetEmailVerified", mock.Anything, userID).Return(nil)
	f.users.On("GetByID", mock.Anything, userID).
		Return(&models.User{ID: userID, Email: "jane@example.com", FirstName: "Jane"}, nil)
	f.mailer.On("SendWelcomeEmail", "jane@example.com", "Jane").Return(nil).Maybe()

	err := f.svc.VerifyEmail(context.Background(), userID, "jane@example.com", "123456")
	require.NoError(t, err)
	f.users.AssertCalled(t, "SetEmailVerified", mock.Anything, userID)
}

func TestAuthService_VerifyEmail_BadCode(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	otp := &models.Otp{
		ID:        uuid.New(),
		CodeHash:  hashCode(t, "123456"),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	f.otps.On("GetActive", mock.Anything, models.OtpTypeEmailVerification, &userID, "jane@example.com").Return(otp, nil)

	err := f.svc.VerifyEmail(context.Background(), userID, "jane@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)
	f.users.AssertNotCalled(t, "SetEmailVerified", mock.Anything, mock.Anything)
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	f := newAuthFixture()
	user := &models.User{ID: uuid.New(), Email: "jane@example.com"}

	f.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	f.otps.On("DeleteBySubject", mock.Anything, models.OtpTypePasswordReset, (*uuid.UUID)(nil), "jane@example.com").Return(nil)
	f.otps.On("Create", mock.Anything, mock.AnythingOfType("*models.Otp")).Return(nil)
	f.mailer.On("SendPasswordResetEmail", "jane@example.com", mock.AnythingOfType("string")).Return(nil).Maybe()

	err := f.svc.RequestPasswordReset(context.Background(), "jane@example.com")
	require.NoError(t, err)
	f.otps.AssertExpectations(t)
}

func TestAuthService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	f.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	err := f.svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	f.otps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_ResetPassword(t *testing.T) {
	f := newAuthFixture()
	user := &models.User{ID: uuid.New(), Email: "jane@example.com"}

	otp := &models.Otp{
		ID:        uuid.New(),
		Type:      models.OtpTypePasswordReset,
		Email:     "jane@example.com",
		CodeHash:  hashCode(t, "123456"),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	f.otps.On("GetActive", mock.Anything, models.OtpTypePasswordReset, (*uuid.UUID)(nil), "jane@example.com").Return(otp, nil)
	f.otps.On("MarkUsed", mock.Anything, otp.ID).Return(true, nil)
	f.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	var storedHash string
	f.users.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).
		Return(nil)

	err := f.svc.ResetPassword(context.Background(), "jane@example.com", "123456", "newsecret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("newsecret")))
}

func TestAuthService_VerifyToken(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	access, err := f.svc.tokens.IssueAccessToken(userID)
	require.NoError(t, err)

	t.Run("valid token, live user", func(t *testing.T) {
		f.users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil).Once()

		status := f.svc.VerifyToken(context.Background(), access)
		assert.True(t, status.Valid)
		require.NotNil(t, status.Claims)
		parsed, err := status.Claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("user soft-deleted since issuance", func(t *testing.T) {
		f.users.On("GetByID", mock.Anything, userID).Return(nil, repository.ErrNotFound).Once()

		status := f.svc.VerifyToken(context.Background(), access)
		assert.False(t, status.Valid)
		assert.Equal(t, "user no longer exists", status.Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		status := f.svc.VerifyToken(context.Background(), "not-a-jwt")
		assert.False(t, status.Valid)
		assert.NotEmpty(t, status.Message)
	})
}
