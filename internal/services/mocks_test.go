package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepository) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Refresh Token Repository ---

type mockRefreshTokenRepository struct {
	mock.Mock
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenRepository) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// --- Mock OTP Repository ---

type mockOtpRepository struct {
	mock.Mock
}

func (m *mockOtpRepository) Create(ctx context.Context, otp *models.Otp) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *mockOtpRepository) DeleteBySubject(ctx context.Context, otpType string, userID *uuid.UUID, email string) error {
	args := m.Called(ctx, otpType, userID, email)
	return args.Error(0)
}

func (m *mockOtpRepository) GetActive(ctx context.Context, otpType string, userID *uuid.UUID, email string) (*models.Otp, error) {
	args := m.Called(ctx, otpType, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Otp), args.Error(1)
}

func (m *mockOtpRepository) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Mock OAuth Account Repository ---

type mockOAuthAccountRepository struct {
	mock.Mock
}

func (m *mockOAuthAccountRepository) Create(ctx context.Context, account *models.OAuthAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockOAuthAccountRepository) GetByProviderID(ctx context.Context, providerID string) (*models.OAuthAccount, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OAuthAccount), args.Error(1)
}

func (m *mockOAuthAccountRepository) UpdateTokens(ctx context.Context, userID uuid.UUID, provider, accessToken, refreshToken string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, provider, accessToken, refreshToken, expiresAt)
	return args.Error(0)
}

// --- Mock Competition Repository ---

type mockCompetitionRepository struct {
	mock.Mock
}

func (m *mockCompetitionRepository) Create(ctx context.Context, competition *models.Competition) error {
	args := m.Called(ctx, competition)
	return args.Error(0)
}

func (m *mockCompetitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Competition), args.Error(1)
}

func (m *mockCompetitionRepository) List(ctx context.Context) ([]models.Competition, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Competition), args.Error(1)
}

func (m *mockCompetitionRepository) Update(ctx context.Context, competition *models.Competition) error {
	args := m.Called(ctx, competition)
	return args.Error(0)
}

func (m *mockCompetitionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Option Repository ---

type mockOptionRepository struct {
	mock.Mock
}

func (m *mockOptionRepository) Create(ctx context.Context, option *models.Option) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *mockOptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Option, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Option), args.Error(1)
}

func (m *mockOptionRepository) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Option, error) {
	args := m.Called(ctx, competitionID)
	return args.Get(0).([]models.Option), args.Error(1)
}

func (m *mockOptionRepository) Update(ctx context.Context, option *models.Option) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *mockOptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Vote Repository ---

type mockVoteRepository struct {
	mock.Mock
}

func (m *mockVoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *mockVoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Vote, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Vote), args.Error(1)
}

func (m *mockVoteRepository) ResultsByCompetition(ctx context.Context, competitionID uuid.UUID) ([]repository.OptionResult, error) {
	args := m.Called(ctx, competitionID)
	return args.Get(0).([]repository.OptionResult), args.Error(1)
}

// --- Mock Mail Sender ---

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendVerificationEmail(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *mockSender) SendPasswordResetEmail(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *mockSender) SendWelcomeEmail(to, name string) error {
	args := m.Called(to, name)
	return args.Error(0)
}

// --- Mock Avatar Storage ---

type mockAvatarStorage struct {
	mock.Mock
}

func (m *mockAvatarStorage) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockAvatarStorage) Delete(ctx context.Context, location string) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}
