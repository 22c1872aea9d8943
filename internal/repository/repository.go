package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/models"
)

// ErrNotFound means the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate means an insert lost to a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// UserRepository persists identity rows. Lookups ignore soft-deleted users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetEmailVerified(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// Revoke flips revoked=true for the given token value. Unknown or
	// already-revoked tokens are a no-op, not an error.
	Revoke(ctx context.Context, token string) error
}

type OtpRepository interface {
	Create(ctx context.Context, otp *models.Otp) error

	// DeleteBySubject removes every code of the given type for the subject,
	// used or not. Issuing calls this first so only one code is in flight.
	DeleteBySubject(ctx context.Context, otpType string, userID *uuid.UUID, email string) error

	// GetActive returns the unused code for (type, subject), expired or not.
	// The email must match even when a user id is given; a mismatched email
	// finds nothing.
	GetActive(ctx context.Context, otpType string, userID *uuid.UUID, email string) (*models.Otp, error)

	// MarkUsed transitions used false->true and reports whether this call won
	// the transition. A false return means another verification got there
	// first.
	MarkUsed(ctx context.Context, id uuid.UUID) (bool, error)
}

type OAuthAccountRepository interface {
	Create(ctx context.Context, account *models.OAuthAccount) error
	GetByProviderID(ctx context.Context, providerID string) (*models.OAuthAccount, error)
	UpdateTokens(ctx context.Context, userID uuid.UUID, provider, accessToken, refreshToken string, expiresAt *time.Time) error
}

type CompetitionRepository interface {
	Create(ctx context.Context, competition *models.Competition) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	List(ctx context.Context) ([]models.Competition, error)
	Update(ctx context.Context, competition *models.Competition) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type OptionRepository interface {
	Create(ctx context.Context, option *models.Option) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Option, error)
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Option, error)
	Update(ctx context.Context, option *models.Option) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OptionResult is an option with its tallied vote count.
type OptionResult struct {
	OptionID uuid.UUID `json:"option_id"`
	Title    string    `json:"title"`
	Votes    int64     `json:"votes"`
}

type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Vote, error)
	ResultsByCompetition(ctx context.Context, competitionID uuid.UUID) ([]OptionResult, error)
}
