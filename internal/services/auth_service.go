package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/mail"
	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

// AuthResult is returned by every flow that establishes a session.
type AuthResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// TokenStatus is the non-raising result of a token liveness probe. Other
// services poll this without wanting failure as control flow.
type TokenStatus struct {
	Valid   bool          `json:"valid"`
	Claims  *AccessClaims `json:"payload,omitempty"`
	Message string        `json:"message,omitempty"`
}

// AuthService orchestrates registration, login, verification, password reset
// and session lifecycle. It is the only service spanning multiple entities in
// one logical operation.
type AuthService struct {
	users  repository.UserRepository
	otp    *OtpService
	tokens *TokenService
	mailer mail.Sender
}

func NewAuthService(users repository.UserRepository, otp *OtpService, tokens *TokenService, mailer mail.Sender) *AuthService {
	return &AuthService{users: users, otp: otp, tokens: tokens, mailer: mailer}
}

// Register creates an account, issues a verification code and returns a token
// pair. Failing to store the code fails the registration; only mail delivery
// is fire-and-forget, the code can be resent.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	email = strings.ToLower(email)

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hash,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			slog.Warn("registration rejected, email exists", "email", email)
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("user registered", "user_id", user.ID, "email", email)

	code, err := s.otp.Issue(ctx, models.OtpTypeEmailVerification, &user.ID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue verification code: %w", err)
	}
	s.sendAsync("verification", email, func() error {
		return s.mailer.SendVerificationEmail(email, code)
	})

	return s.establishSession(ctx, user)
}

// Login checks credentials and opens a session. Unknown email and wrong
// password fail identically so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !CheckPassword(password, user.Password) {
		slog.Warn("login failed, bad password", "email", email)
		return nil, ErrInvalidCredentials
	}

	slog.Info("user logged in", "user_id", user.ID)
	return s.establishSession(ctx, user)
}

// EstablishSession issues a token pair for an already-authenticated user,
// e.g. after OAuth reconciliation.
func (s *AuthService) EstablishSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	return s.establishSession(ctx, user)
}

// VerifyEmail redeems an email-verification code and flips the user's
// verified flag.
func (s *AuthService) VerifyEmail(ctx context.Context, userID uuid.UUID, email, code string) error {
	email = strings.ToLower(email)

	if err := s.otp.Verify(ctx, models.OtpTypeEmailVerification, &userID, email, code); err != nil {
		return err
	}

	if err := s.users.SetEmailVerified(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	slog.Info("email verified", "user_id", userID)

	user, err := s.users.GetByID(ctx, userID)
	name := ""
	if err == nil {
		name = user.FirstName
	}
	s.sendAsync("welcome", email, func() error {
		return s.mailer.SendWelcomeEmail(email, name)
	})
	return nil
}

// ResendVerification issues a fresh code, implicitly invalidating the
// previous one.
func (s *AuthService) ResendVerification(ctx context.Context, userID uuid.UUID, email string) error {
	email = strings.ToLower(email)

	code, err := s.otp.Issue(ctx, models.OtpTypeEmailVerification, &userID, email)
	if err != nil {
		return err
	}
	s.sendAsync("verification", email, func() error {
		return s.mailer.SendVerificationEmail(email, code)
	})
	return nil
}

// RequestPasswordReset issues a reset code for an existing account. The
// distinct not-found error mirrors the product behavior even though it
// reveals account existence.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(email)

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	code, err := s.otp.Issue(ctx, models.OtpTypePasswordReset, nil, email)
	if err != nil {
		return err
	}
	s.sendAsync("password reset", email, func() error {
		return s.mailer.SendPasswordResetEmail(email, code)
	})
	return nil
}

// ResetPassword redeems a reset code and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(email)

	if err := s.otp.Verify(ctx, models.OtpTypePasswordReset, nil, email, code); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password reset", "user_id", user.ID)
	return nil
}

// RefreshAccessToken passes through to the token engine.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	return s.tokens.Refresh(ctx, refreshToken)
}

// RevokeRefreshToken ends a session. Idempotent.
func (s *AuthService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

// VerifyToken is a liveness probe: it validates the access token and confirms
// the subject still exists, reporting failure as a value instead of an error.
func (s *AuthService) VerifyToken(ctx context.Context, token string) TokenStatus {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return TokenStatus{Valid: false, Message: err.Error()}
	}

	userID, err := claims.UserID()
	if err != nil {
		return TokenStatus{Valid: false, Message: ErrInvalidToken.Error()}
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return TokenStatus{Valid: false, Message: "user no longer exists"}
	}

	return TokenStatus{Valid: true, Claims: claims}
}

func (s *AuthService) establishSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// sendAsync fires an email off the request path. Delivery failures are
// logged; the triggering flow already succeeded.
func (s *AuthService) sendAsync(kind, email string, send func() error) {
	go func() {
		if err := send(); err != nil {
			slog.Error("failed to send email", "kind", kind, "email", email, "error", err)
		}
	}()
}
