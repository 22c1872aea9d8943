package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

// otpValidity is how long an issued code can be redeemed.
const otpValidity = 15 * time.Minute

// OtpService issues and verifies single-use numeric codes. Codes are stored
// bcrypt-hashed; the plaintext is returned once from Issue and handed to the
// mail sender.
type OtpService struct {
	otps repository.OtpRepository
	now  func() time.Time
}

func NewOtpService(otps repository.OtpRepository) *OtpService {
	return &OtpService{otps: otps, now: time.Now}
}

// Issue generates a fresh 6-digit code for (otpType, subject), replacing any
// code previously in flight. The subject is the user id when present,
// otherwise the email.
func (s *OtpService) Issue(ctx context.Context, otpType string, userID *uuid.UUID, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}

	if err := s.otps.DeleteBySubject(ctx, otpType, userID, email); err != nil {
		return "", fmt.Errorf("failed to clear previous otp: %w", err)
	}

	otp := models.Otp{
		ID:        uuid.New(),
		Type:      otpType,
		UserID:    userID,
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(otpValidity),
	}
	if err := s.otps.Create(ctx, &otp); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	return code, nil
}

// Verify redeems a code. The expiry check runs before the hash comparison so
// an expired-but-correct code reports ErrExpiredCode. A code can be redeemed
// exactly once; replays and raced verifications get ErrInvalidCode.
func (s *OtpService) Verify(ctx context.Context, otpType string, userID *uuid.UUID, email, code string) error {
	otp, err := s.otps.GetActive(ctx, otpType, userID, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("failed to load otp: %w", err)
	}

	if s.now().After(otp.ExpiresAt) {
		return ErrExpiredCode
	}

	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		return ErrInvalidCode
	}

	won, err := s.otps.MarkUsed(ctx, otp.ID)
	if err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}
	if !won {
		return ErrInvalidCode
	}
	return nil
}

// generateCode draws a uniform 6-digit code, left-padded with zeros.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
