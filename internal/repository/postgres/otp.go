package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votehub/votehub-api/internal/models"
)

type OtpRepository struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) *OtpRepository {
	return &OtpRepository{db: db}
}

func (r *OtpRepository) Create(ctx context.Context, otp *models.Otp) error {
	return translate(r.db.WithContext(ctx).Create(otp).Error)
}

// subjectQuery scopes to (type, subject): by user id when one is present,
// otherwise by email. Issuing clears on this key so only one code per
// subject is in flight.
func subjectQuery(db *gorm.DB, otpType string, userID *uuid.UUID, email string) *gorm.DB {
	q := db.Where("type = ?", otpType)
	if userID != nil {
		return q.Where("user_id = ?", *userID)
	}
	return q.Where("email = ?", email)
}

func (r *OtpRepository) DeleteBySubject(ctx context.Context, otpType string, userID *uuid.UUID, email string) error {
	return translate(subjectQuery(r.db.WithContext(ctx), otpType, userID, email).
		Delete(&models.Otp{}).Error)
}

func (r *OtpRepository) GetActive(ctx context.Context, otpType string, userID *uuid.UUID, email string) (*models.Otp, error) {
	// Verification always matches the email, user id or not: a code stored
	// for one address must not be redeemable with another.
	q := r.db.WithContext(ctx).
		Where("type = ? AND email = ?", otpType, email)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var otp models.Otp
	if err := q.Where("used = false").First(&otp).Error; err != nil {
		return nil, translate(err)
	}
	return &otp, nil
}

func (r *OtpRepository) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	// The used=false guard makes the transition single-winner under
	// concurrent verifications of the same code.
	result := r.db.WithContext(ctx).
		Model(&models.Otp{}).
		Where("id = ? AND used = false", id).
		Update("used", true)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}
