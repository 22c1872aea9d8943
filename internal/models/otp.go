package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OtpTypeEmailVerification = "email_verification"
	OtpTypePasswordReset     = "password_reset"
)

// Otp is a single-use verification code. Only the bcrypt hash of the code is
// stored; the plaintext exists just long enough to be mailed out.
// UserID is nil for password-reset codes, which are looked up by email alone.
type Otp struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type      string     `gorm:"size:50;not null;index" json:"type"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	CodeHash  string     `gorm:"type:text;not null" json:"-"`
	Used      bool       `gorm:"not null;default:false" json:"used"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}
