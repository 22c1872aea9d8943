package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the persisted half of a session. Revocation flips Revoked;
// rows are never reused once revoked or expired.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token     string    `gorm:"type:text;uniqueIndex;not null" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
