package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderGoogle = "google"
	ProviderApple  = "apple"
)

// OAuthAccount links a local user to a third-party identity. The composite
// primary key keeps each user to one link per provider; ProviderID is the
// lookup key on subsequent logins.
type OAuthAccount struct {
	UserID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Provider       string     `gorm:"size:50;primaryKey" json:"provider"`
	ProviderID     string     `gorm:"type:text;not null;uniqueIndex" json:"-"`
	Email          string     `gorm:"size:255;not null" json:"email"`
	AccessToken    string     `gorm:"type:text;not null" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	User           User       `gorm:"foreignKey:UserID" json:"-"`
}
