package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the identity row. Password is empty for OAuth-only accounts.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email           string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password        string         `gorm:"size:255;not null" json:"-"`
	FirstName       string         `gorm:"size:255;not null" json:"first_name"`
	LastName        string         `gorm:"size:255;not null" json:"last_name"`
	Image           string         `gorm:"type:text" json:"image"`
	IsEmailVerified bool           `gorm:"not null;default:false" json:"is_email_verified"`
	Role            string         `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullName derives the display name from the profile fields.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
