package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Competition struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string         `gorm:"type:text;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	EndDate     time.Time      `gorm:"not null" json:"end_date"`
	CreatorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Creator     User           `gorm:"foreignKey:CreatorID" json:"-"`
}

// HasEnded reports whether voting is closed as of now.
func (c *Competition) HasEnded(now time.Time) bool {
	return c.EndDate.Before(now)
}
