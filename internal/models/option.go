package models

import (
	"time"

	"github.com/google/uuid"
)

type Option struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string      `gorm:"type:text;not null" json:"title"`
	Description   string      `gorm:"type:text" json:"description"`
	CompetitionID uuid.UUID   `gorm:"type:uuid;not null;index" json:"competition_id"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Competition   Competition `gorm:"foreignKey:CompetitionID" json:"-"`
}
