package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote records one user's choice in a competition. The composite primary key
// is the storage-level guarantee that a user votes at most once per
// competition; a second insert surfaces as a duplicate-key error.
type Vote struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CompetitionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"competition_id"`
	OptionID      uuid.UUID `gorm:"type:uuid;not null;index" json:"option_id"`
	CreatedAt     time.Time `json:"created_at"`
}
