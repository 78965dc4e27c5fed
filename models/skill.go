package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill represents a single technology badge shown on the skills grid
type Skill struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Image     *string   `json:"image,omitempty" db:"image" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`
}
