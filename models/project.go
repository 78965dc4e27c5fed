package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents one portfolio project card
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	Image       string    `json:"image" db:"image" gorm:"type:text;not null"`
	Github      string    `json:"github" db:"github" gorm:"type:text;not null"`
	URL         *string   `json:"url,omitempty" db:"url" gorm:"type:text"`
	TechStacks  []string  `json:"techStacks" db:"tech_stacks" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`
}
