package models

import "github.com/google/uuid"

// ProfileID is the fixed identifier of the only Profile row. Every read
// and upsert is keyed on it, so a second row can never come into being.
var ProfileID = uuid.MustParse("301feb70-7e9a-44c0-9a66-1b97b3caf0ee")

// Profile holds the site owner's biographical details. Exactly one row
// exists; writes are upserts against ProfileID.
type Profile struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Tagline  string    `json:"tagline" db:"tagline" gorm:"type:text;not null"`
	Bio      string    `json:"bio" db:"bio" gorm:"type:text;not null"`
	Email    string    `json:"email" db:"email" gorm:"type:text;not null"`
	Image    string    `json:"image" db:"image" gorm:"type:text"`
	Resume   string    `json:"resume" db:"resume" gorm:"type:text"`
	Github   string    `json:"github" db:"github" gorm:"type:text"`
	Linkedin string    `json:"linkedin" db:"linkedin" gorm:"type:text"`
}
