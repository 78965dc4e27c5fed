package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adarsh14103/portfolio-backend/models"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Get returns the singleton profile row, or nil if it was never written.
func (r *ProfileRepo) Get() (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "id = ?", models.ProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert writes the profile keyed on the fixed id: an insert the first
// time, a full overwrite of every field after that. The caller-supplied
// id is ignored so a second row can never be created.
func (r *ProfileRepo) Upsert(profile *models.Profile) error {
	profile.ID = models.ProfileID
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tagline", "bio", "email", "image", "resume", "github", "linkedin",
		}),
	}).Create(profile).Error
}
