package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adarsh14103/portfolio-backend/models"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills from the database
func (r *SkillRepo) FindAll() ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.Find(&skills).Error
	return skills, err
}

// FindByID returns a skill by its ID
func (r *SkillRepo) FindByID(id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.First(&skill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// Add inserts a new skill into the database
func (r *SkillRepo) Add(skill *models.Skill) error {
	if skill.ID == uuid.Nil {
		skill.ID = uuid.New()
	}
	return r.db.Create(skill).Error
}

// Update replaces all fields of an existing skill. Returns
// gorm.ErrRecordNotFound when the id does not match any row.
func (r *SkillRepo) Update(skill *models.Skill) error {
	res := r.db.Model(&models.Skill{}).
		Where("id = ?", skill.ID).
		Select("name", "image").
		Updates(skill)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a skill from the database by id. Returns
// gorm.ErrRecordNotFound when the id does not match any row.
func (r *SkillRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Skill{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
