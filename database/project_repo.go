package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adarsh14103/portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects from the database
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.db.Create(project).Error
}

// Update replaces all fields of an existing project. Returns
// gorm.ErrRecordNotFound when the id does not match any row.
func (r *ProjectRepo) Update(project *models.Project) error {
	res := r.db.Model(&models.Project{}).
		Where("id = ?", project.ID).
		Select("name", "description", "image", "github", "url", "tech_stacks").
		Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project from the database by id. Returns
// gorm.ErrRecordNotFound when the id does not match any row.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
