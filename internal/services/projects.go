package services

import (
	"strings"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ProjectService interface {
	CreateProject(db *gorm.DB, project models.Project) (models.Project, error)
	GetProjectByID(db *gorm.DB, id uuid.UUID) (models.Project, error)
	GetProjects(db *gorm.DB, ownerID uuid.UUID, includeArchived bool) ([]models.Project, error)
	UpdateProject(db *gorm.DB, id uuid.UUID, updated models.Project) error
	ArchiveProject(db *gorm.DB, id uuid.UUID) error
	DeleteProject(db *gorm.DB, id uuid.UUID) error
}

type ProjectServiceImpl struct{}

func NewProjectService() *ProjectServiceImpl {
	return &ProjectServiceImpl{}
}

func (s *ProjectServiceImpl) CreateProject(db *gorm.DB, project models.Project) (models.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return models.Project{}, ErrEmptyTitle
	}
	if project.Status == "" {
		project.Status = models.ProjectActive
	}
	err := db.Create(&project).Error
	return project, err
}

func (s *ProjectServiceImpl) GetProjectByID(db *gorm.DB, id uuid.UUID) (models.Project, error) {
	var project models.Project
	result := db.Preload("Tasks").Where("id = ?", id).First(&project)
	return project, result.Error
}

func (s *ProjectServiceImpl) GetProjects(db *gorm.DB, ownerID uuid.UUID, includeArchived bool) ([]models.Project, error) {
	var projects []models.Project
	q := db.Where("owner_id = ?", ownerID)
	if !includeArchived {
		q = q.Where("status = ?", models.ProjectActive)
	}
	result := q.Order("created_at DESC").Find(&projects)
	return projects, result.Error
}

func (s *ProjectServiceImpl) UpdateProject(db *gorm.DB, id uuid.UUID, updated models.Project) error {
	res := db.Model(&models.Project{}).Where("id = ?", id).Updates(updated)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ProjectServiceImpl) ArchiveProject(db *gorm.DB, id uuid.UUID) error {
	res := db.Model(&models.Project{}).Where("id = ?", id).Update("status", models.ProjectArchived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ProjectServiceImpl) DeleteProject(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Tasks and notes survive project deletion, just detached.
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Note{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
