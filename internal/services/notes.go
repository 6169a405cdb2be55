package services

import (
	"strings"
	"time"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type NoteService interface {
	CreateNote(db *gorm.DB, note models.Note) (models.Note, error)
	GetNoteByID(db *gorm.DB, id uuid.UUID) (models.Note, error)
	GetNotes(db *gorm.DB, ownerID uuid.UUID, includeArchived bool) ([]models.Note, error)
	UpdateNote(db *gorm.DB, id uuid.UUID, updated models.Note) error
	AutoSaveContent(db *gorm.DB, id uuid.UUID, content string) error
	DeleteNote(db *gorm.DB, id uuid.UUID) error
}

type NoteServiceImpl struct{}

func NewNoteService() *NoteServiceImpl {
	return &NoteServiceImpl{}
}

func (s *NoteServiceImpl) CreateNote(db *gorm.DB, note models.Note) (models.Note, error) {
	if strings.TrimSpace(note.Title) == "" {
		return models.Note{}, ErrEmptyTitle
	}
	err := db.Create(&note).Error
	return note, err
}

func (s *NoteServiceImpl) GetNoteByID(db *gorm.DB, id uuid.UUID) (models.Note, error) {
	var note models.Note
	result := db.Preload("Tags").Preload("Project").Where("id = ?", id).First(&note)
	return note, result.Error
}

func (s *NoteServiceImpl) GetNotes(db *gorm.DB, ownerID uuid.UUID, includeArchived bool) ([]models.Note, error) {
	var notes []models.Note
	q := db.Preload("Tags").Where("owner_id = ?", ownerID)
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}
	result := q.Order("is_pinned DESC, updated_at DESC").Find(&notes)
	return notes, result.Error
}

func (s *NoteServiceImpl) UpdateNote(db *gorm.DB, id uuid.UUID, updated models.Note) error {
	res := db.Model(&models.Note{}).Where("id = ?", id).Updates(updated)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AutoSaveContent backs the debounced editor auto-save. Content-only update;
// the caller treats failures as non-fatal.
func (s *NoteServiceImpl) AutoSaveContent(db *gorm.DB, id uuid.UUID, content string) error {
	res := db.Model(&models.Note{}).Where("id = ?", id).Updates(map[string]interface{}{
		"content":    content,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *NoteServiceImpl) DeleteNote(db *gorm.DB, id uuid.UUID) error {
	res := db.Delete(&models.Note{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
