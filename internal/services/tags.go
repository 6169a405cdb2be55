package services

import (
	"errors"
	"strings"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(db *gorm.DB, tag models.Tag) (models.Tag, error)
	GetTags(db *gorm.DB, ownerID uuid.UUID) ([]models.Tag, error)
	UpdateTag(db *gorm.DB, id uuid.UUID, updated models.Tag) error
	DeleteTag(db *gorm.DB, id uuid.UUID) error
	SeedSystemTags(db *gorm.DB, ownerID uuid.UUID) error
}

type TagServiceImpl struct{}

func NewTagService() *TagServiceImpl {
	return &TagServiceImpl{}
}

func (s *TagServiceImpl) CreateTag(db *gorm.DB, tag models.Tag) (models.Tag, error) {
	if strings.TrimSpace(tag.Name) == "" {
		return models.Tag{}, ErrEmptyTitle
	}
	if tag.Type == "" {
		tag.Type = models.TagCustom
	}

	var existing models.Tag
	err := db.Where("owner_id = ? AND name = ?", tag.OwnerID, tag.Name).First(&existing).Error
	if err == nil {
		return models.Tag{}, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tag{}, err
	}

	err = db.Create(&tag).Error
	return tag, err
}

func (s *TagServiceImpl) GetTags(db *gorm.DB, ownerID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	result := db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&tags)
	return tags, result.Error
}

func (s *TagServiceImpl) UpdateTag(db *gorm.DB, id uuid.UUID, updated models.Tag) error {
	res := db.Model(&models.Tag{}).Where("id = ?", id).Updates(updated)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *TagServiceImpl) DeleteTag(db *gorm.DB, id uuid.UUID) error {
	var tag models.Tag
	if err := db.Where("id = ?", id).First(&tag).Error; err != nil {
		return err
	}
	if tag.IsSystem {
		return ErrSystemTag
	}
	return db.Delete(&tag).Error
}

// SeedSystemTags creates the built-in GTD context and priority tags for a
// new user. Existing tags with the same name are left untouched.
func (s *TagServiceImpl) SeedSystemTags(db *gorm.DB, ownerID uuid.UUID) error {
	seeds := []models.Tag{
		{Name: "@home", Color: "#4caf50", Type: models.TagContext, IsSystem: true},
		{Name: "@office", Color: "#2196f3", Type: models.TagContext, IsSystem: true},
		{Name: "@errands", Color: "#ff9800", Type: models.TagContext, IsSystem: true},
		{Name: "@calls", Color: "#9c27b0", Type: models.TagContext, IsSystem: true},
		{Name: "urgent", Color: "#f44336", Type: models.TagPriority, Category: "priority", IsSystem: true},
		{Name: "someday", Color: "#9e9e9e", Type: models.TagPriority, Category: "priority", IsSystem: true},
	}

	for _, seed := range seeds {
		seed.OwnerID = ownerID
		var existing models.Tag
		err := db.Where("owner_id = ? AND name = ?", ownerID, seed.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&seed).Error; err != nil {
			return err
		}
	}
	return nil
}
