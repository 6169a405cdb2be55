package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type SearchService interface {
	CreateSavedSearch(db *gorm.DB, ownerID uuid.UUID, name string, params models.SearchParams) (models.SavedSearch, error)
	GetSavedSearches(db *gorm.DB, ownerID uuid.UUID) ([]models.SavedSearch, error)
	GetSavedSearchByID(db *gorm.DB, id uuid.UUID) (models.SavedSearch, models.SearchParams, error)
	UpdateSavedSearch(db *gorm.DB, id uuid.UUID, name string, params models.SearchParams) error
	DeleteSavedSearch(db *gorm.DB, id uuid.UUID) error
	SummarizeConditions(params models.SearchParams, tags []models.Tag, projects []models.Project) []SearchCondition
	Suggest(db *gorm.DB, ownerID uuid.UUID, query string) ([]Suggestion, error)
}

type SearchServiceImpl struct{}

func NewSearchService() *SearchServiceImpl {
	return &SearchServiceImpl{}
}

func (s *SearchServiceImpl) CreateSavedSearch(db *gorm.DB, ownerID uuid.UUID, name string, params models.SearchParams) (models.SavedSearch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SavedSearch{}, ErrEmptyTitle
	}

	var existing models.SavedSearch
	err := db.Where("owner_id = ? AND name = ?", ownerID, name).First(&existing).Error
	if err == nil {
		return models.SavedSearch{}, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SavedSearch{}, err
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return models.SavedSearch{}, fmt.Errorf("failed to serialize search params: %w", err)
	}

	search := models.SavedSearch{
		OwnerID: ownerID,
		Name:    name,
		Params:  string(raw),
	}
	if err := db.Create(&search).Error; err != nil {
		return models.SavedSearch{}, err
	}
	return search, nil
}

func (s *SearchServiceImpl) GetSavedSearches(db *gorm.DB, ownerID uuid.UUID) ([]models.SavedSearch, error) {
	var searches []models.SavedSearch
	result := db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&searches)
	return searches, result.Error
}

func (s *SearchServiceImpl) GetSavedSearchByID(db *gorm.DB, id uuid.UUID) (models.SavedSearch, models.SearchParams, error) {
	var search models.SavedSearch
	if err := db.Where("id = ?", id).First(&search).Error; err != nil {
		return models.SavedSearch{}, models.SearchParams{}, err
	}

	var params models.SearchParams
	if err := json.Unmarshal([]byte(search.Params), &params); err != nil {
		return models.SavedSearch{}, models.SearchParams{}, fmt.Errorf("corrupt search params for %s: %w", search.ID, err)
	}
	return search, params, nil
}

func (s *SearchServiceImpl) UpdateSavedSearch(db *gorm.DB, id uuid.UUID, name string, params models.SearchParams) error {
	var search models.SavedSearch
	if err := db.Where("id = ?", id).First(&search).Error; err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyTitle
	}
	if name != search.Name {
		var clash models.SavedSearch
		err := db.Where("owner_id = ? AND name = ? AND id <> ?", search.OwnerID, name, id).First(&clash).Error
		if err == nil {
			return ErrDuplicateName
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to serialize search params: %w", err)
	}

	return db.Model(&search).Updates(map[string]interface{}{
		"name":   name,
		"params": string(raw),
	}).Error
}

func (s *SearchServiceImpl) DeleteSavedSearch(db *gorm.DB, id uuid.UUID) error {
	res := db.Delete(&models.SavedSearch{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
