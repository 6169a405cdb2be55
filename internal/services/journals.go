package services

import (
	"time"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JournalService interface {
	UpsertJournal(db *gorm.DB, ownerID uuid.UUID, date time.Time, content string) (models.Journal, error)
	GetJournalByDate(db *gorm.DB, ownerID uuid.UUID, date time.Time) (models.Journal, error)
	GetJournals(db *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]models.Journal, error)
	DeleteJournal(db *gorm.DB, id uuid.UUID) error
}

type JournalServiceImpl struct{}

func NewJournalService() *JournalServiceImpl {
	return &JournalServiceImpl{}
}

// UpsertJournal writes the day's entry, creating it on first save. The
// editor auto-save calls this repeatedly, so conflicts on (owner, date)
// resolve to an update instead of an error.
func (s *JournalServiceImpl) UpsertJournal(db *gorm.DB, ownerID uuid.UUID, date time.Time, content string) (models.Journal, error) {
	journal := models.Journal{
		OwnerID: ownerID,
		Date:    truncateToDay(date),
		Content: content,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&journal).Error
	if err != nil {
		return models.Journal{}, err
	}
	return s.GetJournalByDate(db, ownerID, date)
}

func (s *JournalServiceImpl) GetJournalByDate(db *gorm.DB, ownerID uuid.UUID, date time.Time) (models.Journal, error) {
	var journal models.Journal
	result := db.Where("owner_id = ? AND date = ?", ownerID, truncateToDay(date)).First(&journal)
	return journal, result.Error
}

func (s *JournalServiceImpl) GetJournals(db *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]models.Journal, error) {
	var journals []models.Journal
	result := db.
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, truncateToDay(from), truncateToDay(to)).
		Order("date DESC").Find(&journals)
	return journals, result.Error
}

func (s *JournalServiceImpl) DeleteJournal(db *gorm.DB, id uuid.UUID) error {
	res := db.Delete(&models.Journal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
