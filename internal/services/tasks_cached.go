package services

import (
	"fmt"
	"time"

	"gtdflow/internal/cache"
	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	taskCacheTTL    = 5 * time.Minute
	taskKeyPrefix   = "tasks:"
	taskDetailKeyFn = "tasks:detail:%s"
)

// CachedTaskService decorates a TaskService with read-through caching.
// Every mutation invalidates the tasks:* keyspace, so a client's own
// subsequent read reflects its prior write.
type CachedTaskService struct {
	inner TaskService
	cache *cache.MultiLevelCache
}

func NewCachedTaskService(inner TaskService, c *cache.MultiLevelCache) *CachedTaskService {
	return &CachedTaskService{inner: inner, cache: c}
}

func (s *CachedTaskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	key := fmt.Sprintf(taskDetailKeyFn, id)

	var task models.Task
	if err := s.cache.Get(key, &task); err == nil {
		return task, nil
	}

	task, err := s.inner.GetTaskByID(db, id)
	if err != nil {
		return task, err
	}

	s.cache.Set(key, task, taskCacheTTL)
	return task, nil
}

func (s *CachedTaskService) GetTasksPaginated(db *gorm.DB, userID uuid.UUID, filter TaskFilter, sortBy, order, page, pageSize string) ([]models.Task, int64, error) {
	// List queries vary too much to cache usefully; only detail reads are
	// cached.
	return s.inner.GetTasksPaginated(db, userID, filter, sortBy, order, page, pageSize)
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, task models.Task) (models.Task, error) {
	created, err := s.inner.CreateTask(db, task)
	if err == nil {
		s.invalidate()
	}
	return created, err
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, updated models.Task) error {
	err := s.inner.UpdateTask(db, id, updated)
	if err == nil {
		s.invalidate()
	}
	return err
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	err := s.inner.DeleteTask(db, id)
	if err == nil {
		s.invalidate()
	}
	return err
}

func (s *CachedTaskService) UpdateStatus(db *gorm.DB, id uuid.UUID, toStatus models.TaskStatus, note, waitingReason string, actorID uuid.UUID) (models.Task, error) {
	task, err := s.inner.UpdateStatus(db, id, toStatus, note, waitingReason, actorID)
	if err == nil {
		s.invalidate()
	}
	return task, err
}

func (s *CachedTaskService) StartTimer(db *gorm.DB, id uuid.UUID) (models.TimeEntry, error) {
	entry, err := s.inner.StartTimer(db, id)
	if err == nil {
		s.invalidate()
	}
	return entry, err
}

func (s *CachedTaskService) PauseTimer(db *gorm.DB, id uuid.UUID) (models.TimeEntry, error) {
	entry, err := s.inner.PauseTimer(db, id)
	if err == nil {
		s.invalidate()
	}
	return entry, err
}

func (s *CachedTaskService) SetRecurring(db *gorm.DB, id uuid.UUID, recurring bool, pattern string) error {
	err := s.inner.SetRecurring(db, id, recurring, pattern)
	if err == nil {
		s.invalidate()
	}
	return err
}

func (s *CachedTaskService) GetStats(db *gorm.DB, userID uuid.UUID, since time.Time) (TaskStats, error) {
	return s.inner.GetStats(db, userID, since)
}

func (s *CachedTaskService) GetFeedback(db *gorm.DB, id uuid.UUID) (string, error) {
	return s.inner.GetFeedback(db, id)
}

func (s *CachedTaskService) UpdateFeedback(db *gorm.DB, id uuid.UUID, feedback string) error {
	err := s.inner.UpdateFeedback(db, id, feedback)
	if err == nil {
		s.invalidate()
	}
	return err
}

func (s *CachedTaskService) invalidate() {
	s.cache.DeletePattern(taskKeyPrefix + "*")
}
