package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskFilter narrows List results. Zero values mean "no filter".
type TaskFilter struct {
	Status    []models.TaskStatus
	Priority  []models.TaskPriority
	ProjectID *uuid.UUID
	TagID     *uuid.UUID
	DueAfter  *time.Time
	DueBefore *time.Time
	Query     string
}

// TaskStats is the aggregate view served by GET /tasks/stats.
type TaskStats struct {
	ByStatus         map[models.TaskStatus]int64   `json:"by_status"`
	ByPriority       map[models.TaskPriority]int64 `json:"by_priority"`
	CompletedPerDay  map[string]int64              `json:"completed_per_day"`
	TotalTimeSeconds int64                         `json:"total_time_seconds"`
	Total            int64                         `json:"total"`
}

type TaskService interface {
	CreateTask(db *gorm.DB, task models.Task) (models.Task, error)
	GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error)
	GetTasksPaginated(db *gorm.DB, userID uuid.UUID, filter TaskFilter, sortBy, order, page, pageSize string) ([]models.Task, int64, error)
	UpdateTask(db *gorm.DB, id uuid.UUID, updated models.Task) error
	DeleteTask(db *gorm.DB, id uuid.UUID) error
	UpdateStatus(db *gorm.DB, id uuid.UUID, toStatus models.TaskStatus, note, waitingReason string, actorID uuid.UUID) (models.Task, error)
	StartTimer(db *gorm.DB, id uuid.UUID) (models.TimeEntry, error)
	PauseTimer(db *gorm.DB, id uuid.UUID) (models.TimeEntry, error)
	SetRecurring(db *gorm.DB, id uuid.UUID, recurring bool, pattern string) error
	GetStats(db *gorm.DB, userID uuid.UUID, since time.Time) (TaskStats, error)
	GetFeedback(db *gorm.DB, id uuid.UUID) (string, error)
	UpdateFeedback(db *gorm.DB, id uuid.UUID, feedback string) error
}

type TaskServiceImpl struct {
	now func() time.Time
}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{now: time.Now}
}

// NewTaskServiceWithClock lets tests control the timer clock.
func NewTaskServiceWithClock(now func() time.Time) *TaskServiceImpl {
	return &TaskServiceImpl{now: now}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, task models.Task) (models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return models.Task{}, ErrEmptyTitle
	}
	if task.Status == "" {
		task.Status = models.StatusIdea
	}
	if !models.ValidStatus(task.Status) {
		return models.Task{}, ErrInvalidStatus
	}
	if task.Priority != nil && !models.ValidPriority(*task.Priority) {
		return models.Task{}, ErrInvalidPriority
	}
	if task.Status == models.StatusWaiting && strings.TrimSpace(task.WaitingReason) == "" {
		return models.Task{}, ErrWaitingReasonRequired
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		// Initial history row has no prior status.
		entry := models.StatusHistoryEntry{
			TaskID:      task.ID,
			FromStatus:  nil,
			ToStatus:    task.Status,
			ChangedByID: task.CreatorID,
		}
		return tx.Create(&entry).Error
	})
	return task, err
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var task models.Task
	result := db.
		Preload("Tags").
		Preload("Project").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("TimeEntries").
		Where("id = ?", id).First(&task)
	return task, result.Error
}

func (s *TaskServiceImpl) GetTasksPaginated(db *gorm.DB, userID uuid.UUID, filter TaskFilter, sortBy, order, page, pageSize string) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	allowedSort := map[string]bool{"created_at": true, "updated_at": true, "due_date": true, "title": true, "priority": true, "status": true}
	if !allowedSort[sortBy] {
		sortBy = "created_at"
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	p := 1
	ps := 20
	if v, err := strconv.Atoi(page); err == nil && v > 0 {
		p = v
	}
	if v, err := strconv.Atoi(pageSize); err == nil && v > 0 && v <= 100 {
		ps = v
	}
	offset := (p - 1) * ps

	q := db.Model(&models.Task{}).Where("creator_id = ?", userID)
	if len(filter.Status) > 0 {
		q = q.Where("status IN ?", filter.Status)
	}
	if len(filter.Priority) > 0 {
		q = q.Where("priority IN ?", filter.Priority)
	}
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.TagID != nil {
		q = q.Where("id IN (SELECT task_id FROM task_tags WHERE tag_id = ?)", *filter.TagID)
	}
	if filter.DueAfter != nil {
		q = q.Where("due_date >= ?", *filter.DueAfter)
	}
	if filter.DueBefore != nil {
		q = q.Where("due_date <= ?", *filter.DueBefore)
	}
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	result := q.Preload("Tags").Preload("Project").
		Order(sortBy + " " + order).Offset(offset).Limit(ps).Find(&tasks)
	return tasks, total, result.Error
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id uuid.UUID, updated models.Task) error {
	// Status changes go through UpdateStatus so the history stays complete.
	updated.Status = ""
	res := db.Model(&models.Task{}).Where("id = ?", id).Updates(updated)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	res := db.Delete(&models.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus moves a task between lifecycle states. Every change appends
// exactly one StatusHistoryEntry in the same transaction as the task update.
// WAITING requires a non-empty reason; DONE stamps CompletedAt and every
// other status clears it.
func (s *TaskServiceImpl) UpdateStatus(db *gorm.DB, id uuid.UUID, toStatus models.TaskStatus, note, waitingReason string, actorID uuid.UUID) (models.Task, error) {
	if !models.ValidStatus(toStatus) {
		return models.Task{}, ErrInvalidStatus
	}
	if toStatus == models.StatusWaiting && strings.TrimSpace(waitingReason) == "" {
		return models.Task{}, ErrWaitingReasonRequired
	}

	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}

		from := task.Status
		now := s.now()

		updates := map[string]interface{}{
			"status":     toStatus,
			"updated_at": now,
		}
		switch toStatus {
		case models.StatusDone:
			updates["completed_at"] = now
		default:
			updates["completed_at"] = nil
		}
		if toStatus == models.StatusWaiting {
			updates["waiting_reason"] = strings.TrimSpace(waitingReason)
		} else if from == models.StatusWaiting {
			updates["waiting_reason"] = ""
		}

		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}

		entry := models.StatusHistoryEntry{
			TaskID:      task.ID,
			FromStatus:  &from,
			ToStatus:    toStatus,
			ChangedByID: actorID,
			Note:        note,
			CreatedAt:   now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		return tx.Where("id = ?", id).First(&task).Error
	})
	return task, err
}

// StartTimer opens a new TimeEntry unless one is already open for the task.
func (s *TaskServiceImpl) StartTimer(db *gorm.DB, id uuid.UUID) (models.TimeEntry, error) {
	var entry models.TimeEntry
	err := db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}

		var open int64
		if err := tx.Model(&models.TimeEntry{}).
			Where("task_id = ? AND end_time IS NULL", id).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrTimerAlreadyRunning
		}

		entry = models.TimeEntry{
			TaskID:    id,
			StartTime: s.now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&task).Update("timer_active", true).Error
	})
	return entry, err
}

// PauseTimer closes the open TimeEntry and adds its duration to the task's
// accumulated time. Pausing with no open entry returns ErrNoOpenTimer.
func (s *TaskServiceImpl) PauseTimer(db *gorm.DB, id uuid.UUID) (models.TimeEntry, error) {
	var entry models.TimeEntry
	err := db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ? AND end_time IS NULL", id).First(&entry).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNoOpenTimer
			}
			return err
		}

		now := s.now()
		duration := int64(now.Sub(entry.StartTime).Seconds())
		if duration < 0 {
			duration = 0
		}
		entry.EndTime = &now
		entry.DurationSeconds = duration
		if err := tx.Model(&models.TimeEntry{}).Where("id = ?", entry.ID).Updates(map[string]interface{}{
			"end_time":         now,
			"duration_seconds": duration,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&task).Updates(map[string]interface{}{
			"timer_active":       false,
			"time_spent_seconds": gorm.Expr("time_spent_seconds + ?", duration),
		}).Error
	})
	return entry, err
}

func (s *TaskServiceImpl) SetRecurring(db *gorm.DB, id uuid.UUID, recurring bool, pattern string) error {
	if recurring && strings.TrimSpace(pattern) == "" {
		return ErrPatternRequired
	}
	res := db.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_recurring":       recurring,
		"recurrence_pattern": pattern,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *TaskServiceImpl) GetStats(db *gorm.DB, userID uuid.UUID, since time.Time) (TaskStats, error) {
	stats := TaskStats{
		ByStatus:        make(map[models.TaskStatus]int64),
		ByPriority:      make(map[models.TaskPriority]int64),
		CompletedPerDay: make(map[string]int64),
	}

	type statusRow struct {
		Status models.TaskStatus
		N      int64
	}
	var statusRows []statusRow
	if err := db.Model(&models.Task{}).
		Select("status, COUNT(*) AS n").
		Where("creator_id = ?", userID).
		Group("status").Scan(&statusRows).Error; err != nil {
		return stats, err
	}
	for _, r := range statusRows {
		stats.ByStatus[r.Status] = r.N
		stats.Total += r.N
	}

	type priorityRow struct {
		Priority models.TaskPriority
		N        int64
	}
	var priorityRows []priorityRow
	if err := db.Model(&models.Task{}).
		Select("priority, COUNT(*) AS n").
		Where("creator_id = ? AND priority IS NOT NULL AND priority <> ''", userID).
		Group("priority").Scan(&priorityRows).Error; err != nil {
		return stats, err
	}
	for _, r := range priorityRows {
		stats.ByPriority[r.Priority] = r.N
	}

	var completed []models.Task
	if err := db.
		Where("creator_id = ? AND completed_at IS NOT NULL AND completed_at >= ?", userID, since).
		Find(&completed).Error; err != nil {
		return stats, err
	}
	for _, t := range completed {
		day := t.CompletedAt.Format("2006-01-02")
		stats.CompletedPerDay[day]++
	}

	var totalTime sql.NullInt64
	if err := db.Model(&models.Task{}).
		Select("SUM(time_spent_seconds)").
		Where("creator_id = ?", userID).
		Scan(&totalTime).Error; err != nil {
		return stats, err
	}
	if totalTime.Valid {
		stats.TotalTimeSeconds = totalTime.Int64
	}

	return stats, nil
}

func (s *TaskServiceImpl) GetFeedback(db *gorm.DB, id uuid.UUID) (string, error) {
	var task models.Task
	if err := db.Select("feedback").Where("id = ?", id).First(&task).Error; err != nil {
		return "", err
	}
	return task.Feedback, nil
}

func (s *TaskServiceImpl) UpdateFeedback(db *gorm.DB, id uuid.UUID, feedback string) error {
	res := db.Model(&models.Task{}).Where("id = ?", id).Update("feedback", feedback)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
