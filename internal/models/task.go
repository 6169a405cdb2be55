package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskStatus follows the GTD lifecycle vocabulary.
type TaskStatus string

const (
	StatusIdea       TaskStatus = "IDEA"
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusWaiting    TaskStatus = "WAITING"
	StatusDone       TaskStatus = "DONE"
	StatusArchived   TaskStatus = "ARCHIVED"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusIdea, StatusTodo, StatusInProgress, StatusWaiting, StatusDone, StatusArchived:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID                uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	CreatorID         uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index"`
	ProjectID         *uuid.UUID     `json:"project_id,omitempty" gorm:"type:uuid;index"`
	Title             string         `json:"title" gorm:"not null"`
	Description       string         `json:"description"`
	Status            TaskStatus     `json:"status" gorm:"not null;default:'IDEA';index"`
	Priority          *TaskPriority  `json:"priority,omitempty"`
	DueDate           *time.Time     `json:"due_date,omitempty" gorm:"type:timestamp"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	WaitingReason     string         `json:"waiting_reason,omitempty"`
	Feedback          string         `json:"feedback,omitempty"`
	TimeSpentSeconds  int64          `json:"time_spent_seconds" gorm:"not null;default:0"`
	TimerActive       bool           `json:"timer_active" gorm:"not null;default:false"`
	IsRecurring       bool           `json:"is_recurring" gorm:"not null;default:false"`
	RecurrencePattern string         `json:"recurrence_pattern,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	Project       *Project             `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Tags          []*Tag               `json:"tags,omitempty" gorm:"many2many:task_tags"`
	StatusHistory []StatusHistoryEntry `json:"status_history,omitempty" gorm:"foreignKey:TaskID"`
	TimeEntries   []TimeEntry          `json:"time_entries,omitempty" gorm:"foreignKey:TaskID"`
}

// StatusHistoryEntry is the append-only audit record written on every task
// status change. FromStatus is nil for the entry created alongside the task.
// Rows are never updated or deleted by normal operation.
type StatusHistoryEntry struct {
	ID          uuid.UUID   `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID      uuid.UUID   `json:"task_id" gorm:"type:uuid;not null;index"`
	FromStatus  *TaskStatus `json:"from_status,omitempty"`
	ToStatus    TaskStatus  `json:"to_status" gorm:"not null"`
	ChangedByID uuid.UUID   `json:"changed_by_id" gorm:"type:uuid;not null"`
	Note        string      `json:"note,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TimeEntry is one timer session against a task. EndTime is nil while the
// timer is running; at most one open entry may exist per task.
type TimeEntry struct {
	ID              uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID          uuid.UUID  `json:"task_id" gorm:"type:uuid;not null;index"`
	StartTime       time.Time  `json:"start_time" gorm:"not null"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Description     string     `json:"description,omitempty"`
	DurationSeconds int64      `json:"duration_seconds"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
