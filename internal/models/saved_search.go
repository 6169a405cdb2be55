package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// SearchParams is the filter/sort parameter set a SavedSearch snapshots.
// It is stored as the serialized params column and travels over the API
// unchanged, so a saved search reloads to the exact object it was saved from.
type SearchParams struct {
	Query          string         `json:"query,omitempty"`
	SearchTasks    bool           `json:"searchTasks,omitempty"`
	SearchNotes    bool           `json:"searchNotes,omitempty"`
	SearchProjects bool           `json:"searchProjects,omitempty"`
	SearchJournals bool           `json:"searchJournals,omitempty"`
	TaskStatus     []TaskStatus   `json:"taskStatus,omitempty"`
	TaskType       []string       `json:"taskType,omitempty"`
	Priority       []TaskPriority `json:"priority,omitempty"`
	TagIDs         []uuid.UUID    `json:"tagIds,omitempty"`
	ProjectIDs     []uuid.UUID    `json:"projectIds,omitempty"`
	CreatedAfter   *time.Time     `json:"createdAfter,omitempty"`
	CreatedBefore  *time.Time     `json:"createdBefore,omitempty"`
	HasTimeTracked *bool          `json:"hasTimeTracked,omitempty"`
	SortBy         string         `json:"sortBy,omitempty"`
	SortOrder      string         `json:"sortOrder,omitempty"`
}

// SavedSearch is a named, user-owned snapshot of SearchParams.
// Names are unique per owner.
type SavedSearch struct {
	ID        uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID   uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_saved_searches_owner_name,priority:1"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex:idx_saved_searches_owner_name,priority:2"`
	Params    string         `json:"-" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
