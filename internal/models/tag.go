package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TagType string

const (
	TagContext  TagType = "CONTEXT"
	TagPriority TagType = "PRIORITY"
	TagProject  TagType = "PROJECT"
	TagCustom   TagType = "CUSTOM"
)

// Tag is shared between tasks and notes. System tags are seeded at startup
// and refuse deletion.
type Tag struct {
	ID        uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID   uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_tags_owner_name,priority:1"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex:idx_tags_owner_name,priority:2"`
	Color     string         `json:"color,omitempty"`
	Icon      string         `json:"icon,omitempty"`
	Type      TagType        `json:"type" gorm:"not null;default:'CUSTOM'"`
	Category  string         `json:"category,omitempty"`
	IsSystem  bool           `json:"is_system" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Tasks []*Task `json:"tasks,omitempty" gorm:"many2many:task_tags"`
	Notes []*Note `json:"notes,omitempty" gorm:"many2many:note_tags"`
}
