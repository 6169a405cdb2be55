package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID         uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID    uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	ProjectID  *uuid.UUID     `json:"project_id,omitempty" gorm:"type:uuid;index"`
	Title      string         `json:"title" gorm:"not null"`
	Content    string         `json:"content" gorm:"type:text"`
	IsPinned   bool           `json:"is_pinned" gorm:"not null;default:false"`
	IsArchived bool           `json:"is_archived" gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Tags    []*Tag   `json:"tags,omitempty" gorm:"many2many:note_tags"`
}

// Journal is one dated entry per user per day. The (owner, date) pair is
// unique; the auto-save flow upserts against it.
type Journal struct {
	ID         uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID    uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_journals_owner_date,priority:1"`
	Date       time.Time      `json:"date" gorm:"type:date;not null;uniqueIndex:idx_journals_owner_date,priority:2"`
	Content    string         `json:"content" gorm:"type:text"`
	IsTemplate bool           `json:"is_template" gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
