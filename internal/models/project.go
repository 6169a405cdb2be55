package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "ACTIVE"
	ProjectArchived ProjectStatus = "ARCHIVED"
)

type Project struct {
	ID          uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Color       string         `json:"color,omitempty"`
	Status      ProjectStatus  `json:"status" gorm:"not null;default:'ACTIVE'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
	Notes []Note `json:"notes,omitempty" gorm:"foreignKey:ProjectID"`
}
