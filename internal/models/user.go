package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// User is the identity row for an account authenticated by the external
// OAuth provider. Settings holds the serialized per-user settings blob;
// it is merged with defaults on every read (see services.SettingsService).
type User struct {
	ID          uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	Email       string         `json:"email" gorm:"not null;uniqueIndex"`
	DisplayName string         `json:"display_name"`
	AvatarURL   string         `json:"avatar_url,omitempty"`
	Settings    string         `json:"-" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
