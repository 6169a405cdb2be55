package services

import (
	"encoding/json"
	"fmt"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type SettingsService interface {
	GetSettings(db *gorm.DB, userID uuid.UUID) (models.UserSettings, error)
	UpdateSettings(db *gorm.DB, userID uuid.UUID, patch models.UserSettings) (models.UserSettings, error)
}

type SettingsServiceImpl struct{}

func NewSettingsService() *SettingsServiceImpl {
	return &SettingsServiceImpl{}
}

// DefaultSettings is the baseline every stored blob merges against.
func DefaultSettings() models.UserSettings {
	return models.UserSettings{
		Role: "user",
		Notifications: &models.NotificationSettings{
			EmailEnabled:  boolPtr(true),
			DueSoonAlerts: boolPtr(true),
			DailyDigest:   boolPtr(false),
		},
		UI: &models.UISettings{
			Theme:           strPtr("light"),
			Language:        strPtr("en"),
			DefaultTaskView: strPtr("list"),
			PageSize:        intPtr(20),
		},
	}
}

// GetSettings loads the user's settings blob and merges it with defaults.
// A missing or empty blob yields the defaults unchanged.
func (s *SettingsServiceImpl) GetSettings(db *gorm.DB, userID uuid.UUID) (models.UserSettings, error) {
	var user models.User
	if err := db.Select("settings").Where("id = ?", userID).First(&user).Error; err != nil {
		return models.UserSettings{}, err
	}

	stored := models.UserSettings{}
	if user.Settings != "" {
		if err := json.Unmarshal([]byte(user.Settings), &stored); err != nil {
			return models.UserSettings{}, fmt.Errorf("corrupt settings for user %s: %w", userID, err)
		}
	}

	return MergeSettings(DefaultSettings(), stored), nil
}

// UpdateSettings applies a partial patch over the stored settings and
// persists the merged result.
func (s *SettingsServiceImpl) UpdateSettings(db *gorm.DB, userID uuid.UUID, patch models.UserSettings) (models.UserSettings, error) {
	current, err := s.GetSettings(db, userID)
	if err != nil {
		return models.UserSettings{}, err
	}

	merged := MergeSettings(current, patch)

	raw, err := json.Marshal(merged)
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("failed to serialize settings: %w", err)
	}

	res := db.Model(&models.User{}).Where("id = ?", userID).Update("settings", string(raw))
	if res.Error != nil {
		return models.UserSettings{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.UserSettings{}, gorm.ErrRecordNotFound
	}
	return merged, nil
}

// MergeSettings overlays set fields of over onto base. Pure function; nil
// pointers in over leave base values in place.
func MergeSettings(base, over models.UserSettings) models.UserSettings {
	out := base

	if over.Role != "" {
		out.Role = over.Role
	}

	if over.Notifications != nil {
		if out.Notifications == nil {
			out.Notifications = &models.NotificationSettings{}
		}
		merged := *out.Notifications
		if over.Notifications.EmailEnabled != nil {
			merged.EmailEnabled = over.Notifications.EmailEnabled
		}
		if over.Notifications.DueSoonAlerts != nil {
			merged.DueSoonAlerts = over.Notifications.DueSoonAlerts
		}
		if over.Notifications.DailyDigest != nil {
			merged.DailyDigest = over.Notifications.DailyDigest
		}
		out.Notifications = &merged
	}

	if over.UI != nil {
		if out.UI == nil {
			out.UI = &models.UISettings{}
		}
		merged := *out.UI
		if over.UI.Theme != nil {
			merged.Theme = over.UI.Theme
		}
		if over.UI.Language != nil {
			merged.Language = over.UI.Language
		}
		if over.UI.DefaultTaskView != nil {
			merged.DefaultTaskView = over.UI.DefaultTaskView
		}
		if over.UI.PageSize != nil {
			merged.PageSize = over.UI.PageSize
		}
		out.UI = &merged
	}

	return out
}

func boolPtr(b bool) *bool       { return &b }
func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
