package models

// UserSettings is the typed form of the per-user settings blob stored on
// User.Settings. Pointer fields distinguish "not set" from zero values so a
// stored partial blob merges cleanly with defaults.
type UserSettings struct {
	Role          string                `json:"role,omitempty"`
	Notifications *NotificationSettings `json:"notifications,omitempty"`
	UI            *UISettings           `json:"ui,omitempty"`
}

type NotificationSettings struct {
	EmailEnabled  *bool `json:"emailEnabled,omitempty"`
	DueSoonAlerts *bool `json:"dueSoonAlerts,omitempty"`
	DailyDigest   *bool `json:"dailyDigest,omitempty"`
}

type UISettings struct {
	Theme           *string `json:"theme,omitempty"`
	Language        *string `json:"language,omitempty"`
	DefaultTaskView *string `json:"defaultTaskView,omitempty"`
	PageSize        *int    `json:"pageSize,omitempty"`
}
