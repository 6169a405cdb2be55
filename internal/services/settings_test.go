package services

import (
	"testing"

	"gtdflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSettings(t *testing.T) {
	base := DefaultSettings()

	t.Run("empty patch keeps base", func(t *testing.T) {
		out := MergeSettings(base, models.UserSettings{})
		assert.Equal(t, base, out)
	})

	t.Run("set fields override, nil fields stay", func(t *testing.T) {
		out := MergeSettings(base, models.UserSettings{
			UI: &models.UISettings{Theme: strPtr("dark")},
		})
		assert.Equal(t, "dark", *out.UI.Theme)
		assert.Equal(t, "en", *out.UI.Language)
		assert.Equal(t, 20, *out.UI.PageSize)
		// Untouched sections keep the base values.
		assert.True(t, *out.Notifications.EmailEnabled)
	})

	t.Run("false is an override, not absence", func(t *testing.T) {
		out := MergeSettings(base, models.UserSettings{
			Notifications: &models.NotificationSettings{EmailEnabled: boolPtr(false)},
		})
		assert.False(t, *out.Notifications.EmailEnabled)
		assert.True(t, *out.Notifications.DueSoonAlerts)
	})

	t.Run("does not mutate base", func(t *testing.T) {
		_ = MergeSettings(base, models.UserSettings{
			UI: &models.UISettings{PageSize: intPtr(50)},
		})
		assert.Equal(t, 20, *base.UI.PageSize)
	})
}

func TestGetSettingsDefaultsForEmptyBlob(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSettingsService()

	settings, err := svc.GetSettings(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestUpdateSettingsPersistsPatch(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSettingsService()

	merged, err := svc.UpdateSettings(db, user.ID, models.UserSettings{
		UI: &models.UISettings{Theme: strPtr("dark"), PageSize: intPtr(50)},
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", *merged.UI.Theme)

	// A later patch layers on top of the stored blob.
	merged, err = svc.UpdateSettings(db, user.ID, models.UserSettings{
		Notifications: &models.NotificationSettings{DailyDigest: boolPtr(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", *merged.UI.Theme)
	assert.Equal(t, 50, *merged.UI.PageSize)
	assert.True(t, *merged.Notifications.DailyDigest)

	got, err := svc.GetSettings(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, merged, got)
}
