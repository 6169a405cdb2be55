package services

import (
	"testing"

	"gtdflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateSavedSearchDuplicateName(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSearchService()

	_, err := svc.CreateSavedSearch(db, user.ID, "weekly review", models.SearchParams{Query: "review"})
	require.NoError(t, err)

	_, err = svc.CreateSavedSearch(db, user.ID, "weekly review", models.SearchParams{Query: "other"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Same name under a different owner is fine.
	other := newTestUser(t, db)
	_, err = svc.CreateSavedSearch(db, other.ID, "weekly review", models.SearchParams{})
	assert.NoError(t, err)
}

func TestCreateSavedSearchEmptyName(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSearchService()

	_, err := svc.CreateSavedSearch(db, user.ID, "   ", models.SearchParams{})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestSavedSearchParamsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSearchService()

	params := models.SearchParams{
		Query:       "report",
		SearchTasks: true,
		TaskStatus:  []models.TaskStatus{models.StatusTodo},
		Priority:    []models.TaskPriority{models.PriorityHigh},
		SortBy:      "created_at",
		SortOrder:   "desc",
	}
	saved, err := svc.CreateSavedSearch(db, user.ID, "hot tasks", params)
	require.NoError(t, err)

	_, got, err := svc.GetSavedSearchByID(db, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, params, got)
}

func TestUpdateSavedSearch(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSearchService()

	a, err := svc.CreateSavedSearch(db, user.ID, "a", models.SearchParams{})
	require.NoError(t, err)
	_, err = svc.CreateSavedSearch(db, user.ID, "b", models.SearchParams{})
	require.NoError(t, err)

	// Renaming onto an existing name conflicts.
	assert.ErrorIs(t, svc.UpdateSavedSearch(db, a.ID, "b", models.SearchParams{}), ErrDuplicateName)

	// Keeping the name while changing params does not conflict with itself.
	require.NoError(t, svc.UpdateSavedSearch(db, a.ID, "a", models.SearchParams{Query: "new"}))

	_, got, err := svc.GetSavedSearchByID(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Query)
}

func TestDeleteSavedSearchNotFound(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSearchService()

	assert.ErrorIs(t, svc.DeleteSavedSearch(db, user.ID), gorm.ErrRecordNotFound)
}

func TestGetSavedSearchesSortedByName(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSearchService()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := svc.CreateSavedSearch(db, user.ID, name, models.SearchParams{})
		require.NoError(t, err)
	}

	searches, err := svc.GetSavedSearches(db, user.ID)
	require.NoError(t, err)
	require.Len(t, searches, 3)
	assert.Equal(t, "alpha", searches[0].Name)
	assert.Equal(t, "mid", searches[1].Name)
	assert.Equal(t, "zeta", searches[2].Name)
}
