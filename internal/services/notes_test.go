package services

import (
	"testing"

	"gtdflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAutoSaveContent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewNoteService()

	note, err := svc.CreateNote(db, models.Note{OwnerID: user.ID, Title: "Draft", Content: "v1"})
	require.NoError(t, err)

	require.NoError(t, svc.AutoSaveContent(db, note.ID, "v2"))

	got, err := svc.GetNoteByID(db, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
	// Title is untouched by auto-save.
	assert.Equal(t, "Draft", got.Title)
}

func TestAutoSaveContentMissingNote(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewNoteService()

	assert.ErrorIs(t, svc.AutoSaveContent(db, user.ID, "x"), gorm.ErrRecordNotFound)
}

func TestGetNotesPinnedFirst(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewNoteService()

	_, err := svc.CreateNote(db, models.Note{OwnerID: user.ID, Title: "plain"})
	require.NoError(t, err)
	pinned, err := svc.CreateNote(db, models.Note{OwnerID: user.ID, Title: "pinned", IsPinned: true})
	require.NoError(t, err)
	_, err = svc.CreateNote(db, models.Note{OwnerID: user.ID, Title: "archived", IsArchived: true})
	require.NoError(t, err)

	notes, err := svc.GetNotes(db, user.ID, false)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, pinned.ID, notes[0].ID)

	notes, err = svc.GetNotes(db, user.ID, true)
	require.NoError(t, err)
	assert.Len(t, notes, 3)
}
