package handlers

import (
	"log"
	"net/http"
	"time"

	"gtdflow/internal/models"
	"gtdflow/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type NoteHandler struct {
	db          *gorm.DB
	noteService services.NoteService
}

func NewNoteHandler(db *gorm.DB, noteService services.NoteService) *NoteHandler {
	return &NoteHandler{db: db, noteService: noteService}
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Title     string  `json:"title" binding:"required"`
		Content   string  `json:"content"`
		ProjectID *string `json:"project_id"`
		IsPinned  bool    `json:"is_pinned"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	note := models.Note{
		OwnerID:  userID,
		Title:    input.Title,
		Content:  input.Content,
		IsPinned: input.IsPinned,
	}
	if input.ProjectID != nil {
		pid, err := uuid.FromString(*input.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid project_id"})
			return
		}
		note.ProjectID = &pid
	}

	created, err := h.noteService.CreateNote(h.db, note)
	if err != nil {
		handleError(c, "note.create", started, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *NoteHandler) GetNotes(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	includeArchived := c.Query("include_archived") == "true"
	notes, err := h.noteService.GetNotes(h.db, userID, includeArchived)
	if err != nil {
		handleError(c, "note.getAll", started, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) GetNoteByID(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	note, err := h.noteService.GetNoteByID(h.db, id)
	if err != nil {
		handleError(c, "note.getById", started, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		IsPinned   *bool  `json:"is_pinned"`
		IsArchived *bool  `json:"is_archived"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	updated := models.Note{
		Title:   input.Title,
		Content: input.Content,
	}
	if input.IsPinned != nil {
		updated.IsPinned = *input.IsPinned
	}
	if input.IsArchived != nil {
		updated.IsArchived = *input.IsArchived
	}

	if err := h.noteService.UpdateNote(h.db, id, updated); err != nil {
		handleError(c, "note.update", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "note updated successfully"})
}

// AutoSave backs the debounced editor save. Failures are logged but never
// surfaced as errors so typing is not interrupted; the client fires and
// forgets.
func (h *NoteHandler) AutoSave(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	if err := h.noteService.AutoSaveContent(h.db, id, input.Content); err != nil {
		log.Printf("operation=note.autosave note=%s actor=%s error=%v", id, c.GetString("user_id"), err)
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "accepted"})
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(h.db, id); err != nil {
		handleError(c, "note.delete", started, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
