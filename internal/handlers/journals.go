package handlers

import (
	"log"
	"net/http"
	"time"

	"gtdflow/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JournalHandler struct {
	db             *gorm.DB
	journalService services.JournalService
}

func NewJournalHandler(db *gorm.DB, journalService services.JournalService) *JournalHandler {
	return &JournalHandler{db: db, journalService: journalService}
}

// SaveJournal upserts the entry for a date. Used by explicit save; the
// same endpoint with ?autosave=true swallows failures for the editor's
// debounced writes.
func (h *JournalHandler) SaveJournal(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Date    string `json:"date" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "date must be YYYY-MM-DD"})
		return
	}

	journal, err := h.journalService.UpsertJournal(h.db, userID, date, input.Content)
	if err != nil {
		if c.Query("autosave") == "true" {
			log.Printf("operation=journal.autosave actor=%s error=%v", userID, err)
			c.JSON(http.StatusAccepted, gin.H{"message": "accepted"})
			return
		}
		handleError(c, "journal.save", started, err)
		return
	}
	c.JSON(http.StatusOK, journal)
}

func (h *JournalHandler) GetJournalByDate(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "date must be YYYY-MM-DD"})
		return
	}

	journal, err := h.journalService.GetJournalByDate(h.db, userID, date)
	if err != nil {
		handleError(c, "journal.getByDate", started, err)
		return
	}
	c.JSON(http.StatusOK, journal)
}

func (h *JournalHandler) GetJournals(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	to := time.Now()
	from := to.AddDate(0, -1, 0)
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = t
		}
	}

	journals, err := h.journalService.GetJournals(h.db, userID, from, to)
	if err != nil {
		handleError(c, "journal.getAll", started, err)
		return
	}
	c.JSON(http.StatusOK, journals)
}

func (h *JournalHandler) DeleteJournal(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournal(h.db, id); err != nil {
		handleError(c, "journal.delete", started, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
