package handlers

import (
	"net/http"
	"time"

	"gtdflow/internal/models"
	"gtdflow/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	db              *gorm.DB
	settingsService services.SettingsService
}

func NewSettingsHandler(db *gorm.DB, settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{db: db, settingsService: settingsService}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetSettings(h.db, userID)
	if err != nil {
		handleError(c, "settings.get", started, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch models.UserSettings
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	merged, err := h.settingsService.UpdateSettings(h.db, userID, patch)
	if err != nil {
		handleError(c, "settings.update", started, err)
		return
	}
	c.JSON(http.StatusOK, merged)
}
