package handlers

import (
	"net/http"
	"time"

	"gtdflow/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetProfile returns the current user's row. The row is provisioned by the
// OAuth session adapter on first login, not here.
func (h *UserHandler) GetProfile(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		handleError(c, "user.getProfile", started, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	res := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(models.User{
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
	})
	if res.Error != nil {
		handleError(c, "user.updateProfile", started, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		handleError(c, "user.updateProfile", started, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
