package handlers

import (
	"net/http"
	"time"

	"gtdflow/internal/models"
	"gtdflow/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TagHandler struct {
	db         *gorm.DB
	tagService services.TagService
}

func NewTagHandler(db *gorm.DB, tagService services.TagService) *TagHandler {
	return &TagHandler{db: db, tagService: tagService}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		Color    string `json:"color"`
		Icon     string `json:"icon"`
		Type     string `json:"type"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	tag, err := h.tagService.CreateTag(h.db, models.Tag{
		OwnerID:  userID,
		Name:     input.Name,
		Color:    input.Color,
		Icon:     input.Icon,
		Type:     models.TagType(input.Type),
		Category: input.Category,
	})
	if err != nil {
		handleError(c, "tag.create", started, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tags, err := h.tagService.GetTags(h.db, userID)
	if err != nil {
		handleError(c, "tag.getAll", started, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name"`
		Color    string `json:"color"`
		Icon     string `json:"icon"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	err := h.tagService.UpdateTag(h.db, id, models.Tag{
		Name:     input.Name,
		Color:    input.Color,
		Icon:     input.Icon,
		Category: input.Category,
	})
	if err != nil {
		handleError(c, "tag.update", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag updated successfully"})
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(h.db, id); err != nil {
		handleError(c, "tag.delete", started, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// SeedTags provisions the built-in system tags for the current user.
func (h *TagHandler) SeedTags(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.tagService.SeedSystemTags(h.db, userID); err != nil {
		handleError(c, "tag.seed", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "system tags seeded"})
}
