package handlers

import (
	"net/http"
	"time"

	"gtdflow/internal/models"
	"gtdflow/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SearchHandler struct {
	db             *gorm.DB
	searchService  services.SearchService
	tagService     services.TagService
	projectService services.ProjectService
}

func NewSearchHandler(db *gorm.DB, searchService services.SearchService, tagService services.TagService, projectService services.ProjectService) *SearchHandler {
	return &SearchHandler{
		db:             db,
		searchService:  searchService,
		tagService:     tagService,
		projectService: projectService,
	}
}

func (h *SearchHandler) CreateSavedSearch(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Name   string              `json:"name" binding:"required"`
		Params models.SearchParams `json:"params"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	search, err := h.searchService.CreateSavedSearch(h.db, userID, input.Name, input.Params)
	if err != nil {
		handleError(c, "search.create", started, err)
		return
	}
	c.JSON(http.StatusCreated, search)
}

func (h *SearchHandler) GetSavedSearches(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	searches, err := h.searchService.GetSavedSearches(h.db, userID)
	if err != nil {
		handleError(c, "search.getAll", started, err)
		return
	}
	c.JSON(http.StatusOK, searches)
}

func (h *SearchHandler) GetSavedSearchByID(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	search, params, err := h.searchService.GetSavedSearchByID(h.db, id)
	if err != nil {
		handleError(c, "search.getById", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     search.ID,
		"name":   search.Name,
		"params": params,
	})
}

func (h *SearchHandler) UpdateSavedSearch(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name   string              `json:"name" binding:"required"`
		Params models.SearchParams `json:"params"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	if err := h.searchService.UpdateSavedSearch(h.db, id, input.Name, input.Params); err != nil {
		handleError(c, "search.update", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved search updated"})
}

func (h *SearchHandler) DeleteSavedSearch(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.searchService.DeleteSavedSearch(h.db, id); err != nil {
		handleError(c, "search.delete", started, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// SummarizeConditions renders a parameter set as display condition chips.
// POST /search/conditions
func (h *SearchHandler) SummarizeConditions(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var params models.SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	tags, err := h.tagService.GetTags(h.db, userID)
	if err != nil {
		handleError(c, "search.conditions", started, err)
		return
	}
	projects, err := h.projectService.GetProjects(h.db, userID, true)
	if err != nil {
		handleError(c, "search.conditions", started, err)
		return
	}

	conditions := h.searchService.SummarizeConditions(params, tags, projects)
	c.JSON(http.StatusOK, gin.H{"conditions": conditions})
}

// Suggest serves the autocomplete dropdown. GET /search/suggest?q=
func (h *SearchHandler) Suggest(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	suggestions, err := h.searchService.Suggest(h.db, userID, c.Query("q"))
	if err != nil {
		handleError(c, "search.suggest", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
