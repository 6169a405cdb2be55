package handlers

import (
	"net/http"
	"time"

	"gtdflow/internal/models"
	"gtdflow/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	db             *gorm.DB
	projectService services.ProjectService
}

func NewProjectHandler(db *gorm.DB, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{db: db, projectService: projectService}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(h.db, models.Project{
		OwnerID:     userID,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
	})
	if err != nil {
		handleError(c, "project.create", started, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetProjects(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	includeArchived := c.Query("include_archived") == "true"
	projects, err := h.projectService.GetProjects(h.db, userID, includeArchived)
	if err != nil {
		handleError(c, "project.getAll", started, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProjectByID(h.db, id)
	if err != nil {
		handleError(c, "project.getById", started, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	err := h.projectService.UpdateProject(h.db, id, models.Project{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
	})
	if err != nil {
		handleError(c, "project.update", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project updated successfully"})
}

func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.ArchiveProject(h.db, id); err != nil {
		handleError(c, "project.archive", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project archived"})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(h.db, id); err != nil {
		handleError(c, "project.delete", started, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
