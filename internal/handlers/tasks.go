package handlers

import (
	"net/http"
	"strings"
	"time"

	"gtdflow/internal/models"
	"gtdflow/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	started := time.Now()

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Title         string     `json:"title" binding:"required"`
		Description   string     `json:"description"`
		Status        string     `json:"status"`
		Priority      string     `json:"priority"`
		DueDate       *time.Time `json:"due_date"`
		ProjectID     *string    `json:"project_id"`
		WaitingReason string     `json:"waiting_reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	task := models.Task{
		CreatorID:     userID,
		Title:         input.Title,
		Description:   input.Description,
		Status:        models.TaskStatus(input.Status),
		DueDate:       input.DueDate,
		WaitingReason: input.WaitingReason,
	}
	if input.Priority != "" {
		p := models.TaskPriority(input.Priority)
		task.Priority = &p
	}
	if input.ProjectID != nil {
		pid, err := uuid.FromString(*input.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid project_id"})
			return
		}
		task.ProjectID = &pid
	}

	created, err := h.taskService.CreateTask(h.db, task)
	if err != nil {
		handleError(c, "task.create", started, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(h.db, id)
	if err != nil {
		handleError(c, "task.getById", started, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := services.TaskFilter{Query: c.Query("q")}
	for _, s := range splitQuery(c.Query("status")) {
		filter.Status = append(filter.Status, models.TaskStatus(s))
	}
	for _, p := range splitQuery(c.Query("priority")) {
		filter.Priority = append(filter.Priority, models.TaskPriority(p))
	}
	if v := c.Query("project_id"); v != "" {
		if pid, err := uuid.FromString(v); err == nil {
			filter.ProjectID = &pid
		}
	}
	if v := c.Query("tag_id"); v != "" {
		if tid, err := uuid.FromString(v); err == nil {
			filter.TagID = &tid
		}
	}
	if v := c.Query("due_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueAfter = &t
		}
	}
	if v := c.Query("due_before"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueBefore = &t
		}
	}

	sortBy := c.DefaultQuery("sortBy", "created_at")
	order := c.DefaultQuery("order", "desc")
	page := c.DefaultQuery("page", "1")
	pageSize := c.DefaultQuery("pageSize", "20")

	tasks, total, err := h.taskService.GetTasksPaginated(h.db, userID, filter, sortBy, order, page, pageSize)
	if err != nil {
		handleError(c, "task.getAll", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": total,
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	updated := models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}
	if input.Priority != "" {
		p := models.TaskPriority(input.Priority)
		if !models.ValidPriority(p) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid priority"})
			return
		}
		updated.Priority = &p
	}

	if err := h.taskService.UpdateTask(h.db, id, updated); err != nil {
		handleError(c, "task.update", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task updated successfully"})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(h.db, id); err != nil {
		handleError(c, "task.delete", started, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// UpdateStatus moves the task through the GTD lifecycle, recording history.
// PATCH /tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Status        string `json:"status" binding:"required"`
		Note          string `json:"note"`
		WaitingReason string `json:"waiting_reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	task, err := h.taskService.UpdateStatus(h.db, id, models.TaskStatus(input.Status), input.Note, input.WaitingReason, userID)
	if err != nil {
		handleError(c, "task.updateStatus", started, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// StartTimer opens a timer session. POST /tasks/:id/timer/start
func (h *TaskHandler) StartTimer(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.taskService.StartTimer(h.db, id)
	if err != nil {
		handleError(c, "task.startTimer", started, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// PauseTimer closes the open session. POST /tasks/:id/timer/pause
func (h *TaskHandler) PauseTimer(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.taskService.PauseTimer(h.db, id)
	if err != nil {
		handleError(c, "task.pauseTimer", started, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *TaskHandler) SetRecurring(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		IsRecurring bool   `json:"is_recurring"`
		Pattern     string `json:"pattern"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	if err := h.taskService.SetRecurring(h.db, id, input.IsRecurring, input.Pattern); err != nil {
		handleError(c, "task.setRecurring", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recurrence updated"})
}

func (h *TaskHandler) GetStats(c *gin.Context) {
	started := time.Now()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	since := time.Now().AddDate(0, 0, -30)
	if v := c.Query("since"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			since = t
		}
	}

	stats, err := h.taskService.GetStats(h.db, userID, since)
	if err != nil {
		handleError(c, "task.getStats", started, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *TaskHandler) GetFeedback(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	feedback, err := h.taskService.GetFeedback(h.db, id)
	if err != nil {
		handleError(c, "task.getFeedback", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

func (h *TaskHandler) UpdateFeedback(c *gin.Context) {
	started := time.Now()
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}

	if err := h.taskService.UpdateFeedback(h.db, id, input.Feedback); err != nil {
		handleError(c, "task.updateFeedback", started, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feedback updated"})
}

func splitQuery(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
