package services

import (
	"testing"
	"time"

	"gtdflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateTaskValidation(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	bogus := models.TaskPriority("ASAP")

	tests := []struct {
		name    string
		task    models.Task
		wantErr error
	}{
		{
			name:    "empty title",
			task:    models.Task{CreatorID: user.ID, Title: "   "},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "unknown status",
			task:    models.Task{CreatorID: user.ID, Title: "x", Status: "SOMEDAY"},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "unknown priority",
			task:    models.Task{CreatorID: user.ID, Title: "x", Priority: &bogus},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "waiting without reason",
			task:    models.Task{CreatorID: user.ID, Title: "x", Status: models.StatusWaiting},
			wantErr: ErrWaitingReasonRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTask(db, tt.task)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTaskWritesInitialHistory(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	task, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "Write report"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusIdea, task.Status)

	var entries []models.StatusHistoryEntry
	require.NoError(t, db.Where("task_id = ?", task.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].FromStatus)
	assert.Equal(t, models.StatusIdea, entries[0].ToStatus)
	assert.Equal(t, user.ID, entries[0].ChangedByID)
}

// Walks the lifecycle end to end: waiting requires a reason, the timer
// refuses a second start, and five clock seconds land in TimeSpentSeconds.
func TestTaskLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)

	current := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	svc := NewTaskServiceWithClock(func() time.Time { return current })

	task, err := svc.CreateTask(db, models.Task{
		CreatorID: user.ID,
		Title:     "Prepare quarterly review",
		Status:    models.StatusTodo,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(db, task.ID, models.StatusWaiting, "", "  ", user.ID)
	assert.ErrorIs(t, err, ErrWaitingReasonRequired)

	task, err = svc.UpdateStatus(db, task.ID, models.StatusWaiting, "", "等待客户确认", user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, task.Status)
	assert.Equal(t, "等待客户确认", task.WaitingReason)

	var entries []models.StatusHistoryEntry
	require.NoError(t, db.Where("task_id = ?", task.ID).Order("created_at ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[1].FromStatus)
	assert.Equal(t, models.StatusTodo, *entries[1].FromStatus)
	assert.Equal(t, models.StatusWaiting, entries[1].ToStatus)

	entry, err := svc.StartTimer(db, task.ID)
	require.NoError(t, err)
	assert.Nil(t, entry.EndTime)

	_, err = svc.StartTimer(db, task.ID)
	assert.ErrorIs(t, err, ErrTimerAlreadyRunning)

	current = current.Add(5 * time.Second)
	closed, err := svc.PauseTimer(db, task.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.EndTime)
	assert.Equal(t, int64(5), closed.DurationSeconds)

	task, err = svc.GetTaskByID(db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), task.TimeSpentSeconds)
	assert.False(t, task.TimerActive)
}

func TestUpdateStatusCompletionStamps(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	task, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "Ship it", Status: models.StatusInProgress})
	require.NoError(t, err)

	task, err = svc.UpdateStatus(db, task.ID, models.StatusDone, "", "", user.ID)
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)

	// Reopening clears the completion stamp.
	task, err = svc.UpdateStatus(db, task.ID, models.StatusTodo, "reopened", "", user.ID)
	require.NoError(t, err)
	assert.Nil(t, task.CompletedAt)
}

func TestUpdateStatusClearsWaitingReason(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	task, err := svc.CreateTask(db, models.Task{
		CreatorID:     user.ID,
		Title:         "Blocked task",
		Status:        models.StatusWaiting,
		WaitingReason: "vendor reply",
	})
	require.NoError(t, err)

	task, err = svc.UpdateStatus(db, task.ID, models.StatusInProgress, "", "", user.ID)
	require.NoError(t, err)
	assert.Empty(t, task.WaitingReason)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	task, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "x"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(db, task.ID, "LIMBO", "", "", user.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Rejected transitions leave no history behind.
	var count int64
	require.NoError(t, db.Model(&models.StatusHistoryEntry{}).Where("task_id = ?", task.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateTaskDoesNotTouchStatus(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	task, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "Original", Status: models.StatusTodo})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateTask(db, task.ID, models.Task{Title: "Renamed", Status: models.StatusDone}))

	got, err := svc.GetTaskByID(db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, models.StatusTodo, got.Status)
}

func TestPauseTimerWithoutOpenEntry(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	task, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "x"})
	require.NoError(t, err)

	_, err = svc.PauseTimer(db, task.ID)
	assert.ErrorIs(t, err, ErrNoOpenTimer)
}

func TestTimerRestartAccumulates(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)

	current := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	svc := NewTaskServiceWithClock(func() time.Time { return current })

	task, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "x"})
	require.NoError(t, err)

	_, err = svc.StartTimer(db, task.ID)
	require.NoError(t, err)
	current = current.Add(10 * time.Second)
	_, err = svc.PauseTimer(db, task.ID)
	require.NoError(t, err)

	_, err = svc.StartTimer(db, task.ID)
	require.NoError(t, err)
	current = current.Add(7 * time.Second)
	_, err = svc.PauseTimer(db, task.ID)
	require.NoError(t, err)

	got, err := svc.GetTaskByID(db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(17), got.TimeSpentSeconds)
	assert.Len(t, got.TimeEntries, 2)
}

func TestSetRecurring(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	task, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "Weekly review"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetRecurring(db, task.ID, true, " "), ErrPatternRequired)

	require.NoError(t, svc.SetRecurring(db, task.ID, true, "FREQ=WEEKLY"))
	got, err := svc.GetTaskByID(db, task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRecurring)
	assert.Equal(t, "FREQ=WEEKLY", got.RecurrencePattern)
}

func TestGetTasksPaginated(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	other := newTestUser(t, db)
	svc := NewTaskService()

	high := models.PriorityHigh
	for _, task := range []models.Task{
		{CreatorID: user.ID, Title: "Alpha report", Status: models.StatusTodo, Priority: &high},
		{CreatorID: user.ID, Title: "Beta cleanup", Status: models.StatusTodo},
		{CreatorID: user.ID, Title: "Gamma done", Status: models.StatusDone},
		{CreatorID: other.ID, Title: "Not mine", Status: models.StatusTodo},
	} {
		_, err := svc.CreateTask(db, task)
		require.NoError(t, err)
	}

	tasks, total, err := svc.GetTasksPaginated(db, user.ID, TaskFilter{}, "title", "asc", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Alpha report", tasks[0].Title)

	tasks, total, err = svc.GetTasksPaginated(db, user.ID, TaskFilter{Status: []models.TaskStatus{models.StatusTodo}}, "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, tasks, 2)

	tasks, total, err = svc.GetTasksPaginated(db, user.ID, TaskFilter{Query: "report"}, "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Alpha report", tasks[0].Title)

	// Unknown sort column falls back instead of injecting.
	_, _, err = svc.GetTasksPaginated(db, user.ID, TaskFilter{}, "id; DROP TABLE tasks", "asc", "1", "10")
	assert.NoError(t, err)
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)

	current := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	svc := NewTaskServiceWithClock(func() time.Time { return current })

	high := models.PriorityHigh
	a, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "a", Status: models.StatusTodo, Priority: &high})
	require.NoError(t, err)
	_, err = svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "b", Status: models.StatusTodo})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(db, a.ID, models.StatusDone, "", "", user.ID)
	require.NoError(t, err)

	_, err = svc.StartTimer(db, a.ID)
	require.NoError(t, err)
	current = current.Add(90 * time.Second)
	_, err = svc.PauseTimer(db, a.ID)
	require.NoError(t, err)

	stats, err := svc.GetStats(db, user.ID, current.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus[models.StatusDone])
	assert.Equal(t, int64(1), stats.ByStatus[models.StatusTodo])
	assert.Equal(t, int64(1), stats.ByPriority[models.PriorityHigh])
	assert.Equal(t, int64(1), stats.CompletedPerDay["2026-08-20"])
	assert.Equal(t, int64(90), stats.TotalTimeSeconds)
}

func TestDeleteTaskNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService()

	err := svc.DeleteTask(db, newTestUser(t, db).ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFeedbackRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewTaskService()

	task, err := svc.CreateTask(db, models.Task{CreatorID: user.ID, Title: "retro"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateFeedback(db, task.ID, "went well, batch similar work next time"))
	got, err := svc.GetFeedback(db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "went well, batch similar work next time", got)
}
