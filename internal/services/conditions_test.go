package services

import (
	"testing"
	"time"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeConditionsOrder(t *testing.T) {
	svc := NewSearchService()

	tag := models.Tag{ID: uuid.Must(uuid.NewV4()), Name: "@office"}
	project := models.Project{ID: uuid.Must(uuid.NewV4()), Name: "Launch"}

	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracked := true

	params := models.SearchParams{
		// Deliberately populated in an order unlike the display order.
		SortBy:         "due_date",
		SortOrder:      "asc",
		HasTimeTracked: &tracked,
		CreatedAfter:   &after,
		ProjectIDs:     []uuid.UUID{project.ID},
		TagIDs:         []uuid.UUID{tag.ID},
		Priority:       []models.TaskPriority{models.PriorityHigh},
		TaskType:       []string{"recurring"},
		TaskStatus:     []models.TaskStatus{models.StatusTodo, models.StatusWaiting},
		SearchTasks:    true,
		SearchNotes:    true,
		Query:          "report",
	}

	conditions := svc.SummarizeConditions(params, []models.Tag{tag}, []models.Project{project})

	var types []string
	for _, c := range conditions {
		types = append(types, c.Type)
	}
	assert.Equal(t, []string{
		"keyword", "scope", "status", "status", "type",
		"priority", "tag", "project", "time", "tracking", "sort",
	}, types)

	assert.Equal(t, "report", conditions[0].Value)
	assert.Equal(t, "Tasks, Notes", conditions[1].Value)
	assert.Equal(t, "@office", conditions[6].Value)
	assert.Equal(t, "Launch", conditions[7].Value)
	assert.Equal(t, "after 2026-01-01", conditions[8].Value)
	assert.Equal(t, "has tracked time", conditions[9].Value)
	assert.Equal(t, "due_date asc", conditions[10].Value)
}

func TestSummarizeConditionsOmitsUnresolvableIDs(t *testing.T) {
	svc := NewSearchService()

	params := models.SearchParams{
		Query:      "x",
		TagIDs:     []uuid.UUID{uuid.Must(uuid.NewV4())},
		ProjectIDs: []uuid.UUID{uuid.Must(uuid.NewV4())},
	}

	conditions := svc.SummarizeConditions(params, nil, nil)
	require.Len(t, conditions, 1)
	assert.Equal(t, "keyword", conditions[0].Type)
}

func TestSummarizeConditionsEmptyParams(t *testing.T) {
	svc := NewSearchService()

	conditions := svc.SummarizeConditions(models.SearchParams{}, nil, nil)
	assert.Empty(t, conditions)
}

func TestSummarizeConditionsDateRange(t *testing.T) {
	svc := NewSearchService()

	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	conditions := svc.SummarizeConditions(models.SearchParams{
		CreatedAfter:  &after,
		CreatedBefore: &before,
	}, nil, nil)
	require.Len(t, conditions, 1)
	assert.Equal(t, "2026-01-01 ~ 2026-06-30", conditions[0].Value)
}
