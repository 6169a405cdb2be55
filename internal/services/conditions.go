package services

import (
	"fmt"
	"strings"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
)

// SearchCondition is one human-readable filter chip rendered for a search.
// Category only drives icon and color selection on the client.
type SearchCondition struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

// Display order of condition types. Fixed presentation priority, not
// alphabetical or insertion order.
var conditionOrder = []string{
	"keyword", "scope", "status", "type", "priority",
	"tag", "project", "time", "tracking", "sort",
}

// SummarizeConditions turns a search parameter set into ordered condition
// descriptors. Tag and project ids that no longer resolve (deleted since the
// search was saved) are silently omitted.
func (s *SearchServiceImpl) SummarizeConditions(params models.SearchParams, tags []models.Tag, projects []models.Project) []SearchCondition {
	byType := make(map[string][]SearchCondition)

	add := func(c SearchCondition) {
		byType[c.Type] = append(byType[c.Type], c)
	}

	if q := strings.TrimSpace(params.Query); q != "" {
		add(SearchCondition{Type: "keyword", Label: "Keyword", Value: q, Category: "text"})
	}

	var scopes []string
	if params.SearchTasks {
		scopes = append(scopes, "Tasks")
	}
	if params.SearchNotes {
		scopes = append(scopes, "Notes")
	}
	if params.SearchProjects {
		scopes = append(scopes, "Projects")
	}
	if params.SearchJournals {
		scopes = append(scopes, "Journals")
	}
	if len(scopes) > 0 {
		add(SearchCondition{Type: "scope", Label: "Scope", Value: strings.Join(scopes, ", "), Category: "scope"})
	}

	for _, st := range params.TaskStatus {
		add(SearchCondition{Type: "status", Label: "Status", Value: string(st), Category: "status"})
	}
	for _, tt := range params.TaskType {
		add(SearchCondition{Type: "type", Label: "Type", Value: tt, Category: "type"})
	}
	for _, p := range params.Priority {
		add(SearchCondition{Type: "priority", Label: "Priority", Value: string(p), Category: "priority"})
	}

	tagNames := make(map[uuid.UUID]string, len(tags))
	for _, t := range tags {
		tagNames[t.ID] = t.Name
	}
	for _, id := range params.TagIDs {
		name, ok := tagNames[id]
		if !ok {
			continue
		}
		add(SearchCondition{Type: "tag", Label: "Tag", Value: name, Category: "tag"})
	}

	projectNames := make(map[uuid.UUID]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}
	for _, id := range params.ProjectIDs {
		name, ok := projectNames[id]
		if !ok {
			continue
		}
		add(SearchCondition{Type: "project", Label: "Project", Value: name, Category: "project"})
	}

	if params.CreatedAfter != nil || params.CreatedBefore != nil {
		value := ""
		switch {
		case params.CreatedAfter != nil && params.CreatedBefore != nil:
			value = fmt.Sprintf("%s ~ %s",
				params.CreatedAfter.Format("2006-01-02"),
				params.CreatedBefore.Format("2006-01-02"))
		case params.CreatedAfter != nil:
			value = "after " + params.CreatedAfter.Format("2006-01-02")
		default:
			value = "before " + params.CreatedBefore.Format("2006-01-02")
		}
		add(SearchCondition{Type: "time", Label: "Created", Value: value, Category: "time"})
	}

	if params.HasTimeTracked != nil {
		value := "has tracked time"
		if !*params.HasTimeTracked {
			value = "no tracked time"
		}
		add(SearchCondition{Type: "tracking", Label: "Tracking", Value: value, Category: "tracking"})
	}

	if params.SortBy != "" {
		value := params.SortBy
		if params.SortOrder != "" {
			value += " " + params.SortOrder
		}
		add(SearchCondition{Type: "sort", Label: "Sort", Value: value, Category: "sort"})
	}

	var ordered []SearchCondition
	for _, t := range conditionOrder {
		ordered = append(ordered, byType[t]...)
	}
	return ordered
}
