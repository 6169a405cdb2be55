package services

import (
	"strings"

	"gtdflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Suggestion is one row in the search autocomplete dropdown.
type Suggestion struct {
	Type  string    `json:"type"`
	ID    uuid.UUID `json:"id,omitempty"`
	Label string    `json:"label"`
	Extra string    `json:"extra,omitempty"`
}

// tagMarker prefixes a query that should match tags only.
const tagMarker = "#"

// perTypeLimit caps each lookup independently; the final list is ordered
// concatenation of the categorized result sets, not relevance ranking.
const perTypeLimit = 5

var smartSuggestions = []Suggestion{
	{Type: "smart", Label: "Due today"},
	{Type: "smart", Label: "Overdue"},
	{Type: "smart", Label: "Waiting on others"},
	{Type: "smart", Label: "Recently completed"},
	{Type: "smart", Label: "High priority"},
}

// Suggest composes autocomplete suggestions. A query starting with the tag
// marker returns tag matches only; an empty query returns saved searches and
// the canned smart filters; anything else concatenates resource matches in a
// fixed type order: tasks, notes, journals, tags, projects.
func (s *SearchServiceImpl) Suggest(db *gorm.DB, ownerID uuid.UUID, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)

	if strings.HasPrefix(query, tagMarker) {
		return s.suggestTags(db, ownerID, strings.TrimPrefix(query, tagMarker))
	}

	if query == "" {
		suggestions := make([]Suggestion, 0, perTypeLimit+len(smartSuggestions))
		var searches []models.SavedSearch
		if err := db.Where("owner_id = ?", ownerID).
			Order("updated_at DESC").Limit(perTypeLimit).Find(&searches).Error; err != nil {
			return nil, err
		}
		for _, ss := range searches {
			suggestions = append(suggestions, Suggestion{Type: "saved_search", ID: ss.ID, Label: ss.Name})
		}
		suggestions = append(suggestions, smartSuggestions...)
		return suggestions, nil
	}

	like := "%" + strings.ToLower(query) + "%"
	var suggestions []Suggestion

	var tasks []models.Task
	if err := db.Where("creator_id = ? AND LOWER(title) LIKE ?", ownerID, like).
		Limit(perTypeLimit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	for _, t := range tasks {
		suggestions = append(suggestions, Suggestion{Type: "task", ID: t.ID, Label: t.Title, Extra: string(t.Status)})
	}

	var notes []models.Note
	if err := db.Where("owner_id = ? AND LOWER(title) LIKE ?", ownerID, like).
		Limit(perTypeLimit).Find(&notes).Error; err != nil {
		return nil, err
	}
	for _, n := range notes {
		suggestions = append(suggestions, Suggestion{Type: "note", ID: n.ID, Label: n.Title})
	}

	var journals []models.Journal
	if err := db.Where("owner_id = ? AND LOWER(content) LIKE ?", ownerID, like).
		Order("date DESC").Limit(perTypeLimit).Find(&journals).Error; err != nil {
		return nil, err
	}
	for _, j := range journals {
		suggestions = append(suggestions, Suggestion{Type: "journal", ID: j.ID, Label: j.Date.Format("2006-01-02")})
	}

	tagMatches, err := s.suggestTags(db, ownerID, query)
	if err != nil {
		return nil, err
	}
	suggestions = append(suggestions, tagMatches...)

	var projects []models.Project
	if err := db.Where("owner_id = ? AND LOWER(name) LIKE ?", ownerID, like).
		Limit(perTypeLimit).Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		suggestions = append(suggestions, Suggestion{Type: "project", ID: p.ID, Label: p.Name})
	}

	return suggestions, nil
}

func (s *SearchServiceImpl) suggestTags(db *gorm.DB, ownerID uuid.UUID, query string) ([]Suggestion, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var tags []models.Tag
	if err := db.Where("owner_id = ? AND LOWER(name) LIKE ?", ownerID, like).
		Order("name ASC").Limit(perTypeLimit).Find(&tags).Error; err != nil {
		return nil, err
	}
	suggestions := make([]Suggestion, 0, len(tags))
	for _, t := range tags {
		suggestions = append(suggestions, Suggestion{Type: "tag", ID: t.ID, Label: t.Name, Extra: string(t.Type)})
	}
	return suggestions, nil
}
