// Package filter derives the visible subset of the news collection from the
// dashboard's filter tuple. Projection is pure and order preserving, so it is
// safe to run on every keystroke.
package filter

import (
	"strings"

	"github.com/campuskit/go-newsdesk/internal/domain"
	"github.com/campuskit/go-newsdesk/news"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// StatusFilter narrows records by publish state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPublished StatusFilter = "published"
	StatusDraft     StatusFilter = "draft"
)

// State is the transient filter tuple owned by the dashboard view. It is
// never persisted and never written by any other component.
type State struct {
	Category   string
	Status     StatusFilter
	SearchTerm string
}

// Default returns the identity filter: every record matches.
func Default() State {
	return State{
		Category: CategoryAll,
		Status:   StatusAll,
	}
}

// Project returns every record matching the filter, preserving the relative
// order of all. The search term is matched case-insensitively as a substring
// of the title and the excerpt; an empty term matches everything.
func Project(all []*news.Record, state State) []*news.Record {
	term := strings.ToLower(strings.TrimSpace(state.SearchTerm))

	out := make([]*news.Record, 0, len(all))
	for _, record := range all {
		if record == nil {
			continue
		}
		if !matchesCategory(record, state.Category) {
			continue
		}
		if !matchesStatus(record, state.Status) {
			continue
		}
		if !matchesSearch(record, term) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchesCategory(record *news.Record, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return record.Category == domain.Category(category)
}

func matchesStatus(record *news.Record, status StatusFilter) bool {
	switch status {
	case StatusPublished:
		return record.Published
	case StatusDraft:
		return !record.Published
	default:
		return true
	}
}

func matchesSearch(record *news.Record, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(record.Title), term) ||
		strings.Contains(strings.ToLower(record.Excerpt), term)
}
