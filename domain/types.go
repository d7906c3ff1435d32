package domain

import internaldomain "github.com/campuskit/go-newsdesk/internal/domain"

// Category classifies a news record within the fixed dashboard set.
type Category = internaldomain.Category

const (
	// CategoryAnnouncement marks general announcements.
	CategoryAnnouncement = internaldomain.CategoryAnnouncement
	// CategoryEvent marks campus events.
	CategoryEvent = internaldomain.CategoryEvent
	// CategoryEmergency marks urgent notices.
	CategoryEmergency = internaldomain.CategoryEmergency
	// CategoryResults marks exam and competition results.
	CategoryResults = internaldomain.CategoryResults
	// CategoryMaintenance marks service maintenance windows.
	CategoryMaintenance = internaldomain.CategoryMaintenance
)

// Status represents the publish lifecycle of a news record.
type Status = internaldomain.Status

const (
	// StatusDraft indicates a record still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies a record visible to readers.
	StatusPublished = internaldomain.StatusPublished
)

// ErrCategoryInvalid reports a category outside the fixed set.
var ErrCategoryInvalid = internaldomain.ErrCategoryInvalid

// Categories returns the fixed category set in display order.
func Categories() []Category { return internaldomain.Categories() }

// ParseCategory coerces arbitrary input into a known category.
func ParseCategory(input string) (Category, error) {
	return internaldomain.ParseCategory(input)
}
