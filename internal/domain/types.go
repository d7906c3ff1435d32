package domain

import (
	"errors"
	"strings"
)

// Category classifies a news record. The set is fixed: the dashboard offers
// exactly these five values and persisted documents never carry others.
type Category string

const (
	CategoryAnnouncement Category = "announcement"
	CategoryEvent        Category = "event"
	CategoryEmergency    Category = "emergency"
	CategoryResults      Category = "results"
	CategoryMaintenance  Category = "maintenance"
)

// ErrCategoryInvalid reports a category outside the fixed set.
var ErrCategoryInvalid = errors.New("domain: category is invalid")

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryAnnouncement,
		CategoryEvent,
		CategoryEmergency,
		CategoryResults,
		CategoryMaintenance,
	}
}

// ParseCategory coerces arbitrary input into a known category.
func ParseCategory(input string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(input)))
	switch category {
	case CategoryAnnouncement, CategoryEvent, CategoryEmergency, CategoryResults, CategoryMaintenance:
		return category, nil
	}
	return "", ErrCategoryInvalid
}

// IsValid reports whether the category belongs to the fixed set.
func (c Category) IsValid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }
