package domain

import "strings"

// Status represents the publish lifecycle of a news record. Records are
// either drafts or published; there is no scheduled or archived state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// StatusFromPublished maps the persisted boolean flag onto a Status.
func StatusFromPublished(published bool) Status {
	if published {
		return StatusPublished
	}
	return StatusDraft
}

// NormalizeStatus coerces arbitrary status strings, defaulting to draft.
func NormalizeStatus(input string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(input))) {
	case StatusPublished:
		return StatusPublished
	default:
		return StatusDraft
	}
}
