package newscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	deleteNewsMessageType       = "newsdesk.news.delete"
	setNewsPublishedMessageType = "newsdesk.news.set_published"
)

// DeleteNewsCommand requests removal of the record under ID. Deletion is
// immediate; there is no soft-delete or undo.
type DeleteNewsCommand struct {
	ID string `json:"id"`
}

// Type implements command.Message.
func (DeleteNewsCommand) Type() string { return deleteNewsMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DeleteNewsCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == "" {
		errs["id"] = validation.NewError("newsdesk.news.delete.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetNewsPublishedCommand requests a publish-flag flip on the record under ID.
type SetNewsPublishedCommand struct {
	ID        string `json:"id"`
	Published bool   `json:"published"`
}

// Type implements command.Message.
func (SetNewsPublishedCommand) Type() string { return setNewsPublishedMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SetNewsPublishedCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == "" {
		errs["id"] = validation.NewError("newsdesk.news.set_published.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
