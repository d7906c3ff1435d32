package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/campuskit/go-newsdesk/news"
	command "github.com/goliatone/go-command"
)

const (
	createRequestedMessageType = "newsdesk.news.create_requested"
	updateRequestedMessageType = "newsdesk.news.update_requested"
)

// Effect is a persist intent produced by a successful submit. The controller
// performs no network I/O itself; the dashboard hands effects to the command
// handlers bound to the sync service.
type Effect interface {
	command.Message
}

// CreateRequested asks the collaborator to persist a brand new record.
type CreateRequested struct {
	Record *news.Record `json:"record"`
}

// Type implements command.Message.
func (CreateRequested) Type() string { return createRequestedMessageType }

// Validate guards handlers against malformed effects.
func (e CreateRequested) Validate() error {
	return validateRecordPayload(createRequestedMessageType, e.Record, false, "")
}

// UpdateRequested asks the collaborator to replace the record under ID.
type UpdateRequested struct {
	ID     string       `json:"id"`
	Record *news.Record `json:"record"`
}

// Type implements command.Message.
func (UpdateRequested) Type() string { return updateRequestedMessageType }

// Validate guards handlers against malformed effects.
func (e UpdateRequested) Validate() error {
	return validateRecordPayload(updateRequestedMessageType, e.Record, true, e.ID)
}

func validateRecordPayload(messageType string, record *news.Record, requireID bool, id string) error {
	errs := validation.Errors{}
	if record == nil {
		errs["record"] = validation.NewError(messageType+".record_required", "record payload is required")
		return errs
	}
	if record.Title == "" {
		errs["title"] = news.ErrMissingTitle
	}
	if record.Excerpt == "" {
		errs["excerpt"] = news.ErrMissingExcerpt
	}
	if len(record.Images) == 0 {
		errs["images"] = news.ErrMissingImage
	}
	if requireID && id == "" {
		errs["id"] = news.ErrRecordIDRequired
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
