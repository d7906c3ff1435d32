package news

import (
	"errors"
	"fmt"
)

var (
	ErrMissingTitle       = errors.New("news: title is required")
	ErrMissingExcerpt     = errors.New("news: excerpt is required")
	ErrMissingImage       = errors.New("news: at least one image is required")
	ErrImageLimitExceeded = errors.New("news: image limit exceeded")
	ErrRecordIDRequired   = errors.New("news: record id required")
	ErrRecordInvalid      = errors.New("news: record document invalid")
	ErrStoreWrite         = errors.New("news: store write failed")
	ErrUpload             = errors.New("news: upload failed")
	ErrSubscription       = errors.New("news: subscription failed")
)

// ImageLimitError reports a rejected gallery append with the counts that
// triggered it.
type ImageLimitError struct {
	Limit   int
	Current int
}

func (e *ImageLimitError) Error() string {
	if e == nil {
		return ErrImageLimitExceeded.Error()
	}
	return fmt.Sprintf("%s: %d of %d images in use", ErrImageLimitExceeded.Error(), e.Current, e.Limit)
}

func (e *ImageLimitError) Unwrap() error {
	return ErrImageLimitExceeded
}

// InvalidDocumentError captures a remote document that failed schema
// validation during snapshot mapping. These are logged and skipped, never
// fatal: the dashboard keeps rendering the documents that did decode.
type InvalidDocumentError struct {
	ID     string
	Reason string
}

func (e *InvalidDocumentError) Error() string {
	if e == nil {
		return ErrRecordInvalid.Error()
	}
	if e.ID != "" {
		return fmt.Sprintf("%s: id=%s: %s", ErrRecordInvalid.Error(), e.ID, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrRecordInvalid.Error(), e.Reason)
}

func (e *InvalidDocumentError) Unwrap() error {
	return ErrRecordInvalid
}

// IsValidationError reports whether the error belongs to the recoverable
// draft-validation taxonomy that is surfaced inline with the form.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrMissingExcerpt) ||
		errors.Is(err, ErrMissingImage) ||
		errors.Is(err, ErrImageLimitExceeded)
}
