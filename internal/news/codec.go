package news

import (
	"encoding/json"
	"fmt"

	ndnews "github.com/campuskit/go-newsdesk/news"

	"github.com/campuskit/go-newsdesk/internal/validation"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// codec maps between store documents and records. Inbound documents are
// checked against the record schema before decoding; a document that fails the
// schema is reported as an InvalidDocumentError so snapshot mapping can skip
// it instead of aborting the whole snapshot.
type codec struct {
	validator *validation.DocumentValidator
}

func newCodec() (*codec, error) {
	validator, err := validation.NewDocumentValidator(ndnews.RecordSchema)
	if err != nil {
		return nil, err
	}
	return &codec{validator: validator}, nil
}

func (c *codec) decode(doc interfaces.Document) (*ndnews.Record, error) {
	id, _ := doc["id"].(string)

	if err := c.validator.Validate(doc); err != nil {
		return nil, &ndnews.InvalidDocumentError{ID: id, Reason: err.Error()}
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, &ndnews.InvalidDocumentError{ID: id, Reason: err.Error()}
	}
	record := &ndnews.Record{}
	if err := json.Unmarshal(encoded, record); err != nil {
		return nil, &ndnews.InvalidDocumentError{ID: id, Reason: err.Error()}
	}
	if record.ID == "" {
		record.ID = id
	}
	return record, nil
}

// encode renders the record as a store document. The id never travels inside
// the document body; the store owns id assignment and addressing.
func (c *codec) encode(record *ndnews.Record) (interfaces.Document, error) {
	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	doc := interfaces.Document{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	delete(doc, "id")
	return doc, nil
}
