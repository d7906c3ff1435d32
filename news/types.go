package news

import (
	"time"

	"github.com/campuskit/go-newsdesk/blocks"
	"github.com/campuskit/go-newsdesk/internal/domain"
)

// MaxGalleryImages caps the number of gallery images a record may carry. The
// cap is a product rule enforced before any upload starts, so a rejected
// append never leaves partial state behind.
const MaxGalleryImages = 10

// Record is the persisted shape of one news item, stored one document per
// record in a single named collection. ID is assigned by the remote store on
// creation and is empty until the first successful save.
//
// Content is always normalized at save time: gallery images first, then text
// blocks in authored order. Arbitrary edit order is never persisted.
type Record struct {
	ID            string          `json:"id,omitempty"`
	Slug          string          `json:"slug,omitempty"`
	Title         string          `json:"title"`
	Excerpt       string          `json:"excerpt"`
	Category      domain.Category `json:"category"`
	Date          string          `json:"date"`
	FeaturedImage string          `json:"featuredImage"`
	Images        []string        `json:"images"`
	Content       []blocks.Block  `json:"content"`
	Published     bool            `json:"published"`
	CreatedAt     time.Time       `json:"createdAt,omitzero"`
	UpdatedAt     time.Time       `json:"updatedAt,omitzero"`
}

// Status derives the lifecycle state from the publish flag.
func (r *Record) Status() domain.Status {
	return domain.StatusFromPublished(r.Published)
}

// Clone returns a deep copy so callers can hand records across goroutines
// without sharing slices.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	copied := *r
	if r.Images != nil {
		copied.Images = append([]string(nil), r.Images...)
	}
	if r.Content != nil {
		copied.Content = append([]blocks.Block(nil), r.Content...)
	}
	return &copied
}

// Draft is the in-progress editing state of a news item. The gallery and the
// authored text blocks stay independent while editing so each can be appended,
// reordered, and removed freely; they are merged into the persisted Content
// sequence only when the draft is validated for submit.
type Draft struct {
	Title         string
	Excerpt       string
	Category      domain.Category
	Date          string
	FeaturedImage string
	Images        []string
	TextBlocks    []blocks.Block
	Published     bool
}

// NewDraft returns a draft with dashboard defaults: today's date, the
// announcement category, everything else empty, unpublished.
func NewDraft() Draft {
	return NewDraftAt(time.Now())
}

// NewDraftAt is NewDraft with an explicit clock reading, used by controllers
// that stamp drafts through an injected clock.
func NewDraftAt(now time.Time) Draft {
	return Draft{
		Category: domain.CategoryAnnouncement,
		Date:     now.Format(time.DateOnly),
	}
}

// DraftFromRecord seeds a draft from a persisted record, splitting the
// flattened content back into the gallery and text-block lists the editor
// works with.
func DraftFromRecord(record *Record) Draft {
	images, text := blocks.Split(record.Content)
	if len(images) == 0 && len(record.Images) > 0 {
		images = append([]string(nil), record.Images...)
	}
	return Draft{
		Title:         record.Title,
		Excerpt:       record.Excerpt,
		Category:      record.Category,
		Date:          record.Date,
		FeaturedImage: record.FeaturedImage,
		Images:        images,
		TextBlocks:    text,
		Published:     record.Published,
	}
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	copied := d
	if d.Images != nil {
		copied.Images = append([]string(nil), d.Images...)
	}
	if d.TextBlocks != nil {
		copied.TextBlocks = append([]blocks.Block(nil), d.TextBlocks...)
	}
	return copied
}
