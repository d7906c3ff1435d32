package news

import (
	"strings"

	"github.com/campuskit/go-newsdesk/blocks"
	"github.com/campuskit/go-newsdesk/internal/domain"
)

// Validate checks the draft snapshot against the save rules and materializes
// the record that would be persisted. It is pure: the draft is not mutated and
// no I/O happens.
//
// Rules, in order: a trimmed-empty title fails with ErrMissingTitle, a
// trimmed-empty excerpt with ErrMissingExcerpt, and an empty gallery with
// ErrMissingImage — at least one image is a hard product rule, not a warning.
// On success the featured image defaults to the first gallery entry when not
// explicitly set (the auto-derivation is not recorded on the document, which
// matches the original behavior), and Content is the flattened merge of the
// gallery and the authored text blocks.
func Validate(draft Draft) (*Record, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}

	excerpt := strings.TrimSpace(draft.Excerpt)
	if excerpt == "" {
		return nil, ErrMissingExcerpt
	}

	if len(draft.Images) == 0 {
		return nil, ErrMissingImage
	}

	category := draft.Category
	if !category.IsValid() {
		parsed, err := domain.ParseCategory(string(category))
		if err != nil {
			return nil, err
		}
		category = parsed
	}

	featured := strings.TrimSpace(draft.FeaturedImage)
	if featured == "" {
		featured = draft.Images[0]
	}

	return &Record{
		Slug:          slugFromTitle(title),
		Title:         title,
		Excerpt:       excerpt,
		Category:      category,
		Date:          draft.Date,
		FeaturedImage: featured,
		Images:        append([]string(nil), draft.Images...),
		Content:       blocks.Flatten(draft.Images, draft.TextBlocks),
		Published:     draft.Published,
	}, nil
}
