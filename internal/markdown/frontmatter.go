// Package markdown turns Markdown files with YAML frontmatter into news
// drafts, so a content directory can seed or migrate a collection without
// going through the editor.
package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/campuskit/go-newsdesk/internal/domain"
	"github.com/campuskit/go-newsdesk/news"
)

// frontMatterEnvelope is the YAML shape accepted at the top of a news file.
// Summary is accepted as an alias for excerpt since older exports used it.
type frontMatterEnvelope struct {
	Title         string   `yaml:"title"`
	Excerpt       string   `yaml:"excerpt"`
	Summary       string   `yaml:"summary"`
	Category      string   `yaml:"category"`
	Date          string   `yaml:"date"`
	FeaturedImage string   `yaml:"featuredImage"`
	Images        []string `yaml:"images"`
	Published     bool     `yaml:"published"`
}

// ParseDraft extracts frontmatter and body from the source bytes and returns
// the draft plus the Markdown body without delimiters. The body is not split
// into blocks here; the importer owns block identity.
func ParseDraft(source []byte, now time.Time) (news.Draft, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return news.Draft{}, nil, fmt.Errorf("markdown: parse frontmatter: %w", err)
	}

	draft := news.NewDraftAt(now)
	draft.Title = strings.TrimSpace(meta.Title)
	draft.Excerpt = strings.TrimSpace(meta.Excerpt)
	if draft.Excerpt == "" {
		draft.Excerpt = strings.TrimSpace(meta.Summary)
	}
	draft.FeaturedImage = strings.TrimSpace(meta.FeaturedImage)
	draft.Published = meta.Published

	if trimmed := strings.TrimSpace(meta.Date); trimmed != "" {
		if _, err := time.Parse(time.DateOnly, trimmed); err != nil {
			return news.Draft{}, nil, fmt.Errorf("markdown: date %q is not YYYY-MM-DD: %w", trimmed, err)
		}
		draft.Date = trimmed
	}

	if trimmed := strings.TrimSpace(meta.Category); trimmed != "" {
		category, err := domain.ParseCategory(trimmed)
		if err != nil {
			return news.Draft{}, nil, fmt.Errorf("markdown: %w", err)
		}
		draft.Category = category
	}

	for _, image := range meta.Images {
		if trimmed := strings.TrimSpace(image); trimmed != "" {
			draft.Images = append(draft.Images, trimmed)
		}
	}

	return draft, body, nil
}
