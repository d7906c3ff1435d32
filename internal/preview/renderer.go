// Package preview renders a news record's content to HTML for read-only
// display. Text blocks go through goldmark; image blocks become figure
// elements pointing at their retrieval URLs.
package preview

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/campuskit/go-newsdesk/blocks"
	"github.com/campuskit/go-newsdesk/news"
)

// Renderer converts records to HTML fragments. It is stateless and safe for
// concurrent use.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer builds a renderer with GFM extensions and raw HTML disabled.
// Authored text is untrusted, so markup in paragraphs is escaped rather than
// passed through.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// RenderRecord renders the record's title, metadata line, and content blocks
// as a single article fragment.
func (r *Renderer) RenderRecord(record *news.Record) (string, error) {
	if record == nil {
		return "", nil
	}

	var out strings.Builder
	out.WriteString("<article>\n")
	fmt.Fprintf(&out, "<h1>%s</h1>\n", escape(record.Title))
	fmt.Fprintf(&out, "<p class=\"meta\">%s · %s</p>\n", escape(string(record.Category)), escape(record.Date))
	if record.Excerpt != "" {
		fmt.Fprintf(&out, "<p class=\"excerpt\">%s</p>\n", escape(record.Excerpt))
	}

	body, err := r.RenderBlocks(record.Content)
	if err != nil {
		return "", err
	}
	out.WriteString(body)
	out.WriteString("</article>\n")
	return out.String(), nil
}

// RenderBlocks renders a content sequence in order.
func (r *Renderer) RenderBlocks(content []blocks.Block) (string, error) {
	var out strings.Builder
	for _, block := range content {
		switch {
		case block.IsImage():
			fmt.Fprintf(&out, "<figure><img src=%q alt=\"\"></figure>\n", block.Body)
		case block.IsText():
			rendered, err := r.renderMarkdown(block.Body)
			if err != nil {
				return "", err
			}
			out.WriteString(rendered)
		}
	}
	return out.String(), nil
}

func (r *Renderer) renderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("preview: render markdown: %w", err)
	}
	return buf.String(), nil
}

func escape(value string) string {
	return html.EscapeString(value)
}
