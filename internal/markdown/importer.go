package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/campuskit/go-newsdesk/blocks"
	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/news"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// ErrTitleMissing reports a file whose frontmatter has no title. Every other
// field has a usable default; a title does not.
var ErrTitleMissing = errors.New("markdown: frontmatter title is required")

// Importer discovers Markdown files in a filesystem and converts each into a
// news draft. Body paragraphs become text blocks in authored order; gallery
// images come from the frontmatter image list.
type Importer struct {
	fsys    fs.FS
	pattern string
	logger  interfaces.Logger
	now     func() time.Time
	blockID func() string
}

// Option configures the importer at construction time.
type Option func(*Importer)

// WithLogger attaches a logger for per-file import events.
func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithClock overrides the clock used for draft date defaults.
func WithClock(clock func() time.Time) Option {
	return func(i *Importer) {
		if clock != nil {
			i.now = clock
		}
	}
}

// WithPattern limits discovery to base names matching the glob. The default
// is "*.md".
func WithPattern(pattern string) Option {
	return func(i *Importer) {
		if strings.TrimSpace(pattern) != "" {
			i.pattern = pattern
		}
	}
}

// WithBlockIDGenerator overrides text block id assignment, used by tests that
// assert on block identity.
func WithBlockIDGenerator(generator func() string) Option {
	return func(i *Importer) {
		if generator != nil {
			i.blockID = generator
		}
	}
}

// NewImporter builds an importer over the supplied filesystem.
func NewImporter(fsys fs.FS, opts ...Option) *Importer {
	i := &Importer{
		fsys:    fsys,
		pattern: "*.md",
		logger:  logging.NoOp(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// FileDraft pairs an imported draft with the file it came from.
type FileDraft struct {
	Path  string
	Draft news.Draft
}

// ImportFile reads and converts a single file.
func (i *Importer) ImportFile(ctx context.Context, filePath string) (*FileDraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(i.fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", filePath, err)
	}

	draft, body, err := ParseDraft(data, i.now())
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, filePath)
	}
	if draft.Title == "" {
		return nil, fmt.Errorf("%w (%s)", ErrTitleMissing, filePath)
	}

	draft.TextBlocks = i.bodyBlocks(body)

	i.logger.Debug("markdown file imported",
		"path", filePath,
		"title", draft.Title,
		"blocks", len(draft.TextBlocks),
	)
	return &FileDraft{Path: filePath, Draft: draft}, nil
}

// ImportDir walks the directory recursively and converts every matching
// file, in lexical path order. The first failing file aborts the import.
func (i *Importer) ImportDir(ctx context.Context, dir string) ([]FileDraft, error) {
	var paths []string
	err := fs.WalkDir(i.fsys, dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		matched, err := path.Match(i.pattern, entry.Name())
		if err != nil {
			return fmt.Errorf("markdown: pattern %q: %w", i.pattern, err)
		}
		if matched {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown: walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	drafts := make([]FileDraft, 0, len(paths))
	for _, p := range paths {
		imported, err := i.ImportFile(ctx, p)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *imported)
	}
	return drafts, nil
}

// bodyBlocks splits the Markdown body into paragraph text blocks. Blank
// lines separate paragraphs; intra-paragraph newlines are preserved.
func (i *Importer) bodyBlocks(body []byte) []blocks.Block {
	normalized := strings.ReplaceAll(string(body), "\r\n", "\n")

	var seqOpts []blocks.SequenceOption
	if i.blockID != nil {
		seqOpts = append(seqOpts, blocks.WithIDGenerator(i.blockID))
	}
	seq := blocks.NewSequence(seqOpts...)

	for _, paragraph := range strings.Split(normalized, "\n\n") {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}
		seq.Append(blocks.KindText, trimmed)
	}
	return seq.Blocks()
}
