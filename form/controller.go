// Package form owns the editable draft of a news record and reconciles it
// with the persisted shape: it seeds the draft when entering edit mode, keeps
// the gallery and the authored text blocks as independent lists while
// editing, and flattens them into one persisted sequence on submit.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/campuskit/go-newsdesk/blocks"
	"github.com/campuskit/go-newsdesk/internal/domain"
	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/news"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// Mode identifies the controller state.
type Mode string

const (
	// ModeClosed means no draft is open.
	ModeClosed Mode = "closed"
	// ModeCreating means the draft targets a record that does not exist yet.
	ModeCreating Mode = "creating"
	// ModeEditing means the draft was seeded from an existing record.
	ModeEditing Mode = "editing"
)

var (
	// ErrNoOpenDraft is returned by Submit when no draft is open.
	ErrNoOpenDraft = errors.New("form: no open draft")
	// ErrUploadDiscarded reports an upload whose completion arrived after the
	// draft it targeted was superseded. The result is dropped, not applied.
	ErrUploadDiscarded = errors.New("form: upload result discarded")
)

// Controller is the reconciliation state machine around one draft. All
// methods are safe for concurrent use; upload completions are serialized
// against the draft and checked against the draft generation so a completion
// that outlives its draft can never mutate a fresh one.
type Controller struct {
	mu        sync.Mutex
	mode      Mode
	editingID string
	draft     news.Draft
	seq       *blocks.Sequence
	epoch     uint64

	blobs     interfaces.BlobStore
	logger    interfaces.Logger
	now       func() time.Time
	maxImages int
}

// Option configures the controller at construction time.
type Option func(*Controller)

// WithClock overrides the clock used to stamp fresh drafts.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithLogger attaches a logger for discarded uploads and rejected appends.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithImageLimit overrides the gallery cap, mainly for tests.
func WithImageLimit(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.maxImages = limit
		}
	}
}

// NewController constructs a closed controller around the blob collaborator.
func NewController(blobs interfaces.BlobStore, opts ...Option) *Controller {
	c := &Controller{
		mode:      ModeClosed,
		blobs:     blobs,
		logger:    logging.NoOp(),
		now:       time.Now,
		maxImages: news.MaxGalleryImages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the current state.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// EditingID returns the target record id while editing, empty otherwise.
func (c *Controller) EditingID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Draft returns a snapshot of the current draft.
func (c *Controller) Draft() news.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// OpenForCreate resets the draft to dashboard defaults and enters creating
// mode. Any previous draft is discarded.
func (c *Controller) OpenForCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeCreating
	c.editingID = ""
	c.draft = news.NewDraftAt(c.now())
	c.seq = blocks.NewSequenceFrom(nil)
	c.epoch++
}

// OpenForEdit seeds the draft from an existing record, splitting the
// persisted content back into the gallery and text-block lists.
func (c *Controller) OpenForEdit(record *news.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeEditing
	c.editingID = record.ID
	c.draft = news.DraftFromRecord(record)
	c.seq = blocks.NewSequenceFrom(c.draft.TextBlocks)
	c.epoch++
}

// Cancel discards the draft unconditionally and closes the form. There is no
// confirmation step: losing unsaved edits on cancel is expected behavior.
// In-flight uploads are not interrupted; their completions are discarded.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Controller) reset() {
	c.mode = ModeClosed
	c.editingID = ""
	c.draft = news.Draft{}
	c.seq = nil
	c.epoch++
}

// Submit validates the draft snapshot. On failure the controller stays in its
// current state and returns the specific validation error with the draft
// preserved. On success it closes and returns the persist intent for the
// external collaborator: CreateRequested when creating, UpdateRequested when
// editing.
func (c *Controller) Submit() (Effect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeClosed {
		return nil, ErrNoOpenDraft
	}

	c.draft.TextBlocks = c.seq.Blocks()
	record, err := news.Validate(c.draft)
	if err != nil {
		return nil, err
	}

	var effect Effect
	if c.mode == ModeEditing {
		record.ID = c.editingID
		effect = UpdateRequested{ID: c.editingID, Record: record}
	} else {
		effect = CreateRequested{Record: record}
	}

	c.reset()
	return effect, nil
}

// SetTitle updates the draft title.
func (c *Controller) SetTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Title = title
}

// SetExcerpt updates the draft excerpt.
func (c *Controller) SetExcerpt(excerpt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Excerpt = excerpt
}

// SetCategory updates the draft category.
func (c *Controller) SetCategory(category domain.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Category = category
}

// SetDate updates the draft date (ISO-8601 date string).
func (c *Controller) SetDate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Date = date
}

// SetPublished updates the draft publish flag.
func (c *Controller) SetPublished(published bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Published = published
}

// SetFeaturedImage pins an explicit cover image URL.
func (c *Controller) SetFeaturedImage(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.FeaturedImage = url
}

// AddTextBlock appends an authored paragraph and returns the new block.
func (c *Controller) AddTextBlock(body string) (blocks.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == nil {
		return blocks.Block{}, ErrNoOpenDraft
	}
	return c.seq.Append(blocks.KindText, body), nil
}

// UpdateTextBlock replaces the body of an authored paragraph. Unknown ids are
// ignored, matching the block sequence contract.
func (c *Controller) UpdateTextBlock(id, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != nil {
		c.seq.Update(id, body)
	}
}

// RemoveTextBlock deletes an authored paragraph. Unknown ids are ignored.
func (c *Controller) RemoveTextBlock(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != nil {
		c.seq.Remove(id)
	}
}

// MoveTextBlock repositions an authored paragraph.
func (c *Controller) MoveTextBlock(id string, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != nil {
		c.seq.Move(id, index)
	}
}

// TextBlocks returns the authored paragraphs in order.
func (c *Controller) TextBlocks() []blocks.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == nil {
		return nil
	}
	return c.seq.Blocks()
}

// AddImageURL appends an already-uploaded URL to the gallery, enforcing the
// cap with no partial state change.
func (c *Controller) AddImageURL(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendImage(url)
}

// RemoveImage drops the gallery entry at index. Out-of-range indexes are
// ignored.
func (c *Controller) RemoveImage(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.draft.Images) {
		return
	}
	c.draft.Images = append(c.draft.Images[:index], c.draft.Images[index+1:]...)
}

func (c *Controller) appendImage(url string) error {
	if len(c.draft.Images) >= c.maxImages {
		return &news.ImageLimitError{Limit: c.maxImages, Current: len(c.draft.Images)}
	}
	c.draft.Images = append(c.draft.Images, url)
	return nil
}

// UploadImage stores the raw bytes with the blob collaborator and appends the
// resulting URL to the gallery. The cap is checked before the upload starts
// so a rejected append never touches the blob store. Concurrent uploads each
// append on their own completion; completion order decides gallery order,
// which is accepted nondeterminism for this dashboard.
//
// The upload runs outside the draft lock. A completion that arrives after the
// draft was closed, reopened, or submitted finds a newer generation and is
// discarded with ErrUploadDiscarded instead of being applied to state it no
// longer belongs to.
func (c *Controller) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	c.mu.Lock()
	if c.mode == ModeClosed {
		c.mu.Unlock()
		return "", ErrNoOpenDraft
	}
	if len(c.draft.Images) >= c.maxImages {
		current := len(c.draft.Images)
		c.mu.Unlock()
		return "", &news.ImageLimitError{Limit: c.maxImages, Current: current}
	}
	epoch := c.epoch
	c.mu.Unlock()

	url, err := c.blobs.Upload(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", news.ErrUpload, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		c.logger.Debug("form.upload.discarded", "name", name, "url", url)
		return "", ErrUploadDiscarded
	}
	if err := c.appendImage(url); err != nil {
		c.logger.Warn("form.upload.rejected", "name", name, "error", err)
		return "", err
	}
	return url, nil
}
