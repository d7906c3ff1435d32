// Package dashboard owns the admin view state: the canonical record
// collection fed by the store subscription, the active filter, and the form
// controller for the open draft. All reads return snapshots; the collection
// itself only changes when the subscription delivers one, never optimistically
// on a local write.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/campuskit/go-newsdesk/filter"
	"github.com/campuskit/go-newsdesk/form"
	newscmd "github.com/campuskit/go-newsdesk/internal/commands/news"
	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/news"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

var (
	// ErrAlreadyStarted is returned when Start is called twice; the dashboard
	// subscribes to the collection once per session.
	ErrAlreadyStarted = errors.New("dashboard: already started")
	// ErrRecordNotFound is returned when an operation targets an id missing
	// from the current collection snapshot.
	ErrRecordNotFound = errors.New("dashboard: record not found")
)

// Notification is a user-facing report of a failed write. The collection and
// the draft are left intact; the user is expected to retry manually.
type Notification struct {
	Message string
	Err     error
}

// Notifier receives write-failure notifications. Implementations must not
// block; they run on the caller's goroutine.
type Notifier func(Notification)

// Controller is the single owner of dashboard state.
type Controller struct {
	service  news.Service
	handlers *newscmd.Handlers
	editor   *form.Controller
	logger   interfaces.Logger
	notify   Notifier

	mu      sync.Mutex
	records []*news.Record
	filters filter.State
	feed    news.Feed
	started bool
	done    chan struct{}

	formOpts []form.Option
}

// Option configures the controller at construction time.
type Option func(*Controller)

// WithLogger attaches the dashboard logger namespace.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNotifier registers the write-failure notification sink.
func WithNotifier(notify Notifier) Option {
	return func(c *Controller) {
		if notify != nil {
			c.notify = notify
		}
	}
}

// WithFormOptions forwards options to the embedded form controller.
func WithFormOptions(opts ...form.Option) Option {
	return func(c *Controller) {
		c.formOpts = append(c.formOpts, opts...)
	}
}

// NewController wires the dashboard against the sync service. Image uploads
// flow through the service so the form never talks to the blob store directly.
func NewController(service news.Service, opts ...Option) *Controller {
	c := &Controller{
		service: service,
		logger:  logging.NoOp(),
		notify:  func(Notification) {},
		filters: filter.Default(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.editor = form.NewController(uploadAdapter{service: service}, c.formOpts...)
	c.handlers = newscmd.NewHandlers(service, singleLoggerProvider{logger: c.logger})
	return c
}

// uploadAdapter exposes the service upload as the blob contract the form
// controller expects.
type uploadAdapter struct {
	service news.Service
}

func (a uploadAdapter) Upload(ctx context.Context, path string, data []byte) (string, error) {
	return a.service.UploadImage(ctx, path, data)
}

// singleLoggerProvider hands the same logger to every command handler.
type singleLoggerProvider struct {
	logger interfaces.Logger
}

func (p singleLoggerProvider) GetLogger(string) interfaces.Logger { return p.logger }

// Start subscribes to the collection and applies snapshots in delivery order
// on a single goroutine. It returns once the subscription is established;
// snapshot application continues in the background until the feed closes or
// ctx is cancelled.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	feed, err := c.service.Watch(ctx)
	if err != nil {
		c.mu.Lock()
		c.started = false
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.feed = feed
	c.mu.Unlock()

	go c.run(feed)
	return nil
}

// run applies snapshots until the feed closes. On subscription failure the
// last-known collection stays in place: stale data beats an empty dashboard.
func (c *Controller) run(feed news.Feed) {
	defer close(c.done)
	for records := range feed.Records() {
		c.mu.Lock()
		c.records = records
		c.mu.Unlock()
	}
	if err := feed.Err(); err != nil {
		c.logger.Error("dashboard.subscription.failed", "error", err)
	}
}

// Close tears down the subscription and waits for the snapshot loop to stop.
func (c *Controller) Close() error {
	c.mu.Lock()
	feed := c.feed
	started := c.started
	c.mu.Unlock()

	if !started {
		return nil
	}
	if feed != nil {
		if err := feed.Close(); err != nil {
			return err
		}
	}
	<-c.done
	return nil
}

// Records returns the current collection snapshot in store order.
func (c *Controller) Records() []*news.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*news.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Visible derives the filtered view from the current collection and filter.
func (c *Controller) Visible() []*news.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return filter.Project(c.records, c.filters)
}

// Filter returns the active filter state.
func (c *Controller) Filter() filter.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetFilter replaces the whole filter tuple.
func (c *Controller) SetFilter(state filter.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = state
}

// SetCategoryFilter narrows the view to one category, or all.
func (c *Controller) SetCategoryFilter(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Category = category
}

// SetStatusFilter narrows the view by publish state.
func (c *Controller) SetStatusFilter(status filter.StatusFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Status = status
}

// SetSearchTerm narrows the view by free-text search over title and excerpt.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.SearchTerm = term
}

// Form exposes the embedded draft controller.
func (c *Controller) Form() *form.Controller {
	return c.editor
}

// OpenCreate opens a fresh draft.
func (c *Controller) OpenCreate() {
	c.editor.OpenForCreate()
}

// OpenEdit seeds the draft from the record under id.
func (c *Controller) OpenEdit(id string) error {
	record := c.lookup(id)
	if record == nil {
		return ErrRecordNotFound
	}
	c.editor.OpenForEdit(record)
	return nil
}

// Save submits the open draft and dispatches the resulting persist intent.
// Validation failures come back directly with the draft preserved. A failed
// write surfaces as a notification and reopens the draft from the submitted
// record so the user can retry; the collection is never touched locally.
func (c *Controller) Save(ctx context.Context) error {
	effect, err := c.editor.Submit()
	if err != nil {
		return err
	}

	switch e := effect.(type) {
	case form.CreateRequested:
		err = c.handlers.Create.Execute(ctx, e)
	case form.UpdateRequested:
		err = c.handlers.Update.Execute(ctx, e)
	default:
		return nil
	}

	if err != nil {
		c.reopen(effect)
		c.notify(Notification{Message: "saving the record failed", Err: err})
		return err
	}
	return nil
}

// Delete removes the record under id. The collection entry disappears when
// the store delivers the post-delete snapshot.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.handlers.Delete.Execute(ctx, newscmd.DeleteNewsCommand{ID: id}); err != nil {
		c.notify(Notification{Message: "deleting the record failed", Err: err})
		return err
	}
	return nil
}

// TogglePublish flips the publish flag of the record under id.
func (c *Controller) TogglePublish(ctx context.Context, id string) error {
	record := c.lookup(id)
	if record == nil {
		return ErrRecordNotFound
	}

	msg := newscmd.SetNewsPublishedCommand{ID: id, Published: !record.Published}
	if err := c.handlers.SetPublished.Execute(ctx, msg); err != nil {
		c.notify(Notification{Message: "updating the publish state failed", Err: err})
		return err
	}
	return nil
}

func (c *Controller) lookup(id string) *news.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, record := range c.records {
		if record.ID == id {
			return record
		}
	}
	return nil
}

func (c *Controller) reopen(effect form.Effect) {
	switch e := effect.(type) {
	case form.CreateRequested:
		c.editor.OpenForCreate()
		c.seedDraft(e.Record)
	case form.UpdateRequested:
		c.editor.OpenForEdit(e.Record)
	}
}

func (c *Controller) seedDraft(record *news.Record) {
	c.editor.SetTitle(record.Title)
	c.editor.SetExcerpt(record.Excerpt)
	c.editor.SetCategory(record.Category)
	c.editor.SetDate(record.Date)
	c.editor.SetPublished(record.Published)
	c.editor.SetFeaturedImage(record.FeaturedImage)
	for _, url := range record.Images {
		_ = c.editor.AddImageURL(url)
	}
	for _, block := range record.Content {
		if block.IsText() {
			_, _ = c.editor.AddTextBlock(block.Body)
		}
	}
}
