// Package news implements the sync boundary between the dashboard and the
// remote document store: it subscribes to the record collection, maps store
// documents into records, and issues the create, update, and delete calls the
// command handlers dispatch.
package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	ndnews "github.com/campuskit/go-newsdesk/news"

	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// DefaultCollection is the store collection news documents live in.
const DefaultCollection = "news"

// Service is the DocumentStore-backed implementation of ndnews.Service.
type Service struct {
	store      interfaces.DocumentStore
	blobs      interfaces.BlobStore
	codec      *codec
	collection string
	logger     interfaces.Logger
	now        func() time.Time
}

// Option configures the service at construction time.
type Option func(*Service)

// WithCollection overrides the collection name.
func WithCollection(collection string) Option {
	return func(s *Service) {
		if trimmed := strings.TrimSpace(collection); trimmed != "" {
			s.collection = trimmed
		}
	}
}

// WithClock overrides the clock used to stamp created/updated times.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the sync service against a document store and a blob
// store. The blob store may be nil when uploads are not needed (read-only
// tooling); UploadImage then fails cleanly.
func NewService(store interfaces.DocumentStore, blobs interfaces.BlobStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("news: document store is required")
	}
	c, err := newCodec()
	if err != nil {
		return nil, fmt.Errorf("news: compile record schema: %w", err)
	}

	s := &Service{
		store:      store,
		blobs:      blobs,
		codec:      c,
		collection: DefaultCollection,
		logger:     logging.NoOp(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var _ ndnews.Service = (*Service)(nil)

// Watch subscribes to the collection and returns the mapped record feed.
func (s *Service) Watch(ctx context.Context) (ndnews.Feed, error) {
	sub, err := s.store.Subscribe(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ndnews.ErrSubscription, err)
	}
	s.logger.Info("news.watch.started", "collection", s.collection)
	return newFeed(sub, s.codec, s.logger), nil
}

// Create persists a new record, stamping slug and timestamps, and returns the
// store-assigned id.
func (s *Service) Create(ctx context.Context, record *ndnews.Record) (string, error) {
	if record == nil {
		return "", ndnews.ErrRecordInvalid
	}

	stamped := record.Clone()
	now := s.now()
	stamped.CreatedAt = now
	stamped.UpdatedAt = now
	s.ensureSlug(stamped)

	doc, err := s.codec.encode(stamped)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ndnews.ErrStoreWrite, err)
	}

	id, err := s.store.Create(ctx, s.collection, doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ndnews.ErrStoreWrite, err)
	}

	logging.WithRecordContext(s.logger, id, s.collection, "create").Info("news.record.created", "slug", stamped.Slug)
	return id, nil
}

// Update replaces the persisted record under id. Every field travels in the
// patch, so the merge at the store amounts to a full replace.
func (s *Service) Update(ctx context.Context, id string, record *ndnews.Record) error {
	if strings.TrimSpace(id) == "" {
		return ndnews.ErrRecordIDRequired
	}
	if record == nil {
		return ndnews.ErrRecordInvalid
	}

	stamped := record.Clone()
	stamped.UpdatedAt = s.now()
	s.ensureSlug(stamped)

	doc, err := s.codec.encode(stamped)
	if err != nil {
		return fmt.Errorf("%w: %v", ndnews.ErrStoreWrite, err)
	}

	if err := s.store.Update(ctx, s.collection, id, doc); err != nil {
		return fmt.Errorf("%w: %v", ndnews.ErrStoreWrite, err)
	}

	logging.WithRecordContext(s.logger, id, s.collection, "update").Info("news.record.updated")
	return nil
}

// SetPublished patches only the publish flag and the update timestamp.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) error {
	if strings.TrimSpace(id) == "" {
		return ndnews.ErrRecordIDRequired
	}

	patch := interfaces.Document{
		"published": published,
		"updatedAt": s.now().Format(time.RFC3339Nano),
	}
	if err := s.store.Update(ctx, s.collection, id, patch); err != nil {
		return fmt.Errorf("%w: %v", ndnews.ErrStoreWrite, err)
	}

	logging.WithRecordContext(s.logger, id, s.collection, "set_published").Info("news.record.publish_flag", "published", published)
	return nil
}

// Delete removes the record under id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ndnews.ErrRecordIDRequired
	}

	if err := s.store.Delete(ctx, s.collection, id); err != nil {
		return fmt.Errorf("%w: %v", ndnews.ErrStoreWrite, err)
	}

	logging.WithRecordContext(s.logger, id, s.collection, "delete").Info("news.record.deleted")
	return nil
}

// UploadImage stores the raw bytes with the blob collaborator and returns the
// retrieval URL.
func (s *Service) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	if s.blobs == nil {
		return "", fmt.Errorf("%w: no blob store configured", ndnews.ErrUpload)
	}

	url, err := s.blobs.Upload(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ndnews.ErrUpload, err)
	}
	s.logger.Debug("news.image.uploaded", "name", name, "url", url)
	return url, nil
}

func (s *Service) ensureSlug(record *ndnews.Record) {
	if record.Slug != "" {
		return
	}
	if normalized, err := ndnews.NormalizeSlug(record.Title); err == nil {
		record.Slug = normalized
	}
}
