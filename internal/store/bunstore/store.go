// Package bunstore backs the document store contract with a relational
// database through bun. The process is the only writer, so emitting a
// snapshot after every local write is equivalent to a remote change feed.
package bunstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// ErrNotFound reports an update or delete against a missing document id.
var ErrNotFound = errors.New("bunstore: document not found")

// Store adapts a bun database to the document store contract.
type Store struct {
	db     *bun.DB
	repo   repository.Repository[*NewsDocument]
	logger interfaces.Logger
	now    func() time.Time

	mu      sync.Mutex
	subs    map[string][]*subscription
	nextPos map[string]int64
}

// Option configures the store at construction time.
type Option func(*Store)

// WithLogger attaches a logger for subscription lifecycle events.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the row timestamp clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewStore wraps the database handle with a generic document repository.
func NewStore(db *bun.DB, opts ...Option) *Store {
	s := &Store{
		db:      db,
		repo:    newDocumentRepository(db),
		logger:  logging.NoOp(),
		now:     time.Now,
		subs:    map[string][]*subscription{},
		nextPos: map[string]int64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newDocumentRepository(db *bun.DB) repository.Repository[*NewsDocument] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*NewsDocument]{
		NewRecord: func() *NewsDocument { return &NewsDocument{} },
		GetID:     func(d *NewsDocument) uuid.UUID { return d.ID },
		SetID:     func(d *NewsDocument, id uuid.UUID) { d.ID = id },
	})
}

var _ interfaces.DocumentStore = (*Store)(nil)

// Create inserts the document at the tail of the collection order.
func (s *Store) Create(ctx context.Context, collection string, doc interfaces.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	position, err := s.nextPositionLocked(ctx, collection)
	if err != nil {
		return "", err
	}

	now := s.now()
	model := &NewsDocument{
		ID:         uuid.New(),
		Collection: collection,
		Payload:    cloneDocument(doc),
		Position:   position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.repo.Create(ctx, model); err != nil {
		return "", fmt.Errorf("bunstore: insert: %w", err)
	}

	if err := s.broadcastLocked(ctx, collection); err != nil {
		return "", err
	}
	return model.ID.String(), nil
}

// Update merges the patch into the stored payload.
func (s *Store) Update(ctx context.Context, collection string, id string, patch interfaces.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.getLocked(ctx, collection, id)
	if err != nil {
		return err
	}

	merged := cloneDocument(model.Payload)
	for key, value := range patch {
		merged[key] = value
	}
	model.Payload = merged
	model.UpdatedAt = s.now()

	if _, err := s.repo.Update(ctx, model,
		repository.UpdateByID(model.ID.String()),
		repository.UpdateColumns("payload", "updated_at"),
	); err != nil {
		return fmt.Errorf("bunstore: update: %w", err)
	}

	return s.broadcastLocked(ctx, collection)
}

// Delete removes the document under id.
func (s *Store) Delete(ctx context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.getLocked(ctx, collection, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, model); err != nil {
		return fmt.Errorf("bunstore: delete: %w", err)
	}

	return s.broadcastLocked(ctx, collection)
}

// Subscribe registers a snapshot listener. The current contents are delivered
// immediately, then one snapshot per write, in write order.
func (s *Store) Subscribe(ctx context.Context, collection string) (interfaces.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.readSnapshot(ctx, collection)
	if err != nil {
		return nil, err
	}

	sub := newSubscription(s, collection)
	s.subs[collection] = append(s.subs[collection], sub)
	sub.push(snapshot)

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			sub.Close()
		}()
	}

	s.logger.Debug("bunstore.subscribe", "collection", collection)
	return sub, nil
}

func (s *Store) getLocked(ctx context.Context, collection string, id string) (*NewsDocument, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}

	model, err := s.repo.GetByID(ctx, parsed.String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
		}
		return nil, fmt.Errorf("bunstore: get: %w", err)
	}
	if model.Collection != collection {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return model, nil
}

func (s *Store) nextPositionLocked(ctx context.Context, collection string) (int64, error) {
	if pos, ok := s.nextPos[collection]; ok {
		s.nextPos[collection] = pos + 1
		return pos, nil
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.collection = ?", collection).
				OrderExpr("?TableAlias.position DESC").
				Limit(1)
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("bunstore: position scan: %w", err)
	}

	next := int64(0)
	if len(records) > 0 {
		next = records[0].Position + 1
	}
	s.nextPos[collection] = next + 1
	return next, nil
}

func (s *Store) readSnapshot(ctx context.Context, collection string) (interfaces.Snapshot, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.collection = ?", collection).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	if err != nil {
		return interfaces.Snapshot{}, fmt.Errorf("bunstore: list: %w", err)
	}

	snapshot := interfaces.Snapshot{Collection: collection}
	for _, record := range records {
		doc := cloneDocument(record.Payload)
		doc["id"] = record.ID.String()
		snapshot.Docs = append(snapshot.Docs, doc)
	}
	return snapshot, nil
}

func (s *Store) broadcastLocked(ctx context.Context, collection string) error {
	subs := s.subs[collection]
	if len(subs) == 0 {
		return nil
	}
	snapshot, err := s.readSnapshot(ctx, collection)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		sub.push(snapshot)
	}
	return nil
}

func (s *Store) drop(collection string, target *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.subs[collection]
	for i, sub := range subs {
		if sub == target {
			s.subs[collection] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func cloneDocument(doc map[string]any) map[string]any {
	copied := make(map[string]any, len(doc))
	for key, value := range doc {
		copied[key] = value
	}
	return copied
}

// subscription buffers snapshots in an unbounded queue so a slow consumer
// never blocks writers.
type subscription struct {
	store      *Store
	collection string

	mu     sync.Mutex
	queue  []interfaces.Snapshot
	wake   chan struct{}
	closed bool

	out  chan interfaces.Snapshot
	done chan struct{}
}

var _ interfaces.Subscription = (*subscription)(nil)

func newSubscription(store *Store, collection string) *subscription {
	sub := &subscription{
		store:      store,
		collection: collection,
		wake:       make(chan struct{}, 1),
		out:        make(chan interfaces.Snapshot),
		done:       make(chan struct{}),
	}
	go sub.pump()
	return sub
}

func (s *subscription) Snapshots() <-chan interfaces.Snapshot { return s.out }

// Err always reports nil: the feed lives in-process with the writer.
func (s *subscription) Err() error { return nil }

func (s *subscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.store.drop(s.collection, s)
	return nil
}

func (s *subscription) push(snapshot interfaces.Snapshot) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, snapshot)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		var next *interfaces.Snapshot
		if len(s.queue) > 0 {
			next = &s.queue[0]
			s.queue = s.queue[1:]
		}
		s.mu.Unlock()

		if next == nil {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}

		select {
		case s.out <- *next:
		case <-s.done:
			return
		}
	}
}
