// Package memory provides an in-process document store with ordered snapshot
// delivery. It is the reference store for tests and the demo binary: every
// write produces a full collection snapshot fanned out to all subscribers, the
// same shape a remote change feed would deliver.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// ErrNotFound reports an update or delete against a missing document id.
var ErrNotFound = errors.New("memory: document not found")

// entry keeps insertion order stable across updates; snapshots list documents
// in the order they were created.
type entry struct {
	id  string
	doc interfaces.Document
}

// Store is a mutex-guarded document store. The zero value is not usable; use
// NewStore.
type Store struct {
	mu          sync.Mutex
	collections map[string][]entry
	subs        map[string][]*subscription
	newID       func() string
	logger      interfaces.Logger
}

// Option configures the store at construction time.
type Option func(*Store)

// WithIDGenerator overrides document id assignment, mainly for tests.
func WithIDGenerator(generator func() string) Option {
	return func(s *Store) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithLogger attaches a logger for subscription lifecycle events.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed preloads a collection with documents. Ids are assigned through the
// id generator in seed order.
func WithSeed(collection string, docs []interfaces.Document) Option {
	return func(s *Store) {
		for _, doc := range docs {
			s.collections[collection] = append(s.collections[collection], entry{
				id:  s.newID(),
				doc: cloneDocument(doc),
			})
		}
	}
}

// NewStore constructs an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		collections: map[string][]entry{},
		subs:        map[string][]*subscription{},
		newID:       uuid.NewString,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.DocumentStore = (*Store)(nil)

// Subscribe registers a snapshot listener for the collection. The current
// contents are delivered immediately as the first snapshot, then one snapshot
// per write, in write order.
func (s *Store) Subscribe(ctx context.Context, collection string) (interfaces.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := newSubscription(s, collection)
	s.subs[collection] = append(s.subs[collection], sub)
	sub.push(s.snapshotLocked(collection))

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			sub.Close()
		}()
	}

	s.logger.Debug("memory.subscribe", "collection", collection)
	return sub, nil
}

// Create inserts the document and returns its assigned id.
func (s *Store) Create(ctx context.Context, collection string, doc interfaces.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.collections[collection] = append(s.collections[collection], entry{
		id:  id,
		doc: cloneDocument(doc),
	})
	s.broadcastLocked(collection)
	return id, nil
}

// Update merges the patch into the document under id. Missing ids fail with
// ErrNotFound.
func (s *Store) Update(ctx context.Context, collection string, id string, patch interfaces.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.collections[collection]
	for i := range entries {
		if entries[i].id != id {
			continue
		}
		merged := cloneDocument(entries[i].doc)
		for key, value := range patch {
			merged[key] = value
		}
		entries[i].doc = merged
		s.broadcastLocked(collection)
		return nil
	}
	return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
}

// Delete removes the document under id. Missing ids fail with ErrNotFound.
func (s *Store) Delete(ctx context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.collections[collection]
	for i := range entries {
		if entries[i].id != id {
			continue
		}
		s.collections[collection] = append(entries[:i], entries[i+1:]...)
		s.broadcastLocked(collection)
		return nil
	}
	return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
}

// Documents returns the current contents of a collection, mainly for tests.
func (s *Store) Documents(collection string) []interfaces.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(collection).Docs
}

func (s *Store) snapshotLocked(collection string) interfaces.Snapshot {
	entries := s.collections[collection]
	docs := make([]interfaces.Document, 0, len(entries))
	for _, e := range entries {
		doc := cloneDocument(e.doc)
		doc["id"] = e.id
		docs = append(docs, doc)
	}
	return interfaces.Snapshot{Collection: collection, Docs: docs}
}

func (s *Store) broadcastLocked(collection string) {
	snapshot := s.snapshotLocked(collection)
	for _, sub := range s.subs[collection] {
		sub.push(snapshot)
	}
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

func cloneDocument(doc interfaces.Document) interfaces.Document {
	copied := make(interfaces.Document, len(doc))
	for key, value := range doc {
		copied[key] = value
	}
	return copied
}

// subscription buffers snapshots in an unbounded queue so a slow consumer
// never blocks writers, while delivery order stays exactly write order.
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

// Err always reports nil: the in-process store cannot lose its feed.
func (s *subscription) Err() error { return nil }

// Close detaches the subscription and closes the snapshot channel. Safe to
// call more than once.
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
