// Package mongostore backs the document store contract with MongoDB. The
// subscription is a change-stream watch: every change event triggers a full
// re-read of the collection, delivered as one snapshot, which matches the
// full-replace contract the dashboard consumes.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// ErrNotFound reports an update or delete against a missing document id.
var ErrNotFound = errors.New("mongostore: document not found")

// Store adapts a mongo database to the document store contract.
type Store struct {
	db     *mongo.Database
	newID  func() string
	logger interfaces.Logger
}

// Option configures the store at construction time.
type Option func(*Store)

// WithIDGenerator overrides document id assignment.
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

// Connect dials MongoDB and returns the named database handle.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	return client.Database(database), nil
}

// NewStore wraps the database handle.
func NewStore(db *mongo.Database, opts ...Option) *Store {
	s := &Store{
		db:     db,
		newID:  uuid.NewString,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.DocumentStore = (*Store)(nil)

// Create inserts the document under a generated string id.
func (s *Store) Create(ctx context.Context, collection string, doc interfaces.Document) (string, error) {
	id := s.newID()
	payload := toBSON(doc)
	payload["_id"] = id

	if _, err := s.db.Collection(collection).InsertOne(ctx, payload); err != nil {
		return "", fmt.Errorf("mongostore: insert: %w", err)
	}
	return id, nil
}

// Update merges the patch into the document under id via $set.
func (s *Store) Update(ctx context.Context, collection string, id string, patch interfaces.Document) error {
	result, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": toBSON(patch)},
	)
	if err != nil {
		return fmt.Errorf("mongostore: update: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return nil
}

// Delete removes the document under id.
func (s *Store) Delete(ctx context.Context, collection string, id string) error {
	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongostore: delete: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return nil
}

// Subscribe opens a change stream on the collection. The current contents are
// delivered immediately as the first snapshot; a fresh full read follows
// every change event. Change streams require a replica set; standalone
// servers fail here, not at NewStore.
func (s *Store) Subscribe(ctx context.Context, collection string) (interfaces.Subscription, error) {
	coll := s.db.Collection(collection)

	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("mongostore: watch: %w", err)
	}

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sub := &subscription{
		store:      s,
		collection: collection,
		stream:     stream,
		cancel:     cancel,
		out:        make(chan interfaces.Snapshot),
	}
	go sub.pump(streamCtx)

	s.logger.Debug("mongostore.subscribe", "collection", collection)
	return sub, nil
}

func (s *Store) readSnapshot(ctx context.Context, collection string) (interfaces.Snapshot, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return interfaces.Snapshot{}, fmt.Errorf("mongostore: find: %w", err)
	}
	defer cursor.Close(ctx)

	snapshot := interfaces.Snapshot{Collection: collection}
	for cursor.Next(ctx) {
		raw := bson.M{}
		if err := cursor.Decode(&raw); err != nil {
			return interfaces.Snapshot{}, fmt.Errorf("mongostore: decode: %w", err)
		}
		snapshot.Docs = append(snapshot.Docs, fromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return interfaces.Snapshot{}, fmt.Errorf("mongostore: cursor: %w", err)
	}
	return snapshot, nil
}

type subscription struct {
	store      *Store
	collection string
	stream     *mongo.ChangeStream
	cancel     context.CancelFunc
	out        chan interfaces.Snapshot

	mu     sync.Mutex
	err    error
	closed bool
}

var _ interfaces.Subscription = (*subscription)(nil)

func (s *subscription) Snapshots() <-chan interfaces.Snapshot { return s.out }

func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *subscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	return nil
}

func (s *subscription) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

func (s *subscription) pump(ctx context.Context) {
	defer close(s.out)
	defer s.stream.Close(context.WithoutCancel(ctx))

	if !s.emit(ctx) {
		return
	}

	for s.stream.Next(ctx) {
		if !s.emit(ctx) {
			return
		}
	}

	if err := s.stream.Err(); err != nil && ctx.Err() == nil {
		s.fail(fmt.Errorf("mongostore: change stream: %w", err))
		s.store.logger.Error("mongostore.stream.failed", "collection", s.collection, "error", err)
	}
}

func (s *subscription) emit(ctx context.Context) bool {
	snapshot, err := s.store.readSnapshot(ctx, s.collection)
	if err != nil {
		if ctx.Err() == nil {
			s.fail(err)
		}
		return false
	}
	select {
	case s.out <- snapshot:
		return true
	case <-ctx.Done():
		return false
	}
}

// toBSON converts a store document to a bson map, leaving nested values to
// the driver's codecs.
func toBSON(doc interfaces.Document) bson.M {
	out := bson.M{}
	for key, value := range doc {
		out[key] = value
	}
	return out
}

// fromBSON converts a raw mongo document back to the store shape, surfacing
// the _id as the document's id field and normalizing driver container types.
func fromBSON(raw bson.M) interfaces.Document {
	doc := interfaces.Document{}
	for key, value := range raw {
		if key == "_id" {
			if id, ok := value.(string); ok {
				doc["id"] = id
			} else {
				doc["id"] = fmt.Sprint(value)
			}
			continue
		}
		doc[key] = normalizeBSONValue(value)
	}
	return doc
}

func normalizeBSONValue(value any) any {
	switch typed := value.(type) {
	case bson.M:
		out := map[string]any{}
		for key, nested := range typed {
			out[key] = normalizeBSONValue(nested)
		}
		return out
	case bson.D:
		out := map[string]any{}
		for _, element := range typed {
			out[element.Key] = normalizeBSONValue(element.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(typed))
		for i, nested := range typed {
			out[i] = normalizeBSONValue(nested)
		}
		return out
	default:
		return value
	}
}
