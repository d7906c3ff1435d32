package interfaces

import "context"

// Document is the wire shape exchanged with the remote document store. Every
// document delivered by a snapshot carries its identifier under the "id" key.
type Document = map[string]any

// Snapshot is a full replacement view of a collection's current contents,
// delivered on every change. Consumers replace their in-memory state with the
// snapshot's documents rather than patching incrementally.
type Snapshot struct {
	Collection string
	Docs       []Document
}

// Subscription is a live feed of ordered snapshots for a single collection.
// Snapshots are delivered in the order the store observed the changes; the
// channel is closed when the subscription ends, after which Err reports the
// terminal error, if any.
type Subscription interface {
	Snapshots() <-chan Snapshot
	Err() error
	Close() error
}

// DocumentStore abstracts the realtime document store collaborator: a named
// collection of JSON-like documents with push-based change delivery. Writes
// are best effort; the store performs no retries and callers surface failures
// to the user instead of replaying them.
type DocumentStore interface {
	Subscribe(ctx context.Context, collection string) (Subscription, error)
	Create(ctx context.Context, collection string, doc Document) (string, error)
	Update(ctx context.Context, collection string, id string, patch Document) error
	Delete(ctx context.Context, collection string, id string) error
}
