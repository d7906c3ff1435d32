package news

import "context"

// Feed is a live view over the record collection: each delivery is the full
// mapped contents of a store snapshot, in the order the store emitted them.
// The channel closes when the feed ends; Err reports the terminal cause.
type Feed interface {
	Records() <-chan []*Record
	Err() error
	Close() error
}

// Service is the boundary with the remote document store and the blob store.
// Mutating calls are fire-and-forget from the dashboard's perspective: the
// in-memory collection is never updated optimistically and only changes when
// the subscription delivers the resulting snapshot, keeping the remote store
// the single writer of truth.
type Service interface {
	// Watch subscribes to the record collection once per dashboard session.
	Watch(ctx context.Context) (Feed, error)
	// Create persists a new record and returns the store-assigned id.
	Create(ctx context.Context, record *Record) (string, error)
	// Update replaces the persisted record under id.
	Update(ctx context.Context, id string, record *Record) error
	// SetPublished flips only the publish flag of the record under id.
	SetPublished(ctx context.Context, id string, published bool) error
	// Delete removes the record under id. There is no soft delete or undo.
	Delete(ctx context.Context, id string) error
	// UploadImage stores raw image bytes with the blob collaborator and
	// returns the retrieval URL for the gallery.
	UploadImage(ctx context.Context, name string, data []byte) (string, error)
}
