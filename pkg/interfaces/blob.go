package interfaces

import "context"

// BlobStore abstracts the object storage collaborator that persists uploaded
// media and hands back a retrieval URL. The path is a caller-chosen storage
// key; implementations may rewrite it to guarantee uniqueness.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// BlobResult captures optional upload metadata for implementations that
// produce derivative renditions alongside the original bytes.
type BlobResult struct {
	URL          string
	ThumbnailURL string
	Size         int64
}

// RenditionBlobStore is an optional extension returning rendition metadata.
type RenditionBlobStore interface {
	UploadWithRenditions(ctx context.Context, path string, data []byte) (*BlobResult, error)
}
