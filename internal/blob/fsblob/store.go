// Package fsblob stores uploaded media on the local filesystem and hands
// back retrieval URLs built from a configurable route table. Image payloads
// get a resized thumbnail rendition next to the original.
package fsblob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"

	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/news"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

const (
	routeGroup     = "media"
	routeOriginal  = "original"
	routeThumbnail = "thumbnail"

	defaultThumbnailWidth = 320
)

// ErrEmptyPayload reports an upload with no bytes to store.
var ErrEmptyPayload = errors.New("fsblob: empty payload")

// Store writes blobs under a root directory. Originals land at the root and
// thumbnails under thumb/, both addressed by a unique storage key.
type Store struct {
	root       string
	manager    *urlkit.RouteManager
	logger     interfaces.Logger
	newID      func() string
	thumbWidth int
}

// Option configures the store at construction time.
type Option func(*Store)

// WithLogger attaches a logger for upload events.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides the storage key uniquifier.
func WithIDGenerator(generator func() string) Option {
	return func(s *Store) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithThumbnailWidth overrides the rendition width in pixels.
func WithThumbnailWidth(width int) Option {
	return func(s *Store) {
		if width > 0 {
			s.thumbWidth = width
		}
	}
}

// WithRouteManager replaces the default route table, for callers that mount
// media under a different URL layout. The manager must define the "media"
// group with "original" and "thumbnail" routes taking a :key parameter.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(s *Store) {
		if manager != nil {
			s.manager = manager
		}
	}
}

// New creates the root directory if needed and returns a ready store.
// baseURL is the public prefix retrieval URLs are built against.
func New(root, baseURL string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("fsblob: root directory is required")
	}
	if err := os.MkdirAll(filepath.Join(root, "thumb"), 0o755); err != nil {
		return nil, fmt.Errorf("fsblob: create root: %w", err)
	}

	s := &Store{
		root:       root,
		manager:    defaultRouteManager(baseURL),
		logger:     logging.NoOp(),
		newID:      uuid.NewString,
		thumbWidth: defaultThumbnailWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func defaultRouteManager(baseURL string) *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroup,
				BaseURL: strings.TrimRight(baseURL, "/"),
				Paths: map[string]string{
					routeOriginal:  "/media/:key",
					routeThumbnail: "/media/thumb/:key",
				},
			},
		},
	})
}

var (
	_ interfaces.BlobStore          = (*Store)(nil)
	_ interfaces.RenditionBlobStore = (*Store)(nil)
)

// Upload stores the payload and returns the original's retrieval URL.
func (s *Store) Upload(ctx context.Context, path string, data []byte) (string, error) {
	result, err := s.UploadWithRenditions(ctx, path, data)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

// UploadWithRenditions stores the payload and, when it decodes as an image,
// a resized thumbnail. Non-image payloads are stored without a rendition.
func (s *Store) UploadWithRenditions(ctx context.Context, path string, data []byte) (*interfaces.BlobResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	key := s.storageKey(path)
	originalPath := filepath.Join(s.root, key)
	if err := os.WriteFile(originalPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("fsblob: write blob: %w", err)
	}

	url, err := s.resolveURL(routeOriginal, key)
	if err != nil {
		return nil, err
	}

	result := &interfaces.BlobResult{
		URL:  url,
		Size: int64(len(data)),
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		// Not a decodable image, keep the original only.
		s.logger.Debug("blob stored without rendition", "key", key, "reason", err)
		return result, nil
	}

	thumb := imaging.Resize(img, s.thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(s.root, "thumb", key)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		s.logger.Warn("thumbnail rendition failed", "key", key, "error", err)
		return result, nil
	}

	thumbURL, err := s.resolveURL(routeThumbnail, key)
	if err != nil {
		return nil, err
	}
	result.ThumbnailURL = thumbURL

	s.logger.Debug("blob stored", "key", key, "size", result.Size)
	return result, nil
}

// storageKey slugifies the caller path's base name and appends a unique
// suffix so repeated uploads of the same file never collide.
func (s *Store) storageKey(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	normalized, err := news.NormalizeSlug(name)
	if err != nil || normalized == "" {
		normalized = "blob"
	}

	suffix := s.newID()
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return normalized + "-" + suffix + ext
}

func (s *Store) resolveURL(route, key string) (string, error) {
	url, err := s.manager.Group(routeGroup).Builder(route).WithParam("key", key).Build()
	if err != nil {
		return "", fmt.Errorf("fsblob: build url: %w", err)
	}
	return url, nil
}
