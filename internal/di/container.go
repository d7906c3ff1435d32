// Package di wires module dependencies from a runtime configuration. Every
// collaborator can be overridden through an Option, which is how tests and
// host applications swap in their own stores, blob backends, or loggers.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/campuskit/go-newsdesk/dashboard"
	"github.com/campuskit/go-newsdesk/form"
	"github.com/campuskit/go-newsdesk/internal/blob/fsblob"
	"github.com/campuskit/go-newsdesk/internal/logging"
	"github.com/campuskit/go-newsdesk/internal/logging/gologger"
	"github.com/campuskit/go-newsdesk/internal/markdown"
	syncnews "github.com/campuskit/go-newsdesk/internal/news"
	"github.com/campuskit/go-newsdesk/internal/preview"
	"github.com/campuskit/go-newsdesk/internal/runtimeconfig"
	"github.com/campuskit/go-newsdesk/internal/store/bunstore"
	"github.com/campuskit/go-newsdesk/internal/store/memory"
	"github.com/campuskit/go-newsdesk/internal/store/mongostore"
	"github.com/campuskit/go-newsdesk/news"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"

	_ "github.com/mattn/go-sqlite3"
)

// Container holds the wired module graph.
type Container struct {
	config runtimeconfig.Config

	provider interfaces.LoggerProvider
	store    interfaces.DocumentStore
	blobs    interfaces.BlobStore
	bunDB    *bun.DB

	newsSvc  news.Service
	board    *dashboard.Controller
	importer *markdown.Importer
	renderer *preview.Renderer
}

// Option mutates the container before wiring completes.
type Option func(*Container)

// WithLoggerProvider overrides the default go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.provider = provider
	}
}

// WithDocumentStore overrides the store selected by the configuration.
func WithDocumentStore(store interfaces.DocumentStore) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithBlobStore overrides the filesystem blob store.
func WithBlobStore(blobs interfaces.BlobStore) Option {
	return func(c *Container) {
		c.blobs = blobs
	}
}

// WithBunDB reuses an existing database handle for the bun-backed store.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithNewsService overrides the default record service binding.
func WithNewsService(svc news.Service) Option {
	return func(c *Container) {
		c.newsSvc = svc
	}
}

// NewContainer validates the configuration and wires the module graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		c.provider = provider
	}

	if c.store == nil {
		store, err := c.buildStore()
		if err != nil {
			return nil, err
		}
		c.store = store
	}

	if c.blobs == nil && cfg.Features.Uploads {
		blobs, err := fsblob.New(cfg.Blob.Root, cfg.Blob.BaseURL,
			fsblob.WithLogger(logging.MediaLogger(c.provider)),
			fsblob.WithThumbnailWidth(cfg.Media.ThumbnailWidth),
		)
		if err != nil {
			return nil, err
		}
		c.blobs = blobs
	}

	if c.newsSvc == nil {
		svc, err := syncnews.NewService(c.store, c.blobs,
			syncnews.WithCollection(cfg.Collection),
			syncnews.WithLogger(logging.NewsLogger(c.provider)),
		)
		if err != nil {
			return nil, err
		}
		c.newsSvc = svc
	}

	c.board = dashboard.NewController(c.newsSvc,
		dashboard.WithLogger(logging.DashboardLogger(c.provider)),
		dashboard.WithFormOptions(form.WithImageLimit(cfg.Media.MaxGalleryImages)),
	)

	if cfg.Features.Markdown && cfg.Markdown.Enabled {
		c.importer = markdown.NewImporter(os.DirFS(cfg.Markdown.ContentDir),
			markdown.WithPattern(cfg.Markdown.Pattern),
			markdown.WithLogger(logging.MarkdownLogger(c.provider)),
		)
	}

	if cfg.Features.Preview {
		c.renderer = preview.NewRenderer()
	}

	return c, nil
}

func (c *Container) buildStore() (interfaces.DocumentStore, error) {
	storeLogger := logging.StoreLogger(c.provider)

	switch strings.ToLower(strings.TrimSpace(c.config.Store.Provider)) {
	case runtimeconfig.StoreProviderMemory:
		return memory.NewStore(memory.WithLogger(storeLogger)), nil

	case runtimeconfig.StoreProviderMongo:
		db, err := mongostore.Connect(context.Background(), c.config.Store.Mongo.URI, c.config.Store.Mongo.Database)
		if err != nil {
			return nil, err
		}
		return mongostore.NewStore(db, mongostore.WithLogger(storeLogger)), nil

	case runtimeconfig.StoreProviderBun:
		db := c.bunDB
		if db == nil {
			sqlDB, err := sql.Open("sqlite3", c.config.Store.Bun.DSN)
			if err != nil {
				return nil, fmt.Errorf("di: open sqlite: %w", err)
			}
			db = bun.NewDB(sqlDB, sqlitedialect.New())
			c.bunDB = db
		}
		if err := bunstore.CreateTables(context.Background(), db); err != nil {
			return nil, err
		}
		return bunstore.NewStore(db, bunstore.WithLogger(storeLogger)), nil

	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStoreProviderUnknown, c.config.Store.Provider)
	}
}

// Config returns the configuration the container was built from.
func (c *Container) Config() runtimeconfig.Config {
	return c.config
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.provider
}

// DocumentStore returns the configured document store.
func (c *Container) DocumentStore() interfaces.DocumentStore {
	return c.store
}

// BlobStore returns the configured blob store, nil when uploads are disabled.
func (c *Container) BlobStore() interfaces.BlobStore {
	return c.blobs
}

// BunDB returns the database handle backing the bun store, nil otherwise.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// NewsService returns the configured record service.
func (c *Container) NewsService() news.Service {
	return c.newsSvc
}

// Dashboard returns the wired dashboard controller.
func (c *Container) Dashboard() *dashboard.Controller {
	return c.board
}

// MarkdownImporter returns the draft importer, nil when the feature is off.
func (c *Container) MarkdownImporter() *markdown.Importer {
	return c.importer
}

// PreviewRenderer returns the HTML renderer, nil when the feature is off.
func (c *Container) PreviewRenderer() *preview.Renderer {
	return c.renderer
}
