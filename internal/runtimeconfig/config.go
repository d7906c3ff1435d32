// Package runtimeconfig aggregates the knobs a host application sets before
// wiring the newsdesk module. Fields use simple types so hosts can populate
// them from whatever configuration layer they already run.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCollectionRequired    = errors.New("newsdesk config: collection name is required")
	ErrStoreProviderUnknown  = errors.New("newsdesk config: store provider is invalid")
	ErrMongoURIRequired      = errors.New("newsdesk config: mongo uri is required for the mongo store")
	ErrMongoDatabaseRequired = errors.New("newsdesk config: mongo database is required for the mongo store")
	ErrBunDSNRequired        = errors.New("newsdesk config: bun dsn is required for the bun store")
	ErrBlobRootRequired      = errors.New("newsdesk config: blob root directory is required when uploads are enabled")
	ErrLoggingLevelInvalid   = errors.New("newsdesk config: logging level is invalid")
	ErrLoggingFormatInvalid  = errors.New("newsdesk config: logging format is invalid")
	ErrMarkdownDirRequired   = errors.New("newsdesk config: markdown content directory is required when the importer is enabled")
	ErrImageLimitInvalid     = errors.New("newsdesk config: gallery image limit must be positive")
	ErrThumbnailWidthInvalid = errors.New("newsdesk config: thumbnail width must be positive")
)

// Store provider identifiers.
const (
	StoreProviderMemory = "memory"
	StoreProviderMongo  = "mongo"
	StoreProviderBun    = "bun"
)

// Config aggregates feature flags and adapter bindings for the newsdesk
// module.
type Config struct {
	Enabled    bool
	Collection string
	Store      StoreConfig
	Blob       BlobConfig
	Media      MediaConfig
	Logging    LoggingConfig
	Markdown   MarkdownConfig
	Features   Features
}

// StoreConfig selects and parameterizes the document store backend.
type StoreConfig struct {
	Provider string
	Mongo    MongoConfig
	Bun      BunConfig
}

// MongoConfig parameterizes the mongo-backed store.
type MongoConfig struct {
	URI      string
	Database string
}

// BunConfig parameterizes the relational store.
type BunConfig struct {
	DSN string
}

// BlobConfig parameterizes the filesystem blob store.
type BlobConfig struct {
	Root    string
	BaseURL string
}

// MediaConfig captures editorial limits for uploaded media.
type MediaConfig struct {
	MaxGalleryImages int
	ThumbnailWidth   int
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// MarkdownConfig captures filesystem behaviour for the draft importer.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
}

// Features toggles optional module functionality.
type Features struct {
	Uploads  bool
	Markdown bool
	Preview  bool
}

// DefaultConfig returns defaults matching the demo wiring: in-memory store,
// uploads on, importer off.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Collection: "news",
		Store: StoreConfig{
			Provider: StoreProviderMemory,
		},
		Blob: BlobConfig{
			Root:    "media",
			BaseURL: "/",
		},
		Media: MediaConfig{
			MaxGalleryImages: 10,
			ThumbnailWidth:   320,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
		},
		Features: Features{
			Uploads: true,
			Preview: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Collection) == "" {
		return ErrCollectionRequired
	}

	switch normalize(cfg.Store.Provider) {
	case StoreProviderMemory:
	case StoreProviderMongo:
		if strings.TrimSpace(cfg.Store.Mongo.URI) == "" {
			return ErrMongoURIRequired
		}
		if strings.TrimSpace(cfg.Store.Mongo.Database) == "" {
			return ErrMongoDatabaseRequired
		}
	case StoreProviderBun:
		if strings.TrimSpace(cfg.Store.Bun.DSN) == "" {
			return ErrBunDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStoreProviderUnknown, cfg.Store.Provider)
	}

	if cfg.Features.Uploads && strings.TrimSpace(cfg.Blob.Root) == "" {
		return ErrBlobRootRequired
	}
	if cfg.Media.MaxGalleryImages <= 0 {
		return ErrImageLimitInvalid
	}
	if cfg.Media.ThumbnailWidth <= 0 {
		return ErrThumbnailWidthInvalid
	}

	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}

	if cfg.Features.Markdown && cfg.Markdown.Enabled {
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownDirRequired
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
