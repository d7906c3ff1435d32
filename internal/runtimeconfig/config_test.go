package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/campuskit/go-newsdesk/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Store.Provider != runtimeconfig.StoreProviderMemory {
		t.Fatalf("expected memory provider default, got %q", cfg.Store.Provider)
	}
	if cfg.Collection != "news" {
		t.Fatalf("expected news collection default, got %q", cfg.Collection)
	}
}

func TestValidateRejectsMissingCollection(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Collection = "  "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCollectionRequired) {
		t.Fatalf("expected ErrCollectionRequired, got %v", err)
	}
}

func TestValidateStoreProviders(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Store.Provider = "redis"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStoreProviderUnknown) {
		t.Fatalf("expected ErrStoreProviderUnknown, got %v", err)
	}

	cfg.Store.Provider = runtimeconfig.StoreProviderMongo
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMongoURIRequired) {
		t.Fatalf("expected ErrMongoURIRequired, got %v", err)
	}
	cfg.Store.Mongo.URI = "mongodb://localhost:27017"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMongoDatabaseRequired) {
		t.Fatalf("expected ErrMongoDatabaseRequired, got %v", err)
	}
	cfg.Store.Mongo.Database = "campus"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected mongo config to validate, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Store.Provider = runtimeconfig.StoreProviderBun
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrBunDSNRequired) {
		t.Fatalf("expected ErrBunDSNRequired, got %v", err)
	}
	cfg.Store.Bun.DSN = "file::memory:?cache=shared"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected bun config to validate, got %v", err)
	}
}

func TestValidateBlobAndMediaLimits(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Blob.Root = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrBlobRootRequired) {
		t.Fatalf("expected ErrBlobRootRequired, got %v", err)
	}

	// Uploads off makes the blob root optional.
	cfg.Features.Uploads = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected config to validate with uploads disabled, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Media.MaxGalleryImages = 0
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrImageLimitInvalid) {
		t.Fatalf("expected ErrImageLimitInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Media.ThumbnailWidth = -1
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrThumbnailWidthInvalid) {
		t.Fatalf("expected ErrThumbnailWidthInvalid, got %v", err)
	}
}

func TestValidateLoggingOptions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Logging.Level = ""
	cfg.Logging.Format = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected empty logging options to validate, got %v", err)
	}
}

func TestValidateMarkdownImporter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMarkdownDirRequired) {
		t.Fatalf("expected ErrMarkdownDirRequired, got %v", err)
	}

	cfg.Markdown.ContentDir = "content"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected importer config to validate, got %v", err)
	}
}
