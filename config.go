package newsdesk

import "github.com/campuskit/go-newsdesk/internal/runtimeconfig"

var (
	ErrCollectionRequired    = runtimeconfig.ErrCollectionRequired
	ErrStoreProviderUnknown  = runtimeconfig.ErrStoreProviderUnknown
	ErrMongoURIRequired      = runtimeconfig.ErrMongoURIRequired
	ErrMongoDatabaseRequired = runtimeconfig.ErrMongoDatabaseRequired
	ErrBunDSNRequired        = runtimeconfig.ErrBunDSNRequired
	ErrBlobRootRequired      = runtimeconfig.ErrBlobRootRequired
	ErrLoggingLevelInvalid   = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid  = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownDirRequired   = runtimeconfig.ErrMarkdownDirRequired
	ErrImageLimitInvalid     = runtimeconfig.ErrImageLimitInvalid
	ErrThumbnailWidthInvalid = runtimeconfig.ErrThumbnailWidthInvalid
)

type (
	Config         = runtimeconfig.Config
	StoreConfig    = runtimeconfig.StoreConfig
	MongoConfig    = runtimeconfig.MongoConfig
	BunConfig      = runtimeconfig.BunConfig
	BlobConfig     = runtimeconfig.BlobConfig
	MediaConfig    = runtimeconfig.MediaConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	Features       = runtimeconfig.Features
)

// Store provider identifiers accepted by StoreConfig.Provider.
const (
	StoreProviderMemory = runtimeconfig.StoreProviderMemory
	StoreProviderMongo  = runtimeconfig.StoreProviderMongo
	StoreProviderBun    = runtimeconfig.StoreProviderBun
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
