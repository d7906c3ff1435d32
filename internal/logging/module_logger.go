package logging

import (
	"context"
	"strings"

	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

const (
	rootModule      = "newsdesk"
	newsModule      = "newsdesk.news"
	dashboardModule = "newsdesk.dashboard"
	formModule      = "newsdesk.form"
	storeModule     = "newsdesk.store"
	mediaModule     = "newsdesk.media"
	markdownModule  = "newsdesk.markdown"
)

const (
	fieldRecordID   = "record_id"
	fieldCollection = "collection"
	fieldAction     = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// NewsLogger returns the logger namespace reserved for the sync service.
func NewsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, newsModule)
}

// DashboardLogger returns the logger namespace reserved for the dashboard
// controller.
func DashboardLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, dashboardModule)
}

// FormLogger returns the logger namespace reserved for the form controller.
func FormLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, formModule)
}

// StoreLogger returns the logger namespace reserved for document store
// adapters.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// MediaLogger returns the logger namespace reserved for blob storage.
func MediaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mediaModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown imports.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithRecordContext enriches the provided logger with common record fields
// such as record id, collection name, and the action being performed. Empty
// values are ignored.
func WithRecordContext(logger interfaces.Logger, recordID, collection, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(recordID); trimmed != "" {
		fields[fieldRecordID] = trimmed
	}
	if trimmed := strings.TrimSpace(collection); trimmed != "" {
		fields[fieldCollection] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
