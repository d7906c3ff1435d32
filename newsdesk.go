// Package newsdesk is the top level entry point for the campus news admin
// module: a realtime record collection, a block-based form editor, and the
// dashboard controller binding them together.
package newsdesk

import (
	"github.com/campuskit/go-newsdesk/dashboard"
	"github.com/campuskit/go-newsdesk/internal/di"
	"github.com/campuskit/go-newsdesk/internal/markdown"
	"github.com/campuskit/go-newsdesk/internal/preview"
	"github.com/campuskit/go-newsdesk/news"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// NewsService exports the record service contract for consumers of the
// newsdesk package.
type NewsService = news.Service

// Dashboard exports the dashboard controller type.
type Dashboard = dashboard.Controller

// MarkdownImporter exports the draft importer type.
type MarkdownImporter = markdown.Importer

// PreviewRenderer exports the HTML preview renderer type.
type PreviewRenderer = preview.Renderer

// Module is the top level newsdesk runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a newsdesk module from the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// News returns the configured record service.
func (m *Module) News() NewsService {
	return m.container.NewsService()
}

// Dashboard returns the wired dashboard controller.
func (m *Module) Dashboard() *Dashboard {
	return m.container.Dashboard()
}

// Store returns the document store backing the collection.
func (m *Module) Store() interfaces.DocumentStore {
	return m.container.DocumentStore()
}

// Blobs returns the blob store, nil when uploads are disabled.
func (m *Module) Blobs() interfaces.BlobStore {
	return m.container.BlobStore()
}

// Markdown returns the draft importer when configured.
func (m *Module) Markdown() *MarkdownImporter {
	return m.container.MarkdownImporter()
}

// Preview returns the HTML renderer when configured.
func (m *Module) Preview() *PreviewRenderer {
	return m.container.PreviewRenderer()
}
