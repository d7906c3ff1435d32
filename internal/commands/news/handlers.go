// Package newscmd binds the persist intents produced by the form and the
// dashboard to the sync service through the shared command handler foundation.
package newscmd

import (
	"context"

	"github.com/campuskit/go-newsdesk/form"
	"github.com/campuskit/go-newsdesk/internal/commands"
	"github.com/campuskit/go-newsdesk/news"
	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

// CreateNewsHandler persists brand new records via the sync service.
type CreateNewsHandler struct {
	inner *commands.Handler[form.CreateRequested]
}

// NewCreateNewsHandler constructs a handler wired to the provided service.
func NewCreateNewsHandler(service news.Service, logger interfaces.Logger, opts ...commands.HandlerOption[form.CreateRequested]) *CreateNewsHandler {
	exec := func(ctx context.Context, msg form.CreateRequested) error {
		_, err := service.Create(ctx, msg.Record)
		return err
	}

	handlerOpts := []commands.HandlerOption[form.CreateRequested]{
		commands.WithLogger[form.CreateRequested](logger),
		commands.WithOperation[form.CreateRequested]("news.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateNewsHandler{
		inner: commands.NewHandler[form.CreateRequested](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[form.CreateRequested].Execute.
func (h *CreateNewsHandler) Execute(ctx context.Context, msg form.CreateRequested) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateNewsHandler replaces existing records via the sync service.
type UpdateNewsHandler struct {
	inner *commands.Handler[form.UpdateRequested]
}

// NewUpdateNewsHandler constructs a handler wired to the provided service.
func NewUpdateNewsHandler(service news.Service, logger interfaces.Logger, opts ...commands.HandlerOption[form.UpdateRequested]) *UpdateNewsHandler {
	exec := func(ctx context.Context, msg form.UpdateRequested) error {
		return service.Update(ctx, msg.ID, msg.Record)
	}

	handlerOpts := []commands.HandlerOption[form.UpdateRequested]{
		commands.WithLogger[form.UpdateRequested](logger),
		commands.WithOperation[form.UpdateRequested]("news.update"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateNewsHandler{
		inner: commands.NewHandler[form.UpdateRequested](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[form.UpdateRequested].Execute.
func (h *UpdateNewsHandler) Execute(ctx context.Context, msg form.UpdateRequested) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteNewsHandler removes records via the sync service.
type DeleteNewsHandler struct {
	inner *commands.Handler[DeleteNewsCommand]
}

// NewDeleteNewsHandler constructs a handler wired to the provided service.
func NewDeleteNewsHandler(service news.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteNewsCommand]) *DeleteNewsHandler {
	exec := func(ctx context.Context, msg DeleteNewsCommand) error {
		return service.Delete(ctx, msg.ID)
	}

	handlerOpts := []commands.HandlerOption[DeleteNewsCommand]{
		commands.WithLogger[DeleteNewsCommand](logger),
		commands.WithOperation[DeleteNewsCommand]("news.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteNewsHandler{
		inner: commands.NewHandler[DeleteNewsCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteNewsCommand].Execute.
func (h *DeleteNewsHandler) Execute(ctx context.Context, msg DeleteNewsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SetNewsPublishedHandler flips publish flags via the sync service.
type SetNewsPublishedHandler struct {
	inner *commands.Handler[SetNewsPublishedCommand]
}

// NewSetNewsPublishedHandler constructs a handler wired to the provided service.
func NewSetNewsPublishedHandler(service news.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SetNewsPublishedCommand]) *SetNewsPublishedHandler {
	exec := func(ctx context.Context, msg SetNewsPublishedCommand) error {
		return service.SetPublished(ctx, msg.ID, msg.Published)
	}

	handlerOpts := []commands.HandlerOption[SetNewsPublishedCommand]{
		commands.WithLogger[SetNewsPublishedCommand](logger),
		commands.WithOperation[SetNewsPublishedCommand]("news.set_published"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetNewsPublishedHandler{
		inner: commands.NewHandler[SetNewsPublishedCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SetNewsPublishedCommand].Execute.
func (h *SetNewsPublishedHandler) Execute(ctx context.Context, msg SetNewsPublishedCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Handlers bundles the four persist handlers the dashboard needs.
type Handlers struct {
	Create       *CreateNewsHandler
	Update       *UpdateNewsHandler
	Delete       *DeleteNewsHandler
	SetPublished *SetNewsPublishedHandler
}

// NewHandlers wires every news command handler against the same service and
// logger provider.
func NewHandlers(service news.Service, provider interfaces.LoggerProvider) *Handlers {
	logger := commands.CommandLogger(provider, "news")
	return &Handlers{
		Create:       NewCreateNewsHandler(service, logger),
		Update:       NewUpdateNewsHandler(service, logger),
		Delete:       NewDeleteNewsHandler(service, logger),
		SetPublished: NewSetNewsPublishedHandler(service, logger),
	}
}
