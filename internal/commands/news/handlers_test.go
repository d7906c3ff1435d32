package newscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/campuskit/go-newsdesk/form"
	"github.com/campuskit/go-newsdesk/news"
)

type fakeService struct {
	created   []*news.Record
	updated   map[string]*news.Record
	deleted   []string
	published map[string]bool
	err       error
}

func newFakeService() *fakeService {
	return &fakeService{
		updated:   map[string]*news.Record{},
		published: map[string]bool{},
	}
}

func (f *fakeService) Watch(ctx context.Context) (news.Feed, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeService) Create(ctx context.Context, record *news.Record) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, record)
	return "news-1", nil
}

func (f *fakeService) Update(ctx context.Context, id string, record *news.Record) error {
	if f.err != nil {
		return f.err
	}
	f.updated[id] = record
	return nil
}

func (f *fakeService) SetPublished(ctx context.Context, id string, published bool) error {
	if f.err != nil {
		return f.err
	}
	f.published[id] = published
	return nil
}

func (f *fakeService) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeService) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	return "", errors.New("not implemented")
}

func validRecord() *news.Record {
	return &news.Record{
		Title:   "Shuttle notice",
		Excerpt: "Evening loop added",
		Images:  []string{"https://img/shuttle.jpg"},
	}
}

func TestCreateNewsHandlerDelegates(t *testing.T) {
	svc := newFakeService()
	h := NewCreateNewsHandler(svc, nil)

	err := h.Execute(context.Background(), form.CreateRequested{Record: validRecord()})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(svc.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(svc.created))
	}
}

func TestCreateNewsHandlerRejectsInvalidMessage(t *testing.T) {
	svc := newFakeService()
	h := NewCreateNewsHandler(svc, nil)

	err := h.Execute(context.Background(), form.CreateRequested{})
	if err == nil {
		t.Fatal("expected validation error for nil record")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(svc.created) != 0 {
		t.Fatal("expected service untouched on invalid message")
	}
}

func TestUpdateNewsHandlerDelegates(t *testing.T) {
	svc := newFakeService()
	h := NewUpdateNewsHandler(svc, nil)

	err := h.Execute(context.Background(), form.UpdateRequested{ID: "news-7", Record: validRecord()})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, ok := svc.updated["news-7"]; !ok {
		t.Fatalf("expected update for news-7, got %v", svc.updated)
	}
}

func TestDeleteNewsHandlerRequiresID(t *testing.T) {
	svc := newFakeService()
	h := NewDeleteNewsHandler(svc, nil)

	if err := h.Execute(context.Background(), DeleteNewsCommand{}); err == nil {
		t.Fatal("expected validation error for empty id")
	}
	if err := h.Execute(context.Background(), DeleteNewsCommand{ID: "news-3"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "news-3" {
		t.Fatalf("expected news-3 deleted, got %v", svc.deleted)
	}
}

func TestSetNewsPublishedHandlerDelegates(t *testing.T) {
	svc := newFakeService()
	h := NewSetNewsPublishedHandler(svc, nil)

	if err := h.Execute(context.Background(), SetNewsPublishedCommand{ID: "news-2", Published: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !svc.published["news-2"] {
		t.Fatalf("expected news-2 published, got %v", svc.published)
	}
}

func TestHandlersWrapServiceFailures(t *testing.T) {
	svc := newFakeService()
	svc.err = errors.New("store unavailable")
	h := NewDeleteNewsHandler(svc, nil)

	err := h.Execute(context.Background(), DeleteNewsCommand{ID: "news-3"})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
