package form_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/campuskit/go-newsdesk/blocks"
	"github.com/campuskit/go-newsdesk/form"
	"github.com/campuskit/go-newsdesk/internal/domain"
	"github.com/campuskit/go-newsdesk/news"
)

type fakeBlobStore struct {
	mu      sync.Mutex
	calls   int
	err     error
	release chan struct{}
}

func (f *fakeBlobStore) Upload(ctx context.Context, path string, data []byte) (string, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	release := f.release
	err := f.err
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://cdn.example.edu/news/%d-%s", n, path), nil
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.September, 1, 10, 30, 0, 0, time.UTC)
	}
}

func TestControllerOpenForCreateDefaults(t *testing.T) {
	ctrl := form.NewController(&fakeBlobStore{}, form.WithClock(fixedClock()))

	if got := ctrl.Mode(); got != form.ModeClosed {
		t.Fatalf("expected closed controller, got %q", got)
	}

	ctrl.OpenForCreate()

	if got := ctrl.Mode(); got != form.ModeCreating {
		t.Fatalf("expected creating mode, got %q", got)
	}
	draft := ctrl.Draft()
	if draft.Date != "2025-09-01" {
		t.Fatalf("expected today's date seeded, got %q", draft.Date)
	}
	if draft.Category != domain.CategoryAnnouncement {
		t.Fatalf("expected announcement default, got %q", draft.Category)
	}
	if draft.Published {
		t.Fatalf("expected fresh drafts to start unpublished")
	}
}

func TestControllerOpenForEditSeedsDraft(t *testing.T) {
	record := &news.Record{
		ID:       "news-1",
		Title:    "Library hours",
		Excerpt:  "Extended for exams",
		Category: domain.CategoryEvent,
		Date:     "2025-05-02",
		Images:   []string{"https://img/one.jpg"},
		Content: []blocks.Block{
			{ID: "img-0", Kind: blocks.KindImage, Body: "https://img/one.jpg"},
			{ID: "t1", Kind: blocks.KindText, Body: "Open until midnight."},
		},
		Published: true,
	}

	ctrl := form.NewController(&fakeBlobStore{})
	ctrl.OpenForEdit(record)

	if got := ctrl.Mode(); got != form.ModeEditing {
		t.Fatalf("expected editing mode, got %q", got)
	}
	if got := ctrl.EditingID(); got != "news-1" {
		t.Fatalf("expected editing id news-1, got %q", got)
	}
	draft := ctrl.Draft()
	if len(draft.Images) != 1 || draft.Images[0] != "https://img/one.jpg" {
		t.Fatalf("expected gallery seeded from content, got %v", draft.Images)
	}
	text := ctrl.TextBlocks()
	if len(text) != 1 || text[0].Body != "Open until midnight." {
		t.Fatalf("expected one text block seeded, got %v", text)
	}
}

func TestControllerSubmitWithoutDraft(t *testing.T) {
	ctrl := form.NewController(&fakeBlobStore{})

	if _, err := ctrl.Submit(); !errors.Is(err, form.ErrNoOpenDraft) {
		t.Fatalf("expected ErrNoOpenDraft, got %v", err)
	}
}

func TestControllerSubmitValidationFailureKeepsState(t *testing.T) {
	ctrl := form.NewController(&fakeBlobStore{})
	ctrl.OpenForCreate()
	ctrl.SetTitle("Rentrée")
	ctrl.SetExcerpt("Info")

	effect, err := ctrl.Submit()
	if !errors.Is(err, news.ErrMissingImage) {
		t.Fatalf("expected missing image error, got %v", err)
	}
	if effect != nil {
		t.Fatalf("expected no effect on validation failure, got %v", effect)
	}
	if got := ctrl.Mode(); got != form.ModeCreating {
		t.Fatalf("expected controller to stay in creating mode, got %q", got)
	}
	draft := ctrl.Draft()
	if draft.Title != "Rentrée" || draft.Excerpt != "Info" {
		t.Fatalf("expected draft preserved after failed submit, got %+v", draft)
	}
}

func TestControllerSubmitCreate(t *testing.T) {
	ctrl := form.NewController(&fakeBlobStore{}, form.WithClock(fixedClock()))
	ctrl.OpenForCreate()
	ctrl.SetTitle("Campus shuttle update")
	ctrl.SetExcerpt("New evening loop")
	ctrl.SetCategory(domain.CategoryEvent)
	if err := ctrl.AddImageURL("https://img/shuttle.jpg"); err != nil {
		t.Fatalf("add image: %v", err)
	}
	if _, err := ctrl.AddTextBlock("Runs every 20 minutes."); err != nil {
		t.Fatalf("add text block: %v", err)
	}

	effect, err := ctrl.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	create, ok := effect.(form.CreateRequested)
	if !ok {
		t.Fatalf("expected CreateRequested, got %T", effect)
	}
	if create.Record.FeaturedImage != "https://img/shuttle.jpg" {
		t.Fatalf("expected featured image defaulted, got %q", create.Record.FeaturedImage)
	}
	if len(create.Record.Content) != 2 {
		t.Fatalf("expected flattened content of 2 blocks, got %v", create.Record.Content)
	}
	if create.Record.Content[0].ID != "img-0" {
		t.Fatalf("expected gallery flattened first, got %q", create.Record.Content[0].ID)
	}
	if got := ctrl.Mode(); got != form.ModeClosed {
		t.Fatalf("expected controller closed after submit, got %q", got)
	}
}

func TestControllerSubmitUpdateCarriesID(t *testing.T) {
	record := &news.Record{
		ID:      "news-9",
		Title:   "Exam schedule",
		Excerpt: "Posted",
		Date:    "2025-06-01",
		Images:  []string{"https://img/exam.jpg"},
		Content: []blocks.Block{
			{ID: "img-0", Kind: blocks.KindImage, Body: "https://img/exam.jpg"},
		},
	}

	ctrl := form.NewController(&fakeBlobStore{})
	ctrl.OpenForEdit(record)
	ctrl.SetTitle("Exam schedule (revised)")

	effect, err := ctrl.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	update, ok := effect.(form.UpdateRequested)
	if !ok {
		t.Fatalf("expected UpdateRequested, got %T", effect)
	}
	if update.ID != "news-9" || update.Record.ID != "news-9" {
		t.Fatalf("expected update to carry record id, got %q / %q", update.ID, update.Record.ID)
	}
	if update.Record.Title != "Exam schedule (revised)" {
		t.Fatalf("expected edited title, got %q", update.Record.Title)
	}
}

func TestControllerCancelDiscardsDraft(t *testing.T) {
	ctrl := form.NewController(&fakeBlobStore{})
	ctrl.OpenForCreate()
	ctrl.SetTitle("Scratch")

	ctrl.Cancel()

	if got := ctrl.Mode(); got != form.ModeClosed {
		t.Fatalf("expected closed after cancel, got %q", got)
	}
	if draft := ctrl.Draft(); draft.Title != "" {
		t.Fatalf("expected draft discarded, got %+v", draft)
	}
}

func TestControllerGalleryCap(t *testing.T) {
	ctrl := form.NewController(&fakeBlobStore{})
	ctrl.OpenForCreate()

	for i := 0; i < news.MaxGalleryImages; i++ {
		if err := ctrl.AddImageURL(fmt.Sprintf("https://img/%d.jpg", i)); err != nil {
			t.Fatalf("add image %d: %v", i, err)
		}
	}

	err := ctrl.AddImageURL("https://img/overflow.jpg")
	if !errors.Is(err, news.ErrImageLimitExceeded) {
		t.Fatalf("expected image limit error, got %v", err)
	}
	var limitErr *news.ImageLimitError
	if !errors.As(err, &limitErr) || limitErr.Limit != news.MaxGalleryImages {
		t.Fatalf("expected ImageLimitError with limit %d, got %v", news.MaxGalleryImages, err)
	}
	if got := len(ctrl.Draft().Images); got != news.MaxGalleryImages {
		t.Fatalf("expected gallery unchanged at %d, got %d", news.MaxGalleryImages, got)
	}
}

func TestControllerUploadImageAppends(t *testing.T) {
	ctrl := form.NewController(&fakeBlobStore{})
	ctrl.OpenForCreate()

	url, err := ctrl.UploadImage(context.Background(), "orientation.jpg", []byte("bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	draft := ctrl.Draft()
	if len(draft.Images) != 1 || draft.Images[0] != url {
		t.Fatalf("expected uploaded url appended, got %v", draft.Images)
	}
}

func TestControllerUploadImageRejectedBeforeUpload(t *testing.T) {
	store := &fakeBlobStore{}
	ctrl := form.NewController(store, form.WithImageLimit(1))
	ctrl.OpenForCreate()
	if err := ctrl.AddImageURL("https://img/full.jpg"); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	_, err := ctrl.UploadImage(context.Background(), "extra.jpg", []byte("bytes"))
	if !errors.Is(err, news.ErrImageLimitExceeded) {
		t.Fatalf("expected image limit error, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("expected blob store untouched when gallery is full, got %d calls", store.calls)
	}
}

func TestControllerUploadImageWrapsStoreError(t *testing.T) {
	store := &fakeBlobStore{err: errors.New("disk full")}
	ctrl := form.NewController(store)
	ctrl.OpenForCreate()

	_, err := ctrl.UploadImage(context.Background(), "a.jpg", []byte("bytes"))
	if !errors.Is(err, news.ErrUpload) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if got := len(ctrl.Draft().Images); got != 0 {
		t.Fatalf("expected gallery untouched on upload failure, got %d entries", got)
	}
}

func TestControllerStaleUploadDiscarded(t *testing.T) {
	store := &fakeBlobStore{release: make(chan struct{})}
	ctrl := form.NewController(store)
	ctrl.OpenForCreate()

	type result struct {
		url string
		err error
	}
	done := make(chan result, 1)
	go func() {
		url, err := ctrl.UploadImage(context.Background(), "slow.jpg", []byte("bytes"))
		done <- result{url: url, err: err}
	}()

	// Close the draft while the upload is still in flight, then open a new
	// one. The completion targets the old generation and must not land in
	// the fresh draft.
	waitForCalls(t, store, 1)
	ctrl.Cancel()
	ctrl.OpenForCreate()
	close(store.release)

	res := <-done
	if !errors.Is(res.err, form.ErrUploadDiscarded) {
		t.Fatalf("expected discarded upload, got %v", res.err)
	}
	if got := len(ctrl.Draft().Images); got != 0 {
		t.Fatalf("expected fresh draft untouched by stale upload, got %d images", got)
	}
}

func waitForCalls(t *testing.T, store *fakeBlobStore, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		store.mu.Lock()
		calls := store.calls
		store.mu.Unlock()
		if calls >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d blob store calls", want)
}
