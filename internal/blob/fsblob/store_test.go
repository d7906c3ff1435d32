package fsblob_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/campuskit/go-newsdesk/internal/blob/fsblob"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("key%05d", n)
	}
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestStore(t *testing.T) (*fsblob.Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := fsblob.New(root, "https://cdn.example.edu", fsblob.WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, root
}

func TestUploadImageProducesThumbnail(t *testing.T) {
	store, root := newTestStore(t)

	result, err := store.UploadWithRenditions(context.Background(), "Campus Fair.png", pngBytes(t, 640, 480))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	wantURL := "https://cdn.example.edu/media/campus-fair-key00001.png"
	if result.URL != wantURL {
		t.Fatalf("expected url %q, got %q", wantURL, result.URL)
	}
	wantThumb := "https://cdn.example.edu/media/thumb/campus-fair-key00001.png"
	if result.ThumbnailURL != wantThumb {
		t.Fatalf("expected thumbnail url %q, got %q", wantThumb, result.ThumbnailURL)
	}

	if _, err := os.Stat(filepath.Join(root, "campus-fair-key00001.png")); err != nil {
		t.Fatalf("expected original on disk: %v", err)
	}
	thumbPath := filepath.Join(root, "thumb", "campus-fair-key00001.png")
	f, err := os.Open(thumbPath)
	if err != nil {
		t.Fatalf("expected thumbnail on disk: %v", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != 320 {
		t.Fatalf("expected 320px wide rendition, got %d", cfg.Width)
	}
}

func TestUploadNonImageSkipsRendition(t *testing.T) {
	store, root := newTestStore(t)

	result, err := store.UploadWithRenditions(context.Background(), "notes.txt", []byte("not an image"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if result.URL == "" {
		t.Fatal("expected retrieval url")
	}
	if result.ThumbnailURL != "" {
		t.Fatalf("expected no thumbnail for text payload, got %q", result.ThumbnailURL)
	}
	if result.Size != int64(len("not an image")) {
		t.Fatalf("expected size recorded, got %d", result.Size)
	}

	entries, err := os.ReadDir(filepath.Join(root, "thumb"))
	if err != nil {
		t.Fatalf("read thumb dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty thumb dir, got %d entries", len(entries))
	}
}

func TestUploadSamePathYieldsUniqueKeys(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Upload(ctx, "banner.png", pngBytes(t, 8, 8))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	second, err := store.Upload(ctx, "banner.png", pngBytes(t, 8, 8))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct urls for repeated uploads, got %q twice", first)
	}
}

func TestUploadEmptyPayload(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Upload(context.Background(), "empty.png", nil); !errors.Is(err, fsblob.ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestUploadHonorsCanceledContext(t *testing.T) {
	store, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Upload(ctx, "banner.png", pngBytes(t, 8, 8)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
