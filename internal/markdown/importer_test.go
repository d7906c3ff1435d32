package markdown_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/campuskit/go-newsdesk/domain"
	"github.com/campuskit/go-newsdesk/internal/markdown"
)

func fixedClock() time.Time {
	return time.Date(2025, time.September, 1, 10, 30, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("block-%d", n)
	}
}

func newImporter(fsys fstest.MapFS) *markdown.Importer {
	return markdown.NewImporter(fsys,
		markdown.WithClock(fixedClock),
		markdown.WithBlockIDGenerator(sequentialIDs()),
	)
}

func TestImportFileMapsFrontmatter(t *testing.T) {
	fsys := fstest.MapFS{
		"seed/hackathon.md": &fstest.MapFile{Data: []byte(`---
title: Campus Hackathon
excerpt: Sign up before Friday.
category: event
date: "2025-09-12"
featuredImage: https://cdn.example.edu/media/hero.jpg
images:
  - https://cdn.example.edu/media/hero.jpg
  - "  https://cdn.example.edu/media/team.jpg  "
published: true
---
Teams of up to four students.

Prizes announced at the closing
ceremony on Sunday.
`)},
	}

	imported, err := newImporter(fsys).ImportFile(context.Background(), "seed/hackathon.md")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	draft := imported.Draft
	if draft.Title != "Campus Hackathon" {
		t.Fatalf("unexpected title %q", draft.Title)
	}
	if draft.Excerpt != "Sign up before Friday." {
		t.Fatalf("unexpected excerpt %q", draft.Excerpt)
	}
	if draft.Category != domain.CategoryEvent {
		t.Fatalf("unexpected category %q", draft.Category)
	}
	if draft.Date != "2025-09-12" {
		t.Fatalf("unexpected date %q", draft.Date)
	}
	if !draft.Published {
		t.Fatal("expected published draft")
	}
	if len(draft.Images) != 2 || draft.Images[1] != "https://cdn.example.edu/media/team.jpg" {
		t.Fatalf("expected trimmed image list, got %v", draft.Images)
	}

	if len(draft.TextBlocks) != 2 {
		t.Fatalf("expected two paragraphs, got %d", len(draft.TextBlocks))
	}
	if draft.TextBlocks[0].ID != "block-1" || draft.TextBlocks[0].Body != "Teams of up to four students." {
		t.Fatalf("unexpected first block %+v", draft.TextBlocks[0])
	}
	if draft.TextBlocks[1].Body != "Prizes announced at the closing\nceremony on Sunday." {
		t.Fatalf("expected intra-paragraph newline preserved, got %q", draft.TextBlocks[1].Body)
	}
}

func TestImportFileDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"minimal.md": &fstest.MapFile{Data: []byte(`---
title: Library hours
summary: Extended during finals.
---
`)},
	}

	imported, err := newImporter(fsys).ImportFile(context.Background(), "minimal.md")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	draft := imported.Draft
	if draft.Excerpt != "Extended during finals." {
		t.Fatalf("expected summary alias honored, got %q", draft.Excerpt)
	}
	if draft.Category != domain.CategoryAnnouncement {
		t.Fatalf("expected default category, got %q", draft.Category)
	}
	if draft.Date != "2025-09-01" {
		t.Fatalf("expected clock date default, got %q", draft.Date)
	}
	if draft.Published {
		t.Fatal("expected unpublished default")
	}
	if len(draft.TextBlocks) != 0 {
		t.Fatalf("expected no blocks for empty body, got %v", draft.TextBlocks)
	}
}

func TestImportFileRejectsBadMetadata(t *testing.T) {
	importer := newImporter(fstest.MapFS{
		"untitled.md": &fstest.MapFile{Data: []byte("---\nexcerpt: no title\n---\nbody\n")},
		"weather.md":  &fstest.MapFile{Data: []byte("---\ntitle: Forecast\ncategory: weather\n---\n")},
		"baddate.md":  &fstest.MapFile{Data: []byte("---\ntitle: Oops\ndate: \"12/09/2025\"\n---\n")},
	})
	ctx := context.Background()

	if _, err := importer.ImportFile(ctx, "untitled.md"); !errors.Is(err, markdown.ErrTitleMissing) {
		t.Fatalf("expected ErrTitleMissing, got %v", err)
	}
	if _, err := importer.ImportFile(ctx, "weather.md"); !errors.Is(err, domain.ErrCategoryInvalid) {
		t.Fatalf("expected invalid category error, got %v", err)
	}
	if _, err := importer.ImportFile(ctx, "baddate.md"); err == nil {
		t.Fatal("expected date format error")
	}
}

func TestImportDirWalksInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"seed/b-shuttle.md":     &fstest.MapFile{Data: []byte("---\ntitle: Shuttle\n---\n")},
		"seed/a-library.md":     &fstest.MapFile{Data: []byte("---\ntitle: Library\n---\n")},
		"seed/nested/c-demo.md": &fstest.MapFile{Data: []byte("---\ntitle: Demo\n---\n")},
		"seed/ignore/notes.txt": &fstest.MapFile{Data: []byte("plain text")},
		"elsewhere/outside.md":  &fstest.MapFile{Data: []byte("---\ntitle: Outside\n---\n")},
	}

	drafts, err := newImporter(fsys).ImportDir(context.Background(), "seed")
	if err != nil {
		t.Fatalf("import dir: %v", err)
	}

	if len(drafts) != 3 {
		t.Fatalf("expected three drafts, got %d", len(drafts))
	}
	want := []string{"Library", "Shuttle", "Demo"}
	for idx, title := range want {
		if drafts[idx].Draft.Title != title {
			t.Fatalf("expected %q at position %d, got %q", title, idx, drafts[idx].Draft.Title)
		}
	}
}

func TestImportDirStopsOnFirstFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"seed/a-ok.md":  &fstest.MapFile{Data: []byte("---\ntitle: Fine\n---\n")},
		"seed/b-bad.md": &fstest.MapFile{Data: []byte("---\nexcerpt: missing title\n---\n")},
	}

	if _, err := newImporter(fsys).ImportDir(context.Background(), "seed"); !errors.Is(err, markdown.ErrTitleMissing) {
		t.Fatalf("expected ErrTitleMissing, got %v", err)
	}
}
