// Command example runs the newsdesk module end to end against the in-memory
// store: it seeds drafts from Markdown files when NEWSDESK_CONTENT_DIR is
// set, authors a record through the form editor, publishes it, and prints
// the resulting collection and a rendered preview.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	newsdesk "github.com/campuskit/go-newsdesk"
	"github.com/campuskit/go-newsdesk/news"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("example: %v", err)
	}
}

func run() error {
	// Missing .env files are fine, the defaults below cover everything.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg := newsdesk.DefaultConfig()
	cfg.Logging.Format = "console"
	cfg.Logging.Level = envOr("NEWSDESK_LOG_LEVEL", "info")
	cfg.Features.Uploads = false

	contentDir := os.Getenv("NEWSDESK_CONTENT_DIR")
	if contentDir != "" {
		cfg.Features.Markdown = true
		cfg.Markdown.Enabled = true
		cfg.Markdown.ContentDir = contentDir
	}

	module, err := newsdesk.New(cfg)
	if err != nil {
		return err
	}

	board := module.Dashboard()
	if err := board.Start(ctx); err != nil {
		return err
	}
	defer board.Close()

	if importer := module.Markdown(); importer != nil {
		drafts, err := importer.ImportDir(ctx, ".")
		if err != nil {
			return err
		}
		for _, imported := range drafts {
			record, err := news.Validate(imported.Draft)
			if err != nil {
				return fmt.Errorf("seed %s: %w", imported.Path, err)
			}
			if _, err := module.News().Create(ctx, record); err != nil {
				return err
			}
		}
		fmt.Printf("seeded %d records from %s\n", len(drafts), contentDir)
	}

	board.OpenCreate()
	editor := board.Form()
	editor.SetTitle("Welcome week schedule")
	editor.SetExcerpt("Everything happening on campus this week.")
	if _, err := editor.AddTextBlock("Orientation starts Monday at 9am in the main hall."); err != nil {
		return err
	}
	if err := editor.AddImageURL("https://cdn.example.edu/media/welcome.jpg"); err != nil {
		return err
	}
	if err := board.Save(ctx); err != nil {
		return err
	}

	records := waitForRecords(board.Records, 1)
	fmt.Printf("collection holds %d record(s)\n", len(records))

	welcome := findByTitle(records, "Welcome week schedule")
	if welcome == nil {
		return fmt.Errorf("created record not delivered")
	}

	if err := board.TogglePublish(ctx, welcome.ID); err != nil {
		return err
	}
	waitFor(func() bool {
		record := findByTitle(board.Records(), "Welcome week schedule")
		return record != nil && record.Published
	})

	for _, record := range board.Records() {
		fmt.Printf("- [%s] %s (%s, %s)\n", record.Status(), record.Title, record.Category, record.Date)
	}

	if renderer := module.Preview(); renderer != nil {
		html, err := renderer.RenderRecord(findByTitle(board.Records(), "Welcome week schedule"))
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(html))
	}

	return nil
}

func findByTitle(records []*news.Record, title string) *news.Record {
	for _, record := range records {
		if record.Title == title {
			return record
		}
	}
	return nil
}

func waitForRecords(load func() []*news.Record, min int) []*news.Record {
	var records []*news.Record
	waitFor(func() bool {
		records = load()
		return len(records) >= min
	})
	return records
}

func waitFor(done func() bool) {
	deadline := time.Now().Add(2 * time.Second)
	for !done() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
