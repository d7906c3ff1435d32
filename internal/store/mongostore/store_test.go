package mongostore

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/campuskit/go-newsdesk/pkg/interfaces"
)

func TestFromBSONSurfacesID(t *testing.T) {
	raw := bson.M{
		"_id":       "news-1",
		"title":     "Library hours",
		"published": true,
	}

	doc := fromBSON(raw)
	if doc["id"] != "news-1" {
		t.Fatalf("expected _id surfaced as id, got %v", doc["id"])
	}
	if _, found := doc["_id"]; found {
		t.Fatal("expected _id removed from the document body")
	}
	if doc["title"] != "Library hours" {
		t.Fatalf("expected fields preserved, got %v", doc)
	}
}

func TestFromBSONNormalizesContainers(t *testing.T) {
	raw := bson.M{
		"_id":    "news-2",
		"images": bson.A{"https://img/one.jpg", "https://img/two.jpg"},
		"content": bson.A{
			bson.D{
				{Key: "id", Value: "img-0"},
				{Key: "type", Value: "image"},
				{Key: "content", Value: "https://img/one.jpg"},
			},
		},
	}

	doc := fromBSON(raw)
	images, ok := doc["images"].([]any)
	if !ok || len(images) != 2 {
		t.Fatalf("expected bson.A converted to []any, got %T", doc["images"])
	}
	content, ok := doc["content"].([]any)
	if !ok || len(content) != 1 {
		t.Fatalf("expected content converted, got %T", doc["content"])
	}
	block, ok := content[0].(map[string]any)
	if !ok || block["type"] != "image" {
		t.Fatalf("expected bson.D converted to map, got %T %v", content[0], content[0])
	}
}

func TestToBSONCopiesDocument(t *testing.T) {
	doc := interfaces.Document{"title": "Notice"}
	payload := toBSON(doc)
	payload["_id"] = "news-3"

	if _, found := doc["_id"]; found {
		t.Fatal("expected source document untouched")
	}
}
