package news

// RecordSchema documents the JSON shape enforced for persisted news
// documents. Snapshot mapping validates inbound documents against it and
// skips those that do not conform.
var RecordSchema = map[string]any{
	"type":     "object",
	"required": []any{"title", "excerpt", "category", "published"},
	"properties": map[string]any{
		"id":   map[string]any{"type": "string"},
		"slug": map[string]any{"type": "string"},
		"title": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"excerpt": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"category": map[string]any{
			"type": "string",
			"enum": []any{"announcement", "event", "emergency", "results", "maintenance"},
		},
		"date":          map[string]any{"type": "string"},
		"featuredImage": map[string]any{"type": "string"},
		"images": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"content": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/block"},
		},
		"published": map[string]any{"type": "boolean"},
		"createdAt": map[string]any{"type": "string"},
		"updatedAt": map[string]any{"type": "string"},
	},
	"additionalProperties": true,
	"$defs": map[string]any{
		"block": map[string]any{
			"type":     "object",
			"required": []any{"id", "type", "content"},
			"properties": map[string]any{
				"id": map[string]any{"type": "string"},
				"type": map[string]any{
					"type": "string",
					"enum": []any{"text", "image"},
				},
				"content": map[string]any{"type": "string"},
			},
		},
	},
}
