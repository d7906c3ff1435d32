package blocks

// Kind discriminates the block union. A block never changes kind after
// creation.
type Kind string

const (
	// KindText is a paragraph of authored text.
	KindText Kind = "text"
	// KindImage references an uploaded image by retrieval URL.
	KindImage Kind = "image"
)

// Block is one unit of a news record's body: either a text paragraph or an
// image reference. Body holds the paragraph text for text blocks and the
// retrieval URL for image blocks, matching the persisted document shape.
//
// The ID is a stable reconciliation key used to address blocks in place while
// editing; ordering is strictly the position within the owning sequence.
type Block struct {
	ID   string `json:"id"`
	Kind Kind   `json:"type"`
	Body string `json:"content"`
}

// IsText reports whether the block is a text paragraph.
func (b Block) IsText() bool { return b.Kind == KindText }

// IsImage reports whether the block references an image.
func (b Block) IsImage() bool { return b.Kind == KindImage }
