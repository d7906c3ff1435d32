package blocks

import (
	"fmt"

	"github.com/google/uuid"
)

// Sequence is the ordered, editable list of blocks backing the form editor.
// Mutations addressing an absent id are silent no-ops: the block may have been
// removed concurrently by the user, and the original product treats that as
// normal editing flow rather than an error. The choice is applied consistently
// across Update, Remove, and Move.
type Sequence struct {
	blocks []Block
	newID  func() string
}

// SequenceOption configures a Sequence at construction time.
type SequenceOption func(*Sequence)

// WithIDGenerator overrides how fresh block identifiers are minted.
func WithIDGenerator(generator func() string) SequenceOption {
	return func(s *Sequence) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// NewSequence constructs an empty sequence.
func NewSequence(opts ...SequenceOption) *Sequence {
	s := &Sequence{
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSequenceFrom constructs a sequence seeded with existing blocks.
func NewSequenceFrom(existing []Block, opts ...SequenceOption) *Sequence {
	s := NewSequence(opts...)
	s.blocks = append(s.blocks, existing...)
	return s
}

// Append creates a block of the given kind with a fresh unique id, adds it to
// the end of the sequence, and returns it.
func (s *Sequence) Append(kind Kind, body string) Block {
	block := Block{
		ID:   s.newID(),
		Kind: kind,
		Body: body,
	}
	s.blocks = append(s.blocks, block)
	return block
}

// Update replaces the body of the block matching id. Absent ids are ignored.
func (s *Sequence) Update(id string, body string) {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks[i].Body = body
			return
		}
	}
}

// Remove deletes the block matching id. Absent ids are ignored.
func (s *Sequence) Remove(id string) {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			return
		}
	}
}

// Move repositions the block matching id to the given index, clamping the
// index into range. Absent ids are ignored.
func (s *Sequence) Move(id string, index int) {
	from := -1
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.blocks) {
		index = len(s.blocks) - 1
	}
	block := s.blocks[from]
	s.blocks = append(s.blocks[:from], s.blocks[from+1:]...)
	rest := append([]Block{block}, s.blocks[index:]...)
	s.blocks = append(s.blocks[:index], rest...)
}

// Get returns the block matching id.
func (s *Sequence) Get(id string) (Block, bool) {
	for _, block := range s.blocks {
		if block.ID == id {
			return block, true
		}
	}
	return Block{}, false
}

// Len returns the number of blocks in the sequence.
func (s *Sequence) Len() int { return len(s.blocks) }

// Blocks returns a copy of the sequence contents in order.
func (s *Sequence) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Flatten produces the persisted block order from the two editor-side lists:
// every gallery image first, converted to image blocks with ids derived from
// position ("img-0", "img-1", ...), followed by the text-kind entries of text
// in their authored order. Image-kind entries inside text are discarded so an
// image is never counted twice; the two inputs are expected to be
// kind-disjoint by construction.
//
// Flatten is pure and idempotent: repeated flattening of the same gallery with
// its own text output yields an identical sequence, which keeps the persisted
// shape stable across edit/save round trips.
func Flatten(images []string, text []Block) []Block {
	out := make([]Block, 0, len(images)+len(text))
	for i, url := range images {
		out = append(out, Block{
			ID:   imageID(i),
			Kind: KindImage,
			Body: url,
		})
	}
	for _, block := range text {
		if block.IsText() {
			out = append(out, block)
		}
	}
	return out
}

// Split reverses Flatten: it extracts the gallery URLs from image-kind blocks
// and the authored text blocks, each in persisted order. The editor needs the
// two independent lists back when an existing record is opened for editing.
func Split(content []Block) (images []string, text []Block) {
	for _, block := range content {
		switch {
		case block.IsImage():
			images = append(images, block.Body)
		case block.IsText():
			text = append(text, block)
		}
	}
	return images, text
}

func imageID(index int) string {
	return fmt.Sprintf("img-%d", index)
}
