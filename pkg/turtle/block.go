package turtle

import "strings"

// BlockKind identifies a line group of the document.
type BlockKind string

const (
	BlockPrefixes    BlockKind = "prefixes"
	BlockToken       BlockKind = "token"
	BlockShape       BlockKind = "shape"
	BlockEquivalence BlockKind = "equivalence"
)

// Block is an ordered group of output lines.
type Block struct {
	Kind  BlockKind
	Lines []string
}

// IsEmpty reports whether the block contributes no lines.
func (b Block) IsEmpty() bool {
	return len(b.Lines) == 0
}

// String joins the lines with newlines, without a trailing newline.
func (b Block) String() string {
	return strings.Join(b.Lines, "\n")
}
