package litweave

// Document represents a parsed source script, split into documentation
// and code blocks, and any other required metadata about the source file
type Document struct {
	// Metadata about the source file
	Metadata MetaData
	// The classified blocks, in source order. Together they partition the
	// post-comment-strip line sequence: no gaps, no overlaps, no reordering.
	Blocks []Block
}

type MetaData struct {
	// The source file path. Empty when the input came from raw text.
	Source string
}

// Line is a single input line together with its 1-based position in the
// source. Lines are value-like: stages replace them rather than share them.
type Line struct {
	N    int
	Text string
}

// BlockKind tells documentation apart from code. It is a dedicated
// enumeration rather than a bool so the segmenter stays legible if a
// third line kind is ever needed.
type BlockKind int

const (
	Documentation BlockKind = iota
	Code
)

func (k BlockKind) String() string {
	switch k {
	case Documentation:
		return "documentation"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// Block is a maximal run of consecutive same-kind lines.
type Block struct {
	Kind  BlockKind
	Lines []Line
}

// Start returns the 1-based source line of the first member line.
func (b Block) Start() int {
	if len(b.Lines) == 0 {
		return 0
	}
	return b.Lines[0].N
}

// End returns the 1-based source line of the last member line.
func (b Block) End() int {
	if len(b.Lines) == 0 {
		return 0
	}
	return b.Lines[len(b.Lines)-1].N
}

// Text returns the block's member line texts in order.
func (b Block) Text() []string {
	out := make([]string, len(b.Lines))
	for i, ln := range b.Lines {
		out[i] = ln.Text
	}
	return out
}
