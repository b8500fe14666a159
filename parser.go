package litweave

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"regexp"
)

// scannerBuf bounds the longest input line the parser accepts.
const scannerBuf = 1024 * 1024

// Parser runs the line-oriented front half of a conversion: comment-span
// stripping, inline-expression rewriting, and classification of the
// remaining lines into documentation and code blocks.
type Parser struct {
	doc          *regexp.Regexp
	inline       *regexp.Regexp
	commentStart *regexp.Regexp
	commentEnd   *regexp.Regexp

	// inlineTemplate is the active format's replacement template for
	// inline expressions, applied during the rewrite pass.
	inlineTemplate string
}

// NewParser compiles the patterns in opts. Zero-valued fields take the
// package defaults.
func NewParser(opts Options) (*Parser, error) {
	opts = opts.WithDefaults()

	pat, ok := PatternFor(opts.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(opts.Format))
	}

	p := &Parser{inlineTemplate: pat.InlineTemplate}
	var err error
	if p.doc, err = regexp.Compile(opts.Doc); err != nil {
		return nil, fmt.Errorf("documentation pattern: %w", err)
	}
	if p.inline, err = regexp.Compile(opts.Inline); err != nil {
		return nil, fmt.Errorf("inline pattern: %w", err)
	}
	if p.commentStart, err = regexp.Compile(opts.CommentStart); err != nil {
		return nil, fmt.Errorf("comment start pattern: %w", err)
	}
	if p.commentEnd, err = regexp.Compile(opts.CommentEnd); err != nil {
		return nil, fmt.Errorf("comment end pattern: %w", err)
	}
	return p, nil
}

// Parse reads a script and produces its Document: comment spans removed,
// inline expressions rewritten, lines grouped into blocks.
func (p *Parser) Parse(r io.Reader, md MetaData) (*Document, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	lines, err = p.stripComments(lines)
	if err != nil {
		return nil, err
	}

	inline := p.rewriteInline(lines)
	blocks := p.segment(lines, inline)

	slog.Debug("parsed document", "source", md.Source, "lines", len(lines), "blocks", len(blocks))

	return &Document{Metadata: md, Blocks: blocks}, nil
}

func readLines(r io.Reader) ([]Line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), scannerBuf)

	var lines []Line
	for n := 1; sc.Scan(); n++ {
		lines = append(lines, Line{N: n, Text: sc.Text()})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

// stripComments removes every span of lines enclosed by a start/end
// delimiter pair. Pairing is positional: the i-th start line pairs with
// the i-th end line. Overlapping spans are deduplicated before removal.
func (p *Parser) stripComments(lines []Line) ([]Line, error) {
	var starts, ends []int
	for i, ln := range lines {
		if p.commentStart.MatchString(ln.Text) {
			starts = append(starts, i)
		}
		if p.commentEnd.MatchString(ln.Text) {
			ends = append(ends, i)
		}
	}

	if len(starts) != len(ends) {
		return nil, &MalformedCommentError{
			Starts: lineNumbers(lines, starts),
			Ends:   lineNumbers(lines, ends),
		}
	}
	if len(starts) == 0 {
		return lines, nil
	}

	drop := make(map[int]struct{})
	for i := range starts {
		lo, hi := starts[i], ends[i]
		if hi < lo {
			lo, hi = hi, lo
		}
		for j := lo; j <= hi; j++ {
			drop[j] = struct{}{}
		}
	}

	kept := make([]Line, 0, len(lines)-len(drop))
	for i, ln := range lines {
		if _, ok := drop[i]; !ok {
			kept = append(kept, ln)
		}
	}

	slog.Debug("stripped comment spans", "spans", len(starts), "removed_lines", len(drop))
	return kept, nil
}

func lineNumbers(lines []Line, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = lines[j].N
	}
	return out
}

// rewriteInline replaces every line that is entirely an inline-expression
// marker with the format's inline template, and returns a flag per line
// marking which were rewritten. Rewritten lines classify as
// documentation: an inline expression is prose-level content that
// happens to be evaluated.
func (p *Parser) rewriteInline(lines []Line) []bool {
	flags := make([]bool, len(lines))
	for i := range lines {
		loc := p.inline.FindStringIndex(lines[i].Text)
		if loc == nil || loc[0] != 0 || loc[1] != len(lines[i].Text) {
			continue
		}
		lines[i].Text = p.inline.ReplaceAllString(lines[i].Text, p.inlineTemplate)
		flags[i] = true
	}
	return flags
}

// segment classifies each line and groups maximal runs of the same kind
// into blocks, in a single forward pass.
func (p *Parser) segment(lines []Line, inline []bool) []Block {
	var blocks []Block
	for i, ln := range lines {
		kind := Code
		if inline[i] || p.doc.MatchString(ln.Text) {
			kind = Documentation
		}
		if n := len(blocks); n > 0 && blocks[n-1].Kind == kind {
			blocks[n-1].Lines = append(blocks[n-1].Lines, ln)
		} else {
			blocks = append(blocks, Block{Kind: kind, Lines: []Line{ln}})
		}
	}
	return blocks
}
