package litweave

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// optionMarker matches the recognized chunk option forms at the start of
// a code block: #+ or #- (any length of the # run), a run of four or
// more dashes optionally preceded by a # run, or @knitr.
var optionMarker = regexp.MustCompile(`^(#+[+-]|#*[ \t]*-{4,}|#*[ \t]*@knitr)[ \t]*`)

// documentClass detects an existing document class declaration when
// finalizing LaTeX-oriented output.
var documentClass = regexp.MustCompile(`^\s*\\documentclass`)

// Renderer turns a parsed Document into output lines for one target
// format. Every format-specific token comes from the Pattern table, so
// the rendering logic itself is format-agnostic.
type Renderer struct {
	format Format
	pat    Pattern
	doc    *regexp.Regexp

	// chunkOpen is the full shape of a chunk header line for the active
	// format. A code block whose first line does not match it gets a
	// default header synthesized.
	chunkOpen *regexp.Regexp
}

// NewRenderer compiles a renderer for the format and documentation
// pattern in opts. Zero-valued fields take the package defaults.
func NewRenderer(opts Options) (*Renderer, error) {
	opts = opts.WithDefaults()

	pat, ok := PatternFor(opts.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(opts.Format))
	}
	doc, err := regexp.Compile(opts.Doc)
	if err != nil {
		return nil, fmt.Errorf("documentation pattern: %w", err)
	}
	open := regexp.MustCompile(`^` + regexp.QuoteMeta(pat.ChunkOpen) + `.*` + regexp.QuoteMeta(pat.ChunkOpenClose) + `$`)

	return &Renderer{format: opts.Format, pat: pat, doc: doc, chunkOpen: open}, nil
}

// Render renders the document's blocks in order and finalizes the
// output: LaTeX-oriented formats gain a minimal preamble and postamble
// when no document class is declared anywhere.
func (r *Renderer) Render(doc *Document) []string {
	var out []string
	for _, b := range doc.Blocks {
		switch b.Kind {
		case Documentation:
			out = append(out, r.renderDoc(b)...)
		case Code:
			out = append(out, r.renderCode(b)...)
		}
	}
	out = r.finalize(out)

	slog.Debug("rendered document", "source", doc.Metadata.Source, "format", string(r.format), "lines", len(out))
	return out
}

// renderDoc emits a documentation block: the leftmost documentation
// marker match is removed once per line, the rest stays verbatim.
func (r *Renderer) renderDoc(b Block) []string {
	out := make([]string, len(b.Lines))
	for i, ln := range b.Lines {
		out[i] = stripFirst(r.doc, ln.Text)
	}
	return out
}

// renderCode emits a code block as a chunk: blank edges trimmed, an
// option line rewritten into (or a default synthesized as) the chunk
// header, the whole wrapped in the format's chunk tokens and one blank
// line on each side. A block that trims to nothing is dropped.
func (r *Renderer) renderCode(b Block) []string {
	code := trimBlankEnds(b.Text())
	if len(code) == 0 {
		slog.Debug("dropping empty code block", "start", b.Start(), "end", b.End())
		return nil
	}

	if m := optionMarker.FindString(code[0]); m != "" {
		opts := strings.TrimSpace(strings.TrimRight(code[0][len(m):], "- \t"))
		code[0] = r.pat.ChunkOpen + opts + r.pat.ChunkOpenClose
	}
	if !r.chunkOpen.MatchString(code[0]) {
		code = append([]string{r.pat.ChunkOpen + r.pat.ChunkOpenClose}, code...)
	}

	out := make([]string, 0, len(code)+3)
	out = append(out, "")
	out = append(out, code...)
	out = append(out, r.pat.ChunkClose, "")
	return out
}

func (r *Renderer) finalize(lines []string) []string {
	if !r.format.needsDocumentClass() {
		return lines
	}
	for _, ln := range lines {
		if documentClass.MatchString(ln) {
			return lines
		}
	}

	out := make([]string, 0, len(lines)+3)
	out = append(out, `\documentclass{article}`, `\begin{document}`)
	out = append(out, lines...)
	out = append(out, `\end{document}`)
	return out
}

// stripFirst removes the leftmost match of re from s, once.
func stripFirst(re *regexp.Regexp, s string) string {
	if loc := re.FindStringIndex(s); loc != nil {
		return s[:loc[0]] + s[loc[1]:]
	}
	return s
}

// trimBlankEnds drops leading and trailing blank (empty or
// whitespace-only) lines.
func trimBlankEnds(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
