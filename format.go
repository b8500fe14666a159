package litweave

import (
	"fmt"
	"strings"
)

// Format identifies one of the supported target markup dialects.
type Format string

const (
	FormatRmd   Format = "Rmd"
	FormatRnw   Format = "Rnw"
	FormatRhtml Format = "Rhtml"
	FormatRtex  Format = "Rtex"
	FormatRrst  Format = "Rrst"
)

// Pattern holds the four literal tokens that shape how one target format
// renders chunk boundaries and inline references. The renderer is
// format-agnostic: all format-specific behavior lives in this table.
type Pattern struct {
	// ChunkOpen starts a chunk header line, e.g. "```{r " for Rmd.
	ChunkOpen string
	// ChunkOpenClose terminates the chunk header line, e.g. "}" for Rmd.
	// Empty for formats whose header is prefix-only.
	ChunkOpenClose string
	// ChunkClose terminates a chunk, e.g. "```" for Rmd.
	ChunkClose string
	// InlineTemplate is a regexp replacement template with a single $1
	// reference to the captured inline expression.
	InlineTemplate string
}

var patterns = map[Format]Pattern{
	FormatRmd:   {"```{r ", "}", "```", "`r $1`"},
	FormatRnw:   {"<<", ">>=", "@", `\Sexpr{$1}`},
	FormatRhtml: {"<!--begin.rcode ", "", "end.rcode-->", "<!--rinline $1 -->"},
	FormatRtex:  {"% begin.rcode ", "", "% end.rcode", `\rinline{$1}`},
	FormatRrst:  {".. {r ", "}", ".. ..", ":r:`$1`"},
}

// Formats returns the supported formats in a stable order.
func Formats() []Format {
	return []Format{FormatRmd, FormatRnw, FormatRhtml, FormatRtex, FormatRrst}
}

// ResolveFormat maps a format name to its Format, case-insensitively.
// Unknown names report ErrUnsupportedFormat.
func ResolveFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "rmd":
		return FormatRmd, nil
	case "rnw":
		return FormatRnw, nil
	case "rhtml":
		return FormatRhtml, nil
	case "rtex":
		return FormatRtex, nil
	case "rrst":
		return FormatRrst, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatForMode maps an ambient rendering-mode identifier (the output
// mode a surrounding render run was started with) to the format a nested
// conversion should produce. Unknown modes report ErrUnsupportedFormat.
func FormatForMode(mode string) (Format, error) {
	switch strings.ToLower(mode) {
	case "markdown", "md":
		return FormatRmd, nil
	case "latex", "sweave":
		return FormatRnw, nil
	case "html":
		return FormatRhtml, nil
	case "tex":
		return FormatRtex, nil
	case "rst":
		return FormatRrst, nil
	default:
		return "", fmt.Errorf("%w: no format for rendering mode %q", ErrUnsupportedFormat, mode)
	}
}

// PatternFor returns the token set for a format, and whether the format
// is one of the supported five.
func PatternFor(f Format) (Pattern, bool) {
	p, ok := patterns[f]
	return p, ok
}

// needsDocumentClass reports whether the format's output is a standalone
// LaTeX document that must carry a document-class declaration.
func (f Format) needsDocumentClass() bool {
	return f == FormatRnw || f == FormatRtex
}
