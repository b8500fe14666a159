// Package render is the downstream rendering collaborator: it compiles a
// converted literate document into a final artifact. Only Rmd documents
// have a built-in backend; the other formats need an external toolchain
// (Sweave, knitr's HTML/TeX drivers) and report an error instead.
package render

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jwtly10/litweave"
)

// HTML renders Rmd documents to HTML. Inline code references and chunk
// fences pass through as markdown; no code is evaluated.
type HTML struct {
	md goldmark.Markdown
}

func NewHTML() *HTML {
	return &HTML{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// RenderDocument compiles document text in the given format and returns
// the artifact content.
func (h *HTML) RenderDocument(text string, format litweave.Format) (string, error) {
	if format != litweave.FormatRmd {
		return "", fmt.Errorf("no built-in renderer for %s documents, use an external toolchain", format)
	}

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	slog.Debug("rendered document to html", "in_bytes", len(text), "out_bytes", buf.Len())
	return buf.String(), nil
}
