package litweave

import (
	"io"
	"strings"
)

// Converter composes the Parser and Renderer into the full pipeline:
// strip comment spans, rewrite inline expressions, classify and segment,
// render blocks, finalize the document.
type Converter struct {
	parser   *Parser
	renderer *Renderer
}

// NewConverter compiles a converter from opts.
func NewConverter(opts Options) (*Converter, error) {
	p, err := NewParser(opts)
	if err != nil {
		return nil, err
	}
	r, err := NewRenderer(opts)
	if err != nil {
		return nil, err
	}
	return &Converter{parser: p, renderer: r}, nil
}

// Convert runs the pipeline over a script and returns the output lines.
func (c *Converter) Convert(r io.Reader, md MetaData) ([]string, error) {
	doc, err := c.parser.Parse(r, md)
	if err != nil {
		return nil, err
	}
	return c.renderer.Render(doc), nil
}

// ConvertText converts raw script text and returns the document text.
func (c *Converter) ConvertText(text string) (string, error) {
	lines, err := c.Convert(strings.NewReader(text), MetaData{})
	if err != nil {
		return "", err
	}
	return JoinLines(lines), nil
}

// JoinLines joins output lines into document text with a trailing
// newline. No lines yield an empty string.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
