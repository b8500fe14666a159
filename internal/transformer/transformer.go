package transformer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwtly10/litweave"
)

// DocRenderer compiles a converted document into a final artifact. The
// core never renders itself; rendering failures propagate to the caller
// unchanged.
type DocRenderer interface {
	RenderDocument(text string, format litweave.Format) (string, error)
}

type TransformOptions struct {
	// Conversion options for the underlying converter
	Convert litweave.Options
	// If true, the converted document is additionally rendered to an artifact
	Render bool
	// If true, the intermediate document is kept after rendering
	Precious bool
	// If true, no backup will be created before overwriting an existing output
	NoBackup bool
}

func (t *TransformOptions) Pretty() string {
	return fmt.Sprintf("format=%s render=%s precious=%s backup=%s",
		t.Convert.WithDefaults().Format,
		boolToText(t.Render),
		boolToText(t.Precious),
		boolToText(!t.NoBackup))
}

func boolToText(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type Transformer struct {
	converter *litweave.Converter
	renderer  DocRenderer
	backup    *litweave.BackupManager

	format litweave.Format
	opts   TransformOptions
}

// NewTransformer creates a new Transformer instance with the specified
// options [TransformOptions]. renderer may be nil when opts.Render is unset.
func NewTransformer(opts TransformOptions, renderer DocRenderer) (*Transformer, error) {
	if opts.Render && renderer == nil {
		return nil, fmt.Errorf("render requested but no renderer supplied")
	}

	conv, err := litweave.NewConverter(opts.Convert)
	if err != nil {
		return nil, fmt.Errorf("creating converter: %w", err)
	}

	return &Transformer{
		converter: conv,
		renderer:  renderer,
		backup:    litweave.NewBackupManager(),
		format:    opts.Convert.WithDefaults().Format,
		opts:      opts,
	}, nil
}

type ScriptSource struct {
	Content  io.Reader
	Metadata litweave.MetaData
}

// Transform converts a script into its literate document next to the
// source (script.R -> script.Rmd). With Render set, the document is
// additionally compiled to an artifact (script.html) and the
// intermediate document removed unless Precious.
//
// Returns the absolute path of the written document, or of the artifact
// when rendering.
func (t *Transformer) Transform(input ScriptSource) (string, error) {
	slog.Debug("transforming script", "path", input.Metadata.Source)
	if input.Metadata.Source == "" {
		return "", fmt.Errorf("source metadata is required for transformation")
	}

	text, err := t.convert(input)
	if err != nil {
		return "", err
	}

	docPath := litweave.ResolveOutputPath(input.Metadata.Source, t.format)

	if !t.opts.NoBackup {
		if _, err := t.backup.CreateBackupOf(docPath); err != nil {
			return "", fmt.Errorf("backup error: %w", err)
		}
	}

	if err := writeFile(docPath, text); err != nil {
		return "", err
	}

	if !t.opts.Render {
		return docPath, nil
	}

	artifact, err := t.renderer.RenderDocument(text, t.format)
	if err != nil {
		// rendering failures are not ours to repair
		return "", err
	}

	artifactPath := strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".html"
	if err := writeFile(artifactPath, artifact); err != nil {
		return "", err
	}

	if !t.opts.Precious {
		if err := os.Remove(docPath); err != nil {
			return "", fmt.Errorf("removing intermediate document: %w", err)
		}
		slog.Debug("removed intermediate document", "path", docPath)
	}

	return artifactPath, nil
}

// TransformToPath forces output to a specific path (for lsp shadow files).
// No backup or rendering happens for shadow output.
func (t *Transformer) TransformToPath(input ScriptSource, outputPath string) (string, error) {
	if outputPath == "" {
		return "", fmt.Errorf("output path is required for shadow transformation")
	}

	text, err := t.convert(input)
	if err != nil {
		return "", err
	}

	if err := writeFile(outputPath, text); err != nil {
		return "", err
	}

	return outputPath, nil
}

// TransformText converts raw script text and returns the document text
// without touching the filesystem.
func (t *Transformer) TransformText(text string) (string, error) {
	out, err := t.converter.ConvertText(text)
	if err != nil {
		return "", fmt.Errorf("conversion error: %w", err)
	}
	return out, nil
}

func (t *Transformer) convert(input ScriptSource) (string, error) {
	lines, err := t.converter.Convert(input.Content, input.Metadata)
	if err != nil {
		return "", fmt.Errorf("conversion error: %w", err)
	}
	return litweave.JoinLines(lines), nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if _, err := io.WriteString(out, content); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}
