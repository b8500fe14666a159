package lsp

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sourcegraph/go-lsp"

	"github.com/jwtly10/litweave"
	"github.com/jwtly10/litweave/internal/transformer"
)

type DocumentServiceOptions struct {
	// Transform options for the shadow previews
	Transform transformer.TransformOptions

	// Root directory for shadow files
	ShadowRoot string
}

var DefaultDocumentServiceOptions = DocumentServiceOptions{
	ShadowRoot: filepath.Join(os.TempDir(), "litweave-workspace"),
	Transform: transformer.TransformOptions{
		NoBackup: true,
	},
}

func (o DocumentServiceOptions) Validate() error {
	if o.ShadowRoot == "" {
		return fmt.Errorf("shadow root directory is required")
	}

	return nil
}

// DocumentService handles document conversions and shadow path mappings
type DocumentService struct {
	// Maps shadow URIs to original URIs, which include a mirror of the source file structure
	//
	// shadow_file = file:///tmp/litweave-workspace/Users/me/project/analysis.R.Rmd
	// original    = file:///Users/me/project/analysis.R
	shadowMap   map[string]string
	transformer *transformer.Transformer
	shadow      *ShadowWorkspace
}

func NewDocumentService(opts DocumentServiceOptions) (*DocumentService, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document service options: %w", err)
	}

	t, err := transformer.NewTransformer(opts.Transform, nil)
	if err != nil {
		return nil, err
	}

	format := opts.Transform.Convert.WithDefaults().Format

	d := &DocumentService{
		shadowMap:   make(map[string]string),
		transformer: t,
		shadow:      NewShadowWorkspace(opts.ShadowRoot, format),
	}

	// Cleanup shadow files on GC finalization
	runtime.SetFinalizer(d, func(d *DocumentService) {
		if err := d.CleanupShadowFiles(); err != nil {
			slog.Error("failed to cleanup shadow files", "error", err)
		}
	})

	return d, nil
}

// PreviewDocument converts the buffer text and writes the shadow preview,
// returning the shadow URI
func (s *DocumentService) PreviewDocument(text string, documentURI lsp.DocumentURI) (shadowURI string, err error) {
	fsPath, err := s.URIToPath(documentURI)
	if err != nil {
		return "", fmt.Errorf("invalid document URI: %w", err)
	}

	source := transformer.ScriptSource{
		Content: strings.NewReader(text),
		Metadata: litweave.MetaData{
			Source: fsPath,
		},
	}

	previewPath, err := s.transformer.TransformToPath(source, s.shadow.PathFor(fsPath))
	if err != nil {
		return "", err
	}

	shadowURI = s.PathToURI(previewPath)
	originalURI := string(documentURI)
	s.shadowMap[shadowURI] = originalURI

	slog.Debug("previewed document",
		"original", originalURI,
		"preview", previewPath,
		"shadow", shadowURI,
	)

	return shadowURI, nil
}

// ShadowRoot returns the root directory for shadow files
func (s *DocumentService) ShadowRoot() string {
	return s.shadow.Root()
}

// OriginalURI returns the original document URI for a shadow file
func (s *DocumentService) OriginalURI(shadowURI string) (string, bool) {
	uri, exists := s.shadowMap[shadowURI]
	return uri, exists
}

// ShadowURI returns the shadow URI for an original document URI
func (s *DocumentService) ShadowURI(originalURI string) (string, bool) {
	for shadow, original := range s.shadowMap {
		if original == originalURI {
			return shadow, true
		}
	}
	return "", false
}

// URIToPath converts an LSP URI to a filesystem path
func (s *DocumentService) URIToPath(uri lsp.DocumentURI) (string, error) {
	u, err := url.Parse(string(uri))
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

// PathToURI converts a filesystem path to an LSP URI
func (s *DocumentService) PathToURI(path string) string {
	return "file://" + path
}

// CleanupShadowFiles removes all shadow files
func (s *DocumentService) CleanupShadowFiles() error {
	if s.shadow.Root() != DefaultDocumentServiceOptions.ShadowRoot {
		slog.Info("skipping shadow file cleanup due to user specified", "path", s.shadow.Root())
		return nil
	}

	return s.shadow.Cleanup()
}

// DiagnosticsForError maps a conversion failure to LSP diagnostics.
// A malformed comment span becomes an error diagnostic on the first
// unpaired delimiter line. Returns handled=false for errors that are not
// conversion problems (the caller should propagate those instead).
func DiagnosticsForError(err error) (diags []lsp.Diagnostic, handled bool) {
	if err == nil {
		return []lsp.Diagnostic{}, true
	}

	var mce *litweave.MalformedCommentError
	if errors.As(err, &mce) {
		line := mce.UnmatchedLine()
		if line > 0 {
			line-- // LSP positions are 0-based
		}
		return []lsp.Diagnostic{
			{
				Range: lsp.Range{
					Start: lsp.Position{Line: line, Character: 0},
					End:   lsp.Position{Line: line, Character: 0},
				},
				Severity: lsp.Error,
				Source:   "litweave",
				Message:  mce.Error(),
			},
		}, true
	}

	return nil, false
}
