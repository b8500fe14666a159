package lsp

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwtly10/litweave"
)

// ShadowWorkspace manages the shadow previews of open scripts: converted
// documents written under a temp root mirroring the source tree, so
// editors can live-preview the literate output.
type ShadowWorkspace struct {
	root string
	// output extension for shadow files, including the dot, e.g. ".Rmd"
	ext string
}

func NewShadowWorkspace(root string, format litweave.Format) *ShadowWorkspace {
	return &ShadowWorkspace{
		root: root,
		ext:  "." + string(format),
	}
}

// PathFor returns the shadow path for a source script, mirroring the real
// file path under the shadow root.
//
// /Users/me/project/analysis.R -> <root>/Users/me/project/analysis.R.Rmd
func (w *ShadowWorkspace) PathFor(srcPath string) string {
	return filepath.Join(
		w.root,
		filepath.Dir(srcPath),
		filepath.Base(srcPath)+w.ext,
	)
}

// Root returns the root directory for shadow files
func (w *ShadowWorkspace) Root() string {
	return w.root
}

// Cleanup removes all shadow files under the root
func (w *ShadowWorkspace) Cleanup() error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("error accessing path", "path", path, "error", err)
			return nil
		}

		if !d.IsDir() && strings.HasSuffix(d.Name(), w.ext) {
			if err := os.Remove(path); err != nil {
				slog.Warn("failed to remove shadow file", "path", path, "error", err)
			} else {
				slog.Debug("removed shadow file", "path", path)
			}
		}
		return nil
	})
}
