package litweave

import (
	"path/filepath"
	"strings"
)

// ResolveOutputPath determines the output document path from the input
// script path: the source extension is replaced with the target format's,
// e.g. script.R -> script.Rmd.
func ResolveOutputPath(srcPath string, format Format) string {
	return strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + "." + string(format)
}

func MustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	return abs
}
