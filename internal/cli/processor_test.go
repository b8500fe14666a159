package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwtly10/litweave/internal/transformer"
)

func writeScript(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#' prose\n1+1\n"), 0644))
	return path
}

func TestProcessSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "script.R")

	p, err := NewProcessor(transformer.TransformOptions{NoBackup: true}, nil)
	require.NoError(t, err)

	results, err := p.ProcessPath(path)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.FileExists(t, filepath.Join(dir, "script.Rmd"))
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a.R")
	writeScript(t, dir, "sub/b.r")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644))

	p, err := NewProcessor(transformer.TransformOptions{NoBackup: true}, nil)
	require.NoError(t, err)

	results, err := p.ProcessPath(dir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.FileExists(t, filepath.Join(dir, "a.Rmd"))
	require.FileExists(t, filepath.Join(dir, "sub", "b.Rmd"))
}

func TestProcessDirectoryHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "keep.R")
	writeScript(t, dir, "vendor/skip.R")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("vendor/\n"), 0644))

	p, err := NewProcessor(transformer.TransformOptions{NoBackup: true}, nil)
	require.NoError(t, err)

	results, err := p.ProcessPath(dir)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.FileExists(t, filepath.Join(dir, "keep.Rmd"))
	require.NoFileExists(t, filepath.Join(dir, "vendor", "skip.Rmd"))
}

func TestProcessDirectoryNoScripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("nothing here"), 0644))

	p, err := NewProcessor(transformer.TransformOptions{}, nil)
	require.NoError(t, err)

	_, err = p.ProcessPath(dir)
	require.Error(t, err)
}

func TestProcessFileWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("print(1)"), 0644))

	p, err := NewProcessor(transformer.TransformOptions{}, nil)
	require.NoError(t, err)

	_, err = p.ProcessPath(path)
	require.Error(t, err)
}
