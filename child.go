package litweave

import (
	"fmt"
	"os"
)

// Executor runs a nested script directly. Callers supply one for the
// case where a child script is reached outside an active conversion;
// litweave itself never executes code.
type Executor interface {
	Execute(path string) (string, error)
}

// Session is the run state of one active conversion. It is passed down
// the call chain explicitly, so nested and parallel conversions stay
// independent of each other. A nil *Session means no conversion is
// active.
type Session struct {
	converter *Converter
}

// NewSession starts a conversion session with opts.
func NewSession(opts Options) (*Session, error) {
	conv, err := NewConverter(opts)
	if err != nil {
		return nil, err
	}
	return &Session{converter: conv}, nil
}

// SessionForMode starts a session for an ambient rendering-mode
// identifier, e.g. "markdown" when a surrounding render run targets
// markdown output. Unknown modes report ErrUnsupportedFormat.
func SessionForMode(mode string, opts Options) (*Session, error) {
	f, err := FormatForMode(mode)
	if err != nil {
		return nil, err
	}
	opts.Format = f
	return NewSession(opts)
}

// Child handles a nested script. Inside an active session the script is
// converted with the session's options and the rendered text returned
// for embedding in the surrounding document. Outside a session the
// script is handed to exec to run as-is, without conversion.
func (s *Session) Child(path string, exec Executor) (string, error) {
	if s == nil {
		if exec == nil {
			return "", fmt.Errorf("no executor to run %s outside a conversion", path)
		}
		return exec.Execute(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening child script: %w", err)
	}
	defer f.Close()

	lines, err := s.converter.Convert(f, MetaData{Source: path})
	if err != nil {
		return "", fmt.Errorf("converting child script %s: %w", path, err)
	}
	return JoinLines(lines), nil
}
