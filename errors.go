package litweave

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat reports a format name (or ambient rendering mode)
// outside the supported set. Wrapped errors carry the offending name.
var ErrUnsupportedFormat = errors.New("unsupported format")

// MalformedCommentError reports comment delimiters that do not pair up.
// Conversion cannot continue: with unbalanced delimiters the span
// boundaries cannot be inferred.
type MalformedCommentError struct {
	// Starts and Ends hold the 1-based line numbers of every line
	// matching the start and end delimiter pattern, in source order.
	Starts []int
	Ends   []int
}

func (e *MalformedCommentError) Error() string {
	return fmt.Sprintf("comments must occur in matched start/end pairs: %d start delimiter(s), %d end delimiter(s)",
		len(e.Starts), len(e.Ends))
}

// UnmatchedLine returns the 1-based line of the first delimiter left
// without a partner under positional pairing, or 0 when balanced.
func (e *MalformedCommentError) UnmatchedLine() int {
	if len(e.Starts) > len(e.Ends) {
		return e.Starts[len(e.Ends)]
	}
	if len(e.Ends) > len(e.Starts) {
		return e.Ends[len(e.Starts)]
	}
	return 0
}
