package litweave

// Default patterns for a conversion. They follow the common spin-style
// script conventions: documentation lines carry a #' prefix, a chunk
// option line starts with #+, and an inline expression is a line that is
// entirely ((expr)).
var (
	// DefaultDocPattern matches the documentation marker prefix.
	DefaultDocPattern = `^#+'[ ]?`
	// DefaultInlinePattern matches a line that is entirely a
	// double-braced inline expression, capturing the expression text.
	DefaultInlinePattern = `^\(\((.+)\)\)$`
	// DefaultCommentStartPattern and DefaultCommentEndPattern delimit
	// comment spans removed before conversion.
	DefaultCommentStartPattern = `^[# ]*/\*`
	DefaultCommentEndPattern   = `\*/[ ]*$`
)

// Options configures a conversion. The zero value converts to Rmd with
// the default patterns.
type Options struct {
	// Format selects the target markup dialect
	Format Format
	// Doc is the documentation marker pattern
	Doc string
	// Inline is the inline expression pattern. It must contain exactly
	// one capture group referencing the expression text.
	Inline string
	// CommentStart and CommentEnd delimit comment spans: every line from
	// a start match through its paired end match is removed.
	CommentStart string
	CommentEnd   string
}

// WithDefaults returns a copy of o with zero-valued fields filled in and
// the format name normalized (format resolution is case-insensitive).
func (o Options) WithDefaults() Options {
	if o.Format == "" {
		o.Format = FormatRmd
	} else if f, err := ResolveFormat(string(o.Format)); err == nil {
		o.Format = f
	}
	if o.Doc == "" {
		o.Doc = DefaultDocPattern
	}
	if o.Inline == "" {
		o.Inline = DefaultInlinePattern
	}
	if o.CommentStart == "" {
		o.CommentStart = DefaultCommentStartPattern
	}
	if o.CommentEnd == "" {
		o.CommentEnd = DefaultCommentEndPattern
	}
	return o
}
