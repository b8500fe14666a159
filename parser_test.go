package litweave

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanParseScript(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		input   string
		blocks  []Block
		wantErr bool
	}{
		{
			name:  "test parse basic spin script",
			input: "#' hello\n1+1\n#' bye",
			blocks: []Block{
				{Kind: Documentation, Lines: []Line{{N: 1, Text: "#' hello"}}},
				{Kind: Code, Lines: []Line{{N: 2, Text: "1+1"}}},
				{Kind: Documentation, Lines: []Line{{N: 3, Text: "#' bye"}}},
			},
		},
		{
			name:  "test maximal runs are merged",
			input: "#' one\n#' two\nx <- 1\ny <- 2",
			blocks: []Block{
				{Kind: Documentation, Lines: []Line{{N: 1, Text: "#' one"}, {N: 2, Text: "#' two"}}},
				{Kind: Code, Lines: []Line{{N: 3, Text: "x <- 1"}, {N: 4, Text: "y <- 2"}}},
			},
		},
		{
			name:  "test documentation only input",
			input: "#' just prose\n#' nothing else",
			blocks: []Block{
				{Kind: Documentation, Lines: []Line{{N: 1, Text: "#' just prose"}, {N: 2, Text: "#' nothing else"}}},
			},
		},
		{
			name:  "test code only input",
			input: "x <- 1\nplot(x)",
			blocks: []Block{
				{Kind: Code, Lines: []Line{{N: 1, Text: "x <- 1"}, {N: 2, Text: "plot(x)"}}},
			},
		},
		{
			name:   "test empty input",
			input:  "",
			blocks: nil,
		},
		{
			name:  "test inline expression becomes documentation",
			opts:  Options{Format: FormatRnw},
			input: "x <- 1\n((x+1))\ny <- 2",
			blocks: []Block{
				{Kind: Code, Lines: []Line{{N: 1, Text: "x <- 1"}}},
				{Kind: Documentation, Lines: []Line{{N: 2, Text: `\Sexpr{x+1}`}}},
				{Kind: Code, Lines: []Line{{N: 3, Text: "y <- 2"}}},
			},
		},
		{
			name:  "test partial inline marker stays code",
			input: "foo ((x)) bar\n((x)) trailing",
			blocks: []Block{
				{Kind: Code, Lines: []Line{{N: 1, Text: "foo ((x)) bar"}, {N: 2, Text: "((x)) trailing"}}},
			},
		},
		{
			name:  "test comment span is removed",
			input: "#' kept\n# /* begin\nhidden\n# */\nx <- 1",
			blocks: []Block{
				{Kind: Documentation, Lines: []Line{{N: 1, Text: "#' kept"}}},
				{Kind: Code, Lines: []Line{{N: 5, Text: "x <- 1"}}},
			},
		},
		{
			name:    "test mismatched comment delimiters",
			input:   "# /* one\n# /* two\nx\n# */",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewParser(tc.opts)
			require.NoError(t, err)

			d, err := p.Parse(strings.NewReader(tc.input), MetaData{Source: "test.R"})
			if tc.wantErr {
				require.Error(t, err)
				var mce *MalformedCommentError
				require.ErrorAs(t, err, &mce)
				return
			}
			require.NoError(t, err)

			require.Equal(t, tc.blocks, d.Blocks)
			require.Equal(t, "test.R", d.Metadata.Source)
		})
	}
}

func TestMalformedCommentErrorDetail(t *testing.T) {
	p, err := NewParser(Options{})
	require.NoError(t, err)

	// two starts, one end: the second start (line 3) has no partner
	_, err = p.Parse(strings.NewReader("x\n# /* a\n# /* b\ny\n# */"), MetaData{})
	require.Error(t, err)

	var mce *MalformedCommentError
	require.ErrorAs(t, err, &mce)
	require.Equal(t, []int{2, 3}, mce.Starts)
	require.Equal(t, []int{5}, mce.Ends)
	require.Equal(t, 3, mce.UnmatchedLine())
	require.Contains(t, mce.Error(), "matched start/end pairs")
}

func TestStripCommentsIsIdempotent(t *testing.T) {
	p, err := NewParser(Options{})
	require.NoError(t, err)

	lines := []Line{
		{N: 1, Text: "#' prose"},
		{N: 2, Text: "# /* notes"},
		{N: 3, Text: "scratch"},
		{N: 4, Text: "# */"},
		{N: 5, Text: "x <- 1"},
	}

	once, err := p.stripComments(lines)
	require.NoError(t, err)
	require.Equal(t, []Line{{N: 1, Text: "#' prose"}, {N: 5, Text: "x <- 1"}}, once)

	// no matches remain, so a second pass is a no-op
	twice, err := p.stripComments(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestStripCommentsDeduplicatesOverlap(t *testing.T) {
	p, err := NewParser(Options{})
	require.NoError(t, err)

	// positional pairing: start 1 pairs with end 3, start 2 with end 5.
	// the spans [1..3] and [2..5] overlap on lines 2 and 3.
	lines := []Line{
		{N: 1, Text: "# /* a"},
		{N: 2, Text: "# /* b"},
		{N: 3, Text: "# */"},
		{N: 4, Text: "between"},
		{N: 5, Text: "# */"},
		{N: 6, Text: "x <- 1"},
	}

	got, err := p.stripComments(lines)
	require.NoError(t, err)
	require.Equal(t, []Line{{N: 6, Text: "x <- 1"}}, got)
}

// Concatenating every block's member lines must reproduce the
// post-comment-strip line sequence exactly: no gaps, no overlaps, no
// reordering.
func TestBlocksPartitionInput(t *testing.T) {
	input := strings.Join([]string{
		"#' intro",
		"#' more prose",
		"x <- rnorm(10)",
		"",
		"#+ named, echo=FALSE",
		"plot(x)",
		"#' wrap up",
		"mean(x)",
	}, "\n")

	p, err := NewParser(Options{})
	require.NoError(t, err)

	d, err := p.Parse(strings.NewReader(input), MetaData{})
	require.NoError(t, err)

	var joined []string
	lastN := 0
	for _, b := range d.Blocks {
		for _, ln := range b.Lines {
			require.Greater(t, ln.N, lastN, "line numbers must be strictly increasing across blocks")
			lastN = ln.N
			joined = append(joined, ln.Text)
		}
	}
	require.Equal(t, strings.Split(input, "\n"), joined)
}

func TestInlineRewritePerFormat(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatRmd, "`r x+1`"},
		{FormatRnw, `\Sexpr{x+1}`},
		{FormatRhtml, "<!--rinline x+1 -->"},
		{FormatRtex, `\rinline{x+1}`},
		{FormatRrst, ":r:`x+1`"},
	}

	for _, tc := range tests {
		t.Run(string(tc.format), func(t *testing.T) {
			p, err := NewParser(Options{Format: tc.format})
			require.NoError(t, err)

			d, err := p.Parse(strings.NewReader("((x+1))"), MetaData{})
			require.NoError(t, err)

			require.Len(t, d.Blocks, 1)
			require.Equal(t, Documentation, d.Blocks[0].Kind)
			require.Equal(t, tc.want, d.Blocks[0].Lines[0].Text)
		})
	}
}

func TestNewParserRejectsBadPatterns(t *testing.T) {
	_, err := NewParser(Options{Doc: "(["})
	require.Error(t, err)

	_, err = NewParser(Options{Format: "Docx"})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
