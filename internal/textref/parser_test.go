package textref

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText_Parenthetical(t *testing.T) {
	p := NewParser()
	refs := p.ParseText("Click the Sign On button (red callout 1) to continue.")

	require.Len(t, refs, 1)
	assert.Equal(t, "red", refs[0].Color)
	assert.Equal(t, "#C00000", refs[0].Hex)
	assert.Equal(t, "callout", refs[0].AnnotationType)
	assert.Equal(t, 1, refs[0].Number)
	assert.Equal(t, 1, refs[0].Line)
	assert.Equal(t, "parenthetical", refs[0].Pattern)
}

func TestParseText_ParentheticalWithoutNumber(t *testing.T) {
	p := NewParser()
	refs := p.ParseText("The balance appears in the area marked (gold highlight).")

	require.Len(t, refs, 1)
	assert.Equal(t, "gold", refs[0].Color)
	assert.Equal(t, "highlight", refs[0].AnnotationType)
	assert.Zero(t, refs[0].Number)
}

func TestParseText_Inline(t *testing.T) {
	p := NewParser()
	refs := p.ParseText("Follow the teal arrow to the transfer menu.")

	require.Len(t, refs, 1)
	assert.Equal(t, "teal", refs[0].Color)
	assert.Equal(t, "arrow", refs[0].AnnotationType)
	assert.Equal(t, "inline", refs[0].Pattern)
}

func TestParseText_NumberFirst(t *testing.T) {
	p := NewParser()
	refs := p.ParseText("Enter your PIN at callout 2 (blue).")

	require.Len(t, refs, 1)
	assert.Equal(t, "blue", refs[0].Color)
	assert.Equal(t, "callout", refs[0].AnnotationType)
	assert.Equal(t, 2, refs[0].Number)
	assert.Equal(t, "number_first", refs[0].Pattern)
}

func TestParseText_CircledNumber(t *testing.T) {
	p := NewParser()
	refs := p.ParseText("Press the red button ① to submit.")

	require.Len(t, refs, 1)
	assert.Equal(t, "red", refs[0].Color)
	assert.Equal(t, "callout", refs[0].AnnotationType)
	assert.Equal(t, 1, refs[0].Number)
	assert.Equal(t, "circled", refs[0].Pattern)

	// Without a preceding color word the circled digit is ignored.
	assert.Empty(t, p.ParseText("Press the button ① to submit."))
}

func TestParseText_CaseInsensitive(t *testing.T) {
	p := NewParser()
	refs := p.ParseText("See the (RED Callout 3) first.")

	require.Len(t, refs, 1)
	assert.Equal(t, "red", refs[0].Color)
	assert.Equal(t, "callout", refs[0].AnnotationType)
}

func TestParseText_FigureContext(t *testing.T) {
	p := NewParser()
	text := "Figure 1\n" +
		"Click the (red callout 1) button.\n" +
		"Figure 2\n" +
		"(blue arrow 2) shows the next step.\n"
	p.ParseText(text)

	expected := p.ExpectedColors()
	require.Len(t, expected, 2)
	assert.Equal(t, map[int]string{1: "red"}, expected[1])
	assert.Equal(t, map[int]string{2: "blue"}, expected[2])
}

func TestParseText_NoFigureContext(t *testing.T) {
	p := NewParser()
	p.ParseText("Click the (red callout 1) button.")

	// A numbered reference outside any figure heading cannot be attributed.
	assert.Empty(t, p.ExpectedColors())
	assert.Empty(t, p.ByFigure())
	assert.Len(t, p.references, 1)
}

func TestParseText_LaterReferenceWins(t *testing.T) {
	p := NewParser()
	text := "Figure 1\n" +
		"The (red callout 1) label.\n" +
		"Correction: see callout 1 (blue).\n"
	p.ParseText(text)

	assert.Equal(t, "blue", p.ExpectedColors()[1][1])
}

func TestParseText_ContextTruncated(t *testing.T) {
	long := "Click the (red callout 1) button"
	for len(long) <= contextLimit {
		long += " and keep reading this very long sentence"
	}

	p := NewParser()
	refs := p.ParseText(long)

	require.Len(t, refs, 1)
	assert.Len(t, refs[0].Context, contextLimit+3)
	assert.Contains(t, refs[0].Context, "...")
}

func TestParseText_ContextTruncationKeepsRunesIntact(t *testing.T) {
	// The circled digit starts one byte before the truncation limit, so a
	// byte-wise cut would split it.
	long := "red " + strings.Repeat("x", 95) + "① plus more text past the limit"

	p := NewParser()
	refs := p.ParseText(long)

	require.Len(t, refs, 1)
	assert.True(t, utf8.ValidString(refs[0].Context))
	assert.NotContains(t, refs[0].Context, "�")
	assert.Contains(t, refs[0].Context, "...")
}

func TestToJSON(t *testing.T) {
	p := NewParser()
	p.ParseText("Figure 2\nSee the (green circle 1).\nFigure 1\nthe purple marker 4\n")

	out := p.ToJSON()
	assert.Equal(t, 2, out.TotalCount)
	assert.Equal(t, []int{1, 2}, out.FiguresReferenced)
	assert.Equal(t, "green", out.ExpectedColors[2][1])
	assert.Equal(t, "purple", out.ExpectedColors[1][4])
}

func TestToJSON_Empty(t *testing.T) {
	p := NewParser()
	p.ParseText("No annotations mentioned here.")

	out := p.ToJSON()
	assert.Zero(t, out.TotalCount)
	assert.NotNil(t, out.References)
	assert.Empty(t, out.FiguresReferenced)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procedure.md")
	require.NoError(t, os.WriteFile(path,
		[]byte("Figure 1\nClick the (red callout 1) button.\n"), 0o644))

	p := NewParser()
	refs, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, refs, 1)

	_, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestParseText_StateReset(t *testing.T) {
	p := NewParser()
	p.ParseText("Figure 1\n(red callout 1)\n")
	p.ParseText("nothing here")

	assert.Empty(t, p.ExpectedColors())
	assert.Empty(t, p.ByFigure())
}
