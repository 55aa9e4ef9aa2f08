package pdf2zh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// S2 - single paragraph pass-through.
func TestRelayout_SinglePassthrough(t *testing.T) {
	p := &Paragraph{X: 0, Y: 0, X0: 0, X1: 100, Y0: 0, Y1: 20, Size: 10}
	ops := Relayout(p, "ABC", nil, newFontMap(), &Config{LangOut: "en"})
	textOps := 0
	for _, op := range ops {
		if !op.IsLine {
			textOps++
			assert.Equal(t, "414243", op.Hex)
			assert.Equal(t, 0.0, op.X)
			assert.Equal(t, p.Y, op.Y)
		}
	}
	assert.Equal(t, 1, textOps, "same-font run should flush as a single op")
}

// S3 - inline formula splice.
func TestRelayout_FormulaSplice(t *testing.T) {
	p := &Paragraph{X: 0, Y: 0, X0: 0, X1: 200, Y0: 0, Y1: 20, Size: 10}
	formulas := []*FormulaGroup{{
		Glyphs: []Glyph{
			{Unicode: "a", FontRef: tiroName, FontSize: 10, X0: 0, Y0: 0, X1: 5, Width: 5},
			{Unicode: "b", FontRef: tiroName, FontSize: 10, X0: 5, Y0: 0, X1: 10, Width: 5},
		},
		Width: 10,
		YFix:  2,
	}}
	ops := Relayout(p, "x {v0} y", formulas, newFontMap(), &Config{LangOut: "en"})
	var textRuns []string
	for _, op := range ops {
		if !op.IsLine {
			textRuns = append(textRuns, op.Hex)
		}
	}
	// "x ", then the two formula glyphs, then " y".
	if assert.Len(t, textRuns, 4) {
		assert.Equal(t, "7820", textRuns[0]) // "x " hex
		assert.Equal(t, "2079", textRuns[3]) // " y" hex
	}
}

// S4 - wrap-induced line break.
func TestRelayout_WrapInducesLineBreak(t *testing.T) {
	p := &Paragraph{X: 0, Y: 0, X0: 0, X1: 10, Y0: 0, Y1: 20, Size: 10, Brk: true}
	ops := Relayout(p, "ABCDEFGH", nil, newFontMap(), &Config{LangOut: "en"})
	ys := map[float64]bool{}
	for _, op := range ops {
		ys[op.Y] = true
	}
	assert.GreaterOrEqual(t, len(ys), 2, "the overrun should force a second line at a different Y")
}

// Property 5 - vertical round-trip with direction -1, via Relayout
// directly (TestSegment_VerticalRunDirectionPlus1 covers S5's classifier
// half).
func TestRelayout_VerticalRoundTrip(t *testing.T) {
	p := &Paragraph{
		Vertical: true, Direction: -1, Size: 12, Spacing: 12,
		Positions: []Point{{X: 100, Y: 30}, {X: 100, Y: 18}, {X: 100, Y: 6}},
	}
	ops := Relayout(p, "abc", nil, newFontMap(), &Config{LangOut: "en"})
	if assert.Len(t, ops, 3) {
		for i, op := range ops {
			assert.True(t, op.Vertical)
			assert.Equal(t, -1, op.Direction)
			assert.Equal(t, p.Positions[i].X, op.X)
			assert.Equal(t, p.Positions[i].Y, op.Y)
		}
	}
}

// Property 5 continued: excess characters beyond the captured positions
// fall back to synthesised positions advancing by direction*spacing.
func TestRelayout_VerticalExcessCharsSynthesizePositions(t *testing.T) {
	p := &Paragraph{
		Vertical: true, Direction: 1, Size: 12, Spacing: 10,
		Positions: []Point{{X: 50, Y: 0}},
	}
	ops := Relayout(p, "ab", nil, newFontMap(), &Config{LangOut: "en"})
	if assert.Len(t, ops, 2) {
		assert.Equal(t, 0.0, ops[0].Y)
		assert.Equal(t, 10.0, ops[1].Y)
	}
}

// Property 2: idempotent pass-through never exceeds the paragraph's
// bounding box (beyond the documented tolerances).
func TestRelayout_IdempotentPassthroughStaysInBounds(t *testing.T) {
	p := &Paragraph{X: 0, Y: 20, X0: 0, X1: 50, Y0: 0, Y1: 20, Size: 10}
	ops := Relayout(p, "hello world", nil, newFontMap(), &Config{LangOut: "en"})
	for _, op := range ops {
		assert.LessOrEqual(t, op.Y, p.Y1+p.Size)
		assert.LessOrEqual(t, op.X, p.X1+0.1*p.Size)
	}
}

func TestRelayout_VerticalFormulaPlaceholderDropped(t *testing.T) {
	p := &Paragraph{
		Vertical: true, Direction: -1, Size: 12, Spacing: 12,
		Positions: []Point{{X: 0, Y: 0}, {X: 0, Y: 0}},
	}
	ops := Relayout(p, "a{v0}b", nil, newFontMap(), &Config{LangOut: "en"})
	assert.Len(t, ops, 2, "vertical formula placeholders are discarded, not rendered")
}
