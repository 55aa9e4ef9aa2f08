package pdf2zh

// Paragraph is a layout-level run of body glyphs sharing a class id and
// horizontal neighbourhood, built incrementally by the classifier (C1)
// and the assembler (C2).
//
// Invariants: X0 <= X1, Y0 <= Y1, Size > 0; every "{vN}" placeholder
// appearing in TextTemplate names exactly one FormulaGroup with at least
// one glyph (enforced by the segmenter, see segment.go).
type Paragraph struct {
	// X, Y is the anchor: the first glyph's baseline position.
	X, Y float64
	// X0, X1, Y0, Y1 is the bounding box, expanded as glyphs are added.
	X0, X1, Y0, Y1 float64
	// Size is the dominant font size, raised when an exceptionally large
	// glyph joins (drop-cap/heading rule).
	Size float64
	// Brk is set if a mid-paragraph line-wrap occurred in the source.
	Brk bool

	// Vertical paragraphs are CJK-style runs captured by the classifier's
	// vertical-glyph buffer rather than the horizontal join rules below.
	Vertical  bool
	Direction int // +1 or -1, meaningful only when Vertical

	// Positions holds one anchor per captured glyph, in emission order,
	// for vertical paragraphs.
	Positions []Point
	// Spacing is the representative (median) inter-glyph step, used once
	// Positions is exhausted during re-layout.
	Spacing float64

	// TextTemplate is the paragraph's decoded body text, with a "{vN}"
	// placeholder substituted for each inline formula group.
	TextTemplate string
}

// Height returns the paragraph's vertical extent, used by the re-layout
// engine's line-height shrinking rule.
func (p *Paragraph) Height() float64 { return p.Y1 - p.Y0 }

// FormulaGroup is a contiguous run of glyphs (and any vector lines drawn
// inside its bounding region) classified as mathematical. It is replaced
// in its owning paragraph's text by a single "{vN}" placeholder and
// re-emitted verbatim, at its original relative position, during
// re-layout.
//
// Invariant: a FormulaGroup is referenced by exactly one "{vN}" in
// exactly one paragraph.
type FormulaGroup struct {
	Glyphs []Glyph
	Lines  []Line
	// YFix carries the vertical offset that re-aligns the formula to
	// the paragraph text to its left (set on formula entry) or to its
	// right (set on formula exit, overriding entry), depending on which
	// neighbour exists. See segment.go.
	YFix float64
	// Width is max(g.X1 for g in Glyphs) - Glyphs[0].X0.
	Width float64
}

// PageLayout is the output of segmentation (C1 + C2): the paragraph list,
// the formula list sharing the paragraphs' page-local naming space
// (ordering of creation == N in "{vN}"), and the page's global vector
// lines (those not attached to any formula group).
type PageLayout struct {
	Paragraphs []*Paragraph
	Formulas   []*FormulaGroup
	Lines      []Line
}
