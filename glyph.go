package pdf2zh

import "github.com/pdf2zh/pdf2zh/utils"

// Matrix is a PDF text/graphics transform: [a b c d e f].
type Matrix [6]float64

// Point is a position in page user-space.
type Point struct {
	X, Y float64
}

// Glyph is a single placed character, as produced by the PDF parser.
// Glyphs are immutable once constructed: they are produced by the parser,
// consumed by the classifier, assembler and re-layout engine, and never
// mutated in place.
type Glyph struct {
	// CID is the character code inside the font's own encoding.
	CID int
	// Unicode is the decoded text for this glyph, or a fallback
	// placeholder (e.g. "(cid:123)") when the font could not decode it.
	Unicode string
	// FontRef is the font id, a key into the FontMap supplied to the
	// re-layout engine.
	FontRef  string
	FontSize float64
	X0, Y0   float64
	X1, Y1   float64
	Advance  float64
	Matrix   Matrix
	Height   float64
	Width    float64
}

// Text returns the glyph's decoded text.
func (g Glyph) Text() string { return g.Unicode }

// isVertical reports whether the glyph's transform has near-zero
// horizontal components, the signal that this is a vertically-set
// (CJK-style) glyph rather than a horizontally-advancing one.
func (g Glyph) isVertical() bool {
	return utils.Abs(g.Matrix[0]) < 1e-6 && utils.Abs(g.Matrix[3]) < 1e-6
}

// Line is a vector line primitive retained alongside the glyph stream.
// Lines with LineWidth >= 5.0 are treated as background/rule art and
// filtered out at re-layout and emission; the classifier keeps them.
type Line struct {
	P0, P1    Point
	LineWidth float64
}

func (l Line) isBackgroundRule() bool { return l.LineWidth >= 5.0 }

// ItemKind discriminates the three variants a page child can take.
type ItemKind int

const (
	ItemGlyph ItemKind = iota
	ItemLine
	ItemFigure
)

// PageItem is one entry in the page's visual-order child stream. Only one
// of Glyph/Line is populated, selected by Kind; ItemFigure carries neither
// since figures are ignored by the classifier.
type PageItem struct {
	Kind  ItemKind
	Glyph Glyph
	Line  Line
}

// Page is the parser's per-page output: its children in visual order plus
// the page width needed to compute the inline-formula run-away threshold
// (vmax = page width / 4, see the classifier).
type Page struct {
	ID    int
	Width float64
	Items []PageItem
}

// LabelMap is the coarse per-page layout classification raster. Class 0 is
// the reserved "non-body" region (formulae, figures, captions); any other
// class id identifies a distinct paragraph/column region.
//
// ClassAt clamps out-of-bounds coordinates into [0,w-1]x[0,h-1] rather than
// raising, per the engine's best-effort error handling stance.
type LabelMap struct {
	Width, Height int
	// Cells is row-major, Height rows of Width cells each.
	Cells []int
}

// ClassAt returns the class id at the cell containing (x, y).
func (m *LabelMap) ClassAt(x, y float64) int {
	if m == nil || m.Width == 0 || m.Height == 0 {
		return 0
	}
	cx := utils.Clamp(int(x), 0, m.Width-1)
	cy := utils.Clamp(int(y), 0, m.Height-1)
	return m.Cells[cy*m.Width+cx]
}
