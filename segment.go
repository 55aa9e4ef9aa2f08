package pdf2zh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdf2zh/pdf2zh/utils"
)

// Segment runs the glyph classifier (C1) and the paragraph/formula
// assembler (C2) over a page's child stream, producing the paragraph
// list, the formula list sharing the paragraphs' page-local naming space,
// and the page's global vector lines.
func Segment(page *Page, lm *LabelMap, cfg *Config) (*PageLayout, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	s := &segmenter{cfg: cfg, lm: lm, vmax: page.Width / 4, xtCls: -1}
	for _, item := range page.Items {
		s.step(item)
	}
	s.flushVertical()
	if len(s.vstk) > 0 {
		s.closeFormula()
	}
	return &PageLayout{
		Paragraphs: s.paragraphs,
		Formulas:   s.formulas,
		Lines:      s.lines,
	}, nil
}

// segmenter carries the state machine described in spec.md 4.1/4.2 across
// the page's glyph stream: the paragraph and formula stacks, the
// formula-bracket depth, and the vertical-glyph buffer.
type segmenter struct {
	cfg *Config
	lm  *LabelMap

	paragraphs []*Paragraph
	formulas   []*FormulaGroup
	lines      []Line // page-global lines, not attached to any formula

	vstk  []Glyph // glyphs of the formula currently open, if any
	vlstk []Line  // lines attached to the open formula
	vfix  float64
	vbkt  int // parenthesis-balance depth while a formula is open

	vertBuf []Glyph // buffered vertical glyphs awaiting flush

	haveXt bool
	xt     Glyph
	xtCls  int
	vmax   float64
}

func (s *segmenter) curParagraph() *Paragraph {
	return s.paragraphs[len(s.paragraphs)-1]
}

// flushVertical turns the buffered vertical glyphs, if any, into a
// finished vertical Paragraph, per 4.2 "Vertical flush".
func (s *segmenter) flushVertical() {
	if len(s.vertBuf) == 0 {
		return
	}
	buf := s.vertBuf
	s.vertBuf = nil

	ordered := append([]Glyph(nil), buf...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Y0 != ordered[j].Y0 {
			return ordered[i].Y0 > ordered[j].Y0 // descending Y0
		}
		return ordered[i].X0 < ordered[j].X0
	})

	matrixDir := ordered[0].Matrix[1]
	if utils.Abs(matrixDir) < 1e-6 {
		matrixDir = ordered[0].Matrix[2]
	}
	direction := -1
	textChars := ordered
	if matrixDir > 0 {
		direction = 1
		textChars = reverseGlyphs(ordered)
	}

	var sb strings.Builder
	for _, g := range textChars {
		sb.WriteString(g.Text())
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return
	}

	x0, x1 := buf[0].X0, buf[0].X1
	y0, y1 := buf[0].Y0, buf[0].Y1
	size := buf[0].FontSize
	for _, g := range buf[1:] {
		x0 = utils.Min(x0, g.X0)
		x1 = utils.Max(x1, g.X1)
		y0 = utils.Min(y0, g.Y0)
		y1 = utils.Max(y1, g.Y1)
		size = utils.Max(size, g.FontSize)
	}

	positions := make([]Point, len(textChars))
	for i, g := range textChars {
		positions[i] = Point{X: g.X0, Y: g.Y0}
	}

	var spacing float64
	if len(textChars) > 1 {
		diffs := make([]float64, 0, len(textChars)-1)
		for i := 0; i < len(textChars)-1; i++ {
			diffs = append(diffs, utils.Abs(textChars[i+1].Y0-textChars[i].Y0))
		}
		spacing = median(diffs)
	} else {
		spacing = textChars[0].Height
	}

	s.paragraphs = append(s.paragraphs, &Paragraph{
		X: textChars[0].X0, Y: textChars[0].Y0,
		X0: x0, X1: x1, Y0: y0, Y1: y1,
		Size:         size,
		Vertical:     true,
		Direction:    direction,
		Positions:    positions,
		Spacing:      spacing,
		TextTemplate: text,
	})
}

func reverseGlyphs(in []Glyph) []Glyph {
	out := make([]Glyph, len(in))
	for i, g := range in {
		out[len(in)-1-i] = g
	}
	return out
}

func median(vs []float64) float64 {
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// step classifies and folds a single page item into the running state.
func (s *segmenter) step(item PageItem) {
	if item.Kind != ItemGlyph {
		s.flushVertical()
	}
	switch item.Kind {
	case ItemGlyph:
		s.stepGlyph(item.Glyph)
	case ItemLine:
		s.stepLine(item.Line)
	case ItemFigure:
		// Figures are ignored at this layer (6, parser contract).
	}
}

func (s *segmenter) stepGlyph(g Glyph) {
	if g.isVertical() {
		if len(s.vertBuf) > 0 {
			last := s.vertBuf[len(s.vertBuf)-1]
			if utils.Abs(g.X0-last.X0) > verticalXThreshold {
				s.flushVertical()
			}
		}
		s.vertBuf = append(s.vertBuf, g)
		return
	}
	s.flushVertical()

	rawCls := s.lm.ClassAt(g.X0, g.Y0)
	cls := rawCls
	bullet := isBullet(g.Text())

	curV := false
	if cls == 0 && !bullet {
		curV = true
	}
	if !curV && len(s.paragraphs) > 0 && cls == s.xtCls {
		cur := s.curParagraph()
		if isSubSuperscript(s.cfg, g.FontSize, cur.Size, true, cur.TextTemplate) {
			curV = true
		}
	}
	if !curV && vflag(s.cfg, g.FontRef, g.Text()) {
		curV = true
	}
	if !curV {
		if len(s.vstk) > 0 && g.Text() == "(" {
			curV = true
			s.vbkt++
		}
		if s.vbkt > 0 && g.Text() == ")" {
			curV = true
			s.vbkt--
		}
	}

	curTextNonEmpty := len(s.paragraphs) > 0 && s.curParagraph().TextTemplate != ""
	largeGap := s.haveXt && curTextNonEmpty && utils.Abs(g.X0-s.xt.X0) > s.vmax
	shouldCloseFormula := !curV || cls != s.xtCls || largeGap

	if shouldCloseFormula && len(s.vstk) > 0 {
		if !curV && cls == s.xtCls && g.X0 > maxX0(s.vstk) {
			s.vfix = s.vstk[0].Y0 - g.Y0
		}
		if s.curParagraph().TextTemplate == "" {
			s.xtCls = -1
		}
		s.closeFormula()
	}

	if len(s.vstk) == 0 {
		if len(s.paragraphs) > 0 && cls == s.xtCls {
			cur := s.curParagraph()
			if g.X0 > s.xt.X1+1 {
				cur.TextTemplate += " "
			} else if g.X1 < s.xt.X0 {
				cur.TextTemplate += " "
				cur.Brk = true
			}
		} else {
			s.paragraphs = append(s.paragraphs, &Paragraph{
				Y: g.Y0, X: g.X0,
				X0: g.X0, X1: g.X0, Y0: g.Y0, Y1: g.Y1,
				Size: g.FontSize,
			})
		}
	}

	cur := s.curParagraph()
	if !curV {
		if (g.FontSize > cur.Size || len(strings.TrimSpace(cur.TextTemplate)) == 1) && g.Text() != " " {
			cur.Y -= g.FontSize - cur.Size
			cur.Size = g.FontSize
		}
		cur.TextTemplate += g.Text()
	} else {
		if len(s.vstk) == 0 && cls == s.xtCls && s.haveXt && g.X0 > s.xt.X0 {
			s.vfix = g.Y0 - s.xt.Y0
		}
		s.vstk = append(s.vstk, g)
	}

	cur.X0 = utils.Min(cur.X0, g.X0)
	cur.X1 = utils.Max(cur.X1, g.X1)
	cur.Y0 = utils.Min(cur.Y0, g.Y0)
	cur.Y1 = utils.Max(cur.Y1, g.Y1)

	s.xt = g
	s.haveXt = true
	s.xtCls = cls
}

func (s *segmenter) stepLine(l Line) {
	cls := s.lm.ClassAt(l.P0.X, l.P0.Y)
	if len(s.vstk) > 0 && cls == s.xtCls {
		s.vlstk = append(s.vlstk, l)
	} else {
		s.lines = append(s.lines, l)
	}
}

// closeFormula emits a fresh formula group from the open vstk/vlstk,
// appends its "{vN}" placeholder to the current paragraph, and resets
// the formula stack.
func (s *segmenter) closeFormula() {
	n := len(s.formulas)
	s.curParagraph().TextTemplate += fmt.Sprintf("{v%d}", n)
	s.formulas = append(s.formulas, &FormulaGroup{
		Glyphs: s.vstk,
		Lines:  s.vlstk,
		YFix:   s.vfix,
		Width:  formulaWidth(s.vstk),
	})
	s.vstk = nil
	s.vlstk = nil
	s.vfix = 0
}

func formulaWidth(glyphs []Glyph) float64 {
	if len(glyphs) == 0 {
		return 0
	}
	w := glyphs[0].X1
	for _, g := range glyphs[1:] {
		w = utils.Max(w, g.X1)
	}
	return w - glyphs[0].X0
}

func maxX0(glyphs []Glyph) float64 {
	m := glyphs[0].X0
	for _, g := range glyphs[1:] {
		m = utils.Max(m, g.X0)
	}
	return m
}
