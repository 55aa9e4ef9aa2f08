package main

import "github.com/pdf2zh/pdf2zh"

// identityFont is a placeholder Font used when no real font-acquisition
// subsystem is wired in: it advances every rune by a fixed fraction of its
// size and round-trips any code point below 256, which is enough to drive
// the engine end to end without a real glyph table.
type identityFont struct{}

func (identityFont) Advance(ch rune, size float64) float64 { return size * 0.6 }

func (identityFont) ToUnichr(code int) (rune, bool) {
	if code < 0 || code > 255 {
		return 0, false
	}
	return rune(code), true
}

func (identityFont) CID() bool { return false }

// identityNoto is the Unicode fallback counterpart of identityFont: it
// claims every rune has a glyph, so selectFont never falls through to the
// notdef case for this demonstration wiring.
type identityNoto struct{}

func (identityNoto) HasGlyph(code rune) int { return int(code) }

func (identityNoto) CharLengths(ch rune, size float64) []float64 {
	return []float64{size * 0.6}
}

func demoFontMap() *pdf2zh.FontMap {
	return &pdf2zh.FontMap{
		Fonts:    map[string]pdf2zh.Font{"tiro": identityFont{}},
		NotoName: "noto",
		Noto:     identityNoto{},
	}
}

// demoPage lays text out as a single horizontal run of glyphs, left to
// right, each advancing by 0.6 × size, the same advance identityFont reports.
func demoPage(text string, width, size float64) *pdf2zh.Page {
	items := make([]pdf2zh.PageItem, 0, len(text))
	x := 0.0
	for _, r := range text {
		adv := size * 0.6
		items = append(items, pdf2zh.PageItem{
			Kind: pdf2zh.ItemGlyph,
			Glyph: pdf2zh.Glyph{
				Unicode:  string(r),
				FontRef:  "tiro",
				FontSize: size,
				X0:       x, Y0: 0,
				X1: x + adv, Y1: size,
				Advance: adv,
				Matrix:  pdf2zh.Matrix{1, 0, 0, 1, 0, 0},
				Height:  size,
				Width:   adv,
			},
		})
		x += adv
	}
	return &pdf2zh.Page{ID: 1, Width: width, Items: items}
}

// demoLabelMap marks the whole page as a single body-text region (class 1,
// never 0) so the demonstration run never misclassifies plain text as a
// formula.
func demoLabelMap() *pdf2zh.LabelMap {
	return &pdf2zh.LabelMap{Width: 1, Height: 1, Cells: []int{1}}
}
