package pdf2zh

// fakeLatinFont is a single-byte fallback font: it round-trips any code
// point under 128 and reports a fixed per-character advance.
type fakeLatinFont struct {
	adv float64
	cid bool
}

func (f fakeLatinFont) Advance(ch rune, size float64) float64 { return f.adv }
func (f fakeLatinFont) ToUnichr(code int) (rune, bool) {
	if code >= 0 && code < 128 {
		return rune(code), true
	}
	return 0, false
}
func (f fakeLatinFont) CID() bool { return f.cid }

// fakeNoto is the Unicode fallback: its glyph index is the code point
// itself and its per-character advance equals the requested size.
type fakeNoto struct{}

func (fakeNoto) HasGlyph(code rune) int                      { return int(code) }
func (fakeNoto) CharLengths(ch rune, size float64) []float64 { return []float64{size} }

func newFontMap() *FontMap {
	return &FontMap{
		Fonts:    map[string]Font{tiroName: fakeLatinFont{adv: 5}},
		NotoName: "noto",
		Noto:     fakeNoto{},
	}
}

func glyph(text string, x0, y0, x1, y1, size, width float64) Glyph {
	return Glyph{
		Unicode: text, FontRef: tiroName, FontSize: size,
		X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width,
		Matrix: Matrix{1, 0, 0, 1, 0, 0},
	}
}

func verticalGlyph(text string, x0, y0, size float64, dir float64) Glyph {
	return Glyph{
		Unicode: text, FontRef: tiroName, FontSize: size,
		X0: x0, Y0: y0, X1: x0 + size, Y1: y0 + size, Height: size,
		Matrix: Matrix{0, dir, dir, 0, 0, 0},
	}
}
