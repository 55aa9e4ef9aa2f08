package pdf2zh

// Font is a single font-map entry: a font id's ability to measure and
// round-trip characters. It is supplied by the (external) font
// acquisition subsystem and treated as read-only and safe for concurrent
// use once constructed — the re-layout and emission stages only ever
// read from it, on the main goroutine.
type Font interface {
	// Advance returns the horizontal advance of ch set at size, in
	// page user-space units.
	Advance(ch rune, size float64) float64
	// ToUnichr decodes a raw character code back to a rune. The
	// re-layout engine uses this to test whether the Latin fallback
	// font can round-trip a character: ToUnichr(int(ch)) == ch.
	ToUnichr(code int) (rune, bool)
	// CID reports whether this font is a composite (CID-keyed) font,
	// which the emitter hex-encodes as 4 digits per character rather
	// than 2.
	CID() bool
}

// NotoFont is the Unicode fallback font consulted by the re-layout engine
// whenever the Latin fallback ("tiro") cannot decode a character.
type NotoFont interface {
	// HasGlyph returns the glyph index for code, or 0 (notdef) if the
	// font lacks it.
	HasGlyph(code rune) int
	// CharLengths returns the per-rune advances of ch set at size (a
	// single-character string normally yields a single-element slice;
	// the first element is used).
	CharLengths(ch rune, size float64) []float64
}

// FontMap is the fontmap contract: a mapping from font id to a Font,
// plus the two reserved fallback slots used by C4's font-selection rule
// (tiroName is the Latin fallback looked up by name in Fonts; Noto is the
// Unicode fallback with its own glyph-indexing interface).
type FontMap struct {
	Fonts map[string]Font
	// NotoName is the font id the emitter writes into "/<font>" text
	// operators whenever a character fell through to the Unicode
	// fallback.
	NotoName string
	Noto     NotoFont
}

// tiroName is the reserved Latin fallback font id, consulted first by
// the re-layout engine's font-selection rule (4.4).
const tiroName = "tiro"

func (fm *FontMap) tiro() (Font, bool) {
	f, ok := fm.Fonts[tiroName]
	return f, ok
}
