package pdf2zh

import (
	"regexp"
	"strings"
)

// Config bundles every option the engine consumes. It is an explicit
// value passed at construction; the engine holds no process-wide state.
type Config struct {
	// VFont, if set, is a font-name regex that forces formula
	// classification (matched against the fontname with any "PREFIX+"
	// subsetting tag stripped).
	VFont string
	// VChar, if set, is a character regex that forces formula
	// classification.
	VChar string

	// SubSuperscriptRatio is the size ratio below which a glyph
	// sharing its predecessor's class is treated as a sub/superscript.
	// Spec default 0.79; kept configurable since it is not derived
	// from any typographic standard.
	SubSuperscriptRatio float64

	// Thread is the worker count for the translation dispatcher. 0
	// means the runtime's default pool size.
	Thread int

	LangIn  string
	LangOut string
	// Service selects the translation backend, as "name" or
	// "name:model" (e.g. "ollama:gemma2:9b").
	Service string
	Prompt  string
	Envs    map[string]string
	// IgnoreCache mirrors translator.Options.IgnoreCache. The engine does
	// not read it; the caller passes it to translator.Select when building
	// the backend.
	IgnoreCache bool

	// TraceCursor, when true, appends synthetic thin (traceLineWidth) debug lines
	// tracing the re-layout cursor through each paragraph (see
	// SPEC_FULL.md §12.2). It never changes the emitted text operators.
	TraceCursor bool

	Logger Logger

	vfontRe *regexp.Regexp
	vcharRe *regexp.Regexp
}

const defaultSubSuperscriptRatio = 0.79

// verticalXThreshold is the maximum x0 jump, in user-space units,
// tolerated between consecutively buffered vertical glyphs before the
// buffer is flushed as a finished vertical paragraph.
const verticalXThreshold = 2.0

// builtinVFontPattern matches common math/italic/mono family names when
// Config.VFont is unset.
const builtinVFontPattern = `^(CM[^R]|MS.M|XY|MT|BL|RM|EU|LA|RS|LINE|LCIRCLE|TeX-|rsfs|txsy|wasy|stmary|.*Mono|.*Code|.*Ital|.*Sym|.*Math)`

var builtinVFontRe = regexp.MustCompile(builtinVFontPattern)

// normalize fills in defaults and compiles the configured regexes. It is
// idempotent and cheap enough to call once per Engine construction.
func (c *Config) normalize() error {
	if c.SubSuperscriptRatio == 0 {
		c.SubSuperscriptRatio = defaultSubSuperscriptRatio
	}
	if c.Logger == nil {
		c.Logger = defaultLogger{}
	}
	if c.VFont != "" && c.vfontRe == nil {
		re, err := regexp.Compile("^(?:" + c.VFont + ")")
		if err != nil {
			return err
		}
		c.vfontRe = re
	}
	if c.VChar != "" && c.vcharRe == nil {
		re, err := regexp.Compile("^(?:" + c.VChar + ")")
		if err != nil {
			return err
		}
		c.vcharRe = re
	}
	return nil
}

// langLineHeight is the output-language default line height table (4.4).
var langLineHeight = map[string]float64{
	"zh": 1.4, "zh-cn": 1.4, "zh-tw": 1.4, "zh-hans": 1.4, "zh-hant": 1.4,
	"ja": 1.1,
	"ko": 1.2, "en": 1.2,
	"ar": 1.0,
	"ru": 0.8, "uk": 0.8, "ta": 0.8,
}

const defaultLineHeight = 1.1

func lineHeightFor(langOut string) float64 {
	if lh, ok := langLineHeight[strings.ToLower(langOut)]; ok {
		return lh
	}
	return defaultLineHeight
}
