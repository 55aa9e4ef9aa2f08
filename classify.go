package pdf2zh

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// vflag reports whether a glyph with this fontname and decoded character
// should be treated as a formula/sub-superscript glyph by typography
// alone (4.1 rule 4), independent of its layout-map class.
func vflag(cfg *Config, fontname, char string) bool {
	if strings.HasPrefix(char, "(cid:") {
		return true
	}

	// Keep only the trailing segment of a "PREFIX+Family" subsetting tag.
	if idx := strings.LastIndex(fontname, "+"); idx >= 0 {
		fontname = fontname[idx+1:]
	}

	if cfg.vfontRe != nil {
		if cfg.vfontRe.MatchString(fontname) {
			return true
		}
	} else if builtinVFontRe.MatchString(fontname) {
		return true
	}

	if char == "" {
		return false
	}
	if cfg.vcharRe != nil {
		return cfg.vcharRe.MatchString(char)
	}
	return builtinVCharMatch(char)
}

// builtinVCharMatch is the built-in character test used when Config.VChar
// is unset: non-space, and either in one of a fixed set of Unicode
// categories associated with modifier/math/separator marks, or in the
// Greek block.
func builtinVCharMatch(char string) bool {
	r := []rune(char)[0]
	if char == " " {
		return false
	}
	if r >= 0x370 && r < 0x400 {
		return true
	}
	switch {
	case unicode.Is(unicode.Lm, r),
		unicode.Is(unicode.Mn, r),
		unicode.Is(unicode.Sk, r),
		unicode.Is(unicode.Sm, r),
		unicode.Is(unicode.Zl, r),
		unicode.Is(unicode.Zp, r),
		unicode.Is(unicode.Zs, r):
		return true
	}
	return false
}

// isBullet is the spec's single hardcoded list-marker override: a "•"
// glyph is never treated as non-body just because its layout-map cell is
// class 0; its raw class id is still used for paragraph continuity. Other list
// markers ("-", "*", numbered lists) are deliberately NOT covered — see
// spec.md §9's open question on this.
func isBullet(text string) bool { return text == "•" }

// isSubSuperscript implements the 4.1 rule 3 heuristic: the glyph shares
// its predecessor's layout class, the paragraph accumulated so far has
// more than one non-space character, and the glyph is meaningfully
// smaller than the paragraph's dominant size.
func isSubSuperscript(cfg *Config, glyphSize float64, paragraphSize float64, sameClassAsPrev bool, paragraphTextSoFar string) bool {
	if !sameClassAsPrev {
		return false
	}
	if utf8.RuneCountInString(strings.TrimSpace(paragraphTextSoFar)) <= 1 {
		return false
	}
	return glyphSize < cfg.SubSuperscriptRatio*paragraphSize
}

// placeholderRe matches a "{vN}" formula placeholder, tolerating
// whitespace inside the digits, e.g. "{v 12}".
var placeholderRe = regexp.MustCompile(`(?i)\{\s*v([\d\s]+)\}`)

// pureFormulaOrWhitespaceRe matches an exact lone placeholder, one of the
// two template shapes that bypass translation untouched (4.3); text that
// is entirely whitespace is checked separately in isBypassTemplate.
var pureFormulaOrWhitespaceRe = regexp.MustCompile(`^\{v\d+\}$`)

func isBypassTemplate(s string) bool {
	return strings.TrimSpace(s) == "" || pureFormulaOrWhitespaceRe.MatchString(s)
}
