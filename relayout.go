package pdf2zh

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/image/math/fixed"
)

// toFixed/toFloat convert between the engine's float64 user-space units
// and the fixed.Int26_6 representation used for the re-layout cursor and
// glyph advances, matching the pack's text-layout fixed-point convention.
func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
func toFloat(f fixed.Int26_6) float64 { return float64(f) / 64 }

// Op is one placement decision produced by the re-layout engine (C4),
// ready for C5 to format into PDF operators. Only one of the Text/Line
// shapes is meaningful, selected by IsLine.
type Op struct {
	IsLine bool

	// Text fields.
	Font      string
	Size      float64
	Hex       string
	Vertical  bool
	Direction int

	// Shared position (already fully resolved, including any
	// line-height adjustment).
	X, Y float64

	// Line-only fields: the segment's length relative to X,Y.
	DX, DY    float64
	LineWidth float64
}

// pendingOp mirrors Op but with Y left as a (dy, lidx) pair to be
// resolved once the paragraph's final line count (and therefore its
// shrunk line height) is known.
type pendingOp struct {
	isLine    bool
	font      string
	size      float64
	hex       string
	x         float64
	dy        float64
	lidx      int
	dx, dyLen float64
	lineWidth float64
}

// Relayout turns one paragraph's translated string into a sequence of
// placement ops inside the paragraph's original bounding box (4.4).
func Relayout(p *Paragraph, translated string, formulas []*FormulaGroup, fontMap *FontMap, cfg *Config) []Op {
	if p.Vertical {
		return relayoutVertical(p, translated, fontMap, cfg)
	}
	return relayoutHorizontal(p, translated, formulas, fontMap, cfg)
}

type token struct {
	isFormula bool
	formulaN  int
	ch        rune
}

// tokenize splits a translated string into a run of literal characters
// and formula placeholders, dropping "\n" wherever it appears.
func tokenize(s string) []token {
	var toks []token
	matches := placeholderRe.FindAllStringSubmatchIndex(s, -1)
	pos := 0
	appendLiteral := func(text string) {
		for _, r := range text {
			if r == '\n' {
				continue
			}
			toks = append(toks, token{ch: r})
		}
	}
	for _, m := range matches {
		appendLiteral(s[pos:m[0]])
		digits := strings.ReplaceAll(s[m[2]:m[3]], " ", "")
		if n, err := strconv.Atoi(digits); err == nil {
			toks = append(toks, token{isFormula: true, formulaN: n})
		}
		pos = m[1]
	}
	appendLiteral(s[pos:])
	return toks
}

// tokenizeVertical is tokenize minus placeholder recognition: vertical
// paragraphs simply discard any "{vN}" they contain (4.4, vertical path).
func tokenizeVertical(s string) []rune {
	stripped := placeholderRe.ReplaceAllString(s, "")
	out := make([]rune, 0, len(stripped))
	for _, r := range stripped {
		if r == '\n' {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isCombiningModifier(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return unicode.Is(unicode.Lm, r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Sk, r)
}

// selectFont implements the font-selection rule: the Latin fallback
// "tiro" if it round-trips ch, else the configured Unicode fallback.
func selectFont(fm *FontMap, ch rune) (fontID string, useNoto bool) {
	if f, ok := fm.tiro(); ok {
		if r, ok2 := f.ToUnichr(int(ch)); ok2 && r == ch {
			return tiroName, false
		}
	}
	return fm.NotoName, true
}

func hexForRune(fm *FontMap, fontID string, ch rune, useNoto bool) string {
	if useNoto {
		code := 0
		if fm.Noto != nil {
			code = fm.Noto.HasGlyph(ch)
		}
		return fmt.Sprintf("%04X", code)
	}
	if f, ok := fm.Fonts[fontID]; ok && f.CID() {
		return fmt.Sprintf("%04X", int(ch))
	}
	return fmt.Sprintf("%02X", int(ch)&0xFF)
}

func hexForGlyph(fm *FontMap, g Glyph) string {
	if f, ok := fm.Fonts[g.FontRef]; ok && f.CID() {
		return fmt.Sprintf("%04X", g.CID)
	}
	return fmt.Sprintf("%02X", g.CID&0xFF)
}

func relayoutHorizontal(p *Paragraph, translated string, formulas []*FormulaGroup, fontMap *FontMap, cfg *Config) []Op {
	toks := tokenize(translated)

	var pending []pendingOp
	x := toFixed(p.X)
	x0, x1 := toFixed(p.X0), toFixed(p.X1)
	overrunTolerance := toFixed(0.1 * p.Size)
	lidx := 0
	fcur := ""
	var cstk strings.Builder
	var runStartX fixed.Int26_6

	flush := func() {
		if cstk.Len() == 0 {
			return
		}
		pending = append(pending, pendingOp{
			lidx: lidx, x: toFloat(runStartX), dy: 0,
			font: fcur, size: p.Size, hex: cstk.String(),
		})
		if cfg.TraceCursor {
			pending = append(pending, pendingOp{
				isLine: true, lidx: lidx,
				x: toFloat(runStartX), dy: 0,
				dx: toFloat(x - runStartX), lineWidth: traceLineWidth,
			})
		}
		cstk.Reset()
	}

	for _, tok := range toks {
		if tok.isFormula {
			if tok.formulaN < 0 || tok.formulaN >= len(formulas) {
				continue
			}
			group := formulas[tok.formulaN]
			if len(group.Glyphs) == 0 {
				continue
			}
			flush()

			adv := toFixed(group.Width)
			mod := fixed.Int26_6(0)
			last := group.Glyphs[len(group.Glyphs)-1]
			if isCombiningModifier(last.Text()) {
				mod = toFixed(last.Width)
			}

			if p.Brk && x+adv > x1+overrunTolerance {
				x = x0
				lidx++
			}

			g0x, g0y := group.Glyphs[0].X0, group.Glyphs[0].Y0
			for _, g := range group.Glyphs {
				pending = append(pending, pendingOp{
					lidx: lidx, x: toFloat(x) + g.X0 - g0x, dy: group.YFix + g.Y0 - g0y,
					font: g.FontRef, size: g.FontSize, hex: hexForGlyph(fontMap, g),
				})
			}
			for _, l := range group.Lines {
				if l.isBackgroundRule() {
					continue
				}
				pending = append(pending, pendingOp{
					isLine: true, lidx: lidx,
					x: toFloat(x) + l.P0.X - g0x, dy: group.YFix + l.P0.Y - g0y,
					dx: l.P1.X - l.P0.X, dyLen: l.P1.Y - l.P0.Y,
					lineWidth: l.LineWidth,
				})
			}
			if cfg.TraceCursor {
				pending = append(pending, pendingOp{
					isLine: true, lidx: lidx,
					x: toFloat(x), dy: group.YFix,
					dx: toFloat(adv), lineWidth: traceLineWidth,
				})
			}
			x += adv - mod
			fcur = ""
			continue
		}

		ch := tok.ch
		font, useNoto := selectFont(fontMap, ch)
		var adv fixed.Int26_6
		if useNoto {
			if fontMap.Noto != nil {
				if lens := fontMap.Noto.CharLengths(ch, p.Size); len(lens) > 0 {
					adv = toFixed(lens[0])
				}
			}
			font = fontMap.NotoName
		} else if f, ok := fontMap.Fonts[font]; ok {
			adv = toFixed(f.Advance(ch, p.Size))
		}

		overrun := x+adv > x1+overrunTolerance
		if font != fcur || overrun {
			flush()
		}
		if p.Brk && overrun {
			x = x0
			lidx++
		}
		if cstk.Len() == 0 {
			runStartX = x
		}
		if !(x == x0 && ch == ' ') {
			cstk.WriteString(hexForRune(fontMap, font, ch, useNoto))
		}
		fcur = font
		x += adv
	}
	flush()

	lh := lineHeightFor(cfg.LangOut)
	for float64(lidx+1)*p.Size*lh > p.Height() && lh >= 1.0 {
		lh -= 0.05
	}

	ops := make([]Op, 0, len(pending))
	for _, po := range pending {
		y := p.Y + po.dy - float64(po.lidx)*p.Size*lh
		if po.isLine {
			ops = append(ops, Op{IsLine: true, X: po.x, Y: y, DX: po.dx, DY: po.dyLen, LineWidth: po.lineWidth})
			continue
		}
		ops = append(ops, Op{Font: po.font, Size: po.size, Hex: po.hex, X: po.x, Y: y})
	}
	return ops
}

// traceLineWidth is the stroke width of the synthetic cursor-tracing
// lines Config.TraceCursor appends; thin enough not to be mistaken for
// a preserved document rule.
const traceLineWidth = 0.1

func relayoutVertical(p *Paragraph, translated string, fontMap *FontMap, cfg *Config) []Op {
	chars := tokenizeVertical(translated)
	ops := make([]Op, 0, len(chars))
	var prevX, prevY float64
	for i, ch := range chars {
		var px, py float64
		if i < len(p.Positions) {
			px, py = p.Positions[i].X, p.Positions[i].Y
		} else if len(p.Positions) > 0 {
			last := p.Positions[len(p.Positions)-1]
			steps := i - len(p.Positions) + 1
			px = last.X
			py = last.Y + float64(p.Direction)*p.Spacing*float64(steps)
		}
		if cfg.TraceCursor && i > 0 {
			ops = append(ops, Op{IsLine: true, X: prevX, Y: prevY, DX: px - prevX, DY: py - prevY, LineWidth: traceLineWidth})
		}
		prevX, prevY = px, py
		fontID, useNoto := selectFont(fontMap, ch)
		hex := hexForRune(fontMap, fontID, ch, useNoto)
		if useNoto {
			fontID = fontMap.NotoName
		}
		ops = append(ops, Op{
			Font: fontID, Size: p.Size, Hex: hex,
			X: px, Y: py, Vertical: true, Direction: p.Direction,
		})
	}
	return ops
}

// globalLineOps converts the page's unattached vector lines (those not
// inside any formula) directly into line ops, filtering background rules.
func globalLineOps(lines []Line) []Op {
	ops := make([]Op, 0, len(lines))
	for _, l := range lines {
		if l.isBackgroundRule() {
			continue
		}
		ops = append(ops, Op{
			IsLine: true, X: l.P0.X, Y: l.P0.Y,
			DX: l.P1.X - l.P0.X, DY: l.P1.Y - l.P0.Y,
			LineWidth: l.LineWidth,
		})
	}
	return ops
}
