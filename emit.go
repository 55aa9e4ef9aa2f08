package pdf2zh

import (
	"strconv"
	"strings"
)

// Emit formats a page's resolved placement ops into the final content
// stream byte string, framed by "BT" ... "ET" (4.5). Paragraph ops are
// written in paragraph order; the page's global (unattached) lines are
// appended last.
func Emit(paragraphOps [][]Op, globalLines []Line) []byte {
	var sb strings.Builder
	sb.WriteString("BT ")
	for _, ops := range paragraphOps {
		for _, op := range ops {
			writeOp(&sb, op)
		}
	}
	for _, op := range globalLineOps(globalLines) {
		writeOp(&sb, op)
	}
	sb.WriteString("ET ")
	return []byte(sb.String())
}

func writeOp(sb *strings.Builder, op Op) {
	if op.IsLine {
		writeLineOp(sb, op)
		return
	}
	writeTextOp(sb, op)
}

func writeTextOp(sb *strings.Builder, op Op) {
	sb.WriteString("/")
	sb.WriteString(op.Font)
	sb.WriteString(" ")
	sb.WriteString(f(op.Size))
	sb.WriteString(" Tf ")
	sb.WriteString(textMatrix(op))
	sb.WriteString(" ")
	sb.WriteString(f(op.X))
	sb.WriteString(" ")
	sb.WriteString(f(op.Y))
	sb.WriteString(" Tm [<")
	sb.WriteString(op.Hex)
	sb.WriteString(">] TJ ")
}

func textMatrix(op Op) string {
	if !op.Vertical {
		return "1 0 0 1"
	}
	if op.Direction >= 0 {
		return "0 1 -1 0"
	}
	return "0 -1 1 0"
}

// writeLineOp emits the ET/BT-bracketed graphics-state block that draws
// one preserved vector line, then re-opens a text object so that
// subsequent ops can resume emitting TJ operators without the caller
// having to track whose turn it is.
func writeLineOp(sb *strings.Builder, op Op) {
	sb.WriteString("ET q 1 0 0 1 ")
	sb.WriteString(f(op.X))
	sb.WriteString(" ")
	sb.WriteString(f(op.Y))
	sb.WriteString(" cm [] 0 d 0 J ")
	sb.WriteString(f(op.LineWidth))
	sb.WriteString(" w 0 0 m ")
	sb.WriteString(f(op.DX))
	sb.WriteString(" ")
	sb.WriteString(f(op.DY))
	sb.WriteString(" l S Q BT ")
}

// f formats a coordinate/size the way the PDF operators expect: plain
// decimal, no scientific notation, trailing zeros trimmed.
func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
