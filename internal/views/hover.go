package views

import (
	"fmt"
	"strings"

	"wvtrace/internal/correlate"
	"wvtrace/internal/record"
)

// hoverPayloadCap bounds inputs and output/error text in hover blocks.
const hoverPayloadCap = 1000

// Hover renders the markdown shown for a source position: one block per
// matching record, in stored order, or "" when nothing matches.
func Hover(records []record.CallRecord, ix *correlate.Index, filePath string, line int) string {
	matches := ix.Find(records, filePath, line)
	if len(matches) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(matches))
	for i := range matches {
		blocks = append(blocks, hoverBlock(&matches[i]))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func hoverBlock(rec *record.CallRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** — %.4fs", rec.Function, rec.DurationS)

	b.WriteString("\n\ninputs: `")
	b.WriteString(TruncatePayload(jsonText(rec.Inputs)))
	b.WriteString("`")

	if rec.Err != nil {
		text := rec.Err.Display()
		if rec.Err.Traceback != "" {
			text += "\n" + rec.Err.Traceback
		}
		b.WriteString("\n\nerror: ")
		b.WriteString(TruncatePayload(text))
	} else {
		b.WriteString("\n\noutput: `")
		b.WriteString(TruncatePayload(jsonText(rec.Output)))
		b.WriteString("`")
	}

	if rec.TraceURL != "" {
		fmt.Fprintf(&b, "\n\n[view trace](%s)", rec.TraceURL)
	}
	return b.String()
}

// TruncatePayload caps payload text at hoverPayloadCap characters, marking
// longer text with a single trailing ellipsis. The result never exceeds the
// cap plus one character.
func TruncatePayload(s string) string {
	runes := []rune(s)
	if len(runes) <= hoverPayloadCap {
		return s
	}
	return string(runes[:hoverPayloadCap]) + "…"
}
