package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/insight/output"
)

// slowThreshold marks a step as slow in styled reports.
const slowThreshold = 100 * time.Millisecond

// writeTree prints the span tree, for example:
//
//	refresh: 412ms
//	├─ fetch expenses: 390ms
//	├─ fetch receipts: 120ms
//	└─ build snapshot: 3ms
func writeTree(w io.Writer, root *span, styles *output.Styles) {
	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.duration()))

	for i, child := range root.children {
		writeSpan(w, child, "", i == len(root.children)-1, styles)
	}
}

func writeSpan(w io.Writer, s *span, prefix string, last bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if last {
		branch, extension = "└─ ", "   "
	}

	d := s.duration()
	timing := formatDuration(d)
	tree := prefix + branch
	if styles != nil {
		tree = styles.Dim(tree)
		timing = styles.Timing(timing, d >= slowThreshold)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, s.name, timing)

	for i, child := range s.children {
		writeSpan(w, child, prefix+extension, i == len(s.children)-1, styles)
	}
}

// formatDuration prints milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
