package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/uismoke/pkg/check"
	"github.com/vertti/uismoke/pkg/runner"
)

type palette struct {
	green, red, yellow, dim, reset string
}

var (
	colors   = palette{green: "\033[32m", red: "\033[31m", yellow: "\033[33m", dim: "\033[2m", reset: "\033[0m"}
	noColors = palette{}
)

// Text renders the report for a terminal.
type Text struct {
	Color bool
}

// NewText enables color when stdout supports it.
func NewText() Text {
	return Text{Color: supportscolor.Stdout().SupportsColor}
}

// Render lists every check with its details, then the totals.
func (t Text) Render(r *runner.Report) ([]byte, error) {
	p := noColors
	if t.Color {
		p = colors
	}

	var b strings.Builder
	for _, e := range r.Results {
		writeResult(&b, p, e)
	}

	sum := r.Summary()
	if r.Aborted {
		fmt.Fprintf(&b, "%sRUN ABORTED%s: %v (%d not run)\n", p.red, p.reset, r.AbortErr, sum.NotRun)
	}
	fmt.Fprintf(&b, "%s %d | %s %d | %s %d | %s %d\n",
		formatLabel(p, "Total:"), sum.Total,
		formatLabel(p, "Passed:"), sum.Passed,
		formatLabel(p, "Failed:"), sum.Failed,
		formatLabel(p, "Skipped:"), sum.Skipped,
	)
	fmt.Fprintf(&b, "%s %.1f%%\n", formatLabel(p, "Success rate:"), sum.PassRate()*100)
	return []byte(b.String()), nil
}

func writeResult(b *strings.Builder, p palette, e runner.Entry) {
	color := p.green
	switch e.Result.Status {
	case check.StatusFail:
		color = p.red
	case check.StatusSkip:
		color = p.yellow
	}

	tag := "[" + string(e.Result.Status) + "]"
	fmt.Fprintf(b, "%s%s%s %s", color, tag, p.reset, e.Result.Name)
	if e.Duration > 0 {
		fmt.Fprintf(b, " %s(%s)%s", p.dim, e.Duration.Round(time.Millisecond), p.reset)
	}
	b.WriteString("\n")

	indent := strings.Repeat(" ", len(tag)+1)
	for _, d := range e.Result.Details {
		fmt.Fprintf(b, "%s%s\n", indent, formatLabel(p, d))
	}
}

// formatLabel dims the "label:" prefix of a detail line.
func formatLabel(p palette, s string) string {
	if p.dim == "" {
		return s
	}
	idx := strings.Index(s, ":")
	if idx == -1 {
		return s
	}
	return p.dim + s[:idx+1] + p.reset + s[idx+1:]
}
