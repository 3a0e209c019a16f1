package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/vertti/uismoke/pkg/runner"
)

// HTML renders a standalone report page.
type HTML struct {
	Title string // default: "uismoke report"
}

var htmlTemplate = pongo2.Must(pongo2.FromString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: .4rem .6rem; text-align: left; vertical-align: top; }
.pass { color: #1a7f37; } .fail { color: #cf222e; } .skip { color: #9a6700; }
.aborted { background: #ffebe9; padding: .6rem; }
</style>
</head>
<body>
<h1>{{ title }}</h1>
<p>Started {{ started }} &middot; finished {{ finished }} &middot; {{ duration }}</p>
{% if aborted %}<p class="aborted">Run aborted: {{ abort_error }} ({{ summary.NotRun }} not run)</p>{% endif %}
<p>Total: {{ summary.Total }} | Passed: {{ summary.Passed }} | Failed: {{ summary.Failed }} | Skipped: {{ summary.Skipped }} | Success rate: {{ pass_rate }}</p>
<table>
<thead><tr><th>#</th><th>Check</th><th>Status</th><th>Details</th><th>Duration</th></tr></thead>
<tbody>
{% for c in checks %}<tr>
<td>{{ forloop.Counter }}</td>
<td>{{ c.Name }}</td>
<td class="{{ c.Class }}">{{ c.Status }}</td>
<td>{% for d in c.Details %}{{ d }}{% if not forloop.Last %}<br>{% endif %}{% endfor %}</td>
<td>{{ c.Duration }}</td>
</tr>
{% endfor %}</tbody>
</table>
</body>
</html>
`))

type htmlCheck struct {
	Name     string
	Status   string
	Class    string
	Details  []string
	Duration string
}

// Render executes the report template.
func (h HTML) Render(r *runner.Report) ([]byte, error) {
	title := h.Title
	if title == "" {
		title = "uismoke report"
	}

	checks := make([]htmlCheck, 0, len(r.Results))
	for _, e := range r.Results {
		checks = append(checks, htmlCheck{
			Name:     e.Result.Name,
			Status:   string(e.Result.Status),
			Class:    strings.ToLower(string(e.Result.Status)),
			Details:  e.Result.Details,
			Duration: e.Duration.Round(time.Millisecond).String(),
		})
	}

	abortErr := ""
	if r.AbortErr != nil {
		abortErr = r.AbortErr.Error()
	}
	sum := r.Summary()

	out, err := htmlTemplate.Execute(pongo2.Context{
		"title":       title,
		"started":     r.StartedAt.UTC().Format(time.RFC3339),
		"finished":    r.FinishedAt.UTC().Format(time.RFC3339),
		"duration":    r.Duration().Round(time.Millisecond).String(),
		"aborted":     r.Aborted,
		"abort_error": abortErr,
		"summary":     sum,
		"pass_rate":   fmt.Sprintf("%.1f%%", sum.PassRate()*100),
		"checks":      checks,
	})
	if err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return []byte(out), nil
}
