package output

import (
	"encoding/json"
	"time"

	"github.com/vertti/uismoke/pkg/runner"
)

// JSON renders the report as an indented JSON document.
type JSON struct{}

type jsonSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	NotRun   int     `json:"not_run"`
	PassRate float64 `json:"pass_rate"`
}

type jsonCheck struct {
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Details    []string  `json:"details,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

type jsonReport struct {
	Status     string      `json:"status"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	DurationMS int64       `json:"duration_ms"`
	Aborted    bool        `json:"aborted"`
	AbortError string      `json:"abort_error,omitempty"`
	Summary    jsonSummary `json:"summary"`
	Checks     []jsonCheck `json:"checks"`
}

// Render encodes the report.
func (JSON) Render(r *runner.Report) ([]byte, error) {
	sum := r.Summary()
	doc := jsonReport{
		Status:     runStatus(r),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		DurationMS: r.Duration().Milliseconds(),
		Aborted:    r.Aborted,
		Summary: jsonSummary{
			Total:    sum.Total,
			Passed:   sum.Passed,
			Failed:   sum.Failed,
			Skipped:  sum.Skipped,
			NotRun:   sum.NotRun,
			PassRate: sum.PassRate(),
		},
		Checks: make([]jsonCheck, 0, len(r.Results)),
	}
	if r.AbortErr != nil {
		doc.AbortError = r.AbortErr.Error()
	}

	for _, e := range r.Results {
		c := jsonCheck{
			Name:       e.Result.Name,
			Status:     string(e.Result.Status),
			Details:    e.Result.Details,
			StartedAt:  e.StartedAt,
			DurationMS: e.Duration.Milliseconds(),
		}
		if len(e.Result.Details) > 0 {
			c.Message = e.Result.Details[0]
		}
		if e.Result.Err != nil {
			c.Error = e.Result.Err.Error()
		}
		doc.Checks = append(doc.Checks, c)
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// runStatus summarizes a run as passed, failed or aborted.
func runStatus(r *runner.Report) string {
	switch {
	case r.Aborted:
		return "aborted"
	case r.OK():
		return "passed"
	default:
		return "failed"
	}
}
