package runner

import (
	"time"

	"github.com/vertti/uismoke/pkg/check"
)

// Entry is one executed check.
type Entry struct {
	Result    check.Result
	StartedAt time.Time
	Duration  time.Duration
}

// Report is the ordered outcome of one run.
type Report struct {
	Results    []Entry
	Total      int // checks registered for the run
	StartedAt  time.Time
	FinishedAt time.Time
	Aborted    bool
	AbortErr   error
}

// Summary holds aggregate counts of a report.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	NotRun  int
}

// PassRate returns Passed/Total, or 0 for an empty run.
func (s Summary) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total)
}

// Summary counts outcomes by status.
func (r *Report) Summary() Summary {
	s := Summary{Total: r.Total}
	for _, e := range r.Results {
		switch e.Result.Status {
		case check.StatusPass:
			s.Passed++
		case check.StatusSkip:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	s.NotRun = r.Total - len(r.Results)
	return s
}

// OK reports whether the run completed without failures.
func (r *Report) OK() bool {
	if r.Aborted {
		return false
	}
	return r.Summary().Failed == 0
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
