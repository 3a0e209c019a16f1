package check

import "strings"

// Status represents the outcome of a check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusSkip Status = "SKIP"
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string   // e.g., "homepage", "nav-menu"
	Status  Status   // PASS, FAIL or SKIP
	Details []string // human-readable details, the first one is the message
	Err     error    // underlying error for failures
}

// Passed returns true if the check passed.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}

// Failed returns true if the check failed.
func (r Result) Failed() bool {
	return r.Status == StatusFail
}

// Skipped returns true if the check was skipped.
func (r Result) Skipped() bool {
	return r.Status == StatusSkip
}

// Message returns all details joined into a single line.
func (r Result) Message() string {
	return strings.Join(r.Details, "; ")
}
