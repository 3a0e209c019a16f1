package check

import (
	"errors"
	"fmt"
)

// Pass sets the result to passed status with a detail message.
func (r *Result) Pass(detail string) Result {
	r.Status = StatusPass
	r.Details = append(r.Details, detail)
	return *r
}

// Passf sets the result to passed status with a formatted detail message.
func (r *Result) Passf(format string, args ...any) Result {
	return r.Pass(fmt.Sprintf(format, args...))
}

// Fail sets the result to failed status with a detail message.
func (r *Result) Fail(detail string, err error) Result {
	r.Status = StatusFail
	r.Details = append(r.Details, detail)
	r.Err = err
	return *r
}

// Failf sets the result to failed status with a formatted detail message.
// A %w verb in format keeps the wrapped error reachable through errors.Is.
func (r *Result) Failf(format string, args ...any) Result {
	err := fmt.Errorf(format, args...)
	return r.Fail(err.Error(), err)
}

// Skip sets the result to skipped status with a reason.
func (r *Result) Skip(reason string) Result {
	r.Status = StatusSkip
	r.Details = append(r.Details, reason)
	return *r
}

// Skipf sets the result to skipped status with a formatted reason.
func (r *Result) Skipf(format string, args ...any) Result {
	return r.Skip(fmt.Sprintf(format, args...))
}

// AddDetail appends a detail line to the result.
func (r *Result) AddDetail(detail string) *Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted detail line to the result.
func (r *Result) AddDetailf(format string, args ...any) *Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}

// ErrDuplicateName is returned when two checks in a suite share a name.
var ErrDuplicateName = errors.New("duplicate check name")

// ValidateNames reports an error if any checker has an empty name or
// a name already used by an earlier checker.
func ValidateNames(checks []Checker) error {
	seen := make(map[string]struct{}, len(checks))
	for i, c := range checks {
		name := c.Name()
		if name == "" {
			return fmt.Errorf("check #%d has an empty name", i+1)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
