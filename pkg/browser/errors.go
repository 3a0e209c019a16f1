package browser

import "errors"

var (
	// ErrNotFound means an expected element is absent.
	ErrNotFound = errors.New("element not found")
	// ErrTimeout means a bounded wait expired.
	ErrTimeout = errors.New("wait timed out")
	// ErrUnexpectedContent means content is present but fails a predicate.
	ErrUnexpectedContent = errors.New("unexpected content")
	// ErrSessionFault means the browser session itself is unusable.
	// Checks pass it through and the runner stops the suite.
	ErrSessionFault = errors.New("browser session fault")
)

// IsSessionFault reports whether err wraps ErrSessionFault.
func IsSessionFault(err error) bool {
	return errors.Is(err, ErrSessionFault)
}
