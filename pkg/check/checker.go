package check

import (
	"context"

	"github.com/vertti/uismoke/pkg/browser"
)

// Checker is implemented by all check types.
// Each check verifies one aspect of the page served by the target
// application and returns a Result that is PASS, FAIL or SKIP.
//
// Implementations:
//   - webcheck.Homepage: page loads with an expected title
//   - webcheck.NavMenu: enough navigation links are present
//   - webcheck.Routes: every route renders real content
//   - webcheck.ThemeToggle: the theme control changes the root class
//   - webcheck.API: the API path answers with expected content
//   - webcheck.Responsive: content survives a mobile viewport
type Checker interface {
	Name() string
	Run(ctx context.Context, s browser.Session) Result
}

// Func adapts a plain function into a Checker.
func Func(name string, fn func(ctx context.Context, s browser.Session) Result) Checker {
	return funcChecker{name: name, fn: fn}
}

type funcChecker struct {
	name string
	fn   func(ctx context.Context, s browser.Session) Result
}

func (f funcChecker) Name() string { return f.name }

func (f funcChecker) Run(ctx context.Context, s browser.Session) Result {
	return f.fn(ctx, s)
}
