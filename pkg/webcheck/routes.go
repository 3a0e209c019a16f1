package webcheck

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
)

// DefaultRoutes are the paths that must render real content.
var DefaultRoutes = []string{"/about", "/blog", "/contact"}

// DefaultMinChars is the body length a route must exceed.
const DefaultMinChars = 50

// Routes verifies that each route renders more than MinChars of text.
type Routes struct {
	BaseURL  string           // site root (required)
	Paths    []string         // default: DefaultRoutes
	MinChars int              // default: 50
	Ready    browser.Selector // default: body
	Timeout  time.Duration    // default: 15s
}

func (c *Routes) Name() string { return "routing" }

// Run executes the routing check. Every path is visited even after a
// short one so the result lists all offenders.
func (c *Routes) Run(ctx context.Context, s browser.Session) check.Result {
	result := check.Result{Name: c.Name()}

	if c.BaseURL == "" {
		return result.Failf("base URL is required")
	}
	paths := listOr(c.Paths, DefaultRoutes)
	minChars := c.MinChars
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	ready := readyOr(c.Ready)
	timeout := timeoutOr(c.Timeout)

	var short []string
	for _, path := range paths {
		if err := load(ctx, s, JoinURL(c.BaseURL, path), ready, timeout); err != nil {
			if browser.IsSessionFault(err) {
				return result.Failf("route %s: %w", path, err)
			}
			short = append(short, fmt.Sprintf("%s (did not load: %v)", path, err))
			continue
		}
		text, err := bodyText(ctx, s)
		if err != nil {
			if browser.IsSessionFault(err) {
				return result.Failf("route %s: %w", path, err)
			}
			short = append(short, fmt.Sprintf("%s (%v)", path, err))
			continue
		}
		if n := utf8.RuneCountInString(text); n <= minChars {
			short = append(short, fmt.Sprintf("%s (%d chars)", path, n))
		}
	}

	if len(short) > 0 {
		return result.Failf("%d/%d routes below %d chars: %s: %w",
			len(short), len(paths), minChars, strings.Join(short, ", "), browser.ErrUnexpectedContent)
	}
	return result.Passf("routed to %d pages", len(paths))
}
