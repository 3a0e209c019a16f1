package webcheck

import (
	"context"
	"time"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
)

// DefaultTitleKeywords are accepted in the home page title.
var DefaultTitleKeywords = []string{"RapidXTech", "Innovative", "Tech"}

// Homepage verifies the home page loads with an expected title.
type Homepage struct {
	URL           string           // page to load (required)
	TitleKeywords []string         // title must contain one of these
	Ready         browser.Selector // element that marks the page as loaded (default: body)
	Timeout       time.Duration    // wait bound (default: 15s)
}

func (c *Homepage) Name() string { return "homepage" }

// Run executes the home page check.
func (c *Homepage) Run(ctx context.Context, s browser.Session) check.Result {
	result := check.Result{Name: c.Name()}

	if c.URL == "" {
		return result.Failf("URL is required")
	}
	keywords := listOr(c.TitleKeywords, DefaultTitleKeywords)

	if err := load(ctx, s, c.URL, readyOr(c.Ready), timeoutOr(c.Timeout)); err != nil {
		return result.Failf("page did not load: %w", err)
	}

	title, err := s.Title(ctx)
	if err != nil {
		return result.Failf("failed to read title: %w", err)
	}

	if _, ok := containsAny(title, keywords); !ok {
		return result.Failf("unexpected title %q: %w", title, browser.ErrUnexpectedContent)
	}
	return result.Passf("page title: %s", title)
}
