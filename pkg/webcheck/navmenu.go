package webcheck

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
)

// DefaultNavLinks are the navigation labels looked up by exact text.
var DefaultNavLinks = []string{"About", "Case Studies", "Blog", "Careers", "Contact"}

// DefaultMinNavLinks is how many of the labels must be present.
const DefaultMinNavLinks = 3

// NavMenu verifies that enough navigation links are present.
type NavMenu struct {
	URL      string           // page to load (required)
	Links    []string         // link labels (default: DefaultNavLinks)
	MinFound int              // pass threshold (default: 3)
	Ready    browser.Selector // default: body
	Timeout  time.Duration    // default: 15s
}

func (c *NavMenu) Name() string { return "nav-menu" }

// Run executes the navigation menu check.
func (c *NavMenu) Run(ctx context.Context, s browser.Session) check.Result {
	result := check.Result{Name: c.Name()}

	if c.URL == "" {
		return result.Failf("URL is required")
	}
	links := listOr(c.Links, DefaultNavLinks)
	minFound := c.MinFound
	if minFound <= 0 {
		minFound = DefaultMinNavLinks
	}

	if err := load(ctx, s, c.URL, readyOr(c.Ready), timeoutOr(c.Timeout)); err != nil {
		return result.Failf("page did not load: %w", err)
	}

	found := 0
	var missing []string
	for _, label := range links {
		_, err := s.Find(ctx, browser.LinkText(label))
		switch {
		case err == nil:
			found++
		case errors.Is(err, browser.ErrNotFound):
			missing = append(missing, label)
		default:
			return result.Failf("looking up link %q: %w", label, err)
		}
	}

	if found < minFound {
		result.Failf("only found %d/%d navigation links (need %d): %w", found, len(links), minFound, browser.ErrNotFound)
	} else {
		result.Passf("found %d/%d navigation links", found, len(links))
	}
	if len(missing) > 0 {
		result.AddDetailf("missing: %s", strings.Join(missing, ", "))
	}
	return result
}
