package webcheck

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
)

// DefaultThemeToggles are tried in order to locate the theme control.
var DefaultThemeToggles = []string{
	"button[aria-label*='theme']",
	"button[class*='theme']",
}

// DefaultThemeSettle bounds the wait for the root attribute to change.
const DefaultThemeSettle = 2 * time.Second

// ThemeToggle verifies that clicking the theme control changes an
// attribute of the root element. The control is optional UI: when it
// cannot be located the check is skipped.
type ThemeToggle struct {
	URL       string           // page to load (required)
	Root      browser.Selector // default: tag html
	Attribute string           // default: class
	Toggles   []string         // CSS selectors (default: DefaultThemeToggles)
	Settle    time.Duration    // default: 2s
	Timeout   time.Duration    // default: 15s
}

func (c *ThemeToggle) Name() string { return "theme-toggle" }

// Run executes the theme toggle check.
func (c *ThemeToggle) Run(ctx context.Context, s browser.Session) check.Result {
	result := check.Result{Name: c.Name()}

	if c.URL == "" {
		return result.Failf("URL is required")
	}
	root := c.Root
	if root.Value == "" {
		root = browser.Tag("html")
	}
	attr := c.Attribute
	if attr == "" {
		attr = "class"
	}
	settle := c.Settle
	if settle <= 0 {
		settle = DefaultThemeSettle
	}

	if err := load(ctx, s, c.URL, root, timeoutOr(c.Timeout)); err != nil {
		return result.Failf("page did not load: %w", err)
	}

	rootEl, err := s.Find(ctx, root)
	if err != nil {
		return result.Failf("root element %s: %w", root, err)
	}
	initial, _, err := rootEl.Attribute(ctx, attr)
	if err != nil {
		return result.Failf("reading %s: %w", attr, err)
	}

	toggle, sel, err := findFirst(ctx, s, listOr(c.Toggles, DefaultThemeToggles))
	if err != nil {
		if errors.Is(err, browser.ErrNotFound) {
			return result.Skip("theme switcher not found (optional UI)")
		}
		return result.Failf("looking up theme switcher: %w", err)
	}

	if err := toggle.Click(ctx); err != nil {
		return result.Failf("clicking %s: %w", sel, err)
	}

	var current string
	err = browser.WaitUntil(ctx, settle, 0, func(ctx context.Context) (bool, error) {
		v, _, err := rootEl.Attribute(ctx, attr)
		if err != nil {
			return false, err
		}
		current = v
		return v != initial, nil
	})
	switch {
	case errors.Is(err, browser.ErrTimeout):
		return result.Failf("%s unchanged after toggle (%q): %w", attr, initial, browser.ErrUnexpectedContent)
	case err != nil:
		return result.Failf("reading %s after toggle: %w", attr, err)
	}
	return result.Passf("theme switched: %s %q -> %q", attr, initial, current)
}

// findFirst returns the first element matching any of the CSS selectors.
func findFirst(ctx context.Context, s browser.Session, selectors []string) (browser.Element, string, error) {
	for _, css := range selectors {
		el, err := s.Find(ctx, browser.CSS(css))
		if err == nil {
			return el, css, nil
		}
		if !errors.Is(err, browser.ErrNotFound) {
			return nil, css, err
		}
	}
	return nil, "", errors.Join(browser.ErrNotFound, errors.New("tried "+strings.Join(selectors, ", ")))
}
