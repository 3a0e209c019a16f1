package webcheck

import (
	"context"
	"time"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
)

// Responsive verifies that the page content stays visible on a mobile
// viewport. The desktop viewport is restored on every path.
type Responsive struct {
	URL     string           // page to load (required)
	Mobile  browser.Viewport // default: 375x667
	Desktop browser.Viewport // default: 1920x1080
	Root    browser.Selector // default: body
	Timeout time.Duration    // default: 15s
}

func (c *Responsive) Name() string { return "responsive" }

// Run executes the responsive layout check.
func (c *Responsive) Run(ctx context.Context, s browser.Session) (result check.Result) {
	result = check.Result{Name: c.Name()}

	if c.URL == "" {
		return result.Failf("URL is required")
	}
	mobile := c.Mobile
	if mobile.Width <= 0 || mobile.Height <= 0 {
		mobile = browser.MobileViewport
	}
	desktop := c.Desktop
	if desktop.Width <= 0 || desktop.Height <= 0 {
		desktop = browser.DesktopViewport
	}
	root := readyOr(c.Root)

	defer func() {
		if err := s.SetViewport(ctx, desktop.Width, desktop.Height); err != nil {
			if result.Passed() {
				result = check.Result{Name: c.Name()}
				result = result.Failf("could not restore %s viewport: %w", desktop, err)
				return
			}
			result.AddDetailf("could not restore %s viewport: %v", desktop, err)
		}
	}()

	if err := s.SetViewport(ctx, mobile.Width, mobile.Height); err != nil {
		return result.Failf("could not set %s viewport: %w", mobile, err)
	}
	if err := load(ctx, s, c.URL, root, timeoutOr(c.Timeout)); err != nil {
		return result.Failf("page did not load at %s: %w", mobile, err)
	}

	el, err := s.Find(ctx, root)
	if err != nil {
		return result.Failf("%s at %s: %w", root, mobile, err)
	}
	visible, err := el.IsDisplayed(ctx)
	if err != nil {
		return result.Failf("checking visibility: %w", err)
	}
	if !visible {
		return result.Failf("%s not displayed at %s: %w", root, mobile, browser.ErrUnexpectedContent)
	}
	return result.Passf("%s displayed at %s", root, mobile)
}
