// Package pwsession implements browser.Session on top of Playwright.
package pwsession

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/vertti/uismoke/pkg/browser"
)

// DefaultTimeout is applied to every Playwright action.
const DefaultTimeout = 15 * time.Second

// Options configure the launched browser.
type Options struct {
	Browser  string           // chromium, firefox or webkit (default: chromium)
	Headless bool             // run without a window
	SlowMo   time.Duration    // delay between actions, for watching a run
	Timeout  time.Duration    // default action timeout (default: 15s)
	Viewport browser.Viewport // initial viewport (default: 1920x1080)
	Install  bool             // download driver and browser first
}

// Session is a single Playwright page.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page
	timeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Launch starts Playwright and opens one page.
func Launch(opts Options) (*Session, error) {
	name := strings.ToLower(opts.Browser)
	if name == "" {
		name = "chromium"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	vp := opts.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = browser.DesktopViewport
	}

	if opts.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{name}}); err != nil {
			return nil, fmt.Errorf("could not install playwright %s: %w", name, err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	s := &Session{pw: pw, timeout: timeout}

	var bt playwright.BrowserType
	var args []string
	switch name {
	case "chromium", "chrome":
		bt = pw.Chromium
		args = []string{"--no-sandbox", "--disable-dev-shm-usage"}
	case "firefox":
		bt = pw.Firefox
	case "webkit":
		bt = pw.WebKit
	default:
		_ = s.Close()
		return nil, fmt.Errorf("unknown browser %q", opts.Browser)
	}

	s.browser, err = bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
		Args:     args,
	})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("could not launch %s: %w", name, err)
	}

	s.bctx, err = s.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: vp.Width, Height: vp.Height},
	})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("could not create context: %w", err)
	}

	s.page, err = s.bctx.NewPage()
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	s.page.SetDefaultTimeout(float64(timeout.Milliseconds()))
	s.page.SetDefaultNavigationTimeout(float64(timeout.Milliseconds()))

	return s, nil
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   s.timeoutMS(ctx, s.timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return s.wrap(fmt.Errorf("navigate %s: %w", url, err))
	}
	return nil
}

func (s *Session) Title(context.Context) (string, error) {
	title, err := s.page.Title()
	if err != nil {
		return "", s.wrap(err)
	}
	return title, nil
}

func (s *Session) Find(_ context.Context, sel browser.Selector) (browser.Element, error) {
	loc := s.page.Locator(Query(sel))
	n, err := loc.Count()
	if err != nil {
		return nil, s.wrap(err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", browser.ErrNotFound, sel)
	}
	return &element{s: s, loc: loc.First()}, nil
}

func (s *Session) WaitFor(ctx context.Context, sel browser.Selector, timeout time.Duration) error {
	err := s.page.Locator(Query(sel)).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: s.timeoutMS(ctx, timeout),
	})
	if err != nil {
		return s.wrap(fmt.Errorf("waiting for %s: %w", sel, err))
	}
	return nil
}

func (s *Session) SetViewport(_ context.Context, width, height int) error {
	if err := s.page.SetViewportSize(width, height); err != nil {
		return s.wrap(err)
	}
	return nil
}

func (s *Session) Screenshot(_ context.Context, path string) error {
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return s.wrap(err)
}

// Close tears down page, context, browser and driver. Only the first
// call does any work.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.page != nil {
			errs = append(errs, ignoreClosed(s.page.Close()))
		}
		if s.bctx != nil {
			errs = append(errs, ignoreClosed(s.bctx.Close()))
		}
		if s.browser != nil {
			errs = append(errs, ignoreClosed(s.browser.Close()))
		}
		if s.pw != nil {
			errs = append(errs, s.pw.Stop())
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

func ignoreClosed(err error) error {
	if errors.Is(err, playwright.ErrTargetClosed) {
		return nil
	}
	return err
}

// wrap maps Playwright errors onto the browser error taxonomy.
func (s *Session) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTargetClosed) || (s.page != nil && s.page.IsClosed()) {
		return fmt.Errorf("%w: %w", browser.ErrSessionFault, err)
	}
	return classify(err)
}

func classify(err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", browser.ErrTimeout, err)
	}
	return err
}

// timeoutMS returns d in milliseconds, shortened to the context deadline.
func (s *Session) timeoutMS(ctx context.Context, d time.Duration) *float64 {
	if d <= 0 {
		d = s.timeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < d {
			d = max(remaining, time.Millisecond)
		}
	}
	return playwright.Float(float64(d.Milliseconds()))
}

// Query converts a selector into a Playwright selector string.
func Query(sel browser.Selector) string {
	switch sel.Kind {
	case browser.ByLinkText:
		return "a:text-is(" + strconv.Quote(sel.Value) + ")"
	default:
		return sel.Value
	}
}

type element struct {
	s   *Session
	loc playwright.Locator
}

func (e *element) Text(ctx context.Context) (string, error) {
	text, err := e.loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: e.s.timeoutMS(ctx, 0)})
	if err != nil {
		return "", e.s.wrap(err)
	}
	return text, nil
}

func (e *element) Attribute(_ context.Context, name string) (string, bool, error) {
	v, err := e.loc.Evaluate(`(el, name) => el.getAttribute(name)`, name)
	if err != nil {
		return "", false, e.s.wrap(err)
	}
	if v == nil {
		return "", false, nil
	}
	str, ok := v.(string)
	return str, ok, nil
}

func (e *element) Click(ctx context.Context) error {
	return e.s.wrap(e.loc.Click(playwright.LocatorClickOptions{Timeout: e.s.timeoutMS(ctx, 0)}))
}

func (e *element) IsDisplayed(context.Context) (bool, error) {
	visible, err := e.loc.IsVisible()
	if err != nil {
		return false, e.s.wrap(err)
	}
	return visible, nil
}
