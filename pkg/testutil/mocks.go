package testutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vertti/uismoke/pkg/browser"
)

// Page is the content a FakeSession serves for one URL.
type Page struct {
	Title      string
	Body       string
	BodyHidden bool
	Links      []string                // visible anchor texts
	Elements   map[string]*FakeElement // keyed by Selector.String()
}

// FakeSession is an in-memory browser.Session for tests.
type FakeSession struct {
	Pages map[string]*Page

	// NavigateErr, when set for a URL, is returned by Navigate.
	NavigateErr map[string]error
	// Fault, when set, is returned by every call except Close.
	Fault error

	Visited     []string
	Viewports   []browser.Viewport
	Screenshots []string
	CloseCalls  int

	current *Page
}

// NewFakeSession returns a session serving pages keyed by URL.
func NewFakeSession(pages map[string]*Page) *FakeSession {
	if pages == nil {
		pages = map[string]*Page{}
	}
	return &FakeSession{Pages: pages, NavigateErr: map[string]error{}}
}

func (s *FakeSession) Navigate(_ context.Context, url string) error {
	if s.Fault != nil {
		return s.Fault
	}
	s.Visited = append(s.Visited, url)
	if err := s.NavigateErr[url]; err != nil {
		s.current = nil
		return err
	}
	p, ok := s.Pages[url]
	if !ok {
		s.current = &Page{Title: "404", Body: "not found"}
		return nil
	}
	s.current = p
	return nil
}

func (s *FakeSession) Title(context.Context) (string, error) {
	if s.Fault != nil {
		return "", s.Fault
	}
	if s.current == nil {
		return "", nil
	}
	return s.current.Title, nil
}

func (s *FakeSession) Find(_ context.Context, sel browser.Selector) (browser.Element, error) {
	if s.Fault != nil {
		return nil, s.Fault
	}
	if s.current == nil {
		return nil, fmt.Errorf("%w: %s", browser.ErrNotFound, sel)
	}
	if el, ok := s.current.Elements[sel.String()]; ok {
		return el, nil
	}
	switch sel.Kind {
	case browser.ByTag:
		if strings.EqualFold(sel.Value, "body") {
			return &FakeElement{TextValue: s.current.Body, Hidden: s.current.BodyHidden}, nil
		}
	case browser.ByLinkText:
		for _, l := range s.current.Links {
			if l == sel.Value {
				return &FakeElement{TextValue: l}, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", browser.ErrNotFound, sel)
}

func (s *FakeSession) WaitFor(ctx context.Context, sel browser.Selector, _ time.Duration) error {
	if _, err := s.Find(ctx, sel); err != nil {
		if s.Fault != nil {
			return err
		}
		return fmt.Errorf("%w: %s", browser.ErrTimeout, sel)
	}
	return nil
}

func (s *FakeSession) SetViewport(_ context.Context, width, height int) error {
	if s.Fault != nil {
		return s.Fault
	}
	s.Viewports = append(s.Viewports, browser.Viewport{Width: width, Height: height})
	return nil
}

func (s *FakeSession) Screenshot(_ context.Context, path string) error {
	if s.Fault != nil {
		return s.Fault
	}
	s.Screenshots = append(s.Screenshots, path)
	return nil
}

func (s *FakeSession) Close() error {
	s.CloseCalls++
	return nil
}

// LastViewport returns the most recent viewport set, or the zero value.
func (s *FakeSession) LastViewport() browser.Viewport {
	if len(s.Viewports) == 0 {
		return browser.Viewport{}
	}
	return s.Viewports[len(s.Viewports)-1]
}

// FakeElement is an in-memory browser.Element.
type FakeElement struct {
	TextValue string
	Attrs     map[string]string
	Hidden    bool
	ClickFunc func() error
	Clicks    int
}

func (e *FakeElement) Text(context.Context) (string, error) {
	return e.TextValue, nil
}

func (e *FakeElement) Attribute(_ context.Context, name string) (string, bool, error) {
	v, ok := e.Attrs[name]
	return v, ok, nil
}

func (e *FakeElement) Click(context.Context) error {
	e.Clicks++
	if e.ClickFunc != nil {
		return e.ClickFunc()
	}
	return nil
}

func (e *FakeElement) IsDisplayed(context.Context) (bool, error) {
	return !e.Hidden, nil
}

// HealthySite returns pages under base on which every standard check
// passes: a titled home page with navigation and a working theme toggle,
// content-rich routes, and an API status page.
func HealthySite(base string) map[string]*Page {
	content := strings.Repeat("RapidXTech builds cloud and DevOps platforms. ", 5)

	root := &FakeElement{Attrs: map[string]string{"class": "light"}}
	toggle := &FakeElement{ClickFunc: func() error {
		if root.Attrs["class"] == "light" {
			root.Attrs["class"] = "dark"
		} else {
			root.Attrs["class"] = "light"
		}
		return nil
	}}

	base = strings.TrimRight(base, "/")
	return map[string]*Page{
		base: {
			Title: "RapidXTech | Innovative Tech Solutions",
			Body:  content,
			Links: []string{"About", "Case Studies", "Blog", "Careers", "Contact"},
			Elements: map[string]*FakeElement{
				browser.Tag("html").String():                        root,
				browser.CSS("button[aria-label*='theme']").String(): toggle,
			},
		},
		base + "/about":       {Title: "About", Body: content},
		base + "/blog":        {Title: "Blog", Body: content},
		base + "/contact":     {Title: "Contact", Body: content},
		base + "/devops-demo": {Title: "DevOps Demo", Body: "Backend status: ok"},
	}
}

// ContainsDetail checks if any detail string contains the given substring.
func ContainsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}
