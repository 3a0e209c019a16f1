// Package browser describes the browser capability that checks run against.
// The interfaces are small on purpose: a check navigates, looks elements
// up, waits for them with a bound, and resizes the viewport.
package browser

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// SelectorKind tells a Session how to interpret Selector.Value.
type SelectorKind int

const (
	ByCSS SelectorKind = iota
	ByTag
	ByLinkText
)

// Selector identifies an element on the current page.
type Selector struct {
	Kind  SelectorKind
	Value string
}

// CSS selects by CSS selector.
func CSS(v string) Selector { return Selector{Kind: ByCSS, Value: v} }

// Tag selects the first element with the tag name.
func Tag(v string) Selector { return Selector{Kind: ByTag, Value: v} }

// LinkText selects an anchor whose visible text is exactly v.
func LinkText(v string) Selector { return Selector{Kind: ByLinkText, Value: v} }

func (s Selector) String() string {
	switch s.Kind {
	case ByTag:
		return "tag " + s.Value
	case ByLinkText:
		return "link " + strconv.Quote(s.Value)
	default:
		return "css " + s.Value
	}
}

// Viewport is a browser window size in CSS pixels.
type Viewport struct {
	Width  int `mapstructure:"width" json:"width"`
	Height int `mapstructure:"height" json:"height"`
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

var (
	MobileViewport  = Viewport{Width: 375, Height: 667}
	DesktopViewport = Viewport{Width: 1920, Height: 1080}
)

// Session is a live connection to one browser page.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	// Find returns ErrNotFound if nothing matches.
	Find(ctx context.Context, sel Selector) (Element, error)
	// WaitFor returns ErrTimeout if nothing matches within timeout.
	WaitFor(ctx context.Context, sel Selector, timeout time.Duration) error
	SetViewport(ctx context.Context, width, height int) error
	Close() error
}

// Element is a handle to an element found on the page.
type Element interface {
	Text(ctx context.Context) (string, error)
	// Attribute reports false when the attribute is absent.
	Attribute(ctx context.Context, name string) (string, bool, error)
	Click(ctx context.Context) error
	IsDisplayed(ctx context.Context) (bool, error)
}

// Screenshotter is implemented by sessions able to capture the page.
type Screenshotter interface {
	Screenshot(ctx context.Context, path string) error
}
