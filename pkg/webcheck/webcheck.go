// Package webcheck implements the standard smoke checks run against the
// target web application. Each check is a struct holding configuration;
// Run fills in defaults and never mutates the struct.
package webcheck

import (
	"context"
	"strings"
	"time"

	"github.com/vertti/uismoke/pkg/browser"
)

// DefaultTimeout bounds every wait a check performs.
const DefaultTimeout = 15 * time.Second

func timeoutOr(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

func readyOr(sel browser.Selector) browser.Selector {
	if sel.Value == "" {
		return browser.Tag("body")
	}
	return sel
}

func listOr(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

// load navigates to url and waits for ready to be present.
func load(ctx context.Context, s browser.Session, url string, ready browser.Selector, timeout time.Duration) error {
	if err := s.Navigate(ctx, url); err != nil {
		return err
	}
	return s.WaitFor(ctx, ready, timeout)
}

// bodyText returns the rendered text of the page body.
func bodyText(ctx context.Context, s browser.Session) (string, error) {
	body, err := s.Find(ctx, browser.Tag("body"))
	if err != nil {
		return "", err
	}
	return body.Text(ctx)
}

// JoinURL appends path to base without doubling the slash between them.
func JoinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func containsAny(s string, words []string) (string, bool) {
	for _, w := range words {
		if strings.Contains(s, w) {
			return w, true
		}
	}
	return "", false
}
