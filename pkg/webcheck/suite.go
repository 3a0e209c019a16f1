package webcheck

import (
	"fmt"
	"strings"
	"time"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
)

// Settings is everything needed to assemble the standard suite.
// Zero values fall back to each check's defaults.
type Settings struct {
	BaseURL       string
	APIPath       string
	Timeout       time.Duration
	TitleKeywords []string
	NavLinks      []string
	MinNavLinks   int
	Routes        []string
	MinChars      int
	ThemeToggles  []string
	ThemeSettle   time.Duration
	APIKeywords   []string
	APIJSONPath   string
	Mobile        browser.Viewport
	Desktop       browser.Viewport
}

// DefaultAPIPath is the backend path probed by the API check.
const DefaultAPIPath = "/devops-demo"

// Suite returns the six standard checks in execution order.
func Suite(st Settings) []check.Checker {
	apiPath := st.APIPath
	if apiPath == "" {
		apiPath = DefaultAPIPath
	}
	return []check.Checker{
		&Homepage{URL: st.BaseURL, TitleKeywords: st.TitleKeywords, Timeout: st.Timeout},
		&NavMenu{URL: st.BaseURL, Links: st.NavLinks, MinFound: st.MinNavLinks, Timeout: st.Timeout},
		&Routes{BaseURL: st.BaseURL, Paths: st.Routes, MinChars: st.MinChars, Timeout: st.Timeout},
		&ThemeToggle{URL: st.BaseURL, Toggles: st.ThemeToggles, Settle: st.ThemeSettle, Timeout: st.Timeout},
		&API{URL: JoinURL(st.BaseURL, apiPath), Keywords: st.APIKeywords, JSONPath: st.APIJSONPath, Timeout: st.Timeout},
		&Responsive{URL: st.BaseURL, Mobile: st.Mobile, Desktop: st.Desktop, Timeout: st.Timeout},
	}
}

// Select keeps only the named checks, preserving suite order.
// An empty list keeps everything; unknown names are an error.
func Select(checks []check.Checker, only []string) ([]check.Checker, error) {
	if len(only) == 0 {
		return checks, nil
	}
	want := make(map[string]bool, len(only))
	for _, n := range only {
		want[strings.TrimSpace(n)] = true
	}

	var selected []check.Checker
	for _, c := range checks {
		if want[c.Name()] {
			selected = append(selected, c)
			delete(want, c.Name())
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for _, n := range only {
			if want[strings.TrimSpace(n)] {
				unknown = append(unknown, strings.TrimSpace(n))
			}
		}
		return nil, fmt.Errorf("unknown check(s): %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}
