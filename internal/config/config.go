package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/output"
	"github.com/vertti/uismoke/pkg/webcheck"
)

type Browser struct {
	Name     string           `mapstructure:"name"`
	Headless bool             `mapstructure:"headless"`
	SlowMo   time.Duration    `mapstructure:"slow_mo"`
	Install  bool             `mapstructure:"install"`
	Viewport browser.Viewport `mapstructure:"viewport"`
}

type Checks struct {
	Only          []string         `mapstructure:"only"`
	TitleKeywords []string         `mapstructure:"title_keywords"`
	NavLinks      []string         `mapstructure:"nav_links"`
	MinNavLinks   int              `mapstructure:"min_nav_links"`
	Routes        []string         `mapstructure:"routes"`
	MinChars      int              `mapstructure:"min_chars"`
	ThemeToggles  []string         `mapstructure:"theme_toggles"`
	ThemeSettle   time.Duration    `mapstructure:"theme_settle"`
	APIKeywords   []string         `mapstructure:"api_keywords"`
	APIJSONPath   string           `mapstructure:"api_json_path"`
	Mobile        browser.Viewport `mapstructure:"mobile"`
	Desktop       browser.Viewport `mapstructure:"desktop"`
}

type Report struct {
	Format         string `mapstructure:"format"`
	Output         string `mapstructure:"output"`
	MetricsFile    string `mapstructure:"metrics_file"`
	ScreenshotsDir string `mapstructure:"screenshots_dir"`
}

type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIPath      string        `mapstructure:"api_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CheckTimeout time.Duration `mapstructure:"check_timeout"`
	LogLevel     string        `mapstructure:"log_level"`
	Precheck     bool          `mapstructure:"precheck"`
	Browser      Browser       `mapstructure:"browser"`
	Checks       Checks        `mapstructure:"checks"`
	Report       Report        `mapstructure:"report"`
}

// Browsers lists the engines Playwright can launch.
var Browsers = []string{"chromium", "firefox", "webkit"}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("base_url: scheme must be http or https, got %q", c.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("base_url: missing host in %q", c.BaseURL))
	}

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.CheckTimeout < 0 {
		errs = append(errs, fmt.Errorf("check_timeout must not be negative, got %s", c.CheckTimeout))
	}
	if !slices.Contains(Browsers, strings.ToLower(c.Browser.Name)) {
		errs = append(errs, fmt.Errorf("browser.name: must be one of %s, got %q", strings.Join(Browsers, ", "), c.Browser.Name))
	}
	if !slices.Contains(output.Formats, strings.ToLower(c.Report.Format)) {
		errs = append(errs, fmt.Errorf("report.format: must be one of %s, got %q", strings.Join(output.Formats, ", "), c.Report.Format))
	}

	ch := c.Checks
	if ch.MinNavLinks < 1 || ch.MinNavLinks > len(ch.NavLinks) {
		errs = append(errs, fmt.Errorf("checks.min_nav_links: must be between 1 and %d, got %d", len(ch.NavLinks), ch.MinNavLinks))
	}
	if ch.MinChars < 0 {
		errs = append(errs, fmt.Errorf("checks.min_chars must not be negative, got %d", ch.MinChars))
	}
	for name, vp := range map[string]browser.Viewport{
		"checks.mobile":    ch.Mobile,
		"checks.desktop":   ch.Desktop,
		"browser.viewport": c.Browser.Viewport,
	} {
		if vp.Width <= 0 || vp.Height <= 0 {
			errs = append(errs, fmt.Errorf("%s: width and height must be positive, got %s", name, vp))
		}
	}

	return errors.Join(errs...)
}

// Settings converts the check configuration into suite settings.
func (c *Config) Settings() webcheck.Settings {
	return webcheck.Settings{
		BaseURL:       c.BaseURL,
		APIPath:       c.APIPath,
		Timeout:       c.Timeout,
		TitleKeywords: c.Checks.TitleKeywords,
		NavLinks:      c.Checks.NavLinks,
		MinNavLinks:   c.Checks.MinNavLinks,
		Routes:        c.Checks.Routes,
		MinChars:      c.Checks.MinChars,
		ThemeToggles:  c.Checks.ThemeToggles,
		ThemeSettle:   c.Checks.ThemeSettle,
		APIKeywords:   c.Checks.APIKeywords,
		APIJSONPath:   c.Checks.APIJSONPath,
		Mobile:        c.Checks.Mobile,
		Desktop:       c.Checks.Desktop,
	}
}
