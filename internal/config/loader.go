package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/webcheck"
)

// DefaultBaseURL is the deployment checked when nothing else is configured.
const DefaultBaseURL = "http://20.219.203.205"

// EnvPrefix namespaces environment overrides, e.g. UISMOKE_BASE_URL or
// UISMOKE_BROWSER_HEADLESS.
const EnvPrefix = "UISMOKE"

// Load reads the YAML file at path (if any), applies defaults and
// environment overrides, and decodes the result. It does not validate.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("api_path", webcheck.DefaultAPIPath)
	v.SetDefault("timeout", webcheck.DefaultTimeout)
	v.SetDefault("check_timeout", "0s")
	v.SetDefault("log_level", "info")
	v.SetDefault("precheck", true)

	v.SetDefault("browser.name", "chromium")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", "0s")
	v.SetDefault("browser.install", false)
	v.SetDefault("browser.viewport.width", browser.DesktopViewport.Width)
	v.SetDefault("browser.viewport.height", browser.DesktopViewport.Height)

	v.SetDefault("checks.only", []string{})
	v.SetDefault("checks.title_keywords", webcheck.DefaultTitleKeywords)
	v.SetDefault("checks.nav_links", webcheck.DefaultNavLinks)
	v.SetDefault("checks.min_nav_links", webcheck.DefaultMinNavLinks)
	v.SetDefault("checks.routes", webcheck.DefaultRoutes)
	v.SetDefault("checks.min_chars", webcheck.DefaultMinChars)
	v.SetDefault("checks.theme_toggles", webcheck.DefaultThemeToggles)
	v.SetDefault("checks.theme_settle", webcheck.DefaultThemeSettle)
	v.SetDefault("checks.api_keywords", webcheck.DefaultAPIKeywords)
	v.SetDefault("checks.api_json_path", "")
	v.SetDefault("checks.mobile.width", browser.MobileViewport.Width)
	v.SetDefault("checks.mobile.height", browser.MobileViewport.Height)
	v.SetDefault("checks.desktop.width", browser.DesktopViewport.Width)
	v.SetDefault("checks.desktop.height", browser.DesktopViewport.Height)

	v.SetDefault("report.format", "text")
	v.SetDefault("report.output", "")
	v.SetDefault("report.metrics_file", "")
	v.SetDefault("report.screenshots_dir", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
