package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/webcheck"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "/devops-demo", cfg.APIPath)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.True(t, cfg.Precheck)
	assert.Equal(t, "chromium", cfg.Browser.Name)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, webcheck.DefaultNavLinks, cfg.Checks.NavLinks)
	assert.Equal(t, 3, cfg.Checks.MinNavLinks)
	assert.Equal(t, 2*time.Second, cfg.Checks.ThemeSettle)
	assert.Equal(t, browser.MobileViewport, cfg.Checks.Mobile)
	assert.Equal(t, browser.DesktopViewport, cfg.Checks.Desktop)
	assert.Equal(t, "text", cfg.Report.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), FileName, `
base_url: https://staging.rapidxtech.example
timeout: 5s
browser:
  name: firefox
  headless: false
  slow_mo: 250ms
checks:
  routes: ["/about", "/pricing"]
  min_chars: 10
  mobile: {width: 414, height: 896}
report:
  format: json
  metrics_file: /tmp/uismoke.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.rapidxtech.example", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "firefox", cfg.Browser.Name)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 250*time.Millisecond, cfg.Browser.SlowMo)
	assert.Equal(t, []string{"/about", "/pricing"}, cfg.Checks.Routes)
	assert.Equal(t, 10, cfg.Checks.MinChars)
	assert.Equal(t, browser.Viewport{Width: 414, Height: 896}, cfg.Checks.Mobile)
	assert.Equal(t, browser.DesktopViewport, cfg.Checks.Desktop)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, "/tmp/uismoke.prom", cfg.Report.MetricsFile)
	assert.Equal(t, webcheck.DefaultTitleKeywords, cfg.Checks.TitleKeywords)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("UISMOKE_BASE_URL", "http://localhost:3000")
	t.Setenv("UISMOKE_BROWSER_HEADLESS", "false")
	t.Setenv("UISMOKE_REPORT_FORMAT", "html")
	t.Setenv("UISMOKE_CHECKS_MIN_NAV_LINKS", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "html", cfg.Report.Format)
	assert.Equal(t, 5, cfg.Checks.MinNavLinks)
}

func TestLoadBadFile(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), FileName, "base_url: [unterminated")
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to read config")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"relative base url", func(c *Config) { c.BaseURL = "/about" }, "scheme must be http or https"},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://host" }, "scheme must be http or https"},
		{"no host", func(c *Config) { c.BaseURL = "http://" }, "missing host"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"negative check timeout", func(c *Config) { c.CheckTimeout = -time.Second }, "check_timeout"},
		{"unknown browser", func(c *Config) { c.Browser.Name = "opera" }, "browser.name"},
		{"unknown format", func(c *Config) { c.Report.Format = "xml" }, "report.format"},
		{"threshold above link count", func(c *Config) { c.Checks.MinNavLinks = 6 }, "between 1 and 5"},
		{"zero threshold", func(c *Config) { c.Checks.MinNavLinks = 0 }, "min_nav_links"},
		{"negative min chars", func(c *Config) { c.Checks.MinChars = -1 }, "min_chars"},
		{"empty viewport", func(c *Config) { c.Checks.Mobile = browser.Viewport{} }, "checks.mobile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Timeout = 0
	cfg.Report.Format = "xml"

	err = cfg.Validate()
	assert.ErrorContains(t, err, "timeout must be positive")
	assert.ErrorContains(t, err, "report.format")
}

func TestSettings(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Checks.APIJSONPath = "status"

	st := cfg.Settings()
	assert.Equal(t, cfg.BaseURL, st.BaseURL)
	assert.Equal(t, cfg.Timeout, st.Timeout)
	assert.Equal(t, "status", st.APIJSONPath)
	assert.Equal(t, cfg.Checks.Routes, st.Routes)
	assert.Len(t, webcheck.Suite(st), 6)
}

func TestFindFileExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "custom.yaml", "base_url: http://x")

	found, err := FindFile(dir, path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = FindFile(dir, filepath.Join(dir, "nonexistent"))
	assert.Error(t, err)
}

func TestFindFileTraverseUp(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o700))
	path := writeTempFile(t, root, FileName, "")

	found, err := FindFile(sub, "")
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFindFileStopsAtRepoRoot(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	sub := filepath.Join(repo, "web")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o700))
	require.NoError(t, os.MkdirAll(sub, 0o700))
	writeTempFile(t, root, FileName, "")

	_, err := FindFile(sub, "")
	assert.ErrorIs(t, err, ErrNoConfigFile)
}
