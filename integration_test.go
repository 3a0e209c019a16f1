package uismoke_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/vertti/uismoke/pkg/check"
	"github.com/vertti/uismoke/pkg/pwsession"
	"github.com/vertti/uismoke/pkg/reachcheck"
	"github.com/vertti/uismoke/pkg/runner"
	"github.com/vertti/uismoke/pkg/webcheck"
)

// Integration tests verify Real* implementations work with actual system resources.
// Unit tests in each package cover edge cases; these tests verify end-to-end integration.

const homeHTML = `<!doctype html>
<html class="light">
<head><title>RapidXTech | Innovative Tech Solutions</title></head>
<body>
<nav><a href="/about">About</a><a href="/case-studies">Case Studies</a><a href="/blog">Blog</a><a href="/contact">Contact</a></nav>
<button aria-label="Toggle theme" onclick="document.documentElement.classList.toggle('dark')">theme</button>
<p>RapidXTech builds cloud platforms, DevOps pipelines and data products for growing teams.</p>
</body>
</html>`

func pageHTML(title string) string {
	return "<!doctype html><html><head><title>" + title + "</title></head><body><h1>" + title + "</h1><p>" +
		strings.Repeat("RapidXTech delivers reliable software. ", 4) + "</p></body></html>"
}

func newSite() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(homeHTML))
	})
	for _, p := range []string{"/about", "/blog", "/contact"} {
		mux.HandleFunc(p, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(pageHTML(strings.TrimPrefix(p, "/"))))
		})
	}
	mux.HandleFunc("/devops-demo", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><pre>{"status":"ok","db":"connected"}</pre></body></html>`))
	})
	return httptest.NewServer(mux)
}

func TestIntegration_Reach(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer func() { _ = ln.Close() }()

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			_ = conn.Close()
		}
	}()

	c := reachcheck.Check{
		URL:     "http://" + ln.Addr().String(),
		Timeout: 2 * time.Second,
		Dialer:  &reachcheck.RealTCPDialer{},
	}

	result := c.Run()

	if result.Status != check.StatusPass {
		t.Errorf("Status = %v, want PASS (details: %v)", result.Status, result.Details)
	}
}

func TestIntegration_Suite(t *testing.T) {
	if os.Getenv("UISMOKE_BROWSER_TESTS") != "1" {
		t.Skip("set UISMOKE_BROWSER_TESTS=1 to run browser tests")
	}

	site := newSite()
	defer site.Close()

	sess, err := pwsession.Launch(pwsession.Options{Headless: true, Install: true, Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	r := &runner.Runner{CheckTimeout: 30 * time.Second}
	checks := webcheck.Suite(webcheck.Settings{BaseURL: site.URL, Timeout: 5 * time.Second})

	report, err := r.Run(context.Background(), sess, checks)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, e := range report.Results {
		if e.Result.Status != check.StatusPass {
			t.Errorf("%s: Status = %v, want PASS (details: %v)", e.Result.Name, e.Result.Status, e.Result.Details)
		}
	}
	if len(report.Results) != len(checks) {
		t.Errorf("got %d results, want %d", len(report.Results), len(checks))
	}
}
