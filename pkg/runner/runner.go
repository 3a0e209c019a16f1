// Package runner executes an ordered list of checks against one browser
// session and collects their outcomes into a Report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
)

// ErrAborted is returned when a run stops before every check executed.
var ErrAborted = errors.New("run aborted")

// Runner executes checks sequentially on a single session.
type Runner struct {
	Logger        *zap.Logger      // default: no-op
	CheckTimeout  time.Duration    // bound for a whole check, 0 disables
	ScreenshotDir string           // capture failing pages here when set
	Now           func() time.Time // injected for testing
}

// Run executes checks in order and closes s exactly once before
// returning, whatever happens. A check's own error or panic becomes its
// FAIL outcome. A session fault or context cancellation stops the run;
// the partial report is returned together with an error wrapping
// ErrAborted.
func (r *Runner) Run(ctx context.Context, s browser.Session, checks []check.Checker) (report *Report, err error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	report = &Report{Total: len(checks), StartedAt: now()}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.Warn("closing browser session", zap.Error(cerr))
			err = errors.Join(err, fmt.Errorf("close session: %w", cerr))
		}
		report.FinishedAt = now()
	}()

	if err := check.ValidateNames(checks); err != nil {
		return report, err
	}

	log.Info("run started", zap.Int("checks", len(checks)))
	for _, c := range checks {
		if cerr := ctx.Err(); cerr != nil {
			return r.abort(log, report, cerr)
		}

		entry := r.runOne(ctx, log, s, c, now)
		report.Results = append(report.Results, entry)

		if browser.IsSessionFault(entry.Result.Err) {
			return r.abort(log, report, entry.Result.Err)
		}
	}

	sum := report.Summary()
	log.Info("run finished",
		zap.Int("passed", sum.Passed),
		zap.Int("failed", sum.Failed),
		zap.Int("skipped", sum.Skipped),
		zap.Duration("duration", now().Sub(report.StartedAt)),
	)
	return report, nil
}

func (r *Runner) abort(log *zap.Logger, report *Report, cause error) (*Report, error) {
	report.Aborted = true
	report.AbortErr = cause
	log.Error("run aborted",
		zap.Error(cause),
		zap.Int("not_run", report.Total-len(report.Results)),
	)
	return report, fmt.Errorf("%w: %w", ErrAborted, cause)
}

func (r *Runner) runOne(ctx context.Context, log *zap.Logger, s browser.Session, c check.Checker, now func() time.Time) Entry {
	name := c.Name()
	if r.CheckTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.CheckTimeout)
		defer cancel()
	}

	started := now()
	result := safeRun(ctx, s, c)
	result.Name = name
	if result.Status == "" {
		result = check.Result{Name: name}
		result = result.Failf("check returned no outcome")
	}
	entry := Entry{Result: result, StartedAt: started, Duration: now().Sub(started)}

	if result.Failed() && r.ScreenshotDir != "" {
		r.screenshot(ctx, log, s, &entry)
	}

	fields := []zap.Field{
		zap.String("check", name),
		zap.String("status", string(result.Status)),
		zap.Duration("duration", entry.Duration),
	}
	if result.Failed() {
		log.Warn("check failed", append(fields, zap.String("message", result.Message()))...)
	} else {
		log.Info("check finished", fields...)
	}
	return entry
}

// safeRun converts a panicking check into a FAIL outcome.
func safeRun(ctx context.Context, s browser.Session, c check.Checker) (result check.Result) {
	defer func() {
		if p := recover(); p != nil {
			result = check.Result{Name: c.Name()}
			result = result.Failf("check panicked: %v", p)
		}
	}()
	return c.Run(ctx, s)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (r *Runner) screenshot(ctx context.Context, log *zap.Logger, s browser.Session, entry *Entry) {
	shooter, ok := s.(browser.Screenshotter)
	if !ok || browser.IsSessionFault(entry.Result.Err) {
		return
	}
	if err := os.MkdirAll(r.ScreenshotDir, 0o755); err != nil {
		log.Warn("creating screenshot dir", zap.String("dir", r.ScreenshotDir), zap.Error(err))
		return
	}
	path := filepath.Join(r.ScreenshotDir, unsafeFileChars.ReplaceAllString(entry.Result.Name, "_")+".png")
	if err := shooter.Screenshot(ctx, path); err != nil {
		log.Warn("capturing screenshot", zap.String("check", entry.Result.Name), zap.Error(err))
		return
	}
	entry.Result.AddDetailf("screenshot: %s", path)
}
