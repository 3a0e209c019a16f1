package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
	"github.com/vertti/uismoke/pkg/testutil"
)

func outcome(status check.Status, msg string) func(context.Context, browser.Session) check.Result {
	return func(context.Context, browser.Session) check.Result {
		return check.Result{Status: status, Details: []string{msg}}
	}
}

// fixedClock advances one second per call.
func fixedClock() func() time.Time {
	t := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newRunner(t *testing.T) *Runner {
	return &Runner{Logger: zaptest.NewLogger(t), Now: fixedClock()}
}

func TestRunOneOutcomePerCheck(t *testing.T) {
	s := testutil.NewFakeSession(nil)
	checks := []check.Checker{
		check.Func("one", outcome(check.StatusPass, "ok")),
		check.Func("two", outcome(check.StatusFail, "broken")),
		check.Func("three", outcome(check.StatusSkip, "optional")),
		check.Func("four", outcome(check.StatusPass, "ok")),
	}

	report, err := newRunner(t).Run(context.Background(), s, checks)

	require.NoError(t, err)
	require.Len(t, report.Results, len(checks))
	for i, c := range checks {
		assert.Equal(t, c.Name(), report.Results[i].Result.Name)
	}
	assert.Equal(t, Summary{Total: 4, Passed: 2, Failed: 1, Skipped: 1}, report.Summary())
	assert.InDelta(t, 0.5, report.Summary().PassRate(), 1e-9)
	assert.False(t, report.OK())
	assert.False(t, report.Aborted)
	assert.Equal(t, 1, s.CloseCalls)
	assert.True(t, report.FinishedAt.After(report.StartedAt))
}

func TestRunOrderIsSequential(t *testing.T) {
	var order []string
	record := func(name string) check.Checker {
		return check.Func(name, func(context.Context, browser.Session) check.Result {
			order = append(order, name)
			return check.Result{Status: check.StatusPass}
		})
	}

	_, err := newRunner(t).Run(context.Background(), testutil.NewFakeSession(nil),
		[]check.Checker{record("c"), record("a"), record("b")})

	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestRunPanickingCheckBecomesFail(t *testing.T) {
	s := testutil.NewFakeSession(nil)
	checks := []check.Checker{
		check.Func("boom", func(context.Context, browser.Session) check.Result {
			panic("nil element")
		}),
		check.Func("after", outcome(check.StatusPass, "still ran")),
	}

	report, err := newRunner(t).Run(context.Background(), s, checks)

	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, check.StatusFail, report.Results[0].Result.Status)
	assert.Contains(t, report.Results[0].Result.Message(), "nil element")
	assert.Equal(t, check.StatusPass, report.Results[1].Result.Status)
	assert.Equal(t, 1, s.CloseCalls)
}

func TestRunForcesCheckerName(t *testing.T) {
	c := check.Func("real-name", func(context.Context, browser.Session) check.Result {
		return check.Result{Name: "other", Status: check.StatusPass}
	})

	report, err := newRunner(t).Run(context.Background(), testutil.NewFakeSession(nil), []check.Checker{c})

	require.NoError(t, err)
	assert.Equal(t, "real-name", report.Results[0].Result.Name)
}

func TestRunEmptyOutcomeIsFail(t *testing.T) {
	c := check.Func("empty", func(context.Context, browser.Session) check.Result {
		return check.Result{}
	})

	report, err := newRunner(t).Run(context.Background(), testutil.NewFakeSession(nil), []check.Checker{c})

	require.NoError(t, err)
	assert.True(t, report.Results[0].Result.Failed())
}

func TestRunSessionFaultAborts(t *testing.T) {
	s := testutil.NewFakeSession(nil)
	ran := false
	checks := []check.Checker{
		check.Func("first", outcome(check.StatusPass, "ok")),
		check.Func("crash", func(context.Context, browser.Session) check.Result {
			r := check.Result{}
			return r.Failf("navigate: %w", fmt.Errorf("%w: target closed", browser.ErrSessionFault))
		}),
		check.Func("never", func(context.Context, browser.Session) check.Result {
			ran = true
			return check.Result{Status: check.StatusPass}
		}),
	}

	report, err := newRunner(t).Run(context.Background(), s, checks)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, browser.ErrSessionFault)
	assert.False(t, ran)
	assert.True(t, report.Aborted)
	assert.Len(t, report.Results, 2)
	assert.Equal(t, 1, report.Summary().NotRun)
	assert.False(t, report.OK())
	assert.Equal(t, 1, s.CloseCalls)
}

func TestRunCancelledContextAborts(t *testing.T) {
	s := testutil.NewFakeSession(nil)
	ctx, cancel := context.WithCancel(context.Background())
	checks := []check.Checker{
		check.Func("cancels", func(context.Context, browser.Session) check.Result {
			cancel()
			return check.Result{Status: check.StatusPass}
		}),
		check.Func("skipped", outcome(check.StatusPass, "ok")),
	}

	report, err := newRunner(t).Run(ctx, s, checks)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Results, 1)
	assert.True(t, report.Aborted)
	assert.Equal(t, 1, s.CloseCalls)
}

func TestRunDuplicateNamesClosesSession(t *testing.T) {
	s := testutil.NewFakeSession(nil)
	checks := []check.Checker{
		check.Func("dup", outcome(check.StatusPass, "ok")),
		check.Func("dup", outcome(check.StatusPass, "ok")),
	}

	report, err := newRunner(t).Run(context.Background(), s, checks)

	assert.ErrorIs(t, err, check.ErrDuplicateName)
	assert.Empty(t, report.Results)
	assert.Equal(t, 1, s.CloseCalls)
}

type failingCloseSession struct {
	*testutil.FakeSession
}

func (s failingCloseSession) Close() error {
	_ = s.FakeSession.Close()
	return errors.New("browser already gone")
}

func TestRunCloseErrorIsReturned(t *testing.T) {
	fake := testutil.NewFakeSession(nil)
	s := failingCloseSession{fake}

	report, err := newRunner(t).Run(context.Background(), s,
		[]check.Checker{check.Func("one", outcome(check.StatusPass, "ok"))})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser already gone")
	assert.Len(t, report.Results, 1)
	assert.Equal(t, 1, fake.CloseCalls)
}

func TestRunCheckTimeout(t *testing.T) {
	c := check.Func("slow", func(ctx context.Context, s browser.Session) check.Result {
		r := check.Result{}
		err := browser.WaitUntil(ctx, time.Minute, time.Millisecond, func(context.Context) (bool, error) {
			return false, nil
		})
		return r.Failf("waiting: %w", err)
	})
	rn := newRunner(t)
	rn.CheckTimeout = 20 * time.Millisecond

	report, err := rn.Run(context.Background(), testutil.NewFakeSession(nil), []check.Checker{c})

	require.NoError(t, err)
	assert.ErrorIs(t, report.Results[0].Result.Err, browser.ErrTimeout)
}

func TestRunScreenshotOnFailure(t *testing.T) {
	s := testutil.NewFakeSession(nil)
	dir := t.TempDir()
	rn := newRunner(t)
	rn.ScreenshotDir = dir

	report, err := rn.Run(context.Background(), s, []check.Checker{
		check.Func("nav menu", outcome(check.StatusFail, "missing links")),
		check.Func("fine", outcome(check.StatusPass, "ok")),
	})

	require.NoError(t, err)
	want := filepath.Join(dir, "nav_menu.png")
	assert.Equal(t, []string{want}, s.Screenshots)
	assert.True(t, testutil.ContainsDetail(report.Results[0].Result.Details, "screenshot: "+want))
}

func TestRunEmptySuite(t *testing.T) {
	s := testutil.NewFakeSession(nil)

	report, err := newRunner(t).Run(context.Background(), s, nil)

	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Summary().PassRate())
	assert.True(t, report.OK())
	assert.Equal(t, 1, s.CloseCalls)
}
