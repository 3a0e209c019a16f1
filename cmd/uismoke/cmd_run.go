package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vertti/uismoke/internal/config"
	"github.com/vertti/uismoke/internal/obs"
	"github.com/vertti/uismoke/pkg/output"
	"github.com/vertti/uismoke/pkg/reachcheck"
	"github.com/vertti/uismoke/pkg/runner"
	"github.com/vertti/uismoke/pkg/webcheck"
)

var (
	runConfigFile   string
	runBaseURL      string
	runAPIPath      string
	runTimeout      time.Duration
	runCheckTimeout time.Duration
	runBrowser      string
	runHeadless     bool
	runHeaded       bool
	runInstall      bool
	runFormat       string
	runOutput       string
	runMetricsFile  string
	runScreenshots  string
	runOnly         []string
	runNoPrecheck   bool
	runLogLevel     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the browser check suite against the target site",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runConfigFile, "config", "", "path to config file (default: search up for "+config.FileName+")")
	f.StringVar(&runBaseURL, "base-url", "", "site to check")
	f.StringVar(&runAPIPath, "api-path", "", "path of the API status page")
	f.DurationVar(&runTimeout, "timeout", 0, "wait bound for page loads and element lookups")
	f.DurationVar(&runCheckTimeout, "check-timeout", 0, "bound for a whole check (0 disables)")
	f.StringVar(&runBrowser, "browser", "", "browser engine: chromium, firefox or webkit")
	f.BoolVar(&runHeadless, "headless", false, "run the browser without a window")
	f.BoolVar(&runHeaded, "headed", false, "run the browser with a window")
	f.BoolVar(&runInstall, "install", false, "download the Playwright driver and browser first")
	f.StringVar(&runFormat, "format", "", "report format: "+strings.Join(output.Formats, ", "))
	f.StringVarP(&runOutput, "output", "o", "", "write the report to this file instead of stdout")
	f.StringVar(&runMetricsFile, "metrics-file", "", "write Prometheus textfile metrics here")
	f.StringVar(&runScreenshots, "screenshots", "", "save a screenshot of each failing check in this directory")
	f.StringSliceVar(&runOnly, "only", nil, "run only these checks (comma separated)")
	f.BoolVar(&runNoPrecheck, "no-precheck", false, "skip the TCP reachability precheck")
	f.StringVar(&runLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if err := requireAtMostOne(
		flagSet{"--headless", cmd.Flags().Changed("headless")},
		flagSet{"--headed", cmd.Flags().Changed("headed")},
	); err != nil {
		return err
	}

	cfg, err := loadConfig(runConfigFile)
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := obs.NewLogger(obs.LogConfig{Level: cfg.LogLevel, App: "uismoke", Ver: Version})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	checks, err := webcheck.Select(webcheck.Suite(cfg.Settings()), cfg.Checks.Only)
	if err != nil {
		return err
	}

	if cfg.Precheck {
		reach := (&reachcheck.Check{URL: cfg.BaseURL, Dialer: precheckDialer}).Run()
		log.Info("precheck", zap.String("check", reach.Name), zap.String("status", string(reach.Status)))
		if reach.Failed() {
			return fmt.Errorf("%w: %s", ErrUnreachable, reach.Message())
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("launching browser", zap.String("browser", cfg.Browser.Name), zap.Bool("headless", cfg.Browser.Headless))
	sess, err := launchSession(sessionOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	r := &runner.Runner{
		Logger:        log,
		CheckTimeout:  cfg.CheckTimeout,
		ScreenshotDir: cfg.Report.ScreenshotsDir,
	}
	report, runErr := r.Run(ctx, sess, checks)

	if err := writeReport(cmd.OutOrStdout(), cfg, report); err != nil {
		return errors.Join(runErr, err)
	}
	if cfg.Report.MetricsFile != "" {
		if err := output.WriteMetrics(cfg.Report.MetricsFile, report); err != nil {
			return errors.Join(runErr, fmt.Errorf("failed to write metrics: %w", err))
		}
	}

	if !report.OK() {
		return ErrCheckFailed
	}
	return runErr
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("base-url") {
		cfg.BaseURL = strings.TrimRight(runBaseURL, "/")
	}
	if f.Changed("api-path") {
		cfg.APIPath = runAPIPath
	}
	if f.Changed("timeout") {
		cfg.Timeout = runTimeout
	}
	if f.Changed("check-timeout") {
		cfg.CheckTimeout = runCheckTimeout
	}
	if f.Changed("browser") {
		cfg.Browser.Name = runBrowser
	}
	if f.Changed("headless") {
		cfg.Browser.Headless = runHeadless
	}
	if f.Changed("headed") {
		cfg.Browser.Headless = !runHeaded
	}
	if f.Changed("install") {
		cfg.Browser.Install = runInstall
	}
	if f.Changed("format") {
		cfg.Report.Format = runFormat
	}
	if f.Changed("output") {
		cfg.Report.Output = runOutput
	}
	if f.Changed("metrics-file") {
		cfg.Report.MetricsFile = runMetricsFile
	}
	if f.Changed("screenshots") {
		cfg.Report.ScreenshotsDir = runScreenshots
	}
	if f.Changed("only") {
		cfg.Checks.Only = splitList(runOnly)
	}
	if f.Changed("no-precheck") {
		cfg.Precheck = !runNoPrecheck
	}
	if f.Changed("log-level") {
		cfg.LogLevel = runLogLevel
	}
}

// writeReport renders to stdout, or to the configured output file.
// Text on a color terminal gets ANSI colors.
func writeReport(stdout io.Writer, cfg *config.Config, report *runner.Report) error {
	color := cfg.Report.Output == "" && stdout == io.Writer(os.Stdout) && output.NewText().Color
	rd, err := output.ForFormat(cfg.Report.Format, color)
	if err != nil {
		return err
	}

	if cfg.Report.Output == "" {
		return output.Write(stdout, rd, report)
	}

	f, err := os.Create(cfg.Report.Output)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := output.Write(f, rd, report); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
