package main

import (
	"errors"
	"os"

	"github.com/vertti/uismoke/internal/config"
	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/pwsession"
	"github.com/vertti/uismoke/pkg/reachcheck"
)

// ErrCheckFailed is returned when a run has a failing check or was aborted.
// The returned error causes Cobra to exit with code 1.
var ErrCheckFailed = errors.New("check failed")

// ErrUnreachable is returned when the precheck cannot reach the target.
var ErrUnreachable = errors.New("target unreachable")

// launchSession opens the browser; replaced in tests.
var launchSession = func(opts pwsession.Options) (browser.Session, error) {
	return pwsession.Launch(opts)
}

// precheckDialer is used by the reachability precheck; replaced in tests.
var precheckDialer reachcheck.TCPDialer = &reachcheck.RealTCPDialer{}

// loadConfig finds and loads the config file, falling back to defaults
// when none exists.
func loadConfig(explicit string) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, err := config.FindFile(wd, explicit)
	if errors.Is(err, config.ErrNoConfigFile) {
		path = ""
	} else if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func sessionOptions(cfg *config.Config) pwsession.Options {
	return pwsession.Options{
		Browser:  cfg.Browser.Name,
		Headless: cfg.Browser.Headless,
		SlowMo:   cfg.Browser.SlowMo,
		Timeout:  cfg.Timeout,
		Viewport: cfg.Browser.Viewport,
		Install:  cfg.Browser.Install,
	}
}
