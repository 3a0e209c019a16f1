package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "uismoke",
	Short:        "Browser smoke checks for the RapidXTech web app",
	Long:         "uismoke drives a real browser through a fixed suite of UI checks against a deployed site and reports PASS, FAIL or SKIP for each.",
	Version:      Version,
	SilenceUsage: true,
}
