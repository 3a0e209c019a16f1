package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertti/uismoke/pkg/webcheck"
)

var (
	listConfigFile string
	listOnly       []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the checks a run would execute, in order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listConfigFile, "config", "", "path to config file")
	listCmd.Flags().StringSliceVar(&listOnly, "only", nil, "list only these checks (comma separated)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(listConfigFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("only") {
		cfg.Checks.Only = splitList(listOnly)
	}

	checks, err := webcheck.Select(webcheck.Suite(cfg.Settings()), cfg.Checks.Only)
	if err != nil {
		return err
	}
	for _, c := range checks {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.Name())
	}
	return nil
}
