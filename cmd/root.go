// Package cmd implements the stackslip CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackslip/stackslip/internal/app"
	"github.com/stackslip/stackslip/internal/config"
)

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	Key     string
	Site    string
	Format  string
	Out     string
	Timeout string
	Rate    float64
	Quiet   bool
	Verbose bool
	Debug   bool
}

// rootCmd is the base command. Running `stackslip` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "stackslip",
	Short: "stackslip — Stack Overflow profile receipts",
	Long: `stackslip looks up a public Stack Overflow profile through the
Stack Exchange API and prints it as a store receipt: reputation,
badges, top tags, a coupon code, the works.

Works for any Stack Exchange site via --site.

Quick start:
  stackslip receipt 22656              # receipt by numeric user id
  stackslip receipt "Jon Skeet"        # receipt by display name
  stackslip user get 22656             # plain profile table
  stackslip receipt 22656 --save txt   # export to stackslip_<date>.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load(globalFlags.Key)
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides
	cfg.Quiet = globalFlags.Quiet
	cfg.Verbose = globalFlags.Verbose
	cfg.Debug = globalFlags.Debug

	if globalFlags.Site != "" {
		cfg.Site = globalFlags.Site
	}
	if globalFlags.Format != "" {
		cfg.Format = globalFlags.Format
	}
	if globalFlags.Timeout != "" {
		if d, err2 := time.ParseDuration(globalFlags.Timeout); err2 == nil {
			cfg.Timeout = d
		}
	}
	if globalFlags.Rate > 0 {
		cfg.Rate = globalFlags.Rate
	}

	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	return app.New(cfg), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.Key, "key", "",
		"Stack Exchange app key (overrides env STACKEX_KEY and config.json)")
	pf.StringVar(&globalFlags.Site, "site", "",
		"target site (default: stackoverflow)")
	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: text|json (default: text)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Timeout, "timeout", "",
		"HTTP request timeout (e.g. 30s, 2m)")
	pf.Float64Var(&globalFlags.Rate, "rate", 0,
		"max API requests per second (default: 5.0)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress all non-error output")
	pf.BoolVar(&globalFlags.Verbose, "verbose", false,
		"show timing stats after output")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log HTTP requests and responses (app key redacted)")
}
