package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iley/goat/internal/config"
	"github.com/iley/goat/internal/frontend"
	"github.com/iley/goat/internal/logging"
)

// app holds what every subcommand needs once flags and the config file
// have been read.
type app struct {
	configPath string
	logLevel   string
	format     string
	color      bool
	passes     []string

	cfg    *config.Config
	logger *slog.Logger
	styles styles
}

func newApp() *app {
	return &app{styles: newStyles(false)}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return newApp().rootCmd(stdout, stderr)
}

func (a *app) rootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goat",
		Short: "Goat language front-end",
		Long:  "Parse goat programs, build their syntax trees and run tree passes over them.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, stderr)
		},
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (.yaml, .yml or .toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVarP(&a.format, "format", "f", "", "output format: sexpr or source")
	flags.BoolVar(&a.color, "color", false, "colorize output")
	flags.StringSliceVarP(&a.passes, "pass", "p", nil, "tree pass to run (repeatable, replaces configured passes)")

	rootCmd.AddCommand(
		newAstCmd(a),
		newFmtCmd(a),
		newRenameCmd(a),
		newStatsCmd(a),
		newWatchCmd(a),
		newPassesCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and lets explicitly set flags override it.
func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = a.color
	}
	if flags.Changed("pass") {
		cfg.Passes = a.passes
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.styles = newStyles(cfg.Output.Color)
	return nil
}

// compiler builds a Compiler from the loaded configuration with extra
// passes appended.
func (a *app) compiler(extraPasses ...string) (*frontend.Compiler, error) {
	cfg := *a.cfg
	cfg.Passes = append(append([]string{}, a.cfg.Passes...), extraPasses...)
	return frontend.New(&cfg, a.logger)
}

// reportError prints err in the configured style; before the configuration
// is loaded that is uncolored.
func (a *app) reportError(w io.Writer, err error) {
	fmt.Fprintln(w, a.styles.err.Render("error: "+err.Error()))
}

func main() {
	a := newApp()
	if err := a.rootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		a.reportError(os.Stderr, err)
		os.Exit(1)
	}
}
