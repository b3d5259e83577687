package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iley/goat/internal/ast"
	"github.com/iley/goat/internal/config"
	"github.com/iley/goat/internal/frontend"
	"github.com/iley/goat/internal/passes"
	"github.com/iley/goat/internal/watch"
)

func newAstCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file.goat>... | <directory>",
		Short: "Print the syntax tree of goat programs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printTrees(cmd, args, a.cfg.Output.Format)
		},
	}
}

func newFmtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file.goat>... | <directory>",
		Short: "Reprint goat programs in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printTrees(cmd, args, config.OutputSource)
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <file.goat>... | <directory>",
		Short: "Give every identifier a fresh short name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printTrees(cmd, args, a.cfg.Output.Format, "rename")
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file.goat>... | <directory>",
		Short: "Summarize the shape of goat syntax trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := frontend.FindSources(args)
			if err != nil {
				return err
			}
			c, err := a.compiler()
			if err != nil {
				return err
			}
			for _, file := range files {
				unit, err := c.CompileFile(file)
				if err != nil {
					cmd.SilenceUsage = true
					return err
				}
				a.styles.writeStats(cmd.OutOrStdout(), file, ast.CollectStats(unit.Tree))
			}
			return nil
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file.goat>... | <directory>",
		Short: "Print the syntax tree again whenever a goat file changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.compiler()
			if err != nil {
				return err
			}
			w, err := watch.New(args, a.cfg.Watch.Debounce, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			a.logger.Info("watching for changes", "paths", args)
			return w.Watch(ctx, func(path string) error {
				unit, err := c.CompileFile(path)
				if err != nil {
					fmt.Fprintln(out, a.styles.err.Render(err.Error()))
					return nil
				}
				return a.writeTree(out, path, unit.Tree, a.cfg.Output.Format)
			})
		},
	}
}

func newPassesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "passes",
		Short: "List the available tree passes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range passes.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// printTrees compiles every source named by args and prints its tree.
func (a *app) printTrees(cmd *cobra.Command, args []string, format string, extraPasses ...string) error {
	files, err := frontend.FindSources(args)
	if err != nil {
		return err
	}
	c, err := a.compiler(extraPasses...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, file := range files {
		unit, err := c.CompileFile(file)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}
		header := ""
		if len(files) > 1 {
			header = file
		}
		if err := a.writeTree(out, header, unit.Tree, format); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) writeTree(w io.Writer, header string, tree ast.Ast, format string) error {
	text, err := frontend.Render(tree, format)
	if err != nil {
		return err
	}
	if header != "" {
		fmt.Fprintln(w, a.styles.title.Render(header))
	}
	fmt.Fprintln(w, strings.TrimRight(text, "\n"))
	return nil
}
