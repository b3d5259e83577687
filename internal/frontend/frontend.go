// Package frontend turns goat source into a tree: parse, build, then run
// the configured passes.
package frontend

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iley/goat/internal/ast"
	"github.com/iley/goat/internal/config"
	"github.com/iley/goat/internal/cst"
	"github.com/iley/goat/internal/lexer"
	"github.com/iley/goat/internal/parser"
	"github.com/iley/goat/internal/passes"
	"github.com/iley/goat/internal/source"
)

// Unit is one compiled source.
type Unit struct {
	Source *source.Source
	Syntax *cst.Node
	// Tree is the built tree after every pass has run.
	Tree ast.Ast
}

type Compiler struct {
	maxDepth int
	pipeline *passes.Pipeline
	logger   *slog.Logger
}

// New creates a Compiler from cfg. A nil cfg means config.Default(), a nil
// logger means slog.Default().
func New(cfg *config.Config, logger *slog.Logger) (*Compiler, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	pipeline, err := passes.NewPipeline(cfg.Passes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up passes: %w", err)
	}
	return &Compiler{
		maxDepth: cfg.Parser.MaxDepth,
		pipeline: pipeline,
		logger:   logger,
	}, nil
}

// Compile parses src and builds its tree. Syntax errors are returned as
// *source.Error.
func (c *Compiler) Compile(src *source.Source) (*Unit, error) {
	p := parser.New(lexer.New(src))
	if c.maxDepth > 0 {
		p.SetMaxDepth(c.maxDepth)
	}
	syntax, err := p.ParseProgram()
	if err != nil {
		c.logger.Debug("parse failed", "file", src.Name, "error", err)
		return nil, err
	}

	tree := c.pipeline.Run(ast.Build(syntax))
	c.logger.Debug("compiled", "file", src.Name, "passes", c.pipeline.Names())
	return &Unit{Source: src, Syntax: syntax, Tree: tree}, nil
}

func (c *Compiler) CompileFile(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return c.Compile(source.New(path, string(data)))
}

// Render prints tree in the given output format.
func Render(tree ast.Ast, format string) (string, error) {
	switch format {
	case config.OutputSexpr, "":
		return tree.String(), nil
	case config.OutputSource:
		return ast.Format(tree), nil
	}
	return "", fmt.Errorf("unknown output format %q", format)
}

// FindSources expands each argument into goat files: files are kept as
// given, directories are scanned (not recursively) for *.goat files.
func FindSources(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		stat, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("path %s does not exist", arg)
		}
		if !stat.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var found []string
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".goat") {
				found = append(found, filepath.Join(arg, entry.Name()))
			}
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no .goat files found in directory %s", arg)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
