// Package passes runs named tree transformations one after another.
package passes

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/iley/goat/internal/ast"
	"github.com/iley/goat/internal/renamer"
)

// Pass rewrites a tree. Implementations must not mutate their input.
type Pass interface {
	Name() string
	Run(tree ast.Ast) ast.Ast
}

// Func adapts a named function to the Pass interface.
type Func struct {
	N string
	F func(ast.Ast) ast.Ast
}

func (f Func) Name() string             { return f.N }
func (f Func) Run(tree ast.Ast) ast.Ast { return f.F(tree) }

// Chain composes passes left to right. Each pass receives the output of the
// previous one.
func Chain(passes ...Pass) Pass {
	return Func{
		N: "chain",
		F: func(tree ast.Ast) ast.Ast {
			for _, p := range passes {
				tree = p.Run(tree)
			}
			return tree
		},
	}
}

var registry = map[string]func() Pass{
	"identity": func() Pass {
		return Func{N: "identity", F: func(tree ast.Ast) ast.Ast {
			return ast.Fold(ast.IdentityFolder{}, tree)
		}}
	},
	// Every run gets its own Renamer so names always start from "a".
	"rename": func() Pass {
		return Func{N: "rename", F: func(tree ast.Ast) ast.Ast {
			return renamer.New().Rename(tree)
		}}
	},
}

// Names lists the registered passes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the registered pass called name.
func Lookup(name string) (Pass, error) {
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pass %q (available: %v)", name, Names())
	}
	return constructor(), nil
}

// Pipeline is an ordered list of passes that logs each step.
type Pipeline struct {
	passes []Pass
	logger *slog.Logger
}

// NewPipeline resolves names into a Pipeline. A nil logger means
// slog.Default().
func NewPipeline(names []string, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pipeline := &Pipeline{logger: logger}
	for _, name := range names {
		p, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		pipeline.passes = append(pipeline.passes, p)
	}
	return pipeline, nil
}

func (p *Pipeline) Names() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

func (p *Pipeline) Run(tree ast.Ast) ast.Ast {
	for _, pass := range p.passes {
		start := time.Now()
		tree = pass.Run(tree)
		p.logger.Debug("pass finished", "pass", pass.Name(), "duration", time.Since(start))
	}
	return tree
}
