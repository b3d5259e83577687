package passes

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/iley/goat/internal/ast"
	"github.com/iley/goat/internal/parser"
	"github.com/iley/goat/internal/source"
)

func build(t *testing.T, text string) ast.Ast {
	t.Helper()
	node, err := parser.Parse(source.New("test.goat", text))
	if err != nil {
		t.Fatalf("failed to parse %q: %v", text, err)
	}
	return ast.Build(node)
}

func TestNames(t *testing.T) {
	expected := []string{"identity", "rename"}
	if got := Names(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("inline")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), `unknown pass "inline"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestChain(t *testing.T) {
	var order []string
	record := func(name string) Pass {
		return Func{N: name, F: func(tree ast.Ast) ast.Ast {
			order = append(order, name)
			return tree
		}}
	}

	chain := Chain(record("first"), record("second"), record("third"))
	if chain.Name() != "chain" {
		t.Errorf("expected name chain, got %s", chain.Name())
	}
	chain.Run(build(t, "1"))
	if !reflect.DeepEqual(order, []string{"first", "second", "third"}) {
		t.Errorf("unexpected order %v", order)
	}
}

func TestPipeline(t *testing.T) {
	testCases := []struct {
		names    []string
		src      string
		expected string
	}{
		{nil, `x + y`, "(program (+ x y))"},
		{[]string{"identity"}, `x + y`, "(program (+ x y))"},
		{[]string{"rename"}, `let x = y in x`, "(program (let a b c))"},
		{[]string{"rename", "rename"}, `p(q)`, "(program (apply a b))"},
		{[]string{"identity", "rename", "identity"}, `fun(x) do x done`, "(program (fun (a) b))"},
	}

	for _, tc := range testCases {
		t.Run(strings.Join(tc.names, ","), func(t *testing.T) {
			pipeline, err := NewPipeline(tc.names, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := pipeline.Run(build(t, tc.src))
			if got.String() != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestPipelineRejectsUnknownPass(t *testing.T) {
	if _, err := NewPipeline([]string{"rename", "nope"}, nil); err == nil {
		t.Errorf("expected error")
	}
}

func TestPipelineLogsPasses(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pipeline, err := NewPipeline([]string{"identity", "rename"}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(pipeline.Names(), []string{"identity", "rename"}) {
		t.Errorf("unexpected pass names %v", pipeline.Names())
	}
	pipeline.Run(build(t, "x"))

	out := buf.String()
	for _, want := range []string{"pass=identity", "pass=rename"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not mention %s", out, want)
		}
	}
}
