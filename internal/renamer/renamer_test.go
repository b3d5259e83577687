package renamer

import (
	"reflect"
	"testing"

	"github.com/iley/goat/internal/ast"
	"github.com/iley/goat/internal/parser"
	"github.com/iley/goat/internal/source"
)

func build(t *testing.T, src *source.Source) ast.Ast {
	t.Helper()
	node, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", src.Text, err)
	}
	return ast.Build(node)
}

func TestRenameSingleIdentifier(t *testing.T) {
	src := source.New("test.goat", "b")
	tree := build(t, src)

	original := ast.NewIdentifier(src.Span(0, 1))
	if !reflect.DeepEqual(tree, &ast.Program{Body: &original}) {
		t.Fatalf("unexpected tree %s", tree)
	}

	renamed := original.Rename("a")
	got := New().Rename(tree)
	if !reflect.DeepEqual(got, &ast.Program{Body: &renamed}) {
		t.Errorf("expected %s, got %s", &ast.Program{Body: &renamed}, got)
	}
}

func TestRenameLeavesIdentifierFreeTreesAlone(t *testing.T) {
	for _, program := range []string{``, `true<false`, `1 + 2 * "s"`, `if true do 1 else 2 done`} {
		t.Run(program, func(t *testing.T) {
			tree := build(t, source.New("test.goat", program))
			got := New().Rename(tree)
			if !reflect.DeepEqual(got, tree) {
				t.Errorf("expected %s, got %s", tree, got)
			}
		})
	}
}

func TestRename(t *testing.T) {
	testCases := []struct {
		src      string
		expected string
	}{
		{`x`, "(program a)"},
		{`x + y + x`, "(program (+ (+ a b) c))"},
		{`let x = y in x`, "(program (let a b c))"},
		{`f(x, y)`, "(program (apply a b c))"},
		{`fun(x, y = z) do x done`, "(program (fun (a (b c)) d))"},
		{`if p do q else r done`, "(program (if a b c))"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			got := New().Rename(build(t, source.New("test.goat", tc.src)))
			if got.String() != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got.String())
			}
		})
	}
}

func TestRenameKeepsSpans(t *testing.T) {
	src := source.New("test.goat", "foo + bar")
	got := New().Rename(build(t, src)).(*ast.Program).Body.(*ast.Plus)

	left := got.Left.(*ast.Identifier)
	right := got.Right.(*ast.Identifier)
	if left.Internal != "a" || !left.Name.Equal(src.Span(0, 3)) {
		t.Errorf("unexpected left identifier %q at %v", left.Internal, left.Name)
	}
	if right.Internal != "b" || !right.Name.Equal(src.Span(6, 9)) {
		t.Errorf("unexpected right identifier %q at %v", right.Internal, right.Name)
	}
}

func TestRenameIsDeterministic(t *testing.T) {
	src := source.New("test.goat", `let f = fun(a, b = 1) do g(a, b) done in f(x)`)
	tree := build(t, src)
	first := New().Rename(tree)
	second := New().Rename(tree)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two renamers disagree: %s vs %s", first, second)
	}
	if tree.String() != "(program (let f (fun (a (b 1)) (apply g a b)) (apply f x)))" {
		t.Errorf("input tree was modified: %s", tree)
	}
}

func TestRenameContinuesCounter(t *testing.T) {
	r := New()
	src := source.New("test.goat", "x")
	r.Rename(build(t, src))
	got := r.Rename(build(t, src))
	if got.String() != "(program b)" {
		t.Errorf("expected (program b), got %s", got)
	}
}

func TestRenameIgnoresSpelling(t *testing.T) {
	first := New().Rename(build(t, source.New("first.goat", `let x = y in f(x)`)))
	second := New().Rename(build(t, source.New("second.goat", `let count = total in show(count)`)))
	if first.String() != second.String() {
		t.Errorf("expected the same names, got %s and %s", first, second)
	}
}

func TestZeroRenamer(t *testing.T) {
	var r Renamer
	got := r.Rename(build(t, source.New("test.goat", "x + y")))
	if got.String() != "(program (+ a b))" {
		t.Errorf("expected (program (+ a b)), got %s", got)
	}

	got = (&Renamer{}).Rename(build(t, source.New("test.goat", "x")))
	if got.String() != "(program a)" {
		t.Errorf("expected (program a), got %s", got)
	}
}
