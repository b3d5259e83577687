package ast

import (
	"reflect"
	"testing"

	"github.com/iley/goat/internal/source"
)

var folderPrograms = []string{
	``,
	`1`,
	`"str"`,
	`true < false`,
	`x`,
	`1 + 2 * 3 - 4 / 5`,
	`a <= b >= c < d > e`,
	`fun() do 1 done`,
	`fun(a, b = 2, c = fun(d) do d done) do a + b done`,
	`f()`,
	`f(a, g(b, 1), "s")`,
	`if a do b done`,
	`if a < 1 do b else if c do d else e done done`,
	`let x = 1`,
	`let x = 1 in let y = x in x + y`,
	`let f = fun(a, b = c) do g(a, d) done in if x do y else z done`,
}

func TestIdentityFolder(t *testing.T) {
	for _, program := range folderPrograms {
		t.Run(program, func(t *testing.T) {
			tree := buildSource(t, source.New("test.goat", program))
			folded := Fold(IdentityFolder{}, tree)
			if !reflect.DeepEqual(folded, tree) {
				t.Errorf("identity fold changed the tree: expected %s, got %s", tree, folded)
			}
		})
	}
}

// plusToMinus turns every addition into a subtraction.
type plusToMinus struct {
	IdentityFolder
}

func newPlusToMinus() *plusToMinus {
	f := &plusToMinus{}
	f.Self = f
	return f
}

func (f *plusToMinus) FoldPlus(lhs, rhs Ast) Ast {
	return &Minus{Left: Fold(f, lhs), Right: Fold(f, rhs)}
}

func TestFolderOverride(t *testing.T) {
	testCases := []struct {
		src      string
		expected string
	}{
		{`1 + 2`, "(program (- 1 2))"},
		{`1 * (2 + 3)`, "(program (* 1 (- 2 3)))"},
		{`1 + 2 + 3`, "(program (- (- 1 2) 3))"},
		{`f(a + b)`, "(program (apply f (- a b)))"},
		{`fun(a = 1 + 2) do a + a done`, "(program (fun ((a (- 1 2))) (- a a)))"},
		{`let x = 1 + 2 in if x do x + 1 done`, "(program (let x (- 1 2) (if x (- x 1))))"},
		{`1 - 2`, "(program (- 1 2))"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			tree := buildSource(t, source.New("test.goat", tc.src))
			before := tree.String()
			folded := Fold(newPlusToMinus(), tree)
			if folded.String() != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, folded.String())
			}
			if tree.String() != before {
				t.Errorf("input tree was modified: was %s, now %s", before, tree.String())
			}
		})
	}
}

// identifierRecorder records identifiers in the order they are folded.
type identifierRecorder struct {
	IdentityFolder
	names []string
}

func (r *identifierRecorder) FoldIdentifier(identifier Identifier) Identifier {
	r.names = append(r.names, identifier.Internal)
	return identifier
}

func TestFolderOrder(t *testing.T) {
	testCases := []struct {
		src      string
		expected []string
	}{
		{`x`, []string{"x"}},
		{`a + b * c`, []string{"a", "b", "c"}},
		{`f(a, b)`, []string{"f", "a", "b"}},
		{`fun(a, b = c) do d done`, []string{"a", "b", "c", "d"}},
		{`if a do b else c done`, []string{"a", "b", "c"}},
		{`let x = y in z`, []string{"x", "y", "z"}},
		{
			`let f = fun(a, b = c) do g(a, d) done in if x do y else z done`,
			[]string{"f", "a", "b", "c", "g", "a", "d", "x", "y", "z"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			r := &identifierRecorder{}
			r.Self = r
			Fold(r, buildSource(t, source.New("test.goat", tc.src)))
			if !reflect.DeepEqual(r.names, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, r.names)
			}
		})
	}
}

func TestFoldPanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	Fold(IdentityFolder{}, nil)
}
