package ast

import (
	"strings"
	"testing"
	"time"

	"github.com/iley/goat/internal/source"
)

func TestFormat(t *testing.T) {
	testCases := []struct {
		src      string
		expected string
	}{
		{``, ``},
		{`1`, `1`},
		{`  "a\nb"  `, `"a\nb"`},
		{`true`, `true`},
		{`1+2*3`, `1 + 2 * 3`},
		{`(1 + 2) * 3`, `(1 + 2) * 3`},
		{`1 - (2 - 3)`, `1 - (2 - 3)`},
		{`(1 - 2) - 3`, `1 - 2 - 3`},
		{`((a))`, `a`},
		{`a < (b < c)`, `a < (b < c)`},
		{`f( a,b )`, `f(a, b)`},
		{`fun(a,b=1) do a done`, `fun(a, b = 1) do a done`},
		{`if a do b done`, `if a do b done`},
		{`if a do b else c done`, `if a do b else c done`},
		{`let x = 1 in x`, `let x = 1 in x`},
		{`let x = let y = 1 in y in x`, `let x = (let y = 1 in y) in x`},
		{`1 + let x = 2 in x`, `1 + (let x = 2 in x)`},
		{`(let x = 2 in x) + 1`, `(let x = 2 in x) + 1`},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			got := Format(buildSource(t, source.New("test.goat", tc.src)))
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, program := range folderPrograms {
		t.Run(program, func(t *testing.T) {
			tree := buildSource(t, source.New("test.goat", program))
			printed := Format(tree)
			reparsed := buildSource(t, source.New("printed.goat", printed))
			if reparsed.String() != tree.String() {
				t.Errorf("round trip through %q changed the tree: expected %s, got %s", printed, tree, reparsed)
			}
		})
	}
}

func TestPrintLongChain(t *testing.T) {
	const n = 50000
	text := strings.Repeat("a + ", n) + "1"
	tree := buildSource(t, source.New("chain.goat", text))

	start := time.Now()
	sexpr := tree.String()
	printed := Format(tree)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("printing %d operators took %v", n, elapsed)
	}

	if printed != text {
		t.Errorf("formatted chain differs from input (lengths %d and %d)", len(printed), len(text))
	}
	prefix := "(program " + strings.Repeat("(+ ", n) + "a a)"
	if !strings.HasPrefix(sexpr, prefix) || !strings.HasSuffix(sexpr, " a) 1))") {
		t.Errorf("unexpected s-expression for chain of %d operators", n)
	}
}
