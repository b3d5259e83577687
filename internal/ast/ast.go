package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iley/goat/internal/source"
	"github.com/iley/goat/internal/util"
)

// Ast is a node of the abstract syntax tree. The set of node types is
// closed. Nodes are never modified after construction: passes that change a
// tree build a new one.
type Ast interface {
	fmt.Stringer
	isAst()
	// write appends the s-expression form of the node to sb.
	write(sb *strings.Builder)
}

// render prints node through a single builder, so printing is linear in the
// size of the tree.
func render(node Ast) string {
	var sb strings.Builder
	node.write(&sb)
	return sb.String()
}

// Identifier is a name occurrence. Name is where it was written; Internal is
// the name later passes should use, initially the same text.
type Identifier struct {
	Name     source.Span
	Internal string
}

func NewIdentifier(name source.Span) Identifier {
	return Identifier{Name: name, Internal: name.Text()}
}

// Rename returns a copy of the identifier with a different internal name and
// the same source span.
func (i Identifier) Rename(internal string) Identifier {
	return Identifier{Name: i.Name, Internal: internal}
}

func (i *Identifier) isAst() {}

func (i *Identifier) String() string { return render(i) }

func (i *Identifier) write(sb *strings.Builder) {
	sb.WriteString(i.Internal)
}

// Label is a formal parameter of a function.
type Label struct {
	Identifier Identifier
	Default    Ast // optional
}

func (l Label) String() string {
	var sb strings.Builder
	l.write(&sb)
	return sb.String()
}

func (l Label) write(sb *strings.Builder) {
	if l.Default == nil {
		sb.WriteString(l.Identifier.Internal)
		return
	}
	sb.WriteString("(")
	sb.WriteString(l.Identifier.Internal)
	sb.WriteString(" ")
	l.Default.write(sb)
	sb.WriteString(")")
}

type Empty struct{}

func (e *Empty) isAst() {}

func (e *Empty) String() string { return render(e) }

func (e *Empty) write(sb *strings.Builder) {
	sb.WriteString("(empty)")
}

// Number keeps the literal's source text; Value parses it on demand.
type Number struct {
	Span source.Span
}

func (n *Number) isAst() {}

func (n *Number) String() string { return render(n) }

func (n *Number) write(sb *strings.Builder) {
	sb.WriteString(n.Span.Text())
}

func (n *Number) Value() (float64, error) {
	return strconv.ParseFloat(n.Span.Text(), 64)
}

// Str keeps the literal's source text, quotes included; Value decodes it on
// demand.
type Str struct {
	Span source.Span
}

func (s *Str) isAst() {}

func (s *Str) String() string { return render(s) }

func (s *Str) write(sb *strings.Builder) {
	sb.WriteString(util.EscapeString(s.Span.Text()))
}

func (s *Str) Value() (string, error) {
	return strconv.Unquote(s.Span.Text())
}

type Bool struct {
	Value bool
}

func (b *Bool) isAst() {}

func (b *Bool) String() string { return render(b) }

func (b *Bool) write(sb *strings.Builder) {
	sb.WriteString(strconv.FormatBool(b.Value))
}

// Program is the root of every parsed unit.
type Program struct {
	Body Ast
}

func (p *Program) isAst() {}

func (p *Program) String() string { return render(p) }

func (p *Program) write(sb *strings.Builder) {
	sb.WriteString("(program ")
	p.Body.write(sb)
	sb.WriteString(")")
}

// Function is an anonymous function. Label order is parameter order.
type Function struct {
	Labels []Label
	Body   Ast
}

func (f *Function) isAst() {}

func (f *Function) String() string { return render(f) }

func (f *Function) write(sb *strings.Builder) {
	sb.WriteString("(fun (")
	for i, label := range f.Labels {
		if i > 0 {
			sb.WriteString(" ")
		}
		label.write(sb)
	}
	sb.WriteString(") ")
	f.Body.write(sb)
	sb.WriteString(")")
}

type Application struct {
	Callee    Identifier
	Arguments []Ast
}

func (a *Application) isAst() {}

func (a *Application) String() string { return render(a) }

func (a *Application) write(sb *strings.Builder) {
	sb.WriteString("(apply ")
	sb.WriteString(a.Callee.Internal)
	for _, arg := range a.Arguments {
		sb.WriteString(" ")
		arg.write(sb)
	}
	sb.WriteString(")")
}

type Conditional struct {
	Condition Ast
	Then      Ast
	Else      Ast // optional
}

func (c *Conditional) isAst() {}

func (c *Conditional) String() string { return render(c) }

func (c *Conditional) write(sb *strings.Builder) {
	sb.WriteString("(if ")
	c.Condition.write(sb)
	sb.WriteString(" ")
	c.Then.write(sb)
	if c.Else != nil {
		sb.WriteString(" ")
		c.Else.write(sb)
	}
	sb.WriteString(")")
}

// Declaration binds Identifier to Body. Rest, if present, is the expression
// evaluated with the binding in place; without it the declaration is the
// tail of its expression.
type Declaration struct {
	Identifier Identifier
	Body       Ast
	Rest       Ast // optional
}

func (d *Declaration) isAst() {}

func (d *Declaration) String() string { return render(d) }

func (d *Declaration) write(sb *strings.Builder) {
	sb.WriteString("(let ")
	sb.WriteString(d.Identifier.Internal)
	sb.WriteString(" ")
	d.Body.write(sb)
	if d.Rest != nil {
		sb.WriteString(" ")
		d.Rest.write(sb)
	}
	sb.WriteString(")")
}

// Binary operations.

type Plus struct{ Left, Right Ast }

type Minus struct{ Left, Right Ast }

type Mult struct{ Left, Right Ast }

type Div struct{ Left, Right Ast }

type Lte struct{ Left, Right Ast }

type Gte struct{ Left, Right Ast }

type Lt struct{ Left, Right Ast }

type Gt struct{ Left, Right Ast }

func (b *Plus) isAst()  {}
func (b *Minus) isAst() {}
func (b *Mult) isAst()  {}
func (b *Div) isAst()   {}
func (b *Lte) isAst()   {}
func (b *Gte) isAst()   {}
func (b *Lt) isAst()    {}
func (b *Gt) isAst()    {}

func (b *Plus) String() string  { return render(b) }
func (b *Minus) String() string { return render(b) }
func (b *Mult) String() string  { return render(b) }
func (b *Div) String() string   { return render(b) }
func (b *Lte) String() string   { return render(b) }
func (b *Gte) String() string   { return render(b) }
func (b *Lt) String() string    { return render(b) }
func (b *Gt) String() string    { return render(b) }

func (b *Plus) write(sb *strings.Builder)  { writeBinary(sb, "+", b.Left, b.Right) }
func (b *Minus) write(sb *strings.Builder) { writeBinary(sb, "-", b.Left, b.Right) }
func (b *Mult) write(sb *strings.Builder)  { writeBinary(sb, "*", b.Left, b.Right) }
func (b *Div) write(sb *strings.Builder)   { writeBinary(sb, "/", b.Left, b.Right) }
func (b *Lte) write(sb *strings.Builder)   { writeBinary(sb, "<=", b.Left, b.Right) }
func (b *Gte) write(sb *strings.Builder)   { writeBinary(sb, ">=", b.Left, b.Right) }
func (b *Lt) write(sb *strings.Builder)    { writeBinary(sb, "<", b.Left, b.Right) }
func (b *Gt) write(sb *strings.Builder)    { writeBinary(sb, ">", b.Left, b.Right) }

func writeBinary(sb *strings.Builder, op string, left, right Ast) {
	sb.WriteString("(")
	sb.WriteString(op)
	sb.WriteString(" ")
	left.write(sb)
	sb.WriteString(" ")
	right.write(sb)
	sb.WriteString(")")
}

// Operator returns the operator symbol and operands of a binary node.
func Operator(node Ast) (op string, left, right Ast, ok bool) {
	switch n := node.(type) {
	case *Plus:
		return "+", n.Left, n.Right, true
	case *Minus:
		return "-", n.Left, n.Right, true
	case *Mult:
		return "*", n.Left, n.Right, true
	case *Div:
		return "/", n.Left, n.Right, true
	case *Lte:
		return "<=", n.Left, n.Right, true
	case *Gte:
		return ">=", n.Left, n.Right, true
	case *Lt:
		return "<", n.Left, n.Right, true
	case *Gt:
		return ">", n.Left, n.Right, true
	}
	return "", nil, nil, false
}
