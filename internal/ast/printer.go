package ast

import (
	"strings"

	"github.com/iley/goat/internal/source"
)

// Printer renders a tree back into goat source text on a single line,
// adding parentheses only where the grammar needs them. Identifiers are
// printed by their internal names. All output goes into one builder.
type Printer struct {
	sb *strings.Builder
}

// Format prints node as goat source.
func Format(node Ast) string {
	var sb strings.Builder
	Visit[struct{}](Printer{sb: &sb}, node)
	return sb.String()
}

func (p Printer) print(node Ast) {
	Visit[struct{}](p, node)
}

func (p Printer) text(s string) struct{} {
	p.sb.WriteString(s)
	return struct{}{}
}

func (p Printer) VisitEmpty() struct{} {
	return struct{}{}
}

func (p Printer) VisitNumber(number source.Span) struct{} {
	return p.text(number.Text())
}

func (p Printer) VisitString(str source.Span) struct{} {
	return p.text(str.Text())
}

func (p Printer) VisitBool(value bool) struct{} {
	if value {
		return p.text("true")
	}
	return p.text("false")
}

func (p Printer) VisitIdentifier(identifier Identifier) struct{} {
	return p.text(identifier.Internal)
}

func (p Printer) VisitProgram(body Ast) struct{} {
	p.print(body)
	return struct{}{}
}

func (p Printer) VisitFunction(labels []Label, body Ast) struct{} {
	p.text("fun(")
	for i, label := range labels {
		if i > 0 {
			p.text(", ")
		}
		p.text(label.Identifier.Internal)
		if label.Default != nil {
			p.text(" = ")
			p.print(label.Default)
		}
	}
	p.text(") do ")
	p.print(body)
	return p.text(" done")
}

func (p Printer) VisitApplication(callee Identifier, arguments []Ast) struct{} {
	p.text(callee.Internal)
	p.text("(")
	for i, arg := range arguments {
		if i > 0 {
			p.text(", ")
		}
		p.print(arg)
	}
	return p.text(")")
}

func (p Printer) VisitConditional(condition, then, els Ast) struct{} {
	p.text("if ")
	p.print(condition)
	p.text(" do ")
	p.print(then)
	if els != nil {
		p.text(" else ")
		p.print(els)
	}
	return p.text(" done")
}

func (p Printer) VisitDeclaration(identifier Identifier, body, rest Ast) struct{} {
	p.text("let ")
	p.text(identifier.Internal)
	p.text(" = ")
	// A nested declaration would take our "in" as its own.
	_, nested := body.(*Declaration)
	p.wrapped(body, nested)
	if rest != nil {
		p.text(" in ")
		p.print(rest)
	}
	return struct{}{}
}

func (p Printer) VisitPlus(lhs, rhs Ast) struct{}  { return p.binary("+", lhs, rhs) }
func (p Printer) VisitMinus(lhs, rhs Ast) struct{} { return p.binary("-", lhs, rhs) }
func (p Printer) VisitMult(lhs, rhs Ast) struct{}  { return p.binary("*", lhs, rhs) }
func (p Printer) VisitDiv(lhs, rhs Ast) struct{}   { return p.binary("/", lhs, rhs) }
func (p Printer) VisitLte(lhs, rhs Ast) struct{}   { return p.binary("<=", lhs, rhs) }
func (p Printer) VisitGte(lhs, rhs Ast) struct{}   { return p.binary(">=", lhs, rhs) }
func (p Printer) VisitLt(lhs, rhs Ast) struct{}    { return p.binary("<", lhs, rhs) }
func (p Printer) VisitGt(lhs, rhs Ast) struct{}    { return p.binary(">", lhs, rhs) }

func (p Printer) binary(op string, lhs, rhs Ast) struct{} {
	prec := operatorPrecedence(op)
	_, leftDecl := lhs.(*Declaration)
	p.wrapped(lhs, leftDecl || nodePrecedence(lhs) < prec)
	p.text(" ")
	p.text(op)
	p.text(" ")
	_, rightDecl := rhs.(*Declaration)
	p.wrapped(rhs, rightDecl || nodePrecedence(rhs) <= prec)
	return struct{}{}
}

func (p Printer) wrapped(node Ast, parens bool) {
	if parens {
		p.text("(")
	}
	p.print(node)
	if parens {
		p.text(")")
	}
}

func operatorPrecedence(op string) int {
	switch op {
	case "*", "/":
		return multiplicativePrecedence
	case "+", "-":
		return additivePrecedence
	}
	return lowestPrecedence
}

// nodePrecedence is the binding strength of node as an operand. Anything
// that is not a binary operation never needs parentheses for precedence.
func nodePrecedence(node Ast) int {
	if op, _, _, ok := Operator(node); ok {
		return operatorPrecedence(op)
	}
	return multiplicativePrecedence + 1
}
