package ast

import (
	"fmt"

	"github.com/iley/goat/internal/source"
)

// Visitor computes a single value of type T from a tree. Every node kind has
// its own method and there are no defaults. Implementations recurse into
// children themselves by calling Visit; labels are handled in VisitFunction.
type Visitor[T any] interface {
	VisitEmpty() T
	VisitNumber(number source.Span) T
	VisitString(str source.Span) T
	VisitBool(value bool) T
	VisitIdentifier(identifier Identifier) T
	VisitProgram(body Ast) T
	VisitFunction(labels []Label, body Ast) T
	VisitApplication(callee Identifier, arguments []Ast) T
	VisitConditional(condition, then, els Ast) T
	VisitDeclaration(identifier Identifier, body, rest Ast) T
	VisitPlus(lhs, rhs Ast) T
	VisitMinus(lhs, rhs Ast) T
	VisitMult(lhs, rhs Ast) T
	VisitDiv(lhs, rhs Ast) T
	VisitLte(lhs, rhs Ast) T
	VisitGte(lhs, rhs Ast) T
	VisitLt(lhs, rhs Ast) T
	VisitGt(lhs, rhs Ast) T
}

// Visit dispatches node to the matching method of v. Optional children
// (an absent else branch or declaration rest) are passed as nil.
func Visit[T any](v Visitor[T], node Ast) T {
	switch n := node.(type) {
	case *Empty:
		return v.VisitEmpty()
	case *Number:
		return v.VisitNumber(n.Span)
	case *Str:
		return v.VisitString(n.Span)
	case *Bool:
		return v.VisitBool(n.Value)
	case *Identifier:
		return v.VisitIdentifier(*n)
	case *Program:
		return v.VisitProgram(n.Body)
	case *Function:
		return v.VisitFunction(n.Labels, n.Body)
	case *Application:
		return v.VisitApplication(n.Callee, n.Arguments)
	case *Conditional:
		return v.VisitConditional(n.Condition, n.Then, n.Else)
	case *Declaration:
		return v.VisitDeclaration(n.Identifier, n.Body, n.Rest)
	case *Plus:
		return v.VisitPlus(n.Left, n.Right)
	case *Minus:
		return v.VisitMinus(n.Left, n.Right)
	case *Mult:
		return v.VisitMult(n.Left, n.Right)
	case *Div:
		return v.VisitDiv(n.Left, n.Right)
	case *Lte:
		return v.VisitLte(n.Left, n.Right)
	case *Gte:
		return v.VisitGte(n.Left, n.Right)
	case *Lt:
		return v.VisitLt(n.Left, n.Right)
	case *Gt:
		return v.VisitGt(n.Left, n.Right)
	}
	panic(fmt.Sprintf("unsupported node type: %T", node))
}
