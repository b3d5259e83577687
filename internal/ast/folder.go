package ast

import (
	"fmt"

	"github.com/iley/goat/internal/source"
)

// Folder transforms a tree into a new tree. It has the same shape as
// Visitor, plus FoldLabel and FoldIdentifier for the identifiers embedded in
// functions, applications and declarations.
//
// Implementations usually embed IdentityFolder and override only the
// methods for the node kinds they change.
type Folder interface {
	FoldEmpty() Ast
	FoldNumber(number source.Span) Ast
	FoldString(str source.Span) Ast
	FoldBool(value bool) Ast
	FoldIdentifier(identifier Identifier) Identifier
	FoldLabel(label Label) Label
	FoldProgram(body Ast) Ast
	FoldFunction(labels []Label, body Ast) Ast
	FoldApplication(callee Identifier, arguments []Ast) Ast
	FoldConditional(condition, then, els Ast) Ast
	FoldDeclaration(identifier Identifier, body, rest Ast) Ast
	FoldPlus(lhs, rhs Ast) Ast
	FoldMinus(lhs, rhs Ast) Ast
	FoldMult(lhs, rhs Ast) Ast
	FoldDiv(lhs, rhs Ast) Ast
	FoldLte(lhs, rhs Ast) Ast
	FoldGte(lhs, rhs Ast) Ast
	FoldLt(lhs, rhs Ast) Ast
	FoldGt(lhs, rhs Ast) Ast
}

// Fold dispatches node to the matching method of f.
func Fold(f Folder, node Ast) Ast {
	switch n := node.(type) {
	case *Empty:
		return f.FoldEmpty()
	case *Number:
		return f.FoldNumber(n.Span)
	case *Str:
		return f.FoldString(n.Span)
	case *Bool:
		return f.FoldBool(n.Value)
	case *Identifier:
		id := f.FoldIdentifier(*n)
		return &id
	case *Program:
		return f.FoldProgram(n.Body)
	case *Function:
		return f.FoldFunction(n.Labels, n.Body)
	case *Application:
		return f.FoldApplication(n.Callee, n.Arguments)
	case *Conditional:
		return f.FoldConditional(n.Condition, n.Then, n.Else)
	case *Declaration:
		return f.FoldDeclaration(n.Identifier, n.Body, n.Rest)
	case *Plus:
		return f.FoldPlus(n.Left, n.Right)
	case *Minus:
		return f.FoldMinus(n.Left, n.Right)
	case *Mult:
		return f.FoldMult(n.Left, n.Right)
	case *Div:
		return f.FoldDiv(n.Left, n.Right)
	case *Lte:
		return f.FoldLte(n.Left, n.Right)
	case *Gte:
		return f.FoldGte(n.Left, n.Right)
	case *Lt:
		return f.FoldLt(n.Left, n.Right)
	case *Gt:
		return f.FoldGt(n.Left, n.Right)
	}
	panic(fmt.Sprintf("unsupported node type: %T", node))
}

// foldOptional folds node unless it is absent.
func foldOptional(f Folder, node Ast) Ast {
	if node == nil {
		return nil
	}
	return Fold(f, node)
}

// IdentityFolder rebuilds every node from its folded children and leaves
// literals and identifiers as they are. Children are folded through Self,
// so a type that embeds IdentityFolder and sets Self to itself gets its own
// overrides applied throughout the tree. With Self unset the zero value is
// the identity transform.
//
// Children are folded in source order: labels before the body, each label's
// identifier before its default, the callee before the arguments, and a
// declaration's identifier, body and rest in that order.
type IdentityFolder struct {
	Self Folder
}

func (d IdentityFolder) self() Folder {
	if d.Self == nil {
		return d
	}
	return d.Self
}

func (d IdentityFolder) FoldEmpty() Ast {
	return &Empty{}
}

func (d IdentityFolder) FoldNumber(number source.Span) Ast {
	return &Number{Span: number}
}

func (d IdentityFolder) FoldString(str source.Span) Ast {
	return &Str{Span: str}
}

func (d IdentityFolder) FoldBool(value bool) Ast {
	return &Bool{Value: value}
}

func (d IdentityFolder) FoldIdentifier(identifier Identifier) Identifier {
	return identifier
}

func (d IdentityFolder) FoldLabel(label Label) Label {
	f := d.self()
	result := Label{Identifier: f.FoldIdentifier(label.Identifier)}
	result.Default = foldOptional(f, label.Default)
	return result
}

func (d IdentityFolder) FoldProgram(body Ast) Ast {
	return &Program{Body: Fold(d.self(), body)}
}

func (d IdentityFolder) FoldFunction(labels []Label, body Ast) Ast {
	f := d.self()
	var folded []Label
	if labels != nil {
		folded = make([]Label, len(labels))
		for i, label := range labels {
			folded[i] = f.FoldLabel(label)
		}
	}
	return &Function{Labels: folded, Body: Fold(f, body)}
}

func (d IdentityFolder) FoldApplication(callee Identifier, arguments []Ast) Ast {
	f := d.self()
	result := &Application{Callee: f.FoldIdentifier(callee)}
	if arguments != nil {
		result.Arguments = make([]Ast, len(arguments))
		for i, arg := range arguments {
			result.Arguments[i] = Fold(f, arg)
		}
	}
	return result
}

func (d IdentityFolder) FoldConditional(condition, then, els Ast) Ast {
	f := d.self()
	result := &Conditional{Condition: Fold(f, condition)}
	result.Then = Fold(f, then)
	result.Else = foldOptional(f, els)
	return result
}

func (d IdentityFolder) FoldDeclaration(identifier Identifier, body, rest Ast) Ast {
	f := d.self()
	result := &Declaration{Identifier: f.FoldIdentifier(identifier)}
	result.Body = Fold(f, body)
	result.Rest = foldOptional(f, rest)
	return result
}

func (d IdentityFolder) FoldPlus(lhs, rhs Ast) Ast {
	return &Plus{Left: Fold(d.self(), lhs), Right: Fold(d.self(), rhs)}
}

func (d IdentityFolder) FoldMinus(lhs, rhs Ast) Ast {
	return &Minus{Left: Fold(d.self(), lhs), Right: Fold(d.self(), rhs)}
}

func (d IdentityFolder) FoldMult(lhs, rhs Ast) Ast {
	return &Mult{Left: Fold(d.self(), lhs), Right: Fold(d.self(), rhs)}
}

func (d IdentityFolder) FoldDiv(lhs, rhs Ast) Ast {
	return &Div{Left: Fold(d.self(), lhs), Right: Fold(d.self(), rhs)}
}

func (d IdentityFolder) FoldLte(lhs, rhs Ast) Ast {
	return &Lte{Left: Fold(d.self(), lhs), Right: Fold(d.self(), rhs)}
}

func (d IdentityFolder) FoldGte(lhs, rhs Ast) Ast {
	return &Gte{Left: Fold(d.self(), lhs), Right: Fold(d.self(), rhs)}
}

func (d IdentityFolder) FoldLt(lhs, rhs Ast) Ast {
	return &Lt{Left: Fold(d.self(), lhs), Right: Fold(d.self(), rhs)}
}

func (d IdentityFolder) FoldGt(lhs, rhs Ast) Ast {
	return &Gt{Left: Fold(d.self(), lhs), Right: Fold(d.self(), rhs)}
}
