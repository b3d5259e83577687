package ast

import (
	"fmt"

	"github.com/iley/goat/internal/cst"
)

// Build converts a concrete syntax tree into an AST.
//
// The parser and the builder are maintained together. A node whose rule the
// builder does not know, or whose children do not have the shape the
// grammar promises, is a bug and makes Build panic.
func Build(node *cst.Node) Ast {
	switch node.Rule {
	case cst.RuleGoat:
		if len(node.Children) == 0 {
			return &Program{Body: &Empty{}}
		}
		return &Program{Body: Build(node.Children[0])}
	case cst.RuleEOI:
		return &Empty{}
	case cst.RuleNumber:
		return &Number{Span: node.Span}
	case cst.RuleString:
		return &Str{Span: node.Span}
	case cst.RuleIdent:
		id := NewIdentifier(node.Span)
		return &id
	case cst.RuleBoolean:
		return Build(child(node, 0))
	case cst.RuleTrue:
		return &Bool{Value: true}
	case cst.RuleFalse:
		return &Bool{Value: false}
	case cst.RuleFunction:
		return buildFunction(node)
	case cst.RuleApplication:
		callee := child(node, 0)
		arguments := make([]Ast, 0, len(node.Children)-1)
		for _, arg := range node.Children[1:] {
			arguments = append(arguments, Build(arg))
		}
		return &Application{
			Callee:    NewIdentifier(callee.Span),
			Arguments: arguments,
		}
	case cst.RuleConditional:
		if len(node.Children) != 2 && len(node.Children) != 3 {
			invalid(node, "conditional needs 2 or 3 children")
		}
		result := &Conditional{
			Condition: Build(node.Children[0]),
			Then:      Build(node.Children[1]),
		}
		if len(node.Children) == 3 {
			result.Else = Build(node.Children[2])
		}
		return result
	case cst.RuleDeclaration:
		if len(node.Children) != 2 && len(node.Children) != 3 {
			invalid(node, "declaration needs 2 or 3 children")
		}
		result := &Declaration{
			Identifier: NewIdentifier(node.Children[0].Span),
			Body:       Build(node.Children[1]),
		}
		if len(node.Children) == 3 {
			result.Rest = Build(node.Children[2])
		}
		return result
	case cst.RuleExpr:
		if len(node.Children)%2 == 0 {
			invalid(node, "expression must alternate operands and operators")
		}
		c := climber{items: node.Children}
		return c.climb(lowestPrecedence)
	}
	panic(fmt.Sprintf("couldn't build %s node at %s", node.Rule, node.Span.Pos()))
}

func buildFunction(node *cst.Node) Ast {
	labelsNode := child(node, 0)
	body := child(node, 1)
	labels := make([]Label, 0, len(labelsNode.Children))
	for _, labelNode := range labelsNode.Children {
		label := Label{Identifier: NewIdentifier(child(labelNode, 0).Span)}
		if def := labelNode.Child(1); def != nil {
			label.Default = Build(def)
		}
		labels = append(labels, label)
	}
	return &Function{Labels: labels, Body: Build(body)}
}

func child(node *cst.Node, i int) *cst.Node {
	c := node.Child(i)
	if c == nil {
		invalid(node, fmt.Sprintf("missing child %d", i))
	}
	return c
}

func invalid(node *cst.Node, msg string) {
	panic(fmt.Sprintf("malformed %s node at %s: %s", node.Rule, node.Span.Pos(), msg))
}

// Operator precedence groups, lowest first. Every group is left-associative.
const (
	lowestPrecedence = iota + 1
	additivePrecedence
	multiplicativePrecedence
)

var precedence = map[cst.Rule]int{
	cst.RuleLt:       lowestPrecedence,
	cst.RuleLte:      lowestPrecedence,
	cst.RuleGt:       lowestPrecedence,
	cst.RuleGte:      lowestPrecedence,
	cst.RulePlus:     additivePrecedence,
	cst.RuleMinus:    additivePrecedence,
	cst.RuleMultiply: multiplicativePrecedence,
	cst.RuleDivide:   multiplicativePrecedence,
}

// climber resolves a flat operand/operator sequence into a tree by
// precedence climbing.
type climber struct {
	items []*cst.Node
	pos   int
}

func (c *climber) climb(minPrecedence int) Ast {
	lhs := Build(c.items[c.pos])
	c.pos++
	for c.pos < len(c.items) {
		op := c.items[c.pos]
		prec, ok := precedence[op.Rule]
		if !ok {
			panic(fmt.Sprintf("couldn't build %s operator at %s", op.Rule, op.Span.Pos()))
		}
		if prec < minPrecedence {
			break
		}
		c.pos++
		// Only strictly tighter operators may take the right operand, which
		// keeps runs of one group left-deep.
		rhs := c.climb(prec + 1)
		lhs = combine(op.Rule, lhs, rhs)
	}
	return lhs
}

func combine(op cst.Rule, lhs, rhs Ast) Ast {
	switch op {
	case cst.RulePlus:
		return &Plus{Left: lhs, Right: rhs}
	case cst.RuleMinus:
		return &Minus{Left: lhs, Right: rhs}
	case cst.RuleMultiply:
		return &Mult{Left: lhs, Right: rhs}
	case cst.RuleDivide:
		return &Div{Left: lhs, Right: rhs}
	case cst.RuleLte:
		return &Lte{Left: lhs, Right: rhs}
	case cst.RuleGte:
		return &Gte{Left: lhs, Right: rhs}
	case cst.RuleLt:
		return &Lt{Left: lhs, Right: rhs}
	case cst.RuleGt:
		return &Gt{Left: lhs, Right: rhs}
	}
	panic(fmt.Sprintf("unsupported operator: %s", op))
}
