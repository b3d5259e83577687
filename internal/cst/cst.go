// Package cst describes the concrete syntax tree handed to the tree builder:
// nodes tagged with the grammar rule that produced them, each covering a
// span of the source.
package cst

import (
	"fmt"
	"strings"

	"github.com/iley/goat/internal/source"
)

type Rule int

const (
	RuleGoat Rule = iota
	RuleEOI
	RuleExpr
	RuleNumber
	RuleString
	RuleIdent
	RuleBoolean
	RuleTrue
	RuleFalse
	RuleFunction
	RuleLabels
	RuleLabel
	RuleApplication
	RuleConditional
	RuleDeclaration
	RulePlus
	RuleMinus
	RuleMultiply
	RuleDivide
	RuleLt
	RuleLte
	RuleGt
	RuleGte
)

var ruleNames = map[Rule]string{
	RuleGoat:        "goat",
	RuleEOI:         "EOI",
	RuleExpr:        "expr",
	RuleNumber:      "number",
	RuleString:      "string",
	RuleIdent:       "ident",
	RuleBoolean:     "boolean",
	RuleTrue:        "true_lit",
	RuleFalse:       "false_lit",
	RuleFunction:    "function",
	RuleLabels:      "labels",
	RuleLabel:       "label",
	RuleApplication: "application",
	RuleConditional: "conditional",
	RuleDeclaration: "declaration",
	RulePlus:        "plus",
	RuleMinus:       "minus",
	RuleMultiply:    "multiply",
	RuleDivide:      "divide",
	RuleLt:          "lt",
	RuleLte:         "lte",
	RuleGt:          "gt",
	RuleGte:         "gte",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// IsOperator reports whether the rule tags an infix operator token.
func (r Rule) IsOperator() bool {
	return r >= RulePlus && r <= RuleGte
}

type Node struct {
	Rule     Rule
	Span     source.Span
	Children []*Node
}

func New(rule Rule, span source.Span, children ...*Node) *Node {
	return &Node{Rule: rule, Span: span, Children: children}
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) Text() string {
	return n.Span.Text()
}

// String renders the node as rule(start, end, children...), the layout
// grammar test tools use for token trees.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	sb.WriteString(fmt.Sprintf("%s(%d, %d", n.Rule, n.Span.Start(), n.Span.End()))
	if len(n.Children) > 0 {
		sb.WriteString(", [")
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			child.write(sb)
		}
		sb.WriteString("]")
	}
	sb.WriteString(")")
}
