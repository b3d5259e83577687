package ast

import (
	"github.com/iley/goat/internal/source"
	"github.com/iley/goat/internal/types"
)

// Stats summarizes the shape of a tree.
type Stats struct {
	// Nodes counts nodes by kind. Labels count as nodes of kind "label".
	Nodes map[string]int
	// Literals counts literal values by their type tag. Function expressions
	// are literals too and are counted under types.Function.
	Literals map[types.Tag]int
	// Identifiers counts every identifier occurrence: references, labels,
	// callees and declared names.
	Identifiers int
	// Depth is the height of the tree; a single leaf has depth 1.
	Depth int
}

func CollectStats(node Ast) Stats {
	v := &statsVisitor{stats: Stats{
		Nodes:    make(map[string]int),
		Literals: make(map[types.Tag]int),
	}}
	v.stats.Depth = Visit[int](v, node)
	return v.stats
}

// statsVisitor returns the height of each subtree and records counts as it
// goes.
type statsVisitor struct {
	stats Stats
}

func (v *statsVisitor) leaf(kind string) int {
	v.stats.Nodes[kind]++
	return 1
}

func (v *statsVisitor) literal(kind string, tag types.Tag) int {
	v.stats.Literals[tag]++
	return v.leaf(kind)
}

func (v *statsVisitor) inner(kind string, children ...Ast) int {
	v.stats.Nodes[kind]++
	height := 0
	for _, child := range children {
		if child == nil {
			continue
		}
		if h := Visit[int](v, child); h > height {
			height = h
		}
	}
	return height + 1
}

func (v *statsVisitor) identifier() {
	v.stats.Identifiers++
}

func (v *statsVisitor) VisitEmpty() int {
	return v.leaf("empty")
}

func (v *statsVisitor) VisitNumber(number source.Span) int {
	return v.literal("number", types.Number)
}

func (v *statsVisitor) VisitString(str source.Span) int {
	return v.literal("string", types.String)
}

func (v *statsVisitor) VisitBool(value bool) int {
	return v.literal("bool", types.Bool)
}

func (v *statsVisitor) VisitIdentifier(identifier Identifier) int {
	v.identifier()
	return v.leaf("identifier")
}

func (v *statsVisitor) VisitProgram(body Ast) int {
	return v.inner("program", body)
}

func (v *statsVisitor) VisitFunction(labels []Label, body Ast) int {
	v.stats.Literals[types.Function]++
	height := 0
	for _, label := range labels {
		v.identifier()
		if h := v.inner("label", label.Default); h > height {
			height = h
		}
	}
	if h := v.inner("function", body) - 1; h > height {
		height = h
	}
	return height + 1
}

func (v *statsVisitor) VisitApplication(callee Identifier, arguments []Ast) int {
	v.identifier()
	return v.inner("application", arguments...)
}

func (v *statsVisitor) VisitConditional(condition, then, els Ast) int {
	return v.inner("conditional", condition, then, els)
}

func (v *statsVisitor) VisitDeclaration(identifier Identifier, body, rest Ast) int {
	v.identifier()
	return v.inner("declaration", body, rest)
}

func (v *statsVisitor) VisitPlus(lhs, rhs Ast) int  { return v.inner("plus", lhs, rhs) }
func (v *statsVisitor) VisitMinus(lhs, rhs Ast) int { return v.inner("minus", lhs, rhs) }
func (v *statsVisitor) VisitMult(lhs, rhs Ast) int  { return v.inner("mult", lhs, rhs) }
func (v *statsVisitor) VisitDiv(lhs, rhs Ast) int   { return v.inner("div", lhs, rhs) }
func (v *statsVisitor) VisitLte(lhs, rhs Ast) int   { return v.inner("lte", lhs, rhs) }
func (v *statsVisitor) VisitGte(lhs, rhs Ast) int   { return v.inner("gte", lhs, rhs) }
func (v *statsVisitor) VisitLt(lhs, rhs Ast) int    { return v.inner("lt", lhs, rhs) }
func (v *statsVisitor) VisitGt(lhs, rhs Ast) int    { return v.inner("gt", lhs, rhs) }
