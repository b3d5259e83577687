// Package types enumerates the type tags of goat values. It carries no
// inference or checking logic.
package types

import "fmt"

type Tag int

const (
	None Tag = iota
	Number
	String
	Bool
	Function
	Variable
)

func (t Tag) String() string {
	switch t {
	case None:
		return "none"
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Function:
		return "function"
	case Variable:
		return "variable"
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

// Tags lists every tag in declaration order.
func Tags() []Tag {
	return []Tag{None, Number, String, Bool, Function, Variable}
}
