// Package renamer gives every identifier in a tree a fresh short name.
package renamer

import "github.com/iley/goat/internal/ast"

// Renamer replaces the internal name of each identifier occurrence with the
// next name from its Namer, in traversal order. Spans are kept, so
// diagnostics still point at the original text.
//
// A Renamer holds a counter and must not be shared between goroutines.
type Renamer struct {
	ast.IdentityFolder
	namer Namer
}

func New() *Renamer {
	r := &Renamer{}
	r.Self = r
	return r
}

func (r *Renamer) FoldIdentifier(identifier ast.Identifier) ast.Identifier {
	return identifier.Rename(r.namer.Next())
}

// Rename returns a renamed copy of node. Names continue from the previous
// call on the same Renamer. The zero Renamer is ready to use.
func (r *Renamer) Rename(node ast.Ast) ast.Ast {
	if r.Self == nil {
		r.Self = r
	}
	return ast.Fold(r, node)
}
