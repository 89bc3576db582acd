// Copyright © 2025 The Ferrule authors

package linttest

import (
	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/hir"
	"github.com/ferrulelang/ferrule/source"
)

// TypeTable is a scriptable type oracle: tests declare the type of an
// expression by its span and the table answers TypeOf from that script.
type TypeTable struct {
	types      map[source.Span]*hir.Type
	res        map[source.Span]hir.Res
	implements map[string]bool // Type.Name + "\x00" + trait path
}

// NewTypeTable returns an empty oracle; every query resolves to unknown
// until scripted.
func NewTypeTable() *TypeTable {
	return &TypeTable{
		types:      make(map[source.Span]*hir.Type),
		res:        make(map[source.Span]hir.Res),
		implements: make(map[string]bool),
	}
}

// SetType scripts the type of the expression at e's span.
func (tt *TypeTable) SetType(e ast.Expr, ty *hir.Type) *TypeTable {
	tt.types[e.Span()] = ty
	return tt
}

// SetRes scripts the resolution of the path expression at e's span.
func (tt *TypeTable) SetRes(e *ast.PathExpr, res hir.Res) *TypeTable {
	tt.res[e.Span()] = res
	return tt
}

// SetImplements scripts an implementation fact for a type name.
func (tt *TypeTable) SetImplements(typeName, trait string) *TypeTable {
	tt.implements[typeName+"\x00"+trait] = true
	return tt
}

// TypeOf implements hir.TypeCtx.
func (tt *TypeTable) TypeOf(e ast.Expr) *hir.Type {
	return tt.types[e.Span()]
}

// ResolvePath implements hir.TypeCtx.
func (tt *TypeTable) ResolvePath(e *ast.PathExpr) (hir.Res, bool) {
	res, ok := tt.res[e.Span()]
	return res, ok
}

// Implements implements hir.TypeCtx.
func (tt *TypeTable) Implements(ty *hir.Type, trait string) bool {
	return ty != nil && tt.implements[ty.Name+"\x00"+trait]
}

// Bool is a ready-made bool type.
func Bool() *hir.Type {
	return &hir.Type{Kind: hir.KindBool, Name: "bool", Size: 1}
}

// Int returns a sized integer type.
func Int(name string, size int64) *hir.Type {
	return &hir.Type{Kind: hir.KindInt, Name: name, Size: size}
}
