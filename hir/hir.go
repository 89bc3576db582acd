// Copyright © 2025 The Ferrule authors

// Package hir is the resolved view of a crate that late lint passes walk.
// It reuses the ast node types; what it adds is the semantic side the host
// compiler computed after name resolution and type checking, exposed to
// passes through the TypeCtx interface.
package hir

import (
	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/source"
)

// DefID identifies one definition within the analysed crate graph.
type DefID uint64

// NoDef is the DefID of an unresolved or error definition.
const NoDef = DefID(0)

// TypeKind classifies resolved types coarsely. Lints rarely need more than
// this; the Name carries the rest.
type TypeKind int

const (
	KindUnknown TypeKind = iota
	KindBool
	KindInt
	KindFloat
	KindChar
	KindStr
	KindUnit
	KindRef
	KindArray
	KindAdt // struct or enum
	KindFn
)

// Type is one resolved type.
type Type struct {
	Kind TypeKind
	Name string // display name, e.g. "bool", "Vec<u8>"
	Size int64  // size in bytes, or -1 when unknown or unsized
	Def  DefID  // defining item for KindAdt, NoDef otherwise
	Elem *Type  // element type for KindRef and KindArray
	Len  int64  // element count for KindArray
}

// IsBool reports whether t is exactly the bool type.
func (t *Type) IsBool() bool { return t != nil && t.Kind == KindBool }

// Res is the resolution of a path: what it names and where that thing is
// defined.
type Res struct {
	Def   DefID
	Crate string // defining crate; "" when local
	Path  string // canonical path, e.g. "core::assert"
}

// Local reports whether the resolution points into the analysed crate.
func (r Res) Local() bool { return r.Crate == "" }

// TypeCtx is the semantic oracle late passes query. The host compiler
// provides the real implementation; linttest provides a scriptable one.
type TypeCtx interface {
	// TypeOf returns the resolved type of an expression, or nil when the
	// expression did not type-check.
	TypeOf(e ast.Expr) *Type

	// ResolvePath resolves a path expression to its definition.
	ResolvePath(e *ast.PathExpr) (Res, bool)

	// Implements reports whether ty implements the trait with the given
	// canonical path.
	Implements(ty *Type, trait string) bool
}

// Crate is the late-pass unit of work: the syntax tree paired with the
// source map and the semantic oracle.
type Crate struct {
	Syntax  *ast.Crate
	Sources *source.SourceMap
	Types   TypeCtx
}

// Name returns the crate name.
func (c *Crate) Name() string { return c.Syntax.Name }

// unresolvedTypeCtx answers every query with "unknown". It stands in when
// the host supplies no semantic information, letting type-dependent lints
// bail out instead of crashing.
type unresolvedTypeCtx struct{}

func (unresolvedTypeCtx) TypeOf(ast.Expr) *Type                 { return nil }
func (unresolvedTypeCtx) ResolvePath(*ast.PathExpr) (Res, bool) { return Res{}, false }
func (unresolvedTypeCtx) Implements(*Type, string) bool         { return false }

// NewCrate pairs a syntax tree with its sources and semantics. A nil types
// oracle is replaced by one that resolves nothing.
func NewCrate(syntax *ast.Crate, sources *source.SourceMap, types TypeCtx) *Crate {
	if types == nil {
		types = unresolvedTypeCtx{}
	}
	return &Crate{Syntax: syntax, Sources: sources, Types: types}
}
