// Copyright © 2025 The Ferrule authors

package lint

import (
	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/source"
)

// FnCtx describes one function-like node: a free fn, an impl method, or a
// trait method with a default body. Hooks receive it instead of the three
// distinct item shapes.
type FnCtx struct {
	Name   string
	Decl   *ast.FnDecl
	Public bool
	Attrs  []ast.Attribute
	Span   source.Span
}

// EarlyPass is one check over the unresolved syntax tree. Only the hooks a
// pass sets are invoked; every hook is optional. Hooks fire in tree order:
// a node's hook before its children, the Post hooks after.
type EarlyPass struct {
	// Name identifies the pass in internal-error reports.
	Name string

	// Lints are the checks this pass implements. Registration declares
	// them for level resolution and the catalogue.
	Lints []*Lint

	CheckCrate          func(cx *Context, c *ast.Crate)
	CheckItem           func(cx *Context, it *ast.Item)
	CheckItemPost       func(cx *Context, it *ast.Item)
	CheckFn             func(cx *Context, fn *FnCtx)
	CheckWherePredicate func(cx *Context, wp *ast.WherePredicate)
	CheckParam          func(cx *Context, p *ast.Param)
	CheckField          func(cx *Context, f *ast.FieldDef)
	CheckVariant        func(cx *Context, v *ast.Variant)
	CheckBlock          func(cx *Context, b *ast.Block)
	CheckStmt           func(cx *Context, s ast.Stmt)
	CheckLocal          func(cx *Context, s *ast.LocalStmt)
	CheckPat            func(cx *Context, p ast.Pat)
	CheckTy             func(cx *Context, t ast.Ty)
	CheckExpr           func(cx *Context, e ast.Expr)
	CheckExprPost       func(cx *Context, e ast.Expr)
	CheckAttribute      func(cx *Context, a ast.Attribute)
	CheckCrateEnd       func(cx *Context, c *ast.Crate)
}

// LatePass is one check over the resolved view. The hooks mirror EarlyPass
// but receive a LateContext, whose type oracle answers semantic queries.
type LatePass struct {
	Name  string
	Lints []*Lint

	CheckCrate          func(cx *LateContext, c *ast.Crate)
	CheckItem           func(cx *LateContext, it *ast.Item)
	CheckItemPost       func(cx *LateContext, it *ast.Item)
	CheckFn             func(cx *LateContext, fn *FnCtx)
	CheckWherePredicate func(cx *LateContext, wp *ast.WherePredicate)
	CheckParam          func(cx *LateContext, p *ast.Param)
	CheckField          func(cx *LateContext, f *ast.FieldDef)
	CheckVariant        func(cx *LateContext, v *ast.Variant)
	CheckBlock          func(cx *LateContext, b *ast.Block)
	CheckStmt           func(cx *LateContext, s ast.Stmt)
	CheckLocal          func(cx *LateContext, s *ast.LocalStmt)
	CheckPat            func(cx *LateContext, p ast.Pat)
	CheckTy             func(cx *LateContext, t ast.Ty)
	CheckExpr           func(cx *LateContext, e ast.Expr)
	CheckExprPost       func(cx *LateContext, e ast.Expr)
	CheckAttribute      func(cx *LateContext, a ast.Attribute)
	CheckCrateEnd       func(cx *LateContext, c *ast.Crate)
}
