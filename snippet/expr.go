// Copyright © 2025 The Ferrule authors

package snippet

import (
	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/source"
)

// ExprPrecedence returns the precedence class an expression node parses at,
// so its snippet can be dropped into a composed rewrite without re-parsing
// the text.
func ExprPrecedence(e ast.Expr) Precedence {
	switch e := e.(type) {
	case *ast.AssignExpr:
		return PrecAssign
	case *ast.BinaryExpr:
		return binOpPrecedence(e.Op)
	case *ast.CastExpr:
		return PrecCast
	case *ast.UnaryExpr:
		return PrecPrefix
	case *ast.CallExpr, *ast.MethodCallExpr:
		return PrecPostfix
	case *ast.IfExpr:
		// An if in operand position always needs wrapping.
		return PrecClosure
	default:
		// Literals, paths, arrays, blocks, and macro calls are delimited.
		return PrecSuffix
	}
}

func binOpPrecedence(op ast.BinOp) Precedence {
	switch op {
	case ast.OpOr:
		return PrecOr
	case ast.OpAnd:
		return PrecAnd
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return PrecCompare
	case ast.OpBitOr:
		return PrecBitOr
	case ast.OpBitXor:
		return PrecBitXor
	case ast.OpBitAnd:
		return PrecBitAnd
	case ast.OpShl, ast.OpShr:
		return PrecShift
	case ast.OpAdd, ast.OpSub:
		return PrecAdditive
	default:
		return PrecMultiplicative
	}
}

// ExprSugg builds a Sugg for an expression node from its source text. The
// snippet fallback and applicability rules of SnippetWithContext apply; a
// fallback-sourced fragment is treated as atomic because the placeholder
// text has no parse.
func ExprSugg(sm *source.SourceMap, e ast.Expr, ctxt source.SyntaxContext, fallback string, app *diagnostic.Applicability) Sugg {
	before := *app
	text := SnippetWithContext(sm, e.Span(), ctxt, fallback, app)
	if *app != before && text == fallback {
		return Atomic(text)
	}
	return New(text, ExprPrecedence(e))
}
