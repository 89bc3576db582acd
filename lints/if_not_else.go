// Copyright © 2025 The Ferrule authors

package lints

import (
	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/lint"
	"github.com/ferrulelang/ferrule/snippet"
	"github.com/ferrulelang/ferrule/source"
)

var ifNotElse = &lint.Lint{
	Name: "if_not_else",
	Doc: "Check for if/else chains testing a negated condition.\n\n" +
		"Reading the positive case first is easier; swapping the branches " +
		"removes the negation without changing behaviour.",
	Category: lint.CategoryStyle,
	AddedIn:  "0.1.0",
}

// IfNotElse flags `if !cond { a } else { b }` and `if x != y { a } else
// { b }` and offers the branch-swapped rewrite.
func IfNotElse() *lint.EarlyPass {
	return &lint.EarlyPass{
		Name:  "if-not-else",
		Lints: []*lint.Lint{ifNotElse},
		CheckExpr: func(cx *lint.Context, e ast.Expr) {
			ifExpr, ok := e.(*ast.IfExpr)
			if !ok || ifExpr.Else == nil {
				return
			}
			// An else-if chain reads as a sequence of cases; swapping one
			// link would scramble it.
			elseBlock, ok := ifExpr.Else.(*ast.BlockExpr)
			if !ok {
				return
			}
			if source.FromExpansion(e.Span()) {
				return
			}

			app := diagnostic.MachineApplicable
			msg, positive, ok := positiveCond(cx, ifExpr, &app)
			if !ok {
				return
			}

			sm := cx.Sources()
			thenText := snippet.SnippetWithApplicability(sm, ifExpr.Then.Span(), "{ .. }", &app)
			elseText := snippet.SnippetWithApplicability(sm, elseBlock.Span(), "{ .. }", &app)

			sugg, feasible := snippet.NewMultiPart("try swapping the branches", app).
				Add(ifExpr.Cond.Span(), positive).
				Add(ifExpr.Then.Span(), elseText).
				Add(elseBlock.Span(), thenText).
				Build()

			cx.SpanLintAndThen(ifNotElse, e.Span(), msg, func(d *diagnostic.Diagnostic) {
				if feasible {
					d.Suggestions = append(d.Suggestions, sugg)
				}
			})
		},
	}
}

// positiveCond renders the condition with the negation removed. ok is false
// when the condition is not a negation at all.
func positiveCond(cx *lint.Context, ifExpr *ast.IfExpr, app *diagnostic.Applicability) (msg, positive string, ok bool) {
	sm := cx.Sources()
	ctxt := ifExpr.Span().Ctxt

	switch cond := ifExpr.Cond.(type) {
	case *ast.UnaryExpr:
		if cond.Op != ast.UnNot {
			return "", "", false
		}
		// Walk the whole chain of nots. An even chain cancels out: the
		// condition is already positive, so there is no branch swap to offer.
		depth, operand := 1, cond.X
		for {
			u, ok := operand.(*ast.UnaryExpr)
			if !ok || u.Op != ast.UnNot {
				break
			}
			depth++
			operand = u.X
		}
		if depth%2 == 0 {
			return "", "", false
		}
		inner := snippet.ExprSugg(sm, operand, ctxt, "..", app)
		return "unnecessary boolean not operation", inner.String(), true
	case *ast.BinaryExpr:
		if cond.Op != ast.OpNe {
			return "", "", false
		}
		lhs := snippet.ExprSugg(sm, cond.X, ctxt, "..", app)
		rhs := snippet.ExprSugg(sm, cond.Y, ctxt, "..", app)
		eq := snippet.BinOp(lhs, "==", rhs, snippet.PrecCompare)
		return "unnecessary != operation", eq.String(), true
	}
	return "", "", false
}
