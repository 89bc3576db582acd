// Copyright © 2025 The Ferrule authors

package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/config"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/hir"
	"github.com/ferrulelang/ferrule/linttest"
)

// negatedIfFixture builds "if !ready { stop() } else { go_on() }" inside a
// fn body.
func negatedIfFixture(t *testing.T) *linttest.Fixture {
	t.Helper()
	content := "fn main() {\n    if !ready { stop() } else { go_on() }\n}\n"
	f := linttest.NewFixture(t, content)

	ifExpr := &ast.IfExpr{
		Cond: &ast.UnaryExpr{
			Op:    ast.UnNot,
			X:     &ast.PathExpr{Segments: []string{"ready"}, ESpan: f.Span("ready")},
			ESpan: f.Span("!ready"),
		},
		Then: &ast.Block{BlockSpan: f.Span("{ stop() }")},
		Else: &ast.BlockExpr{
			Block: &ast.Block{BlockSpan: f.Span("{ go_on() }")},
			ESpan: f.Span("{ go_on() }"),
		},
		ESpan: f.Span("if !ready { stop() } else { go_on() }"),
	}
	f.AddItem(linttest.FnItem("main", f.Span("fn main()"), linttest.ExprBody(f.Crate.CrateSpan, ifExpr)))
	return f
}

func TestIfNotElseSwapsBranches(t *testing.T) {
	f := negatedIfFixture(t)

	diags := linttest.RunEarly(t, f, nil, IfNotElse())

	require.Len(t, diags, 1)
	assert.Equal(t, "if_not_else", diags[0].Lint)
	assert.Equal(t, "unnecessary boolean not operation", diags[0].Message)

	require.Len(t, diags[0].Suggestions, 1)
	sugg := diags[0].Suggestions[0]
	assert.Equal(t, diagnostic.MachineApplicable, sugg.Applicability)
	assert.Equal(t,
		"fn main() {\n    if ready { go_on() } else { stop() }\n}\n",
		f.Apply(sugg))
}

func TestIfNotElseNotEqual(t *testing.T) {
	content := "fn main() {\n    if a != b { one() } else { two() }\n}\n"
	f := linttest.NewFixture(t, content)

	ifExpr := &ast.IfExpr{
		Cond: &ast.BinaryExpr{
			Op:    ast.OpNe,
			X:     &ast.PathExpr{Segments: []string{"a"}, ESpan: f.Span("a !")},
			Y:     &ast.PathExpr{Segments: []string{"b"}, ESpan: f.Span("b ")},
			ESpan: f.Span("a != b"),
		},
		Then: &ast.Block{BlockSpan: f.Span("{ one() }")},
		Else: &ast.BlockExpr{
			Block: &ast.Block{BlockSpan: f.Span("{ two() }")},
			ESpan: f.Span("{ two() }"),
		},
		ESpan: f.Span("if a != b { one() } else { two() }"),
	}
	// Trim the lookup spans back to the bare identifiers.
	cond := ifExpr.Cond.(*ast.BinaryExpr)
	cond.X.(*ast.PathExpr).ESpan.End = cond.X.Span().Start + 1
	cond.Y.(*ast.PathExpr).ESpan.End = cond.Y.Span().Start + 1
	f.AddItem(linttest.FnItem("main", f.Span("fn main()"), linttest.ExprBody(f.Crate.CrateSpan, ifExpr)))

	diags := linttest.RunEarly(t, f, nil, IfNotElse())

	require.Len(t, diags, 1)
	assert.Equal(t, "unnecessary != operation", diags[0].Message)
	require.Len(t, diags[0].Suggestions, 1)
	assert.Equal(t,
		"fn main() {\n    if a == b { two() } else { one() }\n}\n",
		f.Apply(diags[0].Suggestions[0]))
}

func TestIfNotElseRewriteReachesFixedPoint(t *testing.T) {
	f := negatedIfFixture(t)
	diags := linttest.RunEarly(t, f, nil, IfNotElse())
	require.Len(t, diags, 1)
	rewritten := f.Apply(diags[0].Suggestions[0])
	require.Equal(t, "fn main() {\n    if ready { go_on() } else { stop() }\n}\n", rewritten)

	f2 := linttest.NewFixture(t, rewritten)
	swapped := &ast.IfExpr{
		Cond: &ast.PathExpr{Segments: []string{"ready"}, ESpan: f2.Span("ready")},
		Then: &ast.Block{BlockSpan: f2.Span("{ go_on() }")},
		Else: &ast.BlockExpr{
			Block: &ast.Block{BlockSpan: f2.Span("{ stop() }")},
			ESpan: f2.Span("{ stop() }"),
		},
		ESpan: f2.Span("if ready { go_on() } else { stop() }"),
	}
	f2.AddItem(linttest.FnItem("main", f2.Span("fn main()"), linttest.ExprBody(f2.Crate.CrateSpan, swapped)))

	assert.Empty(t, linttest.RunEarly(t, f2, nil, IfNotElse()),
		"a second run over the rewritten source has nothing left to edit")
}

func TestIfNotElseDoubleNegationDeclines(t *testing.T) {
	content := "fn main() { if !!ready { stop() } else { go_on() } }"
	f := linttest.NewFixture(t, content)

	ifExpr := &ast.IfExpr{
		Cond: &ast.UnaryExpr{
			Op: ast.UnNot,
			X: &ast.UnaryExpr{
				Op:    ast.UnNot,
				X:     &ast.PathExpr{Segments: []string{"ready"}, ESpan: f.Span("ready")},
				ESpan: f.Span("!ready"),
			},
			ESpan: f.Span("!!ready"),
		},
		Then: &ast.Block{BlockSpan: f.Span("{ stop() }")},
		Else: &ast.BlockExpr{
			Block: &ast.Block{BlockSpan: f.Span("{ go_on() }")},
			ESpan: f.Span("{ go_on() }"),
		},
		ESpan: f.Span("if !!ready { stop() } else { go_on() }"),
	}
	f.AddItem(linttest.FnItem("main", f.Span("fn main()"), linttest.ExprBody(f.Crate.CrateSpan, ifExpr)))

	diags := linttest.RunEarly(t, f, nil, IfNotElse())
	assert.Empty(t, diags, "a cancelled-out negation chain offers no branch swap")
}

func TestIfNotElseSkipsElseIfChains(t *testing.T) {
	content := "fn main() { if !a { one() } else if b { two() } }"
	f := linttest.NewFixture(t, content)

	inner := &ast.IfExpr{
		Cond:  &ast.PathExpr{Segments: []string{"b"}, ESpan: f.Span("b")},
		Then:  &ast.Block{BlockSpan: f.Span("{ two() }")},
		ESpan: f.Span("if b { two() }"),
	}
	outer := &ast.IfExpr{
		Cond: &ast.UnaryExpr{
			Op:    ast.UnNot,
			X:     &ast.PathExpr{Segments: []string{"a"}, ESpan: f.Span("a {")},
			ESpan: f.Span("!a"),
		},
		Then:  &ast.Block{BlockSpan: f.Span("{ one() }")},
		Else:  inner,
		ESpan: f.Span("if !a { one() } else if b { two() }"),
	}
	f.AddItem(linttest.FnItem("main", f.Span("fn main()"), linttest.ExprBody(f.Crate.CrateSpan, outer)))

	diags := linttest.RunEarly(t, f, nil, IfNotElse())
	assert.Empty(t, diags)
}

func TestIfNotElseSkipsMacroExpansions(t *testing.T) {
	content := "fn main() { branch!(ready) }"
	f := linttest.NewFixture(t, content)
	ctxt := f.SM.NewExpansion(f.Span("branch!(ready)"), "branch!", false, f.Span("branch!(ready)"))

	span := f.Span("branch!(ready)").WithCtxt(ctxt)
	ifExpr := &ast.IfExpr{
		Cond:  &ast.UnaryExpr{Op: ast.UnNot, X: &ast.PathExpr{Segments: []string{"ready"}, ESpan: span}, ESpan: span},
		Then:  &ast.Block{BlockSpan: span},
		Else:  &ast.BlockExpr{Block: &ast.Block{BlockSpan: span}, ESpan: span},
		ESpan: span,
	}
	f.AddItem(linttest.FnItem("main", f.Span("fn main()"), linttest.ExprBody(f.Crate.CrateSpan, ifExpr)))

	diags := linttest.RunEarly(t, f, nil, IfNotElse())
	assert.Empty(t, diags)
}

func TestBoolAssertInversion(t *testing.T) {
	content := `fn t() { assert!(!"a".is_empty()); }`
	f := linttest.NewFixture(t, content)
	call := &ast.MethodCallExpr{
		Recv:   &ast.LitExpr{Kind: ast.LitStr, Value: `"a"`, ESpan: f.Span(`"a"`)},
		Method: "is_empty",
		ESpan:  f.Span(`"a".is_empty()`),
	}
	neg := &ast.UnaryExpr{Op: ast.UnNot, X: call, ESpan: f.Span(`!"a".is_empty()`)}
	mac := &ast.MacroCallExpr{
		Path:  "assert",
		Args:  []ast.Expr{neg},
		ESpan: f.Span(`assert!(!"a".is_empty())`),
	}
	f.AddItem(linttest.FnItem("t", f.Span("fn t()"), linttest.ExprBody(f.Crate.CrateSpan, mac)))
	types := linttest.NewTypeTable().SetType(call, linttest.Bool())

	diags := linttest.RunLate(t, f, nil, types, BoolAssertInversion())

	require.Len(t, diags, 1)
	assert.Equal(t, "bool_assert_inversion", diags[0].Lint)
	assert.Equal(t, f.Span(`assert!(!"a".is_empty())`), diags[0].Primary)
	require.Len(t, diags[0].Suggestions, 1)
	sugg := diags[0].Suggestions[0]
	assert.Equal(t, diagnostic.MaybeIncorrect, sugg.Applicability)
	assert.Equal(t, `fn t() { assert_eq!("a".is_empty(), false); }`, f.Apply(sugg))
}

func TestBoolAssertInversionCarriesMessageArgs(t *testing.T) {
	content := `fn t() { assert!(!ok, "bad {}", code); }`
	f := linttest.NewFixture(t, content)
	extras := []ast.Expr{
		&ast.LitExpr{Kind: ast.LitStr, Value: `"bad {}"`, ESpan: f.Span(`"bad {}"`)},
		&ast.PathExpr{Segments: []string{"code"}, ESpan: f.Span("code")},
	}
	cond := &ast.PathExpr{Segments: []string{"ok"}, ESpan: f.Span("ok")}
	neg := &ast.UnaryExpr{Op: ast.UnNot, X: cond, ESpan: f.Span("!ok")}
	mac := &ast.MacroCallExpr{
		Path:  "assert",
		Args:  append([]ast.Expr{neg}, extras...),
		ESpan: f.Span(`assert!(!ok, "bad {}", code)`),
	}
	f.AddItem(linttest.FnItem("t", f.Span("fn t()"), linttest.ExprBody(f.Crate.CrateSpan, mac)))
	types := linttest.NewTypeTable().SetType(cond, linttest.Bool())

	diags := linttest.RunLate(t, f, nil, types, BoolAssertInversion())

	require.Len(t, diags, 1)
	require.Len(t, diags[0].Suggestions, 1)
	assert.Equal(t, `assert_eq!(ok, false, "bad {}", code)`,
		diags[0].Suggestions[0].Parts[0].Replacement)
}

func TestBoolAssertInversionRequiresBoolType(t *testing.T) {
	content := "fn t() { assert!(!n); }"
	f := linttest.NewFixture(t, content)
	cond := &ast.PathExpr{Segments: []string{"n"}, ESpan: f.Span("n)")}
	cond.ESpan.End = cond.ESpan.Start + 1
	neg := &ast.UnaryExpr{Op: ast.UnNot, X: cond, ESpan: f.Span("!n")}
	mac := &ast.MacroCallExpr{Path: "assert", Args: []ast.Expr{neg}, ESpan: f.Span("assert!(!n)")}
	f.AddItem(linttest.FnItem("t", f.Span("fn t()"), linttest.ExprBody(f.Crate.CrateSpan, mac)))

	diags := linttest.RunLate(t, f, nil, linttest.NewTypeTable(), BoolAssertInversion())
	assert.Empty(t, diags, "no finding without a resolved bool type")
}

func TestBoolAssertInversionSkipsPlainCondition(t *testing.T) {
	content := "fn t() { assert!(ok); }"
	f := linttest.NewFixture(t, content)
	cond := &ast.PathExpr{Segments: []string{"ok"}, ESpan: f.Span("ok")}
	mac := &ast.MacroCallExpr{Path: "assert", Args: []ast.Expr{cond}, ESpan: f.Span("assert!(ok)")}
	f.AddItem(linttest.FnItem("t", f.Span("fn t()"), linttest.ExprBody(f.Crate.CrateSpan, mac)))
	types := linttest.NewTypeTable().SetType(cond, linttest.Bool())

	diags := linttest.RunLate(t, f, nil, types, BoolAssertInversion())
	assert.Empty(t, diags, "an un-negated assert! is already in the preferred form")
}

func TestRedundantWildAnnotation(t *testing.T) {
	content := "fn t() { let x: _ = compute(); }"
	f := linttest.NewFixture(t, content)
	local := &ast.LocalStmt{
		Pat:      &ast.IdentPat{Name: "x", PSpan: f.Span("x")},
		Ty:       &ast.InferTy{TSpan: f.Span("_")},
		StmtSpan: f.Span("let x: _ = compute();"),
	}
	body := &ast.Block{Stmts: []ast.Stmt{local}, BlockSpan: f.Crate.CrateSpan}
	f.AddItem(linttest.FnItem("t", f.Span("fn t()"), body))

	diags := linttest.RunEarly(t, f, nil, RedundantWildAnnotation())

	require.Len(t, diags, 1)
	assert.Equal(t, "redundant_wild_annotation", diags[0].Lint)
	require.Len(t, diags[0].Suggestions, 1)
	sugg := diags[0].Suggestions[0]
	assert.Equal(t, diagnostic.MachineApplicable, sugg.Applicability)
	assert.Equal(t, "fn t() { let x = compute(); }", f.Apply(sugg))
}

func TestRedundantWildAnnotationMSRVGate(t *testing.T) {
	content := "fn t() { let x: _ = compute(); }"
	f := linttest.NewFixture(t, content)
	local := &ast.LocalStmt{
		Pat:      &ast.IdentPat{Name: "x", PSpan: f.Span("x")},
		Ty:       &ast.InferTy{TSpan: f.Span("_")},
		StmtSpan: f.Span("let x: _ = compute();"),
	}
	f.AddItem(linttest.FnItem("t", f.Span("fn t()"),
		&ast.Block{Stmts: []ast.Stmt{local}, BlockSpan: f.Crate.CrateSpan}))

	cfg := config.Default()
	cfg.MSRV = "1.10.0"
	diags := linttest.RunEarly(t, f, cfg, RedundantWildAnnotation())
	assert.Empty(t, diags, "wildcard inference postdates the project floor")
}

func TestTooManyArguments(t *testing.T) {
	f := linttest.NewFixture(t, "fn wide(a, b, c, d, e) {}")
	params := make([]*ast.Param, 5)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		params[i] = &ast.Param{Name: name, ParamSpan: f.Span(name)}
	}
	f.AddItem(&ast.Item{
		Kind:     ast.ItemFn,
		Name:     "wide",
		Fn:       &ast.FnDecl{Params: params},
		ItemSpan: f.Crate.CrateSpan,
	})

	cfg := config.Default()
	cfg.TooManyArguments = 4
	diags := linttest.RunEarly(t, f, cfg, TooManyArguments())

	require.Len(t, diags, 1)
	assert.Equal(t, "too_many_arguments", diags[0].Lint)
	assert.Contains(t, diags[0].Message, "(5/4)")
	require.Len(t, diags[0].Helps, 1)

	diags = linttest.RunEarly(t, f, nil, TooManyArguments())
	assert.Empty(t, diags, "five parameters are fine at the default threshold")
}

func TestTooManyArgumentsExemptsForeignABI(t *testing.T) {
	f := linttest.NewFixture(t, `extern "C" fn bind(a, b, c, d, e) {}`)
	params := make([]*ast.Param, 5)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		params[i] = &ast.Param{Name: name, ParamSpan: f.Span(name)}
	}
	f.AddItem(&ast.Item{
		Kind:     ast.ItemFn,
		Name:     "bind",
		Fn:       &ast.FnDecl{Params: params, Abi: "C"},
		ItemSpan: f.Crate.CrateSpan,
	})

	cfg := config.Default()
	cfg.TooManyArguments = 4
	diags := linttest.RunEarly(t, f, cfg, TooManyArguments())
	assert.Empty(t, diags)
}

func TestDisallowedNames(t *testing.T) {
	content := "fn t(foo) { let quux = 1; let fine = 2; }"
	f := linttest.NewFixture(t, content)
	item := &ast.Item{
		Kind: ast.ItemFn,
		Name: "t",
		Fn: &ast.FnDecl{
			Params: []*ast.Param{{Name: "foo", ParamSpan: f.Span("foo")}},
			Body: &ast.Block{
				Stmts: []ast.Stmt{
					&ast.LocalStmt{
						Pat:      &ast.IdentPat{Name: "quux", PSpan: f.Span("quux")},
						StmtSpan: f.Span("let quux = 1;"),
					},
					&ast.LocalStmt{
						Pat:      &ast.IdentPat{Name: "fine", PSpan: f.Span("fine")},
						StmtSpan: f.Span("let fine = 2;"),
					},
				},
				BlockSpan: f.Crate.CrateSpan,
			},
		},
		ItemSpan: f.Crate.CrateSpan,
	}
	f.AddItem(item)

	cfg := config.Default()
	cfg.DisallowedNames = []string{"foo", "quux"}
	diags := linttest.RunEarly(t, f, cfg, DisallowedNames())

	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, `"foo"`)
	assert.Contains(t, diags[1].Message, `"quux"`)
}

func TestLargeStackArray(t *testing.T) {
	content := "fn t() { let buf = [0; 1048576]; }"
	f := linttest.NewFixture(t, content)
	arr := &ast.ArrayExpr{
		Repeat:    &ast.LitExpr{Kind: ast.LitInt, Value: "0", ESpan: f.Span("0;")},
		RepeatLen: 1048576,
		ESpan:     f.Span("[0; 1048576]"),
	}
	f.AddItem(linttest.FnItem("t", f.Span("fn t()"), linttest.ExprBody(f.Crate.CrateSpan, arr)))

	types := linttest.NewTypeTable().SetType(arr, &hir.Type{
		Kind: hir.KindArray,
		Name: "[u8; 1048576]",
		Size: 1048576,
		Elem: linttest.Int("u8", 1),
		Len:  1048576,
	})

	cfg := config.Default()
	cfg.Warn = []string{"large_stack_array"}
	diags := linttest.RunLate(t, f, cfg, types, LargeStackArray())

	require.Len(t, diags, 1)
	assert.Equal(t, "large_stack_array", diags[0].Lint)
	assert.Contains(t, diags[0].Message, "1048576 bytes")

	diags = linttest.RunLate(t, f, nil, types, LargeStackArray())
	assert.Empty(t, diags, "pedantic lints are allow by default")
}
