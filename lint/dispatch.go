// Copyright © 2025 The Ferrule authors

package lint

import (
	"fmt"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/attr"
	"github.com/ferrulelang/ferrule/config"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/hir"
	"github.com/ferrulelang/ferrule/msrv"
	"github.com/ferrulelang/ferrule/source"
)

// iceLint names diagnostics the framework emits when a pass panics. It is
// not a registered lint: an internal error cannot be allowed away.
const iceLint = "internal-error"

// Runner drives the registered passes over a crate. The same Runner must be
// used for both phases so that an #[expect(...)] folded during the early
// walk can be fulfilled by a late lint.
type Runner struct {
	reg     *Registry
	sources *source.SourceMap
	cfg     *config.Config
	sink    diagnostic.Sink

	expect *expectations
	levels *levels
	msrv   *msrv.Stack

	disabledEarly map[string]bool
	disabledLate  map[string]bool

	prof Profiler
}

// Profiler observes pass execution. Both Start methods return the closer to
// invoke when the observed unit finishes. The profiler package provides
// tracing implementations.
type Profiler interface {
	StartPhase(phase, crate string) func()
	StartPass(phase, pass string) func()
}

// SetProfiler attaches an execution observer. Call before running.
func (r *Runner) SetProfiler(p Profiler) { r.prof = p }

// observe wraps one pass hook invocation for the profiler.
func (r *Runner) observe(phase, pass string, fn func()) {
	if r.prof == nil {
		fn()
		return
	}
	end := r.prof.StartPass(phase, pass)
	defer end()
	fn()
}

// NewRunner prepares a run against the given configuration. The
// configuration's MSRV and global level lists are applied; both were
// validated at load time.
func NewRunner(reg *Registry, sources *source.SourceMap, cfg *config.Config, sink diagnostic.Sink) (*Runner, error) {
	stack, err := msrv.NewStack(cfg.MSRV)
	if err != nil {
		return nil, err
	}
	expect := newExpectations()
	lv := newLevels(reg, expect)
	lv.configure(cfg.Allow, cfg.Warn, cfg.Deny)
	return &Runner{
		reg:           reg,
		sources:       sources,
		cfg:           cfg,
		sink:          sink,
		expect:        expect,
		levels:        lv,
		msrv:          stack,
		disabledEarly: make(map[string]bool),
		disabledLate:  make(map[string]bool),
	}, nil
}

// RunEarly walks the unresolved tree through every early pass.
func (r *Runner) RunEarly(crate *ast.Crate) {
	if r.prof != nil {
		end := r.prof.StartPhase("early", crate.Name)
		defer end()
	}
	cx := &Context{sources: r.sources, cfg: r.cfg, sink: r.sink, levels: r.levels, msrv: r.msrv}
	w := &walker{cx: cx, hooks: &earlyHooks{r: r, cx: cx}}
	w.crate(crate)
}

// RunLate walks the resolved view through every late pass.
func (r *Runner) RunLate(crate *hir.Crate) {
	if r.prof != nil {
		end := r.prof.StartPhase("late", crate.Name())
		defer end()
	}
	cx := &LateContext{
		Context: &Context{sources: r.sources, cfg: r.cfg, sink: r.sink, levels: r.levels, msrv: r.msrv},
		Crate:   crate,
	}
	w := &walker{cx: cx.Context, hooks: &lateHooks{r: r, cx: cx}}
	w.crate(crate.Syntax)
}

// Finish reports every unfulfilled expectation and returns them. Call after
// both phases.
func (r *Runner) Finish() []Expectation {
	unfulfilled := r.expect.unfulfilled()
	cx := &Context{sources: r.sources, cfg: r.cfg, sink: r.sink, levels: r.levels, msrv: r.msrv}
	for _, e := range unfulfilled {
		cx.SpanLintAndHelp(UnfulfilledExpectation, e.Span, e.String(),
			source.DummySpan(), "remove the #[expect(...)] attribute or fix the code it covers")
	}
	return unfulfilled
}

// ice reports a panicking pass and disables it for the rest of the phase.
func (r *Runner) ice(pass string, span source.Span, v interface{}) {
	d := diagnostic.Diagnostic{
		Lint:     iceLint,
		Severity: diagnostic.SeverityError,
		Primary:  span,
		Message:  fmt.Sprintf("pass %s panicked: %v", pass, v),
		Notes: []diagnostic.Note{{
			Span: source.DummySpan(),
			Text: "the remaining checks of this pass were skipped; other passes are unaffected",
		}},
	}
	d.ResolvePos(r.sources)
	r.sink.Emit(d)
}

// guard runs one hook invocation, converting a panic into an internal-error
// diagnostic anchored at the node being visited.
func guard(r *Runner, disabled map[string]bool, pass string, span source.Span, fn func()) {
	if disabled[pass] {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			disabled[pass] = true
			r.ice(pass, span, v)
		}
	}()
	fn()
}

// nodeHooks is the per-node callback surface the walker drives. The early
// and late adapters fan each callback out to their passes.
type nodeHooks interface {
	crate(c *ast.Crate)
	crateEnd(c *ast.Crate)
	item(it *ast.Item)
	itemPost(it *ast.Item)
	fn(fc *FnCtx)
	wherePredicate(wp *ast.WherePredicate)
	param(p *ast.Param)
	field(f *ast.FieldDef)
	variant(v *ast.Variant)
	block(b *ast.Block)
	stmt(s ast.Stmt)
	local(s *ast.LocalStmt)
	pat(p ast.Pat)
	ty(t ast.Ty)
	expr(e ast.Expr)
	exprPost(e ast.Expr)
	attribute(a ast.Attribute)
}

// walker performs the depth-first walk shared by both phases: siblings in
// source order, a node's hook before its children, Post hooks after. At
// every attribute-bearing node it folds lint levels and MSRV scopes on the
// way in and unwinds them on the way out.
type walker struct {
	cx    *Context
	hooks nodeHooks
}

// enter folds the node's attributes into the level and MSRV stacks and
// reports any stale-name notices. The returned func unwinds; call it when
// leaving the node.
func (w *walker) enter(attrs []ast.Attribute) func() {
	pushedLevels := w.cx.levels.fold(attrs)
	for _, n := range w.cx.levels.drainNotices() {
		w.cx.SpanLint(n.lint, n.span, n.msg)
	}

	pushedMSRV := false
	for _, a := range attrs {
		parsed, err := attr.Parse(a.Text)
		if err != nil || parsed.Tool != "ferrule" || parsed.Name != "msrv" {
			continue
		}
		if w.cx.msrv.Enter(parsed.Value) {
			pushedMSRV = true
		} else {
			w.cx.SpanLint(MalformedAttribute, a.AtSpan,
				fmt.Sprintf("unparsable msrv %q in attribute", parsed.Value))
		}
		break
	}

	for _, a := range attrs {
		w.hooks.attribute(a)
	}

	return func() {
		if pushedMSRV {
			w.cx.msrv.Exit()
		}
		if pushedLevels {
			w.cx.levels.pop()
		}
	}
}

func (w *walker) crate(c *ast.Crate) {
	leave := w.enter(c.Attrs)
	defer leave()
	w.hooks.crate(c)
	for _, it := range c.Items {
		w.item(it)
	}
	w.hooks.crateEnd(c)
}

func (w *walker) item(it *ast.Item) {
	leave := w.enter(it.Attrs)
	defer leave()
	w.hooks.item(it)

	switch it.Kind {
	case ast.ItemFn:
		w.fn(&FnCtx{Name: it.Name, Decl: it.Fn, Public: it.Public, Attrs: it.Attrs, Span: it.ItemSpan})
	case ast.ItemStruct:
		for _, f := range it.Fields {
			w.fieldDef(f)
		}
	case ast.ItemEnum:
		for _, v := range it.Variants {
			w.variant(v)
		}
	case ast.ItemImpl:
		for _, ii := range it.ImplItems {
			leave := w.enter(ii.Attrs)
			w.fn(&FnCtx{Name: ii.Name, Decl: ii.Fn, Attrs: ii.Attrs, Span: ii.ItemSpan})
			leave()
		}
	case ast.ItemTrait:
		for _, ti := range it.TraitItems {
			leave := w.enter(ti.Attrs)
			w.fn(&FnCtx{Name: ti.Name, Decl: ti.Fn, Attrs: ti.Attrs, Span: ti.ItemSpan})
			leave()
		}
	case ast.ItemMod:
		for _, sub := range it.Items {
			w.item(sub)
		}
	case ast.ItemConst:
		if it.Init != nil {
			w.expr(it.Init)
		}
	}

	w.hooks.itemPost(it)
}

func (w *walker) fn(fc *FnCtx) {
	if fc.Decl == nil {
		return
	}
	w.hooks.fn(fc)
	for _, wp := range fc.Decl.Where {
		w.hooks.wherePredicate(wp)
	}
	for _, p := range fc.Decl.Params {
		w.hooks.param(p)
		w.ty(p.Ty)
	}
	w.ty(fc.Decl.Ret)
	if fc.Decl.Body != nil {
		w.block(fc.Decl.Body)
	}
}

func (w *walker) fieldDef(f *ast.FieldDef) {
	leave := w.enter(f.Attrs)
	defer leave()
	w.hooks.field(f)
	w.ty(f.Ty)
}

func (w *walker) variant(v *ast.Variant) {
	leave := w.enter(v.Attrs)
	defer leave()
	w.hooks.variant(v)
	for _, f := range v.Fields {
		w.fieldDef(f)
	}
}

func (w *walker) block(b *ast.Block) {
	w.hooks.block(b)
	for _, s := range b.Stmts {
		w.stmt(s)
	}
}

func (w *walker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.LocalStmt:
		leave := w.enter(s.Attrs)
		w.hooks.stmt(s)
		w.hooks.local(s)
		w.pat(s.Pat)
		w.ty(s.Ty)
		if s.Init != nil {
			w.expr(s.Init)
		}
		leave()
	case *ast.ExprStmt:
		w.hooks.stmt(s)
		w.expr(s.X)
	default:
		w.hooks.stmt(s)
	}
}

func (w *walker) expr(e ast.Expr) {
	if e == nil {
		return
	}
	w.hooks.expr(e)
	switch e := e.(type) {
	case *ast.UnaryExpr:
		w.expr(e.X)
	case *ast.BinaryExpr:
		w.expr(e.X)
		w.expr(e.Y)
	case *ast.CallExpr:
		w.expr(e.Fn)
		for _, a := range e.Args {
			w.expr(a)
		}
	case *ast.MethodCallExpr:
		w.expr(e.Recv)
		for _, a := range e.Args {
			w.expr(a)
		}
	case *ast.MacroCallExpr:
		for _, a := range e.Args {
			w.expr(a)
		}
	case *ast.IfExpr:
		w.expr(e.Cond)
		w.block(e.Then)
		w.expr(e.Else)
	case *ast.BlockExpr:
		w.block(e.Block)
	case *ast.CastExpr:
		w.expr(e.X)
		w.ty(e.Ty)
	case *ast.AssignExpr:
		w.expr(e.Lhs)
		w.expr(e.Rhs)
	case *ast.ArrayExpr:
		w.expr(e.Repeat)
		for _, el := range e.Elems {
			w.expr(el)
		}
	}
	w.hooks.exprPost(e)
}

func (w *walker) pat(p ast.Pat) {
	if p == nil {
		return
	}
	w.hooks.pat(p)
}

func (w *walker) ty(t ast.Ty) {
	if t == nil {
		return
	}
	w.hooks.ty(t)
	switch t := t.(type) {
	case *ast.RefTy:
		w.ty(t.Elem)
	case *ast.ArrayTy:
		w.ty(t.Elem)
	}
}

// earlyHooks fans each walker callback out to the early passes in
// registration order, guarding every invocation.
type earlyHooks struct {
	r  *Runner
	cx *Context
}

func (h *earlyHooks) each(span source.Span, fn func(p *EarlyPass)) {
	for _, p := range h.r.reg.EarlyPasses() {
		p := p
		h.r.observe("early", p.Name, func() {
			guard(h.r, h.r.disabledEarly, p.Name, span, func() { fn(p) })
		})
	}
}

func (h *earlyHooks) crate(c *ast.Crate) {
	h.each(c.Span(), func(p *EarlyPass) {
		if p.CheckCrate != nil {
			p.CheckCrate(h.cx, c)
		}
	})
}

func (h *earlyHooks) crateEnd(c *ast.Crate) {
	h.each(c.Span(), func(p *EarlyPass) {
		if p.CheckCrateEnd != nil {
			p.CheckCrateEnd(h.cx, c)
		}
	})
}

func (h *earlyHooks) item(it *ast.Item) {
	h.each(it.Span(), func(p *EarlyPass) {
		if p.CheckItem != nil {
			p.CheckItem(h.cx, it)
		}
	})
}

func (h *earlyHooks) itemPost(it *ast.Item) {
	h.each(it.Span(), func(p *EarlyPass) {
		if p.CheckItemPost != nil {
			p.CheckItemPost(h.cx, it)
		}
	})
}

func (h *earlyHooks) fn(fc *FnCtx) {
	h.each(fc.Span, func(p *EarlyPass) {
		if p.CheckFn != nil {
			p.CheckFn(h.cx, fc)
		}
	})
}

func (h *earlyHooks) wherePredicate(wp *ast.WherePredicate) {
	h.each(wp.Span(), func(p *EarlyPass) {
		if p.CheckWherePredicate != nil {
			p.CheckWherePredicate(h.cx, wp)
		}
	})
}

func (h *earlyHooks) param(pa *ast.Param) {
	h.each(pa.Span(), func(p *EarlyPass) {
		if p.CheckParam != nil {
			p.CheckParam(h.cx, pa)
		}
	})
}

func (h *earlyHooks) field(f *ast.FieldDef) {
	h.each(f.Span(), func(p *EarlyPass) {
		if p.CheckField != nil {
			p.CheckField(h.cx, f)
		}
	})
}

func (h *earlyHooks) variant(v *ast.Variant) {
	h.each(v.Span(), func(p *EarlyPass) {
		if p.CheckVariant != nil {
			p.CheckVariant(h.cx, v)
		}
	})
}

func (h *earlyHooks) block(b *ast.Block) {
	h.each(b.Span(), func(p *EarlyPass) {
		if p.CheckBlock != nil {
			p.CheckBlock(h.cx, b)
		}
	})
}

func (h *earlyHooks) stmt(s ast.Stmt) {
	h.each(s.Span(), func(p *EarlyPass) {
		if p.CheckStmt != nil {
			p.CheckStmt(h.cx, s)
		}
	})
}

func (h *earlyHooks) local(s *ast.LocalStmt) {
	h.each(s.Span(), func(p *EarlyPass) {
		if p.CheckLocal != nil {
			p.CheckLocal(h.cx, s)
		}
	})
}

func (h *earlyHooks) pat(pt ast.Pat) {
	h.each(pt.Span(), func(p *EarlyPass) {
		if p.CheckPat != nil {
			p.CheckPat(h.cx, pt)
		}
	})
}

func (h *earlyHooks) ty(t ast.Ty) {
	h.each(t.Span(), func(p *EarlyPass) {
		if p.CheckTy != nil {
			p.CheckTy(h.cx, t)
		}
	})
}

func (h *earlyHooks) expr(e ast.Expr) {
	h.each(e.Span(), func(p *EarlyPass) {
		if p.CheckExpr != nil {
			p.CheckExpr(h.cx, e)
		}
	})
}

func (h *earlyHooks) exprPost(e ast.Expr) {
	h.each(e.Span(), func(p *EarlyPass) {
		if p.CheckExprPost != nil {
			p.CheckExprPost(h.cx, e)
		}
	})
}

func (h *earlyHooks) attribute(a ast.Attribute) {
	h.each(a.Span(), func(p *EarlyPass) {
		if p.CheckAttribute != nil {
			p.CheckAttribute(h.cx, a)
		}
	})
}

// lateHooks mirrors earlyHooks for the late passes.
type lateHooks struct {
	r  *Runner
	cx *LateContext
}

func (h *lateHooks) each(span source.Span, fn func(p *LatePass)) {
	for _, p := range h.r.reg.LatePasses() {
		p := p
		h.r.observe("late", p.Name, func() {
			guard(h.r, h.r.disabledLate, p.Name, span, func() { fn(p) })
		})
	}
}

func (h *lateHooks) crate(c *ast.Crate) {
	h.each(c.Span(), func(p *LatePass) {
		if p.CheckCrate != nil {
			p.CheckCrate(h.cx, c)
		}
	})
}

func (h *lateHooks) crateEnd(c *ast.Crate) {
	h.each(c.Span(), func(p *LatePass) {
		if p.CheckCrateEnd != nil {
			p.CheckCrateEnd(h.cx, c)
		}
	})
}

func (h *lateHooks) item(it *ast.Item) {
	h.each(it.Span(), func(p *LatePass) {
		if p.CheckItem != nil {
			p.CheckItem(h.cx, it)
		}
	})
}

func (h *lateHooks) itemPost(it *ast.Item) {
	h.each(it.Span(), func(p *LatePass) {
		if p.CheckItemPost != nil {
			p.CheckItemPost(h.cx, it)
		}
	})
}

func (h *lateHooks) fn(fc *FnCtx) {
	h.each(fc.Span, func(p *LatePass) {
		if p.CheckFn != nil {
			p.CheckFn(h.cx, fc)
		}
	})
}

func (h *lateHooks) wherePredicate(wp *ast.WherePredicate) {
	h.each(wp.Span(), func(p *LatePass) {
		if p.CheckWherePredicate != nil {
			p.CheckWherePredicate(h.cx, wp)
		}
	})
}

func (h *lateHooks) param(pa *ast.Param) {
	h.each(pa.Span(), func(p *LatePass) {
		if p.CheckParam != nil {
			p.CheckParam(h.cx, pa)
		}
	})
}

func (h *lateHooks) field(f *ast.FieldDef) {
	h.each(f.Span(), func(p *LatePass) {
		if p.CheckField != nil {
			p.CheckField(h.cx, f)
		}
	})
}

func (h *lateHooks) variant(v *ast.Variant) {
	h.each(v.Span(), func(p *LatePass) {
		if p.CheckVariant != nil {
			p.CheckVariant(h.cx, v)
		}
	})
}

func (h *lateHooks) block(b *ast.Block) {
	h.each(b.Span(), func(p *LatePass) {
		if p.CheckBlock != nil {
			p.CheckBlock(h.cx, b)
		}
	})
}

func (h *lateHooks) stmt(s ast.Stmt) {
	h.each(s.Span(), func(p *LatePass) {
		if p.CheckStmt != nil {
			p.CheckStmt(h.cx, s)
		}
	})
}

func (h *lateHooks) local(s *ast.LocalStmt) {
	h.each(s.Span(), func(p *LatePass) {
		if p.CheckLocal != nil {
			p.CheckLocal(h.cx, s)
		}
	})
}

func (h *lateHooks) pat(pt ast.Pat) {
	h.each(pt.Span(), func(p *LatePass) {
		if p.CheckPat != nil {
			p.CheckPat(h.cx, pt)
		}
	})
}

func (h *lateHooks) ty(t ast.Ty) {
	h.each(t.Span(), func(p *LatePass) {
		if p.CheckTy != nil {
			p.CheckTy(h.cx, t)
		}
	})
}

func (h *lateHooks) expr(e ast.Expr) {
	h.each(e.Span(), func(p *LatePass) {
		if p.CheckExpr != nil {
			p.CheckExpr(h.cx, e)
		}
	})
}

func (h *lateHooks) exprPost(e ast.Expr) {
	h.each(e.Span(), func(p *LatePass) {
		if p.CheckExprPost != nil {
			p.CheckExprPost(h.cx, e)
		}
	})
}

func (h *lateHooks) attribute(a ast.Attribute) {
	h.each(a.Span(), func(p *LatePass) {
		if p.CheckAttribute != nil {
			p.CheckAttribute(h.cx, a)
		}
	})
}
