// Copyright © 2025 The Ferrule authors

package ast

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ferrulelang/ferrule/source"
)

// The host compiler serialises one crate per analysis run as a JSON dump:
// the file table, the macro expansion table, and a kind-discriminated node
// tree. DecodeDump interns the files and expansions into sm in dump order
// so that span file indices and syntax contexts resolve without a fixup
// pass.

type dumpFile struct {
	Name    string `json:"name"`
	Module  string `json:"module"`
	Content string `json:"content"`
}

type dumpSpan struct {
	File  uint32 `json:"file"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Ctxt  uint32 `json:"ctxt"`
}

type dumpExpansion struct {
	CallSite dumpSpan `json:"call_site"`
	Macro    string   `json:"macro"`
	External bool     `json:"external"`
	Produced dumpSpan `json:"produced"`
}

type dump struct {
	Crate      string            `json:"crate"`
	Files      []dumpFile        `json:"files"`
	Expansions []dumpExpansion   `json:"expansions"`
	Attrs      []json.RawMessage `json:"attrs"`
	Items      []json.RawMessage `json:"items"`
	Span       dumpSpan          `json:"span"`
}

// DecodeDump reads a host compiler crate dump, interning its files and
// expansions into sm. File and context indices inside the dump are
// positions in the dump's own tables; the decoder maps them onto the ids
// sm hands back.
func DecodeDump(r io.Reader, sm *source.SourceMap) (*Crate, error) {
	var d dump
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("crate dump: %w", err)
	}

	dc := &dumpDecoder{
		fileIDs: make([]source.FileID, len(d.Files)),
		ctxts:   make([]source.SyntaxContext, 1, len(d.Expansions)+1),
	}
	for i, f := range d.Files {
		dc.fileIDs[i] = sm.AddFile(f.Name, d.Crate, f.Module, []byte(f.Content))
	}
	// The context table grows as expansions decode, so an expansion can only
	// reference contexts established before it.
	dc.ctxts[0] = source.RootCtxt
	for i, e := range d.Expansions {
		call, err := dc.span(e.CallSite)
		if err != nil {
			return nil, fmt.Errorf("crate dump: expansion %d: %w", i, err)
		}
		produced, err := dc.span(e.Produced)
		if err != nil {
			return nil, fmt.Errorf("crate dump: expansion %d: %w", i, err)
		}
		dc.ctxts = append(dc.ctxts, sm.NewExpansion(call, e.Macro, e.External, produced))
	}

	crate := &Crate{Name: d.Crate}
	var err error
	if crate.CrateSpan, err = dc.span(d.Span); err != nil {
		return nil, fmt.Errorf("crate dump: %w", err)
	}
	if crate.Attrs, err = dc.attrs(d.Attrs); err != nil {
		return nil, fmt.Errorf("crate dump: %w", err)
	}
	for i, raw := range d.Items {
		item, err := dc.item(raw)
		if err != nil {
			return nil, fmt.Errorf("crate dump: item %d: %w", i, err)
		}
		crate.Items = append(crate.Items, item)
	}
	return crate, nil
}

type dumpDecoder struct {
	fileIDs []source.FileID
	ctxts   []source.SyntaxContext
}

func (dc *dumpDecoder) span(s dumpSpan) (source.Span, error) {
	if int(s.File) >= len(dc.fileIDs) {
		return source.DummySpan(), fmt.Errorf("span references file %d of %d", s.File, len(dc.fileIDs))
	}
	if int(s.Ctxt) >= len(dc.ctxts) {
		return source.DummySpan(), fmt.Errorf("span references context %d of %d", s.Ctxt, len(dc.ctxts))
	}
	return source.Span{
		File:  dc.fileIDs[s.File],
		Start: s.Start,
		End:   s.End,
		Ctxt:  dc.ctxts[s.Ctxt],
	}, nil
}

type dumpAttr struct {
	Text string   `json:"text"`
	Span dumpSpan `json:"span"`
}

func (dc *dumpDecoder) attrs(raws []json.RawMessage) ([]Attribute, error) {
	var out []Attribute
	for _, raw := range raws {
		var da dumpAttr
		if err := json.Unmarshal(raw, &da); err != nil {
			return nil, err
		}
		sp, err := dc.span(da.Span)
		if err != nil {
			return nil, err
		}
		out = append(out, Attribute{Text: da.Text, AtSpan: sp})
	}
	return out, nil
}

// node is the shared shape of every dumped tree node. Kind selects which
// of the remaining fields are meaningful.
type node struct {
	Kind string   `json:"kind"`
	Span dumpSpan `json:"span"`

	Name    string            `json:"name,omitempty"`
	Public  bool              `json:"public,omitempty"`
	Attrs   []json.RawMessage `json:"attrs,omitempty"`
	Op      string            `json:"op,omitempty"`
	Value   string            `json:"value,omitempty"`
	Lit     string            `json:"lit,omitempty"`
	Path    []string          `json:"path,omitempty"`
	Method  string            `json:"method,omitempty"`
	Mut     bool              `json:"mut,omitempty"`
	Semi    bool              `json:"semi,omitempty"`
	Abi     string            `json:"abi,omitempty"`
	Len     int64             `json:"len,omitempty"`
	Text    string            `json:"text,omitempty"`
	Segment string            `json:"segment,omitempty"`

	X      json.RawMessage   `json:"x,omitempty"`
	Y      json.RawMessage   `json:"y,omitempty"`
	Cond   json.RawMessage   `json:"cond,omitempty"`
	Then   json.RawMessage   `json:"then,omitempty"`
	Else   json.RawMessage   `json:"else,omitempty"`
	Fn     json.RawMessage   `json:"fn,omitempty"`
	Recv   json.RawMessage   `json:"recv,omitempty"`
	Pat    json.RawMessage   `json:"pat,omitempty"`
	Ty     json.RawMessage   `json:"ty,omitempty"`
	Ret    json.RawMessage   `json:"ret,omitempty"`
	Init   json.RawMessage   `json:"init,omitempty"`
	Body   json.RawMessage   `json:"body,omitempty"`
	Elem   json.RawMessage   `json:"elem,omitempty"`
	Repeat json.RawMessage   `json:"repeat,omitempty"`
	Args   []json.RawMessage `json:"args,omitempty"`
	Elems  []json.RawMessage `json:"elems,omitempty"`
	Stmts  []json.RawMessage `json:"stmts,omitempty"`
	Items  []json.RawMessage `json:"items,omitempty"`
	Params []json.RawMessage `json:"params,omitempty"`
	Fields []json.RawMessage `json:"fields,omitempty"`
}

func decodeNode(raw json.RawMessage) (*node, error) {
	var n node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	if n.Kind == "" {
		return nil, fmt.Errorf("node missing kind")
	}
	return &n, nil
}

var litKinds = map[string]LitKind{
	"int":   LitInt,
	"float": LitFloat,
	"str":   LitStr,
	"bool":  LitBool,
	"char":  LitChar,
}

var unOps = map[string]UnOp{"!": UnNot, "-": UnNeg, "*": UnDeref}

var binOps = map[string]BinOp{
	"||": OpOr, "&&": OpAnd,
	"==": OpEq, "!=": OpNe, "<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe,
	"|": OpBitOr, "^": OpBitXor, "&": OpBitAnd, "<<": OpShl, ">>": OpShr,
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "%": OpRem,
}

func (dc *dumpDecoder) item(raw json.RawMessage) (*Item, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	attrs, err := dc.attrs(n.Attrs)
	if err != nil {
		return nil, err
	}
	item := &Item{Name: n.Name, Public: n.Public, Attrs: attrs, ItemSpan: sp}
	switch n.Kind {
	case "fn":
		item.Kind = ItemFn
		if item.Fn, err = dc.fnDecl(n); err != nil {
			return nil, err
		}
	case "struct":
		item.Kind = ItemStruct
		for _, raw := range n.Fields {
			f, err := dc.fieldDef(raw)
			if err != nil {
				return nil, err
			}
			item.Fields = append(item.Fields, f)
		}
	case "enum":
		item.Kind = ItemEnum
		for _, raw := range n.Items {
			v, err := dc.variant(raw)
			if err != nil {
				return nil, err
			}
			item.Variants = append(item.Variants, v)
		}
	case "impl":
		item.Kind = ItemImpl
		for _, raw := range n.Items {
			ii, err := dc.implItem(raw)
			if err != nil {
				return nil, err
			}
			item.ImplItems = append(item.ImplItems, ii)
		}
	case "trait":
		item.Kind = ItemTrait
		for _, raw := range n.Items {
			ti, err := dc.traitItem(raw)
			if err != nil {
				return nil, err
			}
			item.TraitItems = append(item.TraitItems, ti)
		}
	case "mod":
		item.Kind = ItemMod
		for _, raw := range n.Items {
			sub, err := dc.item(raw)
			if err != nil {
				return nil, err
			}
			item.Items = append(item.Items, sub)
		}
	case "const":
		item.Kind = ItemConst
		if len(n.Init) > 0 {
			if item.Init, err = dc.expr(n.Init); err != nil {
				return nil, err
			}
		}
	case "use":
		item.Kind = ItemUse
	default:
		return nil, fmt.Errorf("unknown item kind %q", n.Kind)
	}
	return item, nil
}

func (dc *dumpDecoder) fnDecl(n *node) (*FnDecl, error) {
	fn := &FnDecl{Abi: n.Abi}
	for _, raw := range n.Params {
		pn, err := decodeNode(raw)
		if err != nil {
			return nil, err
		}
		sp, err := dc.span(pn.Span)
		if err != nil {
			return nil, err
		}
		p := &Param{Name: pn.Name, ParamSpan: sp}
		if len(pn.Ty) > 0 {
			if p.Ty, err = dc.ty(pn.Ty); err != nil {
				return nil, err
			}
		}
		fn.Params = append(fn.Params, p)
	}
	var err error
	if len(n.Ret) > 0 {
		if fn.Ret, err = dc.ty(n.Ret); err != nil {
			return nil, err
		}
	}
	if len(n.Body) > 0 {
		if fn.Body, err = dc.block(n.Body); err != nil {
			return nil, err
		}
	}
	return fn, nil
}

func (dc *dumpDecoder) fieldDef(raw json.RawMessage) (*FieldDef, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	attrs, err := dc.attrs(n.Attrs)
	if err != nil {
		return nil, err
	}
	f := &FieldDef{Name: n.Name, Attrs: attrs, FieldSpan: sp}
	if len(n.Ty) > 0 {
		if f.Ty, err = dc.ty(n.Ty); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (dc *dumpDecoder) variant(raw json.RawMessage) (*Variant, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	attrs, err := dc.attrs(n.Attrs)
	if err != nil {
		return nil, err
	}
	v := &Variant{Name: n.Name, Attrs: attrs, VariantSpan: sp}
	for _, raw := range n.Fields {
		f, err := dc.fieldDef(raw)
		if err != nil {
			return nil, err
		}
		v.Fields = append(v.Fields, f)
	}
	return v, nil
}

func (dc *dumpDecoder) implItem(raw json.RawMessage) (*ImplItem, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	attrs, err := dc.attrs(n.Attrs)
	if err != nil {
		return nil, err
	}
	ii := &ImplItem{Name: n.Name, Attrs: attrs, ItemSpan: sp}
	if ii.Fn, err = dc.fnDecl(n); err != nil {
		return nil, err
	}
	return ii, nil
}

func (dc *dumpDecoder) traitItem(raw json.RawMessage) (*TraitItem, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	attrs, err := dc.attrs(n.Attrs)
	if err != nil {
		return nil, err
	}
	ti := &TraitItem{Name: n.Name, Attrs: attrs, ItemSpan: sp}
	if ti.Fn, err = dc.fnDecl(n); err != nil {
		return nil, err
	}
	return ti, nil
}

func (dc *dumpDecoder) block(raw json.RawMessage) (*Block, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	if n.Kind != "block" {
		return nil, fmt.Errorf("expected block, got %q", n.Kind)
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	b := &Block{BlockSpan: sp}
	for _, raw := range n.Stmts {
		s, err := dc.stmt(raw)
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	return b, nil
}

func (dc *dumpDecoder) stmt(raw json.RawMessage) (Stmt, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "let":
		attrs, err := dc.attrs(n.Attrs)
		if err != nil {
			return nil, err
		}
		s := &LocalStmt{Attrs: attrs, StmtSpan: sp}
		if s.Pat, err = dc.pat(n.Pat); err != nil {
			return nil, err
		}
		if len(n.Ty) > 0 {
			if s.Ty, err = dc.ty(n.Ty); err != nil {
				return nil, err
			}
		}
		if len(n.Init) > 0 {
			if s.Init, err = dc.expr(n.Init); err != nil {
				return nil, err
			}
		}
		return s, nil
	case "expr":
		x, err := dc.expr(n.X)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x, Semi: n.Semi, StmtSpan: sp}, nil
	case "empty":
		return &EmptyStmt{StmtSpan: sp}, nil
	}
	return nil, fmt.Errorf("unknown statement kind %q", n.Kind)
}

func (dc *dumpDecoder) exprs(raws []json.RawMessage) ([]Expr, error) {
	var out []Expr
	for _, raw := range raws {
		e, err := dc.expr(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (dc *dumpDecoder) expr(raw json.RawMessage) (Expr, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "lit":
		kind, ok := litKinds[n.Lit]
		if !ok {
			return nil, fmt.Errorf("unknown literal kind %q", n.Lit)
		}
		return &LitExpr{Kind: kind, Value: n.Value, ESpan: sp}, nil
	case "path":
		return &PathExpr{Segments: n.Path, ESpan: sp}, nil
	case "unary":
		op, ok := unOps[n.Op]
		if !ok {
			return nil, fmt.Errorf("unknown unary operator %q", n.Op)
		}
		x, err := dc.expr(n.X)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, X: x, ESpan: sp}, nil
	case "binary":
		op, ok := binOps[n.Op]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", n.Op)
		}
		x, err := dc.expr(n.X)
		if err != nil {
			return nil, err
		}
		y, err := dc.expr(n.Y)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: op, X: x, Y: y, ESpan: sp}, nil
	case "call":
		fn, err := dc.expr(n.Fn)
		if err != nil {
			return nil, err
		}
		args, err := dc.exprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &CallExpr{Fn: fn, Args: args, ESpan: sp}, nil
	case "method":
		recv, err := dc.expr(n.Recv)
		if err != nil {
			return nil, err
		}
		args, err := dc.exprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &MethodCallExpr{Recv: recv, Method: n.Method, Args: args, ESpan: sp}, nil
	case "macro":
		args, err := dc.exprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &MacroCallExpr{Path: n.Name, Args: args, ESpan: sp}, nil
	case "if":
		cond, err := dc.expr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := dc.block(n.Then)
		if err != nil {
			return nil, err
		}
		e := &IfExpr{Cond: cond, Then: then, ESpan: sp}
		if len(n.Else) > 0 {
			if e.Else, err = dc.expr(n.Else); err != nil {
				return nil, err
			}
		}
		return e, nil
	case "block":
		b, err := dc.block(raw)
		if err != nil {
			return nil, err
		}
		return &BlockExpr{Block: b, ESpan: sp}, nil
	case "cast":
		x, err := dc.expr(n.X)
		if err != nil {
			return nil, err
		}
		ty, err := dc.ty(n.Ty)
		if err != nil {
			return nil, err
		}
		return &CastExpr{X: x, Ty: ty, ESpan: sp}, nil
	case "assign":
		lhs, err := dc.expr(n.X)
		if err != nil {
			return nil, err
		}
		rhs, err := dc.expr(n.Y)
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Lhs: lhs, Rhs: rhs, ESpan: sp}, nil
	case "array":
		e := &ArrayExpr{RepeatLen: n.Len, ESpan: sp}
		if len(n.Repeat) > 0 {
			if e.Repeat, err = dc.expr(n.Repeat); err != nil {
				return nil, err
			}
			return e, nil
		}
		if e.Elems, err = dc.exprs(n.Elems); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown expression kind %q", n.Kind)
}

func (dc *dumpDecoder) pat(raw json.RawMessage) (Pat, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "ident":
		return &IdentPat{Name: n.Name, Mut: n.Mut, PSpan: sp}, nil
	case "wild":
		return &WildPat{PSpan: sp}, nil
	}
	return nil, fmt.Errorf("unknown pattern kind %q", n.Kind)
}

func (dc *dumpDecoder) ty(raw json.RawMessage) (Ty, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	sp, err := dc.span(n.Span)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "named":
		return &PathTy{Name: n.Name, TSpan: sp}, nil
	case "infer":
		return &InferTy{TSpan: sp}, nil
	case "ref":
		elem, err := dc.ty(n.Elem)
		if err != nil {
			return nil, err
		}
		return &RefTy{Elem: elem, TSpan: sp}, nil
	case "arrayty":
		elem, err := dc.ty(n.Elem)
		if err != nil {
			return nil, err
		}
		return &ArrayTy{Elem: elem, Len: n.Len, TSpan: sp}, nil
	}
	return nil, fmt.Errorf("unknown type kind %q", n.Kind)
}
