// Copyright © 2025 The Ferrule authors

// Package ast models the Fer syntax tree that the host compiler hands to
// the engine after parsing, before name resolution. Early lint passes walk
// this tree; late passes walk the hir view layered on top of it.
//
// The engine never builds these trees itself: they arrive from the host
// through the driver's crate-dump decoder or are constructed directly by
// test fixtures.
package ast

import (
	"github.com/ferrulelang/ferrule/source"
)

// Node is anything with a source span.
type Node interface {
	Span() source.Span
}

// Attribute is one raw #[...] attribute as written. The engine parses the
// inner text on demand (see the attr package).
type Attribute struct {
	// Text is the inner text between #[ and ].
	Text   string
	AtSpan source.Span
}

func (a Attribute) Span() source.Span { return a.AtSpan }

// Crate is the root of one analysed crate.
type Crate struct {
	Name      string
	Attrs     []Attribute // inner #![...] attributes
	Items     []*Item
	CrateSpan source.Span
}

func (c *Crate) Span() source.Span { return c.CrateSpan }

// ItemKind discriminates top-level items.
type ItemKind int

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
	ItemImpl
	ItemTrait
	ItemMod
	ItemConst
	ItemUse
)

var itemKindNames = [...]string{"fn", "struct", "enum", "impl", "trait", "mod", "const", "use"}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "unknown"
}

// Item is one item. Exactly the fields matching Kind are populated.
type Item struct {
	Kind     ItemKind
	Name     string
	Public   bool
	Attrs    []Attribute
	ItemSpan source.Span

	Fn         *FnDecl      // ItemFn
	Fields     []*FieldDef  // ItemStruct
	Variants   []*Variant   // ItemEnum
	ImplItems  []*ImplItem  // ItemImpl
	TraitItems []*TraitItem // ItemTrait
	Items      []*Item      // ItemMod
	Init       Expr         // ItemConst
}

func (i *Item) Span() source.Span { return i.ItemSpan }

// FnDecl is a function signature plus optional body.
type FnDecl struct {
	Params []*Param
	Ret    Ty // nil for unit return
	Where  []*WherePredicate
	Body   *Block // nil for trait method declarations
	Abi    string // "" for the default ABI
}

// Param is one function parameter.
type Param struct {
	Name      string
	Ty        Ty
	ParamSpan source.Span
}

func (p *Param) Span() source.Span { return p.ParamSpan }

// FieldDef is one struct or enum-variant field.
type FieldDef struct {
	Name      string
	Ty        Ty
	Attrs     []Attribute
	FieldSpan source.Span
}

func (f *FieldDef) Span() source.Span { return f.FieldSpan }

// Variant is one enum variant.
type Variant struct {
	Name        string
	Fields      []*FieldDef
	Attrs       []Attribute
	VariantSpan source.Span
}

func (v *Variant) Span() source.Span { return v.VariantSpan }

// ImplItem is one item inside an impl block.
type ImplItem struct {
	Name     string
	Fn       *FnDecl
	Attrs    []Attribute
	ItemSpan source.Span
}

func (i *ImplItem) Span() source.Span { return i.ItemSpan }

// TraitItem is one item inside a trait definition.
type TraitItem struct {
	Name     string
	Fn       *FnDecl
	Attrs    []Attribute
	ItemSpan source.Span
}

func (i *TraitItem) Span() source.Span { return i.ItemSpan }

// WherePredicate is one predicate of a where clause, kept as written.
type WherePredicate struct {
	Text     string
	PredSpan source.Span
}

func (w *WherePredicate) Span() source.Span { return w.PredSpan }

// Block is a brace-delimited sequence of statements.
type Block struct {
	Stmts     []Stmt
	BlockSpan source.Span
}

func (b *Block) Span() source.Span { return b.BlockSpan }
