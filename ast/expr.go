// Copyright © 2025 The Ferrule authors

package ast

import "github.com/ferrulelang/ferrule/source"

// Expr is a Fer expression.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a Fer statement.
type Stmt interface {
	Node
	stmtNode()
}

// Pat is a binding pattern.
type Pat interface {
	Node
	patNode()
}

// Ty is a written type.
type Ty interface {
	Node
	tyNode()
}

// UnOp is a unary operator.
type UnOp int

const (
	UnNot UnOp = iota
	UnNeg
	UnDeref
)

func (op UnOp) String() string {
	switch op {
	case UnNot:
		return "!"
	case UnNeg:
		return "-"
	case UnDeref:
		return "*"
	}
	return "?"
}

// BinOp is a binary operator.
type BinOp int

const (
	OpOr BinOp = iota
	OpAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpBitOr
	OpBitXor
	OpBitAnd
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
)

var binOpNames = [...]string{"||", "&&", "==", "!=", "<", "<=", ">", ">=", "|", "^", "&", "<<", ">>", "+", "-", "*", "/", "%"}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

// LitKind discriminates literal expressions.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitBool
	LitChar
)

// LitExpr is a literal.
type LitExpr struct {
	Kind  LitKind
	Value string // the literal as written
	ESpan source.Span
}

// PathExpr is a (possibly qualified) name.
type PathExpr struct {
	Segments []string
	ESpan    source.Span
}

// UnaryExpr is a prefix operator application.
type UnaryExpr struct {
	Op    UnOp
	X     Expr
	ESpan source.Span
}

// BinaryExpr is an infix operator application.
type BinaryExpr struct {
	Op    BinOp
	X, Y  Expr
	ESpan source.Span
}

// CallExpr is a free or path call.
type CallExpr struct {
	Fn    Expr
	Args  []Expr
	ESpan source.Span
}

// MethodCallExpr is a dot-dispatched call.
type MethodCallExpr struct {
	Recv   Expr
	Method string
	Args   []Expr
	ESpan  source.Span
}

// MacroCallExpr is a macro invocation such as assert!(..). Args are the
// comma-level argument expressions after expansion of the token tree.
type MacroCallExpr struct {
	Path  string
	Args  []Expr
	ESpan source.Span
}

// IfExpr is an if/else chain. Else is nil, a *BlockExpr, or a nested
// *IfExpr.
type IfExpr struct {
	Cond  Expr
	Then  *Block
	Else  Expr
	ESpan source.Span
}

// BlockExpr wraps a block in expression position.
type BlockExpr struct {
	Block *Block
	ESpan source.Span
}

// CastExpr is "x as T".
type CastExpr struct {
	X     Expr
	Ty    Ty
	ESpan source.Span
}

// AssignExpr is "lhs = rhs".
type AssignExpr struct {
	Lhs, Rhs Expr
	ESpan    source.Span
}

// ArrayExpr is "[a, b, c]" or the repeat form "[elem; N]".
type ArrayExpr struct {
	Elems     []Expr
	Repeat    Expr  // non-nil for the repeat form
	RepeatLen int64 // evaluated length of the repeat form
	ESpan     source.Span
}

func (e *LitExpr) Span() source.Span        { return e.ESpan }
func (e *PathExpr) Span() source.Span       { return e.ESpan }
func (e *UnaryExpr) Span() source.Span      { return e.ESpan }
func (e *BinaryExpr) Span() source.Span     { return e.ESpan }
func (e *CallExpr) Span() source.Span       { return e.ESpan }
func (e *MethodCallExpr) Span() source.Span { return e.ESpan }
func (e *MacroCallExpr) Span() source.Span  { return e.ESpan }
func (e *IfExpr) Span() source.Span         { return e.ESpan }
func (e *BlockExpr) Span() source.Span      { return e.ESpan }
func (e *CastExpr) Span() source.Span       { return e.ESpan }
func (e *AssignExpr) Span() source.Span     { return e.ESpan }
func (e *ArrayExpr) Span() source.Span      { return e.ESpan }

func (*LitExpr) exprNode()        {}
func (*PathExpr) exprNode()       {}
func (*UnaryExpr) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*CallExpr) exprNode()       {}
func (*MethodCallExpr) exprNode() {}
func (*MacroCallExpr) exprNode()  {}
func (*IfExpr) exprNode()         {}
func (*BlockExpr) exprNode()      {}
func (*CastExpr) exprNode()       {}
func (*AssignExpr) exprNode()     {}
func (*ArrayExpr) exprNode()      {}

// LocalStmt is a let binding: "let pat: ty = init;".
type LocalStmt struct {
	Pat      Pat
	Ty       Ty // nil when the type is elided entirely
	Init     Expr
	Attrs    []Attribute
	StmtSpan source.Span
}

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	X        Expr
	Semi     bool // trailing semicolon present
	StmtSpan source.Span
}

// EmptyStmt is a stray semicolon.
type EmptyStmt struct {
	StmtSpan source.Span
}

func (s *LocalStmt) Span() source.Span { return s.StmtSpan }
func (s *ExprStmt) Span() source.Span  { return s.StmtSpan }
func (s *EmptyStmt) Span() source.Span { return s.StmtSpan }

func (*LocalStmt) stmtNode() {}
func (*ExprStmt) stmtNode()  {}
func (*EmptyStmt) stmtNode() {}

// IdentPat binds a name.
type IdentPat struct {
	Name  string
	Mut   bool
	PSpan source.Span
}

// WildPat is the wildcard pattern "_".
type WildPat struct {
	PSpan source.Span
}

func (p *IdentPat) Span() source.Span { return p.PSpan }
func (p *WildPat) Span() source.Span  { return p.PSpan }

func (*IdentPat) patNode() {}
func (*WildPat) patNode()  {}

// PathTy is a named type.
type PathTy struct {
	Name  string
	TSpan source.Span
}

// InferTy is the inference placeholder "_".
type InferTy struct {
	TSpan source.Span
}

// RefTy is "&T".
type RefTy struct {
	Elem  Ty
	TSpan source.Span
}

// ArrayTy is "[T; N]".
type ArrayTy struct {
	Elem  Ty
	Len   int64
	TSpan source.Span
}

func (t *PathTy) Span() source.Span  { return t.TSpan }
func (t *InferTy) Span() source.Span { return t.TSpan }
func (t *RefTy) Span() source.Span   { return t.TSpan }
func (t *ArrayTy) Span() source.Span { return t.TSpan }

func (*PathTy) tyNode()  {}
func (*InferTy) tyNode() {}
func (*RefTy) tyNode()   {}
func (*ArrayTy) tyNode() {}
