// Copyright © 2025 The Ferrule authors

package snippet

import (
	"fmt"
	"strings"
)

// Precedence classes of Fer expressions, loosest first. A composed snippet
// is parenthesized iff the child's precedence is looser than the slot it is
// placed into.
type Precedence int

const (
	PrecClosure Precedence = iota
	PrecAssign
	PrecRange
	PrecOr
	PrecAnd
	PrecCompare
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecCast
	PrecPrefix
	PrecPostfix
	PrecSuffix // atomic: literals, paths, parenthesized or bracketed forms
)

// Sugg is a fragment of replacement text paired with the minimum binding
// precedence of the expression it denotes.
type Sugg struct {
	text string
	prec Precedence
}

// New builds a Sugg from text that parses as an expression of the given
// precedence class.
func New(text string, prec Precedence) Sugg {
	return Sugg{text: text, prec: prec}
}

// Atomic builds a Sugg that never needs parentheses.
func Atomic(text string) Sugg {
	return Sugg{text: text, prec: PrecSuffix}
}

// String returns the bare text.
func (s Sugg) String() string {
	return s.text
}

// Paren returns the text wrapped in parentheses; the result is atomic.
func (s Sugg) Paren() Sugg {
	return Atomic("(" + s.text + ")")
}

// InSlot returns the text as it must appear in a slot of the given
// precedence, parenthesizing iff the fragment binds looser.
func (s Sugg) InSlot(slot Precedence) string {
	if s.prec < slot {
		return "(" + s.text + ")"
	}
	return s.text
}

// Not returns the logical negation of the fragment. Negating a negation
// strips the operator instead of stacking a second one; the remainder was
// the operand of "!" and so binds at least as tightly as a prefix
// expression.
func (s Sugg) Not() Sugg {
	if s.prec >= PrecPrefix {
		if rest, ok := strings.CutPrefix(s.text, "!"); ok {
			return New(rest, PrecPrefix)
		}
	}
	return New("!"+s.InSlot(PrecPrefix), PrecPrefix)
}

// Neg returns the arithmetic negation of the fragment.
func (s Sugg) Neg() Sugg {
	return New("-"+s.InSlot(PrecPrefix), PrecPrefix)
}

// Cast returns the fragment cast to ty, as in "x as T".
func (s Sugg) Cast(ty string) Sugg {
	return New(fmt.Sprintf("%s as %s", s.InSlot(PrecCast), ty), PrecCast)
}

// BinOp composes a binary expression at the given precedence class. Both
// operands are parenthesized as needed for that slot.
func BinOp(lhs Sugg, op string, rhs Sugg, prec Precedence) Sugg {
	// The right operand of a same-precedence chain still needs wrapping
	// for non-associative reads, so it is placed one slot tighter.
	return New(fmt.Sprintf("%s %s %s", lhs.InSlot(prec), op, rhs.InSlot(prec+1)), prec)
}

// Method composes a method call on the fragment; the receiver slot is
// postfix, so anything looser gets wrapped.
func (s Sugg) Method(name string, args ...Sugg) Sugg {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return New(fmt.Sprintf("%s.%s(%s)", s.InSlot(PrecPostfix), name, strings.Join(parts, ", ")), PrecPostfix)
}

// Assign composes "lhs = rhs".
func Assign(lhs, rhs Sugg) Sugg {
	return New(fmt.Sprintf("%s = %s", lhs.InSlot(PrecAssign+1), rhs.InSlot(PrecAssign)), PrecAssign)
}
