// Copyright © 2025 The Ferrule authors

// Package lints bundles the checks that ship with the ferrule binary. Each
// check lives in its own file and registers through Register; embedders can
// register their own passes alongside.
package lints

import "github.com/ferrulelang/ferrule/lint"

// Register adds every bundled pass plus the rename and removal tables for
// lint names that changed across releases.
func Register(reg *lint.Registry) {
	reg.RegisterEarly(IfNotElse())
	reg.RegisterEarly(RedundantWildAnnotation())
	reg.RegisterEarly(TooManyArguments())
	reg.RegisterEarly(DisallowedNames())
	reg.RegisterLate(BoolAssertInversion())
	reg.RegisterLate(LargeStackArray())

	reg.Rename("negated_if_else", "if_not_else")
	reg.Rename("inverted_bool_assert", "bool_assert_inversion")
	reg.Remove("assert_bool_literal", "merged into bool_assert_inversion")
}
