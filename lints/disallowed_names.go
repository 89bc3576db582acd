// Copyright © 2025 The Ferrule authors

package lints

import (
	"fmt"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/lint"
)

var disallowedNames = &lint.Lint{
	Name: "disallowed_names",
	Doc: "Check for bindings using names from the disallowed-names " +
		"configuration list.\n\nProjects use this to keep placeholder " +
		"names like foo and quux out of committed code.",
	Category: lint.CategoryStyle,
	AddedIn:  "0.1.0",
}

// DisallowedNames flags local bindings and parameters whose name appears in
// the configured list. Names introduced by external macros are not the
// project's code and are skipped.
func DisallowedNames() *lint.EarlyPass {
	return &lint.EarlyPass{
		Name:  "disallowed-names",
		Lints: []*lint.Lint{disallowedNames},
		CheckLocal: func(cx *lint.Context, s *ast.LocalStmt) {
			pat, ok := s.Pat.(*ast.IdentPat)
			if !ok {
				return
			}
			checkName(cx, pat.Name, pat)
		},
		CheckParam: func(cx *lint.Context, p *ast.Param) {
			checkName(cx, p.Name, p)
		},
	}
}

func checkName(cx *lint.Context, name string, node ast.Node) {
	if cx.Sources().InExternalMacro(node.Span()) {
		return
	}
	for _, banned := range cx.Cfg().DisallowedNames {
		if name == banned {
			cx.SpanLint(disallowedNames, node.Span(),
				fmt.Sprintf("use of a disallowed name %q", name))
			return
		}
	}
}
