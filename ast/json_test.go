// Copyright © 2025 The Ferrule authors

package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrulelang/ferrule/source"
)

const fnDump = `{
  "crate": "demo",
  "files": [
    {"name": "src/main.fer", "module": "main", "content": "fn main() {\n    if !ready { stop() } else { go_on() }\n}\n"}
  ],
  "span": {"file": 0, "start": 0, "end": 53},
  "items": [
    {
      "kind": "fn", "name": "main", "span": {"file": 0, "start": 0, "end": 53},
      "attrs": [{"text": "allow(if_not_else)", "span": {"file": 0, "start": 0, "end": 0}}],
      "body": {
        "kind": "block", "span": {"file": 0, "start": 10, "end": 53},
        "stmts": [
          {
            "kind": "expr", "span": {"file": 0, "start": 16, "end": 54},
            "x": {
              "kind": "if", "span": {"file": 0, "start": 16, "end": 54},
              "cond": {
                "kind": "unary", "op": "!", "span": {"file": 0, "start": 19, "end": 25},
                "x": {"kind": "path", "path": ["ready"], "span": {"file": 0, "start": 20, "end": 25}}
              },
              "then": {
                "kind": "block", "span": {"file": 0, "start": 26, "end": 36},
                "stmts": [{
                  "kind": "expr", "span": {"file": 0, "start": 28, "end": 34},
                  "x": {
                    "kind": "call", "span": {"file": 0, "start": 28, "end": 34},
                    "fn": {"kind": "path", "path": ["stop"], "span": {"file": 0, "start": 28, "end": 32}}
                  }
                }]
              },
              "else": {
                "kind": "block", "span": {"file": 0, "start": 42, "end": 54},
                "stmts": [{
                  "kind": "expr", "span": {"file": 0, "start": 44, "end": 51},
                  "x": {
                    "kind": "call", "span": {"file": 0, "start": 44, "end": 51},
                    "fn": {"kind": "path", "path": ["go_on"], "span": {"file": 0, "start": 44, "end": 49}}
                  }
                }]
              }
            }
          }
        ]
      }
    }
  ]
}`

func TestDecodeDump(t *testing.T) {
	sm := source.NewSourceMap()
	crate, err := DecodeDump(strings.NewReader(fnDump), sm)
	require.NoError(t, err)

	assert.Equal(t, "demo", crate.Name)
	require.Len(t, crate.Items, 1)

	item := crate.Items[0]
	assert.Equal(t, ItemFn, item.Kind)
	assert.Equal(t, "main", item.Name)
	require.Len(t, item.Attrs, 1)
	assert.Equal(t, "allow(if_not_else)", item.Attrs[0].Text)

	require.NotNil(t, item.Fn)
	require.NotNil(t, item.Fn.Body)
	require.Len(t, item.Fn.Body.Stmts, 1)

	es, ok := item.Fn.Body.Stmts[0].(*ExprStmt)
	require.True(t, ok)
	ifExpr, ok := es.X.(*IfExpr)
	require.True(t, ok)

	cond, ok := ifExpr.Cond.(*UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, UnNot, cond.Op)

	text, ok := sm.SpanText(cond.Span())
	require.True(t, ok)
	assert.Equal(t, "!ready", text)
}

func TestDecodeDumpExpansions(t *testing.T) {
	const src = `{
  "crate": "demo",
  "files": [{"name": "lib.fer", "module": "lib", "content": "m!(); rest"}],
  "span": {"file": 0, "start": 0, "end": 10},
  "expansions": [
    {"call_site": {"file": 0, "start": 0, "end": 5}, "macro": "m!", "external": false,
     "produced": {"file": 0, "start": 0, "end": 5}}
  ],
  "items": [
    {"kind": "const", "name": "X", "span": {"file": 0, "start": 0, "end": 5, "ctxt": 1},
     "init": {"kind": "lit", "lit": "int", "value": "1", "span": {"file": 0, "start": 0, "end": 5, "ctxt": 1}}}
  ]
}`
	sm := source.NewSourceMap()
	crate, err := DecodeDump(strings.NewReader(src), sm)
	require.NoError(t, err)

	item := crate.Items[0]
	assert.True(t, source.FromExpansion(item.Span()))

	exp, ok := sm.Expansion(item.Span().Ctxt)
	require.True(t, ok)
	assert.Equal(t, "m!", exp.Macro)
	assert.False(t, exp.External)
}

func TestDecodeDumpErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not json", "nope"},
		{"bad file index", `{"crate":"c","files":[],"span":{"file":3,"start":0,"end":0},"items":[]}`},
		{"bad ctxt index", `{"crate":"c","files":[{"name":"a","module":"a","content":""}],"span":{"file":0,"start":0,"end":0,"ctxt":9},"items":[]}`},
		{"unknown item kind", `{"crate":"c","files":[{"name":"a","module":"a","content":""}],"span":{"file":0,"start":0,"end":0},"items":[{"kind":"widget","span":{"file":0,"start":0,"end":0}}]}`},
		{"expansion call site in a later context", `{"crate":"c","files":[{"name":"a","module":"a","content":"xx"}],"span":{"file":0,"start":0,"end":2},"expansions":[{"call_site":{"file":0,"start":0,"end":1,"ctxt":1},"macro":"m!","external":false,"produced":{"file":0,"start":0,"end":1}}],"items":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDump(strings.NewReader(tt.src), source.NewSourceMap())
			assert.Error(t, err)
		})
	}
}
