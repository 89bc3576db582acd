// Copyright © 2025 The Ferrule authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkDump = `{
  "crate": "demo",
  "files": [{"name": "lib.fer", "module": "lib", "content": "fn t() { let foo = 1; }"}],
  "span": {"file": 0, "start": 0, "end": 23},
  "items": [
    {
      "kind": "fn", "name": "t", "span": {"file": 0, "start": 0, "end": 23},
      "body": {
        "kind": "block", "span": {"file": 0, "start": 7, "end": 23},
        "stmts": [
          {
            "kind": "let", "span": {"file": 0, "start": 9, "end": 21},
            "pat": {"kind": "ident", "name": "foo", "span": {"file": 0, "start": 13, "end": 16}},
            "init": {"kind": "lit", "lit": "int", "value": "1", "span": {"file": 0, "start": 19, "end": 20}}
          }
        ]
      }
    }
  ]
}`

func writeCheckFixture(t *testing.T, conf string) (dump string) {
	t.Helper()
	dir := t.TempDir()
	dump = filepath.Join(dir, "demo.json")
	require.NoError(t, os.WriteFile(dump, []byte(checkDump), 0o600))
	if conf != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ferrule.toml"), []byte(conf), 0o600))
	}
	t.Setenv("FERRULE_CONF_DIR", dir)
	return dump
}

func TestRunCheckClean(t *testing.T) {
	dump := writeCheckFixture(t, "")
	assert.Equal(t, 0, runCheck([]string{dump}))
}

func TestRunCheckWarningsExitZero(t *testing.T) {
	dump := writeCheckFixture(t, `disallowed-names = ["foo"]`)
	assert.Equal(t, 0, runCheck([]string{dump}))
}

func TestRunCheckDenyExitOne(t *testing.T) {
	dump := writeCheckFixture(t, `
disallowed-names = ["foo"]
deny = ["disallowed_names"]
`)
	assert.Equal(t, 1, runCheck([]string{dump}))
}

func TestRunCheckBadDump(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	t.Setenv("FERRULE_CONF_DIR", dir)

	assert.Equal(t, 2, runCheck([]string{bad}))
}

func TestRunCheckMissingDump(t *testing.T) {
	t.Setenv("FERRULE_CONF_DIR", t.TempDir())
	assert.Equal(t, 2, runCheck([]string{"no-such-file.json"}))
}
