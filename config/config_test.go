// Copyright © 2025 The Ferrule authors

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ferrule.toml"), []byte(content), 0o600))
	return dir
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, warnings, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	dir := writeConf(t, `
msrv = "1.45.0"
too-many-arguments = 4
disallowed-names = ["foo", "baz"]
deny = ["if_not_else"]
avoid-breaking-exported-api = false
`)
	cfg, warnings, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "1.45.0", cfg.MSRV)
	assert.Equal(t, 4, cfg.TooManyArguments)
	assert.Equal(t, []string{"foo", "baz"}, cfg.DisallowedNames)
	assert.Equal(t, []string{"if_not_else"}, cfg.Deny)
	assert.False(t, cfg.AvoidBreakingExportedAPI)
	assert.Equal(t, 512*1024, cfg.LargeStackArray, "unset keys keep defaults")
}

func TestLoadUnknownKeyWarns(t *testing.T) {
	dir := writeConf(t, `max-cyclomatic-complexity = 10`)
	cfg, warnings, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "max-cyclomatic-complexity", warnings[0].Key)
	assert.Equal(t, Default(), cfg, "analysis proceeds with defaults")
}

func TestLoadMalformedValuesDefault(t *testing.T) {
	dir := writeConf(t, `
msrv = "not a version"
too-many-arguments = -3
`)
	cfg, warnings, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
	assert.Equal(t, "", cfg.MSRV)
	assert.Equal(t, Default().TooManyArguments, cfg.TooManyArguments)
}

func TestConfDirEnvOverride(t *testing.T) {
	override := writeConf(t, `too-many-arguments = 2`)
	t.Setenv(ConfDirEnv, override)

	cfg, _, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.TooManyArguments)
}
