// Copyright © 2025 The Ferrule authors

// Package config loads the project-level ferrule.toml that tunes lint
// behaviour: per-lint thresholds, identifier allow/deny lists, global lint
// levels, and the default MSRV. Configuration is read once at startup and
// immutable afterwards.
//
// A malformed value never aborts analysis: the key falls back to its
// default and a Warning is returned for the driver to print once.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	version "github.com/hashicorp/go-version"
	"github.com/spf13/viper"
)

// ConfDirEnv overrides the directory searched for ferrule.toml.
const ConfDirEnv = "FERRULE_CONF_DIR"

// FileName is the base name of the configuration file.
const FileName = "ferrule"

// Config is the immutable engine configuration.
type Config struct {
	// DisallowedNames are identifier names the disallowed-names lint
	// rejects (e.g. foo, baz, quux).
	DisallowedNames []string

	// TooManyArguments is the maximum allowed function parameter count.
	TooManyArguments int

	// LargeStackArray is the maximum allowed stack array size in bytes.
	LargeStackArray int

	// FileLineCount is the maximum allowed line count per file.
	FileLineCount int

	// AllowedDotfiles are dotfile names exempted from file-name lints.
	AllowedDotfiles []string

	// AvoidBreakingExportedAPI suppresses suggestions that would change
	// exported signatures.
	AvoidBreakingExportedAPI bool

	// MSRV is the project-wide minimum supported Fer version ("" = none).
	MSRV string

	// Allow, Warn, and Deny globally adjust lint levels by name, between
	// attribute overrides and lint defaults.
	Allow []string
	Warn  []string
	Deny  []string
}

// Warning is a non-fatal configuration problem reported once at startup.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	if w.Key == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Key, w.Message)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TooManyArguments:         7,
		LargeStackArray:          512 * 1024,
		FileLineCount:            0, // disabled
		AvoidBreakingExportedAPI: true,
	}
}

var knownKeys = map[string]bool{
	"disallowed-names":            true,
	"too-many-arguments":          true,
	"large-stack-array":           true,
	"file-line-count":             true,
	"allowed-dotfiles":            true,
	"avoid-breaking-exported-api": true,
	"msrv":                        true,
	"allow":                       true,
	"warn":                        true,
	"deny":                        true,
}

// Load reads ferrule.toml from dir, honouring the FERRULE_CONF_DIR
// override. A missing file is not an error: the defaults are returned.
func Load(dir string) (*Config, []Warning, error) {
	if env := os.Getenv(ConfDirEnv); env != "" {
		dir = env
	}
	return loadFile(filepath.Join(dir, FileName+".toml"))
}

func loadFile(path string) (*Config, []Warning, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil, nil
		}
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	var warnings []Warning
	for _, key := range v.AllKeys() {
		if !knownKeys[key] {
			warnings = append(warnings, Warning{Key: key, Message: "unknown configuration key"})
		}
	}

	cfg.DisallowedNames = v.GetStringSlice("disallowed-names")
	cfg.AllowedDotfiles = v.GetStringSlice("allowed-dotfiles")
	cfg.Allow = v.GetStringSlice("allow")
	cfg.Warn = v.GetStringSlice("warn")
	cfg.Deny = v.GetStringSlice("deny")

	if v.IsSet("avoid-breaking-exported-api") {
		cfg.AvoidBreakingExportedAPI = v.GetBool("avoid-breaking-exported-api")
	}

	readThreshold(v, "too-many-arguments", &cfg.TooManyArguments, &warnings)
	readThreshold(v, "large-stack-array", &cfg.LargeStackArray, &warnings)
	readThreshold(v, "file-line-count", &cfg.FileLineCount, &warnings)

	if raw := v.GetString("msrv"); raw != "" {
		if _, err := version.NewVersion(raw); err != nil {
			warnings = append(warnings, Warning{Key: "msrv", Message: fmt.Sprintf("unparsable version %q, ignoring", raw)})
		} else {
			cfg.MSRV = raw
		}
	}

	return cfg, warnings, nil
}

// readThreshold copies a non-negative integer key, warning and keeping the
// default when the value is negative.
func readThreshold(v *viper.Viper, key string, dst *int, warnings *[]Warning) {
	if !v.IsSet(key) {
		return
	}
	n := v.GetInt(key)
	if n < 0 {
		*warnings = append(*warnings, Warning{Key: key, Message: fmt.Sprintf("negative threshold %d, using default %d", n, *dst)})
		return
	}
	*dst = n
}
