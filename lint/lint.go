// Copyright © 2025 The Ferrule authors

// Package lint is the pass framework of the Ferrule linter.
//
// The framework is modeled after go vet: each check is an independent pass
// that receives the syntax tree and reports diagnostics through a Context.
// Early passes run on the freshly parsed tree; late passes run on the
// resolved view and may query types. The framework handles walking, lint
// level folding from attributes and configuration, expectation tracking,
// MSRV scoping, and isolating a panicking pass from the rest of the run.
package lint

import (
	"encoding/json"
	"fmt"
)

// Level is the effective reporting level of a lint at some point in the
// tree.
type Level int

const (
	// LevelAllow silences the lint entirely.
	LevelAllow Level = iota
	// LevelExpect silences the lint and demands that it fire.
	LevelExpect
	// LevelWarn reports the lint as a warning.
	LevelWarn
	// LevelDeny reports the lint as an error.
	LevelDeny
)

var levelNames = [...]string{"allow", "expect", "warn", "deny"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel maps an attribute or configuration keyword to a Level.
func ParseLevel(s string) (Level, bool) {
	for i, name := range levelNames {
		if s == name {
			return Level(i), true
		}
	}
	return 0, false
}

// Category groups lints by intent and fixes their default level.
type Category int

const (
	// CategoryCorrectness lints find code that is outright wrong.
	CategoryCorrectness Category = iota
	// CategoryStyle lints nudge toward idiomatic spelling.
	CategoryStyle
	// CategoryComplexity lints find code that does something simple in a
	// complicated way.
	CategoryComplexity
	// CategoryPerf lints find needlessly slow code.
	CategoryPerf
	// CategoryPedantic lints are stricter than most projects want.
	CategoryPedantic
	// CategoryRestriction lints ban constructs some projects disallow.
	CategoryRestriction
	// CategoryNursery lints are still being stabilised.
	CategoryNursery
)

var categoryNames = [...]string{
	"correctness", "style", "complexity", "perf", "pedantic", "restriction", "nursery",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// MarshalJSON serialises the category as its name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// DefaultLevel returns the level lints of this category start at before
// configuration and attributes adjust it.
func (c Category) DefaultLevel() Level {
	switch c {
	case CategoryCorrectness:
		return LevelDeny
	case CategoryStyle, CategoryComplexity, CategoryPerf:
		return LevelWarn
	default:
		return LevelAllow
	}
}

// Lint is the static declaration of one check.
type Lint struct {
	// Name is the snake_case identifier used in attributes and
	// configuration (e.g. "if_not_else").
	Name string

	// Doc is a human-readable description. The first line is a short
	// summary; the rest explains why the pattern is worth flagging.
	Doc string

	// Category fixes the default level.
	Category Category

	// AddedIn is the engine release that introduced the lint.
	AddedIn string
}

// DefaultLevel returns the lint's level before any adjustment.
func (l *Lint) DefaultLevel() Level {
	return l.Category.DefaultLevel()
}

func (l *Lint) String() string {
	return fmt.Sprintf("%s (%s)", l.Name, l.Category)
}
