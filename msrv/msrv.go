// Copyright © 2025 The Ferrule authors

// Package msrv gates suggestions on the project's minimum supported Fer
// version. A lint may still diagnose a problem on an old toolchain floor;
// it suppresses (or downgrades) the suggested fix when the fix relies on a
// feature stabilized later than the floor.
package msrv

import (
	"fmt"

	version "github.com/hashicorp/go-version"
)

// Stack tracks the effective MSRV through nested #[ferrule::msrv = "X.Y.Z"]
// scopes. The zero value has no floor: every feature is considered
// available, matching projects that declare no MSRV.
type Stack struct {
	stack []*version.Version
}

// NewStack returns a stack with an optional project-wide default floor.
// An empty defaultVersion leaves the stack floorless.
func NewStack(defaultVersion string) (*Stack, error) {
	s := &Stack{}
	if defaultVersion == "" {
		return s, nil
	}
	v, err := version.NewVersion(defaultVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid msrv %q: %w", defaultVersion, err)
	}
	s.stack = append(s.stack, v)
	return s, nil
}

// Enter pushes the MSRV declared on a scope. Invalid versions are ignored
// so a malformed attribute cannot poison the walk; the caller reports the
// attribute separately. Returns whether a push happened, so the caller
// knows to Exit.
func (s *Stack) Enter(raw string) bool {
	v, err := version.NewVersion(raw)
	if err != nil {
		return false
	}
	s.stack = append(s.stack, v)
	return true
}

// Exit pops the innermost scope. Popping an empty stack is a no-op.
func (s *Stack) Exit() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Current returns the effective MSRV, or nil when no floor is declared.
func (s *Stack) Current() *version.Version {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Meets reports whether a suggestion relying on feature compiles at the
// effective MSRV: the feature's stabilization version must not exceed the
// floor. Unknown features never meet a declared floor.
func (s *Stack) Meets(f Feature) bool {
	cur := s.Current()
	if cur == nil {
		return true
	}
	stable, ok := stabilizations[f]
	if !ok {
		return false
	}
	return stable.LessThanOrEqual(cur)
}
