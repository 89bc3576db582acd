// Copyright © 2025 The Ferrule authors

package lint

import (
	"fmt"
	"sort"
)

// Registry holds every known lint and the passes that implement them, plus
// the rename and removal tables that keep old attribute spellings working.
type Registry struct {
	lints   map[string]*Lint
	early   []*EarlyPass
	late    []*LatePass
	renames map[string]string // old name -> current name
	removed map[string]string // old name -> reason
}

// NewRegistry returns a registry holding only the framework's own lints.
func NewRegistry() *Registry {
	r := &Registry{
		lints:   make(map[string]*Lint),
		renames: make(map[string]string),
		removed: make(map[string]string),
	}
	r.declare(builtinLints())
	return r
}

// RegisterEarly adds an early pass. Its declared lints become known. Passes
// run in registration order.
func (r *Registry) RegisterEarly(p *EarlyPass) {
	r.early = append(r.early, p)
	r.declare(p.Lints)
}

// RegisterLate adds a late pass. Its declared lints become known.
func (r *Registry) RegisterLate(p *LatePass) {
	r.late = append(r.late, p)
	r.declare(p.Lints)
}

func (r *Registry) declare(lints []*Lint) {
	for _, l := range lints {
		if prev, ok := r.lints[l.Name]; ok && prev != l {
			panic(fmt.Sprintf("lint %q registered twice", l.Name))
		}
		r.lints[l.Name] = l
	}
}

// Rename records that old is now spelled current. Attributes using the old
// name keep working and produce a one-time redirect notice.
func (r *Registry) Rename(old, current string) {
	r.renames[old] = current
}

// Remove records that name no longer exists. Attributes using it produce a
// notice carrying the reason and otherwise do nothing.
func (r *Registry) Remove(name, reason string) {
	r.removed[name] = reason
}

// Resolution is the outcome of looking a lint name up, including the notice
// text owed to the user when the name is stale.
type Resolution struct {
	Lint    *Lint
	Renamed string // non-empty: the current name this redirected to
	Removed string // non-empty: the removal reason
}

// Lookup resolves a lint name, following at most one rename hop.
func (r *Registry) Lookup(name string) (Resolution, bool) {
	if l, ok := r.lints[name]; ok {
		return Resolution{Lint: l}, true
	}
	if current, ok := r.renames[name]; ok {
		if l, ok := r.lints[current]; ok {
			return Resolution{Lint: l, Renamed: current}, true
		}
	}
	if reason, ok := r.removed[name]; ok {
		return Resolution{Removed: reason}, true
	}
	return Resolution{}, false
}

// Lints returns every registered lint sorted by name.
func (r *Registry) Lints() []*Lint {
	out := make([]*Lint, 0, len(r.lints))
	for _, l := range r.lints {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// EarlyPasses returns the early passes in registration order.
func (r *Registry) EarlyPasses() []*EarlyPass { return r.early }

// LatePasses returns the late passes in registration order.
func (r *Registry) LatePasses() []*LatePass { return r.late }
