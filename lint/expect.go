// Copyright © 2025 The Ferrule authors

package lint

import (
	"fmt"
	"sort"

	"github.com/ferrulelang/ferrule/source"
)

// Expectation is one #[expect(...)] attribute: the lint is silenced, and
// the attribute itself is wrong if the lint never fires under it.
type Expectation struct {
	ID     uint64
	Lint   string
	Span   source.Span // the attribute
	Reason string
}

func (e Expectation) String() string {
	if e.Reason == "" {
		return fmt.Sprintf("expected lint %s did not fire", e.Lint)
	}
	return fmt.Sprintf("expected lint %s did not fire (%s)", e.Lint, e.Reason)
}

// expectations tracks every expectation seen across both lint phases.
// The early and late walks fold the same attributes, so registration is
// keyed on lint and attribute span: both phases hand out the same ID, and
// a fulfillment in either counts.
type expectations struct {
	all       []Expectation
	byKey     map[expectKey]uint64
	fulfilled map[uint64]bool
}

type expectKey struct {
	lint string
	span source.Span
}

func newExpectations() *expectations {
	return &expectations{
		byKey:     make(map[expectKey]uint64),
		fulfilled: make(map[uint64]bool),
	}
}

func (x *expectations) register(lint string, span source.Span, reason string) uint64 {
	key := expectKey{lint: lint, span: span}
	if id, ok := x.byKey[key]; ok {
		return id
	}
	id := uint64(len(x.all)) + 1
	x.all = append(x.all, Expectation{ID: id, Lint: lint, Span: span, Reason: reason})
	x.byKey[key] = id
	return id
}

func (x *expectations) fulfill(id uint64) {
	x.fulfilled[id] = true
}

// unfulfilled returns the expectations no diagnostic ever matched, in
// source order.
func (x *expectations) unfulfilled() []Expectation {
	var out []Expectation
	for _, e := range x.all {
		if !x.fulfilled[e.ID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Span.File != out[j].Span.File {
			return out[i].Span.File < out[j].Span.File
		}
		return out[i].Span.Start < out[j].Span.Start
	})
	return out
}
