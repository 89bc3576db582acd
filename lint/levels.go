// Copyright © 2025 The Ferrule authors

package lint

import (
	"fmt"
	"strings"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/attr"
	"github.com/ferrulelang/ferrule/source"
)

// Lints the framework itself reports with.
var (
	// UnknownLints fires on attributes naming a lint that does not exist.
	UnknownLints = &Lint{
		Name:     "unknown_lints",
		Doc:      "Warn about level attributes naming unknown lints.",
		Category: CategoryStyle,
		AddedIn:  "0.1.0",
	}

	// RenamedAndRemovedLints fires on attributes using stale lint names.
	RenamedAndRemovedLints = &Lint{
		Name:     "renamed_and_removed_lints",
		Doc:      "Warn about level attributes using renamed or removed lint names.",
		Category: CategoryStyle,
		AddedIn:  "0.1.0",
	}

	// UnfulfilledExpectation fires on #[expect(...)] attributes whose lint
	// never triggered.
	UnfulfilledExpectation = &Lint{
		Name:     "unfulfilled_expectation",
		Doc:      "Warn about #[expect(...)] attributes that did not match any diagnostic.",
		Category: CategoryStyle,
		AddedIn:  "0.1.0",
	}

	// MalformedAttribute fires on tool attributes the engine understands
	// but cannot use, such as an msrv that does not parse as a version.
	MalformedAttribute = &Lint{
		Name:     "malformed_attribute",
		Doc:      "Warn about tool attributes with unusable values.",
		Category: CategoryStyle,
		AddedIn:  "0.1.0",
	}
)

func builtinLints() []*Lint {
	return []*Lint{UnknownLints, RenamedAndRemovedLints, UnfulfilledExpectation, MalformedAttribute}
}

// levelEntry is one lint's level inside a frame, with the expectation owed
// when the level is expect.
type levelEntry struct {
	level    Level
	expectID uint64
}

// levelNotice is a problem found while folding attributes, reported through
// the normal lint machinery so it obeys levels itself.
type levelNotice struct {
	lint *Lint
	span source.Span
	msg  string
}

// levels folds lint level attributes over the tree walk. The innermost
// attribute wins; configuration sits between attributes and the per-lint
// default.
type levels struct {
	reg      *Registry
	baseline map[string]Level
	expect   *expectations
	frames   []map[string]levelEntry

	// noticed dedupes stale-name notices across both phases.
	noticed map[string]bool
	notices []levelNotice
}

func newLevels(reg *Registry, expect *expectations) *levels {
	return &levels{
		reg:      reg,
		baseline: make(map[string]Level),
		expect:   expect,
		noticed:  make(map[string]bool),
	}
}

// configure applies the allow/warn/deny lists from configuration. Unknown
// names produce an unknown_lints notice with no position.
func (lv *levels) configure(allow, warn, deny []string) {
	lv.configureList(allow, LevelAllow)
	lv.configureList(warn, LevelWarn)
	lv.configureList(deny, LevelDeny)
}

func (lv *levels) configureList(names []string, level Level) {
	for _, name := range names {
		res, ok := lv.reg.Lookup(trimTool(name))
		if !ok || res.Lint == nil {
			lv.notice(UnknownLints, source.DummySpan(), name,
				fmt.Sprintf("unknown lint %q in configuration", name))
			continue
		}
		lv.baseline[res.Lint.Name] = level
	}
}

// fold pushes a frame for the node's level attributes. It reports whether a
// frame was pushed; the caller must pop iff it was.
func (lv *levels) fold(attrs []ast.Attribute) bool {
	var frame map[string]levelEntry
	for _, a := range attrs {
		parsed, err := attr.Parse(a.Text)
		if err != nil || parsed.Tool != "" {
			continue
		}
		level, ok := ParseLevel(parsed.Name)
		if !ok {
			continue
		}
		for _, arg := range parsed.Args {
			entry, lint, ok := lv.resolveArg(arg, level, parsed.Reason, a.AtSpan)
			if !ok {
				continue
			}
			if frame == nil {
				frame = make(map[string]levelEntry)
			}
			frame[lint.Name] = entry
		}
	}
	if frame == nil {
		return false
	}
	lv.frames = append(lv.frames, frame)
	return true
}

// pop discards the innermost frame.
func (lv *levels) pop() {
	lv.frames = lv.frames[:len(lv.frames)-1]
}

func (lv *levels) resolveArg(arg string, level Level, reason string, span source.Span) (levelEntry, *Lint, bool) {
	name := trimTool(arg)
	res, ok := lv.reg.Lookup(name)
	switch {
	case !ok:
		lv.notice(UnknownLints, span, name, fmt.Sprintf("unknown lint %q", name))
		return levelEntry{}, nil, false
	case res.Removed != "":
		lv.notice(RenamedAndRemovedLints, span, name,
			fmt.Sprintf("lint %q has been removed: %s", name, res.Removed))
		return levelEntry{}, nil, false
	case res.Renamed != "":
		lv.notice(RenamedAndRemovedLints, span, name,
			fmt.Sprintf("lint %q has been renamed to %q", name, res.Renamed))
	}
	entry := levelEntry{level: level}
	if level == LevelExpect {
		entry.expectID = lv.expect.register(res.Lint.Name, span, reason)
	}
	return entry, res.Lint, true
}

// resolve returns the effective level of a lint at the current tree
// position.
func (lv *levels) resolve(l *Lint) levelEntry {
	for i := len(lv.frames) - 1; i >= 0; i-- {
		if entry, ok := lv.frames[i][l.Name]; ok {
			return entry
		}
	}
	if level, ok := lv.baseline[l.Name]; ok {
		return levelEntry{level: level}
	}
	return levelEntry{level: l.DefaultLevel()}
}

// notice records a stale-name problem once per offending name.
func (lv *levels) notice(lint *Lint, span source.Span, key, msg string) {
	if lv.noticed[key] {
		return
	}
	lv.noticed[key] = true
	lv.notices = append(lv.notices, levelNotice{lint: lint, span: span, msg: msg})
}

// drainNotices hands pending notices to the caller and clears them.
func (lv *levels) drainNotices() []levelNotice {
	out := lv.notices
	lv.notices = nil
	return out
}

// trimTool strips the tool prefix from a namespaced lint name.
func trimTool(name string) string {
	if rest, ok := strings.CutPrefix(name, "ferrule::"); ok {
		return rest
	}
	return name
}
