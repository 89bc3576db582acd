// Copyright © 2025 The Ferrule authors

/*
Package attr parses the raw text carried inside Fer attributes.

	attr   := path ( '(' args ')' | '=' string )?
	path   := ident ('::' ident)*
	args   := arg (',' arg)*
	arg    := path | ident '=' string

Examples of accepted attributes:

	allow(unused_must_use)
	expect(if_not_else, reason = "legacy module")
	ferrule::msrv = "1.45.0"
*/
package attr

import (
	"fmt"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"
)

// Attr is one parsed attribute.
type Attr struct {
	// Tool is the namespace prefix ("ferrule" in ferrule::msrv), empty for
	// bare attributes like allow.
	Tool string

	// Name is the final path segment: "allow", "msrv", "deny", ...
	Name string

	// Args are the parenthesized path arguments, joined with "::".
	Args []string

	// Reason is the value of an optional `reason = "..."` argument.
	Reason string

	// Value is the string payload of the `name = "..."` form.
	Value string
}

// Parse parses the inner text of an attribute (the part between #[ and ]).
func Parse(text string) (*Attr, error) {
	scanner := parsec.NewScanner([]byte(text))
	root, scanner := attrParser()(scanner)
	if root == nil {
		return nil, fmt.Errorf("attr: cannot parse %q", text)
	}
	_, scanner = scanner.SkipWS()
	if !scanner.Endof() {
		return nil, fmt.Errorf("attr: trailing text in %q", text)
	}
	return interpret(flatten(root), text)
}

func attrParser() parsec.Parser {
	ident := parsec.Token(`[A-Za-z_][A-Za-z0-9_]*`, "IDENT")
	pathSep := parsec.Atom("::", "PATHSEP")
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	comma := parsec.Atom(",", "COMMA")
	eq := parsec.Atom("=", "EQ")
	str := parsec.String()

	pathTail := parsec.Kleene(nil, parsec.And(nil, pathSep, ident))
	path := parsec.And(nil, ident, pathTail)
	kvArg := parsec.And(nil, ident, eq, str)
	arg := parsec.OrdChoice(nil, kvArg, path)
	args := parsec.And(nil, openP, parsec.Kleene(nil, arg, comma), closeP)
	value := parsec.And(nil, eq, str)
	suffix := parsec.Maybe(nil, parsec.OrdChoice(nil, args, value))
	return parsec.And(nil, path, suffix)
}

// token is a flattened terminal from the parse tree.
type token struct {
	name  string
	value string
}

// flatten collects terminals left to right, erasing the combinator
// nesting. The grammar has already validated the shape; interpretation
// works on the token stream.
func flatten(node parsec.ParsecNode) []token {
	switch n := node.(type) {
	case *parsec.Terminal:
		return []token{{name: n.Name, value: n.Value}}
	case string:
		return []token{{name: "STRING", value: unquote(n)}}
	case []parsec.ParsecNode:
		var toks []token
		for _, child := range n {
			toks = append(toks, flatten(child)...)
		}
		return toks
	default:
		// MaybeNone and other markers contribute nothing.
		return nil
	}
}

func interpret(toks []token, text string) (*Attr, error) {
	i := 0
	segments, next, err := readPath(toks, i)
	if err != nil {
		return nil, fmt.Errorf("attr: %w in %q", err, text)
	}
	i = next

	a := &Attr{Name: segments[len(segments)-1]}
	if len(segments) > 1 {
		a.Tool = strings.Join(segments[:len(segments)-1], "::")
	}

	if i >= len(toks) {
		return a, nil
	}
	switch toks[i].name {
	case "EQ":
		if i+1 >= len(toks) || toks[i+1].name != "STRING" {
			return nil, fmt.Errorf("attr: expected string value in %q", text)
		}
		a.Value = toks[i+1].value
		return a, nil
	case "OPENP":
		i++
		for i < len(toks) && toks[i].name != "CLOSEP" {
			if toks[i].name == "COMMA" {
				i++
				continue
			}
			if toks[i].name == "IDENT" && i+2 < len(toks) && toks[i+1].name == "EQ" && toks[i+2].name == "STRING" {
				if toks[i].value == "reason" {
					a.Reason = toks[i+2].value
				} else {
					a.Args = append(a.Args, toks[i].value)
				}
				i += 3
				continue
			}
			seg, next, err := readPath(toks, i)
			if err != nil {
				return nil, fmt.Errorf("attr: %w in %q", err, text)
			}
			a.Args = append(a.Args, strings.Join(seg, "::"))
			i = next
		}
		return a, nil
	default:
		return nil, fmt.Errorf("attr: unexpected %s in %q", toks[i].name, text)
	}
}

// readPath consumes ident ('::' ident)* starting at i.
func readPath(toks []token, i int) ([]string, int, error) {
	if i >= len(toks) || toks[i].name != "IDENT" {
		return nil, i, fmt.Errorf("expected identifier")
	}
	segments := []string{toks[i].value}
	i++
	for i+1 < len(toks) && toks[i].name == "PATHSEP" && toks[i+1].name == "IDENT" {
		segments = append(segments, toks[i+1].value)
		i += 2
	}
	return segments, i, nil
}

// unquote strips the surrounding quotes from a string literal, falling back
// to a raw trim when the literal does not unquote cleanly.
func unquote(s string) string {
	if out, err := strconv.Unquote(s); err == nil {
		return out
	}
	return strings.Trim(s, `"`)
}
