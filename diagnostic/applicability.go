// Copyright © 2025 The Ferrule authors

package diagnostic

import (
	"encoding/json"
	"fmt"
)

// Applicability labels how confidently a suggestion may be applied by
// automatic tooling. Values are ordered by increasing caution; combining
// two always keeps the more cautious one, so over the construction of a
// suggestion the label can only be raised.
type Applicability int

const (
	// MachineApplicable suggestions may be applied without review.
	MachineApplicable Applicability = iota
	// MaybeIncorrect suggestions are likely correct but review is advised.
	MaybeIncorrect
	// HasPlaceholders suggestions contain markers ("...") the user must
	// fill in before the result compiles.
	HasPlaceholders
	// Unspecified suggestions must never be applied automatically.
	Unspecified
)

func (a Applicability) String() string {
	switch a {
	case MachineApplicable:
		return "machine-applicable"
	case MaybeIncorrect:
		return "maybe-incorrect"
	case HasPlaceholders:
		return "has-placeholders"
	case Unspecified:
		return "unspecified"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the applicability as a JSON string.
func (a Applicability) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON deserializes an applicability from a JSON string.
func (a *Applicability) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "machine-applicable":
		*a = MachineApplicable
	case "maybe-incorrect":
		*a = MaybeIncorrect
	case "has-placeholders":
		*a = HasPlaceholders
	case "unspecified":
		*a = Unspecified
	default:
		return fmt.Errorf("unknown applicability: %q", str)
	}
	return nil
}

// MaxApplicability combines two applicabilities conservatively.
func MaxApplicability(a, b Applicability) Applicability {
	if b > a {
		return b
	}
	return a
}

// Raise makes *a at least as cautious as floor. It never lowers *a.
func Raise(a *Applicability, floor Applicability) {
	if a != nil && floor > *a {
		*a = floor
	}
}
