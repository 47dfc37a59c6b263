// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package region

import "fmt"

// Rule decides whether a candidate chunk may overwrite the chunk
// already occupying the same slot. It only applies to overlapping
// slots: Merge always adds chunks for slots the base doesn't have.
type Rule uint8

const (
	// NewestWins lets the candidate through only when its timestamp is
	// strictly newer; ties keep the current chunk.
	NewestWins Rule = iota
	// Always lets the candidate overwrite unconditionally.
	Always
	// Never keeps the current chunk unconditionally.
	Never
)

// ParseRule maps the CLI spelling of a rule to its value.
func ParseRule(s string) (Rule, error) {
	switch s {
	case "last-modified":
		return NewestWins, nil
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	}
	return 0, fmt.Errorf("unknown merge rule %q", s)
}

func (r Rule) String() string {
	switch r {
	case NewestWins:
		return "last-modified"
	case Always:
		return "always"
	case Never:
		return "never"
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// Permits reports whether candidate may replace current.
func (r Rule) Permits(current, candidate *Chunk) bool {
	switch r {
	case Always:
		return true
	case Never:
		return false
	default:
		return candidate.Timestamp > current.Timestamp
	}
}
