// Package state provides the plugin verdict shared by every check component.
package state

import (
	"fmt"
	"strings"
)

// State is a check verdict. Its ordinal is also the process exit code.
type State int

const (
	OK State = iota
	Warning
	Critical
	Unknown
)

var names = [...]string{"OK", "WARNING", "CRITICAL", "UNKNOWN"}

// String returns the upper-case keyword printed in plugin output.
func (s State) String() string {
	if s < OK || s > Unknown {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return names[s]
}

// ExitCode returns the process exit status for the verdict.
func (s State) ExitCode() int {
	return int(s)
}

// MarshalText encodes the verdict as its keyword.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts a keyword in any case.
func (s *State) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = p
	return nil
}

// Parse converts a keyword to a State.
func Parse(name string) (State, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return State(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown state %q", name)
}

// Worst folds two verdicts by ordinal. UNKNOWN outranks CRITICAL here.
func Worst(a, b State) State {
	if b > a {
		return b
	}
	return a
}
