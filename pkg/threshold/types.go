// Package threshold parses, validates, resolves and evaluates free-space thresholds.
package threshold

import "fmt"

// Unset marks a threshold field that was never given.
const Unset = -1

// Pair holds the warning and critical free-space floors applied to one filesystem.
// Absolute floors are in display units, percentage floors are percent of the
// filesystem that must stay free. Negative values mean unset.
type Pair struct {
	WarnFree    int64   `json:"warn_free" yaml:"warn_free"`
	CritFree    int64   `json:"crit_free" yaml:"crit_free"`
	WarnPercent float64 `json:"warn_percent" yaml:"warn_percent"`
	CritPercent float64 `json:"crit_percent" yaml:"crit_percent"`
}

// Cleared returns a pair with every field unset.
func Cleared() Pair {
	return Pair{
		WarnFree:    Unset,
		CritFree:    Unset,
		WarnPercent: Unset,
		CritPercent: Unset,
	}
}

func (p Pair) HasWarnFree() bool    { return p.WarnFree >= 0 }
func (p Pair) HasCritFree() bool    { return p.CritFree >= 0 }
func (p Pair) HasWarnPercent() bool { return p.WarnPercent >= 0 }
func (p Pair) HasCritPercent() bool { return p.CritPercent >= 0 }

// IsEmpty reports whether no field is set.
func (p Pair) IsEmpty() bool {
	return !p.HasWarnFree() && !p.HasCritFree() && !p.HasWarnPercent() && !p.HasCritPercent()
}

// SetWarning applies a parsed warning limit, keeping fields the limit does not carry.
func (p *Pair) SetWarning(l Limit) {
	if l.HasFree {
		p.WarnFree = l.Free
	}
	if l.HasPercent {
		p.WarnPercent = l.Percent
	}
}

// SetCritical applies a parsed critical limit, keeping fields the limit does not carry.
func (p *Pair) SetCritical(l Limit) {
	if l.HasFree {
		p.CritFree = l.Free
	}
	if l.HasPercent {
		p.CritPercent = l.Percent
	}
}

// String renders the pair the way detail lines print it.
func (p Pair) String() string {
	return fmt.Sprintf("warn:%d crit:%d warn%%:%.0f%% crit%%:%.0f%%",
		p.WarnFree, p.CritFree, p.WarnPercent, p.CritPercent)
}

// Resolve returns the per-path override when there is one, else the global pair.
// An override replaces the global pair as a whole.
func Resolve(override *Pair, global Pair) Pair {
	if override != nil {
		return *override
	}
	return global
}
