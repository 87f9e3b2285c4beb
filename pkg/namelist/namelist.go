// Package namelist provides ordered name rules used to select and exclude filesystems.
package namelist

import (
	"github.com/samber/lo"

	"github.com/danpilch/checkdisk/pkg/threshold"
)

// Rule is one entry of a selection or exclusion list.
type Rule struct {
	Name string
	// Thresholds overrides the global pair for filesystems selected by this rule.
	Thresholds *threshold.Pair
	Matched    bool
}

// List is an ordered set of rules. The zero value is an empty list.
type List struct {
	rules []*Rule
}

// New creates a list holding one threshold-less rule per name.
func New(names ...string) *List {
	l := &List{}
	for _, n := range names {
		l.Add(n, nil)
	}
	return l
}

// Add appends a rule. A non-nil pair is copied into the rule.
func (l *List) Add(name string, pair *threshold.Pair) *Rule {
	r := &Rule{Name: name}
	if pair != nil {
		p := *pair
		r.Thresholds = &p
	}
	l.rules = append(l.rules, r)
	return r
}

// Lookup returns the first rule named exactly name and marks it matched.
// A nil list never matches.
func (l *List) Lookup(name string) (*Rule, bool) {
	if l == nil {
		return nil, false
	}
	for _, r := range l.rules {
		if r.Name == name {
			r.Matched = true
			return r, true
		}
	}
	return nil, false
}

// Len returns the number of rules; a nil list has none.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.rules)
}

// Configured reports whether the list has any rule.
func (l *List) Configured() bool {
	return l.Len() > 0
}

// Rules returns the rules in insertion order.
func (l *List) Rules() []*Rule {
	if l == nil {
		return nil
	}
	return l.rules
}

// Names returns rule names in insertion order.
func (l *List) Names() []string {
	return lo.Map(l.Rules(), func(r *Rule, _ int) string { return r.Name })
}

// Unmatched returns the rules no lookup has matched, in insertion order.
func (l *List) Unmatched() []*Rule {
	return lo.Filter(l.Rules(), func(r *Rule, _ int) bool { return !r.Matched })
}

// Reset clears every matched flag.
func (l *List) Reset() {
	for _, r := range l.Rules() {
		r.Matched = false
	}
}
