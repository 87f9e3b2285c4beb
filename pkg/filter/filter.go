// Package filter decides which mounted filesystems a check run looks at.
package filter

import (
	"github.com/danpilch/checkdisk/pkg/collectors/mounts"
	"github.com/danpilch/checkdisk/pkg/namelist"
)

// Reason explains a filter decision.
type Reason string

const (
	Selected        Reason = "selected"
	NotSelected     Reason = "not selected"
	RemoteExcluded  Reason = "remote"
	DummyExcluded   Reason = "dummy"
	TypeExcluded    Reason = "type excluded"
	DeviceExcluded  Reason = "device excluded"
	DefaultIncluded Reason = "included"
)

// Config holds the selection and exclusion settings. Nil lists are empty.
type Config struct {
	PathSelect    *namelist.List
	DeviceSelect  *namelist.List
	TypeExclude   *namelist.List
	DeviceExclude *namelist.List
	LocalOnly     bool
	ShowAll       bool
}

// Decision is the outcome for one filesystem.
type Decision struct {
	Include bool
	Reason  Reason
	// Rule is the path-selection rule that selected the filesystem, if any.
	Rule *namelist.Rule
}

// Include applies the rules in fixed order; the first that applies decides.
// Lookups mark the matching rules as found.
func (c *Config) Include(r mounts.Record) Decision {
	if c.PathSelect.Configured() {
		if rule, ok := c.PathSelect.Lookup(r.MountDir); ok {
			return Decision{Include: true, Reason: Selected, Rule: rule}
		}
		if rule, ok := c.PathSelect.Lookup(r.Device); ok {
			return Decision{Include: true, Reason: Selected, Rule: rule}
		}
	}

	switch {
	case c.PathSelect.Configured() || c.DeviceSelect.Configured():
		return Decision{Reason: NotSelected}
	case r.Remote && c.LocalOnly:
		return Decision{Reason: RemoteExcluded}
	case r.Dummy && !c.ShowAll:
		return Decision{Reason: DummyExcluded}
	}

	if _, ok := c.TypeExclude.Lookup(r.FSType); ok {
		return Decision{Reason: TypeExcluded}
	}
	if _, ok := c.DeviceExclude.Lookup(r.Device); ok {
		return Decision{Reason: DeviceExcluded}
	}
	if _, ok := c.DeviceExclude.Lookup(r.MountDir); ok {
		return Decision{Reason: DeviceExcluded}
	}
	return Decision{Include: true, Reason: DefaultIncluded}
}
