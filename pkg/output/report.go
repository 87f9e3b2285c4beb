// Package output renders check results in plugin, table, JSON and Prometheus formats.
package output

import (
	"fmt"
	"strings"

	"github.com/danpilch/checkdisk/pkg/health"
	"github.com/danpilch/checkdisk/pkg/state"
	"github.com/danpilch/checkdisk/pkg/threshold"
)

// Display controls which filesystems are shown and how they are named.
type Display struct {
	Unit          threshold.Unit
	ErrorsOnly    bool
	DisplayDevice bool
	Verbosity     int
}

// Report is the rendered plugin output.
type Report struct {
	State state.State
	// Summary holds the bracketed per-filesystem facts following the state keyword.
	Summary string
	Details []string
}

// Line returns the single plugin output line.
func (r Report) Line() string {
	return fmt.Sprintf("DISK %s%s", r.State, r.Summary)
}

// Visible reports whether a result is shown at all. Hidden results still
// count towards the overall state.
func (d Display) Visible(r health.Result) bool {
	return !(r.State == state.OK && d.ErrorsOnly && d.Verbosity <= 0)
}

// Name returns the label used for a filesystem in the summary.
func (d Display) Name(r health.Result) string {
	if d.DisplayDevice {
		return r.Record.Device
	}
	return r.Record.MountDir
}

// Build renders the overall result.
func Build(o *health.Overall, d Display) Report {
	var summary strings.Builder
	var details []string

	for _, r := range o.Results {
		if !d.Visible(r) {
			continue
		}
		if r.State != state.OK || d.Verbosity >= 0 {
			fmt.Fprintf(&summary, " [%.0f %s (%2.0f%%) free on %s]",
				r.Free, d.Unit.Name, r.FreePercent, d.Name(r))
		}
		details = append(details, fmt.Sprintf("%.0f of %.0f %s (%2.0f%%) free on %s (type %s mounted on %s) %s",
			r.Free, r.Total, d.Unit.Name, r.FreePercent,
			r.Record.Device, r.Record.FSType, r.Record.MountDir, r.Thresholds))
	}

	if d.Verbosity > 2 {
		for _, line := range details {
			summary.WriteString("\n")
			summary.WriteString(line)
		}
	}

	for _, name := range o.NotFound {
		fmt.Fprintf(&summary, " [%s not found]", name)
	}

	return Report{
		State:   o.State,
		Summary: summary.String(),
		Details: details,
	}
}
