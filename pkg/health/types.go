// Package health runs a disk-space check pass and folds per-filesystem verdicts.
package health

import (
	"github.com/danpilch/checkdisk/pkg/collectors/mounts"
	"github.com/danpilch/checkdisk/pkg/collectors/usage"
	"github.com/danpilch/checkdisk/pkg/namelist"
	"github.com/danpilch/checkdisk/pkg/state"
	"github.com/danpilch/checkdisk/pkg/threshold"
)

// Result is the evaluation of one filesystem.
type Result struct {
	Record      mounts.Record  `json:"filesystem"`
	Usage       usage.Snapshot `json:"usage"`
	State       state.State    `json:"state"`
	UsedPercent int64          `json:"used_percent"`
	// Free and Total are in display units.
	Free        float64        `json:"free"`
	Total       float64        `json:"total"`
	FreePercent float64        `json:"free_percent"`
	Thresholds  threshold.Pair `json:"thresholds"`
}

// Overall is the outcome of a complete pass.
type Overall struct {
	State    state.State `json:"state"`
	Results  []Result    `json:"results"`
	NotFound []string    `json:"not_found,omitempty"`
}

// Aggregator folds results into a worst-wins verdict. The zero value is ready.
type Aggregator struct {
	state   state.State
	seen    bool
	results []Result
}

// Add folds one result.
func (a *Aggregator) Add(r Result) {
	if !a.seen {
		a.state = r.State
		a.seen = true
	} else {
		a.state = state.Worst(a.state, r.State)
	}
	a.results = append(a.results, r)
}

// State returns the fold so far; UNKNOWN when nothing was added.
func (a *Aggregator) State() state.State {
	if !a.seen {
		return state.Unknown
	}
	return a.state
}

// Finish closes the fold. Any path-selection rule that never matched forces
// CRITICAL and is reported as not found.
func (a *Aggregator) Finish(paths *namelist.List) *Overall {
	o := &Overall{
		State:   a.State(),
		Results: a.results,
	}
	for _, r := range paths.Unmatched() {
		o.NotFound = append(o.NotFound, r.Name)
		o.State = state.Critical
	}
	return o
}
