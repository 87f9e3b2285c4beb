// Package debug provides timing and raw-value instrumentation for check passes.
package debug

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/checkdisk/pkg/collectors/mounts"
	"github.com/danpilch/checkdisk/pkg/collectors/usage"
)

var (
	debugTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	debugHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	debugDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Timing records the duration of one collector call.
type Timing struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Recorder accumulates timings. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	timings []Timing
}

func (r *Recorder) record(name string, start time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timings = append(r.timings, Timing{Name: name, Duration: time.Since(start), Err: err})
}

// Timings returns a copy of everything recorded so far.
func (r *Recorder) Timings() []Timing {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Timing(nil), r.timings...)
}

// label names a timed call after the collector when it has a name.
func label(collector any, fallback string) string {
	if n, ok := collector.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fallback
}

// TimedSource wraps a mounts.Source to record enumeration duration.
type TimedSource struct {
	inner    mounts.Source
	recorder *Recorder
}

// NewTimedSource wraps a mount source with timing instrumentation.
func NewTimedSource(s mounts.Source, r *Recorder) *TimedSource {
	return &TimedSource{inner: s, recorder: r}
}

// Mounts runs the wrapped source and records duration.
func (t *TimedSource) Mounts(ctx context.Context) ([]mounts.Record, error) {
	start := time.Now()
	recs, err := t.inner.Mounts(ctx)
	t.recorder.record(label(t.inner, "mount table"), start, err)
	return recs, err
}

// TimedQuerier wraps a usage.Querier to record per-filesystem query duration.
type TimedQuerier struct {
	inner    usage.Querier
	recorder *Recorder
}

// NewTimedQuerier wraps a querier with timing instrumentation.
func NewTimedQuerier(q usage.Querier, r *Recorder) *TimedQuerier {
	return &TimedQuerier{inner: q, recorder: r}
}

// Usage runs the wrapped querier and records duration under the mount
// directory, prefixed by the collector name when it has one.
func (t *TimedQuerier) Usage(mountDir, device string) (usage.Snapshot, error) {
	start := time.Now()
	snap, err := t.inner.Usage(mountDir, device)
	name := mountDir
	if prefix := label(t.inner, ""); prefix != "" {
		name = prefix + " " + mountDir
	}
	t.recorder.record(name, start, err)
	return snap, err
}

// TimingReport prints a styled timing summary.
func TimingReport(w io.Writer, timings []Timing) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render("Query Timing Report"))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("═", 50)))
	fmt.Fprintf(w, "  %s  %s\n",
		debugHeader.Render("TARGET                        "),
		debugHeader.Render("DURATION    "))
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 50)))

	var total time.Duration
	for _, t := range timings {
		line := fmt.Sprintf("  %-30s %v", t.Name, t.Duration)
		if t.Err != nil {
			line += " " + debugDim.Render("("+t.Err.Error()+")")
		}
		fmt.Fprintln(w, line)
		total += t.Duration
	}
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 50)))
	fmt.Fprintf(w, "  %-30s %v\n",
		lipgloss.NewStyle().Bold(true).Render("TOTAL"), total)
}
