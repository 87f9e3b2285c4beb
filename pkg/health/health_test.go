package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpilch/checkdisk/pkg/collectors/mounts"
	"github.com/danpilch/checkdisk/pkg/collectors/usage"
	"github.com/danpilch/checkdisk/pkg/filter"
	"github.com/danpilch/checkdisk/pkg/namelist"
	"github.com/danpilch/checkdisk/pkg/state"
	"github.com/danpilch/checkdisk/pkg/threshold"
)

type staticSource []mounts.Record

func (s staticSource) Mounts(context.Context) ([]mounts.Record, error) {
	return s, nil
}

type failingSource struct{}

func (failingSource) Mounts(context.Context) ([]mounts.Record, error) {
	return nil, errors.New("no mount table")
}

var table = staticSource{
	{Device: "/dev/sda1", MountDir: "/", FSType: "ext4"},
	{Device: "/dev/sda2", MountDir: "/var", FSType: "ext4"},
	{Device: "/dev/sdb1", MountDir: "/data", FSType: "xfs"},
	{Device: "proc", MountDir: "/proc", FSType: "proc", Dummy: true},
	{Device: "nas:/export", MountDir: "/mnt/nas", FSType: "nfs4", Remote: true},
}

// 1 MiB blocks keep unit math readable.
func snap(total, avail uint64) usage.Snapshot {
	return usage.Snapshot{TotalBlocks: total, AvailableBlocks: avail, BlockSize: 1 << 20}
}

var disks = usage.Static{
	"/":        snap(100, 50), // 50% used
	"/var":     snap(100, 8),  // 92% used
	"/data":    snap(100, 4),  // 96% used
	"/proc":    snap(0, 0),
	"/mnt/nas": snap(1000, 900),
}

func percent(warn, crit float64) threshold.Pair {
	p := threshold.Cleared()
	p.WarnPercent, p.CritPercent = warn, crit
	return p
}

func TestRunWorstWins(t *testing.T) {
	c := NewChecker(Options{Global: percent(10, 5)}, nil)
	o, err := c.Run(context.Background(), table, disks)
	require.NoError(t, err)

	assert.Equal(t, state.Critical, o.State)
	require.Len(t, o.Results, 4)
	got := map[string]state.State{}
	for _, r := range o.Results {
		got[r.Record.MountDir] = r.State
	}
	assert.Equal(t, map[string]state.State{
		"/":        state.OK,
		"/var":     state.Warning,
		"/data":    state.Critical,
		"/mnt/nas": state.OK,
	}, got)
	assert.Empty(t, o.NotFound)
}

func TestRunSkipsFailedQueries(t *testing.T) {
	q := usage.Static{"/": snap(100, 50)}
	c := NewChecker(Options{Global: percent(10, 5)}, nil)
	o, err := c.Run(context.Background(), table, q)
	require.NoError(t, err)

	assert.Equal(t, state.OK, o.State)
	assert.Len(t, o.Results, 1)
}

func TestRunNothingEvaluatedIsUnknown(t *testing.T) {
	c := NewChecker(Options{Global: percent(10, 5)}, nil)
	o, err := c.Run(context.Background(), table, usage.Static{})
	require.NoError(t, err)
	assert.Equal(t, state.Unknown, o.State)
}

func TestRunUnmatchedSelectionForcesCritical(t *testing.T) {
	sel := namelist.New("/", "/srv")
	c := NewChecker(Options{
		Filter: filter.Config{PathSelect: sel},
		Global: percent(10, 5),
	}, nil)

	o, err := c.Run(context.Background(), table, disks)
	require.NoError(t, err)
	require.Len(t, o.Results, 1)
	assert.Equal(t, state.OK, o.Results[0].State)
	assert.Equal(t, state.Critical, o.State)
	assert.Equal(t, []string{"/srv"}, o.NotFound)
}

func TestRunIsRepeatable(t *testing.T) {
	sel := namelist.New("/var")
	c := NewChecker(Options{Filter: filter.Config{PathSelect: sel}, Global: percent(10, 5)}, nil)

	for i := 0; i < 2; i++ {
		o, err := c.Run(context.Background(), table, disks)
		require.NoError(t, err)
		assert.Equal(t, state.Warning, o.State)
		assert.Empty(t, o.NotFound)
	}

	o, err := c.Run(context.Background(), staticSource{}, disks)
	require.NoError(t, err)
	assert.Equal(t, []string{"/var"}, o.NotFound)
}

func TestRunPerPathThresholds(t *testing.T) {
	loose := percent(2, 1)
	sel := &namelist.List{}
	sel.Add("/data", &loose)
	sel.Add("/var", nil)

	c := NewChecker(Options{Filter: filter.Config{PathSelect: sel}, Global: percent(10, 5)}, nil)
	o, err := c.Run(context.Background(), table, disks)
	require.NoError(t, err)

	require.Len(t, o.Results, 2)
	assert.Equal(t, "/var", o.Results[0].Record.MountDir)
	assert.Equal(t, state.Warning, o.Results[0].State)
	assert.Equal(t, percent(10, 5), o.Results[0].Thresholds)

	assert.Equal(t, "/data", o.Results[1].Record.MountDir)
	assert.Equal(t, state.OK, o.Results[1].State)
	assert.Equal(t, loose, o.Results[1].Thresholds)
	assert.Equal(t, state.Warning, o.State)
}

func TestRunMountFailure(t *testing.T) {
	c := NewChecker(Options{Global: percent(10, 5)}, nil)
	_, err := c.Run(context.Background(), failingSource{}, disks)
	assert.ErrorContains(t, err, "enumerate mounts")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	q := usage.QuerierFunc(func(mountDir, device string) (usage.Snapshot, error) {
		calls++
		cancel()
		return disks.Usage(mountDir, device)
	})

	c := NewChecker(Options{Global: percent(10, 5)}, nil)
	o, err := c.Run(ctx, table, q)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, o)
	assert.Equal(t, 1, calls)
}

func TestEvaluateUnits(t *testing.T) {
	abs := threshold.Cleared()
	abs.WarnFree, abs.CritFree = 60, 40

	c := NewChecker(Options{Global: abs, Unit: threshold.Megabytes}, nil)
	rec := mounts.Record{Device: "/dev/sda1", MountDir: "/"}

	r, ok := c.Evaluate(rec, snap(100, 50), nil)
	require.True(t, ok)
	assert.Equal(t, 50.0, r.Free)
	assert.Equal(t, 100.0, r.Total)
	assert.Equal(t, 50.0, r.FreePercent)
	assert.Equal(t, int64(50), r.UsedPercent)
	assert.Equal(t, state.Warning, r.State)

	r, _ = c.Evaluate(rec, snap(100, 40), nil)
	assert.Equal(t, state.Critical, r.State)
}

func TestEvaluateSkipsEmptyAndNone(t *testing.T) {
	c := NewChecker(Options{Global: percent(10, 5)}, nil)

	_, ok := c.Evaluate(mounts.Record{MountDir: "/"}, snap(0, 0), nil)
	assert.False(t, ok)

	_, ok = c.Evaluate(mounts.Record{MountDir: "none"}, snap(100, 50), nil)
	assert.False(t, ok)
}

func TestEvaluateAvailableAboveTotal(t *testing.T) {
	c := NewChecker(Options{Global: percent(10, 5)}, nil)
	r, ok := c.Evaluate(mounts.Record{MountDir: "/"}, snap(100, 150), nil)
	require.True(t, ok)
	assert.Equal(t, state.Unknown, r.State)
}

func TestAggregatorFold(t *testing.T) {
	orders := [][]state.State{
		{state.OK, state.Critical, state.Warning},
		{state.Warning, state.OK, state.Critical},
		{state.Critical, state.Warning, state.OK},
	}
	for _, order := range orders {
		var a Aggregator
		for _, s := range order {
			a.Add(Result{State: s})
		}
		assert.Equal(t, state.Critical, a.State())
	}

	var a Aggregator
	assert.Equal(t, state.Unknown, a.State())
	a.Add(Result{State: state.Unknown})
	a.Add(Result{State: state.OK})
	assert.Equal(t, state.Unknown, a.State(), "a later OK never clears UNKNOWN")
}
