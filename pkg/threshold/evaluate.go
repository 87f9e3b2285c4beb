package threshold

import "github.com/danpilch/checkdisk/pkg/state"

// UsedPercent returns the truncated percentage of blocks not available to
// unprivileged users. It is negative when available exceeds total.
func UsedPercent(total, available uint64) int64 {
	if total == 0 {
		return -1
	}
	return (int64(total) - int64(available)) * 100 / int64(total)
}

// Evaluate maps used percentage and free space (in display units) to a verdict.
// Critical limits are checked before warning limits, percent before absolute.
func (p Pair) Evaluate(usedPercent int64, free float64) state.State {
	used := float64(usedPercent)
	switch {
	case usedPercent >= 0 && p.HasCritPercent() && used >= 100-p.CritPercent:
		return state.Critical
	case p.HasCritFree() && free <= float64(p.CritFree):
		return state.Critical
	case usedPercent >= 0 && p.HasWarnPercent() && used >= 100-p.WarnPercent:
		return state.Warning
	case p.HasWarnFree() && free <= float64(p.WarnFree):
		return state.Warning
	case usedPercent >= 0:
		return state.OK
	}
	return state.Unknown
}
