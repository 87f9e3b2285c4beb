package threshold

import (
	"errors"
	"fmt"
)

var (
	ErrNoThresholds  = errors.New("no thresholds specified")
	ErrPercentRange  = errors.New("critical percent should be less than warning percent and both should be between zero and 100 percent, inclusive")
	ErrAbsoluteOrder = errors.New("critical free space should be less than warning free space and both should be greater than zero")
)

// Validate checks the pair for internal consistency. name identifies the path the
// pair belongs to and may be empty for the global pair.
func (p Pair) Validate(name string) error {
	var err error
	switch {
	case p.IsEmpty():
		err = ErrNoThresholds
	case (p.HasWarnPercent() || p.HasCritPercent()) &&
		(!p.HasWarnPercent() || !p.HasCritPercent() ||
			p.WarnPercent > 100 || p.CritPercent > 100 ||
			p.CritPercent > p.WarnPercent):
		err = fmt.Errorf("%w (crit %.1f%%, warn %.1f%%)", ErrPercentRange, p.CritPercent, p.WarnPercent)
	case (p.WarnFree > 0 || p.CritFree > 0) &&
		(!p.HasWarnFree() || !p.HasCritFree() || p.CritFree > p.WarnFree):
		err = fmt.Errorf("%w (crit %d, warn %d)", ErrAbsoluteOrder, p.CritFree, p.WarnFree)
	}
	if err != nil && name != "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	return err
}
