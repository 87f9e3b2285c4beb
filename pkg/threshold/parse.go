package threshold

import (
	"fmt"
	"strconv"
	"strings"
)

// Limit is one parsed -w or -c argument.
type Limit struct {
	Free       int64
	Percent    float64
	HasFree    bool
	HasPercent bool
}

// ParseLimit accepts "INTEGER", "PERCENT%" or "INTEGER,PERCENT%" ("INTEGER:PERCENT%").
func ParseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Limit{}, fmt.Errorf("empty threshold")
	}

	if isNonNegInt(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Limit{}, fmt.Errorf("threshold %q: %w", s, err)
		}
		return Limit{Free: n, HasFree: true}, nil
	}

	if !strings.HasSuffix(s, "%") {
		return Limit{}, fmt.Errorf("threshold %q must be integer or percentage", s)
	}
	body := strings.TrimSuffix(s, "%")

	if i := strings.IndexAny(body, ",:"); i >= 0 {
		n, err := strconv.ParseInt(strings.TrimSpace(body[:i]), 10, 64)
		if err != nil {
			return Limit{}, fmt.Errorf("threshold %q: bad absolute part: %w", s, err)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(body[i+1:]), 64)
		if err != nil {
			return Limit{}, fmt.Errorf("threshold %q: bad percent part: %w", s, err)
		}
		return Limit{Free: n, Percent: pct, HasFree: true, HasPercent: true}, nil
	}

	pct, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil {
		return Limit{}, fmt.Errorf("threshold %q: %w", s, err)
	}
	return Limit{Percent: pct, HasPercent: true}, nil
}

// ParseUsedPercent converts a legacy positional "percent used" argument into a
// free-percent floor. ok is false when s is not a non-negative integer.
func ParseUsedPercent(s string) (float64, bool) {
	if !isNonNegInt(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return 100.0 - v, true
}

func isNonNegInt(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
