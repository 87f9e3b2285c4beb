package threshold

import "fmt"

// Unit is a display unit for free and total space. Absolute thresholds are
// expressed in the same unit.
type Unit struct {
	Name       string
	Multiplier uint64
}

var (
	Bytes     = Unit{"B", 1}
	Kilobytes = Unit{"kB", 1 << 10}
	Megabytes = Unit{"MB", 1 << 20}
	Gigabytes = Unit{"GB", 1 << 30}
	Terabytes = Unit{"TB", 1 << 40}
)

// DefaultUnit is used when no unit is configured.
var DefaultUnit = Megabytes

// ParseUnit accepts bytes, kB, MB, GB or TB.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "bytes", "B":
		return Bytes, nil
	case "kB":
		return Kilobytes, nil
	case "MB":
		return Megabytes, nil
	case "GB":
		return Gigabytes, nil
	case "TB":
		return Terabytes, nil
	}
	return Unit{}, fmt.Errorf("unit type %s not known", s)
}

// Scale converts a byte count to the unit.
func (u Unit) Scale(bytes float64) float64 {
	return bytes / float64(u.Multiplier)
}
