package config

import (
	"strconv"

	"github.com/spf13/pflag"

	"github.com/danpilch/checkdisk/pkg/threshold"
)

// opValue is a pflag.Value that records an op on every occurrence, so flags
// take effect in command-line order once ApplyFlags runs.
type opValue struct {
	s     *Settings
	typ   string
	last  string
	parse func(string) (op, error)
}

func (v *opValue) Set(str string) error {
	o, err := v.parse(str)
	if err != nil {
		return err
	}
	v.s.ops = append(v.s.ops, o)
	v.last = str
	return nil
}

func (v *opValue) String() string { return v.last }
func (v *opValue) Type() string   { return v.typ }

func (s *Settings) flag(fs *pflag.FlagSet, name, short, typ, usage string, parse func(string) (op, error)) *pflag.Flag {
	return fs.VarPF(&opValue{s: s, typ: typ, parse: parse}, name, short, usage)
}

func (s *Settings) boolFlag(fs *pflag.FlagSet, name, short, usage string, apply func(*Settings, bool)) *pflag.Flag {
	f := s.flag(fs, name, short, "bool", usage, func(str string) (op, error) {
		b, err := strconv.ParseBool(str)
		if err != nil {
			return nil, err
		}
		return func(s *Settings) error { apply(s, b); return nil }, nil
	})
	f.NoOptDefVal = "true"
	return f
}

// BindFlags registers the check_disk flags on fs.
func (s *Settings) BindFlags(fs *pflag.FlagSet) {
	s.flag(fs, "warning", "w", "limit",
		"Exit with WARNING status if less than INTEGER units or PERCENT% of disk are free",
		func(str string) (op, error) {
			l, err := threshold.ParseLimit(str)
			if err != nil {
				return nil, err
			}
			return func(s *Settings) error { s.Global.SetWarning(l); return nil }, nil
		})
	s.flag(fs, "critical", "c", "limit",
		"Exit with CRITICAL status if less than INTEGER units or PERCENT% of disk are free",
		func(str string) (op, error) {
			l, err := threshold.ParseLimit(str)
			if err != nil {
				return nil, err
			}
			return func(s *Settings) error { s.Global.SetCritical(l); return nil }, nil
		})
	s.boolFlag(fs, "clear", "C", "Clear thresholds", func(s *Settings, b bool) {
		if b {
			s.Global = threshold.Cleared()
		}
	})

	path := func(str string) (op, error) {
		return func(s *Settings) error {
			pair := s.Global
			s.Paths.Add(str, &pair)
			return nil
		}, nil
	}
	s.flag(fs, "path", "p", "path", "Path or partition, checked with the thresholds given before it (may be repeated)", path)
	s.flag(fs, "partition", "", "path", "Same as --path", path)

	s.flag(fs, "exclude_device", "x", "path", "Ignore device or mount point (only works if -p unspecified)",
		func(str string) (op, error) {
			return func(s *Settings) error { s.ExcludeDevices.Add(str, nil); return nil }, nil
		})
	s.flag(fs, "exclude-type", "X", "type", "Ignore all filesystems of indicated type (may be repeated)",
		func(str string) (op, error) {
			return func(s *Settings) error { s.ExcludeTypes.Add(str, nil); return nil }, nil
		})

	s.flag(fs, "units", "u", "unit", "Choose bytes, kB, MB, GB, TB (default: MB)",
		func(str string) (op, error) {
			u, err := threshold.ParseUnit(str)
			if err != nil {
				return nil, err
			}
			return func(s *Settings) error { s.Unit = u; return nil }, nil
		})
	s.boolFlag(fs, "kilobytes", "k", "Same as '--units kB'", func(s *Settings, b bool) {
		if b {
			s.Unit = threshold.Kilobytes
		}
	})
	s.boolFlag(fs, "megabytes", "m", "Same as '--units MB'", func(s *Settings, b bool) {
		if b {
			s.Unit = threshold.Megabytes
		}
	})

	s.boolFlag(fs, "local", "l", "Only check local filesystems", func(s *Settings, b bool) { s.LocalOnly = b })
	s.boolFlag(fs, "all", "A", "Also check dummy (pseudo) filesystems", func(s *Settings, b bool) { s.ShowAll = b })
	s.boolFlag(fs, "errors-only", "e", "Display only devices/mountpoints with errors", func(s *Settings, b bool) { s.ErrorsOnly = b })
	s.boolFlag(fs, "mountpoint", "M", "Display the device name instead of the mount point", func(s *Settings, b bool) { s.DisplayDevice = b })

	s.boolFlag(fs, "verbose", "v", "Show details for command-line debugging (repeat for more)", func(s *Settings, b bool) {
		if b {
			s.Verbosity++
		}
	})
	s.boolFlag(fs, "quiet", "q", "Print less", func(s *Settings, b bool) {
		if b {
			s.Verbosity--
		}
	})

	s.flag(fs, "timeout", "t", "seconds", "Seconds before the check gives up (default 10)",
		func(str string) (op, error) {
			n, err := strconv.Atoi(str)
			if err != nil {
				return nil, err
			}
			return func(s *Settings) error { s.Timeout = seconds(n); return nil }, nil
		})
	s.flag(fs, "format", "", "format", "Output format: nagios, table, json or prometheus",
		func(str string) (op, error) {
			return func(s *Settings) error { s.Format = str; return nil }, nil
		})
}

// ApplyFlags runs the recorded flag ops in command-line order.
func (s *Settings) ApplyFlags() error {
	ops := s.ops
	s.ops = nil
	for _, o := range ops {
		if err := o(s); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeArgs rewrites the historical "-to" spelling of the timeout flag.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-to" {
			a = "-t"
		}
		out[i] = a
	}
	return out
}
