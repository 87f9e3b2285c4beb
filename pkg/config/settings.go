// Package config assembles check settings from a YAML file and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/danpilch/checkdisk/pkg/filter"
	"github.com/danpilch/checkdisk/pkg/health"
	"github.com/danpilch/checkdisk/pkg/namelist"
	"github.com/danpilch/checkdisk/pkg/threshold"
)

// DefaultTimeout bounds a whole run.
const DefaultTimeout = 10 * time.Second

// Settings is the fully resolved configuration of one run.
type Settings struct {
	// Global is the threshold pair in effect; -p captures a copy of it.
	Global threshold.Pair
	Unit   threshold.Unit

	Paths          *namelist.List
	Devices        *namelist.List
	ExcludeTypes   *namelist.List
	ExcludeDevices *namelist.List

	LocalOnly     bool
	ShowAll       bool
	ErrorsOnly    bool
	DisplayDevice bool
	Verbosity     int

	Timeout time.Duration
	Format  string

	ops []op
}

// op is a deferred settings change recorded while flags are parsed.
type op func(*Settings) error

// Default returns the settings used before any file or flag is applied.
func Default() *Settings {
	return &Settings{
		Global:         threshold.Cleared(),
		Unit:           threshold.DefaultUnit,
		Paths:          &namelist.List{},
		Devices:        &namelist.List{},
		ExcludeTypes:   namelist.New("iso9660"),
		ExcludeDevices: &namelist.List{},
		Timeout:        DefaultTimeout,
		Format:         "nagios",
	}
}

// ApplyPositional handles the legacy "percent used" positional arguments: the
// first sets the warning and the second the critical free-percent floor, each
// only when that floor is still unset. Anything else is ignored.
func (s *Settings) ApplyPositional(args []string) {
	i := 0
	if !s.Global.HasWarnPercent() && i < len(args) {
		if v, ok := threshold.ParseUsedPercent(args[i]); ok {
			s.Global.WarnPercent = v
			i++
		}
	}
	if !s.Global.HasCritPercent() && i < len(args) {
		if v, ok := threshold.ParseUsedPercent(args[i]); ok {
			s.Global.CritPercent = v
		}
	}
}

// globalInUse reports whether any filesystem can fall back to the global pair.
func (s *Settings) globalInUse() bool {
	if !s.Paths.Configured() {
		return true
	}
	for _, r := range s.Paths.Rules() {
		if r.Thresholds == nil {
			return true
		}
	}
	return false
}

// Validate checks every threshold pair that can be applied and reports all
// problems together.
func (s *Settings) Validate() error {
	var result error
	if s.globalInUse() {
		if err := s.Global.Validate(""); err != nil {
			result = multierror.Append(result, err)
		}
	}
	for _, r := range s.Paths.Rules() {
		if r.Thresholds == nil {
			continue
		}
		if err := r.Thresholds.Validate(r.Name); err != nil {
			result = multierror.Append(result, err)
		}
	}
	switch s.Format {
	case "nagios", "table", "json", "prometheus":
	default:
		result = multierror.Append(result, fmt.Errorf("unknown output format %q", s.Format))
	}
	if s.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be positive, got %s", s.Timeout))
	}
	return result
}

// HealthOptions converts the settings to checker options.
func (s *Settings) HealthOptions() health.Options {
	return health.Options{
		Filter: filter.Config{
			PathSelect:    s.Paths,
			DeviceSelect:  s.Devices,
			TypeExclude:   s.ExcludeTypes,
			DeviceExclude: s.ExcludeDevices,
			LocalOnly:     s.LocalOnly,
			ShowAll:       s.ShowAll,
		},
		Global: s.Global,
		Unit:   s.Unit,
	}
}
