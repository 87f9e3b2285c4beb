package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/danpilch/checkdisk/pkg/threshold"
)

// File is the YAML configuration document. Every field is optional.
type File struct {
	Warning        string      `yaml:"warning"`
	Critical       string      `yaml:"critical"`
	Units          string      `yaml:"units"`
	Local          *bool       `yaml:"local"`
	All            *bool       `yaml:"all"`
	ErrorsOnly     *bool       `yaml:"errors_only"`
	DisplayDevice  *bool       `yaml:"display_device"`
	Timeout        int         `yaml:"timeout"`
	Format         string      `yaml:"format"`
	Paths          []PathEntry `yaml:"paths"`
	ExcludeTypes   []string    `yaml:"exclude_types"`
	ExcludeDevices []string    `yaml:"exclude_devices"`
}

// PathEntry selects one path or partition. Without thresholds it falls back
// to the global pair.
type PathEntry struct {
	Name     string `yaml:"name"`
	Warning  string `yaml:"warning"`
	Critical string `yaml:"critical"`
}

// Load reads a YAML file from fs.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	return &f, nil
}

// Apply merges the file into s. Parse problems are collected and returned together.
func (f *File) Apply(s *Settings) error {
	var result error

	if err := applyLimit(f.Warning, s.Global.SetWarning); err != nil {
		result = multierror.Append(result, fmt.Errorf("warning: %w", err))
	}
	if err := applyLimit(f.Critical, s.Global.SetCritical); err != nil {
		result = multierror.Append(result, fmt.Errorf("critical: %w", err))
	}
	if f.Units != "" {
		u, err := threshold.ParseUnit(f.Units)
		if err != nil {
			result = multierror.Append(result, err)
		} else {
			s.Unit = u
		}
	}

	setBool(&s.LocalOnly, f.Local)
	setBool(&s.ShowAll, f.All)
	setBool(&s.ErrorsOnly, f.ErrorsOnly)
	setBool(&s.DisplayDevice, f.DisplayDevice)

	if f.Timeout != 0 {
		s.Timeout = seconds(f.Timeout)
	}
	if f.Format != "" {
		s.Format = f.Format
	}

	for i, p := range f.Paths {
		if p.Name == "" {
			result = multierror.Append(result, fmt.Errorf("paths[%d]: missing name", i))
			continue
		}
		if p.Warning == "" && p.Critical == "" {
			s.Paths.Add(p.Name, nil)
			continue
		}
		pair := threshold.Cleared()
		if err := applyLimit(p.Warning, pair.SetWarning); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: warning: %w", p.Name, err))
		}
		if err := applyLimit(p.Critical, pair.SetCritical); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: critical: %w", p.Name, err))
		}
		s.Paths.Add(p.Name, &pair)
	}
	for _, t := range f.ExcludeTypes {
		s.ExcludeTypes.Add(t, nil)
	}
	for _, d := range f.ExcludeDevices {
		s.ExcludeDevices.Add(d, nil)
	}
	return result
}

func applyLimit(s string, set func(threshold.Limit)) error {
	if s == "" {
		return nil
	}
	l, err := threshold.ParseLimit(s)
	if err != nil {
		return err
	}
	set(l)
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
