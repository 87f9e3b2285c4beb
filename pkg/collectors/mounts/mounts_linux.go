//go:build linux

package mounts

import "github.com/spf13/afero"

// New returns the system mount source.
func New() Source {
	return NewTable(afero.NewOsFs(), "/proc/self/mountinfo", "/proc/mounts")
}
