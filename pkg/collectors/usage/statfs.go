//go:build !windows

package usage

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Collector reads usage with statfs(2).
type Collector struct{}

// New creates a statfs-backed collector.
func New() *Collector {
	return &Collector{}
}

// Name returns the collector name.
func (c *Collector) Name() string {
	return "Usage"
}

// Usage stats mountDir. The device name is not needed on this platform.
func (c *Collector) Usage(mountDir, _ string) (Snapshot, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(mountDir, &stat); err != nil {
		return Snapshot{}, fmt.Errorf("statfs %s: %w", mountDir, err)
	}

	//nolint:unconvert // field types differ between Linux and the BSDs.
	return Snapshot{
		TotalBlocks:     uint64(stat.Blocks),
		AvailableBlocks: uint64(stat.Bavail),
		BlockSize:       uint64(stat.Bsize),
	}, nil
}
