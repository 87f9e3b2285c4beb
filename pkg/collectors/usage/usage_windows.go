//go:build windows

package usage

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Collector reads usage with GetDiskFreeSpaceExW.
type Collector struct{}

// New creates a collector.
func New() *Collector {
	return &Collector{}
}

// Name returns the collector name.
func (c *Collector) Name() string {
	return "Usage"
}

// Usage reports byte counts as one-byte blocks.
func (c *Collector) Usage(mountDir, _ string) (Snapshot, error) {
	p, err := windows.UTF16PtrFromString(mountDir)
	if err != nil {
		return Snapshot{}, err
	}
	var avail, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(p, &avail, &total, &free); err != nil {
		return Snapshot{}, fmt.Errorf("GetDiskFreeSpaceEx %s: %w", mountDir, err)
	}
	return Snapshot{TotalBlocks: total, AvailableBlocks: avail, BlockSize: 1}, nil
}
