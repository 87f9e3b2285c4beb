// Package usage queries free-space counters for mounted filesystems.
package usage

import "fmt"

// Snapshot holds block counters for one filesystem.
type Snapshot struct {
	TotalBlocks     uint64 `json:"total_blocks"`
	AvailableBlocks uint64 `json:"available_blocks"`
	BlockSize       uint64 `json:"block_size"`
}

// TotalBytes returns the filesystem size.
func (s Snapshot) TotalBytes() float64 {
	return float64(s.TotalBlocks) * float64(s.BlockSize)
}

// AvailableBytes returns the space available to unprivileged users.
func (s Snapshot) AvailableBytes() float64 {
	return float64(s.AvailableBlocks) * float64(s.BlockSize)
}

// FreePercent returns available blocks as a percentage of total blocks.
func (s Snapshot) FreePercent() float64 {
	if s.TotalBlocks == 0 {
		return 0
	}
	return float64(s.AvailableBlocks) * 100 / float64(s.TotalBlocks)
}

// Querier returns a usage snapshot for a mounted filesystem.
type Querier interface {
	Usage(mountDir, device string) (Snapshot, error)
}

// QuerierFunc adapts a function to Querier.
type QuerierFunc func(mountDir, device string) (Snapshot, error)

// Usage calls f.
func (f QuerierFunc) Usage(mountDir, device string) (Snapshot, error) {
	return f(mountDir, device)
}

// Static serves fixed snapshots keyed by mount dir. Missing mounts fail.
type Static map[string]Snapshot

// Usage looks the mount dir up.
func (s Static) Usage(mountDir, _ string) (Snapshot, error) {
	snap, ok := s[mountDir]
	if !ok {
		return Snapshot{}, fmt.Errorf("no usage for %s", mountDir)
	}
	return snap, nil
}
