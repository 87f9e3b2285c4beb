//go:build darwin

package mounts

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// fsstat lists mounts through getfsstat(2).
type fsstat struct{}

// New returns the system mount source.
func New() Source {
	return fsstat{}
}

func (fsstat) Mounts(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := unix.Getfsstat(nil, unix.MNT_NOWAIT)
	if err != nil {
		return nil, fmt.Errorf("getfsstat: %w", err)
	}
	buf := make([]unix.Statfs_t, n)
	n, err = unix.Getfsstat(buf, unix.MNT_NOWAIT)
	if err != nil {
		return nil, fmt.Errorf("getfsstat: %w", err)
	}

	records := make([]Record, 0, n)
	for _, s := range buf[:n] {
		r := newRecord(
			unix.ByteSliceToString(s.Mntfromname[:]),
			unix.ByteSliceToString(s.Mntonname[:]),
			unix.ByteSliceToString(s.Fstypename[:]),
		)
		if s.Flags&unix.MNT_LOCAL == 0 {
			r.Remote = true
		}
		records = append(records, r)
	}
	return records, nil
}
