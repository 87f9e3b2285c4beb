package mounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// Table reads the mount list from kernel mount table files. Paths are tried in
// order and the first readable one wins.
type Table struct {
	fs    afero.Fs
	paths []string
}

// NewTable creates a table source over fs.
func NewTable(fs afero.Fs, paths ...string) *Table {
	return &Table{fs: fs, paths: paths}
}

// Name returns the collector name.
func (t *Table) Name() string {
	return "Mounts"
}

// Mounts reads the first available mount table.
func (t *Table) Mounts(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var errs []error
	for _, p := range t.paths {
		records, err := ReadTable(t.fs, p)
		if err == nil {
			return records, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", p, err))
	}
	if len(errs) == 0 {
		return nil, errors.New("no mount table configured")
	}
	return nil, fmt.Errorf("cannot read mount table: %w", errors.Join(errs...))
}
