// Command check_disk reports free space on mounted filesystems as a
// monitoring-plugin verdict.
package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/danpilch/checkdisk/pkg/collectors/mounts"
	"github.com/danpilch/checkdisk/pkg/collectors/usage"
)

func main() {
	os.Exit(execute(os.Args[1:], env{
		fs:      afero.NewOsFs(),
		source:  mounts.New(),
		querier: usage.New(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}))
}
