// Package mounts enumerates mounted filesystems.
package mounts

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Record describes one mounted filesystem.
type Record struct {
	Device   string `json:"device"`
	MountDir string `json:"mount_dir"`
	FSType   string `json:"fs_type"`
	Remote   bool   `json:"remote"`
	Dummy    bool   `json:"dummy"`
}

// Source enumerates the current mount table. Every call re-reads it.
type Source interface {
	Mounts(ctx context.Context) ([]Record, error)
}

// Pseudo filesystems with no backing storage.
var dummyTypes = map[string]bool{
	"autofs":      true,
	"binfmt_misc": true,
	"bpf":         true,
	"cgroup":      true,
	"cgroup2":     true,
	"configfs":    true,
	"debugfs":     true,
	"devfs":       true,
	"devpts":      true,
	"efivarfs":    true,
	"fusectl":     true,
	"fuse.portal": true,
	"hugetlbfs":   true,
	"ignore":      true,
	"kernfs":      true,
	"mqueue":      true,
	"none":        true,
	"nsfs":        true,
	"proc":        true,
	"pstore":      true,
	"rootfs":      true,
	"rpc_pipefs":  true,
	"securityfs":  true,
	"selinuxfs":   true,
	"subfs":       true,
	"sysfs":       true,
	"tracefs":     true,
}

var remoteTypes = map[string]bool{
	"9p":         true,
	"afs":        true,
	"ceph":       true,
	"cifs":       true,
	"davfs":      true,
	"fuse.sshfs": true,
	"glusterfs":  true,
	"lustre":     true,
	"ncpfs":      true,
	"nfs":        true,
	"nfs4":       true,
	"smb3":       true,
	"smbfs":      true,
	"sshfs":      true,
}

// IsDummy reports whether fsType is a pseudo filesystem.
func IsDummy(fsType string) bool {
	return dummyTypes[fsType]
}

// IsRemote reports whether the mount is served over the network, judged by its
// type or by a host:path or //host/share device name.
func IsRemote(device, fsType string) bool {
	if remoteTypes[fsType] {
		return true
	}
	return strings.Contains(device, ":") || strings.HasPrefix(device, "//") || device == "-hosts"
}

func newRecord(device, mountDir, fsType string) Record {
	return Record{
		Device:   device,
		MountDir: mountDir,
		FSType:   fsType,
		Remote:   IsRemote(device, fsType),
		Dummy:    IsDummy(fsType),
	}
}

// ParseMountInfo parses the /proc/<pid>/mountinfo format.
func ParseMountInfo(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		sep := -1
		for i := 6; i < len(fields); i++ {
			if fields[i] == "-" {
				sep = i
				break
			}
		}
		if len(fields) < 10 || sep < 0 || len(fields) < sep+3 {
			return nil, fmt.Errorf("mountinfo line %d: malformed entry %q", lineNum, line)
		}
		records = append(records, newRecord(
			unescape(fields[sep+2]),
			unescape(fields[4]),
			fields[sep+1],
		))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ParseMounts parses the /proc/mounts (fstab) format.
func ParseMounts(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		records = append(records, newRecord(unescape(fields[0]), unescape(fields[1]), fields[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadTable reads and parses a mount table file from fs, choosing the parser by
// the file's base name.
func ReadTable(fs afero.Fs, path string) ([]Record, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(path, "mountinfo") {
		return ParseMountInfo(f)
	}
	return ParseMounts(f)
}

// unescape decodes the octal escapes the kernel uses for blanks and backslashes.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
