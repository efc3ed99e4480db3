// Package diskstat samples free space on the filesystem holding a path, so a
// run can report how much space it reclaimed.
package diskstat

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// Free returns the bytes available on the filesystem containing path.
func Free(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, fmt.Errorf("disk usage for %s: %w", path, err)
	}
	return usage.Free, nil
}

// Reclaimed returns how much free space grew between two samples.
// Other processes writing meanwhile can shrink free space; that reads as zero.
func Reclaimed(before, after uint64) uint64 {
	if after <= before {
		return 0
	}
	return after - before
}
