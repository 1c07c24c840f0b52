package platform

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// DiskFree returns the free bytes on the volume holding path
func DiskFree(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, fmt.Errorf("disk usage for %s: %w", path, err)
	}
	return usage.Free, nil
}
