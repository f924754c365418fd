package reptest

import (
	"os"
	"sync"

	"github.com/shirou/gopsutil/v3/process"
)

var (
	procOnce sync.Once
	proc     *process.Process
)

// PageFaults returns the total minor plus major fault count of this process,
// or zero when the platform does not expose it.
func PageFaults() uint64 {
	procOnce.Do(func() {
		proc, _ = process.NewProcess(int32(os.Getpid()))
	})
	if proc == nil {
		return 0
	}

	stat, err := proc.PageFaults()
	if err != nil || stat == nil {
		return 0
	}
	return stat.MinorFaults + stat.MajorFaults
}
