package tracer

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultWorkers returns the number of logical CPUs reported by the host,
// falling back to runtime.NumCPU when the count cannot be detected.
func DefaultWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		return runtime.NumCPU()
	}
	return count
}

// CPUModel returns the model name of the first CPU or an empty string when
// it cannot be detected.
func CPUModel() string {
	info, err := cpu.Info()
	if err != nil || len(info) == 0 {
		return ""
	}
	return info[0].ModelName
}
