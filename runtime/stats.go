package runtime

import (
	"bucket-chan/domain"
	"os"
	goruntime "runtime"

	"github.com/shirou/gopsutil/process"
)

// SelfStats samples memory and CPU of the current process.
func SelfStats() (domain.ProcessStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return domain.ProcessStats{}, err
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return domain.ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return domain.ProcessStats{}, err
	}
	return domain.ProcessStats{
		PID:        domain.PID(p.Pid),
		RSSBytes:   memInfo.RSS,
		CPUPercent: cpuPercent,
		Goroutines: goruntime.NumGoroutine(),
	}, nil
}
