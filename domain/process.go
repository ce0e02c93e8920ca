package domain

type PID int32

// ProcessStats is a snapshot of the bot process, logged on every reconnect
// so a slow leak across sessions shows up in the output.
type ProcessStats struct {
	PID        PID
	RSSBytes   uint64
	CPUPercent float64
	Goroutines int
}
