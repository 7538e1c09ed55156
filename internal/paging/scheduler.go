package paging

import "time"

// Scheduler runs f once after d. The returned stop function prevents f from
// running if it has not started yet.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// timerScheduler schedules on time.AfterFunc
type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}
