package scheduler

import "squareengine/internal/canvas"

// IntervalLoop wraps the host's interval primitive into the recurring
// FetchData producer (spec §4.6 "Producer A — fetch timer").
type IntervalLoop struct {
	cancel func()
}

// NewIntervalLoop schedules fn to run every periodMs milliseconds,
// starting immediately.
func NewIntervalLoop(host canvas.IntervalScheduler, periodMs int64, fn func()) *IntervalLoop {
	cancel := host.SetInterval(func() int64 { return periodMs }, fn)
	return &IntervalLoop{cancel: cancel}
}

// Stop cancels the interval; safe to call more than once.
func (l *IntervalLoop) Stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
