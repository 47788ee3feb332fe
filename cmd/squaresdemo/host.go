package main

import "time"

// repaintHost adapts "one callback per main-loop iteration" into
// canvas.RepaintScheduler. There is no browser-style repaint primitive
// under GLFW, so the outer loop itself plays that role: each iteration
// of the loop is one repaint tick, and Drain delivers exactly the
// callbacks armed since the previous tick (spec §4.7 "invoked at most
// once per host repaint tick").
type repaintHost struct {
	pending []*repaintHandle
}

type repaintHandle struct {
	fn        func()
	cancelled bool
}

func (h *repaintHost) RequestAnimationFrame(fn func()) func() {
	handle := &repaintHandle{fn: fn}
	h.pending = append(h.pending, handle)
	return func() { handle.cancelled = true }
}

// Drain invokes every callback armed since the last Drain, in
// registration order, then clears the queue. A callback that re-arms
// itself (scheduler.FrameLoop does this) lands in the next Drain, not
// this one.
func (h *repaintHost) Drain() {
	due := h.pending
	h.pending = nil
	for _, handle := range due {
		if !handle.cancelled {
			handle.fn()
		}
	}
}

// intervalHost adapts the engine's 20ms fetch tick onto the same
// single-threaded main loop: no goroutine, no timer — Tick is called
// once per loop iteration and compares elapsed wall time against each
// registered period.
type intervalHost struct {
	entries []*intervalEntry
}

type intervalEntry struct {
	periodFn  func() int64
	fn        func()
	lastFired time.Time
	cancelled bool
}

func (h *intervalHost) SetInterval(periodFn func() int64, fn func()) func() {
	e := &intervalEntry{periodFn: periodFn, fn: fn, lastFired: time.Now()}
	h.entries = append(h.entries, e)
	return func() { e.cancelled = true }
}

// Tick fires every registered interval whose period has elapsed.
func (h *intervalHost) Tick(now time.Time) {
	live := h.entries[:0]
	for _, e := range h.entries {
		if e.cancelled {
			continue
		}
		live = append(live, e)
		period := time.Duration(e.periodFn()) * time.Millisecond
		if now.Sub(e.lastFired) >= period {
			e.lastFired = now
			e.fn()
		}
	}
	h.entries = live
}
