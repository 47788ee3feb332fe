// Package canvas declares the host capabilities the engine consumes but
// never implements itself (spec §1 "out of scope", §6 "host
// capabilities consumed"): a 2D raster surface, a pointer event source,
// a repaint scheduling primitive, and an interval primitive. Concrete
// implementations live outside this module's core — cmd/squaresdemo
// supplies a real one over GLFW/OpenGL.
package canvas

import "image/color"

// RasterSurface is the 2D raster context the engine draws squares into
// and clears every frame (spec §6's "fill_rect/clear_rect/fill_style").
// Coordinates are canvas pixels, origin top-left.
type RasterSurface interface {
	SetFillStyle(c color.RGBA)
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	// Size returns the current canvas dimensions in CSS pixels, used to
	// recompute the viewport AABB every frame.
	Size() (width, height float64)
}

// PointerEvent is one press/move/release sample in canvas coordinates,
// already translated from client coordinates via the canvas's bounding
// rect (an untranslatable event is an InputError, spec §7, and is
// dropped by whatever adapts the host source into this stream).
type PointerEvent struct {
	X, Y float64
}

// PointerKind distinguishes the three event shapes the state machine in
// spec §4.6 reacts to.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerSource is the host's pointer event stream. Handle is called
// synchronously by the host for each event. The engine's handler,
// Engine.HandlePointer, updates the engine's input state directly; it
// does not enqueue a task.
type PointerSource interface {
	OnPointer(handle func(kind PointerKind, ev PointerEvent))
}

// RepaintScheduler schedules fn to run once before the host's next
// repaint. Used by internal/scheduler to build the self-re-arming frame
// loop (spec §4.7).
type RepaintScheduler interface {
	RequestAnimationFrame(fn func()) (cancel func())
}

// IntervalScheduler schedules fn to run every period until cancelled,
// backing the engine's 20ms fetch timer (spec §4.6 "Producer A").
type IntervalScheduler interface {
	SetInterval(period func() int64, fn func()) (cancel func())
}

// HitIndexSink is the host element the engine writes the current hit
// test result to on every pointer-move while paused (spec §6).
type HitIndexSink interface {
	SetHitIndex(objectID uint32, found bool)
}

// ContextError reports that the host's canvas or 2D context could not
// be resolved at construction — fatal per spec §7.
type ContextError struct {
	Reason string
}

func (e *ContextError) Error() string { return "canvas: " + e.Reason }

// noopSink discards hit-index updates; used where a host doesn't
// expose one (tests, headless runs).
type noopSink struct{}

// NewNoopHitIndexSink returns a HitIndexSink that discards every update.
func NewNoopHitIndexSink() HitIndexSink { return noopSink{} }

func (noopSink) SetHitIndex(uint32, bool) {}
