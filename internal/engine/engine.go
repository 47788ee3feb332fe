// Package engine implements the object registry, task queue, dispatch
// loop, input state machine, hit testing, and viewport culling from
// spec §4.6 — the single-threaded cooperative heart of the animation
// core. It plays the role the teacher's cmd/mini-mc GameLoop plays for
// the voxel game: one loop, draining producers in FIFO order. Engine's
// own fields are only ever touched from that one loop; the exception is
// each object's KeyframeStore, which PrefetchAsync loads into from a
// background goroutine so a stalled block-store call cannot stall the
// loop (spec §5) — see track.KeyframeStore and internal/lru for the
// concurrency boundary that crosses.
package engine

import (
	"context"
	"log"
	"math/rand"
	"time"

	"squareengine/internal/canvas"
	"squareengine/internal/clock"
	"squareengine/internal/config"
	"squareengine/internal/geometry"
	"squareengine/internal/object"
	"squareengine/internal/profiling"
	"squareengine/internal/store"
)

// InputState is the pointer-driven FSM from spec §4.6.
type InputState int

const (
	Running InputState = iota
	Paused
)

// Engine owns every SquareObject, the task queue, and the render
// surface, and runs the fetch/update-render dispatch loop described in
// spec §4.6.
type Engine struct {
	objects []*object.SquareObject
	adapter *store.Adapter
	surface canvas.RasterSurface
	hitSink canvas.HitIndexSink

	tasks []EngineTask

	viewport    geometry.AABB
	clk         clock.Clock
	lastFrameMs float64

	state    InputState
	pressPos canvas.PointerEvent
	hitSet   []uint32

	rng *rand.Rand

	chunkDuration float32
	totalDuration float64
	cacheCapacity int
}

// New resolves the render surface, resets the block store, and returns
// a ready-to-run engine in the Running state (spec §4.6 "Construction").
// clk supplies the monotonic millisecond readings NextRepaintTask bases
// its frame delta on; a nil clk falls back to clock.NewSystem(), the
// same nil-defaulting shape hitSink already uses below.
func New(ctx context.Context, surface canvas.RasterSurface, hitSink canvas.HitIndexSink, backend store.Backend, totalDuration float64, clk clock.Clock) (*Engine, error) {
	if surface == nil {
		return nil, &canvas.ContextError{Reason: "no raster surface resolved"}
	}
	adapter := store.NewAdapter(backend)
	if err := adapter.Reset(ctx); err != nil {
		return nil, err
	}
	if hitSink == nil {
		hitSink = canvas.NewNoopHitIndexSink()
	}
	if clk == nil {
		clk = clock.NewSystem()
	}

	return &Engine{
		adapter:       adapter,
		surface:       surface,
		hitSink:       hitSink,
		state:         Running,
		clk:           clk,
		lastFrameMs:   clk.NowMs(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		chunkDuration: config.GetChunkDuration(),
		totalDuration: totalDuration,
		cacheCapacity: config.GetCacheCapacity(),
	}, nil
}

// Enqueue pushes a task onto the back of the FIFO queue. The fetch
// timer and the repaint callback call this. Pointer events do not pass
// through the queue: HandlePointer updates the input state directly.
func (e *Engine) Enqueue(t EngineTask) {
	e.tasks = append(e.tasks, t)
}

// NextRepaintTask builds the UpdateAndRender task for the current tick,
// advancing lastFrameMs as a side effect (spec §4.6 Producer B). The
// clock injected at construction, not time.Now directly, is the source
// of "now" so the frame delta is testable against a fake clock.
func (e *Engine) NextRepaintTask() EngineTask {
	now := e.clk.NowMs()
	delta := now - e.lastFrameMs
	e.lastFrameMs = now
	return UpdateAndRenderTask(delta)
}

// DrainOne pops and processes the front task, if any. Returns false if
// the queue was empty. Each call processes exactly one task to
// completion before returning, matching the "pop front, process to
// completion, pop next" consumer loop (spec §4.6). FetchData only
// schedules background loads (see fetchData) and so never blocks here;
// a stalled block-store call therefore cannot stall a later
// UpdateAndRender task (spec §5).
func (e *Engine) DrainOne(ctx context.Context) bool {
	if len(e.tasks) == 0 {
		return false
	}
	t := e.tasks[0]
	e.tasks = e.tasks[1:]

	start := time.Now()
	switch t.kind {
	case taskFetchData:
		defer profiling.Track("engine.FetchData")()
		e.fetchData(ctx)
	case taskUpdateAndRender:
		defer profiling.Track("engine.UpdateAndRender")()
		e.updateAndRender(t.deltaMs)
	}

	if budget := time.Duration(config.GetFetchInterval()) * time.Millisecond; time.Since(start) > budget {
		log.Printf("engine: task overran budget: %.2fms (budget %.2fms)",
			float64(time.Since(start).Microseconds())/1000.0, float64(budget.Microseconds())/1000.0)
	}
	return true
}

// Drain processes every currently-queued task, in order, stopping as
// soon as the queue is empty (it does not wait for more to arrive). One
// Drain call is one "frame" in the profiler's sense — it resets the
// per-frame totals first and, if the whole cycle overran the fetch-tick
// budget, logs the top tasks, the same profiling.ResetFrame /
// TopNCurrentFrame shape the teacher's App.tick uses (app.go).
func (e *Engine) Drain(ctx context.Context) {
	profiling.ResetFrame()
	start := time.Now()
	for e.DrainOne(ctx) {
	}
	if budget := time.Duration(config.GetFetchInterval()) * time.Millisecond; time.Since(start) > budget {
		log.Printf("engine: frame processing too slow: %.2fms (budget %.2fms). Top tasks: %s",
			float64(time.Since(start).Microseconds())/1000.0, float64(budget.Microseconds())/1000.0,
			profiling.TopNCurrentFrame(5))
	}
}

// fetchData kicks off a background load for every object's current
// chunk pair and returns immediately; it never waits on block-store I/O
// (spec §5). Per-object failures are logged from whichever goroutine
// the failing load lands on.
func (e *Engine) fetchData(ctx context.Context) {
	for _, o := range e.objects {
		o.PrefetchAsync(ctx, func(err error) {
			log.Printf("engine: prefetch object %d: %v", o.ObjectID(), err)
		})
	}
}

func (e *Engine) updateAndRender(deltaMs float64) {
	if e.state == Running {
		for _, o := range e.objects {
			o.Update(deltaMs)
		}
	}

	width, height := e.surface.Size()
	e.viewport = geometry.NewAABBFromOriginSize(0, 0, width, height)
	e.surface.ClearRect(0, 0, width, height)

	for _, o := range e.objects {
		box := objectAABB(o)
		if !box.Intersects(e.viewport) {
			continue
		}
		o.Render(e.surface)
	}
}

func objectAABB(o *object.SquareObject) geometry.AABB {
	size := float64(o.Size())
	return geometry.NewAABBFromOriginSize(o.CurrentX(), o.CurrentY(), size, size)
}

// HitIndices returns every object_id whose cached AABB contains (x, y),
// in ascending order with no duplicates (spec §4.6, testable invariant
// #5). object_id allocation is already dense and ascending, so a plain
// linear scan in object order satisfies the ordering requirement
// without an explicit sort.
func (e *Engine) HitIndices(x, y float64) []uint32 {
	var hits []uint32
	for _, o := range e.objects {
		if objectAABB(o).Contains(x, y) {
			hits = append(hits, o.ObjectID())
		}
	}
	return hits
}
