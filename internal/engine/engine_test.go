package engine

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"squareengine/internal/canvas"
	"squareengine/internal/keyframe"
	"squareengine/internal/store"
)

// fakeSurface is a minimal in-memory canvas.RasterSurface recording
// fill calls, used so tests can assert on render/culling without a
// real GL context.
type fakeSurface struct {
	w, h      float64
	fillCount int
}

func (f *fakeSurface) SetFillStyle(color.RGBA)     {}
func (f *fakeSurface) FillRect(x, y, w, h float64)  { f.fillCount++ }
func (f *fakeSurface) ClearRect(x, y, w, h float64) {}
func (f *fakeSurface) Size() (float64, float64)     { return f.w, f.h }

// fakeHitSink records the most recent hit-index write.
type fakeHitSink struct {
	objectID uint32
	found    bool
}

func (f *fakeHitSink) SetHitIndex(objectID uint32, found bool) {
	f.objectID, f.found = objectID, found
}

// fakeClock is a settable clock.Clock so NextRepaintTask's delta is
// deterministic under test instead of riding the real wall clock.
type fakeClock struct {
	mu sync.Mutex
	ms float64
}

func (c *fakeClock) NowMs() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ms
}

func (c *fakeClock) advance(ms float64) {
	c.mu.Lock()
	c.ms += ms
	c.mu.Unlock()
}

// stallingBackend is a store.Backend whose Get blocks forever for one
// key and resolves immediately for every other, modeling spec §8
// scenario 3's "Block-store get_chunk on object 0 never resolves".
type stallingBackend struct {
	store.Backend
	stallKey string
	unblock  chan struct{}
}

func (b *stallingBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == b.stallKey {
		<-b.unblock
		return nil, false, errors.New("stallingBackend: should not reach here in test lifetime")
	}
	return b.Backend.Get(ctx, key)
}

func newTestEngine(t *testing.T, w, h float64) (*Engine, *fakeSurface, *fakeHitSink) {
	t.Helper()
	surface := &fakeSurface{w: w, h: h}
	sink := &fakeHitSink{}
	e, err := New(context.Background(), surface, sink, store.NewMemoryBackend(), 1000, &fakeClock{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, surface, sink
}

// addFixedObject places an object at a constant (x, y) for its whole
// track, so hit-test and culling scenarios can use exact coordinates.
func addFixedObject(t *testing.T, e *Engine, x, y float64, size float32) uint32 {
	t.Helper()
	pattern := func(startTime, endTime float32) []keyframe.Keyframe {
		return []keyframe.Keyframe{{Time: startTime, X: float32(x), Y: float32(y)}}
	}
	id, err := e.AddObject(context.Background(), pattern, size, color.RGBA{R: 255, A: 255}, 1000)
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	o := e.objects[id]
	if err := o.Prefetch(context.Background()); err != nil {
		t.Fatalf("Prefetch: %v", err)
	}
	o.Update(0)
	return id
}

func TestDrainOneProcessesQueueInFIFOOrder(t *testing.T) {
	e, _, _ := newTestEngine(t, 500, 500)
	var order []string
	// Enqueue two FetchData and one UpdateAndRender; DrainOne must pop
	// them in the order they were pushed.
	e.Enqueue(FetchDataTask())
	e.Enqueue(UpdateAndRenderTask(16))
	e.Enqueue(FetchDataTask())

	for len(e.tasks) > 0 {
		kind := e.tasks[0].kind
		if kind == taskFetchData {
			order = append(order, "fetch")
		} else {
			order = append(order, "render")
		}
		e.DrainOne(context.Background())
	}
	want := []string{"fetch", "render", "fetch"}
	if len(order) != len(want) {
		t.Fatalf("got order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}

// TestHitTestAndPauseStateMachine mirrors spec §8 scenario 4.
func TestHitTestAndPauseStateMachine(t *testing.T) {
	e, _, sink := newTestEngine(t, 500, 500)
	addFixedObject(t, e, 100, 100, 50)
	addFixedObject(t, e, 200, 200, 50)

	if e.State() != Running {
		t.Fatalf("expected initial state Running")
	}

	e.HandlePointer(canvas.PointerDown, canvas.PointerEvent{X: 120, Y: 120})
	if e.State() != Paused {
		t.Fatalf("expected Paused after pointer-down")
	}
	if !sink.found || sink.objectID != 0 {
		t.Fatalf("got hit (%v,%v), want (0,true)", sink.objectID, sink.found)
	}

	e.HandlePointer(canvas.PointerMove, canvas.PointerEvent{X: 210, Y: 210})
	if !sink.found || sink.objectID != 1 {
		t.Fatalf("got hit (%v,%v), want (1,true)", sink.objectID, sink.found)
	}

	e.HandlePointer(canvas.PointerMove, canvas.PointerEvent{X: 400, Y: 400})
	if sink.found {
		t.Fatalf("expected no hit at (400,400), got object %v", sink.objectID)
	}

	e.HandlePointer(canvas.PointerUp, canvas.PointerEvent{X: 400, Y: 400})
	if e.State() != Running {
		t.Fatalf("expected Running after pointer-up")
	}
}

// TestViewportCullingMatchesScenario mirrors spec §8 scenario 5.
func TestViewportCullingMatchesScenario(t *testing.T) {
	e, surface, _ := newTestEngine(t, 500, 500)
	addFixedObject(t, e, -200, -200, 50)
	addFixedObject(t, e, 250, 250, 50)
	addFixedObject(t, e, 600, 600, 50)

	e.updateAndRender(0)
	if surface.fillCount != 1 {
		t.Fatalf("got %d rendered objects, want 1", surface.fillCount)
	}
}

func TestHitIndicesAscendingNoDuplicates(t *testing.T) {
	e, _, _ := newTestEngine(t, 500, 500)
	addFixedObject(t, e, 100, 100, 200) // overlaps the next object
	addFixedObject(t, e, 150, 150, 200)

	ids := e.HitIndices(170, 170)
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Fatalf("got %v, want ascending [0 1]", ids)
	}
}

// TestStalledFetchDoesNotHangRender mirrors spec §8 scenario 3: a
// block-store Get that never resolves for one object must not stall the
// dispatch loop's later UpdateAndRender tasks. Both objects have a
// single-chunk track (totalDuration equal to one chunk), so each one's
// only ever-fetched key is chunk 0 regardless of its randomly seeded
// time offset.
func TestStalledFetchDoesNotHangRender(t *testing.T) {
	base := store.NewMemoryBackend()
	unblock := make(chan struct{})
	defer close(unblock)
	backend := &stallingBackend{Backend: base, stallKey: store.Key(0, 0), unblock: unblock}

	clk := &fakeClock{}
	surface := &fakeSurface{w: 500, h: 500}
	e, err := New(context.Background(), surface, &fakeHitSink{}, backend, 1000, clk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	stalled := func(startTime, endTime float32) []keyframe.Keyframe {
		return []keyframe.Keyframe{{Time: startTime, X: 10, Y: 10}}
	}
	healthy := func(startTime, endTime float32) []keyframe.Keyframe {
		return []keyframe.Keyframe{{Time: startTime, X: 50, Y: 50}}
	}
	if _, err := e.AddObject(context.Background(), stalled, 20, color.RGBA{R: 255, A: 255}, 1000); err != nil {
		t.Fatalf("AddObject 0: %v", err)
	}
	if _, err := e.AddObject(context.Background(), healthy, 20, color.RGBA{G: 255, A: 255}, 1000); err != nil {
		t.Fatalf("AddObject 1: %v", err)
	}

	e.Enqueue(FetchDataTask())

	done := make(chan struct{})
	go func() {
		// Object 0's chunk load stalls in the background; DrainOne must
		// still return promptly instead of blocking on it.
		e.Drain(context.Background())
		for i := 0; i < 60; i++ {
			clk.advance(16)
			e.Enqueue(e.NextRepaintTask())
			e.Drain(context.Background())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine.Drain blocked on a stalled block-store Get instead of letting render continue (spec §8 scenario 3)")
	}

	if surface.fillCount == 0 {
		t.Fatalf("expected render to keep producing fills while object 0's fetch stalls")
	}
	if x, y := e.objects[1].CurrentX(), e.objects[1].CurrentY(); x != 50 || y != 50 {
		t.Fatalf("expected the unstalled object to reach its cached position, got (%v, %v)", x, y)
	}
	if x, y := e.objects[0].CurrentX(), e.objects[0].CurrentY(); x != 0 || y != 0 {
		t.Fatalf("expected the stalled object to remain at its initial position, got (%v, %v)", x, y)
	}
}
