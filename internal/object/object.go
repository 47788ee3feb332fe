// Package object implements SquareObject, one animated square instance
// (spec §4.5): an identity, a size, a color, a time offset into its own
// track, and the KeyframeStore driving its cached position.
package object

import (
	"context"
	"image/color"

	"squareengine/internal/canvas"
	"squareengine/internal/track"
)

// SquareObject is one animated square. It owns its KeyframeStore and is
// otherwise a thin wrapper: the costly chunk I/O all lives behind the
// store's PrefetchAsync, whose loads run off the dispatch-loop
// goroutine (spec §4.6, §5) so a stalled load never delays Update.
type SquareObject struct {
	objectID uint32
	size     float32
	col      color.RGBA
	store    *track.KeyframeStore

	totalDuration float64
	timeOffset    float64
	currentTime   float64

	cachedX, cachedY float64
}

// New constructs a square object. currentTime is seeded from timeOffset
// (spec §4.5 — "time_offset is applied... when seeding current_time at
// construction, not per call"); cached position starts at the origin
// per SPEC_FULL.md §D.2 until the first successful Update.
func New(objectID uint32, size float32, col color.RGBA, totalDuration, timeOffset float64, store *track.KeyframeStore) *SquareObject {
	return &SquareObject{
		objectID:      objectID,
		size:          size,
		col:           col,
		store:         store,
		totalDuration: totalDuration,
		timeOffset:    timeOffset,
		currentTime:   timeOffset,
	}
}

func (o *SquareObject) ObjectID() uint32  { return o.objectID }
func (o *SquareObject) Size() float32     { return o.size }
func (o *SquareObject) Color() color.RGBA { return o.col }
func (o *SquareObject) CurrentX() float64 { return o.cachedX }
func (o *SquareObject) CurrentY() float64 { return o.cachedY }

// Update advances currentTime by deltaMs modulo totalDuration and, if the
// store has a resident chunk for the new playhead, refreshes the cached
// position. If no chunk is resident, cachedX/Y are left unchanged — the
// "Starvation" non-error case from spec §7.
func (o *SquareObject) Update(deltaMs float64) {
	if o.totalDuration > 0 {
		o.currentTime = mod(o.currentTime+deltaMs, o.totalDuration)
	}
	if x, y, ok := o.store.InterpolatedAt(o.currentTime); ok {
		o.cachedX, o.cachedY = x, y
	}
}

// Prefetch delegates to the store with the object's current playhead,
// blocking until both chunks resolve. Used by tests; the dispatch loop
// calls PrefetchAsync instead.
func (o *SquareObject) Prefetch(ctx context.Context) error {
	return o.store.Prefetch(ctx, o.currentTime)
}

// PrefetchAsync delegates to the store's non-blocking load so a stalled
// block-store call on this object never stalls the caller (spec §5).
func (o *SquareObject) PrefetchAsync(ctx context.Context, onError func(error)) {
	o.store.PrefetchAsync(ctx, o.currentTime, onError)
}

// Render fills a size x size square at (cachedX, cachedY) with the
// object's color on the given raster surface.
func (o *SquareObject) Render(surface canvas.RasterSurface) {
	surface.SetFillStyle(o.col)
	surface.FillRect(o.cachedX, o.cachedY, float64(o.size), float64(o.size))
}

func mod(v, m float64) float64 {
	r := v - float64(int64(v/m))*m
	if r < 0 {
		r += m
	}
	return r
}
