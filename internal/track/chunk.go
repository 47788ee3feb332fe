// Package track implements the per-object chunked keyframe store: a
// conceptually infinite (bounded by total duration) sorted keyframe
// track held behind a bounded LRU cache of decoded chunks, backed by an
// async block store (spec §4.4). This is the direct descendant of the
// teacher's world.ChunkStore/ChunkStreamer pair, generalized from a
// voxel block grid to a 1D time-indexed keyframe track.
package track

import "squareengine/internal/keyframe"

// KeyframeChunk is a contiguous time slice of one object's track: a
// sorted run of Keyframe samples spanning [StartTime, EndTime).
type KeyframeChunk struct {
	ObjectID   uint32
	ChunkIndex uint32
	StartTime  float32
	EndTime    float32
	Frames     []keyframe.Keyframe
}

// IsEmpty reports whether the chunk carries no samples (a legal pattern
// function output, spec §9 — interpolation at such a chunk is undefined
// and reported via InterpolateAt's ok=false).
func (c KeyframeChunk) IsEmpty() bool {
	return len(c.Frames) == 0
}

// InterpolateAt returns the linearly-blended position for an absolute
// playhead time within this chunk. ok is false only if the chunk holds
// no samples at all; out-of-range times within a resident chunk still
// clamp per keyframe.Interpolate.
func (c KeyframeChunk) InterpolateAt(playhead float32) (x, y float32, ok bool) {
	if c.IsEmpty() {
		return 0, 0, false
	}
	x, y = keyframe.Interpolate(c.Frames, playhead)
	return x, y, true
}
