// Package keyframe holds the immutable (time, x, y) record that a
// KeyframeChunk is built from, and the linear interpolation between
// neighbors that the square objects read their position from.
package keyframe

import "sort"

// Keyframe is an immutable (time, x, y) sample, fixed at 12 bytes.
type Keyframe struct {
	Time float32 // milliseconds since the track origin
	X    float32 // pixels
	Y    float32 // pixels
}

// Interpolate returns the linearly-blended (x, y) for query time q against
// an ordered (strictly non-decreasing Time) sequence of keyframes.
//
//  1. An empty sequence returns (0, 0).
//  2. q at or before the first sample clamps to the first sample.
//  3. q at or after the last sample clamps to the last sample.
//  4. Otherwise the bracketing pair is found by binary search and blended
//     with r = (q - prev.Time) / (next.Time - prev.Time), or r = 0 if the
//     denominator is non-positive.
func Interpolate(frames []Keyframe, q float32) (x, y float32) {
	if len(frames) == 0 {
		return 0, 0
	}
	first := frames[0]
	if q <= first.Time {
		return first.X, first.Y
	}
	last := frames[len(frames)-1]
	if q >= last.Time {
		return last.X, last.Y
	}

	// sort.Search finds the first index whose Time is > q; the bracketing
	// pair is (idx-1, idx) since frames[0].Time < q < frames[len-1].Time
	// guarantees 0 < idx < len(frames).
	idx := sort.Search(len(frames), func(i int) bool {
		return frames[i].Time > q
	})
	prev, next := frames[idx-1], frames[idx]

	denom := next.Time - prev.Time
	var r float32
	if denom > 0 {
		r = (q - prev.Time) / denom
	}
	return prev.X + r*(next.X-prev.X), prev.Y + r*(next.Y-prev.Y)
}
