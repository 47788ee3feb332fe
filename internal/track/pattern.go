package track

import (
	"math/rand"

	"squareengine/internal/keyframe"
)

// PatternFunc produces the keyframes for one chunk's time span
// [startTime, endTime). It is called once per chunk during generation
// and must return frames sorted by Time (spec §4.4); it need not start
// exactly at startTime — the store injects a synthetic bracket frame
// when continuity with the previous chunk would otherwise be lost.
type PatternFunc func(startTime, endTime float32) []keyframe.Keyframe

// sampleStepMs is the spacing between samples a generated pattern lays
// down within a chunk. Independent of chunk duration so chunk size and
// motion resolution can be tuned separately.
const sampleStepMs float32 = 250

// NewRandomWalkPattern returns a PatternFunc that lays down a smooth
// random walk: one sample every sampleStepMs, each a bounded step away
// from the last, clamped to [0, bound]. Deterministic for a given seed,
// so generated tracks are reproducible across runs and across test
// assertions (spec §9, resolved: pattern generation is deterministic
// per object).
func NewRandomWalkPattern(seed int64, bound float32, stepSize float32) PatternFunc {
	rng := rand.New(rand.NewSource(seed))
	x, y := bound/2, bound/2

	return func(startTime, endTime float32) []keyframe.Keyframe {
		var frames []keyframe.Keyframe
		for t := startTime; t < endTime; t += sampleStepMs {
			x = clamp(x+(rng.Float32()*2-1)*stepSize, 0, bound)
			y = clamp(y+(rng.Float32()*2-1)*stepSize, 0, bound)
			frames = append(frames, keyframe.Keyframe{Time: t, X: x, Y: y})
		}
		return frames
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
