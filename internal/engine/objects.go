package engine

import (
	"context"
	"image/color"
	"math/rand"
	"runtime"

	"squareengine/internal/object"
	"squareengine/internal/track"
)

// AddObject allocates the next dense object_id, builds a KeyframeStore
// around pattern, persists its entire track, and appends the resulting
// SquareObject to the engine (spec §4.6 "add_object"). totalDuration is
// the length of this object's track in milliseconds.
func (e *Engine) AddObject(ctx context.Context, pattern track.PatternFunc, size float32, col color.RGBA, totalDuration float64) (uint32, error) {
	id := uint32(len(e.objects))

	s := track.NewKeyframeStore(id, e.chunkDuration, totalDuration, pattern, e.adapter, e.cacheCapacity)
	if err := s.GenerateAndPersistAll(ctx); err != nil {
		return 0, err
	}

	timeOffset := e.rng.Float64() * totalDuration
	o := object.New(id, size, col, totalDuration, timeOffset, s)
	e.objects = append(e.objects, o)
	return id, nil
}

// GenerateObjects is the batch convenience over AddObject: n objects,
// each with a fresh random-walk pattern and random color, sized
// keyframesPerObject chunks long. It yields to the host scheduler after
// every object so a large batch does not stall the UI (spec §4.6
// "generate_objects... must yield to the host periodically").
func (e *Engine) GenerateObjects(ctx context.Context, n int, keyframesPerObject int, size float32) error {
	if keyframesPerObject < 1 {
		keyframesPerObject = 1
	}
	totalDuration := float64(keyframesPerObject) * float64(e.chunkDuration)

	for i := 0; i < n; i++ {
		seed := e.rng.Int63()
		pattern := track.NewRandomWalkPattern(seed, 800, 12)
		col := randomColor(e.rng)
		if _, err := e.AddObject(ctx, pattern, size, col, totalDuration); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}

func randomColor(rng *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
}
