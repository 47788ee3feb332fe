package keyframe

import "testing"

func TestInterpolateEmpty(t *testing.T) {
	x, y := Interpolate(nil, 500)
	if x != 0 || y != 0 {
		t.Fatalf("got (%v, %v), want (0, 0)", x, y)
	}
}

func TestInterpolateLinearMidpoint(t *testing.T) {
	frames := []Keyframe{{Time: 0, X: 0, Y: 0}, {Time: 1000, X: 100, Y: 0}}

	if x, y := Interpolate(frames, 500); x != 50 || y != 0 {
		t.Fatalf("mid: got (%v, %v), want (50, 0)", x, y)
	}
	if x, y := Interpolate(frames, 0); x != 0 || y != 0 {
		t.Fatalf("start: got (%v, %v), want (0, 0)", x, y)
	}
	if x, _ := Interpolate(frames, 999.9); x < 99.8 || x > 100 {
		t.Fatalf("near-end: got x=%v, want ~99.99", x)
	}
}

func TestInterpolateClampsOutsideRange(t *testing.T) {
	frames := []Keyframe{{Time: 100, X: 1, Y: 2}, {Time: 200, X: 3, Y: 4}}

	if x, y := Interpolate(frames, 0); x != 1 || y != 2 {
		t.Fatalf("before range: got (%v, %v), want (1, 2)", x, y)
	}
	if x, y := Interpolate(frames, 1000); x != 3 || y != 4 {
		t.Fatalf("after range: got (%v, %v), want (3, 4)", x, y)
	}
}

func TestInterpolateZeroWidthSegmentDoesNotDivideByZero(t *testing.T) {
	frames := []Keyframe{
		{Time: 0, X: 0, Y: 0},
		{Time: 10, X: 5, Y: 5},
		{Time: 10, X: 9, Y: 9},
		{Time: 20, X: 10, Y: 10},
	}
	x, y := Interpolate(frames, 10)
	if x != 5 || y != 5 {
		t.Fatalf("got (%v, %v), want (5, 5) from the first matching sample", x, y)
	}
}

func TestInterpolateThreePointBracket(t *testing.T) {
	frames := []Keyframe{
		{Time: 0, X: 0, Y: 0},
		{Time: 50, X: 10, Y: 20},
		{Time: 100, X: 20, Y: 40},
	}
	x, y := Interpolate(frames, 75)
	if x != 15 || y != 30 {
		t.Fatalf("got (%v, %v), want (15, 30)", x, y)
	}
}

func BenchmarkInterpolate(b *testing.B) {
	frames := make([]Keyframe, 1000)
	for i := range frames {
		frames[i] = Keyframe{Time: float32(i), X: float32(i), Y: float32(i)}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Interpolate(frames, float32(i%1000))
	}
}
