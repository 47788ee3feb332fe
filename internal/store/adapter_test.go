package store

import (
	"context"
	"testing"

	"squareengine/internal/keyframe"
)

func TestPutChunkThenGetChunkRoundTrips(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend())

	frames := []keyframe.Keyframe{{Time: 0, X: 1, Y: 2}, {Time: 500, X: 3, Y: 4}}
	if err := a.PutChunk(ctx, 7, 2, 0, 1000, frames); err != nil {
		t.Fatalf("PutChunk: %v", err)
	}

	rec, ok, err := a.GetChunk(ctx, 7, 2)
	if err != nil || !ok {
		t.Fatalf("GetChunk: ok=%v err=%v", ok, err)
	}
	if rec.StartTime != 0 || rec.EndTime != 1000 {
		t.Fatalf("got start/end (%v, %v), want (0, 1000)", rec.StartTime, rec.EndTime)
	}
	if len(rec.Keyframes) != 2 || rec.Keyframes[0] != frames[0] || rec.Keyframes[1] != frames[1] {
		t.Fatalf("got keyframes %+v, want %+v", rec.Keyframes, frames)
	}
	if rec.ObjectChunkID != "7_2" {
		t.Fatalf("got object_chunk_id %q, want %q", rec.ObjectChunkID, "7_2")
	}
}

func TestGetChunkMissingIsNotAnError(t *testing.T) {
	a := NewAdapter(NewMemoryBackend())
	_, ok, err := a.GetChunk(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error for missing chunk: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing chunk")
	}
}

func TestResetClearsBackend(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := NewAdapter(backend)

	_ = a.PutChunk(ctx, 1, 0, 0, 100, []keyframe.Keyframe{{Time: 0, X: 1, Y: 1}})
	if err := a.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	_, ok, err := a.GetChunk(ctx, 1, 0)
	if err != nil || ok {
		t.Fatalf("expected no data after reset, got ok=%v err=%v", ok, err)
	}
}
