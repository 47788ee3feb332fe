package store

import (
	"context"
	"encoding/json"
	"fmt"

	"squareengine/internal/keyframe"
)

// ChunkRecord is the on-the-wire persisted chunk format from spec §6:
//
//	{ object_chunk_id, start_time, end_time, keyframes: [{time, x, y}, ...] }
//
// Bit-for-bit compatibility with the source format is not required (spec
// §6); this is a natural Go/JSON rendering of the same fields.
type ChunkRecord struct {
	ObjectChunkID string              `json:"object_chunk_id"`
	StartTime     float32             `json:"start_time"`
	EndTime       float32             `json:"end_time"`
	Keyframes     []keyframe.Keyframe `json:"keyframes"`
}

// Adapter serializes keyframe chunks into ChunkRecords and moves them
// through a Backend. It never retains a decoded chunk across calls —
// caching resident chunks is the KeyframeStore's job, not the adapter's.
type Adapter struct {
	backend Backend
}

// NewAdapter wraps backend for chunk put/get/reset.
func NewAdapter(backend Backend) *Adapter {
	return &Adapter{backend: backend}
}

// PutChunk serializes and writes the chunk identified by (objectID,
// chunkIndex) under its composite key.
func (a *Adapter) PutChunk(ctx context.Context, objectID, chunkIndex uint32, startTime, endTime float32, frames []keyframe.Keyframe) error {
	key := Key(objectID, chunkIndex)
	rec := ChunkRecord{
		ObjectChunkID: key,
		StartTime:     startTime,
		EndTime:       endTime,
		Keyframes:     frames,
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	if err := a.backend.Put(ctx, key, buf); err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	return nil
}

// GetChunk reads and deserializes the chunk identified by (objectID,
// chunkIndex). Returns ok=false, with no error, if the chunk has never
// been persisted — a missing chunk is "no data yet", not a failure.
func (a *Adapter) GetChunk(ctx context.Context, objectID, chunkIndex uint32) (rec ChunkRecord, ok bool, err error) {
	key := Key(objectID, chunkIndex)
	buf, found, err := a.backend.Get(ctx, key)
	if err != nil {
		return ChunkRecord{}, false, &StoreError{Op: "get", Key: key, Err: err}
	}
	if !found {
		return ChunkRecord{}, false, nil
	}
	if err := json.Unmarshal(buf, &rec); err != nil {
		return ChunkRecord{}, false, &StoreError{Op: "get", Key: key, Err: fmt.Errorf("corrupt record: %w", err)}
	}
	return rec, true, nil
}

// Reset clears the entire backing store. Invoked once at engine
// construction (spec §6); kept as an operational choice, not retried on
// failure beyond surfacing the error to the caller.
func (a *Adapter) Reset(ctx context.Context) error {
	if err := a.backend.DeleteAll(ctx, Namespace); err != nil {
		return &StoreError{Op: "reset", Key: Namespace, Err: err}
	}
	return nil
}
