package track

import (
	"context"
	"math"
	"sync"

	"squareengine/internal/keyframe"
	"squareengine/internal/lru"
	"squareengine/internal/profiling"
	"squareengine/internal/store"
)

// KeyframeStore owns one object's chunked track: it generates chunks
// through a PatternFunc, persists them through a store.Adapter, and
// keeps at most cacheCapacity decoded chunks resident in an LRU cache
// (spec §4.4 — the engine's core component). It plays the role the
// teacher's world.ChunkStreamer plays for voxel chunks, narrowed to a
// single object's 1D time axis, including the streamer's background
// worker + pending-set shape (see PrefetchAsync) so a stalled chunk
// load never blocks the goroutine running the dispatch loop.
type KeyframeStore struct {
	objectID      uint32
	chunkDuration float32
	totalDuration float64
	pattern       PatternFunc
	adapter       *store.Adapter
	cache         *lru.Cache[uint32, KeyframeChunk]

	pendingMu sync.Mutex
	pending   map[uint32]struct{}
}

// NewKeyframeStore builds a store for one object. chunkDuration and
// totalDuration are both in milliseconds; cacheCapacity is the maximum
// number of decoded chunks held resident at once (C in spec §4.4; the
// engine passes config.GetCacheCapacity(), default 4).
func NewKeyframeStore(objectID uint32, chunkDuration float32, totalDuration float64, pattern PatternFunc, adapter *store.Adapter, cacheCapacity int) *KeyframeStore {
	return &KeyframeStore{
		objectID:      objectID,
		chunkDuration: chunkDuration,
		totalDuration: totalDuration,
		pattern:       pattern,
		adapter:       adapter,
		cache:         lru.New[uint32, KeyframeChunk](cacheCapacity, nil),
		pending:       make(map[uint32]struct{}),
	}
}

// ChunkCount returns the number of chunks spanning the object's track.
func (s *KeyframeStore) ChunkCount() int {
	return int(math.Ceil(float64(s.totalDuration) / float64(s.chunkDuration)))
}

// GenerateAndPersistAll runs the pattern function over every chunk in
// order and writes each through the adapter. When a chunk's pattern
// output does not already start exactly at the chunk boundary, a
// synthetic bracket frame — a copy of the previous chunk's final
// sample, retimed to this chunk's start — is prepended, so interpolation
// never sees a gap at a chunk seam (spec §4.4 cross-chunk continuity).
func (s *KeyframeStore) GenerateAndPersistAll(ctx context.Context) error {
	defer profiling.Track("track.generate_and_persist_all")()

	n := s.ChunkCount()
	var lastFrame *keyframe.Keyframe

	for i := 0; i < n; i++ {
		start := float32(i) * s.chunkDuration
		end := start + s.chunkDuration
		if end64 := float64(end); end64 > s.totalDuration {
			end = float32(s.totalDuration)
		}

		frames := s.pattern(start, end)
		if lastFrame != nil && (len(frames) == 0 || frames[0].Time > start) {
			bracket := keyframe.Keyframe{Time: start, X: lastFrame.X, Y: lastFrame.Y}
			frames = append([]keyframe.Keyframe{bracket}, frames...)
		}
		if len(frames) > 0 {
			f := frames[len(frames)-1]
			lastFrame = &f
		}

		if err := s.adapter.PutChunk(ctx, s.objectID, uint32(i), start, end, frames); err != nil {
			return err
		}
	}
	return nil
}

// Prefetch ensures the chunk containing playhead and its immediate
// successor are resident in the cache, fetching whichever are absent
// from the backing store, and blocks until both loads resolve. Missing
// chunks (never generated, or evicted from the store — should not
// happen once generated, but the store makes no promise beyond "not
// fatal") are left absent; a later InterpolatedAt call for that chunk
// simply reports ok=false. Chunks already resident are only promoted to
// most-recently-used. Used directly by tests that need the chunk
// resident before the next assertion; the dispatch loop uses the
// non-blocking PrefetchAsync instead.
func (s *KeyframeStore) Prefetch(ctx context.Context, playheadMs float64) error {
	defer profiling.Track("track.prefetch")()

	for _, key := range s.chunkKeysFor(playheadMs) {
		if s.cache.Has(key) {
			s.cache.Touch(key)
			continue
		}
		if err := s.loadChunk(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// PrefetchAsync schedules a background load for the chunk containing
// playhead and its immediate successor, returning without waiting for
// either to resolve (spec §5: "because update/render is a separate
// task, rendering continues" when a block-store call stalls — a
// synchronous fetch on the dispatch-loop goroutine would freeze every
// later task, including UpdateAndRender). Chunks already resident, or
// already being loaded by an earlier call, are skipped — the pending
// set is the same in-flight dedup world.ChunkStreamer's jobs/pending
// pair uses to avoid double-queuing a chunk. onError, if non-nil, is
// invoked from the background goroutine if a load fails; it must not
// block or touch Engine state directly.
func (s *KeyframeStore) PrefetchAsync(ctx context.Context, playheadMs float64, onError func(error)) {
	for _, key := range s.chunkKeysFor(playheadMs) {
		key := key
		if s.cache.Has(key) {
			s.cache.Touch(key)
			continue
		}

		s.pendingMu.Lock()
		if _, inFlight := s.pending[key]; inFlight {
			s.pendingMu.Unlock()
			continue
		}
		s.pending[key] = struct{}{}
		s.pendingMu.Unlock()

		go func() {
			defer profiling.Track("track.prefetch_async")()
			defer func() {
				s.pendingMu.Lock()
				delete(s.pending, key)
				s.pendingMu.Unlock()
			}()
			if err := s.loadChunk(ctx, key); err != nil && onError != nil {
				onError(err)
			}
		}()
	}
}

// loadChunk fetches one chunk through the adapter and, if present,
// installs it into the cache. The cache is safe for concurrent use, so
// this may run on the caller's goroutine (Prefetch) or a background one
// (PrefetchAsync) without a lock here.
func (s *KeyframeStore) loadChunk(ctx context.Context, key uint32) error {
	rec, ok, err := s.adapter.GetChunk(ctx, s.objectID, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.cache.Put(key, KeyframeChunk{
		ObjectID:   s.objectID,
		ChunkIndex: key,
		StartTime:  rec.StartTime,
		EndTime:    rec.EndTime,
		Frames:     rec.Keyframes,
	})
	return nil
}

// chunkKeysFor returns the chunk index containing playhead and its
// immediate successor, the pair Prefetch/PrefetchAsync both keep
// resident (spec §4.4 "prefetch loads the current chunk and the next").
func (s *KeyframeStore) chunkKeysFor(playheadMs float64) [2]uint32 {
	n := s.ChunkCount()
	idx := s.chunkIndexFor(playheadMs)
	next := (idx + 1) % n
	return [2]uint32{uint32(idx), uint32(next)}
}

// InterpolatedAt returns the object's position at an absolute playhead
// time, drawn from whichever chunk is currently resident. ok is false
// if that chunk has not been fetched into the cache yet (spec §4.4 —
// Prefetch must be called ahead of playback reaching new chunks) or
// carries no samples.
func (s *KeyframeStore) InterpolatedAt(playheadMs float64) (x, y float64, ok bool) {
	idx := uint32(s.chunkIndexFor(playheadMs))
	chunk, found := s.cache.Get(idx)
	if !found {
		return 0, 0, false
	}
	fx, fy, ok := chunk.InterpolateAt(float32(playheadMs))
	return float64(fx), float64(fy), ok
}

func (s *KeyframeStore) chunkIndexFor(playheadMs float64) int {
	n := s.ChunkCount()
	idx := int(math.Floor(playheadMs/float64(s.chunkDuration))) % n
	if idx < 0 {
		idx += n
	}
	return idx
}
