// Package store wraps the external, persistent block key/value store the
// spec places out of scope (§6): an async put/get/delete-all collaborator
// keyed by (object_id, chunk_index). Backend is the host interface; this
// package supplies the adapter that serializes chunks against it plus two
// concrete Backends (in-memory and LevelDB-backed) for tests and the
// reference demo.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrStoreUnavailable is returned by a Backend when the underlying store
// cannot be reached. The adapter treats it as a StoreError per spec §7.
var ErrStoreUnavailable = errors.New("store: backend unavailable")

// Namespace and database names per spec §6.
const (
	Database  = "keyframe_db"
	Namespace = "keyframe_chunks"
)

// Backend is the external block key/value store the core consumes
// through an interface only — it is never implemented against the core,
// the core is implemented against it. Keys are opaque strings built
// by the adapter; Get returns (nil, false, nil) for a missing key.
type Backend interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	DeleteAll(ctx context.Context, namespace string) error
}

// Key builds the composite "{object_id}_{chunk_index}" key spec §6 names.
func Key(objectID uint32, chunkIndex uint32) string {
	return fmt.Sprintf("%d_%d", objectID, chunkIndex)
}

// StoreError wraps a Backend failure with the operation and key that
// failed, so callers can log a useful message without the adapter
// needing its own logger.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
