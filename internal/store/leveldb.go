package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
)

// LevelDBBackend persists chunks to an on-disk LevelDB database, the same
// storage engine dragonfly (the pack's closest sibling to this spec's
// block store) uses for its own chunked world data. Every key written
// through PutChunk/GetChunk lives flat in the database; the namespace
// argument to DeleteAll is ignored, since a single engine instance owns
// exactly one namespace (spec §6).
type LevelDBBackend struct {
	db *leveldb.DB
}

// OpenLevelDBBackend opens (creating if absent) a LevelDB database at
// path for chunk persistence.
func OpenLevelDBBackend(path string) (*LevelDBBackend, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open leveldb at %s: %w", path, err)
	}
	return &LevelDBBackend{db: db}, nil
}

// Close releases the underlying database handle.
func (l *LevelDBBackend) Close() error {
	return l.db.Close()
}

func (l *LevelDBBackend) Put(_ context.Context, key string, value []byte) error {
	return l.db.Put([]byte(key), value, nil)
}

func (l *LevelDBBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, err := l.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// DeleteAll drops every key in the database. The adapter only ever uses
// one namespace per engine instance, so this is a full-database wipe
// rather than a prefix scan.
func (l *LevelDBBackend) DeleteAll(_ context.Context, _ string) error {
	iter := l.db.NewIterator(nil, nil)
	defer iter.Release()

	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	if err := iter.Error(); err != nil {
		return err
	}
	return l.db.Write(batch, nil)
}
