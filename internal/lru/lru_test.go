package lru

import "testing"

func TestPutEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []int
	c := New[int, string](2, func(k int, v string) { evicted = append(evicted, k) })

	c.Put(0, "a")
	c.Put(1, "b")
	c.Put(2, "c") // evicts 0

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if len(evicted) != 1 || evicted[0] != 0 {
		t.Fatalf("evicted = %v, want [0]", evicted)
	}
	if c.Has(0) {
		t.Fatalf("key 0 should have been evicted")
	}
	if !c.Has(1) || !c.Has(2) {
		t.Fatalf("keys 1 and 2 should be resident")
	}
}

func TestGetPromotesToMostRecentlyUsed(t *testing.T) {
	var evicted []int
	c := New[int, string](2, func(k int, v string) { evicted = append(evicted, k) })

	c.Put(0, "a")
	c.Put(1, "b")
	c.Get(0)       // touch 0, making 1 the least-recently-used
	c.Put(2, "c") // should evict 1, not 0

	if c.Has(1) {
		t.Fatalf("key 1 should have been evicted")
	}
	if !c.Has(0) || !c.Has(2) {
		t.Fatalf("keys 0 and 2 should be resident")
	}
}

func TestSequentialEvictionMatchesFourChunkScenario(t *testing.T) {
	// Mirrors spec scenario 2: C=2, N=4, prefetch(0..3) sequentially.
	c := New[int, int](2, nil)
	for i := 0; i < 4; i++ {
		c.Put(i, i)
	}
	if c.Has(0) || c.Has(1) {
		t.Fatalf("chunks 0 and 1 should have been evicted")
	}
	if !c.Has(2) || !c.Has(3) {
		t.Fatalf("chunks 2 and 3 should be resident")
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	c := New[int, int](4, nil)
	for i := 0; i < 100; i++ {
		c.Put(i, i)
		if c.Len() > 4 {
			t.Fatalf("Len = %d exceeds capacity after Put(%d)", c.Len(), i)
		}
	}
}
