package domain

import (
	"sync"
	"testing"
)

func TestNextID_Monotonic(t *testing.T) {
	prev := NextID()
	for i := 0; i < 1000; i++ {
		id := NextID()
		if id <= prev {
			t.Fatalf("Expected strictly increasing ids, got %d after %d", id, prev)
		}
		prev = id
	}
}

func TestNextID_ConcurrentUnique(t *testing.T) {
	const n = 500
	var wg sync.WaitGroup
	results := make([]int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = NextID()
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, id := range results {
		if seen[id] {
			t.Fatalf("Duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestSeedIDs_AdvancesPastStoredIDs(t *testing.T) {
	high := NextID() + 1_000_000

	state := NewAppState()
	state.BankAccounts = append(state.BankAccounts, Account{ID: high, Name: "Checking"})
	SeedIDs(state)

	if id := NextID(); id <= high {
		t.Errorf("Expected id past %d, got %d", high, id)
	}
}

func TestSeedIDs_NilState(t *testing.T) {
	SeedIDs(nil) // must not panic
}
