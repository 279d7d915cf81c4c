package domain

import (
	"sync"
	"time"
)

// idSource issues session-unique identifiers. IDs are millisecond
// timestamps bumped past the previous value, so they stay unique even
// when several entities are created within the same millisecond and
// remain large integers in the persisted document.
type idSource struct {
	mu   sync.Mutex
	last int64
}

var ids idSource

// NextID returns a new unique identifier.
func NextID() int64 {
	ids.mu.Lock()
	defer ids.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= ids.last {
		id = ids.last + 1
	}
	ids.last = id
	return id
}

// SeedIDs advances the generator past every identifier already present in
// the given state. Called after loading a persisted snapshot so newly
// created entities cannot collide with stored ones.
func SeedIDs(state *AppState) {
	if state == nil {
		return
	}

	ids.mu.Lock()
	defer ids.mu.Unlock()

	bump := func(id int64) {
		if id > ids.last {
			ids.last = id
		}
	}

	for _, a := range state.BankAccounts {
		bump(a.ID)
	}
	for _, mb := range state.MonthlyData {
		for _, cat := range mb.Categories {
			bump(cat.ID)
		}
		for _, exp := range mb.Expenses {
			bump(exp.ID)
		}
	}
}
