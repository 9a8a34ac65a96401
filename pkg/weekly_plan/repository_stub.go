package weekly_plan

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu      sync.Mutex
	entries map[int]PlanEntry // slot -> entry
	// insertErr is returned by InsertEntry once failAfter inserts have succeeded.
	insertErr   error
	failAfter   int
	insertCalls int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		entries: make(map[int]PlanEntry),
	}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	original := make(map[int]PlanEntry, len(r.entries))
	for k, v := range r.entries {
		original[k] = v
	}
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.entries = original
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *RepositoryStub) ClearPlan(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.entries)
	r.entries = make(map[int]PlanEntry)
	return count, nil
}

func (r *RepositoryStub) InsertEntry(ctx context.Context, entry PlanEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insertCalls++
	if r.insertErr != nil && r.insertCalls > r.failAfter {
		return r.insertErr
	}
	slot := Slot(entry.Day, entry.Category)
	if slot < 0 {
		return fmt.Errorf("%w: no cell for %s %s", ErrIncompletePlan, entry.Day, entry.Category)
	}
	if _, exists := r.entries[slot]; exists {
		return fmt.Errorf("plan entry for %s %s already exists", entry.Day, entry.Category)
	}
	r.entries[slot] = entry
	return nil
}

func (r *RepositoryStub) ListEntries(ctx context.Context) ([]PlanEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots := make([]int, 0, len(r.entries))
	for slot := range r.entries {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	result := make([]PlanEntry, 0, len(slots))
	for _, slot := range slots {
		result = append(result, r.entries[slot])
	}
	return result, nil
}

func (r *RepositoryStub) CountEntries(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries), nil
}

// FailInsertsAfter makes every InsertEntry call after the first n return err.
func (r *RepositoryStub) FailInsertsAfter(n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failAfter = n
	r.insertErr = err
	r.insertCalls = 0
}

// Reset clears the stub (useful between tests)
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[int]PlanEntry)
	r.insertErr = nil
	r.failAfter = 0
	r.insertCalls = 0
}
