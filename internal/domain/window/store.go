package window

import (
	"sort"
	"sync"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// Store holds all windows in the workspace
type Store struct {
	mu      sync.RWMutex
	windows map[int]*types.WindowRecord // Protected by mu
}

// NewStore creates an empty window store
func NewStore() *Store {
	return &Store{
		windows: make(map[int]*types.WindowRecord),
	}
}

// Add inserts a record, assigning the next free id when rec.ID is zero.
// Returns the id the record was stored under.
func (s *Store) Add(rec *types.WindowRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == 0 {
		rec.ID = s.maxIDLocked() + 1
	}
	stored := *rec
	s.windows[rec.ID] = &stored
	return rec.ID
}

// Commit inserts a batch of records in one mutation. Used by the import
// engine so a failed parse never leaves a partial workspace behind.
func (s *Store) Commit(recs []*types.WindowRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range recs {
		stored := *rec
		s.windows[rec.ID] = &stored
	}
}

// Get retrieves a window by id
func (s *Store) Get(id int) (*types.WindowRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.windows[id]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent external modifications
	recCopy := *rec
	return &recCopy, true
}

// List returns all windows ordered by ascending id
func (s *Store) List() []*types.WindowRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*types.WindowRecord, 0, len(s.windows))
	for _, rec := range s.windows {
		recCopy := *rec
		recs = append(recs, &recCopy)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs
}

// Remove deletes a window by id
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.windows[id]; !ok {
		return false
	}
	delete(s.windows, id)
	return true
}

// Clear removes every window
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.windows = make(map[int]*types.WindowRecord)
}

// Count returns the number of windows
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.windows)
}

// MaxID returns the highest id in use, or 0 for an empty store
func (s *Store) MaxID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.maxIDLocked()
}

// NextID returns the next free id (max + 1)
func (s *Store) NextID() int {
	return s.MaxID() + 1
}

// maxIDLocked computes the highest id; caller must hold the lock
func (s *Store) maxIDLocked() int {
	max := 0
	for id := range s.windows {
		if id > max {
			max = id
		}
	}
	return max
}
