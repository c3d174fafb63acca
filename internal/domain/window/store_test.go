package window

import (
	"testing"
	"time"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := NewStore()

	first := s.Add(&types.WindowRecord{WindowType: types.WindowCharts})
	second := s.Add(&types.WindowRecord{WindowType: types.WindowTable})

	if first != 1 || second != 2 {
		t.Errorf("Expected ids 1 and 2, got %d and %d", first, second)
	}
	if s.NextID() != 3 {
		t.Errorf("Expected next id 3, got %d", s.NextID())
	}
}

func TestAddKeepsExplicitID(t *testing.T) {
	s := NewStore()

	s.Add(&types.WindowRecord{ID: 100, WindowType: types.WindowCharts})

	if s.MaxID() != 100 {
		t.Errorf("Expected max id 100, got %d", s.MaxID())
	}
	if id := s.Add(&types.WindowRecord{WindowType: types.WindowTable}); id != 101 {
		t.Errorf("Expected id 101 after explicit 100, got %d", id)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	id := s.Add(&types.WindowRecord{WindowType: types.WindowCharts})

	rec, ok := s.Get(id)
	if !ok {
		t.Fatal("Get failed")
	}
	rec.WindowType = types.WindowTable

	again, _ := s.Get(id)
	if again.WindowType != types.WindowCharts {
		t.Error("Mutating a returned record should not affect the store")
	}
}

func TestListOrderedByID(t *testing.T) {
	s := NewStore()
	s.Add(&types.WindowRecord{ID: 5, WindowType: types.WindowCharts})
	s.Add(&types.WindowRecord{ID: 2, WindowType: types.WindowTable})
	s.Add(&types.WindowRecord{ID: 9, WindowType: types.WindowVolume})

	recs := s.List()
	if len(recs) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(recs))
	}
	for i, want := range []int{2, 5, 9} {
		if recs[i].ID != want {
			t.Errorf("Expected id %d at index %d, got %d", want, i, recs[i].ID)
		}
	}
}

func TestCommitBatch(t *testing.T) {
	s := NewStore()

	s.Commit([]*types.WindowRecord{
		{ID: 11, WindowType: types.WindowCharts},
		{ID: 12, WindowType: types.WindowTable},
	})

	if s.Count() != 2 {
		t.Errorf("Expected 2 windows after commit, got %d", s.Count())
	}
	if _, ok := s.Get(12); !ok {
		t.Error("Committed record 12 missing")
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := NewStore()
	id := s.Add(&types.WindowRecord{WindowType: types.WindowCharts})

	if !s.Remove(id) {
		t.Error("Remove should succeed")
	}
	if s.Remove(id) {
		t.Error("Removing twice should fail")
	}

	s.Add(&types.WindowRecord{WindowType: types.WindowTable})
	s.Clear()
	if s.Count() != 0 {
		t.Errorf("Expected empty store after clear, got %d", s.Count())
	}
	if s.NextID() != 1 {
		t.Errorf("Expected next id 1 after clear, got %d", s.NextID())
	}
}

func TestSeedDemo(t *testing.T) {
	s := NewStore()
	ids := SeedDemo(s, time.Now())

	if len(ids) != 6 {
		t.Fatalf("Expected 6 demo windows, got %d", len(ids))
	}
	if s.Count() != 6 {
		t.Errorf("Expected 6 windows in store, got %d", s.Count())
	}

	cloud := false
	for _, rec := range s.List() {
		if rec.WindowType == types.WindowPointCloud {
			cloud = true
			if rec.State.PointCloud.TotalPoints != len(rec.State.PointCloud.Points) {
				t.Error("Demo point cloud violates the total-points invariant")
			}
		}
	}
	if !cloud {
		t.Error("Demo workspace should contain a point cloud window")
	}
}
