package restore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

func importedWindows(ids ...int) *types.ImportResult {
	result := &types.ImportResult{}
	for _, id := range ids {
		result.RestoredWindows = append(result.RestoredWindows, &types.WindowRecord{
			ID:         id,
			WindowType: types.WindowCharts,
		})
	}
	return result
}

func TestRestoreEmpty(t *testing.T) {
	o := NewOrchestrator(func(ctx context.Context, id int) error {
		t.Error("open should never be called for an empty import")
		return nil
	}, nil)

	result := o.Restore(context.Background(), importedWindows())
	if result.TotalRestored != 0 {
		t.Errorf("Expected 0 restored, got %d", result.TotalRestored)
	}
	if result.Summary != "no windows to restore" {
		t.Errorf("Unexpected summary: %q", result.Summary)
	}
}

func TestRestoreOpensInOrder(t *testing.T) {
	var opened []int
	o := NewOrchestrator(func(ctx context.Context, id int) error {
		opened = append(opened, id)
		return nil
	}, nil).WithInterval(time.Millisecond)

	result := o.Restore(context.Background(), importedWindows(11, 12, 13))

	for i, want := range []int{11, 12, 13} {
		if opened[i] != want {
			t.Errorf("Expected id %d at position %d, got %d", want, i, opened[i])
		}
	}
	if result.TotalRestored != 3 {
		t.Errorf("Expected 3 restored, got %d", result.TotalRestored)
	}
	if result.Summary != "fully restored 3 windows" {
		t.Errorf("Unexpected summary: %q", result.Summary)
	}
}

func TestRestoreRecordsFailures(t *testing.T) {
	o := NewOrchestrator(func(ctx context.Context, id int) error {
		if id == 12 {
			return errors.New("window chrome unavailable")
		}
		return nil
	}, nil).WithInterval(time.Millisecond)

	result := o.Restore(context.Background(), importedWindows(11, 12, 13))

	if len(result.FailedWindows) != 1 || result.FailedWindows[0] != 12 {
		t.Errorf("Expected failed windows [12], got %v", result.FailedWindows)
	}
	if len(result.OpenedWindows) != 2 {
		t.Errorf("Expected 2 opened windows, got %v", result.OpenedWindows)
	}
	if result.Summary != "partially restored 2 of 3 windows" {
		t.Errorf("Unexpected summary: %q", result.Summary)
	}
}

func TestRestoreAllFailed(t *testing.T) {
	o := NewOrchestrator(func(ctx context.Context, id int) error {
		return errors.New("no presentation layer")
	}, nil).WithInterval(time.Millisecond)

	result := o.Restore(context.Background(), importedWindows(1, 2))
	if result.Summary != "restore failed" {
		t.Errorf("Unexpected summary: %q", result.Summary)
	}
}

func TestRestoreCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var opened []int
	o := NewOrchestrator(func(ctx context.Context, id int) error {
		opened = append(opened, id)
		cancel() // stop after the first open
		return nil
	}, nil).WithInterval(time.Millisecond)

	result := o.Restore(ctx, importedWindows(1, 2, 3))

	if len(opened) != 1 {
		t.Fatalf("Expected exactly 1 open before cancellation, got %v", opened)
	}
	if result.TotalRestored != 1 {
		t.Errorf("Expected 1 restored, got %d", result.TotalRestored)
	}
	if result.Summary != "partially restored 1 of 3 windows" {
		t.Errorf("Unexpected summary: %q", result.Summary)
	}
}
