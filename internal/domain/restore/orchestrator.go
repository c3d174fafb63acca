// Package restore sequences UI window-open calls after an import, pacing
// each open with a fixed delay so the presentation layer is never flooded.
package restore

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pulto-app/pulto/backend/internal/logging"
	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

// DefaultInterval is the pacing delay between consecutive window opens
const DefaultInterval = 200 * time.Millisecond

// OpenWindowFunc is the external "open window by id" callback
type OpenWindowFunc func(ctx context.Context, id int) error

// Result summarizes one restore run
type Result struct {
	OpenedWindows []int  `json:"opened_windows"`
	FailedWindows []int  `json:"failed_windows"`
	TotalRestored int    `json:"total_restored"`
	Summary       string `json:"summary"`
}

// Orchestrator drives a strictly sequential restore
type Orchestrator struct {
	open     OpenWindowFunc
	interval time.Duration
	log      *logging.Logger
}

// NewOrchestrator creates an orchestrator with the default pacing interval
func NewOrchestrator(open OpenWindowFunc, log *logging.Logger) *Orchestrator {
	if log == nil {
		log = logging.NewNop()
	}
	return &Orchestrator{
		open:     open,
		interval: DefaultInterval,
		log:      log,
	}
}

// WithInterval overrides the pacing interval
func (o *Orchestrator) WithInterval(d time.Duration) *Orchestrator {
	o.interval = d
	return o
}

// Restore opens each imported window in order, one pacing delay apart.
// Cancelling the context stops the sequence between windows; windows
// already opened stay open and the summary reports partial restoration.
// Callback failures are recorded and do not stop the sequence.
func (o *Orchestrator) Restore(ctx context.Context, imported *types.ImportResult) *Result {
	result := &Result{
		OpenedWindows: []int{},
		FailedWindows: []int{},
	}
	total := len(imported.RestoredWindows)

	for i, rec := range imported.RestoredWindows {
		if ctx.Err() != nil {
			break
		}

		if err := o.open(ctx, rec.ID); err != nil {
			o.log.Warn("failed to open restored window", zap.Int("id", rec.ID), zap.Error(err))
			result.FailedWindows = append(result.FailedWindows, rec.ID)
		} else {
			result.OpenedWindows = append(result.OpenedWindows, rec.ID)
		}

		if i < total-1 {
			select {
			case <-ctx.Done():
			case <-time.After(o.interval):
			}
		}
	}

	result.TotalRestored = len(result.OpenedWindows)
	result.Summary = summarize(result.TotalRestored, total)
	return result
}

func summarize(opened, total int) string {
	switch {
	case total == 0:
		return "no windows to restore"
	case opened == total:
		return fmt.Sprintf("fully restored %d windows", total)
	case opened == 0:
		return "restore failed"
	default:
		return fmt.Sprintf("partially restored %d of %d windows", opened, total)
	}
}
