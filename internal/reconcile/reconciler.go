// Package reconcile implements the overdue-task sweep: active tasks whose
// due instant has passed are transitioned to completed. The sweep runs on
// startup and on a fixed interval, is idempotent, and never surfaces errors
// to the user.
package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/state"
)

// DefaultInterval is used by Start when the configured interval is not a
// positive duration.
const DefaultInterval = 60 * time.Second

type Reconciler struct {
	state *state.Manager
	log   logging.Logger
}

func New(m *state.Manager, log logging.Logger) *Reconciler {
	return &Reconciler{state: m, log: log.With("component", "reconcile")}
}

// DueInstant computes the point in time a task is due in local wall-clock
// time: the due date combined with the due time if present, else end of day
// (23:59:59.999). The second return value is false when the task has no due
// date or a timestamp fails to parse; such tasks are skipped.
func DueInstant(task models.Task) (time.Time, bool) {
	if task.DueDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation("2006-01-02", task.DueDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	if task.DueTime != "" {
		clock, err := time.Parse("15:04", task.DueTime)
		if err != nil {
			return time.Time{}, false
		}
		return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), true
	}

	return day.Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond), true
}

// RunOnce performs one sweep and returns how many tasks were transitioned.
// All transitions of a sweep are persisted in one batch.
func (r *Reconciler) RunOnce(ctx context.Context) int {
	sweepID := uuid.NewString()
	changed := 0

	_ = r.state.Update(ctx, func(st *state.AppState) (bool, error) {
		now := r.state.Now()
		for i := range st.Tasks {
			task := &st.Tasks[i]
			if task.Status != models.StatusActive {
				continue
			}
			due, ok := DueInstant(*task)
			if !ok {
				continue
			}
			if now.After(due) {
				task.Status = models.StatusCompleted
				task.UpdatedAt = now
				changed++
			}
		}
		return changed > 0, nil
	})

	if changed > 0 {
		r.log.Info(ctx, "marked overdue tasks completed", "sweep", sweepID, "count", changed)
	} else {
		r.log.Debug(ctx, "sweep found nothing overdue", "sweep", sweepID)
	}
	return changed
}

// Start sweeps immediately, then on every tick of interval until ctx is
// done. A zero or negative interval falls back to DefaultInterval rather
// than aborting the loop. Intended to run on its own goroutine.
func (r *Reconciler) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		r.log.Warn(ctx, "invalid reconcile interval, using default",
			"interval", interval, "default", DefaultInterval)
		interval = DefaultInterval
	}

	r.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.RunOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}
