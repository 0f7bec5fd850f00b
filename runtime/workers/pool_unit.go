package workers

import (
	"context"
	"log/slog"
	"radio-lab/contract"
	"time"
)

// Ensure *PoolUnitWorker implements the contract.Worker interface at compile time.
var _ contract.Worker = (*PoolUnitWorker)(nil)

// Task is a fire-and-forget unit of work run by a pool unit.
type Task struct {
	Name        string
	Run         func(ctx context.Context)
	SubmittedAt time.Time
}

// PoolUnitWorker executes tasks one at a time. Several units share the same
// channel to form a bounded pool.
type PoolUnitWorker struct {
	tasks chan Task
	log   *slog.Logger
}

func NewPoolUnitWorker(tasks chan Task, log *slog.Logger) *PoolUnitWorker {
	return &PoolUnitWorker{tasks: tasks, log: log}
}

func (w *PoolUnitWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping pool worker")
			return ctx.Err()
		case task, ok := <-w.tasks:
			if !ok {
				w.log.Debug("Task channel is closed")
				return nil
			}
			w.log.Debug("Running task", "task", task.Name, "waited", time.Since(task.SubmittedAt))
			task.Run(ctx)
		}
	}
}
