package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"radio-lab/contract"
	"radio-lab/errors"
	"radio-lab/runtime/workers"
	"time"
)

// TaskPool runs fire-and-forget tasks on a fixed number of supervised workers.
type TaskPool struct {
	log        *slog.Logger
	tasks      chan workers.Task
	numWorkers int
}

func NewTaskPool(log *slog.Logger, numWorkers, bufferSize int) *TaskPool {
	return &TaskPool{
		log:        log,
		tasks:      make(chan workers.Task, bufferSize),
		numWorkers: max(numWorkers, 1),
	}
}

// Workers returns the pool units to register on a supervisor.
func (p *TaskPool) Workers() []contract.Worker {
	res := make([]contract.Worker, 0, p.numWorkers)
	for i := 0; i < p.numWorkers; i++ {
		res = append(res, workers.NewPoolUnitWorker(p.tasks, p.log))
	}
	return res
}

// Submit queues a task without blocking.
func (p *TaskPool) Submit(name string, fn func(ctx context.Context)) error {
	select {
	case p.tasks <- workers.Task{Name: name, Run: fn, SubmittedAt: time.Now()}:
		return nil
	default:
		p.log.Warn("Task pool full, dropping task", "task", name, "capacity", cap(p.tasks))
		return fmt.Errorf("%w: %s", errors.ErrPoolSaturated, name)
	}
}

// Monitor samples the task queue and warns once it fills past threshold percent.
func (p *TaskPool) Monitor(interval time.Duration, threshold int) contract.Worker {
	return workers.NewChannelCapacityWorker(p.log, []workers.NamedChannel{
		{Name: "tasks", Channel: p.tasks},
	}, interval, threshold)
}

// Pending is the number of queued tasks.
func (p *TaskPool) Pending() int {
	return len(p.tasks)
}
