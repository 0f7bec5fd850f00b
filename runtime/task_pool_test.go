package runtime

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"radio-lab/errors"
	"radio-lab/runtime/workers"

	"github.com/stretchr/testify/require"
)

func TestTaskPool_SubmitIsBounded(t *testing.T) {
	req := require.New(t)
	pool := NewTaskPool(slog.New(slog.DiscardHandler), 1, 2)

	noop := func(ctx context.Context) {}
	req.NoError(pool.Submit("first", noop))
	req.NoError(pool.Submit("second", noop))
	req.ErrorIs(pool.Submit("third", noop), errors.ErrPoolSaturated)
	req.Equal(2, pool.Pending())
}

func TestTaskPool_WorkersDrainTasks(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.DiscardHandler)
	pool := NewTaskPool(log, 3, 10)
	req.Len(pool.Workers(), 3)

	sup := workers.NewSupervisor(log, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Add(pool.Workers()...).Run(ctx)

	done := make(chan string, 5)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		req.NoError(pool.Submit(name, func(ctx context.Context) { done <- name }))
	}

	seen := map[string]bool{}
	for range 5 {
		select {
		case name := <-done:
			seen[name] = true
		case <-time.After(time.Second):
			req.Fail("task not executed")
		}
	}
	req.Len(seen, 5)
}
