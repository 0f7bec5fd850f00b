package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolUnitWorker_RunsTasks(t *testing.T) {
	req := require.New(t)
	tasks := make(chan Task, 3)
	worker := NewPoolUnitWorker(tasks, slog.New(slog.DiscardHandler))

	var count atomic.Int32
	for range 3 {
		tasks <- Task{Name: "count", Run: func(ctx context.Context) { count.Add(1) }, SubmittedAt: time.Now()}
	}
	close(tasks)

	// Closing the channel ends the worker without error
	req.NoError(worker.Run(context.Background()))
	req.Equal(int32(3), count.Load())
}

func TestPoolUnitWorker_StopsOnCancel(t *testing.T) {
	req := require.New(t)
	worker := NewPoolUnitWorker(make(chan Task), slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req.ErrorIs(worker.Run(ctx), context.Canceled)
}
