// Package runner runs K independent chain drivers in parallel (spec §5:
// chains share no mutable state beyond the read-only couplings table, and
// may be distributed across seeds or β values). It replaces the original's
// multi-process worker pool with goroutines coordinated by an errgroup, the
// teacher's structured-concurrency idiom for a fan-out/fan-in worker set.
package runner

import (
	"context"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"isingmcmc/atomic_float"
)

// Task is one chain run: given its index among the batch, it returns a
// result of type T or an error. Index lets a caller vary seed or β per
// task deterministically.
type Task[T any] func(ctx context.Context, index int) (T, error)

// indexed pairs a result with the task index that produced it, so RunMany
// can return results in task order even though they may complete out of
// order.
type indexed[T any] struct {
	index int
	value T
}

// Progress reports how many of the batch's tasks have completed so far;
// it is safe to read concurrently with RunMany still running.
type Progress struct {
	completed atomic_float.AtomicFloat64
	total     int
}

// Completed returns how many tasks have finished.
func (p *Progress) Completed() int {
	return int(p.completed.AtomicRead())
}

// Total returns the batch size.
func (p *Progress) Total() int {
	return p.total
}

// RunMany runs len(tasks) Task values concurrently, each in its own
// goroutine under one errgroup so the first task error cancels the rest
// (spec §5's "no cooperative cancellation channel" is a driver-level
// statement; at the orchestration level above the drivers, cancellation is
// exactly what errgroup gives for free). Results are returned in task
// order. progress, if non-nil, is updated as each task finishes.
func RunMany[T any](ctx context.Context, tasks []Task[T], progress *Progress) ([]T, error) {
	if progress != nil {
		progress.total = len(tasks)
	}

	group, gctx := errgroup.WithContext(ctx)
	channels := make([]<-chan indexed[T], len(tasks))

	for i, task := range tasks {
		i, task := i, task
		out := make(chan indexed[T], 1)
		channels[i] = out
		group.Go(func() error {
			defer close(out)
			v, err := task(gctx, i)
			if err != nil {
				return err
			}
			select {
			case out <- indexed[T]{index: i, value: v}:
			case <-gctx.Done():
				return gctx.Err()
			}
			if progress != nil {
				progress.completed.AtomicIncrement()
			}
			return nil
		})
	}

	merged := channerics.Merge(gctx.Done(), channels...)
	results := make([]T, len(tasks))
	seen := make([]bool, len(tasks))
	for r := range merged {
		results[r.index] = r.value
		seen[r.index] = true
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(tasks))
	for i, ok := range seen {
		if ok {
			out = append(out, results[i])
		}
	}
	return out, nil
}
