package runner

import (
	"context"
	"errors"
	"testing"
)

func TestRunManyReturnsResultsInTaskOrder(t *testing.T) {
	tasks := make([]Task[int], 8)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context, index int) (int, error) {
			return index * index, nil
		}
	}

	results, err := RunMany(context.Background(), tasks, nil)
	if err != nil {
		t.Fatalf("RunMany: %v", err)
	}
	for i, v := range results {
		if v != i*i {
			t.Fatalf("results[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestRunManyPropagatesFirstError(t *testing.T) {
	wantErr := errors.New("boom")
	tasks := []Task[int]{
		func(ctx context.Context, index int) (int, error) { return 1, nil },
		func(ctx context.Context, index int) (int, error) { return 0, wantErr },
	}

	_, err := RunMany(context.Background(), tasks, nil)
	if err != wantErr {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestRunManyTracksProgress(t *testing.T) {
	tasks := make([]Task[int], 5)
	for i := range tasks {
		tasks[i] = func(ctx context.Context, index int) (int, error) { return index, nil }
	}

	var progress Progress
	results, err := RunMany(context.Background(), tasks, &progress)
	if err != nil {
		t.Fatalf("RunMany: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("len(results) = %d, want 5", len(results))
	}
	if progress.Total() != 5 {
		t.Fatalf("Total() = %d, want 5", progress.Total())
	}
	if progress.Completed() != 5 {
		t.Fatalf("Completed() = %d, want 5", progress.Completed())
	}
}
