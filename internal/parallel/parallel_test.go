package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkers(t *testing.T) {
	if got := Workers(3); got != 3 {
		t.Errorf("Workers(3) = %d, want 3", got)
	}
	if got, want := Workers(0), runtime.GOMAXPROCS(0); got != want {
		t.Errorf("Workers(0) = %d, want %d", got, want)
	}
	if got, want := Workers(-1), runtime.GOMAXPROCS(0); got != want {
		t.Errorf("Workers(-1) = %d, want %d", got, want)
	}
}

func TestRowsVisitsEveryRowOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8, 100} {
		counts := make([]atomic.Int32, 37)
		err := Rows(context.Background(), len(counts), workers, func(y int) error {
			counts[y].Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("workers=%d: Rows failed: %v", workers, err)
		}
		for y := range counts {
			if n := counts[y].Load(); n != 1 {
				t.Errorf("workers=%d: row %d visited %d times", workers, y, n)
			}
		}
	}
}

func TestRowsSequentialOrder(t *testing.T) {
	var order []int
	err := Rows(context.Background(), 5, 1, func(y int) error {
		order = append(order, y)
		return nil
	})
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	for i, y := range order {
		if i != y {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
}

func TestRowsError(t *testing.T) {
	errBoom := errors.New("boom")
	for _, workers := range []int{1, 4} {
		err := Rows(context.Background(), 20, workers, func(y int) error {
			if y == 7 {
				return errBoom
			}
			return nil
		})
		if !errors.Is(err, errBoom) {
			t.Errorf("workers=%d: Rows error = %v, want boom", workers, err)
		}
	}
}

func TestRowsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Rows(ctx, 10, 1, func(int) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Rows error = %v, want context.Canceled", err)
	}
}

func TestRowsEmpty(t *testing.T) {
	called := false
	if err := Rows(context.Background(), 0, 4, func(int) error { called = true; return nil }); err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if called {
		t.Error("fn called for zero rows")
	}
}
