// Package parallel splits independent per-row work across a bounded
// group of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves a requested worker count. Zero or negative means
// GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Rows calls fn once for every row in [0, height). Rows are grouped into
// contiguous bands, one band per worker; with a single worker the rows
// run in order on the calling goroutine.
//
// fn must only write state belonging to its own row. The first error
// returned by fn, or the context error, is returned after all started
// bands finish.
func Rows(ctx context.Context, height, workers int, fn func(y int) error) error {
	if height <= 0 {
		return nil
	}
	workers = min(Workers(workers), height)

	if workers == 1 {
		for y := range height {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(y); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	band := (height + workers - 1) / workers
	for start := 0; start < height; start += band {
		end := min(start+band, height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(y); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
