// Package parallel splits index ranges across goroutines.
package parallel

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/YuminosukeSato/randforest/pkg/errors"
)

// Parallelize splits [0, items) into at most workers contiguous chunks and
// runs fn on each chunk in its own goroutine. workers <= 0 means one per CPU.
// A panic inside fn is recovered and returned as a *errors.PanicError; the
// error of the lowest-numbered failing chunk is returned.
func Parallelize(items, workers int, fn func(start, end int) error) error {
	if items <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	chunkSize := (items + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			errs[w] = errors.SafeExecute(fmt.Sprintf("parallel chunk [%d, %d)", s, e), func() error {
				return fn(s, e)
			})
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items <= threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold, workers int, fn func(start, end int) error) error {
	if items <= threshold {
		return errors.SafeExecute("sequential chunk", func() error {
			return fn(0, items)
		})
	}
	return Parallelize(items, workers, fn)
}
