// Package parallel provides fork-join helpers for data-parallel loops over
// independent elements. All functions block until every iteration has run.
package parallel

import (
	"runtime"
	"sync"
)

// For runs fn(i) for every i in [0, n) across GOMAXPROCS goroutines and
// waits for completion. Iterations must not depend on each other; no
// ordering is guaranteed. For small n the loop runs inline.
func For(n int, fn func(i int)) {
	ForN(runtime.GOMAXPROCS(0), n, fn)
}

// ForN is For with an explicit worker count. workers <= 1 runs inline,
// which keeps single-threaded callers and tests deterministic.
func ForN(workers, n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	// Contiguous chunks: cheap to hand out and cache friendly for the
	// per-grid slices the reshape loops iterate.
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		begin := w * chunk
		end := begin + chunk
		if end > n {
			end = n
		}
		if begin >= end {
			break
		}
		wg.Add(1)
		go func(begin, end int) {
			defer wg.Done()
			for i := begin; i < end; i++ {
				fn(i)
			}
		}(begin, end)
	}
	wg.Wait()
}
