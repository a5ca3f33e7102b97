package itsuku

import (
	"runtime"
	"sync"
)

// parallelFor calls fn(i) for every i in [0,n), fanning out across a
// worker pool sized to GOMAXPROCS. It is used for the independent,
// non-cancellable batches of work spec.md §5 calls out as parallelizable:
// the P segments of X (memory.go) and the per-level hashing of MT
// (merkle.go). The cancellable nonce search in search.go is built on
// threadgroup instead, since it additionally needs a shared stop signal.
//
// No library in the example pack offers a generic bounded parallel-map;
// NebulousLabs/threadgroup tracks goroutine lifecycle for long-running,
// cancellable loops (network connections, the search loop below), not
// one-shot CPU-bound fan-out, so this stays on sync.WaitGroup and a job
// channel.
func parallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
