// Package parallel distributes row-slab work across goroutines for the
// composition routines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// minSlab is the smallest number of items worth handing to a goroutine.
// Per-pixel mapping is cheap, so tiny slabs cost more in scheduling than
// they save in wall time.
const minSlab = 1024

// Slabs runs fn over [0, n) split into contiguous slabs, using up to
// workers goroutines. If workers is 0 or negative, GOMAXPROCS is used.
// Small inputs run inline on the calling goroutine.
//
// fn must be safe to call concurrently for disjoint ranges. Slabs returns
// after every slab has completed.
func Slabs(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n <= minSlab {
		fn(0, n)
		return
	}

	// Aim for a few slabs per worker so a slow slab does not serialize
	// the tail, but never below minSlab items each.
	slab := n / (workers * 4)
	if slab < minSlab {
		slab = minSlab
	}
	nslabs := (n + slab - 1) / slab
	if workers > nslabs {
		workers = nslabs
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= nslabs {
					return
				}
				start := i * slab
				end := start + slab
				if end > n {
					end = n
				}
				fn(start, end)
			}
		}()
	}
	wg.Wait()
}
