package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ScanlineRange is a contiguous range of image rows [Start, End)
type ScanlineRange struct {
	Start, End int
}

// Len returns the number of rows in the range
func (r ScanlineRange) Len() int {
	return r.End - r.Start
}

// PartitionScanlines splits height rows into one contiguous range per
// worker. Every range holds ceil(height/workers) rows except the last, which
// is clipped; workers that would get no rows are dropped.
func PartitionScanlines(height, workers int) []ScanlineRange {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}

	chunk := (height + workers - 1) / workers
	ranges := make([]ScanlineRange, 0, workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= height {
			break
		}
		ranges = append(ranges, ScanlineRange{Start: start, End: min(start+chunk, height)})
	}
	return ranges
}

// WorkerPool runs one goroutine per scan-line range. Ranges are fixed up
// front; there is no work stealing.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run partitions height rows across the workers, calls fn for each range
// concurrently and waits for all of them
func (wp *WorkerPool) Run(height int, fn func(worker int, rows ScanlineRange) error) error {
	var g errgroup.Group
	for worker, rows := range PartitionScanlines(height, wp.numWorkers) {
		g.Go(func() error {
			return fn(worker, rows)
		})
	}
	return g.Wait()
}
