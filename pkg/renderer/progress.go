package renderer

import (
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ProgressFunc receives the number of finished scan-lines out of total.
// It may be called concurrently from several workers.
type ProgressFunc func(completed, total int)

// LogProgress returns a ProgressFunc that prints the completed percentage
// whenever it changes
func LogProgress(logger core.Logger) ProgressFunc {
	var last atomic.Int64
	last.Store(-1)

	return func(completed, total int) {
		percent := int64(100 * completed / total)
		for {
			prev := last.Load()
			if percent <= prev {
				return
			}
			if last.CompareAndSwap(prev, percent) {
				logger.Printf("Progress: %d%%\n", percent)
				return
			}
		}
	}
}

// progressTracker counts finished scan-lines across workers
type progressTracker struct {
	completed atomic.Int64
	total     int
	report    ProgressFunc
}

func newProgressTracker(total int, report ProgressFunc) *progressTracker {
	return &progressTracker{total: total, report: report}
}

// lineDone records one finished scan-line
func (p *progressTracker) lineDone() {
	completed := p.completed.Add(1)
	if p.report != nil {
		p.report(int(completed), p.total)
	}
}

func (p *progressTracker) Completed() int {
	return int(p.completed.Load())
}
