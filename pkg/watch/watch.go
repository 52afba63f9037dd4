package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 200 * time.Millisecond

// Options configures Watch
type Options struct {
	Debounce time.Duration // Quiet period before onChange runs
	Logger   core.Logger
}

// Watch calls onChange every time the file at path is written or
// recreated, until ctx is cancelled. The parent directory is watched so that
// editors that replace the file on save are still seen. Errors returned by
// onChange are logged and watching continues.
func Watch(ctx context.Context, path string, opts Options, onChange func(context.Context) error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}

	target := filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(opts.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Printf("Watch error: %v\n", err)

		case <-timer.C:
			opts.Logger.Printf("%s changed, re-rendering\n", target)
			if err := onChange(ctx); err != nil {
				opts.Logger.Printf("Re-render failed: %v\n", err)
			}
		}
	}
}
