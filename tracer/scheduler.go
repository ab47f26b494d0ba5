package tracer

import (
	"context"
	"fmt"

	"github.com/smukherjee2016/sayo-pbr/log"
	"golang.org/x/sync/errgroup"
)

// The Scheduler runs one task per tile on a bounded pool of goroutines and
// fans the completed tiles in over a single channel.
type Scheduler struct {
	logger log.Logger

	workers int
}

// Create a scheduler with the given pool size. A non-positive size selects
// DefaultWorkers().
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Scheduler{
		logger:  log.New("scheduler"),
		workers: workers,
	}
}

// Get the worker pool size.
func (s *Scheduler) Workers() int {
	return s.workers
}

// Run enqueues a task for every range and returns the completion channel
// and an error channel. The tile channel is closed once all tasks have
// finished; the error channel then yields the first task error, if any,
// and is closed.
//
// Each task checks ctx before it starts. The first failing task cancels
// the remaining ones. A panic inside a task is recovered and reported as a
// *TileError for the task's range.
func (s *Scheduler) Run(ctx context.Context, worker Worker, ranges []TileRange) (<-chan Tile, <-chan error) {
	tileCh := make(chan Tile, len(ranges))
	errCh := make(chan error, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	s.logger.Debugf("dispatching %d tiles to %d workers", len(ranges), s.workers)

	go func() {
		defer close(errCh)
		defer close(tileCh)

		dispatched := 0
		for _, r := range ranges {
			if gctx.Err() != nil {
				break
			}
			dispatched++

			r := r
			g.Go(func() (err error) {
				if err = gctx.Err(); err != nil {
					return err
				}

				defer func() {
					if p := recover(); p != nil {
						err = &TileError{Range: r, Cause: fmt.Errorf("panic: %v", p)}
					}
				}()

				tile, err := worker.TraceTile(gctx, r)
				if err != nil {
					if gctx.Err() != nil {
						return err
					}
					return &TileError{Range: r, Cause: err}
				}
				tileCh <- tile
				return nil
			})
		}

		err := g.Wait()
		if err == nil && dispatched < len(ranges) {
			err = ctx.Err()
		}
		if err != nil {
			s.logger.Debugf("render aborted: %v", err)
			errCh <- err
		}
	}()

	return tileCh, errCh
}

// Render runs all ranges and passes each completed tile to sink on the
// calling goroutine. Sink calls are never concurrent. An error from sink
// cancels the remaining tasks and is returned.
func (s *Scheduler) Render(ctx context.Context, worker Worker, ranges []TileRange, sink func(Tile) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tileCh, errCh := s.Run(ctx, worker, ranges)

	var sinkErr error
	for tile := range tileCh {
		if sinkErr != nil {
			continue
		}
		if sinkErr = sink(tile); sinkErr != nil {
			cancel()
		}
	}

	runErr := <-errCh
	if sinkErr != nil {
		return sinkErr
	}
	return runErr
}
