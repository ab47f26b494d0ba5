package tracer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smukherjee2016/sayo-pbr/types"
)

// Fills each pixel with its own index.
type mockWorker struct {
	active    int32
	maxActive int32
	calls     int32

	delay   time.Duration
	panicAt int
	failAt  int
	failErr error
}

func newMockWorker() *mockWorker {
	return &mockWorker{panicAt: -1, failAt: -1}
}

func (w *mockWorker) TraceTile(ctx context.Context, r TileRange) (Tile, error) {
	atomic.AddInt32(&w.calls, 1)
	n := atomic.AddInt32(&w.active, 1)
	defer atomic.AddInt32(&w.active, -1)
	for {
		max := atomic.LoadInt32(&w.maxActive)
		if n <= max || atomic.CompareAndSwapInt32(&w.maxActive, max, n) {
			break
		}
	}

	if w.delay > 0 {
		time.Sleep(w.delay)
	}
	if r.Start == w.panicAt {
		panic("boom")
	}
	if r.Start == w.failAt {
		return Tile{}, w.failErr
	}

	tile := Tile{TileRange: r, Pixels: make([]types.Vec3, r.Count)}
	for i := range tile.Pixels {
		tile.Pixels[i] = types.Splat(float64(r.Start + i))
	}
	return tile, nil
}

func collect(t *testing.T, s *Scheduler, worker Worker, ranges []TileRange) ([]types.Vec3, error) {
	t.Helper()
	frame := make([]types.Vec3, ranges[len(ranges)-1].End())
	err := s.Render(context.Background(), worker, ranges, func(tile Tile) error {
		copy(frame[tile.Start:tile.End()], tile.Pixels)
		return nil
	})
	return frame, err
}

func TestSchedulerDeliversEveryTile(t *testing.T) {
	ranges, err := Partition(37, 11, 16)
	if err != nil {
		t.Fatal(err)
	}

	for _, workers := range []int{1, 3, 8} {
		s := NewScheduler(workers)
		seen := make(map[int]int)

		tileCh, errCh := s.Run(context.Background(), newMockWorker(), ranges)
		for tile := range tileCh {
			seen[tile.Start]++
			if len(tile.Pixels) != tile.Count {
				t.Fatalf("[workers %d] expected tile %s to have %d pixels; got %d", workers, tile.TileRange, tile.Count, len(tile.Pixels))
			}
		}
		if err := <-errCh; err != nil {
			t.Fatalf("[workers %d] unexpected error: %v", workers, err)
		}

		if len(seen) != len(ranges) {
			t.Fatalf("[workers %d] expected %d tiles; got %d", workers, len(ranges), len(seen))
		}
		for start, count := range seen {
			if count != 1 {
				t.Fatalf("[workers %d] expected tile at %d to be delivered once; got %d", workers, start, count)
			}
		}
	}
}

func TestSchedulerOutputIndependentOfWorkerCount(t *testing.T) {
	ranges, err := Partition(64, 48, 100)
	if err != nil {
		t.Fatal(err)
	}

	expFrame, err := collect(t, NewScheduler(1), newMockWorker(), ranges)
	if err != nil {
		t.Fatal(err)
	}
	for pixel, value := range expFrame {
		if value != types.Splat(float64(pixel)) {
			t.Fatalf("expected pixel %d to hold its index; got %s", pixel, value)
		}
	}

	for _, workers := range []int{2, 4, 16} {
		frame, err := collect(t, NewScheduler(workers), newMockWorker(), ranges)
		if err != nil {
			t.Fatal(err)
		}
		for pixel := range frame {
			if frame[pixel] != expFrame[pixel] {
				t.Fatalf("[workers %d] pixel %d differs: %s vs %s", workers, pixel, frame[pixel], expFrame[pixel])
			}
		}
	}
}

func TestSchedulerRespectsPoolSize(t *testing.T) {
	ranges, err := Partition(32, 32, 16)
	if err != nil {
		t.Fatal(err)
	}

	worker := newMockWorker()
	worker.delay = time.Millisecond
	if _, err := collect(t, NewScheduler(3), worker, ranges); err != nil {
		t.Fatal(err)
	}

	if max := atomic.LoadInt32(&worker.maxActive); max > 3 {
		t.Fatalf("expected at most 3 concurrent tasks; got %d", max)
	}
	if calls := atomic.LoadInt32(&worker.calls); int(calls) != len(ranges) {
		t.Fatalf("expected %d tasks; got %d", len(ranges), calls)
	}
}

func TestSchedulerRecoversPanics(t *testing.T) {
	ranges, err := Partition(16, 16, 16)
	if err != nil {
		t.Fatal(err)
	}

	worker := newMockWorker()
	worker.panicAt = 32
	_, err = collect(t, NewScheduler(4), worker, ranges)

	var tileErr *TileError
	if !errors.As(err, &tileErr) {
		t.Fatalf("expected a TileError; got %v", err)
	}
	if exp := (TileRange{Start: 32, Count: 16}); tileErr.Range != exp {
		t.Fatalf("expected failed range %s; got %s", exp, tileErr.Range)
	}
}

func TestSchedulerReportsWorkerErrors(t *testing.T) {
	ranges, err := Partition(16, 16, 16)
	if err != nil {
		t.Fatal(err)
	}

	errBoom := errors.New("boom")
	worker := newMockWorker()
	worker.failAt = 0
	worker.failErr = errBoom
	_, err = collect(t, NewScheduler(1), worker, ranges)

	var tileErr *TileError
	if !errors.As(err, &tileErr) || !errors.Is(err, errBoom) {
		t.Fatalf("expected a TileError wrapping %v; got %v", errBoom, err)
	}
	if tileErr.Range.Start != 0 {
		t.Fatalf("expected failed range to start at 0; got %s", tileErr.Range)
	}

	// The failure cancels the remaining tasks
	if calls := atomic.LoadInt32(&worker.calls); int(calls) == len(ranges) {
		t.Fatalf("expected remaining tasks to be cancelled; all %d ran", calls)
	}
}

func TestSchedulerCancellation(t *testing.T) {
	ranges, err := Partition(64, 64, 16)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	worker := newMockWorker()
	err = NewScheduler(2).Render(ctx, worker, ranges, func(Tile) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
	if calls := atomic.LoadInt32(&worker.calls); calls != 0 {
		t.Fatalf("expected no tasks to run; got %d", calls)
	}
}

func TestSchedulerSinkError(t *testing.T) {
	ranges, err := Partition(64, 64, 16)
	if err != nil {
		t.Fatal(err)
	}

	errSink := errors.New("sink failed")
	var sinkCalls int
	err = NewScheduler(2).Render(context.Background(), newMockWorker(), ranges, func(Tile) error {
		sinkCalls++
		return errSink
	})
	if err != errSink {
		t.Fatalf("expected sink error; got %v", err)
	}
	if sinkCalls != 1 {
		t.Fatalf("expected sink to be called once; got %d", sinkCalls)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() <= 0 {
		t.Fatal("expected a positive worker count")
	}
	if s := NewScheduler(0); s.Workers() != DefaultWorkers() {
		t.Fatalf("expected scheduler to default to %d workers; got %d", DefaultWorkers(), s.Workers())
	}
}
