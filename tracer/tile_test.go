package tracer

import (
	"errors"
	"testing"
)

func TestPartition(t *testing.T) {
	type spec struct {
		w, h, tileSize int
		expTiles       int
		expLastCount   int
	}
	specs := []spec{
		{16, 16, 256, 1, 256},
		{32, 32, 256, 4, 256},
		{10, 10, 30, 4, 10},
		{7, 3, 1, 21, 1},
		{5, 5, 100, 1, 25},
		{640, 480, DefaultTileSize, 1200, 256},
	}

	for index, s := range specs {
		ranges, err := Partition(s.w, s.h, s.tileSize)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if len(ranges) != s.expTiles {
			t.Fatalf("[spec %d] expected %d tiles; got %d", index, s.expTiles, len(ranges))
		}
		if last := ranges[len(ranges)-1]; last.Count != s.expLastCount {
			t.Fatalf("[spec %d] expected last tile to have %d pixels; got %d", index, s.expLastCount, last.Count)
		}
	}
}

func TestPartitionCoversFrameExactly(t *testing.T) {
	for w := 1; w <= 20; w += 3 {
		for h := 1; h <= 20; h += 4 {
			for _, tileSize := range []int{1, 2, 7, 16, 64, 1000} {
				ranges, err := Partition(w, h, tileSize)
				if err != nil {
					t.Fatal(err)
				}

				covered := make([]int, w*h)
				next := 0
				for _, r := range ranges {
					if r.Start != next {
						t.Fatalf("[%dx%d/%d] expected range to start at %d; got %d", w, h, tileSize, next, r.Start)
					}
					if r.Count <= 0 || r.Count > tileSize {
						t.Fatalf("[%dx%d/%d] invalid range size %d", w, h, tileSize, r.Count)
					}
					for i := r.Start; i < r.End(); i++ {
						covered[i]++
					}
					next = r.End()
				}

				for pixel, count := range covered {
					if count != 1 {
						t.Fatalf("[%dx%d/%d] expected pixel %d to be covered once; got %d", w, h, tileSize, pixel, count)
					}
				}
			}
		}
	}
}

func TestPartitionErrors(t *testing.T) {
	type spec struct {
		w, h, tileSize int
		expErr         error
	}
	specs := []spec{
		{0, 10, 16, ErrEmptyFrame},
		{10, -1, 16, ErrEmptyFrame},
		{10, 10, 0, ErrInvalidTileSize},
		{10, 10, -4, ErrInvalidTileSize},
	}

	for index, s := range specs {
		_, err := Partition(s.w, s.h, s.tileSize)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}
