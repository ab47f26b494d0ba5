package renderer

import (
	"errors"
	"testing"

	"github.com/smukherjee2016/sayo-pbr/tracer"
	"github.com/smukherjee2016/sayo-pbr/types"
)

func makeTile(start, count int, value float64) tracer.Tile {
	tile := tracer.Tile{
		TileRange: tracer.TileRange{Start: start, Count: count},
		Pixels:    make([]types.Vec3, count),
	}
	for i := range tile.Pixels {
		tile.Pixels[i] = types.Splat(value)
	}
	return tile
}

func TestNewFrameBufferIsGray(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	if len(fb.Pixels) != 6 {
		t.Fatalf("expected 6 pixels; got %d", len(fb.Pixels))
	}
	for index, pixel := range fb.Pixels {
		if pixel != types.Splat(0.5) {
			t.Fatalf("expected pixel %d to be gray; got %s", index, pixel)
		}
	}
}

func TestFrameBufferMergeOrderIndependence(t *testing.T) {
	tiles := []tracer.Tile{makeTile(0, 4, 1), makeTile(4, 4, 2), makeTile(8, 2, 3)}

	fb1 := NewFrameBuffer(5, 2)
	for _, tile := range tiles {
		if err := fb1.Merge(tile); err != nil {
			t.Fatal(err)
		}
	}
	fb2 := NewFrameBuffer(5, 2)
	for i := len(tiles) - 1; i >= 0; i-- {
		if err := fb2.Merge(tiles[i]); err != nil {
			t.Fatal(err)
		}
	}

	for index := range fb1.Pixels {
		if fb1.Pixels[index] != fb2.Pixels[index] {
			t.Fatalf("pixel %d differs: %s vs %s", index, fb1.Pixels[index], fb2.Pixels[index])
		}
	}
	if got := fb1.At(4, 1); got != types.Splat(3) {
		t.Fatalf("expected pixel (4, 1) to come from the last tile; got %s", got)
	}
	if got := fb1.At(3, 0); got != types.Splat(1) {
		t.Fatalf("expected pixel (3, 0) to come from the first tile; got %s", got)
	}
}

func TestFrameBufferMergeValidation(t *testing.T) {
	type spec struct {
		tile   tracer.Tile
		expErr error
	}
	short := makeTile(0, 4, 1)
	short.Pixels = short.Pixels[:2]

	specs := []spec{
		{makeTile(8, 4, 1), ErrTileOutOfRange},
		{makeTile(-1, 2, 1), ErrTileOutOfRange},
		{short, ErrShortTile},
		{makeTile(6, 4, 1), nil},
	}

	for index, s := range specs {
		fb := NewFrameBuffer(5, 2)
		err := fb.Merge(s.tile)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}
