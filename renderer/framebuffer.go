package renderer

import (
	"fmt"

	"github.com/smukherjee2016/sayo-pbr/tracer"
	"github.com/smukherjee2016/sayo-pbr/types"
)

// Initial value for pixels that no tile has written yet.
var clearColor = types.Splat(0.5)

// A FrameBuffer holds linear RGB values in row-major order. Row 0 is the
// bottom row of the image.
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []types.Vec3
}

// Create a framebuffer cleared to mid-gray.
func NewFrameBuffer(width, height int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]types.Vec3, width*height),
	}
	for i := range fb.Pixels {
		fb.Pixels[i] = clearColor
	}
	return fb
}

// Merge copies the tile pixels into [Start, Start+Count). Tiles may be
// merged in any order; disjoint ranges never interact.
func (fb *FrameBuffer) Merge(tile tracer.Tile) error {
	if tile.Start < 0 || tile.Count < 0 || tile.End() > len(fb.Pixels) {
		return fmt.Errorf("%w: %s not within [0, %d)", ErrTileOutOfRange, tile.TileRange, len(fb.Pixels))
	}
	if len(tile.Pixels) < tile.Count {
		return fmt.Errorf("%w: range %s, %d pixels", ErrShortTile, tile.TileRange, len(tile.Pixels))
	}

	copy(fb.Pixels[tile.Start:tile.End()], tile.Pixels[:tile.Count])
	return nil
}

// Get the pixel at (x, y).
func (fb *FrameBuffer) At(x, y int) types.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}
