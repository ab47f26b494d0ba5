package tracer

import (
	"fmt"
	"time"

	"github.com/smukherjee2016/sayo-pbr/types"
)

// Default number of pixels per tile (a 16x16 block).
const DefaultTileSize = 256

// A TileRange is a contiguous run of pixel indices [Start, Start+Count) in
// row-major order.
type TileRange struct {
	Start int
	Count int
}

// End returns the exclusive end index of the range.
func (r TileRange) End() int {
	return r.Start + r.Count
}

func (r TileRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End())
}

// A Tile carries the traced pixel values for a range. It is filled by
// exactly one task and consumed once by the framebuffer merge.
type Tile struct {
	TileRange

	// One value per pixel in the range.
	Pixels []types.Vec3

	// Number of pixels whose value was NaN or infinite.
	NonFinite int

	// Time spent tracing the tile.
	RenderTime time.Duration
}

// Partition splits a width x height frame into contiguous tile ranges of
// tileSize pixels. The ranges are disjoint and cover [0, width*height)
// exactly; the last range is shorter when the pixel count is not a multiple
// of tileSize.
func Partition(width, height, tileSize int) ([]TileRange, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyFrame, width, height)
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTileSize, tileSize)
	}

	numPixels := width * height
	ranges := make([]TileRange, 0, (numPixels+tileSize-1)/tileSize)
	for start := 0; start < numPixels; start += tileSize {
		count := tileSize
		if start+count > numPixels {
			count = numPixels - start
		}
		ranges = append(ranges, TileRange{Start: start, Count: count})
	}
	return ranges, nil
}
