package renderer

import (
	"time"

	"github.com/smukherjee2016/sayo-pbr/accel/bvh"
	"github.com/smukherjee2016/sayo-pbr/tracer"
)

type TileStat struct {
	Range tracer.TileRange

	// Render time for the tile.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual tile stats in completion order.
	Tiles []TileStat

	// Tree build statistics.
	BVH bvh.Stats

	// Worker pool size and host CPU model.
	Workers  int
	CPUModel string

	// Pixels with NaN or infinite values.
	NonFinitePixels int

	// Total render time for entire frame (excluding the tree build).
	RenderTime time.Duration
}

// Sum of the per-tile render times.
func (s FrameStats) TileTime() time.Duration {
	var total time.Duration
	for _, tile := range s.Tiles {
		total += tile.RenderTime
	}
	return total
}
