package renderer

import (
	"fmt"
	"math"

	"github.com/smukherjee2016/sayo-pbr/accel/bvh"
	"github.com/smukherjee2016/sayo-pbr/geometry"
	"github.com/smukherjee2016/sayo-pbr/tracer"
)

type Options struct {
	// Frame dims. Zero values keep the scene film resolution.
	FrameW int
	FrameH int

	// Number of samples.
	SamplesPerPixel int

	// Number of bounces traced per sample.
	NumBounces int

	// Pixels per tile.
	TileSize int

	// Worker pool size. Zero selects the number of logical CPUs.
	Workers int

	// BVH split strategy name ("median" or "sah").
	Split string

	// Parametric interval for camera rays.
	TMin float64
	TMax float64
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		SamplesPerPixel: 1,
		NumBounces:      1,
		TileSize:        tracer.DefaultTileSize,
		Split:           "median",
		TMin:            geometry.DefaultTMin,
		TMax:            math.Inf(1),
	}
}

// Validate the options.
func (opts Options) Validate() error {
	switch {
	case opts.FrameW < 0 || opts.FrameH < 0:
		return fmt.Errorf("renderer: invalid frame size %dx%d", opts.FrameW, opts.FrameH)
	case opts.SamplesPerPixel <= 0:
		return fmt.Errorf("renderer: samples per pixel must be positive; got %d", opts.SamplesPerPixel)
	case opts.NumBounces <= 0:
		return fmt.Errorf("renderer: bounces must be positive; got %d", opts.NumBounces)
	case opts.TileSize <= 0:
		return fmt.Errorf("renderer: tile size must be positive; got %d", opts.TileSize)
	case opts.Workers < 0:
		return fmt.Errorf("renderer: worker count must not be negative; got %d", opts.Workers)
	case !(opts.TMin >= 0) || !(opts.TMax > opts.TMin):
		return fmt.Errorf("renderer: invalid ray interval [%g, %g]", opts.TMin, opts.TMax)
	}

	if _, err := bvh.StrategyByName(opts.Split); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	return nil
}
