package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smukherjee2016/sayo-pbr/accel/bvh"
	"github.com/smukherjee2016/sayo-pbr/log"
	"github.com/smukherjee2016/sayo-pbr/scene"
	"github.com/smukherjee2016/sayo-pbr/tracer"
)

type Renderer interface {
	// Render frame.
	Render(ctx context.Context) (*FrameBuffer, error)

	// Get render statistics for the last frame.
	Stats() FrameStats
}

// The default renderer builds a BVH over the scene once and traces frames on
// a tile scheduler.
type defaultRenderer struct {
	logger log.Logger

	options   Options
	film      scene.Film
	tree      *bvh.Tree
	tracer    *tracer.TileTracer
	scheduler *tracer.Scheduler

	stats FrameStats
}

// Create a new default renderer. The BVH is built before this function
// returns.
func NewDefault(sc *scene.Scene, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r := &defaultRenderer{
		logger:  log.New("renderer"),
		options: opts,
		film:    sc.Film,
	}

	if opts.FrameW != 0 || opts.FrameH != 0 {
		width, height := opts.FrameW, opts.FrameH
		if width == 0 {
			width = sc.Film.Width
		}
		if height == 0 {
			height = sc.Film.Height
		}
		r.film = sc.Film.WithResolution(width, height)
	}
	if r.film.NumPixels() <= 0 {
		return nil, fmt.Errorf("renderer: invalid frame size %dx%d", r.film.Width, r.film.Height)
	}

	strategy, _ := bvh.StrategyByName(opts.Split)
	tree, err := bvh.Build(sc.Primitives(), strategy)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	r.tree = tree

	r.tracer = tracer.NewTileTracer(tree, sc.Camera, r.film)
	r.tracer.SamplesPerPixel = opts.SamplesPerPixel
	r.tracer.NumBounces = opts.NumBounces
	r.tracer.TMin = opts.TMin
	r.tracer.TMax = opts.TMax

	r.scheduler = tracer.NewScheduler(opts.Workers)

	if sc.Integrator != "" && sc.Integrator != scene.DirectLighting {
		r.logger.Infof(`integrator "%s" is traced with normal shading`, sc.Integrator)
	}

	r.logger.Infof(
		"built %s BVH over %d primitives in %s",
		opts.Split, tree.Stats().Primitives, tree.Stats().BuildTime,
	)
	return r, nil
}

// Render a frame. Tiles are merged into the framebuffer as they complete.
func (r *defaultRenderer) Render(ctx context.Context) (*FrameBuffer, error) {
	ranges, err := tracer.Partition(r.film.Width, r.film.Height, r.options.TileSize)
	if err != nil {
		return nil, err
	}

	fb := NewFrameBuffer(r.film.Width, r.film.Height)
	stats := FrameStats{
		Tiles:    make([]TileStat, 0, len(ranges)),
		BVH:      r.tree.Stats(),
		Workers:  r.scheduler.Workers(),
		CPUModel: tracer.CPUModel(),
	}

	r.logger.Noticef(
		"rendering %dx%d frame (%d spp, %d bounces) as %d tiles on %d workers",
		r.film.Width, r.film.Height, r.options.SamplesPerPixel, r.options.NumBounces, len(ranges), stats.Workers,
	)

	start := time.Now()
	err = r.scheduler.Render(ctx, r.tracer, ranges, func(tile tracer.Tile) error {
		stats.Tiles = append(stats.Tiles, TileStat{Range: tile.TileRange, RenderTime: tile.RenderTime})
		stats.NonFinitePixels += tile.NonFinite
		return fb.Merge(tile)
	})
	stats.RenderTime = time.Since(start)
	r.stats = stats

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		return nil, err
	}

	if stats.NonFinitePixels > 0 {
		r.logger.Warningf("frame contains %d non-finite pixels", stats.NonFinitePixels)
	}
	r.logger.Noticef("rendered frame in %d ms", stats.RenderTime.Nanoseconds()/1e6)
	return fb, nil
}

func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}
