package tracer

import (
	"context"
	"time"

	"github.com/smukherjee2016/sayo-pbr/geometry"
	"github.com/smukherjee2016/sayo-pbr/log"
	"github.com/smukherjee2016/sayo-pbr/scene"
	"github.com/smukherjee2016/sayo-pbr/types"
)

var logger = log.New("tile tracer")

// Number of pixels traced between two cancellation checks.
const cancelCheckInterval = 64

// A Camera generates primary rays for film pixels. Implementations must be
// safe for concurrent use.
type Camera interface {
	GenerateRay(x, y int, film scene.Film) geometry.Ray
}

// A Worker traces a single tile range.
type Worker interface {
	TraceTile(ctx context.Context, r TileRange) (Tile, error)
}

// TileTracer is the Worker used for frame renders. All fields are read-only
// while tiles are being traced, so a single TileTracer is shared by every
// task.
type TileTracer struct {
	Accel      Intersector
	Camera     Camera
	Film       scene.Film
	Integrator Integrator

	SamplesPerPixel int
	NumBounces      int

	// Parametric interval applied to every camera ray. A zero TMax keeps
	// the camera's interval.
	TMin float64
	TMax float64
}

// Create a tile tracer with a NormalIntegrator and one sample and bounce
// per pixel.
func NewTileTracer(accel Intersector, camera Camera, film scene.Film) *TileTracer {
	return &TileTracer{
		Accel:           accel,
		Camera:          camera,
		Film:            film,
		Integrator:      NewNormalIntegrator(),
		SamplesPerPixel: 1,
		NumBounces:      1,
		TMin:            geometry.DefaultTMin,
	}
}

// TraceTile computes every pixel in r. For each sample and bounce a camera
// ray is traced and its value accumulated; the sum is divided by the sample
// count. Non-finite pixel values are logged, counted and written through.
func (tr *TileTracer) TraceTile(ctx context.Context, r TileRange) (Tile, error) {
	start := time.Now()
	tile := Tile{
		TileRange: r,
		Pixels:    make([]types.Vec3, r.Count),
	}

	samples := tr.SamplesPerPixel
	if samples <= 0 {
		samples = 1
	}
	invSamples := 1.0 / float64(samples)

	for offset := 0; offset < r.Count; offset++ {
		if offset%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Tile{}, err
			}
		}

		index := r.Start + offset
		x, y := index%tr.Film.Width, index/tr.Film.Width

		var acc types.Vec3
		for s := 0; s < samples; s++ {
			for b := 0; b < tr.NumBounces; b++ {
				ray := tr.cameraRay(x, y)
				acc = acc.Add(tr.Integrator.Li(ray, tr.Accel))
			}
		}
		acc = acc.Mul(invSamples)

		if !acc.IsFinite() {
			tile.NonFinite++
			logger.Warningf("non-finite value %s at pixel (%d, %d)", acc, x, y)
		}
		tile.Pixels[offset] = acc
	}

	tile.RenderTime = time.Since(start)
	return tile, nil
}

func (tr *TileTracer) cameraRay(x, y int) geometry.Ray {
	ray := tr.Camera.GenerateRay(x, y, tr.Film)
	if tr.TMin > 0 {
		ray.TMin = tr.TMin
	}
	if tr.TMax > 0 {
		ray.TMax = tr.TMax
	}
	return ray
}
