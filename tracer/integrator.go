package tracer

import (
	"github.com/smukherjee2016/sayo-pbr/geometry"
	"github.com/smukherjee2016/sayo-pbr/types"
)

// An Intersector answers closest-hit queries. It is implemented by
// *bvh.Tree.
type Intersector interface {
	Query(ray geometry.Ray, tMin, tMax float64) (geometry.Hit, bool)
}

// An Integrator estimates the value carried by a single ray.
type Integrator interface {
	Li(ray geometry.Ray, accel Intersector) types.Vec3
}

// Background value for rays that escape the scene.
var DefaultBackground = types.Splat(0.5)

// NormalIntegrator shades a hit with its surface normal and a miss with a
// constant background. It is deterministic.
type NormalIntegrator struct {
	Background types.Vec3
}

// Create a normal integrator with the default background.
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{Background: DefaultBackground}
}

func (in *NormalIntegrator) Li(ray geometry.Ray, accel Intersector) types.Vec3 {
	if hit, ok := accel.Query(ray, ray.TMin, ray.TMax); ok {
		return hit.Normal
	}
	return in.Background
}
