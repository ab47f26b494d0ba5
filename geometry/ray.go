package geometry

import (
	"fmt"
	"math"

	"github.com/smukherjee2016/sayo-pbr/types"
)

// Default parametric interval for rays that do not specify one.
const (
	DefaultTMin = 1e-5
)

// A Ray with a precomputed inverse direction and a valid parametric
// interval [TMin, TMax]. Rays are passed by value and never mutated after
// construction.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3

	// 1/Dir per component. Zero direction components yield +/-Inf.
	InvDir types.Vec3

	TMin float64
	TMax float64
}

// Create a ray covering [DefaultTMin, +Inf).
func NewRay(origin, dir types.Vec3) Ray {
	return NewRayInterval(origin, dir, DefaultTMin, math.Inf(1))
}

// Create a ray with an explicit parametric interval.
func NewRayInterval(origin, dir types.Vec3, tMin, tMax float64) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: dir.Recip(),
		TMin:   tMin,
		TMax:   tMax,
	}
}

// Evaluate the ray at parameter t.
func (r Ray) At(t float64) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

func (r Ray) String() string {
	return fmt.Sprintf("ray{o: %s, d: %s, t: [%g, %g]}", r.Origin, r.Dir, r.TMin, r.TMax)
}
