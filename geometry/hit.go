package geometry

import "github.com/smukherjee2016/sayo-pbr/types"

// Hit describes a ray intersection.
type Hit struct {
	// Ray parameter at the intersection point.
	T float64

	Point  types.Vec3
	Normal types.Vec3
	UV     types.Vec2

	// Set for the gate hits reported by bounding box tests. Box hits carry
	// no surface information.
	IsBoxHit bool
}

// Closer returns the hit with the strictly smaller T; ties resolve to b.
func Closer(a, b Hit) Hit {
	if a.T < b.T {
		return a
	}
	return b
}
