package geometry

import (
	"fmt"
	"math"

	"github.com/smukherjee2016/sayo-pbr/types"
)

// An axis-aligned bounding box defined by two points of its diagonal.
type BoundingBox struct {
	Min types.Vec3
	Max types.Vec3
}

// Create a bounding box from two corner points. The corners do not need to
// be ordered.
func NewBoundingBox(p0, p1 types.Vec3) BoundingBox {
	return BoundingBox{
		Min: types.MinVec3(p0, p1),
		Max: types.MaxVec3(p0, p1),
	}
}

// EmptyBox returns the identity element for Union: Min is +Inf and Max is
// -Inf on every axis.
func EmptyBox() BoundingBox {
	return BoundingBox{
		Min: types.Splat(math.Inf(1)),
		Max: types.Splat(math.Inf(-1)),
	}
}

// Union returns the smallest box enclosing both a and b.
func Union(a, b BoundingBox) BoundingBox {
	return BoundingBox{
		Min: types.MinVec3(a.Min, b.Min),
		Max: types.MaxVec3(a.Max, b.Max),
	}
}

// Extend the box so that it encloses p.
func (b BoundingBox) Extend(p types.Vec3) BoundingBox {
	return BoundingBox{
		Min: types.MinVec3(b.Min, p),
		Max: types.MaxVec3(b.Max, p),
	}
}

// Returns true if the box has not been unioned with any real box.
func (b BoundingBox) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extent returns Max - Min.
func (b BoundingBox) Extent() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center of the box.
func (b BoundingBox) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Area returns the surface area of the box. Empty boxes report zero.
func (b BoundingBox) Area() float64 {
	if b.IsEmpty() {
		return 0
	}
	e := b.Extent()
	return 2.0 * (e[0]*e[1] + e[1]*e[2] + e[2]*e[0])
}

// LongestAxis returns the axis with the largest extent. Ties are broken
// toward X, then Y.
func (b BoundingBox) LongestAxis() types.Axis {
	e := b.Extent()
	axis := types.XAxis
	if e[1] > e[axis] {
		axis = types.YAxis
	}
	if e[2] > e[axis] {
		axis = types.ZAxis
	}
	return axis
}

// Contains reports whether o lies within b, allowing eps slack per axis.
func (b BoundingBox) Contains(o BoundingBox, eps float64) bool {
	for axis := 0; axis < 3; axis++ {
		if o.Min[axis] < b.Min[axis]-eps || o.Max[axis] > b.Max[axis]+eps {
			return false
		}
	}
	return true
}

// Intersect runs a slab test against the box using the ray's inverse
// direction. The min/max reductions ignore NaN operands so that zero
// direction components (which produce Inf or NaN slab distances) never
// reject a ray that passes through the remaining slabs.
//
// On success a gate hit is returned; it carries no surface information.
func (b BoundingBox) Intersect(ray Ray, _, _ float64) (Hit, bool) {
	t1 := (b.Min[0] - ray.Origin[0]) * ray.InvDir[0]
	t2 := (b.Max[0] - ray.Origin[0]) * ray.InvDir[0]

	tmin := types.MinNaN(t1, t2)
	tmax := types.MaxNaN(t1, t2)

	for axis := 1; axis < 3; axis++ {
		t1 = (b.Min[axis] - ray.Origin[axis]) * ray.InvDir[axis]
		t2 = (b.Max[axis] - ray.Origin[axis]) * ray.InvDir[axis]

		tmin = types.MaxNaN(tmin, types.MinNaN(types.MinNaN(t1, t2), tmax))
		tmax = types.MinNaN(tmax, types.MaxNaN(types.MaxNaN(t1, t2), tmin))
	}

	if tmax >= types.MaxNaN(tmin, 0) {
		return Hit{IsBoxHit: true}, true
	}
	return Hit{}, false
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("bbox{min: %s, max: %s}", b.Min, b.Max)
}
