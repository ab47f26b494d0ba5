package geometry

import (
	"github.com/smukherjee2016/sayo-pbr/types"
)

// A Triangle primitive with per-vertex normals and texture coordinates.
// Triangles are immutable once created.
type Triangle struct {
	Positions [3]types.Vec3
	Normals   [3]types.Vec3
	UVs       [3]types.Vec2

	bbox BoundingBox
}

// Create a new triangle and precompute its bounding box. Vertex normals are
// normalized; a zero normal is kept as-is.
func NewTriangle(positions [3]types.Vec3, normals [3]types.Vec3, uvs [3]types.Vec2) *Triangle {
	tri := &Triangle{
		Positions: positions,
		UVs:       uvs,
	}
	for i, n := range normals {
		tri.Normals[i] = n.Normalize()
	}

	tri.bbox = BoundingBox{
		Min: types.MinVec3(positions[0], types.MinVec3(positions[1], positions[2])),
		Max: types.MaxVec3(positions[0], types.MaxVec3(positions[1], positions[2])),
	}
	return tri
}

// Get the triangle bounding box.
func (tri *Triangle) BoundingBox() BoundingBox {
	return tri.bbox
}

// Intersect implements the watertight ray/triangle test. The triangle is
// moved into a ray-relative frame (translate, permute so the dominant ray
// axis becomes Z, shear so the ray points along +Z) where the hit test
// reduces to signed 2D edge functions evaluated at the origin.
func (tri *Triangle) Intersect(ray Ray, tMin, tMax float64) (Hit, bool) {
	// Translate
	p0t := tri.Positions[0].Sub(ray.Origin)
	p1t := tri.Positions[1].Sub(ray.Origin)
	p2t := tri.Positions[2].Sub(ray.Origin)

	// Permute so that the largest direction component maps to Z
	kz := ray.Dir.Abs().MaxDimension()
	kx := (kz + 1) % 3
	ky := (kx + 1) % 3
	d := ray.Dir.Permute(kx, ky, kz)
	p0t = p0t.Permute(kx, ky, kz)
	p1t = p1t.Permute(kx, ky, kz)
	p2t = p2t.Permute(kx, ky, kz)

	// Shear x and y; z is scaled lazily once we know we have a candidate hit
	sx := -d[0] / d[2]
	sy := -d[1] / d[2]
	sz := 1.0 / d[2]
	p0t[0] += sx * p0t[2]
	p0t[1] += sy * p0t[2]
	p1t[0] += sx * p1t[2]
	p1t[1] += sy * p1t[2]
	p2t[0] += sx * p2t[2]
	p2t[1] += sy * p2t[2]

	// Edge functions
	e0 := p1t[0]*p2t[1] - p1t[1]*p2t[0]
	e1 := p2t[0]*p0t[1] - p2t[1]*p0t[0]
	e2 := p0t[0]*p1t[1] - p0t[1]*p1t[0]

	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return Hit{}, false
	}
	det := e0 + e1 + e2
	if det == 0 {
		return Hit{}, false
	}

	// Reject hits behind the origin or past tMax without dividing by det
	p0t[2] *= sz
	p1t[2] *= sz
	p2t[2] *= sz
	tScaled := e0*p0t[2] + e1*p1t[2] + e2*p2t[2]
	if det < 0 && (tScaled >= 0 || tScaled < tMax*det) {
		return Hit{}, false
	}
	if det > 0 && (tScaled <= 0 || tScaled > tMax*det) {
		return Hit{}, false
	}

	invDet := 1.0 / det
	b0 := e0 * invDet
	b1 := e1 * invDet
	b2 := e2 * invDet
	t := tScaled * invDet
	if t < tMin {
		return Hit{}, false
	}

	point := tri.Positions[0].Mul(b0).Add(tri.Positions[1].Mul(b1)).Add(tri.Positions[2].Mul(b2))
	uv := tri.UVs[0].Mul(b0).Add(tri.UVs[1].Mul(b1)).Add(tri.UVs[2].Mul(b2))

	dp02 := tri.Positions[0].Sub(tri.Positions[2])
	dp12 := tri.Positions[1].Sub(tri.Positions[2])
	normal := dp02.Cross(dp12).Normalize()
	if normal.Dot(tri.Normals[0]) < 0 {
		normal = normal.Mul(-1)
	}

	return Hit{
		T:      t,
		Point:  point,
		Normal: normal,
		UV:     uv,
	}, true
}
