package geometry

// The Primitive interface is implemented by all objects that can be
// partitioned by the BVH builder and tested for ray intersections.
// Implementations must be safe for concurrent use by multiple readers.
type Primitive interface {
	BoundingBox() BoundingBox

	// Intersect returns the closest intersection with t in the ray's valid
	// range, bounded by tMin and tMax.
	Intersect(ray Ray, tMin, tMax float64) (Hit, bool)
}
