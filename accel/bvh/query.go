package bvh

import (
	"github.com/smukherjee2016/sayo-pbr/geometry"
)

// Query returns the closest hit for ray among all primitives in the tree.
//
// Leaves delegate straight to their primitive. Internal nodes first test
// their box and, on a gate hit, query both children and keep the hit with
// the strictly smaller t; equal t values resolve to the right child.
func (t *Tree) Query(ray geometry.Ray, tMin, tMax float64) (geometry.Hit, bool) {
	return t.queryNode(t.root, ray, tMin, tMax)
}

// Intersect allows a tree to be used as a primitive.
func (t *Tree) Intersect(ray geometry.Ray, tMin, tMax float64) (geometry.Hit, bool) {
	return t.Query(ray, tMin, tMax)
}

func (t *Tree) queryNode(index int32, ray geometry.Ray, tMin, tMax float64) (geometry.Hit, bool) {
	node := &t.nodes[index]
	if node.Kind == Leaf {
		return t.prims[node.Prim].Intersect(ray, tMin, tMax)
	}

	if _, ok := node.Box.Intersect(ray, tMin, tMax); !ok {
		return geometry.Hit{}, false
	}

	leftHit, leftOk := t.queryNode(node.Left, ray, tMin, tMax)
	rightHit, rightOk := t.queryNode(node.Right, ray, tMin, tMax)

	switch {
	case leftOk && rightOk:
		return geometry.Closer(leftHit, rightHit), true
	case leftOk:
		return leftHit, true
	case rightOk:
		return rightHit, true
	}
	return geometry.Hit{}, false
}

// LinearScan returns the closest hit by testing every primitive. It is the
// reference that tree queries must agree with.
func LinearScan(prims []geometry.Primitive, ray geometry.Ray, tMin, tMax float64) (geometry.Hit, bool) {
	var (
		closest geometry.Hit
		found   bool
	)
	for _, prim := range prims {
		hit, ok := prim.Intersect(ray, tMin, tMax)
		if ok && (!found || hit.T < closest.T) {
			closest = hit
			found = true
		}
	}
	return closest, found
}
