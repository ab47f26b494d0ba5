package bvh

import (
	"time"

	"github.com/smukherjee2016/sayo-pbr/geometry"
)

// Stats collected while building a tree.
type Stats struct {
	Primitives int
	Nodes      int
	Leaves     int
	MaxDepth   int
	BuildTime  time.Duration
}

// Walk visits every node reachable from the root in depth-first order
// together with its depth. Returning false from fn stops the walk below
// that node.
func (t *Tree) Walk(fn func(index int32, node Node, depth int) bool) {
	var visit func(index int32, depth int)
	visit = func(index int32, depth int) {
		node := t.nodes[index]
		if !fn(index, node, depth) || node.Kind == Leaf {
			return
		}
		visit(node.Left, depth+1)
		visit(node.Right, depth+1)
	}
	visit(t.root, 0)
}

// BoundingBox returns the box of the root node.
func (t *Tree) BoundingBox() geometry.BoundingBox {
	return t.nodes[t.root].Box
}

// Average leaf depth.
func (t *Tree) AvgLeafDepth() float64 {
	var total, leaves int
	t.Walk(func(_ int32, node Node, depth int) bool {
		if node.Kind == Leaf {
			total += depth
			leaves++
		}
		return true
	})
	if leaves == 0 {
		return 0
	}
	return float64(total) / float64(leaves)
}
