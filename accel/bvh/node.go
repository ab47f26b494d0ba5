package bvh

import "github.com/smukherjee2016/sayo-pbr/geometry"

// NodeKind discriminates leaf and internal tree nodes.
type NodeKind uint8

const (
	// A leaf references exactly one primitive.
	Leaf NodeKind = iota

	// An internal node references two child nodes.
	Internal
)

// Bvh nodes are stored in a contiguous arena and reference each other by
// index. Leaf nodes use Prim; internal nodes use Left and Right.
type Node struct {
	Kind NodeKind

	// Bounding box for the node. For leaves this is the primitive's box.
	Box geometry.BoundingBox

	// Child node indices for internal nodes.
	Left  int32
	Right int32

	// Primitive index for leaf nodes.
	Prim int32
}

// Tree is an immutable BVH over a set of primitives. Once built it can be
// shared by any number of concurrent readers.
type Tree struct {
	nodes []Node
	prims []geometry.Primitive
	root  int32

	stats Stats
}

// Get the root node index.
func (t *Tree) Root() int32 {
	return t.root
}

// Get the node at index.
func (t *Tree) Node(index int32) Node {
	return t.nodes[index]
}

// Get the number of nodes in the arena.
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// Get the primitive referenced by a leaf node.
func (t *Tree) Primitive(index int32) geometry.Primitive {
	return t.prims[index]
}

// Get the primitives referenced by the tree, in input order.
func (t *Tree) Primitives() []geometry.Primitive {
	return t.prims
}

// Get the tree build statistics.
func (t *Tree) Stats() Stats {
	return t.stats
}

// Equal reports whether two trees have the same structure, the same node
// boxes and reference the same primitive indices.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.nodes) != len(other.nodes) || len(t.prims) != len(other.prims) || t.root != other.root {
		return false
	}
	for index := range t.nodes {
		if t.nodes[index] != other.nodes[index] {
			return false
		}
	}
	return true
}
