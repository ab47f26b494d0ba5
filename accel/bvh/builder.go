package bvh

import (
	"sort"
	"time"

	"github.com/smukherjee2016/sayo-pbr/geometry"
	"github.com/smukherjee2016/sayo-pbr/log"
	"github.com/smukherjee2016/sayo-pbr/types"
)

// A WorkItem pairs a primitive index with its cached bounding box so that
// sorting does not repeatedly call into the primitive.
type WorkItem struct {
	Prim int32
	Box  geometry.BoundingBox
}

// A SplitStrategy partitions a work list with more than two items into two
// halves. Implementations may reorder the supplied slice. If either half
// comes back empty the builder falls back to MedianSplit.
type SplitStrategy interface {
	Split(workList []WorkItem, bbox geometry.BoundingBox) (left, right []WorkItem)
}

type builder struct {
	logger log.Logger

	// Bvh nodes stored as a contiguous list
	nodes []Node

	// The split strategy to use.
	strategy SplitStrategy

	// Stats
	stats Stats
}

// Construct a BVH from a set of primitives.
//
// Work lists of one primitive become a leaf. Two primitives become an
// internal node with one leaf each. Larger lists are split by the supplied
// strategy (MedianSplit if nil) and partitioned recursively. The input slice
// is not modified.
//
// Build runs on the calling goroutine and is deterministic: the same input
// order always produces the same tree.
func Build(prims []geometry.Primitive, strategy SplitStrategy) (*Tree, error) {
	if len(prims) == 0 {
		return nil, ErrNoPrimitives
	}
	if strategy == nil {
		strategy = MedianSplit
	}

	b := &builder{
		logger: log.New("bvh builder"),
		// A binary tree with n leaves has exactly 2n-1 nodes
		nodes:    make([]Node, 0, 2*len(prims)-1),
		strategy: strategy,
		stats: Stats{
			Primitives: len(prims),
		},
	}

	workList := make([]WorkItem, len(prims))
	for index, prim := range prims {
		workList[index] = WorkItem{
			Prim: int32(index),
			Box:  prim.BoundingBox(),
		}
	}

	start := time.Now()
	root := b.partition(workList, 0)
	b.stats.BuildTime = time.Since(start)
	b.stats.Nodes = len(b.nodes)

	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		b.stats.BuildTime.Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leaves,
	)

	return &Tree{
		nodes: b.nodes,
		prims: append([]geometry.Primitive(nil), prims...),
		root:  root,
		stats: b.stats,
	}, nil
}

// Partition worklist and return node index.
func (b *builder) partition(workList []WorkItem, depth int) int32 {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	switch len(workList) {
	case 1:
		return b.createLeaf(workList[0])
	case 2:
		nodeIndex := b.appendNode(Node{
			Kind: Internal,
			Box:  geometry.Union(workList[0].Box, workList[1].Box),
		})
		b.nodes[nodeIndex].Left = b.createLeaf(workList[0])
		b.nodes[nodeIndex].Right = b.createLeaf(workList[1])
		b.trackLeafDepth(depth + 1)
		return nodeIndex
	}

	bbox := geometry.EmptyBox()
	for _, item := range workList {
		bbox = geometry.Union(bbox, item.Box)
	}

	left, right := b.strategy.Split(workList, bbox)
	if len(left) == 0 || len(right) == 0 || len(left)+len(right) != len(workList) {
		b.logger.Warningf("split strategy returned a %d/%d partition of %d items; using median split", len(left), len(right), len(workList))
		left, right = MedianSplit.Split(workList, bbox)
	}

	// Reserve the parent slot first so that nodes are laid out in pre-order
	nodeIndex := b.appendNode(Node{Kind: Internal})
	leftIndex := b.partition(left, depth+1)
	rightIndex := b.partition(right, depth+1)

	node := &b.nodes[nodeIndex]
	node.Left = leftIndex
	node.Right = rightIndex
	node.Box = geometry.Union(b.nodes[leftIndex].Box, b.nodes[rightIndex].Box)

	return nodeIndex
}

func (b *builder) appendNode(node Node) int32 {
	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, node)
	return nodeIndex
}

// Setup a leaf node for a single work item and return its index.
func (b *builder) createLeaf(item WorkItem) int32 {
	b.stats.Leaves++
	return b.appendNode(Node{
		Kind: Leaf,
		Box:  item.Box,
		Prim: item.Prim,
	})
}

func (b *builder) trackLeafDepth(depth int) {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}
}

// Stable-sort work items by the min corner of their boxes along axis.
func sortByMin(workList []WorkItem, axis types.Axis) {
	sort.SliceStable(workList, func(i, j int) bool {
		return workList[i].Box.Min[axis] < workList[j].Box.Min[axis]
	})
}
