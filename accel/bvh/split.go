package bvh

import (
	"fmt"
	"math"

	"github.com/smukherjee2016/sayo-pbr/geometry"
	"github.com/smukherjee2016/sayo-pbr/types"
)

// SAH cost coefficients for a traversal step and a primitive intersection.
const (
	traversalCost    = 1.0
	intersectionCost = 1.0
)

var (
	// Split at the median of the work list after sorting it by box min along
	// the longest axis of the parent box.
	MedianSplit SplitStrategy = medianSplit{}

	// Pick the split with the lowest surface area heuristic cost among all
	// split indices of the work list sorted along each axis.
	SurfaceAreaHeuristic SplitStrategy = surfaceAreaHeuristic{}
)

// Lookup a split strategy by name.
func StrategyByName(name string) (SplitStrategy, error) {
	switch name {
	case "", "median":
		return MedianSplit, nil
	case "sah":
		return SurfaceAreaHeuristic, nil
	}
	return nil, fmt.Errorf("bvh: unknown split strategy %q", name)
}

type medianSplit struct{}

// Split sorts the work list along the longest axis of bbox and splits it at
// len/2. Odd lists put the extra item on the right.
func (medianSplit) Split(workList []WorkItem, bbox geometry.BoundingBox) (left, right []WorkItem) {
	sortByMin(workList, bbox.LongestAxis())
	mid := len(workList) / 2
	return workList[:mid], workList[mid:]
}

func (medianSplit) String() string {
	return "median"
}

type surfaceAreaHeuristic struct{}

// Split evaluates the cost
//
//	2*C_trav + (area(L)/area(P))*C_isect*|L| + (area(R)/area(P))*C_isect*|R|
//
// for every split index along each axis and returns the cheapest. Ties keep
// the earlier axis and the lower index. A parent with zero area falls back to
// the median split.
func (h surfaceAreaHeuristic) Split(workList []WorkItem, bbox geometry.BoundingBox) (left, right []WorkItem) {
	parentArea := bbox.Area()
	if parentArea <= 0 {
		return MedianSplit.Split(workList, bbox)
	}

	count := len(workList)
	bestCost := math.Inf(1)
	bestAxis := types.XAxis
	bestIndex := count / 2

	sorted := make([]WorkItem, count)
	suffixArea := make([]float64, count)
	for axis := types.XAxis; axis <= types.ZAxis; axis++ {
		copy(sorted, workList)
		sortByMin(sorted, axis)

		// suffixArea[i] is the area of the union of sorted[i:]
		acc := geometry.EmptyBox()
		for i := count - 1; i >= 0; i-- {
			acc = geometry.Union(acc, sorted[i].Box)
			suffixArea[i] = acc.Area()
		}

		acc = geometry.EmptyBox()
		for i := 1; i < count; i++ {
			acc = geometry.Union(acc, sorted[i-1].Box)
			cost := 2*traversalCost +
				(acc.Area()/parentArea)*intersectionCost*float64(i) +
				(suffixArea[i]/parentArea)*intersectionCost*float64(count-i)
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestIndex = i
			}
		}
	}

	sortByMin(workList, bestAxis)
	return workList[:bestIndex], workList[bestIndex:]
}

func (surfaceAreaHeuristic) String() string {
	return "sah"
}
