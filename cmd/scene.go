package cmd

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/smukherjee2016/sayo-pbr/accel/bvh"
	"github.com/smukherjee2016/sayo-pbr/geometry"
	"github.com/smukherjee2016/sayo-pbr/scene/reader"
	"github.com/smukherjee2016/sayo-pbr/types"
	"github.com/urfave/cli"
)

// Display scene info and BVH statistics; optionally cross-check BVH queries
// against a linear scan.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("camera at %s looking towards %s, film %s", sc.Camera.Position, sc.Camera.LookAt, sc.Film)
	logger.Noticef("scene information:\n%s", sc.Stats())

	strategy, err := bvh.StrategyByName(ctx.String("split"))
	if err != nil {
		return err
	}

	prims := sc.Primitives()
	tree, err := bvh.Build(prims, strategy)
	if err != nil {
		return err
	}
	displayTreeStats(tree.Stats())
	logger.Noticef("average leaf depth: %3.2f", tree.AvgLeafDepth())

	numRays := ctx.Int("verify")
	if numRays <= 0 {
		return nil
	}

	mismatches := verifyTree(tree, prims, numRays, ctx.Int64("seed"))
	if mismatches != 0 {
		return fmt.Errorf("BVH query disagrees with linear scan for %d of %d rays", mismatches, numRays)
	}
	logger.Noticef("verified %d random rays against a linear scan", numRays)
	return nil
}

// Trace numRays random rays aimed at the tree bounds through the tree and
// through a linear scan over prims. Returns the number of rays for which
// the closest hits differ.
func verifyTree(tree *bvh.Tree, prims []geometry.Primitive, numRays int, seed int64) int {
	rng := rand.New(rand.NewSource(seed))
	bbox := tree.BoundingBox()
	extent := bbox.Extent()

	randomPoint := func(scale float64) types.Vec3 {
		var p types.Vec3
		center := bbox.Center()
		for axis := 0; axis < 3; axis++ {
			p[axis] = center[axis] + (rng.Float64()-0.5)*extent[axis]*scale
		}
		return p
	}

	var mismatches int
	for i := 0; i < numRays; i++ {
		origin := randomPoint(3)
		dir := randomPoint(1).Sub(origin).Normalize()
		ray := geometry.NewRay(origin, dir)

		expHit, expOk := bvh.LinearScan(prims, ray, ray.TMin, ray.TMax)
		hit, ok := tree.Query(ray, ray.TMin, ray.TMax)
		if ok != expOk || (ok && math.Abs(hit.T-expHit.T) > 1e-9*math.Max(1, expHit.T)) {
			logger.Warningf("mismatch for %s: tree (%t, %g), linear scan (%t, %g)", ray, ok, hit.T, expOk, expHit.T)
			mismatches++
		}
	}
	return mismatches
}
