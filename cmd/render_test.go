package cmd

import (
	"flag"
	"testing"

	"github.com/smukherjee2016/sayo-pbr/renderer"
	"github.com/smukherjee2016/sayo-pbr/scene"
	"github.com/urfave/cli"
)

func renderContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("render", flag.ContinueOnError)
	for _, name := range []string{"width", "height", "spp", "bounces", "tile-size", "workers"} {
		set.Int(name, 0, "")
	}
	set.String("split", "median", "")
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestRenderOptions(t *testing.T) {
	type spec struct {
		args       []string
		sceneSpp   int
		sceneBnc   int
		expSpp     int
		expBnc     int
		expTile    int
		expWorkers int
	}
	defaults := renderer.DefaultOptions()
	specs := []spec{
		{nil, 0, 0, 1, 1, defaults.TileSize, 0},
		{nil, 8, 3, 8, 3, defaults.TileSize, 0},
		{[]string{"-spp", "4", "-bounces", "2"}, 8, 3, 4, 2, defaults.TileSize, 0},
		{[]string{"-tile-size", "64", "-workers", "3"}, 0, 0, 1, 1, 64, 3},
	}

	for index, s := range specs {
		sc := &scene.Scene{SamplesPerPixel: s.sceneSpp, NumBounces: s.sceneBnc}
		opts := renderOptions(renderContext(t, s.args...), sc)

		if opts.SamplesPerPixel != s.expSpp || opts.NumBounces != s.expBnc {
			t.Fatalf("[spec %d] expected spp %d and bounces %d; got %d and %d", index, s.expSpp, s.expBnc, opts.SamplesPerPixel, opts.NumBounces)
		}
		if opts.TileSize != s.expTile || opts.Workers != s.expWorkers {
			t.Fatalf("[spec %d] expected tile size %d and %d workers; got %d and %d", index, s.expTile, s.expWorkers, opts.TileSize, opts.Workers)
		}
		if err := opts.Validate(); err != nil {
			t.Fatalf("[spec %d] unexpected validation error: %v", index, err)
		}
	}
}
