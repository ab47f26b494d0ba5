package main

import (
	"os"

	"github.com/smukherjee2016/sayo-pbr/cmd"
	"github.com/smukherjee2016/sayo-pbr/tracer"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	splitFlag := cli.StringFlag{
		Name:  "split",
		Value: "median",
		Usage: "BVH split strategy (median or sah)",
	}

	app := cli.NewApp()
	app.Name = "sayo-pbr"
	app.Usage = "render triangle mesh scenes with a BVH accelerated ray tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Load a TOML scene description together with its meshes, build a BVH over
all triangles and trace the frame in parallel tiles.

Flags left at zero fall back to the values in the scene file. The output
format is selected by the file extension (.pfm, .png or .bmp).`,
			ArgsUsage: "scene.toml",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (default: scene camera resolution)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (default: scene camera resolution)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (default: scene renderer.samples)",
				},
				cli.IntFlag{
					Name:  "bounces",
					Usage: "bounces per sample (default: scene renderer.bounces)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: tracer.DefaultTileSize,
					Usage: "pixels per tile",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (default: number of logical CPUs)",
				},
				splitFlag,
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image file for the rendered frame (default: scene hdr_output_file)",
				},
				cli.StringFlag{
					Name:  "preview",
					Usage: "write a tone-mapped png or bmp preview of the frame",
				},
				cli.StringFlag{
					Name:  "overlay",
					Usage: "write a png with tiles tinted by their render time",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:        "scene-info",
			Usage:       "display scene and BVH statistics",
			Description: `Load a scene, build its BVH and display statistics. With --verify the BVH is cross-checked against a linear scan.`,
			ArgsUsage:   "scene.toml",
			Flags: []cli.Flag{
				splitFlag,
				cli.IntFlag{
					Name:  "verify",
					Usage: "number of random rays to cross-check against a linear scan",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random seed for --verify",
				},
			},
			Action: cmd.ShowSceneInfo,
		},
		{
			Name:   "sys-info",
			Usage:  "display host cpu information",
			Action: cmd.ShowSysInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		cmd.Fatal(err)
	}
}
