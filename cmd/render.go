package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/smukherjee2016/sayo-pbr/accel/bvh"
	"github.com/smukherjee2016/sayo-pbr/asset/imageio"
	"github.com/smukherjee2016/sayo-pbr/renderer"
	"github.com/smukherjee2016/sayo-pbr/scene"
	"github.com/smukherjee2016/sayo-pbr/scene/reader"
	"github.com/urfave/cli"
)

// Output file used when neither the command line nor the scene names one.
const defaultOutputFile = "frame.pfm"

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}
	logger.Infof("scene information:\n%s", sc.Stats())

	opts := renderOptions(ctx, sc)
	outFile := ctx.String("out")
	if outFile == "" {
		outFile = sc.HDROutputFile
	}
	if outFile == "" {
		outFile = defaultOutputFile
	}
	if !imageio.SupportedFormat(outFile) {
		return fmt.Errorf("%w: '%s'", imageio.ErrUnsupportedFormat, outFile)
	}

	r, err := renderer.NewDefault(sc, opts)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	start := time.Now()
	if err = imageio.WriteFile(outFile, fb); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", outFile, time.Since(start).Nanoseconds()/1e6)

	if preview := ctx.String("preview"); preview != "" {
		if err = imageio.WriteFile(preview, fb); err != nil {
			return err
		}
		logger.Noticef("wrote preview to %s", preview)
	}

	if overlay := ctx.String("overlay"); overlay != "" {
		if err = imageio.WriteOverlayFile(overlay, fb, r.Stats().Tiles); err != nil {
			return err
		}
		logger.Noticef("wrote tile overlay to %s", overlay)
	}

	return nil
}

// Populate render options from the command line. Flags left at their zero
// value fall back to the scene settings and then to the renderer defaults.
func renderOptions(ctx *cli.Context, sc *scene.Scene) renderer.Options {
	opts := renderer.DefaultOptions()
	opts.FrameW = ctx.Int("width")
	opts.FrameH = ctx.Int("height")
	opts.Workers = ctx.Int("workers")
	opts.Split = ctx.String("split")

	if sc.SamplesPerPixel > 0 {
		opts.SamplesPerPixel = sc.SamplesPerPixel
	}
	if sc.NumBounces > 0 {
		opts.NumBounces = sc.NumBounces
	}
	if spp := ctx.Int("spp"); spp != 0 {
		opts.SamplesPerPixel = spp
	}
	if bounces := ctx.Int("bounces"); bounces != 0 {
		opts.NumBounces = bounces
	}
	if tileSize := ctx.Int("tile-size"); tileSize != 0 {
		opts.TileSize = tileSize
	}

	return opts
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"CPU", "Workers", "Tiles", "Avg tile time", "Slowest tile", "Non-finite pixels", "Render time"})

	var slowest time.Duration
	for _, tile := range stats.Tiles {
		if tile.RenderTime > slowest {
			slowest = tile.RenderTime
		}
	}
	var avg time.Duration
	if len(stats.Tiles) > 0 {
		avg = stats.TileTime() / time.Duration(len(stats.Tiles))
	}

	cpuModel := stats.CPUModel
	if cpuModel == "" {
		cpuModel = "unknown"
	}
	table.Append([]string{
		cpuModel,
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", len(stats.Tiles)),
		avg.String(),
		slowest.String(),
		fmt.Sprintf("%d", stats.NonFinitePixels),
		stats.RenderTime.String(),
	})
	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())

	displayTreeStats(stats.BVH)
}

func displayTreeStats(stats bvh.Stats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Primitives", "Nodes", "Leaves", "Max depth", "Build time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Primitives),
		fmt.Sprintf("%d", stats.Nodes),
		fmt.Sprintf("%d", stats.Leaves),
		fmt.Sprintf("%d", stats.MaxDepth),
		stats.BuildTime.String(),
	})
	table.Render()
	logger.Noticef("BVH statistics\n%s", buf.String())
}
