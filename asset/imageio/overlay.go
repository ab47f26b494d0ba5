package imageio

import (
	"fmt"
	"io"
	"time"

	"github.com/gogpu/gg"
	"github.com/smukherjee2016/sayo-pbr/renderer"
)

// Opacity of the heat tint for the slowest tile.
const overlayMaxAlpha = 0.6

// WriteTileOverlay draws the tone-mapped frame as a PNG with every tile
// tinted by its render time: the slowest tile gets the strongest red tint.
// A tile range may wrap across rows; each row segment is drawn separately.
func WriteTileOverlay(w io.Writer, fb *renderer.FrameBuffer, tiles []renderer.TileStat) error {
	img, err := ToneMap(fb)
	if err != nil {
		return err
	}

	var slowest time.Duration
	for _, tile := range tiles {
		if tile.RenderTime > slowest {
			slowest = tile.RenderTime
		}
	}

	dc := gg.NewContextForImage(img)
	defer dc.Close()

	for _, tile := range tiles {
		if tile.Range.Start < 0 || tile.Range.End() > fb.Width*fb.Height {
			return fmt.Errorf("%w: %s", renderer.ErrTileOutOfRange, tile.Range)
		}

		weight := 1.0
		if slowest > 0 {
			weight = float64(tile.RenderTime) / float64(slowest)
		}
		dc.SetRGBA(1, 0, 0, overlayMaxAlpha*weight)

		for index := tile.Range.Start; index < tile.Range.End(); {
			x, y := index%fb.Width, index/fb.Width
			run := fb.Width - x
			if remaining := tile.Range.End() - index; remaining < run {
				run = remaining
			}

			dc.DrawRectangle(float64(x), float64(fb.Height-1-y), float64(run), 1)
			index += run
		}
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	return dc.EncodePNG(w)
}
