package imageio

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/smukherjee2016/sayo-pbr/renderer"
	"golang.org/x/image/bmp"
)

// Display gamma applied after tone mapping.
const displayGamma = 2.2

// ToneMap converts the linear framebuffer into an 8-bit image using the
// Reinhard operator followed by gamma correction. Framebuffer row 0 is the
// bottom of the picture so rows are flipped.
func ToneMap(fb *renderer.FrameBuffer) (*image.RGBA, error) {
	if err := checkFrame(fb); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		imgY := fb.Height - 1 - y
		for x := 0; x < fb.Width; x++ {
			pixel := fb.At(x, y)
			img.SetRGBA(x, imgY, color.RGBA{
				R: toneMapChannel(pixel[0]),
				G: toneMapChannel(pixel[1]),
				B: toneMapChannel(pixel[2]),
				A: 255,
			})
		}
	}
	return img, nil
}

func toneMapChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case math.IsInf(v, 1):
		return 255
	}

	v = math.Pow(v/(1.0+v), 1.0/displayGamma)
	return uint8(math.Min(255, math.Round(v*255)))
}

// WritePNG writes a tone-mapped PNG preview of the framebuffer.
func WritePNG(w io.Writer, fb *renderer.FrameBuffer) error {
	img, err := ToneMap(fb)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteBMP writes a tone-mapped BMP preview of the framebuffer.
func WriteBMP(w io.Writer, fb *renderer.FrameBuffer) error {
	img, err := ToneMap(fb)
	if err != nil {
		return err
	}
	return bmp.Encode(w, img)
}
