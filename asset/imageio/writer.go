package imageio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/smukherjee2016/sayo-pbr/log"
	"github.com/smukherjee2016/sayo-pbr/renderer"
)

var logger = log.New("image writer")

// An encoder writes a framebuffer in a particular file format.
type encoder func(io.Writer, *renderer.FrameBuffer) error

var encoders = map[string]encoder{
	".pfm": WritePFM,
	".png": WritePNG,
	".bmp": WriteBMP,
}

// SupportedFormat returns true if WriteFile can encode a file with the
// extension of path.
func SupportedFormat(path string) bool {
	_, ok := encoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// WriteFile encodes the framebuffer into path. The format is selected by
// the file extension (.pfm, .png or .bmp).
func WriteFile(path string, fb *renderer.FrameBuffer) error {
	enc, ok := encoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, path)
	}
	return writeFile(path, func(w io.Writer) error { return enc(w, fb) })
}

// WriteOverlayFile writes a tile overlay PNG into path.
func WriteOverlayFile(path string, fb *renderer.FrameBuffer, tiles []renderer.TileStat) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fmt.Errorf("%w: '%s'; overlays are written as png", ErrUnsupportedFormat, path)
	}
	return writeFile(path, func(w io.Writer) error { return WriteTileOverlay(w, fb, tiles) })
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	logger.Infof("wrote %s", path)
	return nil
}
