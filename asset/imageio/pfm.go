package imageio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/smukherjee2016/sayo-pbr/renderer"
)

// WritePFM encodes the framebuffer as a little-endian color PFM. PFM stores
// scanlines bottom-to-top which matches the framebuffer row order, so rows
// are written in index order.
func WritePFM(w io.Writer, fb *renderer.FrameBuffer) error {
	if err := checkFrame(fb); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", fb.Width, fb.Height); err != nil {
		return err
	}

	var buf [12]byte
	for _, pixel := range fb.Pixels {
		for c := 0; c < 3; c++ {
			binary.LittleEndian.PutUint32(buf[c*4:], math.Float32bits(float32(pixel[c])))
		}
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func checkFrame(fb *renderer.FrameBuffer) error {
	if fb == nil || fb.Width <= 0 || fb.Height <= 0 || len(fb.Pixels) < fb.Width*fb.Height {
		return ErrEmptyFrame
	}
	return nil
}
