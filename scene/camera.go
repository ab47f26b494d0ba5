package scene

import (
	"math"

	"github.com/smukherjee2016/sayo-pbr/geometry"
	"github.com/smukherjee2016/sayo-pbr/types"
)

// A pinhole camera with an orthonormal basis derived from its position,
// look-at point and up vector. Cameras are immutable and safe to share
// between goroutines.
type PinholeCamera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Basis vectors. cz points from the camera towards LookAt.
	cx types.Vec3
	cy types.Vec3
	cz types.Vec3
}

// Create a new pinhole camera.
func NewPinholeCamera(position, lookAt, up types.Vec3) *PinholeCamera {
	c := &PinholeCamera{
		Position: position,
		LookAt:   lookAt,
		Up:       up,
	}

	c.cz = lookAt.Sub(position).Normalize()
	c.cx = c.cz.Cross(up).Normalize()
	c.cy = c.cx.Cross(c.cz).Normalize()
	return c
}

// Get the normalized view direction.
func (c *PinholeCamera) Direction() types.Vec3 {
	return c.cz
}

// Generate a primary ray through the centre of pixel (x, y). Pixel row 0
// maps to the bottom of the image plane. The image plane sits at
// film.Distance along the view direction and its height is derived from the
// vertical field of view.
func (c *PinholeCamera) GenerateRay(x, y int, film Film) geometry.Ray {
	u := (float64(x) + 0.5) / float64(film.Width)
	v := (float64(y) + 0.5) / float64(film.Height)

	planeH := 2.0 * film.Distance * math.Tan(film.FOV/2.0)
	planeW := planeH * film.AspectRatio

	pixel := c.Position.
		Add(c.cz.Mul(film.Distance)).
		Add(c.cx.Mul((u - 0.5) * planeW)).
		Add(c.cy.Mul((v - 0.5) * planeH))

	return geometry.NewRay(c.Position, pixel.Sub(c.Position).Normalize())
}
