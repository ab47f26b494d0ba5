package scene

import (
	"fmt"
	"math"
)

// Distance from the camera origin to the image plane.
const defaultFilmDistance = 1.0

// Film describes the image plane sampled by the camera.
type Film struct {
	Width  int
	Height int

	// Vertical field of view in radians.
	FOV float64

	Distance    float64
	AspectRatio float64
}

// Create a film for a width x height image with a vertical field of view
// given in degrees.
func NewFilm(width, height int, fovDegrees float64) (Film, error) {
	if width <= 0 || height <= 0 {
		return Film{}, fmt.Errorf("scene: invalid film resolution %dx%d", width, height)
	}
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return Film{}, fmt.Errorf("scene: invalid field of view %g; expected a value in (0, 180) degrees", fovDegrees)
	}

	return Film{
		Width:       width,
		Height:      height,
		FOV:         fovDegrees * math.Pi / 180.0,
		Distance:    defaultFilmDistance,
		AspectRatio: float64(width) / float64(height),
	}, nil
}

// Get a copy of the film with a different resolution. The field of view
// and distance are kept; the aspect ratio follows the new resolution.
func (f Film) WithResolution(width, height int) Film {
	f.Width = width
	f.Height = height
	if height > 0 {
		f.AspectRatio = float64(width) / float64(height)
	}
	return f
}

// Number of pixels covered by the film.
func (f Film) NumPixels() int {
	return f.Width * f.Height
}

func (f Film) String() string {
	return fmt.Sprintf("%dx%d, fov %3.1f°", f.Width, f.Height, f.FOV*180.0/math.Pi)
}
