package scene

import (
	"math"
	"testing"

	"github.com/smukherjee2016/sayo-pbr/types"
)

func TestNewFilm(t *testing.T) {
	film, err := NewFilm(640, 480, 90)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(film.FOV-math.Pi/2) > 1e-12 {
		t.Fatalf("expected fov to be pi/2; got %f", film.FOV)
	}
	if film.AspectRatio != 640.0/480.0 {
		t.Fatalf("expected aspect ratio 4/3; got %f", film.AspectRatio)
	}
	if film.Distance != 1 {
		t.Fatalf("expected film distance 1; got %f", film.Distance)
	}
	if film.NumPixels() != 640*480 {
		t.Fatalf("expected %d pixels; got %d", 640*480, film.NumPixels())
	}
}

func TestNewFilmValidation(t *testing.T) {
	type spec struct {
		w, h int
		fov  float64
	}
	specs := []spec{
		{0, 10, 45},
		{10, -1, 45},
		{10, 10, 0},
		{10, 10, 180},
	}

	for index, s := range specs {
		if _, err := NewFilm(s.w, s.h, s.fov); err == nil {
			t.Fatalf("[spec %d] expected an error", index)
		}
	}
}

func TestPinholeCameraRays(t *testing.T) {
	camera := NewPinholeCamera(types.XYZ(0, 0, 5), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0))
	film, err := NewFilm(2, 1, 90)
	if err != nil {
		t.Fatal(err)
	}

	type spec struct {
		x, y   int
		expDir types.Vec3
	}
	specs := []spec{
		// Image plane is 4 units wide and 2 units high at distance 1
		{0, 0, types.XYZ(-1, 0, -1).Normalize()},
		{1, 0, types.XYZ(1, 0, -1).Normalize()},
	}

	for index, s := range specs {
		ray := camera.GenerateRay(s.x, s.y, film)
		if ray.Origin != camera.Position {
			t.Fatalf("[spec %d] expected ray origin %s; got %s", index, camera.Position, ray.Origin)
		}
		if !ray.Dir.ApproxEqual(s.expDir, 1e-9) {
			t.Fatalf("[spec %d] expected ray dir %s; got %s", index, s.expDir, ray.Dir)
		}
		if ray.TMin != 1e-5 || !math.IsInf(ray.TMax, 1) {
			t.Fatalf("[spec %d] expected ray interval [1e-5, +Inf]; got [%g, %g]", index, ray.TMin, ray.TMax)
		}
	}
}

func TestPinholeCameraOrientation(t *testing.T) {
	camera := NewPinholeCamera(types.XYZ(0, 0, 5), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0))
	film, err := NewFilm(3, 3, 60)
	if err != nil {
		t.Fatal(err)
	}

	center := camera.GenerateRay(1, 1, film)
	if exp := types.XYZ(0, 0, -1); !center.Dir.ApproxEqual(exp, 1e-12) {
		t.Fatalf("expected centre ray dir %s; got %s", exp, center.Dir)
	}

	// Row 0 is the bottom of the image; column 0 is the left side
	bottomLeft := camera.GenerateRay(0, 0, film)
	if bottomLeft.Dir[0] >= 0 || bottomLeft.Dir[1] >= 0 {
		t.Fatalf("expected bottom-left ray to point left and down; got %s", bottomLeft.Dir)
	}
	topRight := camera.GenerateRay(2, 2, film)
	if topRight.Dir[0] <= 0 || topRight.Dir[1] <= 0 {
		t.Fatalf("expected top-right ray to point right and up; got %s", topRight.Dir)
	}

	if exp := types.XYZ(0, 0, -1); !camera.Direction().ApproxEqual(exp, 1e-12) {
		t.Fatalf("expected camera direction %s; got %s", exp, camera.Direction())
	}
}

func TestFilmWithResolution(t *testing.T) {
	film, err := NewFilm(100, 100, 60)
	if err != nil {
		t.Fatal(err)
	}

	resized := film.WithResolution(200, 50)
	if resized.Width != 200 || resized.Height != 50 || resized.AspectRatio != 4 {
		t.Fatalf("unexpected resized film %+v", resized)
	}
	if resized.FOV != film.FOV || resized.Distance != film.Distance {
		t.Fatal("expected fov and distance to be preserved")
	}
}
