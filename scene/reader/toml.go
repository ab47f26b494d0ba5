package reader

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/smukherjee2016/sayo-pbr/asset"
	"github.com/smukherjee2016/sayo-pbr/log"
	"github.com/smukherjee2016/sayo-pbr/scene"
	"github.com/smukherjee2016/sayo-pbr/types"
)

// Camera types recognized in scene descriptions.
const (
	pinholeCamera = "pinhole"
	meshPrimitive = "mesh"
)

type tomlTransform struct {
	Position []float64 `toml:"position"`
	LookAt   []float64 `toml:"look_at"`
	Up       []float64 `toml:"up"`
}

type tomlCamera struct {
	Type       string        `toml:"type"`
	Resolution []float64     `toml:"resolution"`
	FOV        float64       `toml:"fov"`
	Transform  tomlTransform `toml:"transform"`
}

type tomlRenderer struct {
	HDROutputFile string `toml:"hdr_output_file"`
	Samples       int    `toml:"samples"`
	Bounces       int    `toml:"bounces"`
}

type tomlIntegrator struct {
	Type string `toml:"type"`
}

type tomlPrimitive struct {
	Type string `toml:"type"`
	File string `toml:"file"`
}

// The on-disk layout of a TOML scene description.
type tomlScene struct {
	Camera     tomlCamera      `toml:"camera"`
	Renderer   tomlRenderer    `toml:"renderer"`
	Integrator tomlIntegrator  `toml:"integrator"`
	Primitives []tomlPrimitive `toml:"primitives"`
}

type tomlReader struct {
	logger log.Logger
}

func newTomlReader() *tomlReader {
	return &tomlReader{
		logger: log.New("scene reader"),
	}
}

// Read a scene description. Mesh files are resolved relative to the
// scene resource.
func (r *tomlReader) Read(res *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, res.Path())
	start := time.Now()

	var desc tomlScene
	meta, err := toml.NewDecoder(res).Decode(&desc)
	if err != nil {
		return nil, fmt.Errorf("scene reader: could not parse '%s': %w", res.Path(), err)
	}
	for _, key := range meta.Undecoded() {
		r.logger.Warningf(`ignoring unknown key "%s"`, key.String())
	}

	sc := &scene.Scene{
		HDROutputFile:   desc.Renderer.HDROutputFile,
		SamplesPerPixel: desc.Renderer.Samples,
		NumBounces:      desc.Renderer.Bounces,
		Integrator:      r.selectIntegrator(desc.Integrator.Type),
	}

	if sc.Film, err = r.buildFilm(desc.Camera); err != nil {
		return nil, err
	}
	if sc.Camera, err = r.buildCamera(desc.Camera); err != nil {
		return nil, err
	}

	for index, prim := range desc.Primitives {
		switch strings.ToLower(prim.Type) {
		case meshPrimitive:
			if prim.File == "" {
				return nil, fmt.Errorf("scene reader: primitive %d: missing mesh file", index)
			}
			meshes, err := readMeshes(prim.File, res)
			if err != nil {
				return nil, fmt.Errorf("scene reader: primitive %d: %w", index, err)
			}
			sc.Meshes = append(sc.Meshes, meshes...)
		default:
			r.logger.Warningf(`found unsupported primitive type "%s"; skipping`, prim.Type)
		}
	}

	r.logger.Noticef("parsed scene with %d triangles in %d ms", sc.NumTriangles(), time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}

func (r *tomlReader) selectIntegrator(name string) string {
	name = strings.ToLower(name)
	switch name {
	case scene.DirectLighting, scene.PathTracerBSDF, scene.PathTracerNEE:
		return name
	}
	r.logger.Warningf(`found unsupported integrator "%s"; falling back to %s`, name, scene.DirectLighting)
	return scene.DirectLighting
}

func (r *tomlReader) buildFilm(cam tomlCamera) (scene.Film, error) {
	if len(cam.Resolution) != 2 {
		return scene.Film{}, fmt.Errorf("scene reader: camera.resolution: expected 2 values; got %d", len(cam.Resolution))
	}
	return scene.NewFilm(int(cam.Resolution[0]), int(cam.Resolution[1]), cam.FOV)
}

func (r *tomlReader) buildCamera(cam tomlCamera) (*scene.PinholeCamera, error) {
	if cam.Type != pinholeCamera {
		r.logger.Warningf(`unknown or unsupported camera type "%s"; falling back to %s`, cam.Type, pinholeCamera)
	}

	position, err := parseTomlVec3("camera.transform.position", cam.Transform.Position)
	if err != nil {
		return nil, err
	}
	lookAt, err := parseTomlVec3("camera.transform.look_at", cam.Transform.LookAt)
	if err != nil {
		return nil, err
	}
	up, err := parseTomlVec3("camera.transform.up", cam.Transform.Up)
	if err != nil {
		return nil, err
	}

	if lookAt.Sub(position).Cross(up).Len() == 0 {
		return nil, fmt.Errorf("scene reader: camera up vector %s is parallel to the view direction", up)
	}
	return scene.NewPinholeCamera(position, lookAt, up), nil
}

func parseTomlVec3(key string, values []float64) (types.Vec3, error) {
	if len(values) != 3 {
		return types.Vec3{}, fmt.Errorf("scene reader: %s: expected 3 values; got %d", key, len(values))
	}
	return types.XYZ(values[0], values[1], values[2]), nil
}
