package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/smukherjee2016/sayo-pbr/geometry"
)

// Integrator types recognized in scene descriptions.
const (
	DirectLighting = "direct_lighting"
	PathTracerBSDF = "path_tracer_bsdf"
	PathTracerNEE  = "path_tracer_nee"
)

// A named group of triangles loaded from a mesh file.
type Mesh struct {
	Name      string
	Triangles []*geometry.Triangle
}

// Get the mesh bounding box.
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.EmptyBox()
	for _, tri := range m.Triangles {
		bbox = geometry.Union(bbox, tri.BoundingBox())
	}
	return bbox
}

// A Scene bundles the camera, film and geometry needed for a render
// together with the render settings read from the scene description.
type Scene struct {
	Camera *PinholeCamera
	Film   Film

	Meshes []*Mesh

	// Integrator type. Unknown types are mapped to DirectLighting by the
	// scene reader.
	Integrator string

	// Render settings. Zero values mean "use the renderer default".
	SamplesPerPixel int
	NumBounces      int

	// Output file for the HDR frame; may be empty.
	HDROutputFile string
}

// Collect the triangles of all meshes as a flat primitive list.
func (sc *Scene) Primitives() []geometry.Primitive {
	prims := make([]geometry.Primitive, 0, sc.NumTriangles())
	for _, mesh := range sc.Meshes {
		for _, tri := range mesh.Triangles {
			prims = append(prims, tri)
		}
	}
	return prims
}

// Count the triangles in the scene.
func (sc *Scene) NumTriangles() int {
	var count int
	for _, mesh := range sc.Meshes {
		count += len(mesh.Triangles)
	}
	return count
}

// Get the bounding box of all scene geometry.
func (sc *Scene) BoundingBox() geometry.BoundingBox {
	bbox := geometry.EmptyBox()
	for _, mesh := range sc.Meshes {
		bbox = geometry.Union(bbox, mesh.BoundingBox())
	}
	return bbox
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Mesh", "Triangles", "Bounds"})
	for _, mesh := range sc.Meshes {
		table.Append([]string{
			mesh.Name,
			fmt.Sprintf("%d", len(mesh.Triangles)),
			mesh.BoundingBox().String(),
		})
	}
	table.SetFooter([]string{"Total", fmt.Sprintf("%d", sc.NumTriangles()), sc.BoundingBox().String()})

	table.Render()
	return buf.String()
}
