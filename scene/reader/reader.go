package reader

import (
	"fmt"
	"path"
	"strings"

	"github.com/smukherjee2016/sayo-pbr/asset"
	"github.com/smukherjee2016/sayo-pbr/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from a local file or http/https URL. The reader is selected by
// the file extension.
func ReadScene(filename string) (*scene.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var reader Reader
	switch res.Ext() {
	case ".toml":
		reader = newTomlReader()
	default:
		return nil, fmt.Errorf("scene reader: unsupported scene format '%s'", res.Ext())
	}
	return reader.Read(res)
}

// Read the meshes from a mesh file, resolving its path relative to relTo.
// The format is checked before the resource is opened.
func readMeshes(pathToMesh string, relTo *asset.Resource) ([]*scene.Mesh, error) {
	ext := meshExt(pathToMesh)
	if ext != ".obj" {
		return nil, fmt.Errorf("scene reader: unsupported mesh format '%s'", ext)
	}

	res, err := asset.NewResource(pathToMesh, relTo)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newWavefrontReader().ReadMeshes(res)
}

// Get the lowercase extension of a mesh path or URL, ignoring any query
// string or fragment.
func meshExt(pathToMesh string) string {
	if index := strings.IndexAny(pathToMesh, "?#"); index != -1 {
		pathToMesh = pathToMesh[:index]
	}
	return strings.ToLower(path.Ext(pathToMesh))
}
