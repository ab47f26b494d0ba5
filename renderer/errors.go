package renderer

import "errors"

var (
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInterrupted      = errors.New("renderer: interrupted while rendering")
	ErrTileOutOfRange   = errors.New("renderer: tile range outside of framebuffer")
	ErrShortTile        = errors.New("renderer: tile has fewer pixels than its range")
)
