package imageio

import "errors"

var (
	ErrUnsupportedFormat = errors.New("imageio: unsupported output format")
	ErrEmptyFrame        = errors.New("imageio: frame has no pixels")
)
