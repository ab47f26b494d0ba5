package tracer

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFrame      = errors.New("tracer: frame has no pixels")
	ErrInvalidTileSize = errors.New("tracer: tile size must be positive")
)

// A TileError reports a tile task that failed, naming the pixel range whose
// values were lost.
type TileError struct {
	Range TileRange
	Cause error
}

func (e *TileError) Error() string {
	return fmt.Sprintf("tracer: tile %s failed: %v", e.Range, e.Cause)
}

func (e *TileError) Unwrap() error {
	return e.Cause
}
