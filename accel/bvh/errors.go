package bvh

import "errors"

var (
	ErrNoPrimitives = errors.New("bvh: cannot build a tree without primitives")
)
