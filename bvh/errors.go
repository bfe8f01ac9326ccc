package bvh

import "errors"

var (
	// Returned when a build or merge receives no boxes.
	ErrEmptyInput = errors.New("bvh: empty input")

	// Returned for NaN, infinite or inverted bounds.
	ErrInvalidBound = errors.New("bvh: invalid bounding box")

	// Returned when a flat tree violates the pre-order index layout.
	ErrMalformedTree = errors.New("bvh: malformed flat tree")
)
