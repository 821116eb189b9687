package spotrod

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is returned when buffers have lengths or dimensions that are
	// inconsistent with each other.
	ErrShape = errors.New("argument shapes not correct")
	// ErrType is returned when a keyword parameter has the wrong element
	// type or dimensionality.
	ErrType = errors.New("argument dimensions or types not correct")
	// ErrArgument is returned when keyword parameters are missing or unknown.
	ErrArgument = errors.New("error parsing arguments")
)

// ShapeError describes a buffer whose shape doesn't match the shape implied
// by the other buffers.
type ShapeError struct {
	Param string
	Got   []int
	Want  []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s has shape %v, expected %v", ErrShape, e.Param, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error { return ErrShape }
