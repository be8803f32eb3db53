package geometry

import "errors"

var (
	// ErrParameterBounds indicates a generator parameter outside its valid range.
	ErrParameterBounds = errors.New("geometry: parameter out of valid bounds")

	// ErrUnknownHeightFunc indicates a surface height function name with no registration.
	ErrUnknownHeightFunc = errors.New("geometry: unknown height function")
)
