package polynomial

import "errors"

var (
	// ErrInvalidThreshold is returned when k < 1.
	ErrInvalidThreshold = errors.New("polynomial: threshold must be at least 1")

	// ErrInsufficientPoints is returned when fewer than k points are supplied.
	ErrInsufficientPoints = errors.New("polynomial: insufficient points")

	// ErrDuplicateAbscissa is returned when two of the k consumed points share
	// an x-coordinate. In prime-field mode this includes x-coordinates that are
	// congruent modulo the field order.
	ErrDuplicateAbscissa = errors.New("polynomial: duplicate abscissa")

	// ErrInterpolationInconsistent is returned when the interpolated constant
	// term is not an integer, which means the points do not lie on an
	// integer-coefficient polynomial of degree < k.
	ErrInterpolationInconsistent = errors.New("polynomial: interpolation inconsistent")

	// ErrNilCoordinate is returned for a point with a missing coordinate.
	ErrNilCoordinate = errors.New("polynomial: nil coordinate")
)
