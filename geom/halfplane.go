package geom

import (
	"errors"
	"fmt"
	"math"
)

// ZeroThreshold is the per-axis magnitude under which a vector sum is considered null
const ZeroThreshold = 0.001

// ErrInvalidInput is returned when a vector set is too small for the requested operation
var ErrInvalidInput = errors.New("geom: invalid input")

// SameHalfPlane reports whether all the vectors lie within 90 degrees of their
// mean direction. Two or fewer vectors always do.
func SameHalfPlane(vectors []Vector2D) bool {
	return SameHalfPlaneTol(vectors, ZeroThreshold)
}

// SameHalfPlaneTol is SameHalfPlane with an explicit null-sum threshold.
func SameHalfPlaneTol(vectors []Vector2D, zeroThres float64) bool {
	if len(vectors) <= 2 {
		return true
	}

	sum := Sum(vectors)

	// the vectors cancel out, there is no mean direction
	if math.Abs(sum.X) < zeroThres && math.Abs(sum.Y) < zeroThres {
		return false
	}

	for _, v := range vectors {
		if Dot(sum, v) < 0 {
			return false
		}
	}
	return true
}

// AngleRangeBoundaries returns the indexes of the two vectors with the widest
// angular separation, ordered so that the second lies counter-clockwise of the first.
// A single vector is both start and end of the range.
func AngleRangeBoundaries(vectors []Vector2D) (start, end int, err error) {
	if len(vectors) < 1 {
		return 0, 0, fmt.Errorf("%w: angle range needs at least one vector", ErrInvalidInput)
	}
	if len(vectors) == 1 {
		return 0, 0, nil
	}

	minDot := 1.0
	i1, i2 := 0, 0
	for i, v1 := range vectors {
		for j, v2 := range vectors {
			if d := Dot(v1, v2); d < minDot {
				minDot = d
				i1, i2 = i, j
			}
		}
	}

	if Cross(vectors[i1], vectors[i2]) > 0 {
		return i1, i2, nil
	}
	return i2, i1, nil
}
