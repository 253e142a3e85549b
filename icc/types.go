package icc

import (
	"fmt"
	"math"
)

var _ = fmt.Print

type unit_float = float64

// Determinants lower than this are assumed zero (used on matrix invert and
// when classifying colorant matrices).
const MATRIX_DET_TOLERANCE = 1e-10

// Two floats closer than this are considered equal for curve/matrix
// simplification purposes.
const FLOAT_EQUALITY_THRESHOLD = 1e-6

// White points closer than this (per component) need no chromatic adaptation.
const WHITE_POINT_TOLERANCE = 1e-4

// D50 is the nominal PCS illuminant mandated by the ICC specification.
var D50 = XYZType{0.9642, 1.0, 0.8249}

// XYZType is a CIE XYZ tristimulus triple.
type XYZType struct {
	X, Y, Z unit_float
}

func (a XYZType) Equals(b XYZType, threshold unit_float) bool {
	return abs(a.X-b.X) <= threshold && abs(a.Y-b.Y) <= threshold && abs(a.Z-b.Z) <= threshold
}

func (a XYZType) String() string {
	return fmt.Sprintf("XYZ{%g, %g, %g}", a.X, a.Y, a.Z)
}

func abs(x unit_float) unit_float {
	return math.Abs(float64(x))
}

func clamp01(x unit_float) unit_float {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
