package icc

import (
	"fmt"
)

// AdaptationMethod selects the cone response basis used for chromatic
// adaptation between white points.
type AdaptationMethod int

const (
	// Bradford is the ICC default and the method used by lcms.
	BradfordAdaptation AdaptationMethod = iota
	VonKriesAdaptation
	XYZScalingAdaptation
	NoAdaptation
)

func (m AdaptationMethod) String() string {
	switch m {
	case BradfordAdaptation:
		return "Bradford"
	case VonKriesAdaptation:
		return "VonKries"
	case XYZScalingAdaptation:
		return "XYZScaling"
	case NoAdaptation:
		return "None"
	default:
		return fmt.Sprintf("AdaptationMethod(%d)", int(m))
	}
}

// Bradford (Lam-Rigg) XYZ -> cone response basis.
var bradford_basis = Matrix3{
	{0.8951, 0.2664, -0.1614},
	{-0.7502, 1.7135, 0.0367},
	{0.0389, -0.0685, 1.0296},
}

var von_kries_basis = Matrix3{
	{0.40024, 0.70760, -0.08081},
	{-0.22630, 1.16532, 0.04570},
	{0.00000, 0.00000, 0.91822},
}

func (m AdaptationMethod) basis() Matrix3 {
	switch m {
	case BradfordAdaptation:
		return bradford_basis
	case VonKriesAdaptation:
		return von_kries_basis
	default:
		return identity_matrix
	}
}

// AdaptationMatrix computes the 3x3 matrix that maps tristimulus values
// relative to src_white onto dst_white. When the white points coincide the
// identity is returned without going through the cone space at all, so no
// floating point drift is introduced where no adaptation is needed.
func AdaptationMatrix(src_white, dst_white XYZType, method AdaptationMethod) (Matrix3, error) {
	if method == NoAdaptation || src_white.Equals(dst_white, WHITE_POINT_TOLERANCE) {
		return identity_matrix, nil
	}
	cone := method.basis()
	cone_inv, err := cone.Inverted()
	if err != nil {
		return identity_matrix, err
	}
	sx, sy, sz := cone.Apply(src_white.X, src_white.Y, src_white.Z)
	dx, dy, dz := cone.Apply(dst_white.X, dst_white.Y, dst_white.Z)
	if abs(sx) < MATRIX_DET_TOLERANCE || abs(sy) < MATRIX_DET_TOLERANCE || abs(sz) < MATRIX_DET_TOLERANCE {
		return identity_matrix, fmt.Errorf("degenerate source white point: %v", src_white)
	}
	ratio := Matrix3{
		{dx / sx, 0, 0},
		{0, dy / sy, 0},
		{0, 0, dz / sz},
	}
	return cone_inv.Multiply(ratio.Multiply(cone)), nil
}
