package icc

import (
	"fmt"
)

// Matrix3 is a row-major 3x3 matrix with pure value semantics.
type Matrix3 [3][3]unit_float

var identity_matrix = Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func IdentityMatrix3() Matrix3 { return identity_matrix }

func (m *Matrix3) IsIdentity() bool {
	return *m == identity_matrix
}

func (m *Matrix3) Equals(o *Matrix3, threshold unit_float) bool {
	for i := range 3 {
		for j := range 3 {
			if abs(m[i][j]-o[i][j]) > threshold {
				return false
			}
		}
	}
	return true
}

// Multiply returns m*o.
func (m Matrix3) Multiply(o Matrix3) (ans Matrix3) {
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return
}

func (m Matrix3) Transposed() (ans Matrix3) {
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = m[j][i]
		}
	}
	return
}

func (m *Matrix3) Determinant() unit_float {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Apply multiplies the column vector (x, y, z) by the matrix.
func (m *Matrix3) Apply(x, y, z unit_float) (unit_float, unit_float, unit_float) {
	return m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z
}

// Inverted computes the inverse via the adjugate. Determinants with
// magnitude below MATRIX_DET_TOLERANCE are treated as singular.
func (mat *Matrix3) Inverted() (ans Matrix3, err error) {
	det := mat.Determinant()
	if abs(det) < MATRIX_DET_TOLERANCE {
		return ans, fmt.Errorf("matrix is singular and cannot be inverted (det=%g)", det)
	}
	invDet := 1 / det
	adj := Matrix3{
		{
			(mat[1][1]*mat[2][2] - mat[1][2]*mat[2][1]),
			(mat[0][2]*mat[2][1] - mat[0][1]*mat[2][2]),
			(mat[0][1]*mat[1][2] - mat[0][2]*mat[1][1]),
		},
		{
			(mat[1][2]*mat[2][0] - mat[1][0]*mat[2][2]),
			(mat[0][0]*mat[2][2] - mat[0][2]*mat[2][0]),
			(mat[0][2]*mat[1][0] - mat[0][0]*mat[1][2]),
		},
		{
			(mat[1][0]*mat[2][1] - mat[1][1]*mat[2][0]),
			(mat[0][1]*mat[2][0] - mat[0][0]*mat[2][1]),
			(mat[0][0]*mat[1][1] - mat[0][1]*mat[1][0]),
		},
	}
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = invDet * adj[i][j]
		}
	}
	return
}

// Flat returns the row-major elements, as consumed by the batch kernels.
func (m *Matrix3) Flat() (ans [9]unit_float) {
	for i := range 3 {
		for j := range 3 {
			ans[i*3+j] = m[i][j]
		}
	}
	return
}
