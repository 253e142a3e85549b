package icc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix3Basics(t *testing.T) {
	m := IdentityMatrix3()
	assert.True(t, m.IsIdentity())
	in_delta(t, 1, m.Determinant(), 1e-12)

	a := Matrix3{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}}
	assert.False(t, a.IsIdentity())
	in_delta(t, -3, a.Determinant(), 1e-9)

	tr := a.Transposed()
	assert.Equal(t, Matrix3{{1, 4, 7}, {2, 5, 8}, {3, 6, 10}}, tr)
	assert.Equal(t, a, tr.Transposed())

	x, y, z := a.Apply(1, 0, 0)
	in_delta_slice(t, []unit_float{1, 4, 7}, []unit_float{x, y, z}, 1e-12)

	assert.Equal(t, a, a.Multiply(identity_matrix))
	assert.Equal(t, a, identity_matrix.Multiply(a))

	flat := a.Flat()
	assert.Equal(t, [9]unit_float{1, 2, 3, 4, 5, 6, 7, 8, 10}, flat)
}

func TestMatrix3Inverted(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		a := Matrix3{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}}
		inv, err := a.Inverted()
		require.NoError(t, err)
		prod := a.Multiply(inv)
		assert.True(t, prod.Equals(&identity_matrix, 1e-9), "%v", prod)
		prod = inv.Multiply(a)
		assert.True(t, prod.Equals(&identity_matrix, 1e-9), "%v", prod)
	})
	t.Run("Colorants", func(t *testing.T) {
		inv, err := srgb_colorants.Inverted()
		require.NoError(t, err)
		prod := srgb_colorants.Multiply(inv)
		assert.True(t, prod.Equals(&identity_matrix, 1e-9))
	})
	t.Run("Singular", func(t *testing.T) {
		s := Matrix3{{1, 2, 3}, {2, 4, 6}, {3, 6, 9}}
		_, err := s.Inverted()
		require.ErrorContains(t, err, "singular")
	})
	t.Run("NearSingular", func(t *testing.T) {
		s := Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1e-11}}
		_, err := s.Inverted()
		require.Error(t, err)
	})
}

func TestMatrix3Equals(t *testing.T) {
	a := Matrix3{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}}
	b := a
	b[2][2] += 1e-7
	assert.True(t, a.Equals(&b, 1e-6))
	assert.False(t, a.Equals(&b, 1e-8))
}
