package icc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var d65 = XYZType{0.95047, 1.0, 1.08883}

func TestAdaptationMatrixIdentityShortCircuit(t *testing.T) {
	t.Run("EqualWhites", func(t *testing.T) {
		m, err := AdaptationMatrix(D50, D50, BradfordAdaptation)
		require.NoError(t, err)
		assert.Equal(t, identity_matrix, m)
	})
	t.Run("WithinTolerance", func(t *testing.T) {
		near := XYZType{D50.X + 0.5*WHITE_POINT_TOLERANCE, D50.Y, D50.Z}
		m, err := AdaptationMatrix(near, D50, BradfordAdaptation)
		require.NoError(t, err)
		assert.Equal(t, identity_matrix, m)
	})
	t.Run("NoAdaptation", func(t *testing.T) {
		m, err := AdaptationMatrix(d65, D50, NoAdaptation)
		require.NoError(t, err)
		assert.Equal(t, identity_matrix, m)
	})
}

// Reference values from the published Bradford D65 -> D50 matrix.
func TestBradfordD65ToD50(t *testing.T) {
	m, err := AdaptationMatrix(d65, D50, BradfordAdaptation)
	require.NoError(t, err)
	expected := Matrix3{
		{1.047811, 0.022887, -0.050127},
		{0.029542, 0.990484, -0.017049},
		{-0.009234, 0.015044, 0.752132},
	}
	assert.True(t, m.Equals(&expected, 1e-3), "%v", m)
	// the adapted source white must land on the destination white
	x, y, z := m.Apply(d65.X, d65.Y, d65.Z)
	assert.True(t, D50.Equals(XYZType{x, y, z}, 1e-4))
}

func TestAdaptationMapsWhiteToWhite(t *testing.T) {
	for _, method := range []AdaptationMethod{BradfordAdaptation, VonKriesAdaptation, XYZScalingAdaptation} {
		t.Run(method.String(), func(t *testing.T) {
			m, err := AdaptationMatrix(d65, D50, method)
			require.NoError(t, err)
			x, y, z := m.Apply(d65.X, d65.Y, d65.Z)
			assert.True(t, D50.Equals(XYZType{x, y, z}, 1e-6), "%v", XYZType{x, y, z})
		})
	}
}

func TestAdaptationRoundTrip(t *testing.T) {
	fwd, err := AdaptationMatrix(d65, D50, BradfordAdaptation)
	require.NoError(t, err)
	back, err := AdaptationMatrix(D50, d65, BradfordAdaptation)
	require.NoError(t, err)
	prod := back.Multiply(fwd)
	assert.True(t, prod.Equals(&identity_matrix, 1e-9), "%v", prod)
}

func TestAdaptationDegenerateWhite(t *testing.T) {
	_, err := AdaptationMatrix(XYZType{}, D50, BradfordAdaptation)
	require.ErrorContains(t, err, "degenerate")
}
