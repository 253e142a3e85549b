package simd

import "sync"

// Kernels is the set of batch routines over interleaved 3-component float64
// pixel data. The wide variants process several pixels per loop iteration;
// each pixel goes through exactly the same arithmetic in the same order as
// the scalar kernel, so outputs are bit identical across implementations.
type Kernels struct {
	Name string
	// MatrixMul multiplies every 3-vector in pix by the row-major matrix m,
	// in place. len(pix) must be a multiple of 3.
	MatrixMul func(m *[9]float64, pix []float64)
	// Curve3 applies r, g and b to the respective channels of every
	// interleaved triple, in place.
	Curve3 func(r, g, b func(float64) float64, pix []float64)
	// Clamp01 clamps every element to [0, 1], in place.
	Clamp01 func(pix []float64)
}

func matrix_mul_pixel(m *[9]float64, pix []float64) {
	x, y, z := pix[0], pix[1], pix[2]
	pix[0] = m[0]*x + m[1]*y + m[2]*z
	pix[1] = m[3]*x + m[4]*y + m[5]*z
	pix[2] = m[6]*x + m[7]*y + m[8]*z
}

func matrix_mul_scalar(m *[9]float64, pix []float64) {
	for i := 0; i+3 <= len(pix); i += 3 {
		matrix_mul_pixel(m, pix[i:i+3:i+3])
	}
}

func curve3_scalar(r, g, b func(float64) float64, pix []float64) {
	for i := 0; i+3 <= len(pix); i += 3 {
		p := pix[i : i+3 : i+3]
		p[0] = r(p[0])
		p[1] = g(p[1])
		p[2] = b(p[2])
	}
}

func clamp01_scalar(pix []float64) {
	for i, v := range pix {
		if v < 0 {
			pix[i] = 0
		} else if v > 1 {
			pix[i] = 1
		}
	}
}

// The wide kernels unroll over blocks of pixels. Per pixel the operations
// and their order are identical to the scalar kernels, which is what makes
// the bit-identical output contract hold by construction.

func matrix_mul_wide4(m *[9]float64, pix []float64) {
	i := 0
	for ; i+12 <= len(pix); i += 12 {
		matrix_mul_pixel(m, pix[i:i+3:i+3])
		matrix_mul_pixel(m, pix[i+3:i+6:i+6])
		matrix_mul_pixel(m, pix[i+6:i+9:i+9])
		matrix_mul_pixel(m, pix[i+9:i+12:i+12])
	}
	matrix_mul_scalar(m, pix[i:])
}

func matrix_mul_wide2(m *[9]float64, pix []float64) {
	i := 0
	for ; i+6 <= len(pix); i += 6 {
		matrix_mul_pixel(m, pix[i:i+3:i+3])
		matrix_mul_pixel(m, pix[i+3:i+6:i+6])
	}
	matrix_mul_scalar(m, pix[i:])
}

func curve3_wide2(r, g, b func(float64) float64, pix []float64) {
	i := 0
	for ; i+6 <= len(pix); i += 6 {
		p := pix[i : i+6 : i+6]
		p[0] = r(p[0])
		p[1] = g(p[1])
		p[2] = b(p[2])
		p[3] = r(p[3])
		p[4] = g(p[4])
		p[5] = b(p[5])
	}
	curve3_scalar(r, g, b, pix[i:])
}

func clamp01_wide4(pix []float64) {
	i := 0
	for ; i+4 <= len(pix); i += 4 {
		clamp01_scalar(pix[i : i+4 : i+4])
	}
	clamp01_scalar(pix[i:])
}

// Scalar returns the reference kernels.
func Scalar() Kernels {
	return Kernels{
		Name:      "scalar",
		MatrixMul: matrix_mul_scalar,
		Curve3:    curve3_scalar,
		Clamp01:   clamp01_scalar,
	}
}

// Active returns the kernels selected for the detected CPU features. The
// selection is made once and never changes within the process lifetime.
var Active = sync.OnceValue(func() Kernels {
	f := Detect()
	switch {
	case f.HasAVX2 || f.HasNEON:
		return Kernels{
			Name:      f.Name(),
			MatrixMul: matrix_mul_wide4,
			Curve3:    curve3_wide2,
			Clamp01:   clamp01_wide4,
		}
	case f.HasSSE41:
		return Kernels{
			Name:      f.Name(),
			MatrixMul: matrix_mul_wide2,
			Curve3:    curve3_wide2,
			Clamp01:   clamp01_wide4,
		}
	default:
		return Scalar()
	}
})
