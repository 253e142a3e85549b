package cms

import (
	"fmt"
	"sync"

	"github.com/kovidgoyal/cms/icc"
	"github.com/kovidgoyal/cms/simd"
)

var _ = fmt.Print

// TransformKind tags the pipeline variant held by a Transform. Only the
// matrix-shaper variant exists today; LUT and gray variants are new kinds
// plus new switch arms, not new types.
type TransformKind int

const (
	MatrixShaperKind TransformKind = iota
)

func (k TransformKind) String() string {
	switch k {
	case MatrixShaperKind:
		return "MatrixShaper"
	default:
		return fmt.Sprintf("TransformKind(%d)", int(k))
	}
}

// Transform converts pixels from a source to a destination color space. It
// is immutable once built and holds no external resources; it may be shared
// freely between goroutines.
type Transform struct {
	kind TransformKind
	ms   matrixShaper
}

// The composed matrix-shaper stages:
// encode(dst_inverse · [bpc] · adapt · (src_matrix · decode(rgb))).
// The matrices collapse into one 3x3 (plus an offset when black point
// compensation is active) computed once at build time.
type matrixShaper struct {
	decode [3]icc.Curve1D
	encode [3]icc.Curve1D

	src_matrix  icc.Matrix3
	adaptation  icc.Matrix3
	dst_inverse icc.Matrix3

	combined   [9]float64
	offset     [3]float64
	has_offset bool
	clamp      bool

	kernels simd.Kernels

	decode8  *[3][256]float64
	decode16 func() *[3][]float64
}

// NewTransform builds a pipeline from two parsed profiles. Both profiles
// must classify as matrix-shaper; anything else fails fast with
// icc.UnsupportedError, there is no degraded fallback path.
func NewTransform(src, dst *icc.Profile, ctx Context) (*Transform, error) {
	if !src.IsMatrixShaper() {
		return nil, &icc.UnsupportedError{Reason: "source profile is not a matrix-shaper profile"}
	}
	if !dst.IsMatrixShaper() {
		return nil, &icc.UnsupportedError{Reason: "destination profile is not a matrix-shaper profile"}
	}
	ms := matrixShaper{clamp: ctx.Flags.ClampOutput, kernels: simd.Active()}
	var err error
	if ms.src_matrix, err = src.ColorantMatrix(); err != nil {
		return nil, err
	}
	dst_matrix, err := dst.ColorantMatrix()
	if err != nil {
		return nil, err
	}

	pcs_white := ctx.PCSWhitePoint
	if pcs_white == (icc.XYZType{}) {
		pcs_white = icc.D50
	}
	src_white, dst_white := src.WhitePoint(), dst.WhitePoint()
	if err = validate_white_point("source", src_white); err != nil {
		return nil, err
	}
	if err = validate_white_point("destination", dst_white); err != nil {
		return nil, err
	}

	switch ctx.ColorantHandling {
	case ColorantsDeviceNative:
		// Adapt each side's colorants to the PCS white point up front;
		// the sides then meet in a common space and need no further
		// adaptation.
		m, err := icc.AdaptationMatrix(src_white, pcs_white, ctx.Adaptation)
		if err != nil {
			return nil, &icc.CorruptedDataError{Reason: err.Error()}
		}
		ms.src_matrix = m.Multiply(ms.src_matrix)
		if m, err = icc.AdaptationMatrix(dst_white, pcs_white, ctx.Adaptation); err != nil {
			return nil, &icc.CorruptedDataError{Reason: err.Error()}
		}
		dst_matrix = m.Multiply(dst_matrix)
		ms.adaptation = icc.IdentityMatrix3()
	default:
		if ctx.Intent == icc.AbsoluteColorimetricRenderingIntent {
			// Absolute colorimetric preserves the source white: scale
			// XYZ by the white point ratio instead of adapting.
			ms.adaptation = icc.Matrix3{
				{src_white.X / dst_white.X, 0, 0},
				{0, src_white.Y / dst_white.Y, 0},
				{0, 0, src_white.Z / dst_white.Z},
			}
		} else {
			if ms.adaptation, err = icc.AdaptationMatrix(src_white, dst_white, ctx.Adaptation); err != nil {
				return nil, &icc.CorruptedDataError{Reason: err.Error()}
			}
		}
	}

	// This should not fail for a profile already validated as
	// matrix-shaper, but is still checked.
	if ms.dst_inverse, err = dst_matrix.Inverted(); err != nil {
		return nil, &icc.CorruptedDataError{Reason: err.Error()}
	}

	ms.decode = [3]icc.Curve1D{src.RedTRC(), src.GreenTRC(), src.BlueTRC()}
	ms.encode = [3]icc.Curve1D{dst.RedTRC(), dst.GreenTRC(), dst.BlueTRC()}

	full := ms.dst_inverse.Multiply(ms.adaptation.Multiply(ms.src_matrix))
	if ctx.Flags.BlackPointCompensation && ctx.Intent != icc.AbsoluteColorimetricRenderingIntent {
		if scale, offset, ok := black_point_compensation(src, dst, pcs_white); ok {
			full = ms.dst_inverse.Multiply(scale.Multiply(ms.adaptation.Multiply(ms.src_matrix)))
			ms.offset[0], ms.offset[1], ms.offset[2] = ms.dst_inverse.Apply(offset.X, offset.Y, offset.Z)
			ms.has_offset = true
		}
	}
	ms.combined = full.Flat()

	ms.build_decode_luts()
	t := &Transform{kind: MatrixShaperKind, ms: ms}
	return t, nil
}

// White point components must be strictly positive: the absolute intent
// ratio and black point compensation divide by them. A profile with a
// degenerate wtpt tag parses, but must not build a transform.
func validate_white_point(side string, w icc.XYZType) error {
	if !(w.X > 0 && w.Y > 0 && w.Z > 0) {
		return &icc.CorruptedDataError{Reason: fmt.Sprintf("%s profile media white point is degenerate: %+v", side, w)}
	}
	return nil
}

func black_point_compensation(src, dst *icc.Profile, white icc.XYZType) (icc.Matrix3, icc.XYZType, bool) {
	in_black, _ := src.MediaBlackPoint()
	out_black, _ := dst.MediaBlackPoint()
	return bpc_scale_offset(in_black, out_black, white)
}

// bpc_scale_offset derives the linear XYZ scale and offset mapping the
// source black point onto the destination black point while keeping the
// PCS white point fixed. Returns ok=false when the correction is a no-op
// or not computable (a black point coinciding with the white point).
func bpc_scale_offset(in_black, out_black, white icc.XYZType) (scale icc.Matrix3, offset icc.XYZType, ok bool) {
	if in_black == out_black {
		return scale, offset, false
	}
	tx := in_black.X - white.X
	ty := in_black.Y - white.Y
	tz := in_black.Z - white.Z
	if tx == 0 || ty == 0 || tz == 0 {
		return scale, offset, false
	}
	scale = icc.Matrix3{
		{(out_black.X - white.X) / tx, 0, 0},
		{0, (out_black.Y - white.Y) / ty, 0},
		{0, 0, (out_black.Z - white.Z) / tz},
	}
	offset = icc.XYZType{
		X: -white.X * (out_black.X - in_black.X) / tx,
		Y: -white.Y * (out_black.Y - in_black.Y) / ty,
		Z: -white.Z * (out_black.Z - in_black.Z) / tz,
	}
	return scale, offset, true
}

// The 8-bit decode tables are exact: entry i holds decode(i/255), the same
// value the scalar path computes, so table and direct evaluation cannot
// diverge. The 16-bit tables are larger and built on first use.
func (ms *matrixShaper) build_decode_luts() {
	var lut8 [3][256]float64
	for ch := range 3 {
		c := ms.decode[ch]
		for i := range 256 {
			lut8[ch][i] = c.Transform(float64(i) / 255)
		}
	}
	ms.decode8 = &lut8
	decode := ms.decode
	ms.decode16 = sync.OnceValue(func() *[3][]float64 {
		var lut16 [3][]float64
		for ch := range 3 {
			c := decode[ch]
			lut16[ch] = make([]float64, 65536)
			for i := range 65536 {
				lut16[ch][i] = c.Transform(float64(i) / 65535)
			}
		}
		return &lut16
	})
}

func (t *Transform) Kind() TransformKind { return t.kind }

// KernelName reports which batch kernel implementation this transform
// selected, e.g. "avx2" or "scalar".
func (t *Transform) KernelName() string { return t.ms.kernels.Name }

// SourceMatrix returns the source colorant matrix stage.
func (t *Transform) SourceMatrix() icc.Matrix3 { return t.ms.src_matrix }

// AdaptationMatrix returns the chromatic adaptation stage (identity when
// source and destination white points coincide).
func (t *Transform) AdaptationMatrix() icc.Matrix3 { return t.ms.adaptation }

// DestinationInverseMatrix returns the inverted destination colorant matrix
// stage.
func (t *Transform) DestinationInverseMatrix() icc.Matrix3 { return t.ms.dst_inverse }

// apply_matrix mirrors the per-pixel arithmetic of the batch matrix kernel
// exactly; any change here must be matched in simd.
func (ms *matrixShaper) apply_matrix(x, y, z float64) (float64, float64, float64) {
	m := &ms.combined
	ox := m[0]*x + m[1]*y + m[2]*z
	oy := m[3]*x + m[4]*y + m[5]*z
	oz := m[6]*x + m[7]*y + m[8]*z
	if ms.has_offset {
		ox += ms.offset[0]
		oy += ms.offset[1]
		oz += ms.offset[2]
	}
	return ox, oy, oz
}

func (ms *matrixShaper) encode_clamp(x, y, z float64) (float64, float64, float64) {
	x = ms.encode[0].InverseTransform(x)
	y = ms.encode[1].InverseTransform(y)
	z = ms.encode[2].InverseTransform(z)
	if ms.clamp {
		x, y, z = clamp01(x), clamp01(y), clamp01(z)
	}
	return x, y, z
}

// TransformPixel converts one normalized RGB pixel.
func (t *Transform) TransformPixel(r, g, b float64) (float64, float64, float64) {
	ms := &t.ms
	r = ms.decode[0].Transform(r)
	g = ms.decode[1].Transform(g)
	b = ms.decode[2].Transform(b)
	r, g, b = ms.apply_matrix(r, g, b)
	return ms.encode_clamp(r, g, b)
}

// TransformPixel8 converts one 8-bit RGB pixel.
func (t *Transform) TransformPixel8(r, g, b uint8) (uint8, uint8, uint8) {
	ms := &t.ms
	x, y, z := ms.apply_matrix(ms.decode8[0][r], ms.decode8[1][g], ms.decode8[2][b])
	x, y, z = ms.encode_clamp(x, y, z)
	return quantize8(x), quantize8(y), quantize8(z)
}

// TransformPixel16 converts one 16-bit RGB pixel.
func (t *Transform) TransformPixel16(r, g, b uint16) (uint16, uint16, uint16) {
	ms := &t.ms
	lut := ms.decode16()
	x, y, z := ms.apply_matrix(lut[0][r], lut[1][g], lut[2][b])
	x, y, z = ms.encode_clamp(x, y, z)
	return quantize16(x), quantize16(y), quantize16(z)
}

func quantize8(v float64) uint8 {
	v = clamp01(v)
	return uint8(v*255 + 0.5)
}

func quantize16(v float64) uint16 {
	v = clamp01(v)
	return uint16(v*65535 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
