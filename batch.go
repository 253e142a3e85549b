package cms

import (
	"fmt"
	"sync"
)

// Whole-buffer operations. Buffers are caller owned; the destination must be
// at least as large as the source and the source length must be a whole
// number of pixels. Violations are programmer errors and panic; they are
// never confused with profile-driven errors. Destination and source may
// alias for in-place conversion.

const batch_pixels = 1024

var scratch_pool = sync.Pool{
	New: func() any {
		b := make([]float64, 3*batch_pixels)
		return &b
	},
}

func check_buffers(op string, dst_len, src_len, stride int) {
	if src_len%stride != 0 {
		panic(fmt.Sprintf("cms: %s: source length %d is not a multiple of %d", op, src_len, stride))
	}
	if dst_len < src_len {
		panic(fmt.Sprintf("cms: %s: destination length %d smaller than source length %d", op, dst_len, src_len))
	}
}

func (ms *matrixShaper) run_batch(scratch []float64) {
	ms.kernels.MatrixMul(&ms.combined, scratch)
	if ms.has_offset {
		for i := 0; i+3 <= len(scratch); i += 3 {
			scratch[i] += ms.offset[0]
			scratch[i+1] += ms.offset[1]
			scratch[i+2] += ms.offset[2]
		}
	}
	ms.kernels.Curve3(
		ms.encode[0].InverseTransform,
		ms.encode[1].InverseTransform,
		ms.encode[2].InverseTransform,
		scratch)
	if ms.clamp {
		ms.kernels.Clamp01(scratch)
	}
}

// TransformRGB8 converts packed 8-bit RGB triples from src into dst.
func (t *Transform) TransformRGB8(dst, src []uint8) {
	check_buffers("TransformRGB8", len(dst), len(src), 3)
	t.transform8(dst, src, 3)
}

// TransformRGBA8 converts packed 8-bit RGBA quads; alpha is copied through
// unmodified.
func (t *Transform) TransformRGBA8(dst, src []uint8) {
	check_buffers("TransformRGBA8", len(dst), len(src), 4)
	t.transform8(dst, src, 4)
}

func (t *Transform) transform8(dst, src []uint8, stride int) {
	ms := &t.ms
	lut := ms.decode8
	sp := scratch_pool.Get().(*[]float64)
	defer scratch_pool.Put(sp)
	scratch := *sp
	num_pixels := len(src) / stride
	for start := 0; start < num_pixels; start += batch_pixels {
		n := min(batch_pixels, num_pixels-start)
		buf := scratch[:3*n]
		for i := range n {
			s := src[(start+i)*stride:]
			buf[3*i] = lut[0][s[0]]
			buf[3*i+1] = lut[1][s[1]]
			buf[3*i+2] = lut[2][s[2]]
		}
		ms.run_batch(buf)
		for i := range n {
			d := dst[(start+i)*stride:]
			d[0] = quantize8(buf[3*i])
			d[1] = quantize8(buf[3*i+1])
			d[2] = quantize8(buf[3*i+2])
			if stride == 4 {
				d[3] = src[(start+i)*stride+3]
			}
		}
	}
}

// TransformRGB16 converts packed 16-bit RGB triples from src into dst.
func (t *Transform) TransformRGB16(dst, src []uint16) {
	check_buffers("TransformRGB16", len(dst), len(src), 3)
	t.transform16(dst, src, 3)
}

// TransformRGBA16 converts packed 16-bit RGBA quads; alpha is copied through
// unmodified.
func (t *Transform) TransformRGBA16(dst, src []uint16) {
	check_buffers("TransformRGBA16", len(dst), len(src), 4)
	t.transform16(dst, src, 4)
}

func (t *Transform) transform16(dst, src []uint16, stride int) {
	ms := &t.ms
	lut := ms.decode16()
	sp := scratch_pool.Get().(*[]float64)
	defer scratch_pool.Put(sp)
	scratch := *sp
	num_pixels := len(src) / stride
	for start := 0; start < num_pixels; start += batch_pixels {
		n := min(batch_pixels, num_pixels-start)
		buf := scratch[:3*n]
		for i := range n {
			s := src[(start+i)*stride:]
			buf[3*i] = lut[0][s[0]]
			buf[3*i+1] = lut[1][s[1]]
			buf[3*i+2] = lut[2][s[2]]
		}
		ms.run_batch(buf)
		for i := range n {
			d := dst[(start+i)*stride:]
			d[0] = quantize16(buf[3*i])
			d[1] = quantize16(buf[3*i+1])
			d[2] = quantize16(buf[3*i+2])
			if stride == 4 {
				d[3] = src[(start+i)*stride+3]
			}
		}
	}
}

// TransformFloat64 converts packed normalized float64 RGB triples from src
// into dst without quantization.
func (t *Transform) TransformFloat64(dst, src []float64) {
	check_buffers("TransformFloat64", len(dst), len(src), 3)
	ms := &t.ms
	copy(dst[:len(src)], src)
	buf := dst[:len(src)]
	ms.kernels.Curve3(
		ms.decode[0].Transform,
		ms.decode[1].Transform,
		ms.decode[2].Transform,
		buf)
	ms.run_batch(buf)
}
