// Package simd provides the batch pixel kernels used by the transform hot
// loops. An implementation is selected once per process from the detected
// CPU features; every implementation is numerically identical to the scalar
// reference, which remains the single source of truth.
package simd

import (
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
)

// Features is the process-wide record of detected instruction-set support.
// It is computed lazily exactly once; detection is deterministic for the
// lifetime of the process so initialization needs no further coordination.
type Features struct {
	HasAVX2  bool
	HasSSE41 bool
	HasNEON  bool
}

func (f Features) Name() string {
	switch {
	case f.HasAVX2:
		return "avx2"
	case f.HasSSE41:
		return "sse4.1"
	case f.HasNEON:
		return "neon"
	default:
		return "scalar"
	}
}

var Detect = sync.OnceValue(func() Features {
	return Features{
		HasAVX2:  cpu.X86.HasAVX2,
		HasSSE41: cpu.X86.HasSSE41,
		HasNEON:  runtime.GOARCH == "arm64" || cpu.ARM64.HasASIMD || cpu.ARM.HasNEON,
	}
})
