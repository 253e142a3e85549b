package icc

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func in_delta(t *testing.T, expected, actual unit_float, tolerance float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, float64(expected), float64(actual), tolerance, msgAndArgs...)
}

func in_delta_slice(t *testing.T, expected, actual []unit_float, tolerance float64) {
	t.Helper()
	assert.InDeltaSlice(t, expected, actual, tolerance)
}

func floatToFixed88(f unit_float) uint16 {
	// Clamp the value to fit in 8.8 range
	if f < 0 {
		f = 0
	}
	if f > 255.99609375 { // 255 + 255/256
		f = 255.99609375
	}
	return uint16(math.Round(float64(f * 256)))
}

func curv_bytes(params ...unit_float) []byte {
	b := bytes.NewBuffer([]byte("curv\x00\x00\x00\x00"))
	_ = binary.Write(b, binary.BigEndian, uint32(len(params)))
	if len(params) == 1 {
		_ = binary.Write(b, binary.BigEndian, floatToFixed88(params[0]))
	} else {
		for _, p := range params {
			_ = binary.Write(b, binary.BigEndian, uint16(p*65535))
		}
	}
	if extra := b.Len() % 4; extra != 0 {
		b.Write(bytes.Repeat([]byte{0}, 4-extra))
	}
	return b.Bytes()
}

func para_bytes(q uint16, params ...unit_float) []byte {
	b := bytes.NewBuffer([]byte("para\x00\x00\x00\x00"))
	_ = binary.Write(b, binary.BigEndian, q)
	b.WriteString("\x00\x00")
	for _, p := range params {
		b.Write(encodeS15Fixed16BE(p))
	}
	if extra := b.Len() % 4; extra != 0 {
		b.Write(bytes.Repeat([]byte{0}, 4-extra))
	}
	return b.Bytes()
}
