package icc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadS15Fixed16BE(t *testing.T) {
	t.Run("PositiveWhole", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0x00, 0x01, 0x00, 0x00}) // 1.0
		in_delta(t, 1.0, val, 0.0001)
	})
	t.Run("PositiveFraction", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0x00, 0x02, 0x80, 0x00}) // 2.5
		in_delta(t, 2.5, val, 0.0001)
	})
	t.Run("NegativeWhole", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0xFF, 0xFF, 0x00, 0x00}) // -1.0
		in_delta(t, -1.0, val, 0.0001)
	})
	t.Run("NegativeFraction", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0xFF, 0xFE, 0x80, 0x00}) // -1.5
		in_delta(t, -1.5, val, 0.0001)
	})
	t.Run("Zero", func(t *testing.T) {
		val := readS15Fixed16BE([]byte{0x00, 0x00, 0x00, 0x00})
		assert.Equal(t, unit_float(0), val)
	})
}

func TestEncodeS15Fixed16BE(t *testing.T) {
	for _, v := range []unit_float{0, 1, -1, 2.5, -1.5, 0.9642, 0.8249, 2.4, 1 / 12.92} {
		decoded := readS15Fixed16BE(encodeS15Fixed16BE(v))
		in_delta(t, v, decoded, 1.0/65536)
	}
}

func TestFixed88ToFloat(t *testing.T) {
	in_delta(t, 1.0, fixed88ToFloat([]byte{0x01, 0x00}), 0.0001)
	in_delta(t, 2.2, fixed88ToFloat([]byte{0x02, 0x33}), 0.002)
	in_delta(t, 0.5, fixed88ToFloat([]byte{0x00, 0x80}), 0.0001)
	assert.Equal(t, unit_float(0), fixed88ToFloat([]byte{0, 0}))
}
