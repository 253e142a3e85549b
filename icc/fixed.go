package icc

import (
	"encoding/binary"
	"math"
)

// s15Fixed16Number: a signed 16.16 fixed-point value, big-endian.
func readS15Fixed16BE(raw []byte) unit_float {
	msb := int16(raw[0])<<8 | int16(raw[1])
	lsb := uint16(raw[2])<<8 | uint16(raw[3])
	return unit_float(msb) + unit_float(lsb)/65536
}

func encodeS15Fixed16BE(value unit_float) []byte {
	v := math.Round(float64(value) * 65536)
	if v > math.MaxInt32 {
		v = math.MaxInt32
	} else if v < math.MinInt32 {
		v = math.MinInt32
	}
	result := make([]byte, 4)
	binary.BigEndian.PutUint32(result, uint32(int32(v)))
	return result
}

// u8Fixed8Number: an unsigned 8.8 fixed-point value, big-endian.
func fixed88ToFloat(raw []byte) unit_float {
	return unit_float(uint16(raw[0])<<8|uint16(raw[1])) / 256
}
