package icc

import (
	"bytes"
	"encoding/binary"
	"sync"
)

// Virtual profiles: well known matrix-shaper profiles built in memory by
// encoding the binary format and re-parsing it, so the engine carries no
// binary fixtures. The colorant values are the D50-adapted primaries as
// found in the corresponding published profiles.

type tag_record struct {
	sig  Signature
	data []byte
}

type profileBuilder struct {
	device_class DeviceClass
	color_space  ColorSpace
	pcs          ColorSpace
	version      [2]byte
	intent       RenderingIntent
	tags         []tag_record
}

func newProfileBuilder() *profileBuilder {
	return &profileBuilder{
		device_class: DeviceClassDisplay,
		color_space:  ColorSpaceRGB,
		pcs:          ColorSpaceXYZ,
		version:      [2]byte{4, 0x30},
	}
}

func (b *profileBuilder) add(sig Signature, data []byte) {
	b.tags = append(b.tags, tag_record{sig, data})
}

func align_to_4(x int) int {
	if extra := x % 4; extra > 0 {
		x += 4 - extra
	}
	return x
}

// Bytes encodes the header, tag directory and payloads. Payloads are 4-byte
// aligned as the format requires.
func (b *profileBuilder) Bytes() []byte {
	size := HEADER_SIZE + 4 + len(b.tags)*tag_record_size
	offsets := make([]int, len(b.tags))
	for i, t := range b.tags {
		size = align_to_4(size)
		offsets[i] = size
		size += len(t.data)
	}
	size = align_to_4(size)

	buf := make([]byte, size)
	binary.BigEndian.PutUint32(buf[0:4], uint32(size))
	copy(buf[4:8], "CMS ")
	buf[8], buf[9] = b.version[0], b.version[1]
	binary.BigEndian.PutUint32(buf[12:16], uint32(b.device_class))
	binary.BigEndian.PutUint32(buf[16:20], uint32(b.color_space))
	binary.BigEndian.PutUint32(buf[20:24], uint32(b.pcs))
	binary.BigEndian.PutUint32(buf[36:40], uint32(ProfileFileSignature))
	binary.BigEndian.PutUint32(buf[64:68], uint32(b.intent))
	copy(buf[68:72], encodeS15Fixed16BE(D50.X))
	copy(buf[72:76], encodeS15Fixed16BE(D50.Y))
	copy(buf[76:80], encodeS15Fixed16BE(D50.Z))

	binary.BigEndian.PutUint32(buf[HEADER_SIZE:HEADER_SIZE+4], uint32(len(b.tags)))
	pos := HEADER_SIZE + 4
	for i, t := range b.tags {
		binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(t.sig))
		binary.BigEndian.PutUint32(buf[pos+4:pos+8], uint32(offsets[i]))
		binary.BigEndian.PutUint32(buf[pos+8:pos+12], uint32(len(t.data)))
		pos += tag_record_size
		copy(buf[offsets[i]:], t.data)
	}
	return buf
}

func xyzTagBytes(v XYZType) []byte {
	var buf bytes.Buffer
	buf.WriteString("XYZ \x00\x00\x00\x00")
	buf.Write(encodeS15Fixed16BE(v.X))
	buf.Write(encodeS15Fixed16BE(v.Y))
	buf.Write(encodeS15Fixed16BE(v.Z))
	return buf.Bytes()
}

func paraTagBytes(fn ParametricCurveFunction, params ...unit_float) []byte {
	var buf bytes.Buffer
	buf.WriteString("para\x00\x00\x00\x00")
	_ = binary.Write(&buf, binary.BigEndian, uint16(fn))
	buf.WriteString("\x00\x00")
	for _, p := range params {
		buf.Write(encodeS15Fixed16BE(p))
	}
	return buf.Bytes()
}

func curvTagBytes(points ...unit_float) []byte {
	var buf bytes.Buffer
	buf.WriteString("curv\x00\x00\x00\x00")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(points)))
	for _, p := range points {
		_ = binary.Write(&buf, binary.BigEndian, uint16(clamp01(p)*65535))
	}
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func descTagBytes(text string) []byte {
	var buf bytes.Buffer
	buf.WriteString("desc\x00\x00\x00\x00")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(text)+1))
	buf.WriteString(text)
	buf.WriteByte(0)
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// EncodeMatrixShaperProfile builds the bytes of an RGB matrix-shaper profile
// with the given white point, colorant matrix (columns = r, g, b colorant
// XYZ) and a TRC payload shared by all three channels.
func EncodeMatrixShaperProfile(desc string, white XYZType, colorants Matrix3, trc []byte) []byte {
	b := newProfileBuilder()
	b.add(DescSignature, descTagBytes(desc))
	b.add(MediaWhitePointTagSignature, xyzTagBytes(white))
	b.add(RedColorantTagSignature, xyzTagBytes(XYZType{colorants[0][0], colorants[1][0], colorants[2][0]}))
	b.add(GreenColorantTagSignature, xyzTagBytes(XYZType{colorants[0][1], colorants[1][1], colorants[2][1]}))
	b.add(BlueColorantTagSignature, xyzTagBytes(XYZType{colorants[0][2], colorants[1][2], colorants[2][2]}))
	b.add(RedTRCTagSignature, trc)
	b.add(GreenTRCTagSignature, trc)
	b.add(BlueTRCTagSignature, trc)
	return b.Bytes()
}

// sRGB primaries adapted to D50, as published in sRGB IEC61966-2.1.
var srgb_colorants = Matrix3{
	{0.436066, 0.385147, 0.143066},
	{0.222488, 0.716873, 0.060608},
	{0.013916, 0.097076, 0.714096},
}

// Adobe RGB (1998) primaries adapted to D50.
var adobe_rgb_colorants = Matrix3{
	{0.60974, 0.20528, 0.14919},
	{0.31111, 0.62567, 0.06322},
	{0.01947, 0.06087, 0.74457},
}

// SRGB returns the built-in sRGB matrix-shaper profile. The sRGB transfer
// function is the standard piecewise linear/power form encoded as a type 3
// parametric curve.
var SRGB = sync.OnceValue(func() *Profile {
	trc := paraTagBytes(SplitFunction, 2.4, 1/1.055, 0.055/1.055, 1/12.92, 0.04045)
	p, err := Decode(EncodeMatrixShaperProfile("sRGB IEC61966-2.1", D50, srgb_colorants, trc))
	if err != nil {
		panic(err)
	}
	return p
})

// NewGammaRGBProfile builds a pure power-law profile over the Adobe RGB
// primaries, e.g. NewGammaRGBProfile(2.2) for an Adobe RGB compatible space.
func NewGammaRGBProfile(gamma unit_float) (*Profile, error) {
	trc := paraTagBytes(SimpleGammaFunction, gamma)
	return Decode(EncodeMatrixShaperProfile("Gamma RGB", D50, adobe_rgb_colorants, trc))
}
