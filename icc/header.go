package icc

import (
	"encoding/binary"
	"time"
)

// The fixed header is exactly 128 bytes, all multi-byte fields big-endian.
// See ICC.1:2022 section 7.2.
const HEADER_SIZE = 128

type DeviceClass uint32

const (
	DeviceClassInput      DeviceClass = 0x73636E72 // 'scnr'
	DeviceClassDisplay    DeviceClass = 0x6D6E7472 // 'mntr'
	DeviceClassOutput     DeviceClass = 0x70727472 // 'prtr'
	DeviceClassLink       DeviceClass = 0x6C696E6B // 'link'
	DeviceClassColorSpace DeviceClass = 0x73706163 // 'spac'
	DeviceClassAbstract   DeviceClass = 0x61627374 // 'abst'
	DeviceClassNamedColor DeviceClass = 0x6E6D636C // 'nmcl'
)

func (d DeviceClass) String() string { return Signature(d).String() }

type ColorSpace uint32

const (
	ColorSpaceXYZ   ColorSpace = 0x58595A20 // 'XYZ '
	ColorSpaceLab   ColorSpace = 0x4C616220 // 'Lab '
	ColorSpaceLuv   ColorSpace = 0x4C757620 // 'Luv '
	ColorSpaceYCbCr ColorSpace = 0x59436272 // 'YCbr'
	ColorSpaceRGB   ColorSpace = 0x52474220 // 'RGB '
	ColorSpaceGray  ColorSpace = 0x47524159 // 'GRAY'
	ColorSpaceHSV   ColorSpace = 0x48535620 // 'HSV '
	ColorSpaceHLS   ColorSpace = 0x484C5320 // 'HLS '
	ColorSpaceCMYK  ColorSpace = 0x434D594B // 'CMYK'
	ColorSpaceCMY   ColorSpace = 0x434D5920 // 'CMY '
)

func (c ColorSpace) String() string { return Signature(c).String() }

func (c ColorSpace) NumChannels() int {
	switch c {
	case ColorSpaceCMYK:
		return 4
	case ColorSpaceGray:
		return 1
	default:
		return 3
	}
}

type RenderingIntent uint32

const (
	PerceptualRenderingIntent           RenderingIntent = 0
	RelativeColorimetricRenderingIntent RenderingIntent = 1
	SaturationRenderingIntent           RenderingIntent = 2
	AbsoluteColorimetricRenderingIntent RenderingIntent = 3
)

func (r RenderingIntent) String() string {
	switch r {
	case PerceptualRenderingIntent:
		return "Perceptual"
	case RelativeColorimetricRenderingIntent:
		return "RelativeColorimetric"
	case SaturationRenderingIntent:
		return "Saturation"
	case AbsoluteColorimetricRenderingIntent:
		return "AbsoluteColorimetric"
	default:
		return "Unknown"
	}
}

type Version struct {
	Major, Minor, Patch uint8
}

func (v Version) AtLeast(major, minor uint8) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

type Header struct {
	ProfileSize            uint32
	CMMType                Signature
	Version                Version
	DeviceClass            DeviceClass
	DataColorSpace         ColorSpace
	ProfileConnectionSpace ColorSpace
	CreatedAt              time.Time
	Signature              Signature
	Platform               Signature
	Flags                  uint32
	DeviceManufacturer     Signature
	DeviceModel            Signature
	DeviceAttributes       uint64
	RenderingIntent        RenderingIntent
	PCSIlluminant          XYZType
	Creator                Signature
	ProfileID              [16]byte
}

func u32be(raw []byte) uint32 { return binary.BigEndian.Uint32(raw) }

func valid_device_class(v uint32) bool {
	switch DeviceClass(v) {
	case DeviceClassInput, DeviceClassDisplay, DeviceClassOutput, DeviceClassLink,
		DeviceClassColorSpace, DeviceClassAbstract, DeviceClassNamedColor:
		return true
	}
	return false
}

func valid_color_space(v uint32) bool {
	switch ColorSpace(v) {
	case ColorSpaceXYZ, ColorSpaceLab, ColorSpaceLuv, ColorSpaceYCbCr, ColorSpaceRGB,
		ColorSpaceGray, ColorSpaceHSV, ColorSpaceHLS, ColorSpaceCMYK, ColorSpaceCMY:
		return true
	}
	return false
}

func decode_datetime(raw []byte) time.Time {
	year := int(raw[0])<<8 | int(raw[1])
	month := int(raw[2])<<8 | int(raw[3])
	day := int(raw[4])<<8 | int(raw[5])
	hour := int(raw[6])<<8 | int(raw[7])
	minute := int(raw[8])<<8 | int(raw[9])
	second := int(raw[10])<<8 | int(raw[11])
	if year == 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

// decode_header validates and decodes the fixed 128-byte header. The checks
// run in a fixed order so hostile input produces a deterministic error: size,
// declared length, signature, version, then the enumerated fields.
func decode_header(data []byte) (h Header, err error) {
	if len(data) < HEADER_SIZE {
		return h, &TooSmallError{Expected: HEADER_SIZE, Actual: len(data)}
	}
	h.ProfileSize = u32be(data[0:4])
	if int(h.ProfileSize) != len(data) {
		return h, &SizeMismatchError{Declared: h.ProfileSize, Actual: len(data)}
	}
	h.Signature = Signature(u32be(data[36:40]))
	if h.Signature != ProfileFileSignature {
		return h, &InvalidSignatureError{Signature: h.Signature}
	}
	h.Version = Version{Major: data[8], Minor: data[9] >> 4, Patch: data[9] & 0xf}
	if h.Version.Major != 2 && h.Version.Major != 4 {
		return h, &UnsupportedVersionError{Major: h.Version.Major, Minor: h.Version.Minor}
	}
	if v := u32be(data[12:16]); valid_device_class(v) {
		h.DeviceClass = DeviceClass(v)
	} else {
		return h, &InvalidProfileClassError{Value: v}
	}
	if v := u32be(data[16:20]); valid_color_space(v) {
		h.DataColorSpace = ColorSpace(v)
	} else {
		return h, &InvalidColorSpaceError{Value: v}
	}
	if v := u32be(data[20:24]); valid_color_space(v) {
		h.ProfileConnectionSpace = ColorSpace(v)
	} else {
		return h, &InvalidColorSpaceError{Value: v}
	}
	if v := u32be(data[64:68]); v <= uint32(AbsoluteColorimetricRenderingIntent) {
		h.RenderingIntent = RenderingIntent(v)
	} else {
		return h, &InvalidRenderingIntentError{Value: v}
	}
	h.CMMType = Signature(u32be(data[4:8]))
	h.CreatedAt = decode_datetime(data[24:36])
	h.Platform = Signature(u32be(data[40:44]))
	h.Flags = u32be(data[44:48])
	h.DeviceManufacturer = Signature(u32be(data[48:52]))
	h.DeviceModel = Signature(u32be(data[52:56]))
	h.DeviceAttributes = binary.BigEndian.Uint64(data[56:64])
	h.PCSIlluminant = XYZType{
		X: readS15Fixed16BE(data[68:72]),
		Y: readS15Fixed16BE(data[72:76]),
		Z: readS15Fixed16BE(data[76:80]),
	}
	h.Creator = Signature(u32be(data[80:84]))
	copy(h.ProfileID[:], data[84:100])
	return h, nil
}
