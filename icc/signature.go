package icc

type Signature uint32

const (
	ProfileFileSignature Signature = 0x61637370 // 'acsp'

	// Tag signatures
	RedColorantTagSignature     Signature = 0x7258595A // 'rXYZ'
	GreenColorantTagSignature   Signature = 0x6758595A // 'gXYZ'
	BlueColorantTagSignature    Signature = 0x6258595A // 'bXYZ'
	RedTRCTagSignature          Signature = 0x72545243 // 'rTRC'
	GreenTRCTagSignature        Signature = 0x67545243 // 'gTRC'
	BlueTRCTagSignature         Signature = 0x62545243 // 'bTRC'
	GrayTRCTagSignature         Signature = 0x6B545243 // 'kTRC'
	MediaWhitePointTagSignature Signature = 0x77747074 // 'wtpt'
	MediaBlackPointTagSignature Signature = 0x626B7074 // 'bkpt'
	ChromaticAdaptationTagSignature Signature = 0x63686164 // 'chad'
	CopyrightTagSignature       Signature = 0x63707274 // 'cprt'

	// Type signatures
	XYZTypeSignature               Signature = 0x58595A20 // 'XYZ '
	CurveTypeSignature             Signature = 0x63757276 // 'curv'
	ParametricCurveTypeSignature   Signature = 0x70617261 // 'para'
	S15Fixed16ArrayTypeSignature   Signature = 0x73663332 // 'sf32'
	TextTypeSignature              Signature = 0x74657874 // 'text'
	DescSignature                  Signature = 0x64657363 // 'desc'
	MultiLocalisedUnicodeSignature Signature = 0x6D6C7563 // 'mluc'

	UnknownSignature Signature = 0
)

func maskNull(b byte) byte {
	switch b {
	case 0:
		return ' '
	default:
		return b
	}
}

func (s Signature) String() string {
	v := []byte{
		(maskNull(byte((s >> 24) & 0xff))),
		(maskNull(byte((s >> 16) & 0xff))),
		(maskNull(byte((s >> 8) & 0xff))),
		(maskNull(byte(s & 0xff))),
	}
	return "'" + string(v) + "'"
}
