package icc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMatrixShaperProfile(t *testing.T) {
	p, err := Decode(valid_profile_bytes())
	require.NoError(t, err)
	assert.True(t, p.IsMatrixShaper())

	m, err := p.ColorantMatrix()
	require.NoError(t, err)
	assert.True(t, m.Equals(&srgb_colorants, 0.0001), "%v", m)

	white, ok := p.MediaWhitePoint()
	require.True(t, ok)
	assert.True(t, white.Equals(D50, 0.0001))
	assert.True(t, p.WhitePoint().Equals(D50, 0.0001))

	_, ok = p.MediaBlackPoint()
	assert.False(t, ok)

	require.NotNil(t, p.RedTRC())
	require.NotNil(t, p.GreenTRC())
	require.NotNil(t, p.BlueTRC())
	assert.Nil(t, p.GrayTRC())
	g, ok := p.RedTRC().(*GammaCurve)
	require.True(t, ok)
	in_delta(t, 2.2, g.Gamma(), 0.0001)

	desc, err := p.Description()
	require.NoError(t, err)
	assert.Equal(t, "test profile", desc)
	_, err = p.Copyright()
	var missing *MissingTagError
	require.ErrorAs(t, err, &missing)
}

func TestDecodeProfileReader(t *testing.T) {
	data := valid_profile_bytes()
	p, err := DecodeProfile(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, p.IsMatrixShaper())
}

func TestProfileClassification(t *testing.T) {
	trc := paraTagBytes(SimpleGammaFunction, 2.2)
	t.Run("MissingTRC", func(t *testing.T) {
		b := newProfileBuilder()
		b.add(MediaWhitePointTagSignature, xyzTagBytes(D50))
		b.add(RedColorantTagSignature, xyzTagBytes(XYZType{0.43, 0.22, 0.01}))
		b.add(GreenColorantTagSignature, xyzTagBytes(XYZType{0.38, 0.71, 0.09}))
		b.add(BlueColorantTagSignature, xyzTagBytes(XYZType{0.14, 0.06, 0.71}))
		b.add(RedTRCTagSignature, trc)
		b.add(GreenTRCTagSignature, trc)
		p, err := Decode(b.Bytes())
		require.NoError(t, err)
		assert.False(t, p.IsMatrixShaper())
	})
	t.Run("MissingColorant", func(t *testing.T) {
		b := newProfileBuilder()
		b.add(RedColorantTagSignature, xyzTagBytes(XYZType{0.43, 0.22, 0.01}))
		b.add(RedTRCTagSignature, trc)
		b.add(GreenTRCTagSignature, trc)
		b.add(BlueTRCTagSignature, trc)
		p, err := Decode(b.Bytes())
		require.NoError(t, err)
		assert.False(t, p.IsMatrixShaper())
		_, err = p.ColorantMatrix()
		var missing *MissingTagError
		require.ErrorAs(t, err, &missing)
	})
	t.Run("DegenerateColorants", func(t *testing.T) {
		// three identical primaries are collinear and not invertible
		c := XYZType{0.3, 0.3, 0.3}
		singular := Matrix3{
			{c.X, c.X, c.X},
			{c.Y, c.Y, c.Y},
			{c.Z, c.Z, c.Z},
		}
		p, err := Decode(EncodeMatrixShaperProfile("degenerate", D50, singular, trc))
		require.NoError(t, err)
		assert.False(t, p.IsMatrixShaper())
	})
	t.Run("NonRGBDataSpace", func(t *testing.T) {
		b := newProfileBuilder()
		b.color_space = ColorSpaceCMYK
		b.add(RedColorantTagSignature, xyzTagBytes(XYZType{0.43, 0.22, 0.01}))
		b.add(GreenColorantTagSignature, xyzTagBytes(XYZType{0.38, 0.71, 0.09}))
		b.add(BlueColorantTagSignature, xyzTagBytes(XYZType{0.14, 0.06, 0.71}))
		b.add(RedTRCTagSignature, trc)
		b.add(GreenTRCTagSignature, trc)
		b.add(BlueTRCTagSignature, trc)
		p, err := Decode(b.Bytes())
		require.NoError(t, err)
		assert.False(t, p.IsMatrixShaper())
	})
	t.Run("LinkClass", func(t *testing.T) {
		b := newProfileBuilder()
		b.device_class = DeviceClassLink
		b.add(RedColorantTagSignature, xyzTagBytes(XYZType{0.43, 0.22, 0.01}))
		b.add(GreenColorantTagSignature, xyzTagBytes(XYZType{0.38, 0.71, 0.09}))
		b.add(BlueColorantTagSignature, xyzTagBytes(XYZType{0.14, 0.06, 0.71}))
		b.add(RedTRCTagSignature, trc)
		b.add(GreenTRCTagSignature, trc)
		b.add(BlueTRCTagSignature, trc)
		p, err := Decode(b.Bytes())
		require.NoError(t, err)
		assert.False(t, p.IsMatrixShaper())
	})
}

func TestProfileMalformedPresentTagIsError(t *testing.T) {
	// A missing tag just fails classification; a present but corrupt tag
	// must surface a parse error.
	b := newProfileBuilder()
	b.add(RedTRCTagSignature, []byte("XYZ \x00\x00\x00\x00\x00\x00\x00\x00"))
	_, err := Decode(b.Bytes())
	var e *InvalidTagTypeError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, RedTRCTagSignature, e.Tag)
}

func TestProfileWhitePointFallback(t *testing.T) {
	b := newProfileBuilder()
	b.add(DescSignature, descTagBytes("no wtpt"))
	p, err := Decode(b.Bytes())
	require.NoError(t, err)
	_, ok := p.MediaWhitePoint()
	assert.False(t, ok)
	// falls back to the PCS illuminant from the header, which the builder
	// sets to D50
	assert.True(t, p.WhitePoint().Equals(D50, 0.0001))
}

func TestProfileChromaticAdaptationTag(t *testing.T) {
	chad := Matrix3{{1.04, 0.02, -0.05}, {0.02, 0.99, -0.01}, {-0.009, 0.015, 0.75}}
	var buf bytes.Buffer
	buf.WriteString("sf32\x00\x00\x00\x00")
	for i := range 9 {
		buf.Write(encodeS15Fixed16BE(chad[i/3][i%3]))
	}
	b := newProfileBuilder()
	b.add(ChromaticAdaptationTagSignature, buf.Bytes())
	p, err := Decode(b.Bytes())
	require.NoError(t, err)
	m, ok := p.ChromaticAdaptation()
	require.True(t, ok)
	assert.True(t, m.Equals(&chad, 0.0001))

	p2, err := Decode(valid_profile_bytes())
	require.NoError(t, err)
	_, ok = p2.ChromaticAdaptation()
	assert.False(t, ok)
}

func TestDecodeHostileInputDoesNotPanic(t *testing.T) {
	data := valid_profile_bytes()
	// truncations at every length must error out cleanly, never panic
	for n := range len(data) {
		truncated := append([]byte(nil), data[:n]...)
		if n >= 4 {
			// keep the declared size consistent so we get past the size check
			truncated[0] = byte(n >> 24)
			truncated[1] = byte(n >> 16)
			truncated[2] = byte(n >> 8)
			truncated[3] = byte(n)
		}
		_, err := Decode(truncated)
		require.Error(t, err, "truncation to %d bytes", n)
	}
}
