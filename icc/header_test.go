package icc

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid_profile_bytes() []byte {
	trc := paraTagBytes(SimpleGammaFunction, 2.2)
	return EncodeMatrixShaperProfile("test profile", D50, srgb_colorants, trc)
}

func TestDecodeHeader(t *testing.T) {
	data := valid_profile_bytes()
	h, err := decode_header(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(len(data)), h.ProfileSize)
	assert.Equal(t, ProfileFileSignature, h.Signature)
	assert.Equal(t, DeviceClassDisplay, h.DeviceClass)
	assert.Equal(t, ColorSpaceRGB, h.DataColorSpace)
	assert.Equal(t, ColorSpaceXYZ, h.ProfileConnectionSpace)
	assert.Equal(t, PerceptualRenderingIntent, h.RenderingIntent)
	assert.Equal(t, Version{Major: 4, Minor: 3}, h.Version)
	assert.True(t, h.Version.AtLeast(4, 0))
	assert.False(t, h.Version.AtLeast(4, 4))
	assert.True(t, h.PCSIlluminant.Equals(D50, 0.0001))
	assert.True(t, h.CreatedAt.IsZero())
}

func TestDecodeHeaderDateTime(t *testing.T) {
	data := valid_profile_bytes()
	// dateTimeNumber at offset 24: six big-endian uint16 fields
	for i, v := range []uint16{2023, 7, 16, 11, 38, 1} {
		binary.BigEndian.PutUint16(data[24+2*i:], v)
	}
	h, err := decode_header(data)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 7, 16, 11, 38, 1, 0, time.UTC), h.CreatedAt)
}

func TestDecodeHeaderErrors(t *testing.T) {
	corrupt := func(mutate func(data []byte)) error {
		data := valid_profile_bytes()
		mutate(data)
		_, err := decode_header(data)
		return err
	}
	t.Run("TooSmall", func(t *testing.T) {
		_, err := decode_header(make([]byte, 100))
		var e *TooSmallError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, HEADER_SIZE, e.Expected)
		assert.Equal(t, 100, e.Actual)
	})
	t.Run("SizeMismatch", func(t *testing.T) {
		err := corrupt(func(data []byte) {
			binary.BigEndian.PutUint32(data[0:4], uint32(len(data)+7))
		})
		var e *SizeMismatchError
		require.ErrorAs(t, err, &e)
	})
	t.Run("InvalidSignature", func(t *testing.T) {
		err := corrupt(func(data []byte) { copy(data[36:40], "nope") })
		var e *InvalidSignatureError
		require.ErrorAs(t, err, &e)
		assert.ErrorContains(t, err, "acsp")
	})
	t.Run("UnsupportedVersion", func(t *testing.T) {
		err := corrupt(func(data []byte) { data[8] = 9 })
		var e *UnsupportedVersionError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, uint8(9), e.Major)
	})
	t.Run("InvalidProfileClass", func(t *testing.T) {
		err := corrupt(func(data []byte) { copy(data[12:16], "zzzz") })
		var e *InvalidProfileClassError
		require.ErrorAs(t, err, &e)
	})
	t.Run("InvalidColorSpace", func(t *testing.T) {
		err := corrupt(func(data []byte) { copy(data[16:20], "zzzz") })
		var e *InvalidColorSpaceError
		require.ErrorAs(t, err, &e)
	})
	t.Run("InvalidPCS", func(t *testing.T) {
		err := corrupt(func(data []byte) { copy(data[20:24], "zzzz") })
		var e *InvalidColorSpaceError
		require.ErrorAs(t, err, &e)
	})
	t.Run("InvalidRenderingIntent", func(t *testing.T) {
		err := corrupt(func(data []byte) {
			binary.BigEndian.PutUint32(data[64:68], 17)
		})
		var e *InvalidRenderingIntentError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, uint32(17), e.Value)
	})
	t.Run("SizeCheckedBeforeSignature", func(t *testing.T) {
		// hostile input gets a deterministic first error
		err := corrupt(func(data []byte) {
			binary.BigEndian.PutUint32(data[0:4], 1)
			copy(data[36:40], "nope")
		})
		var e *SizeMismatchError
		require.ErrorAs(t, err, &e)
	})
}
