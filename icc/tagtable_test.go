package icc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTagTable(t *testing.T) {
	data := valid_profile_bytes()
	table, err := decode_tag_table(data)
	require.NoError(t, err)
	assert.Equal(t, 8, table.Len())
	assert.True(t, table.Has(RedColorantTagSignature))
	assert.True(t, table.Has(MediaWhitePointTagSignature))
	assert.False(t, table.Has(CopyrightTagSignature))
	assert.Equal(t, XYZTypeSignature, table.TypeSignature(RedColorantTagSignature))
	assert.Equal(t, ParametricCurveTypeSignature, table.TypeSignature(RedTRCTagSignature))
	assert.Equal(t, UnknownSignature, table.TypeSignature(CopyrightTagSignature))
	// signatures come back in profile order
	sigs := table.Signatures()
	require.Len(t, sigs, 8)
	assert.Equal(t, DescSignature, sigs[0])
}

func TestDecodeTagTableDuplicates(t *testing.T) {
	b := newProfileBuilder()
	b.add(DescSignature, descTagBytes("first"))
	b.add(DescSignature, descTagBytes("second"))
	p, err := Decode(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, p.TagTable.Len())
	desc, err := p.Description()
	require.NoError(t, err)
	assert.Equal(t, "first", desc)
}

func TestDecodeTagTableErrors(t *testing.T) {
	t.Run("TruncatedCount", func(t *testing.T) {
		data := valid_profile_bytes()[:HEADER_SIZE+2]
		_, err := decode_tag_table(data)
		var e *TooSmallError
		require.ErrorAs(t, err, &e)
	})
	t.Run("RecordsDoNotFit", func(t *testing.T) {
		data := valid_profile_bytes()
		binary.BigEndian.PutUint32(data[HEADER_SIZE:], 0xffffffff)
		_, err := decode_tag_table(data)
		var e *CorruptedDataError
		require.ErrorAs(t, err, &e)
	})
	t.Run("TagOutOfBounds", func(t *testing.T) {
		data := valid_profile_bytes()
		// first record: grow the declared size past the end of the buffer
		rec := data[HEADER_SIZE+4:]
		binary.BigEndian.PutUint32(rec[8:12], uint32(len(data)))
		_, err := decode_tag_table(data)
		var e *TagOutOfBoundsError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, DescSignature, e.Tag)
		assert.Equal(t, len(data), e.ProfileSize)
	})
	t.Run("OffsetSizeOverflow", func(t *testing.T) {
		data := valid_profile_bytes()
		rec := data[HEADER_SIZE+4:]
		binary.BigEndian.PutUint32(rec[4:8], 0xffffffff)
		binary.BigEndian.PutUint32(rec[8:12], 0xffffffff)
		_, err := decode_tag_table(data)
		var e *TagOutOfBoundsError
		require.ErrorAs(t, err, &e)
	})
}
