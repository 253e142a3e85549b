// Package meta extracts embedded ICC profile data from image streams. Only
// as much of the stream is read as needed to locate the profile bytes; the
// image pixels themselves are never decoded here.
package meta

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/kovidgoyal/cms/icc"
	"github.com/rwcarlsen/goexif/tiff"
)

var _ = fmt.Print

var png_magic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ExtractICC sniffs the image format of r and returns the raw embedded ICC
// profile bytes along with the detected format name ("PNG", "JPEG", "WEBP",
// "TIFF"). A recognised image without an embedded profile yields nil bytes
// and no error.
func ExtractICC(r io.Reader) (data []byte, format string, err error) {
	head := make([]byte, 12)
	if _, err = io.ReadFull(r, head); err != nil {
		return nil, "", fmt.Errorf("failed to sniff image format: %w", err)
	}
	full := io.MultiReader(bytes.NewReader(head), r)
	switch {
	case bytes.Equal(head[:8], png_magic):
		data, err = png_icc(full)
		return data, "PNG", err
	case head[0] == 0xff && head[1] == 0xd8:
		data, err = jpeg_icc(full)
		return data, "JPEG", err
	case bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")):
		data, err = webp_icc(full)
		return data, "WEBP", err
	case bytes.Equal(head[:4], []byte("II*\x00")) || bytes.Equal(head[:4], []byte("MM\x00*")):
		data, err = tiff_icc(full)
		return data, "TIFF", err
	default:
		return nil, "", fmt.Errorf("unrecognised image format")
	}
}

// ExtractProfile extracts and parses the embedded profile in one step. A
// recognised image without a profile returns (nil, nil).
func ExtractProfile(r io.Reader) (*icc.Profile, error) {
	data, _, err := ExtractICC(r)
	if err != nil || data == nil {
		return nil, err
	}
	return icc.Decode(data)
}

// PNG stores the profile in the iCCP chunk: a latin-1 name, a null, the
// compression method byte (0 = zlib) and the compressed profile.
func png_icc(r io.Reader) ([]byte, error) {
	if _, err := io.CopyN(io.Discard, r, 8); err != nil {
		return nil, err
	}
	var chunk_header [8]byte
	for {
		if _, err := io.ReadFull(r, chunk_header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, nil
			}
			return nil, err
		}
		length := binary.BigEndian.Uint32(chunk_header[:4])
		ctype := string(chunk_header[4:8])
		switch ctype {
		case "iCCP":
			payload := make([]byte, length)
			if _, err := io.ReadFull(r, payload); err != nil {
				return nil, err
			}
			null := bytes.IndexByte(payload, 0)
			if null < 0 || null+2 > len(payload) {
				return nil, fmt.Errorf("malformed iCCP chunk")
			}
			if method := payload[null+1]; method != 0 {
				return nil, fmt.Errorf("unknown iCCP compression method: %d", method)
			}
			zr, err := zlib.NewReader(bytes.NewReader(payload[null+2:]))
			if err != nil {
				return nil, err
			}
			defer zr.Close()
			return io.ReadAll(zr)
		case "IDAT", "IEND":
			// profile chunks precede the image data
			return nil, nil
		default:
			if _, err := io.CopyN(io.Discard, r, int64(length)+4); err != nil {
				return nil, err
			}
		}
	}
}

// JPEG stores the profile split across APP2 segments, each prefixed with
// "ICC_PROFILE\x00", a 1-based sequence number and the segment count.
func jpeg_icc(r io.Reader) ([]byte, error) {
	const icc_prefix = "ICC_PROFILE\x00"
	if _, err := io.CopyN(io.Discard, r, 2); err != nil {
		return nil, err
	}
	type chunk struct {
		seq  int
		data []byte
	}
	var chunks []chunk
	var marker [2]byte
	for {
		if _, err := io.ReadFull(r, marker[:]); err != nil {
			break
		}
		if marker[0] != 0xff {
			break
		}
		switch marker[1] {
		case 0xd8, 0x01:
			continue
		case 0xd9, 0xda: // EOI / SOS: no more metadata segments
			goto done
		}
		var lbuf [2]byte
		if _, err := io.ReadFull(r, lbuf[:]); err != nil {
			return nil, err
		}
		length := int(binary.BigEndian.Uint16(lbuf[:])) - 2
		if length < 0 {
			return nil, fmt.Errorf("malformed JPEG segment length")
		}
		payload := make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		if marker[1] == 0xe2 && len(payload) > len(icc_prefix)+2 &&
			string(payload[:len(icc_prefix)]) == icc_prefix {
			seq := int(payload[len(icc_prefix)])
			chunks = append(chunks, chunk{seq: seq, data: payload[len(icc_prefix)+2:]})
		}
	}
done:
	if len(chunks) == 0 {
		return nil, nil
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].seq < chunks[j].seq })
	var buf bytes.Buffer
	for _, c := range chunks {
		buf.Write(c.data)
	}
	return buf.Bytes(), nil
}

// WebP is a RIFF container; the profile lives in the ICCP chunk.
func webp_icc(r io.Reader) ([]byte, error) {
	if _, err := io.CopyN(io.Discard, r, 12); err != nil {
		return nil, err
	}
	var chunk_header [8]byte
	for {
		if _, err := io.ReadFull(r, chunk_header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, nil
			}
			return nil, err
		}
		length := binary.LittleEndian.Uint32(chunk_header[4:8])
		padded := int64(length) + int64(length&1)
		if bytes.Equal(chunk_header[:4], []byte("ICCP")) {
			payload := make([]byte, length)
			if _, err := io.ReadFull(r, payload); err != nil {
				return nil, err
			}
			return payload, nil
		}
		if _, err := io.CopyN(io.Discard, r, padded); err != nil {
			return nil, nil
		}
	}
}

// The ICC Profile IFD entry, an Undefined-type tag holding the raw bytes.
const tiff_icc_profile_tag = 0x8773

// TIFF carries the profile in the ICC Profile IFD entry. goexif has no
// field name for it, so walk the directories by tag id.
func tiff_icc(r io.Reader) ([]byte, error) {
	t, err := tiff.Decode(r)
	if err != nil {
		return nil, err
	}
	for _, dir := range t.Dirs {
		for _, tag := range dir.Tags {
			if tag.Id == tiff_icc_profile_tag {
				return tag.Val, nil
			}
		}
	}
	return nil, nil
}
