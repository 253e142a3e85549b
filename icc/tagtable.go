package icc

import (
	"fmt"
)

var _ = fmt.Println

const tag_record_size = 12

// TagTable maps tag signatures to their raw payloads. Payloads are
// sub-slices of the profile buffer; the buffer is never mutated.
type TagTable struct {
	entries map[Signature][]byte
	order   []Signature
}

func emptyTagTable() TagTable {
	return TagTable{entries: make(map[Signature][]byte)}
}

func (t *TagTable) add(sig Signature, data []byte) {
	// Duplicate signatures are not allowed by the format; first record wins.
	if _, ok := t.entries[sig]; ok {
		return
	}
	t.entries[sig] = data
	t.order = append(t.order, sig)
}

func (t *TagTable) Has(sig Signature) bool {
	_, ok := t.entries[sig]
	return ok
}

func (t *TagTable) Raw(sig Signature) ([]byte, bool) {
	data, ok := t.entries[sig]
	return data, ok
}

func (t *TagTable) Len() int { return len(t.order) }

// Signatures returns the tag signatures in profile order.
func (t *TagTable) Signatures() []Signature {
	ans := make([]Signature, len(t.order))
	copy(ans, t.order)
	return ans
}

// TypeSignature returns the leading 4-byte type signature of a tag payload.
func (t *TagTable) TypeSignature(sig Signature) Signature {
	data, ok := t.entries[sig]
	if !ok || len(data) < 4 {
		return UnknownSignature
	}
	return Signature(u32be(data[:4]))
}

// decode_tag_table reads the tag count at offset 128 and the 12-byte records
// that follow. Every record's (offset, size) pair is validated against the
// buffer length before the payload slice is taken.
func decode_tag_table(data []byte) (TagTable, error) {
	t := emptyTagTable()
	if len(data) < HEADER_SIZE+4 {
		return t, &TooSmallError{Expected: HEADER_SIZE + 4, Actual: len(data)}
	}
	count := u32be(data[HEADER_SIZE : HEADER_SIZE+4])
	records_end := uint64(HEADER_SIZE+4) + uint64(count)*tag_record_size
	if records_end > uint64(len(data)) {
		return t, &CorruptedDataError{Reason: fmt.Sprintf(
			"tag table declares %d records which do not fit in %d bytes", count, len(data))}
	}
	pos := HEADER_SIZE + 4
	for range count {
		rec := data[pos : pos+tag_record_size]
		pos += tag_record_size
		sig := Signature(u32be(rec[0:4]))
		offset := u32be(rec[4:8])
		size := u32be(rec[8:12])
		if uint64(offset)+uint64(size) > uint64(len(data)) {
			return t, &TagOutOfBoundsError{Tag: sig, Offset: offset, Size: size, ProfileSize: len(data)}
		}
		t.add(sig, data[offset:offset+size])
	}
	return t, nil
}
