package icc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Descriptive text tags are read-only metadata, never part of the numeric
// transform path. Both the v2 'desc' and v4 'mluc' encodings are understood.

type TextDescription struct {
	ASCII string
}

func parseTextDescription(data []byte) (TextDescription, error) {
	desc := TextDescription{}
	var b [3]uint32
	if n, err := binary.Decode(data, binary.BigEndian, b[:]); err != nil {
		return desc, &CorruptedDataError{Reason: "desc tag too short"}
	} else {
		data = data[n:]
	}
	if s := Signature(b[0]); s != DescSignature {
		return desc, &InvalidTagTypeError{Tag: DescSignature, Expected: DescSignature, Actual: s}
	}
	asciiCount := b[2]
	if uint64(asciiCount) > uint64(len(data)) {
		return desc, &CorruptedDataError{Reason: "desc tag ascii count exceeds tag length"}
	}
	if asciiCount > 1 {
		desc.ASCII = string(data[:asciiCount-1]) // skip terminating null
	}
	return desc, nil
}

type MultiLocalisedUnicode struct {
	entriesByLanguageCountry map[[2]byte]map[[2]byte]string
}

func (mluc *MultiLocalisedUnicode) getAnyString() string {
	for _, country := range mluc.entriesByLanguageCountry {
		for _, s := range country {
			return s
		}
	}
	return ""
}

func (mluc *MultiLocalisedUnicode) getStringForLanguage(language [2]byte) string {
	for _, s := range mluc.entriesByLanguageCountry[language] {
		return s
	}
	return ""
}

func (mluc *MultiLocalisedUnicode) setString(language [2]byte, country [2]byte, text string) {
	countries, ok := mluc.entriesByLanguageCountry[language]
	if !ok {
		mluc.entriesByLanguageCountry[language] = map[[2]byte]string{country: text}
	} else {
		countries[country] = text
	}
}

func parseMultiLocalisedUnicode(data []byte) (MultiLocalisedUnicode, error) {
	result := MultiLocalisedUnicode{
		entriesByLanguageCountry: make(map[[2]byte]map[[2]byte]string),
	}
	reader := bytes.NewReader(data)
	type header struct {
		Sig, Reserved, RecordCount, RecordSize uint32
	}
	var h header
	if err := binary.Read(reader, binary.BigEndian, &h); err != nil {
		return result, &CorruptedDataError{Reason: "mluc tag too short"}
	}
	if s := Signature(h.Sig); s != MultiLocalisedUnicodeSignature {
		return result, &InvalidTagTypeError{Tag: MultiLocalisedUnicodeSignature, Expected: MultiLocalisedUnicodeSignature, Actual: s}
	}
	type record struct {
		Language, Country          [2]byte
		StringLength, StringOffset uint32
	}
	var rh record
	for range h.RecordCount {
		if err := binary.Read(reader, binary.BigEndian, &rh); err != nil {
			return result, &CorruptedDataError{Reason: fmt.Sprintf("failed to read mluc record header: %v", err)}
		}
		if uint64(rh.StringOffset)+uint64(rh.StringLength) > uint64(len(data)) {
			return result, &CorruptedDataError{Reason: "mluc record exceeds tag data length"}
		}
		recordStringBytes := data[rh.StringOffset : rh.StringOffset+rh.StringLength]
		recordStringUTF16 := make([]uint16, len(recordStringBytes)/2)
		for i := range recordStringUTF16 {
			recordStringUTF16[i] = uint16(recordStringBytes[2*i])<<8 | uint16(recordStringBytes[2*i+1])
		}
		result.setString(rh.Language, rh.Country, string(utf16.Decode(recordStringUTF16)))
		if h.RecordSize > 12 {
			if _, err := reader.Seek(int64(h.RecordSize-12), 1); err != nil {
				return result, &CorruptedDataError{Reason: "mluc record size exceeds tag data length"}
			}
		}
	}
	return result, nil
}

// decodeText decodes a descriptive text payload of 'desc', 'mluc' or 'text'
// type into a plain string, preferring English for multi localised tags.
func decodeText(tag Signature, raw []byte) (string, error) {
	if len(raw) < 8 {
		return "", &CorruptedDataError{Reason: tag.String() + " text tag too short"}
	}
	switch s := Signature(u32be(raw[:4])); s {
	case DescSignature:
		desc, err := parseTextDescription(raw)
		if err != nil {
			return "", err
		}
		return desc.ASCII, nil
	case MultiLocalisedUnicodeSignature:
		mluc, err := parseMultiLocalisedUnicode(raw)
		if err != nil {
			return "", err
		}
		if enUS := mluc.getStringForLanguage([2]byte{'e', 'n'}); enUS != "" {
			return enUS, nil
		}
		return mluc.getAnyString(), nil
	case TextTypeSignature:
		body := bytes.TrimRight(raw[8:], "\x00")
		return string(body), nil
	default:
		return "", &InvalidTagTypeError{Tag: tag, Expected: DescSignature, Actual: s}
	}
}
