package icc

// XYZType tag payload: 'XYZ ' type signature, 4 reserved bytes, then one
// s15Fixed16 tristimulus triple.
func xyzDecoder(tag Signature, raw []byte) (XYZType, error) {
	if len(raw) < 8+3*4 {
		return XYZType{}, &CorruptedDataError{Reason: tag.String() + " XYZ tag too short"}
	}
	if actual := Signature(u32be(raw[:4])); actual != XYZTypeSignature {
		return XYZType{}, &InvalidTagTypeError{Tag: tag, Expected: XYZTypeSignature, Actual: actual}
	}
	return XYZType{
		X: readS15Fixed16BE(raw[8:12]),
		Y: readS15Fixed16BE(raw[12:16]),
		Z: readS15Fixed16BE(raw[16:20]),
	}, nil
}

// s15Fixed16ArrayType with 9 values, as used by the 'chad' tag.
func chadDecoder(tag Signature, raw []byte) (Matrix3, error) {
	var m Matrix3
	if len(raw) < 8+9*4 {
		return m, &CorruptedDataError{Reason: tag.String() + " matrix tag too short"}
	}
	if actual := Signature(u32be(raw[:4])); actual != S15Fixed16ArrayTypeSignature {
		return m, &InvalidTagTypeError{Tag: tag, Expected: S15Fixed16ArrayTypeSignature, Actual: actual}
	}
	body := raw[8:]
	for i := range 9 {
		m[i/3][i%3] = readS15Fixed16BE(body[i*4 : (i+1)*4])
	}
	return m, nil
}
