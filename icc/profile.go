package icc

import (
	"fmt"
	"io"
)

var _ = fmt.Println

// Profile is an immutable parsed ICC profile. The matrix-shaper tags are
// decoded eagerly at construction so that transform building never touches
// raw bytes again; everything else is decoded on demand.
type Profile struct {
	Header   Header
	TagTable TagTable

	colorant_matrix  *Matrix3
	media_white      *XYZType
	media_black      *XYZType
	red_trc          Curve1D
	green_trc        Curve1D
	blue_trc         Curve1D
	gray_trc         Curve1D
	chad             *Matrix3
	is_matrix_shaper bool
}

// Decode parses a complete profile from an arbitrary, possibly adversarial
// byte buffer. It never panics or reads past len(data); every failure is one
// of the typed errors in errors.go.
func Decode(data []byte) (*Profile, error) {
	header, err := decode_header(data)
	if err != nil {
		return nil, err
	}
	table, err := decode_tag_table(data)
	if err != nil {
		return nil, err
	}
	p := &Profile{Header: header, TagTable: table}
	if err = p.decode_required_tags(); err != nil {
		return nil, err
	}
	p.classify()
	return p, nil
}

// DecodeProfile reads an entire stream and parses it as a profile.
func DecodeProfile(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Tags needed by the matrix-shaper path are decoded up front. A missing tag
// is not an error, the profile just does not classify as matrix-shaper; a
// present but malformed tag is.
func (p *Profile) decode_required_tags() error {
	xyz := func(sig Signature, dst **XYZType) error {
		raw, ok := p.TagTable.Raw(sig)
		if !ok {
			return nil
		}
		v, err := xyzDecoder(sig, raw)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
	curve := func(sig Signature, dst *Curve1D) error {
		raw, ok := p.TagTable.Raw(sig)
		if !ok {
			return nil
		}
		c, err := decodeCurve(sig, raw)
		if err != nil {
			return err
		}
		*dst = c
		return nil
	}
	var r, g, b *XYZType
	if err := xyz(RedColorantTagSignature, &r); err != nil {
		return err
	}
	if err := xyz(GreenColorantTagSignature, &g); err != nil {
		return err
	}
	if err := xyz(BlueColorantTagSignature, &b); err != nil {
		return err
	}
	if r != nil && g != nil && b != nil {
		// colorant XYZ triples become the columns of the matrix
		p.colorant_matrix = &Matrix3{
			{r.X, g.X, b.X},
			{r.Y, g.Y, b.Y},
			{r.Z, g.Z, b.Z},
		}
	}
	if err := xyz(MediaWhitePointTagSignature, &p.media_white); err != nil {
		return err
	}
	if err := xyz(MediaBlackPointTagSignature, &p.media_black); err != nil {
		return err
	}
	if err := curve(RedTRCTagSignature, &p.red_trc); err != nil {
		return err
	}
	if err := curve(GreenTRCTagSignature, &p.green_trc); err != nil {
		return err
	}
	if err := curve(BlueTRCTagSignature, &p.blue_trc); err != nil {
		return err
	}
	if err := curve(GrayTRCTagSignature, &p.gray_trc); err != nil {
		return err
	}
	if raw, ok := p.TagTable.Raw(ChromaticAdaptationTagSignature); ok {
		m, err := chadDecoder(ChromaticAdaptationTagSignature, raw)
		if err != nil {
			return err
		}
		p.chad = &m
	}
	return nil
}

func (p *Profile) classify() {
	switch p.Header.DeviceClass {
	case DeviceClassDisplay, DeviceClassInput, DeviceClassOutput:
	default:
		return
	}
	if p.Header.DataColorSpace != ColorSpaceRGB || p.Header.ProfileConnectionSpace != ColorSpaceXYZ {
		return
	}
	if p.colorant_matrix == nil || p.red_trc == nil || p.green_trc == nil || p.blue_trc == nil {
		return
	}
	// Collinear/degenerate colorants must never produce a silently wrong
	// inverse downstream.
	if abs(p.colorant_matrix.Determinant()) < MATRIX_DET_TOLERANCE {
		return
	}
	p.is_matrix_shaper = true
}

// IsMatrixShaper reports whether the profile carries an invertible colorant
// matrix plus per-channel TRCs for RGB data with an XYZ connection space.
func (p *Profile) IsMatrixShaper() bool { return p.is_matrix_shaper }

// ColorantMatrix returns the RGB -> XYZ matrix whose columns are the red,
// green and blue colorant tristimulus values.
func (p *Profile) ColorantMatrix() (Matrix3, error) {
	if p.colorant_matrix == nil {
		return Matrix3{}, &MissingTagError{Tag: RedColorantTagSignature}
	}
	return *p.colorant_matrix, nil
}

// WhitePoint returns the media white point when present, falling back to the
// PCS illuminant from the header and finally to nominal D50.
func (p *Profile) WhitePoint() XYZType {
	if p.media_white != nil {
		return *p.media_white
	}
	if p.Header.PCSIlluminant.Y > 0 {
		return p.Header.PCSIlluminant
	}
	return D50
}

// MediaWhitePoint returns the wtpt tag value, if the tag is present.
func (p *Profile) MediaWhitePoint() (XYZType, bool) {
	if p.media_white == nil {
		return XYZType{}, false
	}
	return *p.media_white, true
}

// MediaBlackPoint returns the bkpt tag value, if the tag is present.
func (p *Profile) MediaBlackPoint() (XYZType, bool) {
	if p.media_black == nil {
		return XYZType{}, false
	}
	return *p.media_black, true
}

func (p *Profile) RedTRC() Curve1D   { return p.red_trc }
func (p *Profile) GreenTRC() Curve1D { return p.green_trc }
func (p *Profile) BlueTRC() Curve1D  { return p.blue_trc }
func (p *Profile) GrayTRC() Curve1D  { return p.gray_trc }

// ChromaticAdaptation returns the chad tag matrix, if present.
func (p *Profile) ChromaticAdaptation() (Matrix3, bool) {
	if p.chad == nil {
		return Matrix3{}, false
	}
	return *p.chad, true
}

func (p *Profile) Version() Version                 { return p.Header.Version }
func (p *Profile) RenderingIntent() RenderingIntent { return p.Header.RenderingIntent }

func (p *Profile) Description() (string, error) {
	raw, ok := p.TagTable.Raw(DescSignature)
	if !ok {
		return "", &MissingTagError{Tag: DescSignature}
	}
	return decodeText(DescSignature, raw)
}

func (p *Profile) Copyright() (string, error) {
	raw, ok := p.TagTable.Raw(CopyrightTagSignature)
	if !ok {
		return "", &MissingTagError{Tag: CopyrightTagSignature}
	}
	return decodeText(CopyrightTagSignature, raw)
}
