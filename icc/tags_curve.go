package icc

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Curve1D is a per-channel transfer function. Transform is the decode
// direction (encoded -> linear), InverseTransform the encode direction.
// Prepare must be called once before use to derive cached inverses.
type Curve1D interface {
	Transform(x unit_float) unit_float
	InverseTransform(x unit_float) unit_float
	Prepare() error
	String() string
}

type IdentityCurve int

type GammaCurve struct {
	gamma, inv_gamma unit_float
	is_one           bool
}

type PointsCurve struct {
	points, reverse_lookup []unit_float
	max_idx                unit_float
}

// The ICC parametric curve ('para') function types 1-4.
type ConditionalZeroCurve struct{ g, a, b, threshold, inv_gamma, inv_a unit_float }
type ConditionalCCurve struct{ g, a, b, c, threshold, inv_gamma, inv_a unit_float }
type SplitCurve struct{ g, a, b, c, d, inv_g, inv_a, inv_c, threshold unit_float }
type ComplexCurve struct{ g, a, b, c, d, e, f, inv_g, inv_a, inv_c, threshold unit_float }

var _ Curve1D = (*IdentityCurve)(nil)
var _ Curve1D = (*GammaCurve)(nil)
var _ Curve1D = (*PointsCurve)(nil)
var _ Curve1D = (*ConditionalZeroCurve)(nil)
var _ Curve1D = (*ConditionalCCurve)(nil)
var _ Curve1D = (*SplitCurve)(nil)
var _ Curve1D = (*ComplexCurve)(nil)

type ParametricCurveFunction uint16

const (
	SimpleGammaFunction     ParametricCurveFunction = 0 // Y = X^g
	ConditionalZeroFunction ParametricCurveFunction = 1 // Y = (aX+b)^g for X >= -b/a, else 0
	ConditionalCFunction    ParametricCurveFunction = 2 // Y = (aX+b)^g + c for X >= -b/a, else c
	SplitFunction           ParametricCurveFunction = 3 // Two functions split at d (sRGB form)
	ComplexFunction         ParametricCurveFunction = 4 // Seven parameter piecewise form
)

// decodeCurve decodes a TRC tag payload, which must be of 'curv' or 'para'
// type. Anything else is an InvalidTagTypeError.
func decodeCurve(tag Signature, raw []byte) (Curve1D, error) {
	if len(raw) < 4 {
		return nil, &CorruptedDataError{Reason: tag.String() + " curve tag too short"}
	}
	switch actual := Signature(u32be(raw[:4])); actual {
	case CurveTypeSignature:
		return curveDecoder(raw)
	case ParametricCurveTypeSignature:
		return parametricCurveDecoder(raw)
	default:
		return nil, &InvalidTagTypeError{Tag: tag, Expected: CurveTypeSignature, Actual: actual}
	}
}

func curveDecoder(raw []byte) (Curve1D, error) {
	if len(raw) < 12 {
		return nil, &CorruptedDataError{Reason: "curv tag too short"}
	}
	count := int(binary.BigEndian.Uint32(raw[8:12]))
	switch count {
	case 0:
		c := IdentityCurve(0)
		return &c, nil
	case 1:
		if len(raw) < 14 {
			return nil, &CorruptedDataError{Reason: "curv tag missing gamma value"}
		}
		// 8.8 fixed-point
		c := &GammaCurve{gamma: fixed88ToFloat(raw[12:14])}
		if err := c.Prepare(); err != nil {
			return nil, err
		}
		if c.is_one {
			q := IdentityCurve(0)
			return &q, nil
		}
		return c, nil
	default:
		points := make([]uint16, count)
		if _, err := binary.Decode(raw[12:], binary.BigEndian, points); err != nil {
			return nil, &CorruptedDataError{Reason: "curv tag truncated"}
		}
		fp := make([]unit_float, len(points))
		for i, p := range points {
			fp[i] = unit_float(p) / 65535
		}
		c := &PointsCurve{points: fp}
		if err := c.Prepare(); err != nil {
			return nil, err
		}
		return c, nil
	}
}

func parametricCurveDecoder(raw []byte) (Curve1D, error) {
	block_len := len(raw)
	if block_len < 16 {
		return nil, &CorruptedDataError{Reason: "para tag too short"}
	}
	funcType := ParametricCurveFunction(binary.BigEndian.Uint16(raw[8:10]))
	const header_len = 12
	raw = raw[header_len:]
	p := func() unit_float {
		ans := readS15Fixed16BE(raw[:4])
		raw = raw[4:]
		return ans
	}
	var c Curve1D
	var needed int
	switch funcType {
	case SimpleGammaFunction:
		if needed = header_len + 4; block_len < needed {
			return nil, &CorruptedDataError{Reason: "para tag too short"}
		}
		c = &GammaCurve{gamma: p()}
	case ConditionalZeroFunction:
		if needed = header_len + 3*4; block_len < needed {
			return nil, &CorruptedDataError{Reason: "para tag too short"}
		}
		c = &ConditionalZeroCurve{g: p(), a: p(), b: p()}
	case ConditionalCFunction:
		if needed = header_len + 4*4; block_len < needed {
			return nil, &CorruptedDataError{Reason: "para tag too short"}
		}
		c = &ConditionalCCurve{g: p(), a: p(), b: p(), c: p()}
	case SplitFunction:
		if needed = header_len + 5*4; block_len < needed {
			return nil, &CorruptedDataError{Reason: "para tag too short"}
		}
		c = &SplitCurve{g: p(), a: p(), b: p(), c: p(), d: p()}
	case ComplexFunction:
		if needed = header_len + 7*4; block_len < needed {
			return nil, &CorruptedDataError{Reason: "para tag too short"}
		}
		c = &ComplexCurve{g: p(), a: p(), b: p(), c: p(), d: p(), e: p(), f: p()}
	default:
		return nil, &CorruptedDataError{Reason: fmt.Sprintf("unknown parametric function type: %d", funcType)}
	}
	if err := c.Prepare(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c IdentityCurve) Transform(x unit_float) unit_float        { return x }
func (c IdentityCurve) InverseTransform(x unit_float) unit_float { return x }
func (c IdentityCurve) Prepare() error                           { return nil }
func (c IdentityCurve) String() string                           { return "IdentityCurve{}" }

func (c GammaCurve) Transform(x unit_float) unit_float {
	if x < 0 {
		if c.is_one {
			return x
		}
		return 0
	}
	return math.Pow(x, c.gamma)
}

func (c GammaCurve) InverseTransform(x unit_float) unit_float {
	if x < 0 {
		if c.is_one {
			return x
		}
		return 0
	}
	return math.Pow(x, c.inv_gamma)
}

func (c *GammaCurve) Prepare() error {
	if c.gamma == 0 {
		return &CorruptedDataError{Reason: "gamma curve has zero gamma value"}
	}
	c.inv_gamma = 1 / c.gamma
	c.is_one = abs(c.gamma-1) < FLOAT_EQUALITY_THRESHOLD
	return nil
}
func (c GammaCurve) String() string { return fmt.Sprintf("GammaCurve{%f}", c.gamma) }

// Gamma returns the exponent, for introspection.
func (c GammaCurve) Gamma() unit_float { return c.gamma }

// Table curves are assumed monotonically non-decreasing but this is not
// validated; interpolation tolerates out of order samples and the inverse is
// a best effort lookup. See DESIGN.md.
func (c *PointsCurve) Prepare() error {
	if len(c.points) < 2 {
		return &CorruptedDataError{Reason: "points curve needs at least 2 samples"}
	}
	c.max_idx = unit_float(len(c.points) - 1)
	reverse_lookup := make([]unit_float, len(c.points))
	for i := range len(reverse_lookup) {
		y := unit_float(i) / unit_float(len(reverse_lookup)-1)
		idx := get_interval(c.points, y)
		if idx < 0 {
			reverse_lookup[i] = 0
		} else {
			y1, y2 := c.points[idx], c.points[idx+1]
			if y2 < y1 {
				y1, y2 = y2, y1
			}
			x1, x2 := unit_float(idx)/c.max_idx, unit_float(idx+1)/c.max_idx
			frac := unit_float(0)
			if y2 > y1 {
				frac = (y - y1) / (y2 - y1)
			}
			reverse_lookup[i] = x1 + frac*(x2-x1)
		}
	}
	c.reverse_lookup = reverse_lookup
	return nil
}

func (c PointsCurve) Transform(v unit_float) unit_float {
	return sampled_value(c.points, c.max_idx, v)
}

func (c PointsCurve) InverseTransform(v unit_float) unit_float {
	return sampled_value(c.reverse_lookup, c.max_idx, v)
}
func (c PointsCurve) String() string { return fmt.Sprintf("PointsCurve{%d}", len(c.points)) }

// NumPoints returns the sample count, for introspection.
func (c PointsCurve) NumPoints() int { return len(c.points) }

func (c *ConditionalZeroCurve) Prepare() error {
	if c.a == 0 || c.g == 0 {
		return &CorruptedDataError{Reason: fmt.Sprintf("conditional zero curve has zero parameter: a=%f or g=%f", c.a, c.g)}
	}
	c.threshold, c.inv_gamma, c.inv_a = -c.b/c.a, 1/c.g, 1/c.a
	return nil
}

func (c *ConditionalZeroCurve) String() string {
	return fmt.Sprintf("ConditionalZeroCurve{a: %v b: %v g: %v}", c.a, c.b, c.g)
}

func (c *ConditionalZeroCurve) Transform(x unit_float) unit_float {
	// Y = (aX+b)^g if X >= -b/a else 0
	if x >= c.threshold {
		if e := c.a*x + c.b; e > 0 {
			return math.Pow(e, c.g)
		}
	}
	return 0
}

func (c *ConditionalZeroCurve) InverseTransform(y unit_float) unit_float {
	// X = (Y^(1/g) - b) / a, clamped at zero to match lcms behaviour
	return max(0, (math.Pow(y, c.inv_gamma)-c.b)*c.inv_a)
}

func (c *ConditionalCCurve) Prepare() error {
	if c.a == 0 || c.g == 0 {
		return &CorruptedDataError{Reason: fmt.Sprintf("conditional C curve has zero parameter: a=%f or g=%f", c.a, c.g)}
	}
	c.threshold, c.inv_gamma, c.inv_a = -c.b/c.a, 1/c.g, 1/c.a
	return nil
}

func (c *ConditionalCCurve) String() string {
	return fmt.Sprintf("ConditionalCCurve{a: %v b: %v c: %v g: %v}", c.a, c.b, c.c, c.g)
}

func (c *ConditionalCCurve) Transform(x unit_float) unit_float {
	// Y = (aX+b)^g + c if X >= -b/a else c; at the threshold aX+b is 0
	// so both branches meet at c
	if x >= c.threshold {
		if e := c.a*x + c.b; e > 0 {
			return math.Pow(e, c.g) + c.c
		}
	}
	return c.c
}

func (c *ConditionalCCurve) InverseTransform(y unit_float) unit_float {
	// X = ((Y-c)^(1/g) - b) / a if Y >= c else -b/a
	if e := y - c.c; e >= 0 {
		if e == 0 {
			return 0
		}
		return (math.Pow(e, c.inv_gamma) - c.b) * c.inv_a
	}
	return c.threshold
}

func (c *SplitCurve) Prepare() error {
	if c.a == 0 || c.g == 0 || c.c == 0 {
		return &CorruptedDataError{Reason: fmt.Sprintf("split curve has zero parameter: a=%f or g=%f or c=%f", c.a, c.g, c.c)}
	}
	c.threshold, c.inv_g, c.inv_a, c.inv_c = math.Pow(c.a*c.d+c.b, c.g), 1/c.g, 1/c.a, 1/c.c
	return nil
}

func (c *SplitCurve) String() string {
	return fmt.Sprintf("SplitCurve{a: %v b: %v c: %v d: %v g: %v}", c.a, c.b, c.c, c.d, c.g)
}

func (c *SplitCurve) Transform(x unit_float) unit_float {
	// Y = (aX+b)^g if X >= d else cX
	if x >= c.d {
		if e := c.a*x + c.b; e > 0 {
			return math.Pow(e, c.g)
		}
		return 0
	}
	return c.c * x
}

func (c *SplitCurve) InverseTransform(y unit_float) unit_float {
	// X = (Y^(1/g)-b)/a  | Y >= (ad+b)^g
	// X = Y/c            | Y <  (ad+b)^g
	if y < c.threshold {
		return y * c.inv_c
	}
	return (math.Pow(y, c.inv_g) - c.b) * c.inv_a
}

func (c *ComplexCurve) Prepare() error {
	if c.a == 0 || c.g == 0 || c.c == 0 {
		return &CorruptedDataError{Reason: fmt.Sprintf("complex curve has zero parameter: a=%f or g=%f or c=%f", c.a, c.g, c.c)}
	}
	c.threshold, c.inv_g, c.inv_a, c.inv_c = math.Pow(c.a*c.d+c.b, c.g)+c.e, 1/c.g, 1/c.a, 1/c.c
	return nil
}

func (c *ComplexCurve) String() string {
	return fmt.Sprintf("ComplexCurve{a: %v b: %v c: %v d: %v e: %v f: %v g: %v}", c.a, c.b, c.c, c.d, c.e, c.f, c.g)
}

func (c *ComplexCurve) Transform(x unit_float) unit_float {
	// Y = (aX+b)^g + e if X >= d else cX+f
	if x >= c.d {
		if e := c.a*x + c.b; e > 0 {
			return math.Pow(e, c.g) + c.e
		}
		return c.e
	}
	return c.c*x + c.f
}

func (c *ComplexCurve) InverseTransform(y unit_float) unit_float {
	// X = ((Y-e)^(1/g)-b)/a | Y >= (ad+b)^g+e
	// X = (Y-f)/c           | otherwise
	if y < c.threshold {
		return (y - c.f) * c.inv_c
	}
	if e := y - c.e; e > 0 {
		return (math.Pow(e, c.inv_g) - c.b) * c.inv_a
	}
	return 0
}
