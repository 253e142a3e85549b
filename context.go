package cms

import (
	"github.com/kovidgoyal/cms/icc"
)

// ColorantHandling resolves the format ambiguity around colorant tags:
// profiles may store colorant values already adapted to the connection
// space white point, or in native device white point space expecting the
// consumer to adapt.
type ColorantHandling int

const (
	// ColorantsMediaRelative treats colorant tags as already PCS-adapted
	// (the v4 rule and the behaviour of lcms); chromatic adaptation is
	// applied only between differing media white points. This is the
	// default.
	ColorantsMediaRelative ColorantHandling = iota
	// ColorantsDeviceNative forces adaptation of each profile's colorants
	// from its media white point to the PCS white point before they are
	// composed.
	ColorantsDeviceNative
)

// Flags toggle optional transform behaviour.
type Flags struct {
	// BlackPointCompensation maps the source black point onto the
	// destination black point with a linear XYZ scaling.
	BlackPointCompensation bool
	// ClampOutput clamps encoded output to [0, 1]. On by default.
	ClampOutput bool
	// SoftProof and GamutCheck are reserved; gamut mapping is not
	// implemented.
	SoftProof  bool
	GamutCheck bool
	// HighPrecision is reserved; all arithmetic is float64.
	HighPrecision bool
}

// Context carries the configuration for one transform build. It is a value
// type, copied into the transform; mutating it afterwards has no effect.
type Context struct {
	Intent           icc.RenderingIntent
	Flags            Flags
	Adaptation       icc.AdaptationMethod
	ColorantHandling ColorantHandling
	PCSWhitePoint    icc.XYZType
}

func DefaultContext() Context {
	return Context{
		Intent:        icc.PerceptualRenderingIntent,
		Flags:         Flags{ClampOutput: true},
		Adaptation:    icc.BradfordAdaptation,
		PCSWhitePoint: icc.D50,
	}
}
