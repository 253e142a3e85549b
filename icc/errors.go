package icc

import "fmt"

// All parse failures are data driven and reported with one of the typed
// errors below, never a panic. Hostile input must at worst produce an error.

type TooSmallError struct {
	Expected, Actual int
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("profile too small: expected at least %d bytes, got %d", e.Expected, e.Actual)
}

type InvalidSignatureError struct {
	Signature Signature
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid profile signature: %v (expected 'acsp')", e.Signature)
}

type SizeMismatchError struct {
	Declared uint32
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("profile size mismatch: header declares %d bytes, buffer has %d", e.Declared, e.Actual)
}

type TagOutOfBoundsError struct {
	Tag          Signature
	Offset, Size uint32
	ProfileSize  int
}

func (e *TagOutOfBoundsError) Error() string {
	return fmt.Sprintf("tag %v out of bounds: offset %d + size %d > profile size %d", e.Tag, e.Offset, e.Size, e.ProfileSize)
}

type InvalidTagTypeError struct {
	Tag, Expected, Actual Signature
}

func (e *InvalidTagTypeError) Error() string {
	return fmt.Sprintf("tag %v has type %v, expected %v", e.Tag, e.Actual, e.Expected)
}

type MissingTagError struct {
	Tag Signature
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("required tag missing: %v", e.Tag)
}

type InvalidColorSpaceError struct {
	Value uint32
}

func (e *InvalidColorSpaceError) Error() string {
	return fmt.Sprintf("invalid color space: %v", Signature(e.Value))
}

type InvalidProfileClassError struct {
	Value uint32
}

func (e *InvalidProfileClassError) Error() string {
	return fmt.Sprintf("invalid profile class: %v", Signature(e.Value))
}

type InvalidRenderingIntentError struct {
	Value uint32
}

func (e *InvalidRenderingIntentError) Error() string {
	return fmt.Sprintf("invalid rendering intent: %d", e.Value)
}

type UnsupportedVersionError struct {
	Major, Minor uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported profile version: %d.%d", e.Major, e.Minor)
}

type CorruptedDataError struct {
	Reason string
}

func (e *CorruptedDataError) Error() string {
	return "corrupted profile data: " + e.Reason
}

type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string {
	return "unsupported: " + e.Reason
}
