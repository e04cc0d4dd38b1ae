package subtitles

import (
	"errors"
	"fmt"
)

// Format is a detected subtitle payload type.
type Format int

const (
	FormatUnknownText Format = iota
	FormatSRT
	FormatASS
	FormatASSVectorOnly
	FormatTTML
	FormatXML
	FormatBitmap
	FormatVector
)

func (f Format) String() string {
	switch f {
	case FormatSRT:
		return "srt"
	case FormatASS:
		return "ass"
	case FormatASSVectorOnly:
		return "ass-vector-only"
	case FormatTTML:
		return "ttml"
	case FormatXML:
		return "xml"
	case FormatBitmap:
		return "bitmap"
	case FormatVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Convertible reports whether the format carries text that Convert can turn
// into SRT entries.
func (f Format) Convertible() bool {
	switch f {
	case FormatSRT, FormatASS, FormatTTML, FormatXML:
		return true
	default:
		return false
	}
}

// ErrUnconvertible marks subtitle payloads that cannot become text.
var ErrUnconvertible = errors.New("subtitle cannot be converted to text")

// ConversionError explains why a payload could not be converted.
type ConversionError struct {
	Format Format
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s subtitles: %s", e.Format, e.Reason)
}

func (e *ConversionError) Unwrap() error {
	return ErrUnconvertible
}

func unconvertible(format Format) *ConversionError {
	reason := "unrecognized subtitle format"
	switch format {
	case FormatBitmap:
		reason = "bitmap subtitles are image-based and cannot be converted to text"
	case FormatVector:
		reason = "vector subtitles contain drawing commands, not text"
	case FormatASSVectorOnly:
		reason = "ASS/SSA dialogue contains only drawing commands or symbols"
	}
	return &ConversionError{Format: format, Reason: reason}
}
