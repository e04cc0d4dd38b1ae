package subtitles

// Converter turns detected subtitle payloads into SRT entries.
type Converter struct {
	// MaxLineLength bounds converted cue lines; zero selects DefaultMaxLineLength.
	MaxLineLength int
}

// Convert converts data with the default line length.
func Convert(format Format, data []byte) ([]Entry, error) {
	return Converter{}.Convert(format, data)
}

// Convert parses data of the given format. Formats without text fail with a
// *ConversionError wrapping ErrUnconvertible, as do text formats that yield
// no cues.
func (c Converter) Convert(format Format, data []byte) ([]Entry, error) {
	var entries []Entry
	switch format {
	case FormatSRT:
		parsed, err := ParseSRT(data)
		if err != nil {
			return nil, &ConversionError{Format: format, Reason: err.Error()}
		}
		return parsed, nil
	case FormatASS:
		entries = parseASS(decodeText(data), c.MaxLineLength)
	case FormatTTML, FormatXML:
		entries = parseTTML(decodeText(data), c.MaxLineLength)
	default:
		return nil, unconvertible(format)
	}
	if len(entries) == 0 {
		return nil, &ConversionError{Format: format, Reason: "no timed text found"}
	}
	return entries, nil
}

// ToSRT detects, converts, and renders data as an SRT document.
func (c Converter) ToSRT(data []byte) ([]byte, Format, error) {
	format := Detect(data)
	entries, err := c.Convert(format, data)
	if err != nil {
		return nil, format, err
	}
	return WriteSRT(entries, c.MaxLineLength), format, nil
}
