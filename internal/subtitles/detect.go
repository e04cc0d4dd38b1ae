package subtitles

import (
	"bytes"
	"regexp"
	"strings"
)

// detectWindow is how many leading bytes Detect inspects for markers.
const detectWindow = 2000

var (
	srtCuePattern   = regexp.MustCompile(`(?m)^\d+\s*\n\d{2}:\d{2}:\d{2},\d{3}\s*-->\s*\d{2}:\d{2}:\d{2},\d{3}`)
	digitsOnlyLine  = regexp.MustCompile(`(?m)^\d+\s*$`)
	markupPattern   = regexp.MustCompile(`<[A-Za-z?!/][^>]*>`)
	pgsMagic        = []byte("PG")
	vobSubPack      = []byte{0x00, 0x00, 0x01, 0xBA}
	vobSubIdxHeader = []byte("# VobSub index file")
)

// Detect identifies the format of a subtitle payload from its leading bytes.
func Detect(data []byte) Format {
	head := data[:min(len(data), detectWindow)]
	text := decodeText(head)

	switch {
	case looksLikeSRT(text):
		return FormatSRT
	case looksLikeBitmap(head):
		return FormatBitmap
	}

	hasASSMarkers := strings.Contains(text, "[Script Info]") || strings.Contains(text, "Dialogue:")
	if !hasASSMarkers && containsVectorDrawing(text) {
		return FormatVector
	}
	if hasASSMarkers {
		if assVectorOnly(decodeText(data)) {
			return FormatASSVectorOnly
		}
		return FormatASS
	}
	if (strings.Contains(text, "<tt ") || strings.Contains(text, "<p ") || strings.Contains(text, "xmlns")) &&
		strings.Contains(text, "begin=") {
		return FormatTTML
	}
	if markupPattern.MatchString(text) {
		return FormatXML
	}
	return FormatUnknownText
}

func looksLikeSRT(text string) bool {
	if srtCuePattern.MatchString(text) {
		return true
	}
	return strings.Contains(text, "-->") && strings.Contains(text, ",") && digitsOnlyLine.MatchString(text)
}

func looksLikeBitmap(head []byte) bool {
	head = bytes.TrimPrefix(head, bomUTF8)
	return bytes.HasPrefix(head, pgsMagic) ||
		bytes.HasPrefix(head, vobSubPack) ||
		bytes.HasPrefix(head, vobSubIdxHeader)
}

func containsVectorDrawing(text string) bool {
	for line := range strings.SplitSeq(text, "\n") {
		if isVectorDrawing(line) {
			return true
		}
	}
	return false
}

// isVectorDrawing reports whether text is made only of ASS drawing commands
// (single-letter m, n, l, b, s, p, c commands) and their coordinates, with at
// least one move and a coordinate pair.
func isVectorDrawing(text string) bool {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return false
	}
	hasMove := false
	numbers := 0
	for _, field := range fields {
		switch {
		case len(field) == 1 && strings.ContainsAny(strings.ToLower(field), "mnlbspcz"):
			if field == "m" || field == "M" {
				hasMove = true
			}
		case isCoordinate(field):
			numbers++
		default:
			return false
		}
	}
	return hasMove && numbers >= 2
}

func isCoordinate(field string) bool {
	field = strings.TrimPrefix(field, "-")
	if field == "" {
		return false
	}
	dot := false
	for _, r := range field {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

// assVectorOnly reports whether every dialogue line is a drawing or too
// short to be readable text. Files without dialogue are not vector-only.
func assVectorOnly(text string) bool {
	seen := false
	for line := range strings.SplitSeq(text, "\n") {
		fields, ok := splitDialogue(line)
		if !ok {
			continue
		}
		seen = true
		body := stripOverrides(fields[assTextField])
		if isVectorDrawing(body) {
			continue
		}
		if !lowContent(body) {
			return false
		}
	}
	return seen
}
