package subtitles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ttmlFrameRate converts HH:MM:SS:FF frame counts when the document does not
// say otherwise.
const ttmlFrameRate = 25

var (
	paragraphs      = regexp.MustCompile(`(?is)<p\b([^>]*)>(.*?)</p>`)
	timingAttr      = regexp.MustCompile(`(?i)\b(begin|start|end|dur)\s*=\s*["']([^"']*)["']`)
	lineBreakTags   = regexp.MustCompile(`(?i)<br\s*/?>`)
	markupTags      = regexp.MustCompile(`<[^>]+>`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	entityReplacer  = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")
	offsetTimeRegex = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(h|ms|m|s)$`)
)

// offsetUnits maps offset-time metrics to milliseconds.
var offsetUnits = map[string]int64{"h": 3_600_000, "m": 60_000, "s": 1000, "ms": 1}

func parseTTML(text string, maxLen int) []Entry {
	var entries []Entry
	for _, match := range paragraphs.FindAllStringSubmatch(text, -1) {
		start, end, ok := paragraphTiming(match[1])
		if !ok {
			continue
		}
		body := cleanParagraph(match[2])
		if body == "" {
			continue
		}
		entries = append(entries, newEntry(start, end, Wrap(body, maxLen)))
	}
	return finishEntries(entries)
}

// paragraphTiming reads begin (or start) and end (or begin+dur) from a <p>
// tag's attributes in any order. An explicit end wins over dur.
func paragraphTiming(attrs string) (start, end int64, ok bool) {
	values := make(map[string]string)
	for _, attr := range timingAttr.FindAllStringSubmatch(attrs, -1) {
		name := strings.ToLower(attr[1])
		if _, set := values[name]; !set {
			values[name] = attr[2]
		}
	}
	begin, has := values["begin"]
	if !has {
		begin, has = values["start"]
	}
	if !has {
		return 0, 0, false
	}
	start, err := parseTTMLTime(begin)
	if err != nil {
		return 0, 0, false
	}
	if value, has := values["end"]; has {
		end, err = parseTTMLTime(value)
		return start, end, err == nil
	}
	if value, has := values["dur"]; has {
		dur, err := parseTTMLTime(value)
		return start, start + dur, err == nil
	}
	return 0, 0, false
}

func cleanParagraph(raw string) string {
	text := lineBreakTags.ReplaceAllString(raw, " ")
	text = markupTags.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// parseTTMLTime accepts offset times ("12.5s", "12500ms", "1.5h", "2m") and
// clock times ("HH:MM:SS", "HH:MM:SS.mmm", "HH:MM:SS:FF").
func parseTTMLTime(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if match := offsetTimeRegex.FindStringSubmatch(value); match != nil {
		return offsetMillis(match[1], match[2], offsetUnits[match[3]])
	}

	parts := strings.Split(value, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return 0, fmt.Errorf("invalid ttml time %q", value)
	}
	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil {
		return 0, fmt.Errorf("invalid ttml time %q", value)
	}
	secText, fraction, hasFraction := strings.Cut(parts[2], ".")
	seconds, err := strconv.Atoi(secText)
	if err != nil {
		return 0, fmt.Errorf("invalid ttml time %q", value)
	}
	ms := int64(hours)*3_600_000 + int64(minutes)*60_000 + int64(seconds)*1000
	if hasFraction {
		fraction = (fraction + "000")[:3]
		millis, err := strconv.Atoi(fraction)
		if err != nil {
			return 0, fmt.Errorf("invalid ttml time %q", value)
		}
		ms += int64(millis)
	}
	if len(parts) == 4 {
		frames, err := strconv.Atoi(parts[3])
		if err != nil {
			return 0, fmt.Errorf("invalid ttml time %q", value)
		}
		ms += int64(frames) * 1000 / ttmlFrameRate
	}
	return ms, nil
}

// offsetMillis computes whole.fraction * unit in integer arithmetic so that
// decimal fractions such as "1.005s" are exact. Sub-millisecond remainders
// are truncated.
func offsetMillis(whole, fraction string, unit int64) (int64, error) {
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ttml offset %q", whole)
	}
	ms := n * unit
	if len(fraction) > 9 {
		fraction = fraction[:9]
	}
	if fraction != "" {
		f, err := strconv.ParseInt(fraction, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ttml offset fraction %q", fraction)
		}
		scale := int64(1)
		for range len(fraction) {
			scale *= 10
		}
		ms += f * unit / scale
	}
	return ms, nil
}
