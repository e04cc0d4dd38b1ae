package subtitles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	assFieldCount = 10
	assStartField = 1
	assEndField   = 2
	assTextField  = 9
)

var (
	overrideTags = regexp.MustCompile(`\{[^}]*\}`)
	assLineBreak = strings.NewReplacer(`\N`, "\n", `\n`, "\n", `\h`, " ")
)

func parseASS(text string, maxLen int) []Entry {
	var entries []Entry
	for line := range strings.SplitSeq(text, "\n") {
		fields, ok := splitDialogue(line)
		if !ok {
			continue
		}
		start, err := parseASSTime(fields[assStartField])
		if err != nil {
			continue
		}
		end, err := parseASSTime(fields[assEndField])
		if err != nil {
			continue
		}
		raw := strings.TrimSpace(fields[assTextField])
		if isVectorDrawing(stripOverrides(raw)) {
			continue
		}
		body := strings.TrimSpace(assLineBreak.Replace(stripOverrides(raw)))
		if body == "" || lowContent(body) {
			continue
		}
		entries = append(entries, newEntry(start, end, Wrap(body, maxLen)))
	}
	return finishEntries(entries)
}

// splitDialogue splits a "Dialogue:" event into its ten fields; the text
// field keeps any further commas.
func splitDialogue(line string) ([]string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "Dialogue:") {
		return nil, false
	}
	fields := strings.SplitN(line, ",", assFieldCount)
	if len(fields) < assFieldCount {
		return nil, false
	}
	return fields, true
}

func stripOverrides(text string) string {
	return overrideTags.ReplaceAllString(text, "")
}

// lowContent reports text with fewer than two distinct or three total
// non-space characters.
func lowContent(text string) bool {
	distinct := make(map[rune]struct{})
	total := 0
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			continue
		}
		distinct[r] = struct{}{}
		total++
	}
	return len(distinct) < 2 || total < 3
}

// parseASSTime converts "H:MM:SS.CC" to milliseconds. The fraction is read
// as a decimal, so one digit means tenths.
func parseASSTime(value string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid ass time %q", value)
	}
	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil {
		return 0, fmt.Errorf("invalid ass time %q", value)
	}
	secText, centiText, hasCenti := strings.Cut(parts[2], ".")
	seconds, err := strconv.Atoi(secText)
	if err != nil {
		return 0, fmt.Errorf("invalid ass time %q", value)
	}
	centis := 0
	if hasCenti {
		// "1.5" is half a second: pad to centiseconds, drop finer digits.
		centiText = (centiText + "00")[:2]
		if centis, err = strconv.Atoi(centiText); err != nil {
			return 0, fmt.Errorf("invalid ass time %q", value)
		}
	}
	return int64(hours)*3_600_000 + int64(minutes)*60_000 + int64(seconds)*1000 + int64(centis)*10, nil
}
