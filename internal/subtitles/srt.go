package subtitles

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// DefaultMaxLineLength is the wrap width used when none is configured.
const DefaultMaxLineLength = 45

// Entry is one timed subtitle cue.
type Entry struct {
	StartMS int64
	EndMS   int64
	Text    string
}

var blockSeparator = regexp.MustCompile(`\n\s*\n`)

// ParseSRT reads SRT cues. Blocks without a parseable timing line are
// skipped; cue text is kept verbatim apart from trailing whitespace.
func ParseSRT(data []byte) ([]Entry, error) {
	content := strings.TrimSpace(decodeText(data))
	if content == "" {
		return nil, nil
	}
	var entries []Entry
	for _, block := range blockSeparator.Split(content, -1) {
		entry, ok := parseSRTBlock(block)
		if ok {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no timed cues found in srt data")
	}
	return finishEntries(entries), nil
}

func parseSRTBlock(block string) (Entry, bool) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		start, end, ok := strings.Cut(line, "-->")
		if !ok {
			continue
		}
		startMS, err := parseSRTTimestamp(start)
		if err != nil {
			return Entry{}, false
		}
		endMS, err := parseSRTTimestamp(end)
		if err != nil {
			return Entry{}, false
		}
		text := make([]string, 0, len(lines)-i-1)
		for _, textLine := range lines[i+1:] {
			text = append(text, strings.TrimRight(textLine, " \t"))
		}
		return newEntry(startMS, endMS, strings.Join(text, "\n")), true
	}
	return Entry{}, false
}

// parseSRTTimestamp parses "HH:MM:SS,mmm"; a period separator is accepted.
// Position metadata after the timestamp ("X1:...") is ignored.
func parseSRTTimestamp(value string) (int64, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(fields[0], ".", ",")
	clock, fraction, ok := strings.Cut(value, ",")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(fraction)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return int64(hours)*3_600_000 + int64(minutes)*60_000 + int64(seconds)*1000 + int64(millis), nil
}

// FormatTimestamp renders milliseconds as an SRT timestamp.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	seconds := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// WriteSRT renders entries as numbered SRT cues, wrapping text at maxLen.
func WriteSRT(entries []Entry, maxLen int) []byte {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n", i+1, FormatTimestamp(entry.StartMS), FormatTimestamp(entry.EndMS), Wrap(entry.Text, maxLen))
	}
	return []byte(b.String())
}

func newEntry(start, end int64, text string) Entry {
	start = max(start, 0)
	return Entry{StartMS: start, EndMS: max(end, start), Text: text}
}

type entryKey struct {
	start, end int64
	text       string
}

// finishEntries drops repeated (start, end, text) cues, keeping the first,
// and stable-sorts the rest by start time.
func finishEntries(entries []Entry) []Entry {
	seen := make(map[entryKey]struct{}, len(entries))
	out := entries[:0]
	for _, entry := range entries {
		key := entryKey{entry.StartMS, entry.EndMS, entry.Text}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(a.StartMS, b.StartMS)
	})
	return out
}
