package subtitles

import (
	"strings"
	"unicode"
)

// Break candidates in priority order. Punctuation breaks fall after the
// token's trailing space; word breaks fall before the word so it opens the
// next line.
var (
	sentenceBreaks = []string{". ", "! ", "? ", "; "}
	clauseBreaks   = []string{", ", ": ", " - ", " – ", " — "}
	breakWords     = []string{
		"and", "but", "or", "nor", "so", "yet", "because", "although", "while",
		"when", "where", "which", "who", "that", "if", "than", "then",
		"with", "without", "for", "from", "into", "about", "after", "before",
		"to", "of", "in", "on", "at", "by",
	}
)

// punctuationMinRatio keeps punctuation and word breaks from leaving a
// nearly empty first line.
const punctuationMinRatio = 0.5

// Wrap reflows every line of text longer than maxLen characters. A maxLen of
// zero or less selects DefaultMaxLineLength.
func Wrap(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}
	if runeLen(text) <= maxLen {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if runeLen(line) <= maxLen {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, maxLen)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, maxLen int) []string {
	var out []string
	remaining := []rune(strings.TrimSpace(line))
	for len(remaining) > maxLen {
		cut := breakPoint(remaining, maxLen)
		if head := strings.TrimSpace(string(remaining[:cut])); head != "" {
			out = append(out, head)
		}
		remaining = []rune(strings.TrimSpace(string(remaining[cut:])))
	}
	if len(remaining) > 0 {
		out = append(out, string(remaining))
	}
	return out
}

// breakPoint returns the rune offset at which to split text, which is
// longer than maxLen.
func breakPoint(text []rune, maxLen int) int {
	// A break at offset maxLen still yields a first line of maxLen runes.
	window := text[:maxLen+1]
	punctuationMin := int(float64(maxLen) * punctuationMinRatio)

	for _, tier := range [][]string{sentenceBreaks, clauseBreaks} {
		if cut := lastTokenEnd(window, tier, punctuationMin); cut > 0 {
			return cut
		}
	}
	if cut := lastWordStart(window, punctuationMin); cut > 0 {
		return cut
	}
	// Any space beats cutting a word, however early it falls.
	for i := len(window) - 1; i > 0; i-- {
		if window[i] == ' ' {
			return i + 1
		}
	}
	// A word longer than the budget runs over rather than being split, as
	// long as a space follows it.
	for i := len(window); i < len(text); i++ {
		if text[i] == ' ' {
			return i + 1
		}
	}
	return maxLen
}

// lastTokenEnd finds the right-most token in window whose visible part fits
// within maxLen and starts after minPos, and returns the offset just past it.
func lastTokenEnd(window []rune, tokens []string, minPos int) int {
	best := -1
	for _, token := range tokens {
		needle := []rune(token)
		// The token's trailing space may sit at the last window position.
		for pos := len(window) - len(needle); pos > minPos; pos-- {
			if hasRunesAt(window, needle, pos) {
				best = max(best, pos+len(needle))
				break
			}
		}
	}
	return best
}

// lastWordStart finds the right-most break word surrounded by spaces and
// returns the offset of its first letter.
func lastWordStart(window []rune, minPos int) int {
	best := -1
	lower := make([]rune, len(window))
	for i, r := range window {
		lower[i] = unicode.ToLower(r)
	}
	for _, word := range breakWords {
		needle := []rune(" " + word + " ")
		for pos := len(lower) - len(needle); pos > minPos; pos-- {
			if hasRunesAt(lower, needle, pos) {
				best = max(best, pos+1)
				break
			}
		}
	}
	return best
}

func hasRunesAt(haystack, needle []rune, pos int) bool {
	if pos < 0 || pos+len(needle) > len(haystack) {
		return false
	}
	for i, r := range needle {
		if haystack[pos+i] != r {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return len([]rune(s))
}
