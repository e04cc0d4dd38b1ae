package mkvtoolnix

import (
	"regexp"
	"strconv"
)

// progressPatterns match the percentage formats mkvmerge and its wrappers
// print, most specific first.
var progressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)progress:\s*(\d{1,3})%`),
	regexp.MustCompile(`(?i)muxing:\s*(\d{1,3})%`),
	regexp.MustCompile(`\[\s*(\d{1,3})%\s*\]`),
	regexp.MustCompile(`(?:^|\s)(\d{1,3})%`),
}

// ParseProgress extracts a 0-100 percentage from an output line.
func ParseProgress(line string) (int, bool) {
	for _, pattern := range progressPatterns {
		match := pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		percent, err := strconv.Atoi(match[1])
		if err != nil || percent > 100 {
			return 0, false
		}
		return percent, true
	}
	return 0, false
}
