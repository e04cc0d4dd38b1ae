package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", " -",
	"*", "-",
	"?", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "-",
)

var titleCaser = cases.Title(language.English)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, pipes, and asterisks become dashes, colons become
// " -", double quotes become single quotes, and the remaining reserved
// characters are removed. Control characters (tabs, newlines, NULs) act as
// word separators. Whitespace runs collapse to one space and trailing dots or
// spaces are trimmed.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, fileNameReplacer.Replace(name))
	return strings.TrimRight(CollapseSpaces(name), ". ")
}

// CollapseSpaces trims s and folds every whitespace run into a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleIfLower title-cases s when it contains no upper-case letters, leaving
// deliberately cased names ("iCarly", "NCIS") alone.
func TitleIfLower(s string) string {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return s
		}
	}
	return titleCaser.String(s)
}
