// Package language maps the language codes found in Matroska track metadata
// onto a canonical ISO 639-2 form and human-readable track titles.
//
// Canonical codes follow the bibliographic variants mkvmerge reports ("ger",
// "fre", "gre"); terminology variants and two-letter codes are accepted as
// aliases. Codes outside the built-in table are resolved through
// golang.org/x/text/language so that configuration written as "de" or
// "pt-BR" still matches tracks tagged "ger" or "por".
package language
