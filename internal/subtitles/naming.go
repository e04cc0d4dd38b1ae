package subtitles

import (
	"strconv"
	"strings"
)

// Suffix builds the ".{lang}[.forced][.sdh]" part shared by temporary and
// persisted subtitle file names.
func Suffix(lang string, forced, hearingImpaired bool) string {
	var b strings.Builder
	b.WriteString(".")
	b.WriteString(lang)
	if forced {
		b.WriteString(".forced")
	}
	if hearingImpaired {
		b.WriteString(".sdh")
	}
	return b.String()
}

// TempName names the raw extraction target for one track. The track id keeps
// same-language tracks of one file apart.
func TempName(base, lang string, forced, hearingImpaired bool, trackID int) string {
	return base + Suffix(lang, forced, hearingImpaired) + "." + strconv.Itoa(trackID) + ".temp"
}

// SRTName names a converted subtitle file.
func SRTName(base, lang string, forced, hearingImpaired bool) string {
	return base + Suffix(lang, forced, hearingImpaired) + ".srt"
}
