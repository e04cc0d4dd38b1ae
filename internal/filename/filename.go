package filename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	ptn "github.com/razsteinmetz/go-ptn"

	"mkvcleaner/internal/textutil"
)

// SeriesInfo describes an episode recognized from a file name. The zero value
// means no season/episode marker was found.
type SeriesInfo struct {
	SeriesTitle  string
	Tag          string
	Season       int
	Episode      int
	EpisodeTitle string
}

// Found reports whether a season/episode marker was recognized.
func (s SeriesInfo) Found() bool {
	return s.Tag != ""
}

const (
	placeholderOpen  = '\uE000'
	placeholderClose = '\uE001'
	// delimiterClass matches the separators release names use between words.
	delimiterClass = `[\s._\-]`
	cleanedSuffix  = "_cleaned"
	outputExt      = ".mkv"
	maxExtLen      = 5
)

var (
	seasonEpisodePattern = regexp.MustCompile(`[Ss](\d+)[Ee](\d+)`)
	delimiterRun         = regexp.MustCompile(`[._\-]+`)
	trailingDelimiters   = regexp.MustCompile(`[._\-\s]+$`)
	leadingDelimiters    = regexp.MustCompile(`^[._\-\s]+`)

	parenGroup = regexp.MustCompile(`(?i)\([^)]*(?:WEB|1080p|720p|480p|x264|x265|AC3|DTS|AAC)\b[^)]*\)`)
	// The hex alternative is case-sensitive so ordinary words are not read as hashes.
	bracketGroup = regexp.MustCompile(`(?i)\[[^\]]*(?:WEB|1080p|720p|480p|x264|x265|AC3|DTS|AAC|(?-i:[A-F0-9]{8}))\b[^\]]*\]`)
	hexHash      = regexp.MustCompile(`\b[A-F0-9]{8}\b`)
	episodeTag   = boundedAlternation(append(append([]string{}, serviceTags...), episodeTags...))

	// episodeMarkers terminate an episode title at their earliest occurrence.
	// Resolution, source and codec tokens come from the release-name parser.
	episodeMarkers = []*regexp.Regexp{parenGroup, bracketGroup, episodeTag, hexHash}
)

// boundedAlternation matches any of tags as a whole token: preceded by the
// start of text or a delimiter and followed by a delimiter or the end.
func boundedAlternation(tags []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|` + delimiterClass + `)(?:` + strings.Join(tags, "|") + `)(?:` + delimiterClass + `|$)`)
}

// Parse extracts series information from a file name. Directory components
// are ignored and a short, space-free extension is removed first.
func Parse(name string) SeriesInfo {
	protected, restore := protectAbbreviations(stripExtension(filepath.Base(name)))

	loc := seasonEpisodePattern.FindStringSubmatchIndex(protected)
	if loc == nil {
		return SeriesInfo{}
	}
	season, err := strconv.Atoi(protected[loc[2]:loc[3]])
	if err != nil {
		return SeriesInfo{}
	}
	episode, err := strconv.Atoi(protected[loc[4]:loc[5]])
	if err != nil {
		return SeriesInfo{}
	}

	series := normalizeWords(protected[:loc[0]])

	rest := leadingDelimiters.ReplaceAllString(protected[loc[1]:], "")
	if cut := earliestMarker(rest); cut >= 0 {
		rest = rest[:cut]
	}
	episodeTitle := restore(normalizeWords(rest))
	if utf8.RuneCountInString(episodeTitle) < 2 {
		episodeTitle = ""
	}
	switch strings.ToLower(episodeTitle) {
	case "episode", "ep":
		episodeTitle = ""
	}

	return SeriesInfo{
		SeriesTitle:  restore(series),
		Tag:          fmt.Sprintf("S%02dE%02d", season, episode),
		Season:       season,
		Episode:      episode,
		EpisodeTitle: episodeTitle,
	}
}

// CleanName returns the release title of a whole base name with delimiters
// turned into single spaces. Release tags are dropped; a recognized year is
// kept in parentheses.
func CleanName(name string) string {
	protected, restore := protectAbbreviations(stripExtension(filepath.Base(name)))
	info, err := ptn.Parse(protected)
	if err != nil || strings.TrimSpace(info.Title) == "" {
		return restore(normalizeWords(protected))
	}
	title := normalizeWords(info.Title)
	if info.Year > 0 && !strings.Contains(title, strconv.Itoa(info.Year)) {
		title = fmt.Sprintf("%s (%d)", title, info.Year)
	}
	return restore(title)
}

// OutputName returns the output file name and the container title for name.
// Without a series marker the cleaned name gets a "_cleaned" suffix.
func OutputName(name string, info SeriesInfo) (file, title string) {
	switch {
	case info.Found() && info.SeriesTitle != "" && info.EpisodeTitle != "":
		title = fmt.Sprintf("%s - %s - %s", textutil.TitleIfLower(info.SeriesTitle), info.Tag, textutil.TitleIfLower(info.EpisodeTitle))
	case info.Found() && info.SeriesTitle != "":
		title = fmt.Sprintf("%s - %s - Episode #%d.%d", textutil.TitleIfLower(info.SeriesTitle), info.Tag, info.Season, info.Episode)
	default:
		base := CleanName(name)
		if base == "" {
			base = stripExtension(filepath.Base(name))
		}
		title = textutil.TitleIfLower(base) + cleanedSuffix
	}
	file = textutil.SanitizeFileName(title)
	if file == "" {
		file = "output" + cleanedSuffix
	}
	return file + outputExt, title
}

// BaseName returns name without directories and extension.
func BaseName(name string) string {
	return stripExtension(filepath.Base(name))
}

func stripExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name || len(ext) > maxExtLen+1 || strings.ContainsFunc(ext, unicode.IsSpace) {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

func normalizeWords(s string) string {
	s = trailingDelimiters.ReplaceAllString(s, "")
	s = delimiterRun.ReplaceAllString(s, " ")
	return textutil.CollapseSpaces(s)
}

func earliestMarker(s string) int {
	cut := -1
	for _, pattern := range episodeMarkers {
		loc := pattern.FindStringIndex(s)
		if loc != nil && (cut < 0 || loc[0] < cut) {
			cut = loc[0]
		}
	}
	lower := strings.ToLower(s)
	for _, token := range releaseTokens(s) {
		if idx := strings.Index(lower, strings.ToLower(token)); idx >= 0 && (cut < 0 || idx < cut) {
			cut = idx
		}
	}
	return cut
}

// releaseTokens returns the resolution, source, and codec tokens found in s.
func releaseTokens(s string) []string {
	info, err := ptn.Parse(s)
	if err != nil {
		return nil
	}
	var tokens []string
	for _, token := range []string{info.Resolution, info.Quality, info.Codec} {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// protectAbbreviations swaps known abbreviations that start a word for
// placeholder tokens and returns a function restoring them.
func protectAbbreviations(s string) (string, func(string) string) {
	var b strings.Builder
	used := false
	prev := rune(-1)
	for i := 0; i < len(s); {
		if prev < 0 || !unicode.IsLetter(prev) {
			if idx, abbrev := matchAbbreviation(s[i:]); abbrev != "" {
				b.WriteRune(placeholderOpen)
				b.WriteRune(rune('A' + idx))
				b.WriteRune(placeholderClose)
				i += len(abbrev)
				prev = '.'
				used = true
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		b.WriteRune(r)
		prev = r
		i += size
	}
	if !used {
		return s, func(v string) string { return v }
	}
	return b.String(), restoreAbbreviations
}

func matchAbbreviation(s string) (int, string) {
	for idx, abbrev := range abbreviations {
		if strings.HasPrefix(s, abbrev) {
			return idx, abbrev
		}
	}
	return -1, ""
}

func restoreAbbreviations(s string) string {
	for idx, abbrev := range abbreviations {
		token := string([]rune{placeholderOpen, rune('A' + idx), placeholderClose})
		s = strings.ReplaceAll(s, token, abbrev)
	}
	return s
}
