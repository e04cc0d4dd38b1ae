package tracks

import (
	"slices"

	"mkvcleaner/internal/language"
)

// Kind identifies the stream type of a track.
type Kind int

const (
	KindVideo Kind = iota + 1
	KindAudio
	KindSubtitle
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitles"
	default:
		return "unknown"
	}
}

// ParseKind maps mkvmerge's track type names onto Kind.
func ParseKind(value string) (Kind, bool) {
	switch value {
	case "video":
		return KindVideo, true
	case "audio":
		return KindAudio, true
	case "subtitles", "subtitle":
		return KindSubtitle, true
	default:
		return 0, false
	}
}

// Track is one stream of a container as reported by the metadata provider.
type Track struct {
	ID              int
	Kind            Kind
	Language        string
	Forced          bool
	HearingImpaired bool
	Name            string
	Codec           string
}

// Preferences carries the per-run language and subtitle policy.
type Preferences struct {
	AllowedAudio           []string
	AllowedSubtitle        []string
	DefaultAudio           string
	DefaultSubtitle        string
	OriginalAudio          string
	OriginalSubtitle       string
	ExtractSubtitles       bool
	SaveExtractedSubtitles bool
}

func (p Preferences) audioAllowed(lang string) bool {
	return slices.Contains(p.AllowedAudio, lang)
}

func (p Preferences) subtitleAllowed(lang string) bool {
	return slices.Contains(p.AllowedSubtitle, lang)
}

// Action is the fate of a track in the output container.
type Action int

const (
	ActionKeep Action = iota + 1
	ActionDrop
)

func (a Action) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Decision records what happens to a single input track.
type Decision struct {
	TrackID         int
	Kind            Kind
	Action          Action
	Default         bool
	Original        bool
	Forced          bool
	HearingImpaired bool
	Language        string
	DisplayTitle    string
	Reason          string
}

// Kept reports whether the track survives into the output.
func (d Decision) Kept() bool {
	return d.Action == ActionKeep
}

// Candidate is a subtitle track that passed language filtering and awaits
// deduplication and conversion.
type Candidate struct {
	Track
	// Forced is the effective flag: the container flag or a forced-looking name.
	Forced        bool
	SourceTag     string
	ConvertedPath string
	IsSRT         bool
}

// DisplayTitle renders the subtitle track title, e.g. "English (Forced SDH)".
func (c Candidate) DisplayTitle() string {
	return SubtitleTitle(c.Language, c.Forced, c.HearingImpaired)
}

// SubtitleTitle builds a subtitle track title from its language and flags.
func SubtitleTitle(lang string, forced, hearingImpaired bool) string {
	base := languageTitle(lang)
	switch {
	case forced && hearingImpaired:
		return base + " (Forced SDH)"
	case forced:
		return base + " (Forced)"
	case hearingImpaired:
		return base + " (SDH)"
	default:
		return base
	}
}

// languageTitle falls back to the raw code so logs never show an empty title.
func languageTitle(lang string) string {
	if title := language.DisplayName(lang); title != "" {
		return title
	}
	return lang
}
