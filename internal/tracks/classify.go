package tracks

import (
	"fmt"
	"regexp"
	"strings"
)

// forcedIndicators mark a subtitle as forced when found in its name.
var forcedIndicators = []string{"signs", "songs", "forced"}

var sourceTagPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// Classification is the outcome of Classify: decisions for every video,
// audio, and rejected subtitle track plus the subtitle candidates still to
// be deduplicated, in input order.
type Classification struct {
	Decisions  []Decision
	Candidates []Candidate
	Changes    []string
}

// Classify decides video and audio tracks outright and filters subtitle
// tracks into candidates. Input tracks are not modified.
func Classify(tracks []Track, prefs Preferences) Classification {
	var out Classification
	for _, track := range tracks {
		switch track.Kind {
		case KindVideo:
			out.Decisions = append(out.Decisions, Decision{
				TrackID:  track.ID,
				Kind:     KindVideo,
				Action:   ActionKeep,
				Language: "und",
				Reason:   "no linguistic content",
			})
			out.Changes = append(out.Changes, fmt.Sprintf("Keep video track %d (no linguistic content)", track.ID))
		case KindAudio:
			decision, changes := classifyAudio(track, prefs)
			out.Decisions = append(out.Decisions, decision)
			out.Changes = append(out.Changes, changes...)
		case KindSubtitle:
			candidate := NewCandidate(track)
			if subtitleEligible(candidate, prefs) {
				out.Candidates = append(out.Candidates, candidate)
				continue
			}
			out.Decisions = append(out.Decisions, Decision{
				TrackID:         track.ID,
				Kind:            KindSubtitle,
				Action:          ActionDrop,
				Forced:          candidate.Forced,
				HearingImpaired: track.HearingImpaired,
				Language:        track.Language,
				DisplayTitle:    candidate.DisplayTitle(),
				Reason:          "language not allowed",
			})
			out.Changes = append(out.Changes, fmt.Sprintf("Removed subtitle track %d [%s]", track.ID, languageTitle(track.Language)))
		default:
			// Buttons, attachments-as-tracks and the like pass through untouched.
			out.Decisions = append(out.Decisions, Decision{
				TrackID:  track.ID,
				Kind:     track.Kind,
				Action:   ActionKeep,
				Language: track.Language,
				Reason:   "unrecognized track type",
			})
		}
	}
	return out
}

func classifyAudio(track Track, prefs Preferences) (Decision, []string) {
	title := languageTitle(track.Language)
	decision := Decision{
		TrackID:         track.ID,
		Kind:            KindAudio,
		Language:        track.Language,
		HearingImpaired: track.HearingImpaired,
		DisplayTitle:    title,
	}
	if !prefs.audioAllowed(track.Language) {
		decision.Action = ActionDrop
		decision.Reason = "language not allowed"
		return decision, []string{fmt.Sprintf("Removed audio track %d [%s]", track.ID, title)}
	}
	decision.Action = ActionKeep
	decision.Default = track.Language == prefs.DefaultAudio
	decision.Original = track.Language == prefs.OriginalAudio
	decision.Reason = "language allowed"

	var changes []string
	if decision.Default {
		changes = append(changes, fmt.Sprintf("Set audio %d [%s] as default", track.ID, title))
	} else {
		changes = append(changes, fmt.Sprintf("Keep audio %d [%s]", track.ID, title))
	}
	if decision.Original {
		changes = append(changes, fmt.Sprintf("Set audio %d [%s] as original", track.ID, title))
	}
	return decision, changes
}

// NewCandidate derives the effective forced flag and source tag of a
// subtitle track.
func NewCandidate(track Track) Candidate {
	return Candidate{
		Track:     track,
		Forced:    track.Forced || ForcedByName(track.Name),
		SourceTag: SourceTag(track.Name),
	}
}

// ForcedByName reports whether a track name marks signs, songs, or forced
// dialogue.
func ForcedByName(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, indicator := range forcedIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// SourceTag returns the content of the first bracketed segment of name.
func SourceTag(name string) string {
	match := sourceTagPattern.FindStringSubmatch(name)
	if match == nil {
		return ""
	}
	return match[1]
}

func subtitleEligible(c Candidate, prefs Preferences) bool {
	lang := c.Language
	if prefs.subtitleAllowed(lang) {
		return true
	}
	if !c.Forced {
		return false
	}
	return prefs.audioAllowed(lang) || (prefs.OriginalSubtitle != "" && lang == prefs.OriginalSubtitle)
}
