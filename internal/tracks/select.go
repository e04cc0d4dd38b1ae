package tracks

import (
	"cmp"
	"slices"
)

// Selection combines classification and deduplication for one file.
type Selection struct {
	// Decisions holds exactly one entry per input track, ordered by track id.
	Decisions []Decision
	// Subtitles are the kept subtitle candidates in language-group order.
	Subtitles []Candidate
	Changes   []string
}

// Select runs Classify followed by Deduplicate.
func Select(tracks []Track, prefs Preferences) Selection {
	classified := Classify(tracks, prefs)
	kept, subtitleDecisions, notes := Deduplicate(classified.Candidates, prefs)

	decisions := make([]Decision, 0, len(classified.Decisions)+len(subtitleDecisions))
	decisions = append(decisions, classified.Decisions...)
	decisions = append(decisions, subtitleDecisions...)
	slices.SortStableFunc(decisions, func(a, b Decision) int {
		return cmp.Compare(a.TrackID, b.TrackID)
	})

	changes := make([]string, 0, len(classified.Changes)+len(notes))
	changes = append(changes, classified.Changes...)
	changes = append(changes, notes...)
	return Selection{Decisions: decisions, Subtitles: kept, Changes: changes}
}

// Decision returns the decision for a track id.
func (s Selection) Decision(trackID int) (Decision, bool) {
	for _, d := range s.Decisions {
		if d.TrackID == trackID {
			return d, true
		}
	}
	return Decision{}, false
}

// KeptIDs returns the ids of kept tracks of the given kind, in id order.
func (s Selection) KeptIDs(kind Kind) []int {
	var ids []int
	for _, d := range s.Decisions {
		if d.Kind == kind && d.Kept() {
			ids = append(ids, d.TrackID)
		}
	}
	return ids
}
