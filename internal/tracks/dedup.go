package tracks

import (
	"fmt"
	"slices"
)

const (
	scoreComplete   = 100
	scoreNormalOnly = 50
	scoreForcedOnly = 25
)

type sourceBucket struct {
	tag    string
	normal []Candidate
	forced []Candidate
}

func (b sourceBucket) score() int {
	switch {
	case len(b.normal) > 0 && len(b.forced) > 0:
		return scoreComplete
	case len(b.normal) > 0:
		return scoreNormalOnly
	case len(b.forced) > 0:
		return scoreForcedOnly
	default:
		return 0
	}
}

// Deduplicate keeps at most one normal and one forced subtitle per language.
// Within a language, tracks are bucketed by source tag and the bucket holding
// both kinds wins; ties go to the bucket seen first. Untagged tracks are only
// considered when no track of the language carries a source tag. It returns
// the kept candidates, a decision for every candidate, and run-log notes.
func Deduplicate(candidates []Candidate, prefs Preferences) ([]Candidate, []Decision, []string) {
	var (
		order  []string
		groups = make(map[string][]Candidate)
	)
	for _, c := range candidates {
		if _, ok := groups[c.Language]; !ok {
			order = append(order, c.Language)
		}
		groups[c.Language] = append(groups[c.Language], c)
	}

	var (
		kept      []Candidate
		decisions []Decision
		notes     []string
	)
	for _, lang := range order {
		group := groups[lang]
		selected, note := selectFromGroup(group)
		if note != "" {
			notes = append(notes, note)
		}
		for _, c := range group {
			if slices.Contains(selected, c.ID) {
				decision := keepDecision(c, prefs)
				kept = append(kept, c)
				decisions = append(decisions, decision)
				notes = append(notes, keepNotes(decision)...)
				continue
			}
			decisions = append(decisions, Decision{
				TrackID:         c.ID,
				Kind:            KindSubtitle,
				Action:          ActionDrop,
				Forced:          c.Forced,
				HearingImpaired: c.HearingImpaired,
				Language:        c.Language,
				DisplayTitle:    c.DisplayTitle(),
				Reason:          "duplicate subtitle",
			})
			notes = append(notes, fmt.Sprintf("Removed duplicate subtitle track %d [%s]", c.ID, c.DisplayTitle()))
		}
	}
	return kept, decisions, notes
}

// selectFromGroup returns the track ids kept for one language.
func selectFromGroup(group []Candidate) ([]int, string) {
	if len(group) <= 1 {
		ids := make([]int, 0, len(group))
		for _, c := range group {
			ids = append(ids, c.ID)
		}
		return ids, ""
	}

	var (
		buckets         []*sourceBucket
		byTag           = make(map[string]*sourceBucket)
		unsourcedNormal []Candidate
		unsourcedForced []Candidate
	)
	for _, c := range group {
		if c.SourceTag == "" {
			if c.Forced {
				unsourcedForced = append(unsourcedForced, c)
			} else {
				unsourcedNormal = append(unsourcedNormal, c)
			}
			continue
		}
		bucket, ok := byTag[c.SourceTag]
		if !ok {
			bucket = &sourceBucket{tag: c.SourceTag}
			byTag[c.SourceTag] = bucket
			buckets = append(buckets, bucket)
		}
		if c.Forced {
			bucket.forced = append(bucket.forced, c)
		} else {
			bucket.normal = append(bucket.normal, c)
		}
	}

	var best *sourceBucket
	for _, bucket := range buckets {
		if best == nil || bucket.score() > best.score() {
			best = bucket
		}
	}

	normal, forced := unsourcedNormal, unsourcedForced
	note := ""
	if best != nil {
		normal, forced = best.normal, best.forced
		note = fmt.Sprintf("Kept %s subtitles from source [%s]", languageTitle(group[0].Language), best.tag)
	}

	var ids []int
	if len(normal) > 0 {
		ids = append(ids, normal[0].ID)
	}
	if len(forced) > 0 {
		ids = append(ids, forced[0].ID)
	}
	return ids, note
}

func keepDecision(c Candidate, prefs Preferences) Decision {
	return Decision{
		TrackID:         c.ID,
		Kind:            KindSubtitle,
		Action:          ActionKeep,
		Default:         c.Language == prefs.DefaultSubtitle && !c.Forced,
		Original:        c.Language == prefs.OriginalSubtitle,
		Forced:          c.Forced,
		HearingImpaired: c.HearingImpaired,
		Language:        c.Language,
		DisplayTitle:    c.DisplayTitle(),
		Reason:          "selected",
	}
}

func keepNotes(d Decision) []string {
	var notes []string
	if d.Default {
		notes = append(notes, fmt.Sprintf("Set subtitle %d [%s] as default", d.TrackID, d.DisplayTitle))
	} else {
		notes = append(notes, fmt.Sprintf("Keep subtitle %d [%s]", d.TrackID, d.DisplayTitle))
	}
	if d.Original {
		notes = append(notes, fmt.Sprintf("Set subtitle %d [%s] as original", d.TrackID, d.DisplayTitle))
	}
	if d.Forced {
		notes = append(notes, fmt.Sprintf("Set subtitle %d [%s] as forced", d.TrackID, d.DisplayTitle))
	}
	if d.HearingImpaired {
		notes = append(notes, fmt.Sprintf("Set subtitle %d [%s] as hearing impaired", d.TrackID, d.DisplayTitle))
	}
	return notes
}
