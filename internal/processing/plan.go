package processing

import (
	"mkvcleaner/internal/mkvtoolnix"
	"mkvcleaner/internal/tracks"
)

// buildPlan turns the track selection into a mux plan. Converted subtitles
// replace their source track as external SRT inputs; every other kept
// subtitle is copied from the source with its decision flags.
func buildPlan(source, output, title string, keepAll bool, selection tracks.Selection, converted []convertedSubtitle) mkvtoolnix.MuxPlan {
	plan := mkvtoolnix.MuxPlan{Source: source, Output: output, Title: title, KeepAll: keepAll}
	if keepAll {
		return plan
	}

	replaced := make(map[int]bool, len(converted))
	for _, conv := range converted {
		replaced[conv.candidate.ID] = true
	}
	for _, d := range selection.Decisions {
		if !d.Kept() {
			continue
		}
		switch d.Kind {
		case tracks.KindVideo:
			plan.Video = append(plan.Video, d.TrackID)
		case tracks.KindAudio:
			plan.Audio = append(plan.Audio, flagsFor(d))
		case tracks.KindSubtitle:
			if !replaced[d.TrackID] {
				plan.Subtitles = append(plan.Subtitles, flagsFor(d))
			}
		}
	}
	for _, conv := range converted {
		flags := flagsFor(conv.decision)
		flags.ID = 0
		plan.External = append(plan.External, mkvtoolnix.ExternalSubtitle{
			Path:  conv.candidate.ConvertedPath,
			Flags: flags,
		})
	}
	return plan
}

func flagsFor(d tracks.Decision) mkvtoolnix.TrackFlags {
	return mkvtoolnix.TrackFlags{
		ID:              d.TrackID,
		Language:        d.Language,
		Name:            d.DisplayTitle,
		Default:         d.Default,
		Original:        d.Original,
		Forced:          d.Forced,
		HearingImpaired: d.HearingImpaired,
	}
}
