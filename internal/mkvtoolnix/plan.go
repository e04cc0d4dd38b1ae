package mkvtoolnix

import (
	"errors"
	"strconv"
	"strings"

	"mkvcleaner/internal/textutil"
)

// TrackFlags are the per-track properties written for a source track or an
// external subtitle file.
type TrackFlags struct {
	ID              int
	Language        string
	Name            string
	Default         bool
	Original        bool
	Forced          bool
	HearingImpaired bool
}

// ExternalSubtitle is an SRT file appended as an extra input.
type ExternalSubtitle struct {
	Path  string
	Flags TrackFlags
}

// MuxPlan describes one mkvmerge run.
type MuxPlan struct {
	Source string
	Output string
	Title  string
	// KeepAll copies every source track unchanged; the track lists are ignored.
	KeepAll bool
	Video   []int
	Audio   []TrackFlags
	// Subtitles are source subtitle tracks kept as-is (no converted file).
	Subtitles []TrackFlags
	External  []ExternalSubtitle
}

// Validate checks the plan has its required paths.
func (p MuxPlan) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Source) == "" {
		errs = append(errs, errors.New("source path required"))
	}
	if strings.TrimSpace(p.Output) == "" {
		errs = append(errs, errors.New("output path required"))
	}
	if p.Source != "" && p.Source == p.Output {
		errs = append(errs, errors.New("output must differ from source"))
	}
	for _, ext := range p.External {
		if strings.TrimSpace(ext.Path) == "" {
			errs = append(errs, errors.New("external subtitle path required"))
		}
	}
	return errors.Join(errs...)
}

// Args renders the mkvmerge argument list for the plan.
func (p MuxPlan) Args() []string {
	args := []string{"-o", p.Output, "--title", p.Title}
	if p.KeepAll {
		return append(args, p.Source)
	}

	for _, id := range p.Video {
		ref := strconv.Itoa(id) + ":"
		args = append(args, "--language", ref+"und", "--track-name", ref)
	}
	for _, audio := range p.Audio {
		ref := strconv.Itoa(audio.ID) + ":"
		args = append(args,
			"--default-track", ref+textutil.YesNo(audio.Default),
			"--original-flag", ref+textutil.YesNo(audio.Original),
			"--track-name", ref+audio.Name,
		)
	}
	if len(p.Video) > 0 {
		args = append(args, "--video-tracks", joinIDs(p.Video))
	}
	if len(p.Audio) > 0 {
		ids := make([]int, 0, len(p.Audio))
		for _, audio := range p.Audio {
			ids = append(ids, audio.ID)
		}
		args = append(args, "--audio-tracks", joinIDs(ids))
	} else {
		args = append(args, "--no-audio")
	}

	if len(p.Subtitles) > 0 {
		ids := make([]int, 0, len(p.Subtitles))
		for _, sub := range p.Subtitles {
			ids = append(ids, sub.ID)
		}
		args = append(args, "--subtitle-tracks", joinIDs(ids))
		for _, sub := range p.Subtitles {
			args = appendSubtitleFlags(args, strconv.Itoa(sub.ID)+":", sub)
		}
	} else {
		args = append(args, "--no-subtitles")
	}

	args = append(args, p.Source)
	for _, ext := range p.External {
		args = appendSubtitleFlags(args, "0:", ext.Flags)
		args = append(args, ext.Path)
	}
	return args
}

func appendSubtitleFlags(args []string, ref string, flags TrackFlags) []string {
	if flags.Language != "" {
		args = append(args, "--language", ref+flags.Language)
	}
	if flags.Name != "" {
		args = append(args, "--track-name", ref+flags.Name)
	}
	args = append(args,
		"--default-track", ref+textutil.YesNo(flags.Default),
		"--original-flag", ref+textutil.YesNo(flags.Original),
	)
	if flags.Forced {
		args = append(args, "--forced-track", ref+"yes")
	}
	if flags.HearingImpaired {
		args = append(args, "--hearing-impaired-flag", ref+"yes")
	}
	return args
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
