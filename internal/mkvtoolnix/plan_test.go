package mkvtoolnix

import (
	"slices"
	"testing"
)

func TestMuxPlanArgs(t *testing.T) {
	plan := MuxPlan{
		Source: "/in/Show.S01E01.mkv",
		Output: "/out/Show - S01E01 - Pilot.mkv",
		Title:  "Show - S01E01 - Pilot",
		Video:  []int{0},
		Audio: []TrackFlags{
			{ID: 1, Name: "Japanese", Original: true},
			{ID: 2, Name: "English", Default: true},
		},
		Subtitles: []TrackFlags{
			{ID: 5, Language: "eng", Name: "English (Forced)", Forced: true},
		},
		External: []ExternalSubtitle{
			{Path: "/out/Show.S01E01.eng.srt", Flags: TrackFlags{Language: "eng", Name: "English (SDH)", Default: true, HearingImpaired: true}},
		},
	}
	want := []string{
		"-o", "/out/Show - S01E01 - Pilot.mkv", "--title", "Show - S01E01 - Pilot",
		"--language", "0:und", "--track-name", "0:",
		"--default-track", "1:no", "--original-flag", "1:yes", "--track-name", "1:Japanese",
		"--default-track", "2:yes", "--original-flag", "2:no", "--track-name", "2:English",
		"--video-tracks", "0",
		"--audio-tracks", "1,2",
		"--subtitle-tracks", "5",
		"--language", "5:eng", "--track-name", "5:English (Forced)", "--default-track", "5:no", "--original-flag", "5:no", "--forced-track", "5:yes",
		"/in/Show.S01E01.mkv",
		"--language", "0:eng", "--track-name", "0:English (SDH)", "--default-track", "0:yes", "--original-flag", "0:no", "--hearing-impaired-flag", "0:yes",
		"/out/Show.S01E01.eng.srt",
	}
	if got := plan.Args(); !slices.Equal(got, want) {
		t.Fatalf("Args =\n%q\nwant\n%q", got, want)
	}
}

func TestMuxPlanArgsWithoutSubtitlesOrAudio(t *testing.T) {
	plan := MuxPlan{Source: "in.mkv", Output: "out.mkv", Title: "T", Video: []int{0}}
	want := []string{"-o", "out.mkv", "--title", "T", "--language", "0:und", "--track-name", "0:", "--video-tracks", "0", "--no-audio", "--no-subtitles", "in.mkv"}
	if got := plan.Args(); !slices.Equal(got, want) {
		t.Fatalf("Args = %q", got)
	}
}

func TestMuxPlanKeepAll(t *testing.T) {
	plan := MuxPlan{Source: "in.mkv", Output: "out.mkv", Title: "T", KeepAll: true, Video: []int{0}}
	want := []string{"-o", "out.mkv", "--title", "T", "in.mkv"}
	if got := plan.Args(); !slices.Equal(got, want) {
		t.Fatalf("Args = %q", got)
	}
}

func TestMuxPlanValidate(t *testing.T) {
	if err := (MuxPlan{Source: "a", Output: "b"}).Validate(); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}
	for _, plan := range []MuxPlan{{}, {Source: "a"}, {Source: "a", Output: "a"}, {Source: "a", Output: "b", External: []ExternalSubtitle{{}}}} {
		if err := plan.Validate(); err == nil {
			t.Fatalf("plan %+v should be invalid", plan)
		}
	}
}

func TestParseProgress(t *testing.T) {
	tests := map[string]int{
		"Progress: 45%":         45,
		"#GUI#progress 12%":     12,
		"muxing: 99%":           99,
		"[ 7% ]":                7,
		"100%":                  100,
		"Multiplexing 30% done": 30,
	}
	for line, want := range tests {
		got, ok := ParseProgress(line)
		if !ok || got != want {
			t.Errorf("ParseProgress(%q) = %d, %v; want %d", line, got, ok, want)
		}
	}
	for _, line := range []string{"", "no percent here", "ratio 5/10", "150%"} {
		if _, ok := ParseProgress(line); ok {
			t.Errorf("ParseProgress(%q) should not match", line)
		}
	}
}

func TestScanLinesOrCR(t *testing.T) {
	data := []byte("Progress: 1%\rProgress: 2%\r\nDone\n")
	var tokens []string
	for len(data) > 0 {
		advance, token, err := scanLinesOrCR(data, true)
		if err != nil {
			t.Fatal(err)
		}
		if advance == 0 {
			break
		}
		tokens = append(tokens, string(token))
		data = data[advance:]
	}
	want := []string{"Progress: 1%", "Progress: 2%", "Done"}
	if !slices.Equal(tokens, want) {
		t.Fatalf("tokens = %q, want %q", tokens, want)
	}
}
