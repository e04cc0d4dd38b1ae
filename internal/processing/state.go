package processing

// State is the furthest pipeline step a file reached.
type State int

const (
	StateStart State = iota
	StateTitleResolved
	StateTracksClassified
	StateSubtitlesDeduplicated
	StateSubtitlesConverted
	StateMuxInstructionBuilt
	StateMuxed
	StateLoggedAndCleaned
	StateFailed
)

var stateNames = [...]string{
	StateStart:                 "start",
	StateTitleResolved:         "title_resolved",
	StateTracksClassified:      "tracks_classified",
	StateSubtitlesDeduplicated: "subtitles_deduplicated",
	StateSubtitlesConverted:    "subtitles_converted",
	StateMuxInstructionBuilt:   "mux_instruction_built",
	StateMuxed:                 "muxed",
	StateLoggedAndCleaned:      "logged_and_cleaned",
	StateFailed:                "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateLoggedAndCleaned || s == StateFailed
}
