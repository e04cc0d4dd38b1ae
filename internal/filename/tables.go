package filename

// serviceTags lists streaming-service and audio tokens the release-name
// parser does not report. Longer spellings precede their prefixes.
var serviceTags = []string{
	`4K`, `UHD`, `HDR`, `HEVC`,
	`EAC3`, `AAC`, `DTS`, `AC3`, `5\.1`, `2\.0`, `\d+Kbps`, `MSubs`,
	`NF`, `AMZN`, `HULU`, `DSNP`, `HBO`, `PARAMOUNT`, `APPLE`, `PEACOCK`,
	`SHOWTIME`, `STARZ`, `VUDU`, `FANDANGO`, `ROKU`, `TUBI`, `CRACKLE`,
	`PLUTO`, `FREEVEE`, `REDBOX`,
	`10bit`, `8bit`, `DDP5`, `APEX`, `WEB`,
}

// episodeTags only terminate an episode title; in a whole name they may be
// the title itself.
var episodeTags = []string{
	`Episode[\s._]+\d+`, `Ep[\s._]+\d+`, `Part[\s._]+\d+`,
}

// abbreviations keep their trailing dot through delimiter normalization.
// Longest first so "Mrs." is not consumed as "Mr." plus "s".
var abbreviations = []string{
	"Mrs.", "Dr.", "Mr.", "Ms.", "St.", "Jr.", "Sr.", "K.",
}
