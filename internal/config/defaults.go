package config

const (
	defaultConfigPath      = "~/.config/mkvcleaner/config.toml"
	projectConfigName      = "mkvcleaner.toml"
	defaultOutputSubdir    = "processed"
	defaultFallbackOutput  = "~/Downloads/MKV-Manager/processed"
	defaultLogDir          = "~/.local/share/mkvcleaner/logs"
	defaultStateDir        = "~/.local/share/mkvcleaner"
	defaultLanguage        = "eng"
	defaultMaxLineLength   = 45
	defaultIdentifyTimeout = 60
	defaultExtractTimeout  = 600
	defaultMuxTimeout      = 3600
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	historyFileName        = "history.db"
	logFileName            = "mkvcleaner.log"
	minMaxLineLength       = 10
	maxMaxLineLength       = 200
	envMkvmergePath        = "MKVCLEANER_MKVMERGE"
	envMkvextractPath      = "MKVCLEANER_MKVEXTRACT"
	envOutputDir           = "MKVCLEANER_OUTPUT_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DefaultOutputDir: defaultFallbackOutput,
			OutputSubdir:     defaultOutputSubdir,
			LogDir:           defaultLogDir,
			StateDir:         defaultStateDir,
		},
		Languages: Languages{
			AllowedAudio:     []string{defaultLanguage},
			AllowedSubtitle:  []string{defaultLanguage},
			DefaultAudio:     defaultLanguage,
			DefaultSubtitle:  defaultLanguage,
			OriginalAudio:    defaultLanguage,
			OriginalSubtitle: defaultLanguage,
		},
		Subtitles: Subtitles{
			MaxLineLength: defaultMaxLineLength,
		},
		MKVToolNix: MKVToolNix{
			IdentifyTimeout: defaultIdentifyTimeout,
			ExtractTimeout:  defaultExtractTimeout,
			MuxTimeout:      defaultMuxTimeout,
		},
		History: History{
			Enabled:       true,
			SkipProcessed: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
