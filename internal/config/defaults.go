package config

const (
	defaultSourceDir           = "~/Downloads"
	defaultTargetDir           = "~/Filed"
	defaultLogDir              = "~/.local/share/curator/logs"
	defaultKeyFile             = "~/.config/curator/encryption.key"
	defaultOperationLog        = "~/.local/share/curator/operations.log"
	defaultOnCollision         = "suffix"
	defaultModelProvider       = "rules"
	defaultModelBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultModelName           = "google/gemini-3-flash-preview"
	defaultModelTimeoutSeconds = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// DefaultRules returns the built-in category table used when no [rules]
// section is configured.
func DefaultRules() map[string][]string {
	return map[string][]string{
		"documents": {".pdf", ".doc", ".docx", ".txt", ".md", ".odt"},
		"images":    {".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg", ".webp"},
		"videos":    {".mp4", ".mkv", ".avi", ".mov"},
		"music":     {".mp3", ".flac", ".wav", ".ogg"},
		"archives":  {".zip", ".tar", ".gz", ".rar", ".7z"},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:    defaultSourceDir,
			TargetDir:    defaultTargetDir,
			LogDir:       defaultLogDir,
			KeyFile:      defaultKeyFile,
			OperationLog: defaultOperationLog,
		},
		// Rules stay nil here; a configured [rules] table replaces the
		// defaults wholesale instead of merging into them. See normalize.
		Rules: nil,
		Organize: Organize{
			OnCollision: defaultOnCollision,
		},
		Duplicates: Duplicates{
			VerifyContent: true,
		},
		Model: Model{
			Provider:       defaultModelProvider,
			BaseURL:        defaultModelBaseURL,
			Name:           defaultModelName,
			TimeoutSeconds: defaultModelTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
