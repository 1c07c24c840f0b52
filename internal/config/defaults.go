package config

// DefaultPrefetchMaxAgeDays is how old a prefetch file must be before it is deleted
const DefaultPrefetchMaxAgeDays = 30

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Categories: Categories{
			Temp:       true,
			Browser:    true,
			Prefetch:   true,
			Thumbnails: true,
		},
		PrefetchMaxAgeDays: DefaultPrefetchMaxAgeDays,
		DryRun:             false,
		AssumeYes:          false, // always ask before touching anything
		PauseOnExit:        true,  // keeps the console window open when launched from Explorer
		Output:             "summary",
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}
