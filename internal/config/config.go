package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppName is used for the config directory and the environment prefix
const AppName = "winclean"

// Config represents the application configuration. The set of cleaned
// locations is fixed; the config only controls how a run behaves.
type Config struct {
	Categories         Categories    `yaml:"categories" mapstructure:"categories"`
	PrefetchMaxAgeDays uint          `yaml:"prefetch_max_age_days" mapstructure:"prefetch_max_age_days"`
	DryRun             bool          `yaml:"dry_run" mapstructure:"dry_run"`
	AssumeYes          bool          `yaml:"assume_yes" mapstructure:"assume_yes"`
	PauseOnExit        bool          `yaml:"pause_on_exit" mapstructure:"pause_on_exit"`
	Output             string        `yaml:"output" mapstructure:"output"`
	Logging            LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// Categories defines which cleanup categories are enabled
type Categories struct {
	Temp       bool `yaml:"temp" mapstructure:"temp"`
	Browser    bool `yaml:"browser" mapstructure:"browser"`
	Prefetch   bool `yaml:"prefetch" mapstructure:"prefetch"`
	Thumbnails bool `yaml:"thumbnails" mapstructure:"thumbnails"`
}

// Enabled reports whether the named category is switched on. Unknown names
// are disabled.
func (c Categories) Enabled(name string) bool {
	switch name {
	case "temp":
		return c.Temp
	case "browser":
		return c.Browser
	case "prefetch":
		return c.Prefetch
	case "thumbnails":
		return c.Thumbnails
	default:
		return false
	}
}

// LoggingConfig configures diagnostic logging
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"` // empty logs to stderr only
}

// ValidOutputs lists the report formats understood by the reporter
var ValidOutputs = []string{"summary", "table", "json", "yaml"}

// Load loads configuration from configPath, or from the default location
// when configPath is empty. A missing file yields the defaults. Values can be
// overridden with WINCLEAN_* environment variables (e.g. WINCLEAN_DRY_RUN).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath != "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults mirrors GetDefault into viper so env overrides apply to every key
func setDefaults(v *viper.Viper) {
	d := GetDefault()
	v.SetDefault("categories.temp", d.Categories.Temp)
	v.SetDefault("categories.browser", d.Categories.Browser)
	v.SetDefault("categories.prefetch", d.Categories.Prefetch)
	v.SetDefault("categories.thumbnails", d.Categories.Thumbnails)
	v.SetDefault("prefetch_max_age_days", d.PrefetchMaxAgeDays)
	v.SetDefault("dry_run", d.DryRun)
	v.SetDefault("assume_yes", d.AssumeYes)
	v.SetDefault("pause_on_exit", d.PauseOnExit)
	v.SetDefault("output", d.Output)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.PrefetchMaxAgeDays < 1 {
		return fmt.Errorf("prefetch max age must be at least 1 day")
	}

	if !isValidOutput(c.Output) {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.Output, strings.Join(ValidOutputs, ", "))
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}

	if c.Logging.File != "" && !filepath.IsAbs(c.Logging.File) {
		return fmt.Errorf("log file path must be absolute: %s", c.Logging.File)
	}

	return nil
}

func isValidOutput(format string) bool {
	for _, f := range ValidOutputs {
		if f == format {
			return true
		}
	}
	return false
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(AppName, "config.yaml"))
}
