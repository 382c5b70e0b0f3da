// Package config provides centralized configuration management for the tools.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

// Config holds all tool configuration.
// All settings can be configured via environment variables.
type Config struct {
	Join    JoinConfig
	Clone   CloneConfig
	Prep    PrepConfig
	Logging LoggingConfig
}

// JoinConfig holds CSV join settings.
type JoinConfig struct {
	// Delimiter is the field separator for input and output files (default: ",")
	Delimiter string `env:"JOIN_DELIMITER" default:","`
}

// CloneConfig holds clone script generation settings.
type CloneConfig struct {
	// RandomDelay controls whether sleep lines are emitted (default: true)
	RandomDelay bool `env:"CLONE_RANDOM_DELAY" default:"true"`

	// DelayMean is the mean of the normal delay distribution in seconds (default: 0)
	DelayMean float64 `env:"CLONE_DELAY_MEAN" default:"0"`

	// DelaySigma is the standard deviation of the delay distribution in seconds (default: 20)
	DelaySigma float64 `env:"CLONE_DELAY_SIGMA" default:"20"`

	// URLScheme replaces https:// in repository URLs (default: git://)
	URLScheme string `env:"CLONE_URL_SCHEME" default:"git://"`
}

// PrepConfig holds the defaults for repository list preprocessing.
type PrepConfig struct {
	ProjectsFile string `env:"PREP_PROJECTS_FILE" default:"projects"`
	ExcludeFile  string `env:"PREP_EXCLUDE_FILE" default:"exclude_prjs"`
	OutputFile   string `env:"PREP_OUTPUT_FILE" default:"projects_processed"`

	// ReportLimit is how many duplicate name groups the report lists, 0 for all (default: 20)
	ReportLimit int `env:"PREP_REPORT_LIMIT" default:"20"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Comma returns the join delimiter as a rune for encoding/csv.
func (c *JoinConfig) Comma() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}
