package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads a .env file from the working directory if one exists,
// overwriting variables already set. It reports whether a file was loaded.
func LoadEnvFile() bool {
	return godotenv.Overload() == nil
}

// Load reads configuration from environment variables, applies defaults
// for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct walks v and fills every field tagged env from the environment,
// falling back to its default tag. Nested structs are walked in turn.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value, ok := os.LookupEnv(envName)
		if !ok || value == "" {
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField parses value into field according to the field's kind.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(int64(n))

	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Join validation
	if utf8.RuneCountInString(c.Join.Delimiter) != 1 {
		errs = append(errs, fmt.Sprintf("JOIN_DELIMITER (%q) must be a single character", c.Join.Delimiter))
	} else if strings.ContainsAny(c.Join.Delimiter, "\"\r\n") {
		errs = append(errs, fmt.Sprintf("JOIN_DELIMITER (%q) must not be a quote or newline", c.Join.Delimiter))
	}

	// Clone validation
	if c.Clone.DelaySigma < 0 {
		errs = append(errs, "CLONE_DELAY_SIGMA must be non-negative")
	}
	if !strings.HasSuffix(c.Clone.URLScheme, "://") {
		errs = append(errs, fmt.Sprintf("CLONE_URL_SCHEME (%q) must end with ://", c.Clone.URLScheme))
	}

	// Prep validation
	if c.Prep.ProjectsFile == "" || c.Prep.ExcludeFile == "" || c.Prep.OutputFile == "" {
		errs = append(errs, "PREP_PROJECTS_FILE, PREP_EXCLUDE_FILE and PREP_OUTPUT_FILE must not be empty")
	}
	if c.Prep.ReportLimit < 0 {
		errs = append(errs, fmt.Sprintf("PREP_REPORT_LIMIT (%d) must be non-negative", c.Prep.ReportLimit))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Join: {Delimiter: %q}, ", c.Join.Delimiter))
	b.WriteString(fmt.Sprintf("Clone: {RandomDelay: %v, DelayMean: %g, DelaySigma: %g, URLScheme: %q}, ",
		c.Clone.RandomDelay, c.Clone.DelayMean, c.Clone.DelaySigma, c.Clone.URLScheme))
	b.WriteString(fmt.Sprintf("Prep: {ProjectsFile: %q, ExcludeFile: %q, OutputFile: %q, ReportLimit: %d}, ",
		c.Prep.ProjectsFile, c.Prep.ExcludeFile, c.Prep.OutputFile, c.Prep.ReportLimit))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
