package irareports

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/tulumbas/irareports/pkg/irareports/loader"
	"github.com/tulumbas/irareports/pkg/irareports/report"
)

// EnvPrefix is the prefix of environment overrides, e.g. IRAREPORTS_CHANNEL_STRICT.
const EnvPrefix = "IRAREPORTS"

// DefaultOutputDirName is the report directory created next to the first channel file.
const DefaultOutputDirName = "справки"

// Config holds the batch settings.
type Config struct {
	Catalog loader.CatalogOptions `yaml:"catalog" split_words:"true"`
	Channel loader.ChannelOptions `yaml:"channel" split_words:"true"`
	Output  OutputConfig          `yaml:"output" split_words:"true"`
	Logging LoggingConfig         `yaml:"logging" split_words:"true"`
}

// OutputConfig controls where and how reports are written.
type OutputConfig struct {
	// Dir is the report directory; empty means DefaultOutputDirName next to the first channel file.
	Dir string `yaml:"dir" split_words:"true"`
	// Locale is the BCP 47 tag used for client ordering, month names and numbers.
	Locale string `yaml:"locale" split_words:"true" validate:"required,bcp47_language_tag"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"omitempty,oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true" validate:"omitempty,oneof=text json"`
	Output   string `yaml:"output" split_words:"true" validate:"omitempty,oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: loader.DefaultCatalogOptions(),
		Channel: loader.DefaultChannelOptions(),
		Output: OutputConfig{
			Locale: report.DefaultLocale,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "irareports.log",
		},
	}
}

// LoadConfig builds the configuration from the defaults, the optional YAML file at path
// and IRAREPORTS_* environment variables, in that order, and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, verrs[0].Error())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
