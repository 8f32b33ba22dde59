// Package config loads SelfFix settings.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML
// file, a .env file in the working directory, then SELFFIX_* environment
// variables. Command-line flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the CLI.
const (
	FormatTerminal = "terminal"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatTerminal, FormatMarkdown, FormatHTML, FormatJSON, FormatPDF}

// Environment variables read by Load.
const (
	EnvEndpoint  = "SELFFIX_ENDPOINT"
	EnvAPIKey    = "SELFFIX_API_KEY"
	EnvTimeout   = "SELFFIX_TIMEOUT"
	EnvFormat    = "SELFFIX_FORMAT"
	EnvOutputDir = "SELFFIX_OUTPUT_DIR"
)

var (
	// ErrInvalidFormat is returned for an unknown output format.
	ErrInvalidFormat = errors.New("invalid output format")
	// ErrInvalidTimeout is returned for a non-positive timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)

// Config holds the runtime settings.
type Config struct {
	Endpoint  string        `yaml:"endpoint"`
	APIKey    string        `yaml:"api_key"`
	Timeout   time.Duration `yaml:"timeout"`
	Format    string        `yaml:"format"`
	OutputDir string        `yaml:"output_dir"`
	Terminal  Terminal      `yaml:"terminal"`
}

// Terminal configures the terminal renderer.
type Terminal struct {
	Style    string `yaml:"style"`
	WordWrap int    `yaml:"word_wrap"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Endpoint: "http://localhost:8080",
		Timeout:  60 * time.Second,
		Format:   FormatTerminal,
		Terminal: Terminal{Style: "auto", WordWrap: 80},
	}
}

// Load builds the configuration. path may be empty; a missing .env file
// is not an error. Load does not call Validate: command-line flags may
// still replace the format, so callers validate once they are applied.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvEndpoint); ok {
		c.Endpoint = v
	}
	if v, ok := os.LookupEnv(EnvAPIKey); ok {
		c.APIKey = v
	}
	if v, ok := os.LookupEnv(EnvFormat); ok {
		c.Format = v
	}
	if v, ok := os.LookupEnv(EnvOutputDir); ok {
		c.OutputDir = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w %q (want one of %s)", ErrInvalidFormat, c.Format, strings.Join(Formats, ", "))
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
