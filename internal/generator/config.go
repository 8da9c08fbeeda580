package generator

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a translation run. Fields can be loaded
// from a YAML file with LoadConfig and then overridden by command-line flags.
type Config struct {
	// Input is the path of the SQL script. "-" reads from Stdin.
	Input string `yaml:"input"`

	// Output is the path of the generated source file. "-" writes to Stdout.
	Output string `yaml:"output"`

	// Target selects the output language: "c" (default) or "go".
	Target string `yaml:"target"`

	// Format runs the formatter over the generated source before it is
	// written.
	Format bool `yaml:"format"`

	// EscapeSQL escapes quotes and backslashes in SQL embedded in C string
	// literals. Go output is always escaped.
	EscapeSQL bool `yaml:"escape_sql"`

	// SkipUnchanged leaves the output file untouched when its content
	// already matches the generated source, preserving its modification time.
	SkipUnchanged bool `yaml:"skip_unchanged"`

	// Formatter is the external command used to format C output. The source
	// is passed on stdin and the formatted result is read from stdout.
	Formatter FormatterConfig `yaml:"formatter"`

	Stdin  io.Reader    `yaml:"-"`
	Stdout io.Writer    `yaml:"-"`
	Logger *slog.Logger `yaml:"-"`
}

// FormatterConfig names an external formatting command.
type FormatterConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

const defaultFormatter = "clang-format"

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// validate checks that the required fields are present.
func (c *Config) validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input script given")
	}
	if c.Output == "" {
		return fmt.Errorf("no output file given")
	}
	return nil
}
