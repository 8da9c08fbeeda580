// Command sql2c translates a SQL script with directive comments into a
// program that replays it against sqlite, checking the result of every call.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/andrewkroh/sql2c/internal/generator"
)

func main() {
	var (
		flags      generator.Config
		configFile string
		verbose    bool
	)

	flag.StringVar(&flags.Input, "input", "", "Input SQL script (\"-\" reads stdin)")
	flag.StringVar(&flags.Input, "i", "", "Shorthand for -input")
	flag.StringVar(&flags.Output, "output", "", "Output source file (\"-\" writes stdout)")
	flag.StringVar(&flags.Output, "o", "", "Shorthand for -output")
	flag.BoolVar(&flags.Format, "format", false, "Format the generated source (clang-format for C, gofmt for Go)")
	flag.BoolVar(&flags.Format, "f", false, "Shorthand for -format")
	flag.StringVar(&flags.Target, "target", "", "Output language: c or go (default c)")
	flag.BoolVar(&flags.EscapeSQL, "escape-sql", false, "Escape quotes and backslashes in SQL embedded in C strings")
	flag.BoolVar(&flags.SkipUnchanged, "skip-unchanged", false, "Do not rewrite the output file when its content is unchanged")
	flag.StringVar(&configFile, "config", "", "Path to a YAML config file (optional)")
	flag.BoolVar(&verbose, "v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := generator.Config{}
	if configFile != "" {
		loaded, err := generator.LoadConfig(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}
	applyFlags(&cfg, flags)

	// Read a piped script when no input was named.
	if cfg.Input == "" && !term.IsTerminal(int(os.Stdin.Fd())) {
		cfg.Input = "-"
	}

	if cfg.Input == "" || cfg.Output == "" {
		fmt.Fprintln(os.Stderr, "error: -input and -output are required")
		flag.Usage()
		os.Exit(1)
	}

	cfg.Stdin = os.Stdin
	cfg.Stdout = os.Stdout
	cfg.Logger = logger

	if err := generator.Run(context.Background(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags copies the flags that were set on the command line over the
// values loaded from the config file.
func applyFlags(cfg *generator.Config, flags generator.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input", "i":
			cfg.Input = flags.Input
		case "output", "o":
			cfg.Output = flags.Output
		case "format", "f":
			cfg.Format = flags.Format
		case "target":
			cfg.Target = flags.Target
		case "escape-sql":
			cfg.EscapeSQL = flags.EscapeSQL
		case "skip-unchanged":
			cfg.SkipUnchanged = flags.SkipUnchanged
		}
	})
}
