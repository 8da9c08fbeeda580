package generator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/andrewkroh/sql2c/internal/script"
)

// maxLineSize bounds a single script line. Scripts routinely carry long
// INSERT statements on one line.
const maxLineSize = 16 << 20

// Run executes the full translation pipeline.
func Run(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	// 1. Select the target dialect.
	dialect, err := script.LookupDialect(cfg.Target, cfg.EscapeSQL)
	if err != nil {
		return err
	}

	// 2. Read the script.
	lines, err := readInput(cfg)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	logger.Debug("read script", "input", cfg.Input, "lines", len(lines))

	// 3. Translate.
	out, err := script.Translate(lines, dialect, script.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("translating %s: %w", cfg.Input, err)
	}
	src := []byte(strings.Join(out, "\n") + "\n")

	// 4. Format (optional).
	if cfg.Format {
		src, err = newFormatter(dialect.Name(), cfg.Formatter).Format(ctx, src)
		if err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
	}

	// 5. Write the output.
	written, err := writeOutput(cfg, src)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !written {
		logger.Info("output unchanged", "output", cfg.Output)
		return nil
	}
	logger.Debug("wrote output", "output", cfg.Output, "target", dialect.Name(), "bytes", len(src))

	return nil
}

// readInput returns the lines of the input script. A leading byte order mark
// selects UTF-8 or UTF-16 decoding and is removed; without one the input is
// read as UTF-8.
func readInput(cfg Config) ([]string, error) {
	var r io.Reader
	if cfg.Input == "-" {
		if cfg.Stdin == nil {
			return nil, fmt.Errorf("no stdin available")
		}
		r = cfg.Stdin
	} else {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	var lines []string
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
