package generator

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"os/exec"
	"strings"
)

// formatter rewrites generated source into its canonical layout.
type formatter interface {
	Format(ctx context.Context, src []byte) ([]byte, error)
}

// newFormatter returns the formatter for the named target. Go output is
// formatted in process; C output is piped through an external command.
func newFormatter(target string, fc FormatterConfig) formatter {
	if target == "go" {
		return goFormatter{}
	}
	command := fc.Command
	if command == "" {
		command = defaultFormatter
	}
	return &execFormatter{command: command, args: fc.Args}
}

type goFormatter struct{}

func (goFormatter) Format(_ context.Context, src []byte) ([]byte, error) {
	return format.Source(src)
}

// execFormatter runs an external command with the source on stdin and takes
// its stdout as the formatted result.
type execFormatter struct {
	command string
	args    []string
}

func (f *execFormatter) Format(ctx context.Context, src []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, f.command, f.args...)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", f.command, err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", f.command, err)
	}
	return stdout.Bytes(), nil
}
