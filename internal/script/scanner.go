package script

import (
	"fmt"
	"log/slog"
	"strings"
)

// Directive tokens recognized at the start of a trimmed script line.
const (
	openDirective   = ".open"
	commentMarker   = "--"
	selectDirective = ".SQL2C_select"
)

// ParseError reports a script line that cannot be translated.
type ParseError struct {
	Line int    // 1-based line number
	Text string // trimmed line text
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Option configures a Scanner or an emit pass.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for warnings and debug output. The default
// is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Scanner turns script lines into statement nodes. The dialect is needed at
// scan time because the read loop of a select directive is stored pre-rendered.
type Scanner struct {
	dialect Dialect
	logger  *slog.Logger
}

// NewScanner returns a Scanner that builds read loops in dialect d.
func NewScanner(d Dialect, opts ...Option) *Scanner {
	o := newOptions(opts)
	return &Scanner{dialect: d, logger: o.logger}
}

// Step classifies lines[pos] and returns the nodes it produces, the position
// of the next unconsumed line, and any auxiliary definitions. A select
// directive consumes two lines; every other line consumes one. Auxiliary
// definitions are reserved for directives that need file-level declarations
// and are currently always empty.
func (s *Scanner) Step(lines []string, pos int) ([]Node, int, []string, error) {
	line := strings.TrimSpace(lines[pos])
	lineNo := pos + 1

	if line == "" {
		return nil, pos + 1, nil, nil
	}

	if fields := strings.Fields(line); fields[0] == openDirective {
		if len(fields) < 2 {
			return nil, pos, nil, &ParseError{Line: lineNo, Text: line, Msg: "open directive requires a database path"}
		}
		return []Node{OpenDatabase(lineNo, fields[1])}, pos + 1, nil, nil
	}

	if strings.HasPrefix(line, commentMarker) {
		comment := strings.TrimSpace(strings.TrimPrefix(line, commentMarker))
		if !strings.HasPrefix(comment, selectDirective) {
			return nil, pos + 1, nil, nil
		}
		nodes, err := s.selectDirective(lines, pos, comment)
		if err != nil {
			return nil, pos, nil, err
		}
		return nodes, pos + 2, nil, nil
	}

	return []Node{ExecStatement(lineNo, line)}, pos + 1, nil, nil
}

// selectDirective handles a select comment at lines[pos] together with the
// SQL statement on the line that follows it.
func (s *Scanner) selectDirective(lines []string, pos int, comment string) ([]Node, error) {
	lineNo := pos + 1
	if pos+1 >= len(lines) || strings.TrimSpace(lines[pos+1]) == "" {
		return nil, &ParseError{Line: lineNo, Text: strings.TrimSpace(lines[pos]), Msg: "select directive is not followed by a statement"}
	}
	query := strings.TrimSpace(lines[pos+1])

	cols := ParseColumns(comment)
	if len(cols) == 0 {
		s.logger.Warn("select directive has no column specs; rows will print as empty lines",
			"line", lineNo, "comment", comment)
	}

	return []Node{
		PrepareStatement(lineNo+1, query),
		VerbatimBlock(lineNo+1, s.dialect.ReadLoop(cols)),
		VerbatimBlock(lineNo+1, s.dialect.DoneCheck()),
	}, nil
}

// Parse scans all lines and returns the nodes in script order.
func (s *Scanner) Parse(lines []string) ([]Node, error) {
	var nodes []Node
	for pos := 0; pos < len(lines); {
		stepNodes, next, _, err := s.Step(lines, pos)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, stepNodes...)
		pos = next
	}
	return nodes, nil
}
