package script

import "fmt"

// Dialect supplies the target-language text used to render nodes and to
// assemble the translation unit around them.
type Dialect interface {
	// Name identifies the dialect in logs and configuration.
	Name() string

	// Preamble returns everything that precedes the first statement block:
	// includes or imports, the error-check helper, global declarations, and
	// the opening line of the entry point.
	Preamble() []string

	// Open, Prepare, and Exec render a database call followed by the
	// error check against the success sentinel.
	Open(path string) []string
	Prepare(sql string) []string
	Exec(sql string) []string

	// ReadLoop renders the loop that steps the prepared statement, prints
	// the listed columns of every row, and finalizes the statement.
	ReadLoop(cols []Column) []string

	// DoneCheck renders the error check that follows a read loop.
	DoneCheck() []string

	// Separator is emitted after every statement block.
	Separator() []string

	// Epilogue closes the entry point.
	Epilogue() []string
}

// LookupDialect returns the dialect registered under name. An empty name
// selects C.
func LookupDialect(name string, escapeSQL bool) (Dialect, error) {
	switch name {
	case "", "c":
		return C{EscapeSQL: escapeSQL}, nil
	case "go":
		return Go{}, nil
	default:
		return nil, fmt.Errorf("unknown target %q (want c or go)", name)
	}
}
