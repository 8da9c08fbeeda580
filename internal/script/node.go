package script

import "fmt"

// Kind tags the variant held by a Node.
type Kind int

const (
	KindOpen     Kind = iota + 1 // open a database file
	KindPrepare                  // prepare a statement for reading
	KindExec                     // execute a statement directly
	KindVerbatim                 // pre-rendered output lines
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindPrepare:
		return "prepare"
	case KindExec:
		return "exec"
	case KindVerbatim:
		return "verbatim"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one emitted code block. It is a closed sum type: Kind selects which
// of the payload fields are meaningful.
type Node struct {
	Kind Kind

	// Line is the 1-based script line the node originated from. It is only
	// used for diagnostics and never affects rendered output.
	Line int

	// Text is the database path for KindOpen and the SQL statement for
	// KindPrepare and KindExec.
	Text string

	// Lines holds the output of a KindVerbatim node.
	Lines []string
}

// OpenDatabase returns a node that opens the database at path.
func OpenDatabase(line int, path string) Node {
	return Node{Kind: KindOpen, Line: line, Text: path}
}

// PrepareStatement returns a node that prepares sql for stepping.
func PrepareStatement(line int, sql string) Node {
	return Node{Kind: KindPrepare, Line: line, Text: sql}
}

// ExecStatement returns a node that executes sql immediately.
func ExecStatement(line int, sql string) Node {
	return Node{Kind: KindExec, Line: line, Text: sql}
}

// VerbatimBlock returns a node that emits lines unchanged.
func VerbatimBlock(line int, lines []string) Node {
	return Node{Kind: KindVerbatim, Line: line, Lines: lines}
}

// Render returns the output lines for n in the given dialect. The counter for
// the node's kind is incremented in names.
func Render(n Node, d Dialect, names *Names) []string {
	names.Next(n.Kind.String())

	switch n.Kind {
	case KindOpen:
		return d.Open(n.Text)
	case KindPrepare:
		return d.Prepare(n.Text)
	case KindExec:
		return d.Exec(n.Text)
	case KindVerbatim:
		out := make([]string, len(n.Lines))
		copy(out, n.Lines)
		return out
	default:
		panic(fmt.Sprintf("script: cannot render node of %v", n.Kind))
	}
}
