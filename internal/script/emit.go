package script

// Emit assembles the complete translation unit for nodes: the dialect
// preamble, each node's lines followed by the block separator, and the
// epilogue. Nodes are rendered in order with a fresh naming context.
func Emit(nodes []Node, d Dialect, opts ...Option) []string {
	o := newOptions(opts)
	names := NewNames()

	out := d.Preamble()
	for _, n := range nodes {
		out = append(out, Render(n, d, names)...)
		out = append(out, d.Separator()...)
	}
	out = append(out, d.Epilogue()...)

	o.logger.Debug("rendered statement blocks", "dialect", d.Name(), "blocks", names)
	return out
}

// Translate parses script lines and emits the program for them.
func Translate(lines []string, d Dialect, opts ...Option) ([]string, error) {
	nodes, err := NewScanner(d, opts...).Parse(lines)
	if err != nil {
		return nil, err
	}
	return Emit(nodes, d, opts...), nil
}
