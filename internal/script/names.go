package script

import (
	"log/slog"
	"sort"
)

// Names is the naming context threaded through every render call of a single
// emit pass. It keeps one counter per symbol prefix.
type Names struct {
	counts map[string]int
}

// NewNames returns an empty naming context.
func NewNames() *Names {
	return &Names{counts: make(map[string]int)}
}

// Next increments the counter for prefix and returns the new value.
func (n *Names) Next(prefix string) int {
	n.counts[prefix]++
	return n.counts[prefix]
}

// Count returns the current counter value for prefix.
func (n *Names) Count(prefix string) int {
	return n.counts[prefix]
}

// LogValue implements slog.LogValuer so the counters can be attached to a log
// record as a group sorted by prefix.
func (n *Names) LogValue() slog.Value {
	prefixes := make([]string, 0, len(n.counts))
	for p := range n.counts {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	attrs := make([]slog.Attr, 0, len(prefixes))
	for _, p := range prefixes {
		attrs = append(attrs, slog.Int(p, n.counts[p]))
	}
	return slog.GroupValue(attrs...)
}
