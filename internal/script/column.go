package script

import (
	"regexp"
	"strconv"
)

// ColumnKind selects the typed accessor used to fetch a result column.
type ColumnKind string

const (
	ColumnText ColumnKind = "text"
	ColumnInt  ColumnKind = "int"
)

// Column describes how to fetch and label one result column when printing
// the rows of a select directive.
type Column struct {
	Kind    ColumnKind
	Ordinal int    // zero-based index into the result row
	Name    string // label used in the printed output
}

// columnSpecRe matches a single "(kind, ordinal, name)" triple.
var columnSpecRe = regexp.MustCompile(`\((text|int), (\d+), ([a-z]+)\)`)

// ParseColumns extracts every column triple from a select directive comment
// in left-to-right order. Text that does not match a triple is ignored, so a
// malformed comment yields an empty list rather than an error.
func ParseColumns(comment string) []Column {
	matches := columnSpecRe.FindAllStringSubmatch(comment, -1)
	cols := make([]Column, 0, len(matches))
	for _, m := range matches {
		ordinal, err := strconv.Atoi(m[2])
		if err != nil {
			// Ordinal does not fit in an int.
			continue
		}
		cols = append(cols, Column{
			Kind:    ColumnKind(m[1]),
			Ordinal: ordinal,
			Name:    m[3],
		})
	}
	return cols
}
