package script

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// runNodes executes the statements carried by nodes against sqlite in the
// order a generated program would, returning every row read by a prepared
// statement formatted as space-separated values.
func runNodes(t *testing.T, nodes []Node) []string {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	var db *sql.DB
	var out []string
	for _, n := range nodes {
		switch n.Kind {
		case KindOpen:
			var err error
			db, err = sql.Open("sqlite", filepath.Join(dir, n.Text))
			if err != nil {
				t.Fatal(err)
			}
			// Transactions span several statements, so keep one connection.
			db.SetMaxOpenConns(1)
			t.Cleanup(func() { db.Close() })
		case KindExec:
			if _, err := db.ExecContext(ctx, n.Text); err != nil {
				t.Fatalf("line %d: exec %q: %v", n.Line, n.Text, err)
			}
		case KindPrepare:
			out = append(out, queryRows(t, ctx, db, n)...)
		}
	}
	return out
}

func queryRows(t *testing.T, ctx context.Context, db *sql.DB, n Node) []string {
	t.Helper()
	rows, err := db.QueryContext(ctx, n.Text)
	if err != nil {
		t.Fatalf("line %d: query %q: %v", n.Line, n.Text, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		t.Fatal(err)
	}

	var out []string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			t.Fatal(err)
		}
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = fmt.Sprint(v)
		}
		out = append(out, strings.Join(parts, " "))
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestGoldenScriptRunsOnSQLite(t *testing.T) {
	nodes, err := NewScanner(C{}, WithLogger(discardLogger())).Parse(readScript(t, "testdata/simple.sql"))
	if err != nil {
		t.Fatal(err)
	}

	got := runNodes(t, nodes)
	want := []string{
		"Alice 25",
		"Starting a transaction!",
		"Read in transaction",
		"Alice 90",
		"Rollback transaction result:",
		"Alice 25",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
}
