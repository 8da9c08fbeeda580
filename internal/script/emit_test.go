package script

import (
	"bytes"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"testing"
)

func readScript(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(string(data), "\n")
}

func TestTranslateGolden(t *testing.T) {
	got, err := Translate(readScript(t, "testdata/simple.sql"), C{}, WithLogger(discardLogger()))
	if err != nil {
		t.Fatal(err)
	}

	want, err := os.ReadFile("testdata/simple.c")
	if err != nil {
		t.Fatal(err)
	}

	if gotText := strings.Join(got, "\n"); gotText != string(want) {
		wantLines := strings.Split(string(want), "\n")
		for i := 0; i < len(got) && i < len(wantLines); i++ {
			if got[i] != wantLines[i] {
				t.Fatalf("line %d differs:\n got: %q\nwant: %q", i+1, got[i], wantLines[i])
			}
		}
		t.Fatalf("output has %d lines, golden has %d", len(got), len(wantLines))
	}
}

func TestEmitEmptyScript(t *testing.T) {
	got, err := Translate(nil, C{}, WithLogger(discardLogger()))
	if err != nil {
		t.Fatal(err)
	}

	var want []string
	want = append(want, C{}.Preamble()...)
	want = append(want, C{}.Epilogue()...)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("empty script output =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if got[len(got)-2] != "int main() {" || got[len(got)-1] != "}" {
		t.Errorf("expected an empty main, got tail %q", got[len(got)-2:])
	}
}

func TestEmitOpenScenario(t *testing.T) {
	got, err := Translate([]string{".open test.db"}, C{}, WithLogger(discardLogger()))
	if err != nil {
		t.Fatal(err)
	}

	idx := -1
	for i, line := range got {
		if line == "rc\t=sqlite3_open(\"test.db\", &db);" {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatalf("open call not found in:\n%s", strings.Join(got, "\n"))
	}
	if got[idx+1] != "exit_if_not_ok(rc, errMsg, SQLITE_OK);" {
		t.Errorf("line after open = %q, want OK check", got[idx+1])
	}
}

func TestEmitIdempotent(t *testing.T) {
	nodes, err := NewScanner(C{}, WithLogger(discardLogger())).Parse(readScript(t, "testdata/simple.sql"))
	if err != nil {
		t.Fatal(err)
	}

	first := Emit(nodes, C{}, WithLogger(discardLogger()))
	second := Emit(nodes, C{}, WithLogger(discardLogger()))
	if !reflect.DeepEqual(first, second) {
		t.Error("emitting the same nodes twice produced different output")
	}
}

func TestEmitBlockCount(t *testing.T) {
	lines := []string{
		".open a.db",
		"CREATE TABLE t (a INTEGER);",
		"-- plain comment",
		"-- .SQL2C_select (int, 0, a)",
		"SELECT a FROM t;",
	}
	nodes, err := NewScanner(C{}, WithLogger(discardLogger())).Parse(lines)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	out := Emit(nodes, C{}, WithLogger(logger))

	// Open, exec, and the three select nodes each end with a separator.
	preamble := len(C{}.Preamble())
	body := out[preamble : len(out)-1]
	blocks := 0
	for i := 0; i+1 < len(body); i++ {
		if body[i] == "" && body[i+1] == "" {
			blocks++
			i++
		}
	}
	if blocks != len(nodes) || blocks != 5 {
		t.Errorf("found %d blocks for %d nodes, want 5", blocks, len(nodes))
	}

	logged := buf.String()
	for _, want := range []string{"blocks.open=1", "blocks.exec=1", "blocks.prepare=1", "blocks.verbatim=2"} {
		if !strings.Contains(logged, want) {
			t.Errorf("debug log %q missing %q", logged, want)
		}
	}
}

func TestCEscapeSQL(t *testing.T) {
	sql := `INSERT INTO t VALUES ("a\b");`

	plain := C{}.Exec(sql)[0]
	if want := "rc\t=sqlite3_exec(db, \"" + sql + "\", NULL, NULL, &errMsg);"; plain != want {
		t.Errorf("unescaped exec = %q, want %q", plain, want)
	}

	escaped := C{EscapeSQL: true}.Exec(sql)[0]
	if want := "rc\t=" + `sqlite3_exec(db, "INSERT INTO t VALUES (\"a\\b\");", NULL, NULL, &errMsg);`; escaped != want {
		t.Errorf("escaped exec = %q, want %q", escaped, want)
	}
}

func TestCReadLoop(t *testing.T) {
	got := C{}.ReadLoop([]Column{
		{Kind: ColumnText, Ordinal: 0, Name: "nm"},
		{Kind: ColumnInt, Ordinal: 1, Name: "ag"},
	})
	want := []string{
		"while ( (rc\t=sqlite3_step(stmt)) == SQLITE_ROW ) {",
		`printf("nm: %s, ag: %d\n", sqlite3_column_text(stmt, 0),sqlite3_column_int(stmt, 1));`,
		"}",
		"sqlite3_finalize(stmt);",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadLoop =\n%q\nwant\n%q", got, want)
	}
}

func TestNamesCounters(t *testing.T) {
	names := NewNames()
	if got := names.Next("exec"); got != 1 {
		t.Errorf("first Next = %d, want 1", got)
	}
	names.Next("exec")
	names.Next("open")
	if got := names.Count("exec"); got != 2 {
		t.Errorf("Count(exec) = %d, want 2", got)
	}
	if got := names.Count("prepare"); got != 0 {
		t.Errorf("Count(prepare) = %d, want 0", got)
	}
}

func TestLookupDialect(t *testing.T) {
	for _, name := range []string{"", "c", "go"} {
		if _, err := LookupDialect(name, false); err != nil {
			t.Errorf("LookupDialect(%q): %v", name, err)
		}
	}
	if _, err := LookupDialect("rust", false); err == nil {
		t.Error("expected error for unknown target")
	}
	d, _ := LookupDialect("c", true)
	if c, ok := d.(C); !ok || !c.EscapeSQL {
		t.Errorf("LookupDialect(c, true) = %#v, want C with EscapeSQL", d)
	}
}
