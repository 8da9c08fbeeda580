package script

import (
	"fmt"
	"strings"
)

const (
	varReturnCode = "rc"
	varErrMsg     = "errMsg"
	varDB         = "db"
	varStmt       = "stmt"
)

var (
	cHeaders = []string{
		"",
		"#include <stdio.h>",
		"#include <stdlib.h>",
		`#include "sqlite3.h"`,
		"",
	}

	cExitHelper = []string{
		"",
		"void exit_if_not_ok(int rc, char *zErrMsg, int correct_code){",
		"    if (rc != correct_code){",
		`        printf("Error msg: %s\n", zErrMsg);`,
		"        exit(rc);",
		"    }",
		"}",
		"",
	}

	cDecls = []string{
		"sqlite3 *" + varDB + ";",
		"char *" + varErrMsg + ";",
		"sqlite3_stmt *" + varStmt + ";",
		"int " + varReturnCode + ";",
	}

	cOKCheck   = fmt.Sprintf("exit_if_not_ok(%s, %s, SQLITE_OK);", varReturnCode, varErrMsg)
	cDoneCheck = fmt.Sprintf("exit_if_not_ok(%s, %s, SQLITE_DONE);", varReturnCode, varErrMsg)
)

// C renders programs against the sqlite3 C API.
type C struct {
	// EscapeSQL escapes backslashes and double quotes in embedded SQL. When
	// false the SQL text is placed between quotes unchanged.
	EscapeSQL bool
}

func (C) Name() string { return "c" }

func (C) Preamble() []string {
	var out []string
	out = append(out, cHeaders...)
	out = append(out, cExitHelper...)
	out = append(out, cDecls...)
	return append(out, "int main() {")
}

func (c C) Open(path string) []string {
	call := fmt.Sprintf("sqlite3_open(%s, &%s);", c.literal(path), varDB)
	return []string{cAssign(varReturnCode, call), cOKCheck}
}

func (c C) Prepare(sql string) []string {
	call := fmt.Sprintf("sqlite3_prepare_v2(%s, %s, -1, &%s, NULL);", varDB, c.literal(sql), varStmt)
	return []string{cAssign(varReturnCode, call), cOKCheck}
}

func (c C) Exec(sql string) []string {
	call := fmt.Sprintf("sqlite3_exec(%s, %s, NULL, NULL, &%s);", varDB, c.literal(sql), varErrMsg)
	return []string{cAssign(varReturnCode, call), cOKCheck}
}

func (C) ReadLoop(cols []Column) []string {
	step := cAssign(varReturnCode, fmt.Sprintf("sqlite3_step(%s)", varStmt))

	items := make([]string, len(cols))
	values := make([]string, len(cols))
	for i, col := range cols {
		verb := "%d"
		if col.Kind == ColumnText {
			verb = "%s"
		}
		items[i] = col.Name + ": " + verb
		values[i] = fmt.Sprintf("sqlite3_column_%s(%s, %d)", col.Kind, varStmt, col.Ordinal)
	}

	printf := fmt.Sprintf(`printf("%s\n");`, strings.Join(items, ", "))
	if len(values) > 0 {
		printf = fmt.Sprintf(`printf("%s\n", %s);`, strings.Join(items, ", "), strings.Join(values, ","))
	}

	return []string{
		fmt.Sprintf("while ( (%s) == SQLITE_ROW ) {", step),
		printf,
		"}",
		fmt.Sprintf("sqlite3_finalize(%s);", varStmt),
	}
}

func (C) DoneCheck() []string { return []string{cDoneCheck} }

// Separator leaves two empty lines between statement blocks.
func (C) Separator() []string { return []string{"", ""} }

func (C) Epilogue() []string { return []string{"}"} }

// literal returns s as a C string literal.
func (c C) literal(s string) string {
	if c.EscapeSQL {
		s = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
	}
	return `"` + s + `"`
}

func cAssign(lhs, rhs string) string {
	return lhs + "\t=" + rhs
}
