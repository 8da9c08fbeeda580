package script

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
)

const (
	sqlPkg     = "database/sql"
	sqliteDrv  = "modernc.org/sqlite"
	exitHelper = "exitIfNotOK"
)

// Go renders programs that drive database/sql with the pure-Go sqlite
// driver. Statements are built with jennifer, so embedded SQL is always a
// valid Go string literal.
type Go struct{}

func (Go) Name() string { return "go" }

// Preamble renders the package clause, imports, helpers, and globals as a
// single formatted file and opens func main.
func (Go) Preamble() []string {
	f := jen.NewFile("main")
	f.HeaderComment("Code generated by sql2c. DO NOT EDIT.")
	f.Anon(sqliteDrv)

	f.Func().Id(exitHelper).Params(jen.Err().Error()).Block(
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Qual("fmt", "Printf").Call(jen.Lit("Error msg: %s\n"), jen.Err()),
			jen.Qual("os", "Exit").Call(jen.Lit(1)),
		),
	)

	// scanRow reads every column of the current row so that columns can be
	// addressed by ordinal like the C accessors.
	f.Func().Id("scanRow").Params(jen.Id("rows").Op("*").Qual(sqlPkg, "Rows")).Index().Interface().Block(
		jen.List(jen.Id("cols"), jen.Err()).Op(":=").Id("rows").Dot("Columns").Call(),
		jen.Id(exitHelper).Call(jen.Err()),
		jen.Id("vals").Op(":=").Make(jen.Index().Interface(), jen.Len(jen.Id("cols"))),
		jen.Id("ptrs").Op(":=").Make(jen.Index().Interface(), jen.Len(jen.Id("cols"))),
		jen.For(jen.Id("i").Op(":=").Range().Id("vals")).Block(
			jen.Id("ptrs").Index(jen.Id("i")).Op("=").Op("&").Id("vals").Index(jen.Id("i")),
		),
		jen.Id(exitHelper).Call(jen.Id("rows").Dot("Scan").Call(jen.Id("ptrs").Op("..."))),
		jen.Return(jen.Id("vals")),
	)

	f.Func().Id("columnText").Params(jen.Id("row").Index().Interface(), jen.Id("i").Int()).String().Block(
		jen.If(jen.Id("i").Op(">=").Len(jen.Id("row"))).Block(jen.Return(jen.Lit("(null)"))),
		jen.Switch(jen.Id("v").Op(":=").Id("row").Index(jen.Id("i")).Assert(jen.Type())).Block(
			jen.Case(jen.Nil()).Block(jen.Return(jen.Lit("(null)"))),
			jen.Case(jen.Index().Byte()).Block(jen.Return(jen.String().Call(jen.Id("v")))),
			jen.Default().Block(jen.Return(jen.Qual("fmt", "Sprint").Call(jen.Id("v")))),
		),
	)

	f.Func().Id("columnInt").Params(jen.Id("row").Index().Interface(), jen.Id("i").Int()).Int64().Block(
		jen.If(jen.Id("i").Op(">=").Len(jen.Id("row"))).Block(jen.Return(jen.Lit(0))),
		jen.Switch(jen.Id("v").Op(":=").Id("row").Index(jen.Id("i")).Assert(jen.Type())).Block(
			jen.Case(jen.Int64()).Block(jen.Return(jen.Id("v"))),
			jen.Case(jen.Float64()).Block(jen.Return(jen.Int64().Call(jen.Id("v")))),
			jen.Case(jen.Index().Byte()).Block(
				jen.List(jen.Id("n"), jen.Id("_")).Op(":=").Qual("strconv", "ParseInt").Call(jen.String().Call(jen.Id("v")), jen.Lit(10), jen.Lit(64)),
				jen.Return(jen.Id("n")),
			),
			jen.Case(jen.String()).Block(
				jen.List(jen.Id("n"), jen.Id("_")).Op(":=").Qual("strconv", "ParseInt").Call(jen.Id("v"), jen.Lit(10), jen.Lit(64)),
				jen.Return(jen.Id("n")),
			),
		),
		jen.Return(jen.Lit(0)),
	)

	f.Var().Defs(
		jen.Id(varDB).Op("*").Qual(sqlPkg, "DB"),
		jen.Id(varStmt).Op("*").Qual(sqlPkg, "Stmt"),
		jen.Id("rows").Op("*").Qual(sqlPkg, "Rows"),
		jen.Err().Error(),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		panic(fmt.Sprintf("script: rendering go preamble: %v", err))
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	return append(lines, "", "func main() {")
}

func (Go) Open(path string) []string {
	return goLines(
		jen.List(jen.Id(varDB), jen.Err()).Op("=").Qual(sqlPkg, "Open").Call(jen.Lit("sqlite"), jen.Lit(path)),
		goCheck(),
	)
}

func (Go) Prepare(sql string) []string {
	return goLines(
		jen.List(jen.Id(varStmt), jen.Err()).Op("=").Id(varDB).Dot("Prepare").Call(jen.Lit(sql)),
		goCheck(),
	)
}

func (Go) Exec(sql string) []string {
	return goLines(
		jen.List(jen.Id("_"), jen.Err()).Op("=").Id(varDB).Dot("Exec").Call(jen.Lit(sql)),
		goCheck(),
	)
}

func (Go) ReadLoop(cols []Column) []string {
	items := make([]string, len(cols))
	args := []jen.Code{nil}
	for i, col := range cols {
		accessor, verb := "columnInt", "%d"
		if col.Kind == ColumnText {
			accessor, verb = "columnText", "%s"
		}
		items[i] = col.Name + ": " + verb
		args = append(args, jen.Id(accessor).Call(jen.Id("row"), jen.Lit(col.Ordinal)))
	}
	args[0] = jen.Lit(strings.Join(items, ", ") + "\n")

	body := []jen.Code{
		jen.Id("row").Op(":=").Id("scanRow").Call(jen.Id("rows")),
		jen.Qual("fmt", "Printf").Call(args...),
	}
	if len(cols) == 0 {
		body[0] = jen.Id("scanRow").Call(jen.Id("rows"))
	}

	return goLines(
		jen.List(jen.Id("rows"), jen.Err()).Op("=").Id(varStmt).Dot("Query").Call(),
		goCheck(),
		jen.For(jen.Id("rows").Dot("Next").Call()).Block(body...),
		jen.Err().Op("=").Id("rows").Dot("Err").Call(),
		jen.Id("rows").Dot("Close").Call(),
		jen.Id(varStmt).Dot("Close").Call(),
	)
}

func (Go) DoneCheck() []string { return goLines(goCheck()) }

func (Go) Separator() []string { return []string{""} }

func (Go) Epilogue() []string { return []string{"}"} }

func goCheck() *jen.Statement {
	return jen.Id(exitHelper).Call(jen.Err())
}

// goLines renders each statement and splits the result into lines.
func goLines(stmts ...*jen.Statement) []string {
	var out []string
	for _, s := range stmts {
		var buf bytes.Buffer
		if err := s.Render(&buf); err != nil {
			panic(fmt.Sprintf("script: rendering go statement: %v", err))
		}
		out = append(out, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")...)
	}
	return out
}
