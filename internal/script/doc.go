// Package script translates line-oriented SQL scripts into programs that
// drive an embedded sqlite database.
//
// A script is a sequence of lines. Each trimmed line is one of:
//
//	.open <path>                                  open the database file
//	-- .SQL2C_select (text, 0, name), (int, 1, age)
//	SELECT name, age FROM people;                 print every row of the query
//	-- anything else                              ignored
//	<any other statement>                         executed immediately
//
// [Scanner] consumes the lines and produces [Node] values in script order.
// [Emit] renders the nodes through a [Dialect] and wraps them in the fixed
// preamble and epilogue of the target language. [Translate] does both.
//
// SQL text is never parsed. It is embedded in string literals as written,
// which means the C dialect produces broken output for statements containing
// double quotes unless [C.EscapeSQL] is set.
package script
