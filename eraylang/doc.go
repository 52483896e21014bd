// Package eraylang implements a parser for the .eray shader graph language.
//
// An .eray file declares, in fixed order: the file's own socket signature,
// imports of external node types, named node instances, and the links wiring
// their sockets together. Both // line and /* block */ comments are stripped
// before parsing.
//
// The parser is structured as a hand-rolled recursive-descent parser with
// three layers:
//
//   - Lexer: converts raw bytes into a token stream, stripping comments and
//     whitespace.
//   - Parser: consumes tokens according to the grammar and builds an AST.
//   - AST types: the output data structures (File, SignatureDecl, ImportDecl,
//     NodeDecl, LinkDecl, FieldExpr, Expr).
//
// Usage:
//
//	file, err := eraylang.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(file.Nodes), len(file.Links))
//
// The AST is purely syntactic; shadergraph resolves it into a typed graph.
package eraylang
