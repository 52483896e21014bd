package eraylang

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdentifier // [A-Za-z][A-Za-z0-9_]*
	TokenNumber     // -?[0-9_]+(.[0-9]+)?
	TokenArrow      // ->
	TokenPipe       // |
	TokenLParen     // (
	TokenRParen     // )
	TokenColon      // :
	TokenComma      // ,
	TokenDot        // .
	TokenDollar     // $
	TokenEquals     // =

	// Keywords (identifier text checked against keyword map)
	TokenImport // import
	TokenNode   // node
	TokenLink   // link
	TokenType   // Value | Color | Vec3

	// Meta references ('@' followed by IN or OUT)
	TokenMetaIn  // @IN
	TokenMetaOut // @OUT
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenNumber:     "number",
	TokenArrow:      "'->'",
	TokenPipe:       "'|'",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenColon:      "':'",
	TokenComma:      "','",
	TokenDot:        "'.'",
	TokenDollar:     "'$'",
	TokenEquals:     "'='",
	TokenImport:     "'import'",
	TokenNode:       "'node'",
	TokenLink:       "'link'",
	TokenType:       "type name",
	TokenMetaIn:     "'@IN'",
	TokenMetaOut:    "'@OUT'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // raw text content
	Pos     Position
}

// keywords maps keyword strings to their token kinds. The three socket type
// names all lex as TokenType; the parser disambiguates on the literal.
var keywords = map[string]TokenKind{
	"import": TokenImport,
	"node":   TokenNode,
	"link":   TokenLink,
	"Value":  TokenType,
	"Color":  TokenType,
	"Vec3":   TokenType,
}
