package eraylang

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses .eray source text and returns a File.
// Returns a *SyntaxError or *LexError on failure.
func Parse(src []byte) (*File, error) {
	p := &parser{lex: NewLexer(src)}
	return p.parseFile()
}

// ParseSignature parses only the leading signature declaration and stops
// there; the rest of the source is not touched. This is what an import needs
// from a custom node file: its interface, regardless of the body's state.
func ParseSignature(src []byte) (SignatureDecl, error) {
	p := &parser{lex: NewLexer(src)}
	return p.parseSignature()
}

type parser struct {
	lex *Lexer
}

func (p *parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *parser) next() (Token, error) {
	return p.lex.Next()
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   kind.String(),
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}
	return tok, nil
}

// parseFile parses the four sections in fixed order:
// signature, imports, node declarations, links.
func (p *parser) parseFile() (*File, error) {
	file := &File{}

	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	file.Signature = sig

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenImport {
			break
		}
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		file.Imports = append(file.Imports, imp)
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenNode {
			break
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		file.Nodes = append(file.Nodes, node)
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenLink {
			break
		}
		link, err := p.parseLink()
		if err != nil {
			return nil, err
		}
		file.Links = append(file.Links, link)
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenEOF {
		return nil, &SyntaxError{
			ParseError: ParseError{
				Message: "sections must appear in order: signature, imports, nodes, links",
				Pos:     tok.Pos,
			},
			Expected: "'import', 'node', 'link', or EOF",
			Got:      fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}

	return file, nil
}

// parseSignature parses `'|' VarList? '|' '->' Outputs`.
func (p *parser) parseSignature() (SignatureDecl, error) {
	open, err := p.expect(TokenPipe)
	if err != nil {
		return SignatureDecl{}, err
	}

	sig := SignatureDecl{Pos: open.Pos}

	tok, err := p.peek()
	if err != nil {
		return SignatureDecl{}, err
	}
	if tok.Kind != TokenPipe {
		sig.Inputs, err = p.parseVarList(TokenPipe)
		if err != nil {
			return SignatureDecl{}, err
		}
	}

	if _, err := p.expect(TokenPipe); err != nil {
		return SignatureDecl{}, err
	}
	if _, err := p.expect(TokenArrow); err != nil {
		return SignatureDecl{}, err
	}

	sig.Outputs, err = p.parseOutputs()
	if err != nil {
		return SignatureDecl{}, err
	}

	if err := checkUniqueVars(sig.Inputs); err != nil {
		return SignatureDecl{}, err
	}
	if err := checkUniqueVars(sig.Outputs); err != nil {
		return SignatureDecl{}, err
	}

	return sig, nil
}

// parseOutputs parses the output side of a signature: a parenthesized named
// sequence, a single named socket, or a bare type name (one unnamed socket).
func (p *parser) parseOutputs() ([]VarDecl, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case TokenLParen:
		_, _ = p.next()
		inner, err := p.peek()
		if err != nil {
			return nil, err
		}
		var vars []VarDecl
		if inner.Kind != TokenRParen {
			vars, err = p.parseVarList(TokenRParen)
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return vars, nil

	case TokenType:
		// Single unnamed output socket, e.g. `-> Value`.
		ty, _ := p.next()
		return []VarDecl{{Type: ty.Literal, Pos: ty.Pos}}, nil

	case TokenIdentifier:
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		return []VarDecl{v}, nil

	default:
		return nil, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "output declaration",
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}
}

// parseVarList parses `Var (',' Var)* ','?` up to (not consuming) the given
// closing token.
func (p *parser) parseVarList(closer TokenKind) ([]VarDecl, error) {
	var vars []VarDecl

	for {
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenComma {
			break
		}
		_, _ = p.next() // consume comma

		// Allow trailing comma before the closer
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == closer {
			break
		}
	}

	return vars, nil
}

// parseVar parses `Ident ':' TypeName`.
func (p *parser) parseVar() (VarDecl, error) {
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return VarDecl{}, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return VarDecl{}, err
	}
	ty, err := p.expect(TokenType)
	if err != nil {
		return VarDecl{}, err
	}
	return VarDecl{Name: name.Literal, Type: ty.Literal, Pos: name.Pos}, nil
}

// checkUniqueVars rejects duplicate socket names within one side of a
// signature declaration. The declaration itself is malformed, so this is a
// syntax fault rather than a semantic diagnostic.
func checkUniqueVars(vars []VarDecl) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if v.Name == "" {
			continue
		}
		if seen[v.Name] {
			return &SyntaxError{ParseError: ParseError{
				Message: fmt.Sprintf("duplicate socket name %q in signature", v.Name),
				Pos:     v.Pos,
			}}
		}
		seen[v.Name] = true
	}
	return nil
}

// parseImport parses `'import' Ident '=' Ident Signature`.
func (p *parser) parseImport() (ImportDecl, error) {
	kw, err := p.expect(TokenImport)
	if err != nil {
		return ImportDecl{}, err
	}

	alias, err := p.expect(TokenIdentifier)
	if err != nil {
		return ImportDecl{}, err
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return ImportDecl{}, err
	}
	target, err := p.expect(TokenIdentifier)
	if err != nil {
		return ImportDecl{}, err
	}
	sig, err := p.parseSignature()
	if err != nil {
		return ImportDecl{}, err
	}

	return ImportDecl{
		Alias:     alias.Literal,
		Target:    target.Literal,
		Signature: sig,
		Pos:       kw.Pos,
	}, nil
}

// parseNode parses `'node' Ident ':' ('$' Ident | Ident)`.
func (p *parser) parseNode() (NodeDecl, error) {
	kw, err := p.expect(TokenNode)
	if err != nil {
		return NodeDecl{}, err
	}

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return NodeDecl{}, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return NodeDecl{}, err
	}

	tok, err := p.peek()
	if err != nil {
		return NodeDecl{}, err
	}

	custom := false
	if tok.Kind == TokenDollar {
		_, _ = p.next()
		custom = true
	}

	ref, err := p.expect(TokenIdentifier)
	if err != nil {
		return NodeDecl{}, err
	}

	return NodeDecl{
		Name:   name.Literal,
		Type:   ref.Literal,
		Custom: custom,
		Pos:    kw.Pos,
	}, nil
}

// parseLink parses `'link' Source '->' Field`.
func (p *parser) parseLink() (LinkDecl, error) {
	kw, err := p.expect(TokenLink)
	if err != nil {
		return LinkDecl{}, err
	}

	link := LinkDecl{Pos: kw.Pos}

	tok, err := p.peek()
	if err != nil {
		return LinkDecl{}, err
	}
	if tok.Kind == TokenType {
		expr, err := p.parseExpr()
		if err != nil {
			return LinkDecl{}, err
		}
		link.Expr = expr
	} else {
		field, err := p.parseField()
		if err != nil {
			return LinkDecl{}, err
		}
		link.Source = field
	}

	if _, err := p.expect(TokenArrow); err != nil {
		return LinkDecl{}, err
	}

	target, err := p.parseField()
	if err != nil {
		return LinkDecl{}, err
	}
	link.Target = target

	return link, nil
}

// parseField parses `('@IN' | '@OUT' | Ident) ('.' Ident)*`.
func (p *parser) parseField() (*FieldExpr, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	field := &FieldExpr{Pos: tok.Pos}
	switch tok.Kind {
	case TokenMetaIn:
		field.Meta = MetaIn
	case TokenMetaOut:
		field.Meta = MetaOut
	case TokenIdentifier:
		field.Root = tok.Literal
	default:
		return nil, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "field root (node instance, @IN, or @OUT)",
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}

	chain, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	field.Chain = chain

	return field, nil
}

// parseChain parses `('.' Ident)*`.
func (p *parser) parseChain() ([]string, error) {
	var chain []string
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenDot {
			return chain, nil
		}
		_, _ = p.next() // consume dot

		part, err := p.expect(TokenIdentifier)
		if err != nil {
			return nil, err
		}
		chain = append(chain, part.Literal)
	}
}

// parseExpr parses `TypeName '(' (Literal | Field) ')' ('.' Ident)*`.
func (p *parser) parseExpr() (*Expr, error) {
	ctor, err := p.expect(TokenType)
	if err != nil {
		return nil, err
	}

	expr := &Expr{Constructor: ctor.Literal, Pos: ctor.Pos}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenNumber {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		expr.Literal = lit
	} else {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		expr.Field = field
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	expr.Trailing, err = p.parseChain()
	if err != nil {
		return nil, err
	}

	return expr, nil
}

// parseLiteral parses one number or a comma-separated 3-vector of numbers.
func (p *parser) parseLiteral() (*Literal, error) {
	first, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}

	lit := &Literal{Pos: first.Pos}
	v, err := parseNumber(first)
	if err != nil {
		return nil, err
	}
	lit.Values = append(lit.Values, v)

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenComma {
			break
		}
		_, _ = p.next() // consume comma

		num, err := p.expect(TokenNumber)
		if err != nil {
			return nil, err
		}
		v, err := parseNumber(num)
		if err != nil {
			return nil, err
		}
		lit.Values = append(lit.Values, v)
	}

	if len(lit.Values) != 1 && len(lit.Values) != 3 {
		return nil, &SyntaxError{ParseError: ParseError{
			Message: fmt.Sprintf("literal must have 1 or 3 components, got %d", len(lit.Values)),
			Pos:     first.Pos,
		}}
	}

	return lit, nil
}

// parseNumber converts a number token to a float64, stripping underscore
// digit separators.
func parseNumber(tok Token) (float64, error) {
	cleaned := strings.ReplaceAll(tok.Literal, "_", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &SyntaxError{ParseError: ParseError{
			Message: fmt.Sprintf("invalid number %q: %v", tok.Literal, err),
			Pos:     tok.Pos,
			Cause:   err,
		}}
	}
	return v, nil
}
