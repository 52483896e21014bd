package eraylang

import "fmt"

// Lexer tokenizes .eray source text into a stream of tokens.
type Lexer struct {
	src    []byte
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the lexer.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			// Line comment: skip to end of line
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			// Block comment: skip to */
			startPos := l.currentPos()
			l.advance() // consume /
			l.advance() // consume *
			for {
				if l.atEnd() {
					return &LexError{ParseError{
						Message: "unterminated block comment",
						Pos:     startPos,
					}}
				}
				if l.peek() == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
					l.advance() // consume *
					l.advance() // consume /
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scan() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	ch := l.peek()

	switch ch {
	case '|':
		l.advance()
		return Token{Kind: TokenPipe, Literal: "|", Pos: pos}, nil
	case '(':
		l.advance()
		return Token{Kind: TokenLParen, Literal: "(", Pos: pos}, nil
	case ')':
		l.advance()
		return Token{Kind: TokenRParen, Literal: ")", Pos: pos}, nil
	case ':':
		l.advance()
		return Token{Kind: TokenColon, Literal: ":", Pos: pos}, nil
	case ',':
		l.advance()
		return Token{Kind: TokenComma, Literal: ",", Pos: pos}, nil
	case '.':
		l.advance()
		return Token{Kind: TokenDot, Literal: ".", Pos: pos}, nil
	case '$':
		l.advance()
		return Token{Kind: TokenDollar, Literal: "$", Pos: pos}, nil
	case '=':
		l.advance()
		return Token{Kind: TokenEquals, Literal: "=", Pos: pos}, nil
	case '@':
		return l.scanMeta()
	case '-':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '>' {
			l.advance()
			l.advance()
			return Token{Kind: TokenArrow, Literal: "->", Pos: pos}, nil
		}
		if l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			return l.scanNumber()
		}
		l.advance()
		return Token{}, &LexError{ParseError{
			Message: "unexpected character '-'",
			Pos:     pos,
		}}
	}

	if isDigit(ch) {
		return l.scanNumber()
	}

	if isIdentStart(ch) {
		return l.scanIdentifier()
	}

	l.advance()
	return Token{}, &LexError{ParseError{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     pos,
	}}
}

// scanMeta scans '@IN' or '@OUT'. Any other text after '@' is an error;
// the meta tokens are reserved words and cannot collide with identifiers.
func (l *Lexer) scanMeta() (Token, error) {
	pos := l.currentPos()
	l.advance() // consume '@'

	start := l.pos
	for !l.atEnd() && isIdentPart(l.peek()) {
		l.advance()
	}
	word := string(l.src[start:l.pos])

	switch word {
	case "IN":
		return Token{Kind: TokenMetaIn, Literal: "@IN", Pos: pos}, nil
	case "OUT":
		return Token{Kind: TokenMetaOut, Literal: "@OUT", Pos: pos}, nil
	default:
		return Token{}, &LexError{ParseError{
			Message: fmt.Sprintf("unknown meta reference \"@%s\" (expected @IN or @OUT)", word),
			Pos:     pos,
		}}
	}
}

// scanNumber scans a numeric literal. Underscores are permitted as digit
// group separators in the integer part; the fractional part is plain digits.
func (l *Lexer) scanNumber() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	if !l.atEnd() && l.peek() == '-' {
		l.advance()
	}

	for !l.atEnd() && (isDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}

	// Fractional part: only when the dot is followed by a digit, so that
	// field chains like "n.value" never swallow the dot.
	if !l.atEnd() && l.peek() == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		l.advance() // consume '.'
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	return Token{Kind: TokenNumber, Literal: string(l.src[start:l.pos]), Pos: pos}, nil
}

func (l *Lexer) scanIdentifier() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	for !l.atEnd() && isIdentPart(l.peek()) {
		l.advance()
	}

	literal := string(l.src[start:l.pos])

	if kind, ok := keywords[literal]; ok {
		return Token{Kind: kind, Literal: literal, Pos: pos}, nil
	}

	return Token{Kind: TokenIdentifier, Literal: literal, Pos: pos}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart matches the first character of an identifier. Identifiers
// must begin with a letter; underscore is only valid as a continuation.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '_'
}
