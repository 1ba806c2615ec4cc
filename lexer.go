// lexer.go — hand-written scanner for tram source text.
//
// The scanner walks the source bytes once and produces a flat []Token ending
// in a single EOF token. Two details matter to the parser:
//
//   - '(' is whitespace-sensitive: a '(' that immediately follows the previous
//     token lexes as CALLPAREN (participates in calls), while a '(' preceded
//     by whitespace lexes as LPAREN (grouping only). This keeps statement
//     juxtaposition unambiguous: `a = b` followed by `(c)` on the next line
//     never fuses into a call.
//   - Tokens carry their start position (1-based Line, 0-based Col) so every
//     later phase can point back into the source.
package tram

import (
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LPAREN    // "(" preceded by whitespace (grouping)
	CALLPAREN // "(" glued to the previous token (call)
	RPAREN    // ")"
	LBRACE    // "{"
	RBRACE    // "}"
	COMMA     // ","
	SEMICOLON // ";"

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POW        // "**"
	ASSIGN     // "="
	PLUS_EQ    // "+="
	MINUS_EQ   // "-="
	STAR_EQ    // "*="
	SLASH_EQ   // "/="
	PERCENT_EQ // "%="
	POW_EQ     // "**="
	EQ         // "=="
	NEQ        // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	BANG   // "!"
	ANDAND // "&&"
	OROR   // "||"

	// Literals & identifiers
	IDENT
	STRING
	INT
	NUM
	BOOL
	NIL

	// Keywords
	LET
	FUNC
	IF
	THEN
	ELSE

	// Reserved words: lexed as keywords, rejected by the parser.
	RESERVED
)

// Token is a lexical token with an optional decoded literal value.
type Token struct {
	Type    TokenType
	Lexeme  string // raw text slice
	Literal any    // int64 / float64 / string / bool for literal tokens
	Line    int    // 1-based
	Col     int    // 0-based
}

var keywords = map[string]TokenType{
	"let":   LET,
	"func":  FUNC,
	"if":    IF,
	"then":  THEN,
	"else":  ELSE,
	"true":  BOOL,
	"false": BOOL,
	"nil":   NIL,

	// Held back for later language versions.
	"const":  RESERVED,
	"pub":    RESERVED,
	"use":    RESERVED,
	"enum":   RESERVED,
	"struct": RESERVED,
}

// LexError reports a scanning failure at a source position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans a tram source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of the current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	spaceBefore bool // whitespace (or start of input) precedes the current token
	tokLine     int
	tokCol      int
}

// NewLexer creates a lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, spaceBefore: true}
}

func (l *Lexer) atEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) match(ch byte) bool {
	if l.atEnd() || l.src[l.cur] != ch {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) add(tt TokenType, lit any) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokLine,
		Col:     l.tokCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	l.spaceBefore = false
	return tok
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

// errAtStart points at the first byte of the current token instead of the
// scan position.
func (l *Lexer) errAtStart(msg string) error {
	return &LexError{Line: l.tokLine, Col: l.tokCol, Msg: msg}
}

func (l *Lexer) skipBlanks() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.spaceBefore = true
			l.advance()
		case '/':
			if l.peekNext() != '/' {
				return
			}
			l.spaceBefore = true
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// scanString decodes a double-quoted literal, handling escapes and UTF-16
// surrogate pairs in \uXXXX escapes.
func (l *Lexer) scanString() (string, error) {
	l.advance() // opening quote

	var out []rune
	for !l.atEnd() {
		ch := l.advance()
		if ch == '"' {
			return string(out), nil
		}
		if ch == '\n' {
			return "", l.err("string was not terminated")
		}
		if ch != '\\' {
			if ch < utf8.RuneSelf {
				out = append(out, rune(ch))
				continue
			}
			// Non-ASCII byte: step back and decode the full rune.
			l.cur--
			r, size := utf8.DecodeRuneInString(l.src[l.cur:])
			if r == utf8.RuneError && size == 1 {
				return "", l.err("invalid UTF-8 in string literal")
			}
			l.cur += size
			l.col += size - 1
			out = append(out, r)
			continue
		}
		if l.atEnd() {
			return "", l.err("unfinished escape sequence")
		}
		switch esc := l.advance(); esc {
		case '"':
			out = append(out, '"')
		case '\'':
			out = append(out, '\'')
		case '\\':
			out = append(out, '\\')
		case '/':
			out = append(out, '/')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			r, err := l.readHex4()
			if err != nil {
				return "", err
			}
			if utf16.IsSurrogate(r) && l.peek() == '\\' && l.peekNext() == 'u' {
				save := l.cur
				saveCol := l.col
				l.advance()
				l.advance()
				r2, err := l.readHex4()
				if err != nil {
					return "", err
				}
				if cp := utf16.DecodeRune(r, r2); cp != utf8.RuneError {
					out = append(out, cp)
					continue
				}
				l.cur, l.col = save, saveCol
			}
			out = append(out, r)
		default:
			return "", l.err(fmt.Sprintf("invalid escape sequence: \\%c", esc))
		}
	}
	return "", l.err("string was not terminated")
}

func (l *Lexer) readHex4() (rune, error) {
	var hex string
	for i := 0; i < 4; i++ {
		if l.atEnd() || !isHex(l.peek()) {
			return 0, l.err("\\u escape needs 4 hex digits")
		}
		hex += string(l.advance())
	}
	v, _ := strconv.ParseInt(hex, 16, 32)
	return rune(v), nil
}

// scanNumber parses an integer or float literal: 12, 3.14, 1e-3, 2.5e+4.
func (l *Lexer) scanNumber() (TokenType, any, error) {
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}

	isFloat := false
	if l.peek() == '.' && isDigit(l.peekNext()) {
		isFloat = true
		l.advance()
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	if b := l.peek(); b == 'e' || b == 'E' {
		next := l.peekNext()
		hasExp := isDigit(next)
		if (next == '+' || next == '-') && l.cur+2 < len(l.src) && isDigit(l.src[l.cur+2]) {
			hasExp = true
		}
		if hasExp {
			isFloat = true
			l.advance()
			if b := l.peek(); b == '+' || b == '-' {
				l.advance()
			}
			for !l.atEnd() && isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	lex := l.src[l.start:l.cur]
	if !isFloat {
		v, err := strconv.ParseInt(lex, 10, 64)
		if err != nil {
			return ILLEGAL, nil, l.errAtStart("integer literal out of range")
		}
		return INT, v, nil
	}
	v, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return ILLEGAL, nil, l.err("malformed number")
	}
	return NUM, v, nil
}

func (l *Lexer) scanIdentifier() string {
	for !l.atEnd() && isAlphaNum(l.peek()) {
		l.advance()
	}
	return l.src[l.start:l.cur]
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipBlanks()
	l.tokLine = l.line
	l.tokCol = l.col
	l.start = l.cur

	if l.atEnd() {
		return l.add(EOF, nil), nil
	}

	glued := !l.spaceBefore
	ch := l.advance()

	switch ch {
	case '(':
		if glued && len(l.tokens) > 0 {
			return l.add(CALLPAREN, nil), nil
		}
		return l.add(LPAREN, nil), nil
	case ')':
		return l.add(RPAREN, nil), nil
	case '{':
		return l.add(LBRACE, nil), nil
	case '}':
		return l.add(RBRACE, nil), nil
	case ',':
		return l.add(COMMA, nil), nil
	case ';':
		return l.add(SEMICOLON, nil), nil
	case '+':
		if l.match('=') {
			return l.add(PLUS_EQ, nil), nil
		}
		return l.add(PLUS, nil), nil
	case '-':
		if l.match('=') {
			return l.add(MINUS_EQ, nil), nil
		}
		return l.add(MINUS, nil), nil
	case '*':
		if l.match('*') {
			if l.match('=') {
				return l.add(POW_EQ, nil), nil
			}
			return l.add(POW, nil), nil
		}
		if l.match('=') {
			return l.add(STAR_EQ, nil), nil
		}
		return l.add(STAR, nil), nil
	case '/':
		if l.match('=') {
			return l.add(SLASH_EQ, nil), nil
		}
		return l.add(SLASH, nil), nil
	case '%':
		if l.match('=') {
			return l.add(PERCENT_EQ, nil), nil
		}
		return l.add(PERCENT, nil), nil
	case '=':
		if l.match('=') {
			return l.add(EQ, nil), nil
		}
		return l.add(ASSIGN, nil), nil
	case '!':
		if l.match('=') {
			return l.add(NEQ, nil), nil
		}
		return l.add(BANG, nil), nil
	case '<':
		if l.match('=') {
			return l.add(LESS_EQ, nil), nil
		}
		return l.add(LESS, nil), nil
	case '>':
		if l.match('=') {
			return l.add(GREATER_EQ, nil), nil
		}
		return l.add(GREATER, nil), nil
	case '&':
		if l.match('&') {
			return l.add(ANDAND, nil), nil
		}
		return Token{}, l.errAtStart("unexpected character '&' (did you mean '&&'?)")
	case '|':
		if l.match('|') {
			return l.add(OROR, nil), nil
		}
		return Token{}, l.errAtStart("unexpected character '|' (did you mean '||'?)")
	case '"':
		l.cur = l.start // rewind so scanString sees the quote
		l.col = l.tokCol
		s, err := l.scanString()
		if err != nil {
			return Token{}, err
		}
		return l.add(STRING, s), nil
	}

	if isDigit(ch) {
		l.cur = l.start
		l.col = l.tokCol
		tt, lit, err := l.scanNumber()
		if err != nil {
			return Token{}, err
		}
		return l.add(tt, lit), nil
	}

	if isAlpha(ch) {
		l.cur = l.start
		l.col = l.tokCol
		word := l.scanIdentifier()
		if tt, ok := keywords[word]; ok {
			switch tt {
			case BOOL:
				return l.add(BOOL, word == "true"), nil
			case NIL:
				return l.add(NIL, nil), nil
			default:
				return l.add(tt, word), nil
			}
		}
		return l.add(IDENT, word), nil
	}

	return Token{}, l.errAtStart(fmt.Sprintf("unexpected character %q", ch))
}

// Scan tokenizes the entire source and returns the tokens, EOF included.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
