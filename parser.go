// parser.go — recursive-descent parser with precedence climbing.
//
// The parser consumes the token slice from lexer.go and builds the typed AST
// defined in ast.go. It fails fast: the first structural violation produces a
// *ParseError naming what was expected versus what was found, and no partial
// tree is returned.
//
// Grammar sketch (loosest binding first):
//
//	program   := stmt* EOF
//	stmt      := "let" IDENT "=" expr | expr | ";"
//	expr      := assign
//	assign    := IDENT ("=" | "+=" | ...) assign | logicOr
//	logicOr   := logicAnd ("||" logicAnd)*
//	logicAnd  := equality ("&&" equality)*
//	equality  := compare (("==" | "!=") compare)*
//	compare   := term (("<" | "<=" | ">" | ">=") term)*
//	term      := factor (("+" | "-") factor)*
//	factor    := power (("*" | "/" | "%") power)*
//	power     := unary ("**" unary)*
//	unary     := ("-" | "!") unary | callchain
//	callchain := primary (CALLPAREN args ")")*
//	primary   := literal | IDENT | "(" expr ")" | block | if | func
//	block     := "{" stmt* "}"
//	if        := "if" expr "then" expr ("else" expr)?
//	func      := "func" IDENT? "(" params ")" expr
//
// Calls require the '(' to be glued to the callee (CALLPAREN, see lexer.go);
// a spaced '(' only ever groups. Compound assignments desugar in the parser:
// `x += e` becomes `x = x + e`.
package tram

import "fmt"

// ParseError reports the first structural violation, with the position of the
// offending token.
type ParseError struct {
	Line int
	Col  int
	Msg  string

	// AtEOF marks errors caused by the input simply stopping. REPLs use it
	// (via IsIncomplete) to keep reading instead of reporting.
	AtEOF bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a parse error that more input could
// resolve.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.AtEOF
}

// Parse tokenizes and parses a complete source unit.
func Parse(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

type parser struct {
	toks []Token
	i    int
}

// Binding powers, loosest to tightest.
const (
	precNone = iota
	precAssign
	precOr
	precAnd
	precEq
	precComp
	precTerm
	precFactor
	precPow
	precUnary
	precCall
)

func infixPrec(tt TokenType) int {
	switch tt {
	case ASSIGN, PLUS_EQ, MINUS_EQ, STAR_EQ, SLASH_EQ, PERCENT_EQ, POW_EQ:
		return precAssign
	case OROR:
		return precOr
	case ANDAND:
		return precAnd
	case EQ, NEQ:
		return precEq
	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		return precComp
	case PLUS, MINUS:
		return precTerm
	case STAR, SLASH, PERCENT:
		return precFactor
	case POW:
		return precPow
	case CALLPAREN:
		return precCall
	}
	return precNone
}

// compoundOp maps a compound-assignment token to the binary operator it
// desugars to.
var compoundOp = map[TokenType]TokenType{
	PLUS_EQ:    PLUS,
	MINUS_EQ:   MINUS,
	STAR_EQ:    STAR,
	SLASH_EQ:   SLASH,
	PERCENT_EQ: PERCENT,
	POW_EQ:     POW,
}

// ─── token plumbing ───

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) match(tts ...TokenType) bool {
	for _, tt := range tts {
		if p.peek().Type == tt {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(tt TokenType, expected string) (Token, error) {
	if p.match(tt) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), "expected %s, found %s", expected, describe(p.peek()))
}

func (p *parser) errAt(t Token, format string, args ...any) error {
	return &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...), AtEOF: t.Type == EOF}
}

func describe(t Token) string {
	switch t.Type {
	case EOF:
		return "end of input"
	case STRING:
		return "string literal"
	case RESERVED:
		return fmt.Sprintf("reserved word %q", t.Lexeme)
	default:
		return fmt.Sprintf("%q", t.Lexeme)
	}
}

func at(t Token) pos { return pos{Line: t.Line, Col: t.Col} }

// ─── grammar ───

func (p *parser) program() (*Program, error) {
	root := &Program{pos: at(p.peek())}
	for !p.atEnd() {
		if p.match(SEMICOLON) {
			continue
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		root.Stmts = append(root.Stmts, stmt)
	}
	return root, nil
}

func (p *parser) statement() (Node, error) {
	if p.match(LET) {
		return p.letStmt(p.prev())
	}
	return p.expression()
}

func (p *parser) letStmt(kw Token) (Node, error) {
	name, err := p.need(IDENT, "a name after 'let'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ASSIGN, "'=' after the name"); err != nil {
		return nil, err
	}
	init, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &Let{pos: at(kw), Name: name.Lexeme, Value: init}, nil
}

func (p *parser) expression() (Node, error) {
	return p.exprPrec(precAssign)
}

func (p *parser) exprPrec(min int) (Node, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		bp := infixPrec(op.Type)
		if bp < min {
			return left, nil
		}
		p.i++

		switch {
		case op.Type == CALLPAREN:
			left, err = p.finishCall(left, op)
		case op.Type == ASSIGN || compoundOp[op.Type] != 0:
			left, err = p.assignment(left, op)
		case op.Type == ANDAND || op.Type == OROR:
			var right Node
			right, err = p.exprPrec(bp + 1)
			if err == nil {
				left = &Logical{pos: at(op), Op: op.Type, Left: left, Right: right}
			}
		default:
			var right Node
			right, err = p.exprPrec(bp + 1)
			if err == nil {
				left = &Binary{pos: at(op), Op: op.Type, Left: left, Right: right}
			}
		}
		if err != nil {
			return nil, err
		}
	}
}

// assignment handles "=" and the compound forms, right-associatively.
// The left side must already have parsed as a bare identifier.
func (p *parser) assignment(left Node, op Token) (Node, error) {
	target, ok := left.(*Ident)
	if !ok {
		return nil, p.errAt(op, "invalid assignment target: left side of %q must be a name", op.Lexeme)
	}
	value, err := p.exprPrec(precAssign)
	if err != nil {
		return nil, err
	}
	if binOp := compoundOp[op.Type]; binOp != 0 {
		value = &Binary{pos: at(op), Op: binOp, Left: &Ident{pos: target.pos, Name: target.Name}, Right: value}
	}
	return &Assign{pos: at(op), Name: target.Name, Value: value}, nil
}

func (p *parser) finishCall(callee Node, open Token) (Node, error) {
	call := &Call{pos: at(open), Callee: callee}
	if p.match(RPAREN) {
		return call, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.match(COMMA) {
			continue
		}
		if _, err := p.need(RPAREN, "',' or ')' in argument list"); err != nil {
			return nil, err
		}
		return call, nil
	}
}

func (p *parser) prefix() (Node, error) {
	t := p.peek()
	switch t.Type {
	case INT, NUM, STRING, BOOL:
		p.i++
		return &Literal{pos: at(t), Value: t.Literal}, nil
	case NIL:
		p.i++
		return &Literal{pos: at(t), Value: nil}, nil
	case IDENT:
		p.i++
		return &Ident{pos: at(t), Name: t.Lexeme}, nil
	case MINUS, BANG:
		p.i++
		operand, err := p.exprPrec(precUnary)
		if err != nil {
			return nil, err
		}
		return &Unary{pos: at(t), Op: t.Type, Operand: operand}, nil
	case LPAREN, CALLPAREN:
		// In prefix position both paren kinds just group.
		p.i++
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "')' to close the group"); err != nil {
			return nil, err
		}
		return inner, nil
	case LBRACE:
		p.i++
		return p.block(t)
	case IF:
		p.i++
		return p.ifExpr(t)
	case FUNC:
		p.i++
		return p.funcLit(t)
	case RESERVED:
		return nil, p.errAt(t, "%q is reserved and cannot be used here", t.Lexeme)
	default:
		return nil, p.errAt(t, "expected an expression, found %s", describe(t))
	}
}

func (p *parser) block(open Token) (Node, error) {
	b := &Block{pos: at(open)}
	for {
		if p.match(RBRACE) {
			return b, nil
		}
		if p.atEnd() {
			return nil, p.errAt(p.peek(), "expected '}' to close the block opened at %d:%d, found end of input", open.Line, open.Col+1)
		}
		if p.match(SEMICOLON) {
			continue
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, stmt)
	}
}

func (p *parser) ifExpr(kw Token) (Node, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(THEN, "'then' after the condition"); err != nil {
		return nil, err
	}
	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	node := &If{pos: at(kw), Cond: cond, Then: then}
	if p.match(ELSE) {
		// `else if ...` chains through the expression grammar.
		node.Else, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *parser) funcLit(kw Token) (Node, error) {
	fn := &FuncLit{pos: at(kw)}
	if p.match(IDENT) {
		fn.Name = p.prev().Lexeme
	}
	if !p.match(CALLPAREN, LPAREN) {
		return nil, p.errAt(p.peek(), "expected '(' to start the parameter list, found %s", describe(p.peek()))
	}
	if !p.match(RPAREN) {
		for {
			param, err := p.need(IDENT, "a parameter name")
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param.Lexeme)
			if p.match(COMMA) {
				continue
			}
			if _, err := p.need(RPAREN, "',' or ')' in parameter list"); err != nil {
				return nil, err
			}
			break
		}
	}
	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}
