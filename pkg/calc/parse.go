package calc

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokEnd tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	num  float64
	text string
}

func (t token) String() string {
	switch t.kind {
	case tokEnd:
		return "end of input"
	case tokNumber:
		return strconv.FormatFloat(t.num, 'g', -1, 64)
	}
	return fmt.Sprintf("%q", t.text)
}

type lexer struct {
	input string
	pos   int
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokEnd}, nil
	}

	c := l.input[l.pos]
	single := map[byte]tokenKind{
		'+': tokPlus, '-': tokMinus, '*': tokStar, '/': tokSlash,
		'^': tokCaret, '(': tokLParen, ')': tokRParen, ',': tokComma,
	}
	if kind, ok := single[c]; ok {
		l.pos++
		return token{kind: kind, text: string(c)}, nil
	}

	switch {
	case isDigit(c) || c == '.':
		return l.number()
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.input) && (isIdentStart(l.input[l.pos]) || isDigit(l.input[l.pos])) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.input[start:l.pos]}, nil
	}

	r := []rune(l.input[l.pos:])[0]
	return token{}, fmt.Errorf("unexpected character: %q", r)
}

// number lexes digits and dots with at most one exponent, which may carry
// its own sign.
func (l *lexer) number() (token, error) {
	start := l.pos
	seenExp := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isDigit(c) || c == '.' {
			l.pos++
			continue
		}
		if (c == 'e' || c == 'E') && !seenExp {
			seenExp = true
			l.pos++
			if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
				l.pos++
			}
			continue
		}
		break
	}

	text := l.input[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, fmt.Errorf("invalid number: %s", text)
	}
	return token{kind: tokNumber, num: n, text: text}, nil
}

type parser struct {
	lex *lexer
	cur token
}

func newParser(input string) (*parser, error) {
	p := &parser{lex: &lexer{input: input}}
	if err := p.bump(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) bump() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) expect(kind tokenKind, what string) error {
	if p.cur.kind != kind {
		return fmt.Errorf("expected %s, found %s", what, p.cur)
	}
	return p.bump()
}

// expr := term (('+'|'-') term)*
func (p *parser) parseExpr() (Expr, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := Add
		if p.cur.kind == tokMinus {
			op = Sub
		}
		if err := p.bump(); err != nil {
			return nil, err
		}
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = Binary{Op: op, LHS: node, RHS: rhs}
	}
	return node, nil
}

// term := power (('*'|'/') power)*
func (p *parser) parseTerm() (Expr, error) {
	node, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := Mul
		if p.cur.kind == tokSlash {
			op = Div
		}
		if err := p.bump(); err != nil {
			return nil, err
		}
		rhs, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		node = Binary{Op: op, LHS: node, RHS: rhs}
	}
	return node, nil
}

// power := unary ('^' power)?
func (p *parser) parsePower() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokCaret {
		return lhs, nil
	}
	if err := p.bump(); err != nil {
		return nil, err
	}
	rhs, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return Binary{Op: Pow, LHS: lhs, RHS: rhs}, nil
}

// unary := ('+'|'-')* primary
func (p *parser) parseUnary() (Expr, error) {
	if p.cur.kind != tokPlus && p.cur.kind != tokMinus {
		return p.parsePrimary()
	}
	op := Plus
	if p.cur.kind == tokMinus {
		op = Minus
	}
	if err := p.bump(); err != nil {
		return nil, err
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Unary{Op: op, Operand: operand}, nil
}

// primary := NUMBER | '(' expr ')' | IDENT '(' (expr (',' expr)*)? ')'
func (p *parser) parsePrimary() (Expr, error) {
	switch p.cur.kind {
	case tokNumber:
		n := Number(p.cur.num)
		if err := p.bump(); err != nil {
			return nil, err
		}
		return n, nil

	case tokLParen:
		if err := p.bump(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil

	case tokIdent:
		name := p.cur.text
		if err := p.bump(); err != nil {
			return nil, err
		}
		if err := p.expect(tokLParen, "'(' after "+name); err != nil {
			return nil, err
		}
		var args []Expr
		if p.cur.kind != tokRParen {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur.kind != tokComma {
					break
				}
				if err := p.bump(); err != nil {
					return nil, err
				}
			}
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return Call{Name: name, Args: args}, nil
	}

	return nil, fmt.Errorf("unexpected token: %s", p.cur)
}
