package expr

import "fmt"

const (
	// MaxLength is the longest expression accepted, in bytes.
	MaxLength = 1024
	// MaxDepth bounds nesting of parentheses and unary operators.
	MaxDepth = 64
)

// Parse builds the syntax tree for src.
//
// Grammar, lowest precedence first:
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/" | "//" | "%") unary }
//	unary  = "-" unary | power
//	power  = atom [ "**" unary ]
//	atom   = number | "(" expr ")"
func Parse(src string) (Expr, error) {
	if len(src) > MaxLength {
		return nil, &UnsafeExpressionError{Pos: MaxLength, Reason: fmt.Sprintf("expression longer than %d bytes", MaxLength)}
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, &UnsafeExpressionError{Pos: 0, Reason: "empty expression"}
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, unexpected(t)
	}
	return e, nil
}

type parser struct {
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) enter(t token) error {
	p.depth++
	if p.depth > MaxDepth {
		return &UnsafeExpressionError{Pos: t.pos, Reason: fmt.Sprintf("nesting deeper than %d", MaxDepth)}
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

var additive = map[tokenKind]Op{
	tokPlus:  OpAdd,
	tokMinus: OpSub,
}

var multiplicative = map[tokenKind]Op{
	tokStar:        OpMul,
	tokSlash:       OpDiv,
	tokDoubleSlash: OpFloorDiv,
	tokPercent:     OpMod,
}

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := additive[p.peek().kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *parser) term() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := multiplicative[p.peek().kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *parser) unary() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokMinus:
		p.next()
		if err := p.enter(t); err != nil {
			return nil, err
		}
		defer p.leave()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: OpNeg, Operand: operand}, nil
	case tokPlus:
		return nil, &UnsupportedOperatorError{Pos: t.pos, Op: "unary +"}
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokDoubleStar {
		return base, nil
	}
	t := p.next()
	if err := p.enter(t); err != nil {
		return nil, err
	}
	defer p.leave()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: OpPow, Left: base, Right: exp}, nil
}

func (p *parser) atom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &NumberLit{Value: t.value}, nil
	case tokLParen:
		if err := p.enter(t); err != nil {
			return nil, err
		}
		defer p.leave()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, unexpected(closing)
		}
		return e, nil
	}
	return nil, unexpected(t)
}

func unexpected(t token) error {
	return &UnsafeExpressionError{Pos: t.pos, Reason: fmt.Sprintf("unexpected %s", t.kind)}
}
