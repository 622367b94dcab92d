package engine

import "math/big"

// node is an evaluable expression tree element.
type node interface {
	eval(ctx *evalContext) (*big.Float, error)
}

type numberNode struct {
	text string
}

type constNode struct {
	name string
}

type unaryNode struct {
	negate  bool
	operand node
}

type binaryNode struct {
	op          tokenType
	left, right node
}

type percentNode struct {
	operand node
}

type callNode struct {
	fn   *function
	name string
	args []node
}

// parser is a recursive-descent parser over the grammar
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/" | "%") unary | implicit power | "%" }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | constant | name "(" expr { "," expr } ")" | "(" expr ")"
//
// "%" is modulo when an operand follows and percent (x/100) otherwise.
// Implicit multiplication applies when a factor is directly followed by a name or "(".
type parser struct {
	tokens []token
	pos    int
}

func parse(input string) (node, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokenEOF {
		return nil, errorf(KindSyntax, "unexpected %s at %d", tok.describe(), tok.pos)
	}

	return root, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}

	return tok
}

func (p *parser) expect(typ tokenType) error {
	if tok := p.next(); tok.typ != typ {
		return errorf(KindSyntax, "expected %s, found %s at %d", typ, tok.describe(), tok.pos)
	}

	return nil
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek().typ
		if op != tokenPlus && op != tokenMinus {
			return left, nil
		}
		p.next()

		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		switch tok.typ {
		case tokenStar, tokenSlash:
			p.next()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: tok.typ, left: left, right: right}
		case tokenPercent:
			p.next()
			if !p.startsOperand() {
				left = &percentNode{operand: left}
				continue
			}
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: tokenPercent, left: left, right: right}
		case tokenIdent, tokenLParen:
			right, err := p.power()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: tokenStar, left: left, right: right}
		default:
			return left, nil
		}
	}
}

// startsOperand reports whether the next token can begin a right-hand operand of "%".
func (p *parser) startsOperand() bool {
	switch p.peek().typ {
	case tokenNumber, tokenIdent, tokenLParen:
		return true
	default:
		return false
	}
}

func (p *parser) unary() (node, error) {
	switch p.peek().typ {
	case tokenMinus:
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &unaryNode{negate: true, operand: operand}, nil
	case tokenPlus:
		p.next()
		return p.unary()
	default:
		return p.power()
	}
}

func (p *parser) power() (node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().typ != tokenCaret {
		return base, nil
	}
	p.next()

	exponent, err := p.unary()
	if err != nil {
		return nil, err
	}

	return &binaryNode{op: tokenCaret, left: base, right: exponent}, nil
}

func (p *parser) primary() (node, error) {
	tok := p.next()

	switch tok.typ {
	case tokenNumber:
		return &numberNode{text: tok.text}, nil
	case tokenLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRParen); err != nil {
			return nil, err
		}

		return inner, nil
	case tokenIdent:
		return p.identifier(tok)
	default:
		return nil, errorf(KindSyntax, "unexpected %s at %d", tok.describe(), tok.pos)
	}
}

func (p *parser) identifier(tok token) (node, error) {
	if _, ok := lookupConstant(tok.text); ok {
		return &constNode{name: tok.text}, nil
	}

	fn, ok := functions[tok.text]
	if !ok {
		return nil, errorf(KindSyntax, "undefined symbol %q at %d", tok.text, tok.pos)
	}
	if err := p.expect(tokenLParen); err != nil {
		return nil, errorf(KindSyntax, "function %s requires parentheses at %d", tok.text, tok.pos)
	}

	var args []node
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.peek().typ != tokenComma {
			break
		}
		p.next()
	}
	if err := p.expect(tokenRParen); err != nil {
		return nil, err
	}

	if len(args) < fn.minArgs || len(args) > fn.maxArgs {
		return nil, errorf(KindSyntax, "%s expects %s, got %d at %d", tok.text, fn.arity(), len(args), tok.pos)
	}

	return &callNode{fn: fn, name: tok.text, args: args}, nil
}
