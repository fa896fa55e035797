package expr

import (
	"math"
	"strconv"
)

// MaxDepth bounds the nesting of parenthesised groups, function arguments and
// exponent chains.
const MaxDepth = 256

var constants = map[string]float64{
	"π": math.Pi,
	"e": math.E,
}

// functions maps the spelling accepted in input to the Call name.
var functions = map[string]string{
	"sin": "sin",
	"cos": "cos",
	"tan": "tan",
	"ln":  "ln",
	"log": "log",
	"√":   "sqrt",
}

// Evaluate parses src and computes its value.
func Evaluate(src string) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return n.Eval()
}

// Parse parses src into an expression tree. The error, if any, is a *SyntaxError.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	if toks[0].kind == tokenEOF {
		return nil, syntaxErrorf(0, "empty expression")
	}

	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, unexpected(tok)
	}

	return n, nil
}

type parser struct {
	toks  []token
	pos   int
	depth int
	// inBars is set while the operand of an absolute value is being parsed.
	inBars bool
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) error {
	if tok := p.next(); tok.kind != kind {
		return syntaxErrorf(tok.pos, "expected %s, found %s", kind, describe(tok))
	}
	return nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return syntaxErrorf(p.peek().pos, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}

	for isOp(p.peek(), "+", "-") {
		op := p.next().text
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) term() (Node, error) {
	left, err := p.power()
	if err != nil {
		return nil, err
	}

	for isOp(p.peek(), "*", "/") {
		op := p.next().text
		right, err := p.power()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) power() (Node, error) {
	base, err := p.unary()
	if err != nil {
		return nil, err
	}

	if !isOp(p.peek(), "^") {
		return base, nil
	}
	p.next()

	if err := p.enter(); err != nil {
		return nil, err
	}
	exp, err := p.power()
	p.leave()
	if err != nil {
		return nil, err
	}

	return &BinaryOp{Op: "^", Left: base, Right: exp}, nil
}

func (p *parser) unary() (Node, error) {
	if !isOp(p.peek(), "-") {
		return p.atom()
	}
	p.next()

	x, err := p.atom()
	if err != nil {
		return nil, err
	}

	return &Neg{X: x}, nil
}

func (p *parser) atom() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNum:
		return &Number{Value: tok.num}, nil

	case tokenIdent:
		if v, ok := constants[tok.text]; ok {
			return &Const{Name: tok.text, Value: v}, nil
		}

		name, ok := functions[tok.text]
		if !ok {
			return nil, syntaxErrorf(tok.pos, "unknown identifier %q", tok.text)
		}

		if p.peek().kind != tokenOpen {
			return nil, syntaxErrorf(tok.pos, "%s must be followed by (", tok.text)
		}
		p.next()

		arg, err := p.group(tokenClose)
		if err != nil {
			return nil, err
		}

		return &Call{Name: name, Arg: arg}, nil

	case tokenOpen:
		return p.group(tokenClose)

	case tokenBar:
		if p.inBars {
			return nil, syntaxErrorf(tok.pos, "nested absolute value bars are not supported")
		}

		p.inBars = true
		arg, err := p.group(tokenBar)
		if err != nil {
			return nil, err
		}
		p.inBars = false

		return &Call{Name: "abs", Arg: arg}, nil

	default:
		return nil, unexpected(tok)
	}
}

// group parses an expression terminated by a token of kind end.
func (p *parser) group(end tokenKind) (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	x, err := p.expr()
	if err != nil {
		return nil, err
	}

	if err := p.expect(end); err != nil {
		return nil, err
	}

	return x, nil
}

func isOp(tok token, ops ...string) bool {
	if tok.kind != tokenOp {
		return false
	}
	for _, op := range ops {
		if tok.text == op {
			return true
		}
	}
	return false
}

func unexpected(tok token) error {
	return syntaxErrorf(tok.pos, "unexpected %s", describe(tok))
}

func describe(tok token) string {
	switch tok.kind {
	case tokenEOF:
		return tok.kind.String()
	case tokenNum, tokenIdent, tokenOp:
		return tok.kind.String() + " " + strconv.Quote(tok.text)
	default:
		return strconv.Quote(tok.text)
	}
}
