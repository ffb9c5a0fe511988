package symbolic

import (
	"fmt"
	"math/big"
	"strings"
)

// Symtab interns variable names so an expression and the equation or
// limit variable resolved from the same request share identical Syms.
// The common algebra variables are pre-registered.
type Symtab struct {
	syms map[string]Sym
}

// NewSymtab returns a table with x, y and z pre-registered.
func NewSymtab() *Symtab {
	t := &Symtab{syms: make(map[string]Sym)}
	for _, name := range []string{"x", "y", "z"} {
		t.syms[name] = Sym{Name: name}
	}
	return t
}

// Intern returns the symbol for name, creating it on first use.
func (t *Symtab) Intern(name string) Sym {
	if s, ok := t.syms[name]; ok {
		return s
	}
	s := Sym{Name: name}
	t.syms[name] = s
	return s
}

// Lookup returns the symbol for name if it has been interned.
func (t *Symtab) Lookup(name string) (Sym, bool) {
	s, ok := t.syms[name]
	return s, ok
}

// Functions recognized by the parser and the evaluator.
var functions = map[string]bool{
	"sqrt": true,
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"exp":  true,
	"ln":   true,
	"log":  true,
	"abs":  true,
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case isDigit(ch) || ch == '.':
			start := i
			seenDot := false
			for i < len(input) && (isDigit(input[i]) || (input[i] == '.' && !seenDot)) {
				if input[i] == '.' {
					seenDot = true
				}
				i++
			}
			text := input[start:i]
			if text == "." {
				return nil, fmt.Errorf("stray '.' at position %d", start)
			}
			toks = append(toks, token{kind: tokNum, text: text, pos: start})
		case isAlpha(ch):
			start := i
			for i < len(input) && (isAlpha(input[i]) || isDigit(input[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: input[start:i], pos: start})
		case ch == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", pos: i})
			i++
		case ch == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", pos: i})
			i++
		case ch == '*':
			if i+1 < len(input) && input[i+1] == '*' {
				toks = append(toks, token{kind: tokCaret, text: "**", pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, text: "*", pos: i})
				i++
			}
		case ch == '/':
			toks = append(toks, token{kind: tokSlash, text: "/", pos: i})
			i++
		case ch == '^':
			toks = append(toks, token{kind: tokCaret, text: "^", pos: i})
			i++
		case ch == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", string(ch), i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

type parser struct {
	toks []token
	pos  int
	tab  *Symtab
}

// Parse reads an expression in conventional math notation. Both ^ and
// ** denote exponentiation, and adjacency works as multiplication, so
// "5x", "2(x+1)" and "x y" all parse. The result is a raw tree; call
// Simplify to canonicalize.
func Parse(input string, tab *Symtab) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("empty expression")
	}
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, tab: tab}
	e, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %s at position %d", t.describe(), t.pos)
	}
	return e, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// Binding strength: +,- (1) < *,/ and adjacency (2) < unary minus (3)
// < ^ (4, right-associative).
func (p *parser) parseExpr(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		prec := 0
		rightAssoc := false
		implicit := false
		switch t.kind {
		case tokPlus, tokMinus:
			prec = 1
		case tokStar, tokSlash:
			prec = 2
		case tokCaret:
			prec, rightAssoc = 4, true
		case tokNum, tokIdent, tokLParen:
			prec, implicit = 2, true
		default:
			return left, nil
		}
		if prec < minPrec {
			return left, nil
		}
		if !implicit {
			p.next()
		}
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, err := p.parseExpr(nextMin)
		if err != nil {
			return nil, err
		}
		switch {
		case t.kind == tokPlus:
			left = add(left, right)
		case t.kind == tokMinus:
			left = sub(left, right)
		case t.kind == tokSlash:
			left = div(left, right)
		case t.kind == tokCaret:
			left = pow(left, right)
		default:
			left = mul(left, right)
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().kind == tokMinus {
		p.next()
		operand, err := p.parseExpr(3)
		if err != nil {
			return nil, err
		}
		return neg(operand), nil
	}
	if p.peek().kind == tokPlus {
		p.next()
		return p.parseExpr(3)
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		text := t.text
		if strings.HasPrefix(text, ".") {
			text = "0" + text
		}
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			return nil, fmt.Errorf("invalid number %q at position %d", t.text, t.pos)
		}
		return Num{rat: r}, nil
	case tokIdent:
		if fn := strings.ToLower(t.text); functions[fn] && p.peek().kind == tokLParen {
			p.next()
			arg, err := p.parseExpr(1)
			if err != nil {
				return nil, err
			}
			if closing := p.next(); closing.kind != tokRParen {
				return nil, fmt.Errorf("expected ')' but found %s at position %d", closing.describe(), closing.pos)
			}
			if fn == "ln" {
				fn = "log"
			}
			return Call{Fn: fn, Arg: arg}, nil
		}
		return p.tab.Intern(t.text), nil
	case tokLParen:
		e, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("expected ')' but found %s at position %d", closing.describe(), closing.pos)
		}
		return e, nil
	}
	return nil, fmt.Errorf("unexpected %s at position %d", t.describe(), t.pos)
}
