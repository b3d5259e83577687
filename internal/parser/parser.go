// Package parser reads goat source text into a concrete syntax tree.
//
// Grammar, in the notation of PEG tools:
//
//	goat        = expr? EOI
//	expr        = operand (op operand)*
//	operand     = function | conditional | declaration | application
//	            | number | string | boolean | ident | "(" expr ")"
//	function    = "fun" "(" labels ")" "do" expr "done"
//	labels      = (label ("," label)*)?
//	label       = ident ("=" expr)?
//	application = ident "(" (expr ("," expr)*)? ")"
//	conditional = "if" expr "do" expr ("else" expr)? "done"
//	declaration = "let" ident "=" expr ("in" expr)?
//	boolean     = true_lit | false_lit
//	op          = "+" | "-" | "*" | "/" | "<" | "<=" | ">" | ">="
//
// Every expr is kept as a flat operand/operator sequence; operator
// precedence is resolved later by the tree builder.
package parser

import (
	"github.com/iley/goat/internal/cst"
	"github.com/iley/goat/internal/lexer"
	"github.com/iley/goat/internal/source"
)

const DefaultMaxDepth = 512

var operators = map[string]cst.Rule{
	"+":  cst.RulePlus,
	"-":  cst.RuleMinus,
	"*":  cst.RuleMultiply,
	"/":  cst.RuleDivide,
	"<":  cst.RuleLt,
	"<=": cst.RuleLte,
	">":  cst.RuleGt,
	">=": cst.RuleGte,
}

type Parser struct {
	lexer    *lexer.Lexer
	lexemes  []lexer.Lexeme
	pos      int
	depth    int
	maxDepth int
}

func New(lex *lexer.Lexer) *Parser {
	return &Parser{lexer: lex, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth limits how deeply expressions may nest. Deeper input is
// rejected with an error instead of being handed to recursive passes.
func (p *Parser) SetMaxDepth(depth int) {
	p.maxDepth = depth
}

// Parse is a shorthand for parsing a whole source with default settings.
func Parse(src *source.Source) (*cst.Node, error) {
	return New(lexer.New(src)).ParseProgram()
}

func (p *Parser) consume() (lexer.Lexeme, error) {
	lex, err := p.peek()
	if err != nil {
		return lexer.Lexeme{}, err
	}
	p.pos++
	return lex, nil
}

func (p *Parser) peek() (lexer.Lexeme, error) {
	if p.pos >= len(p.lexemes) {
		lex, err := p.lexer.Next()
		if err != nil {
			return lexer.Lexeme{}, err
		}
		p.lexemes = append(p.lexemes, lex)
	}
	return p.lexemes[p.pos], nil
}

func (p *Parser) errorf(lex lexer.Lexeme, format string, args ...any) error {
	return source.Errorf(lex.Span.Pos(), format, args...)
}

func (p *Parser) expectKeyword(kw string) (lexer.Lexeme, error) {
	lex, err := p.consume()
	if err != nil {
		return lex, err
	}
	if !lex.IsKeyword(kw) {
		return lex, p.errorf(lex, "expected '%s', got %v", kw, lex)
	}
	return lex, nil
}

func (p *Parser) expectPunctuation(pv string) (lexer.Lexeme, error) {
	lex, err := p.consume()
	if err != nil {
		return lex, err
	}
	if !lex.IsPunctuation(pv) {
		return lex, p.errorf(lex, "expected '%s', got %v", pv, lex)
	}
	return lex, nil
}

func (p *Parser) expectOperator(op string) (lexer.Lexeme, error) {
	lex, err := p.consume()
	if err != nil {
		return lex, err
	}
	if !lex.IsOperator(op) {
		return lex, p.errorf(lex, "expected '%s', got %v", op, lex)
	}
	return lex, nil
}

// ParseProgram parses the whole input into a goat node whose children are
// the optional top-level expression followed by EOI.
func (p *Parser) ParseProgram() (*cst.Node, error) {
	src := p.lexer.Source()
	whole := src.Span(0, len(src.Text))
	children := []*cst.Node{}

	lex, err := p.peek()
	if err != nil {
		return nil, err
	}
	if lex.Type != lexer.LEX_EOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, expr)
	}

	lex, err = p.consume()
	if err != nil {
		return nil, err
	}
	if lex.Type != lexer.LEX_EOF {
		return nil, p.errorf(lex, "expected end of input, got %v", lex)
	}
	children = append(children, cst.New(cst.RuleEOI, src.Span(len(src.Text), len(src.Text))))

	return cst.New(cst.RuleGoat, whole, children...), nil
}

func (p *Parser) parseExpr() (*cst.Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		lex, _ := p.peek()
		return nil, p.errorf(lex, "expression nested too deeply (limit %d)", p.maxDepth)
	}

	first, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	children := []*cst.Node{first}
	for {
		lex, err := p.peek()
		if err != nil {
			return nil, err
		}
		rule, ok := operators[lex.Str]
		if lex.Type != lexer.LEX_OPERATOR || !ok {
			break
		}
		p.consume()
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		children = append(children, cst.New(rule, lex.Span), operand)
	}

	last := children[len(children)-1]
	return cst.New(cst.RuleExpr, first.Span.Join(last.Span), children...), nil
}

func (p *Parser) parseOperand() (*cst.Node, error) {
	lex, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case lex.IsKeyword("fun"):
		return p.parseFunction()
	case lex.IsKeyword("if"):
		return p.parseConditional()
	case lex.IsKeyword("let"):
		return p.parseDeclaration()
	case lex.IsKeyword("true"):
		p.consume()
		return cst.New(cst.RuleBoolean, lex.Span, cst.New(cst.RuleTrue, lex.Span)), nil
	case lex.IsKeyword("false"):
		p.consume()
		return cst.New(cst.RuleBoolean, lex.Span, cst.New(cst.RuleFalse, lex.Span)), nil
	case lex.Type == lexer.LEX_NUMBER:
		p.consume()
		return cst.New(cst.RuleNumber, lex.Span), nil
	case lex.Type == lexer.LEX_STRING:
		p.consume()
		return cst.New(cst.RuleString, lex.Span), nil
	case lex.Type == lexer.LEX_IDENT:
		return p.parseIdentOrApplication()
	case lex.IsPunctuation("("):
		p.consume()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunctuation(")"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorf(lex, "expected expression, got %v", lex)
}

func (p *Parser) parseIdent() (*cst.Node, error) {
	lex, err := p.consume()
	if err != nil {
		return nil, err
	}
	if lex.Type != lexer.LEX_IDENT {
		return nil, p.errorf(lex, "expected identifier, got %v", lex)
	}
	return cst.New(cst.RuleIdent, lex.Span), nil
}

func (p *Parser) parseIdentOrApplication() (*cst.Node, error) {
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	lex, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !lex.IsPunctuation("(") {
		return ident, nil
	}
	p.consume()

	children := []*cst.Node{ident}
	lex, err = p.peek()
	if err != nil {
		return nil, err
	}
	if !lex.IsPunctuation(")") {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			children = append(children, arg)
			lex, err = p.consume()
			if err != nil {
				return nil, err
			}
			if lex.IsPunctuation(")") {
				break
			}
			if !lex.IsPunctuation(",") {
				return nil, p.errorf(lex, "expected ',' or ')', got %v", lex)
			}
		}
	} else {
		p.consume()
	}

	return cst.New(cst.RuleApplication, ident.Span.Join(lex.Span), children...), nil
}

func (p *Parser) parseFunction() (*cst.Node, error) {
	start, err := p.expectKeyword("fun")
	if err != nil {
		return nil, err
	}
	open, err := p.expectPunctuation("(")
	if err != nil {
		return nil, err
	}

	labels := []*cst.Node{}
	lex, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !lex.IsPunctuation(")") {
		for {
			label, err := p.parseLabel()
			if err != nil {
				return nil, err
			}
			labels = append(labels, label)
			lex, err = p.peek()
			if err != nil {
				return nil, err
			}
			if !lex.IsPunctuation(",") {
				break
			}
			p.consume()
		}
	}
	closing, err := p.expectPunctuation(")")
	if err != nil {
		return nil, err
	}
	src := p.lexer.Source()
	labelsNode := cst.New(cst.RuleLabels, src.Span(open.Span.End(), closing.Span.Start()), labels...)

	if _, err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expectKeyword("done")
	if err != nil {
		return nil, err
	}

	return cst.New(cst.RuleFunction, start.Span.Join(end.Span), labelsNode, body), nil
}

func (p *Parser) parseLabel() (*cst.Node, error) {
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	lex, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !lex.IsOperator("=") {
		return cst.New(cst.RuleLabel, ident.Span, ident), nil
	}
	p.consume()
	def, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return cst.New(cst.RuleLabel, ident.Span.Join(def.Span), ident, def), nil
}

func (p *Parser) parseConditional() (*cst.Node, error) {
	start, err := p.expectKeyword("if")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	children := []*cst.Node{cond, then}

	lex, err := p.peek()
	if err != nil {
		return nil, err
	}
	if lex.IsKeyword("else") {
		p.consume()
		els, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, els)
	}

	end, err := p.expectKeyword("done")
	if err != nil {
		return nil, err
	}
	return cst.New(cst.RuleConditional, start.Span.Join(end.Span), children...), nil
}

func (p *Parser) parseDeclaration() (*cst.Node, error) {
	start, err := p.expectKeyword("let")
	if err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator("="); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	children := []*cst.Node{ident, body}

	lex, err := p.peek()
	if err != nil {
		return nil, err
	}
	if lex.IsKeyword("in") {
		p.consume()
		rest, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, rest)
	}

	last := children[len(children)-1]
	return cst.New(cst.RuleDeclaration, start.Span.Join(last.Span), children...), nil
}
