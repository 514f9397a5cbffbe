// Package parser builds the syntax tree (internal/ast) this module's core
// consumes, from the token stream internal/lexer produces. It is this
// module's own stand-in for the tree-sitter-style concrete parser the
// specification treats as an external collaborator: the core (rewriter,
// extractor, evaluator) only ever depends on the ast.Node shape, never on
// how it was produced.
//
// The parser buffers the whole token stream up front so that the
// handful of locally ambiguous TLA+ forms (record literal vs. set-of-records
// vs. EXCEPT, function literal vs. set-of-functions) can be disambiguated
// by speculative parsing with backtracking, the way a recursive-descent
// parser over an already-tokenized buffer typically resolves grammar
// ambiguities.
package parser

import (
	"fmt"

	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/lexer"
)

// Parser holds the full token buffer for one source unit and a cursor
// into it.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New tokenizes src completely and returns a Parser ready to parse it.
func New(src string) *Parser {
	l := lexer.New(src)
	var toks []lexer.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == lexer.EOF {
			break
		}
	}
	return &Parser{toks: toks}
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peek(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) mark() int        { return p.pos }
func (p *Parser) reset(m int)      { p.pos = m }

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, *ast.Node) {
	if p.cur().Type != tt {
		return lexer.Token{}, ast.ErrorNode(p.cur().Pos, fmt.Sprintf(
			"expected %s, got %s %q", tt, p.cur().Type, p.cur().Literal))
	}
	return p.advance(), nil
}

// ParseModule parses a complete TLA+ module, tolerating the optional
// "---- MODULE Name ----" header and "====" footer real TLA+ files use.
func (p *Parser) ParseModule() *ast.Node {
	pos := p.cur().Pos
	p.skipDashRule()
	if p.at(lexer.IDENT) && p.cur().Literal == "MODULE" {
		p.advance()
		if p.at(lexer.IDENT) {
			p.advance()
		}
		p.skipDashRule()
	}

	var decls []*ast.Node
	for !p.at(lexer.EOF) && !p.isEqualsRule() {
		decl := p.parseTopLevel()
		if decl != nil {
			decls = append(decls, decl)
		}
	}
	return ast.New(ast.KModule, pos, decls...)
}

func (p *Parser) skipDashRule() {
	if p.at(lexer.MINUS) {
		for p.at(lexer.MINUS) {
			p.advance()
		}
	}
}

func (p *Parser) isEqualsRule() bool {
	return p.at(lexer.EQ) && p.peek(1).Type == lexer.EQ
}

func (p *Parser) parseTopLevel() *ast.Node {
	switch {
	case p.at(lexer.EXTENDS):
		p.advance()
		for !p.at(lexer.EOF) && !p.isDeclStart() {
			p.advance()
		}
		return nil
	case p.at(lexer.CONSTANT) || p.at(lexer.CONSTANTS):
		pos := p.cur().Pos
		p.advance()
		names := p.parseIdentList()
		return ast.New(ast.KConstantDecl, pos, names...)
	case p.at(lexer.VARIABLE) || p.at(lexer.VARIABLES):
		pos := p.cur().Pos
		p.advance()
		names := p.parseIdentList()
		return ast.New(ast.KVariableDecl, pos, names...)
	case p.at(lexer.ASSUME):
		pos := p.cur().Pos
		p.advance()
		e := p.parseExpr()
		return ast.New(ast.KAssume, pos, e)
	case p.at(lexer.IDENT):
		return p.parseDefinition()
	default:
		// Unrecognized top-level token: skip it to avoid looping forever.
		p.advance()
		return nil
	}
}

// isDeclStart is used while skipping an EXTENDS list to find where the
// next real declaration begins.
func (p *Parser) isDeclStart() bool {
	switch p.cur().Type {
	case lexer.CONSTANT, lexer.CONSTANTS, lexer.VARIABLE, lexer.VARIABLES, lexer.ASSUME, lexer.EOF:
		return true
	case lexer.IDENT:
		return p.peek(1).Type == lexer.DEFEQ || p.peek(1).Type == lexer.LPAREN || p.peek(1).Type == lexer.LBRACK
	}
	return false
}

func (p *Parser) parseIdentList() []*ast.Node {
	var names []*ast.Node
	for {
		if !p.at(lexer.IDENT) {
			break
		}
		t := p.advance()
		names = append(names, ast.Leaf(ast.KIdent, t.Pos, t.Literal))
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return names
}

// parseDefinition parses `Name == Expr`, `Name(p1, p2) == Expr`, or the
// function-definition form `Name[x \in S] == Expr`.
func (p *Parser) parseDefinition() *ast.Node {
	pos := p.cur().Pos
	nameTok := p.advance()

	if p.at(lexer.LBRACK) {
		p.advance()
		binds := p.parseBindList()
		if _, errNode := p.expect(lexer.RBRACK); errNode != nil {
			return errNode
		}
		if _, errNode := p.expect(lexer.DEFEQ); errNode != nil {
			return errNode
		}
		body := p.parseExpr()
		name := ast.Leaf(ast.KIdent, nameTok.Pos, nameTok.Literal)
		children := append([]*ast.Node{name}, binds...)
		children = append(children, body)
		return ast.New(ast.KFuncDef, pos, children...)
	}

	var params []*ast.Node
	if p.at(lexer.LPAREN) {
		p.advance()
		params = p.parseIdentList()
		if _, errNode := p.expect(lexer.RPAREN); errNode != nil {
			return errNode
		}
	}
	if _, errNode := p.expect(lexer.DEFEQ); errNode != nil {
		return errNode
	}
	body := p.parseExpr()
	name := ast.Leaf(ast.KIdent, nameTok.Pos, nameTok.Literal)
	paramList := ast.New(ast.KParamList, pos, params...)
	return ast.New(ast.KOpDef, pos, name, paramList, body)
}

// ParseExpr parses a single standalone expression (used to evaluate
// constant-assignment expression text).
func (p *Parser) ParseExpr() *ast.Node {
	return p.parseExpr()
}
