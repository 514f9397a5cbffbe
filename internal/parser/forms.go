package parser

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/lexer"
)

func (p *Parser) parseNameOrPattern() *ast.Node {
	if p.at(lexer.LANGLE) {
		pos := p.advance().Pos
		names := p.parseIdentList()
		if _, e := p.expect(lexer.RANGLE); e != nil {
			return e
		}
		return ast.New(ast.KTuple, pos, names...)
	}
	if !p.at(lexer.IDENT) {
		return ast.ErrorNode(p.cur().Pos, "expected identifier or tuple pattern")
	}
	t := p.advance()
	return ast.Leaf(ast.KIdent, t.Pos, t.Literal)
}

// tryParseQuantBind speculatively parses one `name \in domain` (or tuple
// pattern) binder, restoring the cursor and reporting failure instead of
// emitting an error node, so callers can try an alternative grammar rule.
func (p *Parser) tryParseQuantBind() (*ast.Node, bool) {
	m := p.mark()
	namePat := p.parseNameOrPattern()
	if namePat.Kind == ast.KError {
		p.reset(m)
		return nil, false
	}
	if !p.at(lexer.IN_OP) {
		p.reset(m)
		return nil, false
	}
	pos := p.advance().Pos
	domain := p.parseSetOp()
	if domain.Kind == ast.KError {
		p.reset(m)
		return nil, false
	}
	return ast.New(ast.KQuantBind, pos, namePat, domain), true
}

func (p *Parser) parseBindList() []*ast.Node {
	var binds []*ast.Node
	for {
		b, ok := p.tryParseQuantBind()
		if !ok {
			binds = append(binds, ast.ErrorNode(p.cur().Pos, "expected binder `name \\in domain`"))
			break
		}
		binds = append(binds, b)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return binds
}

// tryParseFuncLitBinds parses a comma-separated bind list followed by
// `|->`, consuming the arrow on success. It backtracks entirely on
// failure so the caller can try the set-of-functions reading instead.
func (p *Parser) tryParseFuncLitBinds() ([]*ast.Node, bool) {
	m := p.mark()
	var binds []*ast.Node
	for {
		b, ok := p.tryParseQuantBind()
		if !ok {
			p.reset(m)
			return nil, false
		}
		binds = append(binds, b)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.at(lexer.MAPSTO) {
		p.reset(m)
		return nil, false
	}
	p.advance()
	return binds, true
}

func (p *Parser) parseQuantifier(kind ast.Kind) *ast.Node {
	pos := p.advance().Pos
	binds := p.parseBindList()
	if _, e := p.expect(lexer.COLON); e != nil {
		return e
	}
	body := p.parseExpr()
	children := append(append([]*ast.Node{}, binds...), body)
	return ast.New(kind, pos, children...)
}

func (p *Parser) parseChoose() *ast.Node {
	pos := p.advance().Pos
	bind, ok := p.tryParseQuantBind()
	if !ok {
		return ast.ErrorNode(p.cur().Pos, "CHOOSE requires a bounded binder `name \\in domain`")
	}
	if _, e := p.expect(lexer.COLON); e != nil {
		return e
	}
	pred := p.parseExpr()
	return ast.New(ast.KChoose, pos, bind, pred)
}

func (p *Parser) parseIf() *ast.Node {
	pos := p.advance().Pos
	cond := p.parseExpr()
	if _, e := p.expect(lexer.THEN); e != nil {
		return e
	}
	then := p.parseExpr()
	if _, e := p.expect(lexer.ELSE); e != nil {
		return e
	}
	els := p.parseExpr()
	return ast.New(ast.KIf, pos, cond, then, els)
}

func (p *Parser) parseCaseArm() *ast.Node {
	if p.at(lexer.OTHER) {
		opos := p.advance().Pos
		if _, e := p.expect(lexer.ARROW); e != nil {
			return e
		}
		body := p.parseExpr()
		n := ast.New(ast.KCaseArm, opos, body)
		n.Text = "OTHER"
		return n
	}
	cond := p.parseExpr()
	if _, e := p.expect(lexer.ARROW); e != nil {
		return e
	}
	body := p.parseExpr()
	return ast.New(ast.KCaseArm, cond.Pos, cond, body)
}

func (p *Parser) parseCase() *ast.Node {
	pos := p.advance().Pos
	arms := []*ast.Node{p.parseCaseArm()}
	for p.at(lexer.CASEBAR) {
		p.advance()
		arms = append(arms, p.parseCaseArm())
	}
	return ast.New(ast.KCase, pos, arms...)
}

func (p *Parser) parseLet() *ast.Node {
	pos := p.advance().Pos
	var defs []*ast.Node
	for p.at(lexer.IDENT) {
		defs = append(defs, p.parseDefinition())
	}
	if _, e := p.expect(lexer.IN); e != nil {
		return e
	}
	body := p.parseExpr()
	children := append(append([]*ast.Node{}, defs...), body)
	return ast.New(ast.KLet, pos, children...)
}

func (p *Parser) parseFieldList(sep lexer.TokenType) []*ast.Node {
	var out []*ast.Node
	for {
		if !p.at(lexer.IDENT) {
			break
		}
		nameTok := p.advance()
		if _, e := p.expect(sep); e != nil {
			out = append(out, e)
			break
		}
		val := p.parseExpr()
		out = append(out, ast.Leaf(ast.KString, nameTok.Pos, nameTok.Literal), val)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return out
}

func (p *Parser) parseExceptArms() []*ast.Node {
	var arms []*ast.Node
	for {
		bangTok, e := p.expect(lexer.BANG)
		if e != nil {
			arms = append(arms, e)
			break
		}
		pos := bangTok.Pos
		var path []*ast.Node
		for {
			if p.at(lexer.DOT) {
				p.advance()
				if !p.at(lexer.IDENT) {
					path = append(path, ast.ErrorNode(p.cur().Pos, "expected field after '.'"))
					break
				}
				f := p.advance()
				path = append(path, ast.Leaf(ast.KPathField, f.Pos, f.Literal))
				continue
			}
			if p.at(lexer.LBRACK) {
				p.advance()
				args := p.parseExprListUntil(lexer.RBRACK)
				p.expect(lexer.RBRACK)
				path = append(path, ast.New(ast.KPathIndex, pos, args...))
				continue
			}
			break
		}
		if _, e := p.expect(lexer.EQ); e != nil {
			arms = append(arms, e)
			break
		}
		rhs := p.parseExpr()
		children := append(append([]*ast.Node{}, path...), rhs)
		arms = append(arms, ast.New(ast.KExceptArm, pos, children...))
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return arms
}

// parseBracketExpr disambiguates the five TLA+ forms beginning with `[`:
// EXCEPT, function literal, set of functions, record literal and set of
// records, by speculative parsing with backtracking.
func (p *Parser) parseBracketExpr() *ast.Node {
	pos := p.advance().Pos
	m := p.mark()

	base := p.parseExpr()
	if base.Kind != ast.KError && p.at(lexer.EXCEPT) {
		p.advance()
		arms := p.parseExceptArms()
		if _, e := p.expect(lexer.RBRACK); e != nil {
			return e
		}
		children := append([]*ast.Node{base}, arms...)
		return ast.New(ast.KExcept, pos, children...)
	}
	p.reset(m)

	if binds, ok := p.tryParseFuncLitBinds(); ok {
		body := p.parseExpr()
		if _, e := p.expect(lexer.RBRACK); e != nil {
			return e
		}
		children := append(append([]*ast.Node{}, binds...), body)
		return ast.New(ast.KFuncLit, pos, children...)
	}
	p.reset(m)

	dom := p.parseExpr()
	if dom.Kind != ast.KError && p.at(lexer.ARROW) {
		p.advance()
		rng := p.parseExpr()
		if _, e := p.expect(lexer.RBRACK); e != nil {
			return e
		}
		return ast.New(ast.KSetOfFuncs, pos, dom, rng)
	}
	p.reset(m)

	if p.at(lexer.IDENT) && p.peek(1).Type == lexer.MAPSTO {
		fields := p.parseFieldList(lexer.MAPSTO)
		if _, e := p.expect(lexer.RBRACK); e != nil {
			return e
		}
		return ast.New(ast.KRecordLit, pos, fields...)
	}
	if p.at(lexer.IDENT) && p.peek(1).Type == lexer.COLON {
		fields := p.parseFieldList(lexer.COLON)
		if _, e := p.expect(lexer.RBRACK); e != nil {
			return e
		}
		return ast.New(ast.KSetOfRecords, pos, fields...)
	}
	return ast.ErrorNode(p.cur().Pos, "unrecognized bracket expression")
}

// parseBraceExpr disambiguates `{...}` set literal, set-filter
// comprehension (`{ v \in S : p }`) and set-map comprehension
// (`{ e : v1 \in S1, ... }`).
func (p *Parser) parseBraceExpr() *ast.Node {
	pos := p.advance().Pos
	if p.at(lexer.RBRACE) {
		p.advance()
		return ast.New(ast.KSetLit, pos)
	}

	m := p.mark()
	if bind, ok := p.tryParseQuantBind(); ok && p.at(lexer.COLON) {
		p.advance()
		pred := p.parseExpr()
		if _, e := p.expect(lexer.RBRACE); e != nil {
			return e
		}
		return ast.New(ast.KSetFilter, pos, bind, pred)
	}
	p.reset(m)

	first := p.parseExpr()
	if p.at(lexer.COLON) {
		p.advance()
		binds := p.parseBindList()
		if _, e := p.expect(lexer.RBRACE); e != nil {
			return e
		}
		children := append([]*ast.Node{first}, binds...)
		return ast.New(ast.KSetMap, pos, children...)
	}

	items := []*ast.Node{first}
	for p.at(lexer.COMMA) {
		p.advance()
		items = append(items, p.parseExpr())
	}
	if _, e := p.expect(lexer.RBRACE); e != nil {
		return e
	}
	return ast.New(ast.KSetLit, pos, items...)
}
