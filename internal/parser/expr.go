package parser

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/lexer"
)

func (p *Parser) parseExpr() *ast.Node {
	return p.parseIff()
}

func (p *Parser) parseIff() *ast.Node {
	left := p.parseImplies()
	if p.at(lexer.IFF) {
		pos := p.advance().Pos
		right := p.parseImplies()
		// a <=> b  ==  (a => b) /\ (b => a)
		return ast.New(ast.KConjList, pos,
			ast.New(ast.KImplies, pos, left, right),
			ast.New(ast.KImplies, pos, right, left))
	}
	return left
}

func (p *Parser) parseImplies() *ast.Node {
	left := p.parseOr()
	if p.at(lexer.IMPLIES) {
		pos := p.advance().Pos
		right := p.parseImplies() // right-associative
		return ast.New(ast.KImplies, pos, left, right)
	}
	return left
}

func (p *Parser) parseOr() *ast.Node  { return p.parseJunction(lexer.LOR, ast.KDisjList, p.parseAnd) }
func (p *Parser) parseAnd() *ast.Node { return p.parseJunction(lexer.LAND, ast.KConjList, p.parseNot) }

// parseJunction handles both inline ("A /\ B /\ C") and leading-operator
// ("/\ A  /\ B  /\ C") styles uniformly: a leading tt is optional, any
// number of further tt-separated operands follow.
func (p *Parser) parseJunction(tt lexer.TokenType, kind ast.Kind, operand func() *ast.Node) *ast.Node {
	pos := p.cur().Pos
	if p.at(tt) {
		p.advance()
	}
	first := operand()
	items := []*ast.Node{first}
	for p.at(tt) {
		p.advance()
		items = append(items, operand())
	}
	if len(items) == 1 {
		return items[0]
	}
	return ast.New(kind, pos, items...)
}

func (p *Parser) parseNot() *ast.Node {
	if p.at(lexer.LNOT) {
		pos := p.advance().Pos
		return ast.New(ast.KNot, pos, p.parseNot())
	}
	return p.parseRelational()
}

var relOps = map[lexer.TokenType]ast.Kind{
	lexer.EQ: ast.KEq, lexer.NEQ: ast.KNeq,
	lexer.LT: ast.KLt, lexer.LE: ast.KLe,
	lexer.GT: ast.KGt, lexer.GE: ast.KGe,
}

func (p *Parser) parseRelational() *ast.Node {
	left := p.parseSetOp()
	if kind, ok := relOps[p.cur().Type]; ok {
		pos := p.advance().Pos
		right := p.parseSetOp()
		return ast.New(kind, pos, left, right)
	}
	if p.at(lexer.IN_OP) || p.at(lexer.NOTIN) {
		neg := p.at(lexer.NOTIN)
		pos := p.advance().Pos
		right := p.parseSetOp()
		in := ast.New(ast.KIn, pos, left, right)
		if neg {
			return ast.New(ast.KNot, pos, in)
		}
		return in
	}
	return left
}

var setOps = map[lexer.TokenType]ast.Kind{
	lexer.CUP: ast.KUnion, lexer.CAP: ast.KIntersect,
	lexer.SETMINUS: ast.KSetMinus, lexer.TIMES: ast.KCartesian,
}

func (p *Parser) parseSetOp() *ast.Node {
	left := p.parseRange()
	for {
		kind, ok := setOps[p.cur().Type]
		if !ok {
			return left
		}
		pos := p.advance().Pos
		right := p.parseRange()
		left = ast.New(kind, pos, left, right)
	}
}

func (p *Parser) parseRange() *ast.Node {
	left := p.parseAdd()
	if p.at(lexer.DOTDOT) {
		pos := p.advance().Pos
		right := p.parseAdd()
		return ast.New(ast.KRange, pos, left, right)
	}
	return left
}

func (p *Parser) parseAdd() *ast.Node {
	left := p.parseMul()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) || p.at(lexer.CIRC) {
		op := p.advance()
		right := p.parseMul()
		kind := ast.KPlus
		switch op.Type {
		case lexer.MINUS:
			kind = ast.KMinus
		case lexer.CIRC:
			kind = ast.KConcat
		}
		left = ast.New(kind, op.Pos, left, right)
	}
	return left
}

func (p *Parser) parseMul() *ast.Node {
	left := p.parseUnary()
	for p.at(lexer.STAR) || p.at(lexer.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		kind := ast.KMul
		if op.Type == lexer.PERCENT {
			kind = ast.KMod
		}
		left = ast.New(kind, op.Pos, left, right)
	}
	return left
}

func (p *Parser) parseUnary() *ast.Node {
	switch p.cur().Type {
	case lexer.MINUS:
		pos := p.advance().Pos
		return ast.New(ast.KNeg, pos, p.parseUnary())
	case lexer.DOMAIN:
		pos := p.advance().Pos
		return ast.New(ast.KDomain, pos, p.parseUnary())
	case lexer.SUBSET:
		pos := p.advance().Pos
		return ast.New(ast.KPowerset, pos, p.parseUnary())
	case lexer.ENABLED:
		pos := p.advance().Pos
		return ast.New(ast.KEnabled, pos, p.parseUnary())
	case lexer.UNCHANGED:
		pos := p.advance().Pos
		return ast.New(ast.KUnchanged, pos, p.parseUnary())
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *ast.Node {
	node := p.parsePrimary()
	for {
		switch p.cur().Type {
		case lexer.PRIME:
			pos := p.advance().Pos
			node = ast.New(ast.KPrimed, pos, node)
		case lexer.DOT:
			pos := p.advance().Pos
			if !p.at(lexer.IDENT) {
				return ast.ErrorNode(p.cur().Pos, "expected field name after '.'")
			}
			field := p.advance()
			node = ast.New(ast.KFieldAccess, pos, node, ast.Leaf(ast.KString, field.Pos, field.Literal))
		case lexer.LBRACK:
			pos := p.advance().Pos
			args := p.parseExprListUntil(lexer.RBRACK)
			if _, errNode := p.expect(lexer.RBRACK); errNode != nil {
				return errNode
			}
			children := append([]*ast.Node{node}, args...)
			node = ast.New(ast.KApply, pos, children...)
		case lexer.LPAREN:
			pos := p.advance().Pos
			args := p.parseExprListUntil(lexer.RPAREN)
			if _, errNode := p.expect(lexer.RPAREN); errNode != nil {
				return errNode
			}
			children := append([]*ast.Node{node}, args...)
			node = ast.New(ast.KCall, pos, children...)
		case lexer.ATAT:
			pos := p.advance().Pos
			right := p.parsePostfix()
			node = ast.New(ast.KFuncMerge, pos, node, right)
		case lexer.COLONGT:
			pos := p.advance().Pos
			right := p.parsePostfix()
			node = ast.New(ast.KFuncPair, pos, node, right)
		default:
			return node
		}
	}
}

func (p *Parser) parseExprListUntil(end lexer.TokenType) []*ast.Node {
	var items []*ast.Node
	if p.at(end) {
		return items
	}
	items = append(items, p.parseExpr())
	for p.at(lexer.COMMA) {
		p.advance()
		items = append(items, p.parseExpr())
	}
	return items
}

func (p *Parser) parsePrimary() *ast.Node {
	t := p.cur()
	switch t.Type {
	case lexer.NUMBER:
		p.advance()
		return ast.Leaf(ast.KNumber, t.Pos, t.Literal)
	case lexer.STRING:
		p.advance()
		return ast.Leaf(ast.KString, t.Pos, t.Literal)
	case lexer.TRUE:
		p.advance()
		return ast.Leaf(ast.KBool, t.Pos, "TRUE")
	case lexer.FALSE:
		p.advance()
		return ast.Leaf(ast.KBool, t.Pos, "FALSE")
	case lexer.BOOLEANKW:
		p.advance()
		return ast.New(ast.KBooleanSet, t.Pos)
	case lexer.AT:
		p.advance()
		return ast.New(ast.KAt, t.Pos)
	case lexer.IDENT:
		p.advance()
		return ast.Leaf(ast.KIdent, t.Pos, t.Literal)
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr()
		if _, errNode := p.expect(lexer.RPAREN); errNode != nil {
			return errNode
		}
		return inner
	case lexer.LANGLE:
		p.advance()
		items := p.parseExprListUntil(lexer.RANGLE)
		if _, errNode := p.expect(lexer.RANGLE); errNode != nil {
			return errNode
		}
		return ast.New(ast.KTuple, t.Pos, items...)
	case lexer.LBRACE:
		return p.parseBraceExpr()
	case lexer.LBRACK:
		return p.parseBracketExpr()
	case lexer.FORALL:
		return p.parseQuantifier(ast.KForall)
	case lexer.EXISTS:
		return p.parseQuantifier(ast.KExists)
	case lexer.CHOOSE:
		return p.parseChoose()
	case lexer.IF:
		return p.parseIf()
	case lexer.CASE:
		return p.parseCase()
	case lexer.LET:
		return p.parseLet()
	default:
		p.advance()
		return ast.ErrorNode(t.Pos, "unexpected token "+t.Type.String())
	}
}
