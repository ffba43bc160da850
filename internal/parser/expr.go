package parser

import (
	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/diag"
	"github.com/brendancron/cx/internal/token"
)

// parseExpr implements `expr := term (('+'|'-'|'==') term)*`.
func (p *Parser) parseExpr() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) || p.check(token.EQ_EQ) {
		opTok := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left, nil
}

// parseTerm implements `term := factor (('*'|'/') factor)*`.
func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(token.STAR) || p.check(token.SLASH) {
		opTok := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left, nil
}

// parseFactor implements:
//
//	factor := literal | '(' expr ')' | 'typeof' '(' ident ')'
//	       |  'embed' '(' string ')' | ident callOrStructLiteral?
//	       |  '[' (expr (',' expr)*)? ']'
func (p *Parser) parseFactor() (ast.Expression, error) {
	switch p.cur().Kind {
	case token.INT:
		t := p.advance()
		return &ast.IntLiteral{Token: t, Value: t.IntValue}, nil
	case token.STRING:
		t := p.advance()
		return &ast.StringLiteral{Token: t, Value: t.Literal}, nil
	case token.TRUE:
		t := p.advance()
		return &ast.BoolLiteral{Token: t, Value: true}, nil
	case token.FALSE:
		t := p.advance()
		return &ast.BoolLiteral{Token: t, Value: false}, nil
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.TYPEOF:
		return p.parseTypeof()
	case token.EMBED:
		return p.parseEmbed()
	case token.LBRACK:
		return p.parseListLiteral()
	case token.IDENT:
		return p.parseIdentExpr()
	default:
		return nil, &diag.UnexpectedTokenError{Found: p.cur().Kind.String(), Expected: "expression", Pos: p.cur().Pos}
	}
}

func (p *Parser) parseTypeof() (ast.Expression, error) {
	tok := p.advance() // 'typeof'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	ident, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.TypeofExpr{Token: tok, Name: ident.Literal}, nil
}

func (p *Parser) parseEmbed() (ast.Expression, error) {
	tok := p.advance() // 'embed'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	str, err := p.expect(token.STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.EmbedExpr{Token: tok, Path: str.Literal}, nil
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	tok := p.advance() // '['
	var elems []ast.Expression
	for !p.check(token.RBRACK) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Token: tok, Elements: elems}, nil
}

// parseIdentExpr parses a bare identifier, a call `ident(args)`, or a
// struct literal `ident { field: expr, ... }`. Per spec.md §4.2's
// tie-break rule, seeing ident '{' in expression position greedily
// commits to struct-literal syntax.
func (p *Parser) parseIdentExpr() (ast.Expression, error) {
	identTok := p.advance()
	switch p.cur().Kind {
	case token.LPAREN:
		return p.parseCallArgs(identTok)
	case token.LBRACE:
		return p.parseStructLiteral(identTok)
	default:
		return &ast.Variable{Token: identTok, Name: identTok.Literal}, nil
	}
}

func (p *Parser) parseCallArgs(identTok token.Token) (ast.Expression, error) {
	p.advance() // '('
	var args []ast.Expression
	for !p.check(token.RPAREN) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Call{Token: identTok, Callee: identTok.Literal, Args: args}, nil
}

func (p *Parser) parseStructLiteral(identTok token.Token) (ast.Expression, error) {
	p.advance() // '{'
	var fields []ast.StructField
	for !p.check(token.RBRACE) {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructField{Name: name.Literal, Value: value})
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructLiteral{Token: identTok, TypeName: identTok.Literal, Fields: fields}, nil
}
