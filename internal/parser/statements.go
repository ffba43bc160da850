package parser

import (
	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/token"
)

func (p *Parser) parseStmt() (ast.Statement, error) {
	switch p.cur().Kind {
	case token.PRINT:
		return p.parsePrint()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.VAR:
		return p.parseVar()
	case token.FN:
		return p.parseFn(ast.Normal)
	case token.STRUCT:
		return p.parseStructDecl()
	case token.RETURN:
		return p.parseReturn()
	case token.GEN:
		return p.parseGen()
	case token.META:
		return p.parseMeta()
	case token.IMPORT:
		return p.parseImport()
	case token.LBRACE:
		return p.parseBlock()
	case token.IDENT:
		if p.peekIsAssignment() {
			return p.parseAssignment()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// peekIsAssignment reports whether the current IDENT begins a bare
// `name = expr;` assignment rather than an expression statement.
func (p *Parser) peekIsAssignment() bool {
	return p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Kind == token.EQ
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	tok := p.advance() // 'print'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Token: tok, Value: value}, nil
}

// parseIf implements `'if' '(' expr ')' '{' block '}' ('else' ('if' stmt |
// '{' stmt '}'))?`. else-if is recognised as a chained if statement with
// no intermediate braces required (spec.md §4.2).
func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.advance() // 'if'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Statement
	if p.check(token.ELSE) {
		p.advance()
		if p.check(token.IF) {
			elseStmt, err = p.parseIf()
		} else {
			elseStmt, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Token: tok, Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	tok := p.advance() // 'for'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	ident, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Token: tok, Var: ident.Literal, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseVar() (ast.Statement, error) {
	tok := p.advance() // 'var'
	ident, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQ); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Token: tok, Name: ident.Literal, Value: value}, nil
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	ident := p.advance() // name
	if _, err := p.expect(token.EQ); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: ident, Name: ident.Literal, Value: value}, nil
}

func (p *Parser) parseFn(funcType ast.FuncType) (ast.Statement, error) {
	tok := p.advance() // 'fn'
	ident, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FnDecl{Token: tok, Name: ident.Literal, FuncType: funcType, Params: params, Body: body}, nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	for !p.check(token.RPAREN) {
		ident, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: ident.Literal})
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return params, nil
}

// parseStructDecl implements `'struct' ident '{' (ident ':' type ';')*
// (ident ':' type)? '}'`.
func (p *Parser) parseStructDecl() (ast.Statement, error) {
	tok := p.advance() // 'struct'
	ident, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var fields []ast.StructFieldDecl
	for !p.check(token.RBRACE) {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typ, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructFieldDecl{Name: name.Literal, Type: typ.Literal})

		if p.check(token.SEMI) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructDecl{Token: tok, Name: ident.Literal, Fields: fields}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.advance() // 'return'
	if p.check(token.SEMI) {
		p.advance()
		return &ast.ReturnStmt{Token: tok}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Token: tok, Value: value}, nil
}

// parseGen implements `'gen' stmt`. When stmt is a Block, its inner
// statements become the Gen node's statement list directly instead of
// nesting a single-element Block inside Gen.
func (p *Parser) parseGen() (ast.Statement, error) {
	tok := p.advance() // 'gen'
	inner, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if blk, ok := inner.(*ast.Block); ok {
		return &ast.GenStmt{Token: tok, Stmts: blk.Statements}, nil
	}
	return &ast.GenStmt{Token: tok, Stmts: []ast.Statement{inner}}, nil
}

// parseMeta implements `'meta' ('fn' … | stmt)`; the fn variant tags
// FuncType=Meta (spec.md §4.2).
func (p *Parser) parseMeta() (ast.Statement, error) {
	tok := p.advance() // 'meta'
	if p.check(token.FN) {
		return p.parseFn(ast.Meta)
	}
	inner, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ast.MetaStmt{Token: tok, Inner: inner}, nil
}

func (p *Parser) parseImport() (ast.Statement, error) {
	tok := p.advance() // 'import'
	var modName string
	if p.check(token.STRING) {
		modName = p.advance().Literal
	} else {
		ident, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		modName = ident.Literal
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Token: tok, ModuleName: modName}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	tok, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.check(token.RBRACE) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Block{Token: tok, Statements: stmts}, nil
}

func (p *Parser) parseExprStmt() (ast.Statement, error) {
	tok := p.cur()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Token: tok, Expr: expr}, nil
}
