// Package parser implements the hand-written recursive-descent parser with
// two-level precedence climbing described in spec.md §4.2, grounded in
// general shape on the teacher's own recursive-descent parser idiom (one
// parseX per production, an expect/check helper pair) but built fresh for
// cx's much smaller grammar.
package parser

import (
	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/diag"
	"github.com/brendancron/cx/internal/token"
)

// Parser consumes a finite token slice (always EOF-terminated) and
// produces a Blueprint *ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New constructs a Parser over an already-lexed token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes nothing itself; it parses a token stream straight into a
// Blueprint *ast.Program. Errors are non-recoverable: parsing stops at the
// first one (spec.md §4.2).
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseProgram parses statement* until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.check(token.EOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) check(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// expect consumes the current token if it matches kind, otherwise raises
// UnexpectedToken (or UnexpectedEOF when the current token is EOF).
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.check(token.EOF) && kind != token.EOF {
		return token.Token{}, &diag.UnexpectedEOFError{Expected: kind.String(), Pos: p.cur().Pos}
	}
	if !p.check(kind) {
		return token.Token{}, &diag.UnexpectedTokenError{Found: p.cur().Kind.String(), Expected: kind.String(), Pos: p.cur().Pos}
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent() (token.Token, error) {
	return p.expect(token.IDENT)
}
