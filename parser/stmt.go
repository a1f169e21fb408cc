// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/lexer"
	"github.com/golangee/movesyntax/token"
)

// parseFunctionBody parses the "{ ... }" labelled-block sequence that
// makes up a non-native function's body: zero or more blocks, each
// starting with "label: " followed by a straight-line run of statements.
func (p *Parser) parseFunctionBody() ([]ast.Block, error) {
	if _, _, err := p.consumeToken(lexer.LBrace); err != nil {
		return nil, err
	}

	if err := p.parseLocalDecls(); err != nil {
		return nil, err
	}

	var blocks []ast.Block

	for !p.matchToken(lexer.RBrace) {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, *block)
	}

	if _, _, err := p.consumeToken(lexer.RBrace); err != nil {
		return nil, err
	}

	return blocks, nil
}

// parseLocalDecls consumes the function body's leading "let x: T, y: U;"
// local-declaration line, if present. Locals carry no initializer here;
// they are assigned later by ordinary AssignStatements, matching the
// labelled-block stack-machine form's separation of declaration from
// first write.
func (p *Parser) parseLocalDecls() error {
	if !p.isWord("let") {
		return nil
	}

	if _, err := p.consumeWord("let"); err != nil {
		return err
	}

	for {
		if _, _, err := p.parseName(); err != nil {
			return err
		}

		if _, _, err := p.consumeToken(lexer.Colon); err != nil {
			return err
		}

		if _, err := p.parseType(); err != nil {
			return err
		}

		if !p.matchToken(lexer.Comma) {
			break
		}

		if _, _, err := p.consumeToken(lexer.Comma); err != nil {
			return err
		}
	}

	_, _, err := p.consumeToken(lexer.Semi)

	return err
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.lex.StartLoc()

	label, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Colon); err != nil {
		return nil, err
	}

	var stmts []ast.Statement

	for !p.matchToken(lexer.RBrace) && !p.peekStartsLabel() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return ast.NewBlock(p.since(start), ast.BlockLabel(label), stmts), nil
}

// peekStartsLabel reports whether the current token begins a new block
// label ("name:") rather than a statement, by looking one token ahead.
func (p *Parser) peekStartsLabel() bool {
	if p.peek() != lexer.Name || reservedWords[p.content()] {
		return false
	}

	next, err := p.lex.Lookahead()

	return err == nil && next == lexer.Colon
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	start := p.lex.StartLoc()

	switch {
	case p.isWord("abort"):
		return p.parseAbortStatement(start)
	case p.isWord("assert"):
		return p.parseAssertStatement(start)
	case p.isWord("jump_if_false"):
		return p.parseJumpStatement(start, jumpIfFalse)
	case p.isWord("jump_if"):
		return p.parseJumpStatement(start, jumpIf)
	case p.isWord("jump"):
		return p.parseJumpStatement(start, jumpPlain)
	case p.isWord("return"):
		return p.parseReturnStatement(start)
	default:
		return p.parseAssignOrExpStatement(start)
	}
}

func (p *Parser) parseAbortStatement(start uint32) (ast.Statement, error) {
	if _, err := p.consumeWord("abort"); err != nil {
		return nil, err
	}

	var code ast.Exp

	if !p.matchToken(lexer.Semi) {
		var err error

		code, err = p.parseExp()
		if err != nil {
			return nil, err
		}
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return ast.NewAbortStatement(p.since(start), code), nil
}

func (p *Parser) parseAssertStatement(start uint32) (ast.Statement, error) {
	if _, err := p.consumeWord("assert"); err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.LParen); err != nil {
		return nil, err
	}

	cond, err := p.parseExp()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Comma); err != nil {
		return nil, err
	}

	code, err := p.parseExp()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.RParen); err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return ast.NewAssertStatement(p.since(start), cond, code), nil
}

type jumpForm int

const (
	jumpPlain jumpForm = iota
	jumpIf
	jumpIfFalse
)

func (p *Parser) parseJumpStatement(start uint32, form jumpForm) (ast.Statement, error) {
	var cond ast.Exp

	switch form {
	case jumpIf:
		if _, err := p.consumeWord("jump_if"); err != nil {
			return nil, err
		}

		if _, _, err := p.consumeToken(lexer.LParen); err != nil {
			return nil, err
		}

		var err error

		cond, err = p.parseExp()
		if err != nil {
			return nil, err
		}

		if _, _, err := p.consumeToken(lexer.Comma); err != nil {
			return nil, err
		}
	case jumpIfFalse:
		if _, err := p.consumeWord("jump_if_false"); err != nil {
			return nil, err
		}

		if _, _, err := p.consumeToken(lexer.LParen); err != nil {
			return nil, err
		}

		var err error

		cond, err = p.parseExp()
		if err != nil {
			return nil, err
		}

		if _, _, err := p.consumeToken(lexer.Comma); err != nil {
			return nil, err
		}
	default:
		if _, err := p.consumeWord("jump"); err != nil {
			return nil, err
		}
	}

	label, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if form != jumpPlain {
		if _, _, err := p.consumeToken(lexer.RParen); err != nil {
			return nil, err
		}
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	loc := p.since(start)

	switch form {
	case jumpIf:
		return ast.NewJumpIfStatement(loc, cond, ast.BlockLabel(label)), nil
	case jumpIfFalse:
		return ast.NewJumpIfFalseStatement(loc, cond, ast.BlockLabel(label)), nil
	default:
		return ast.NewJumpStatement(loc, ast.BlockLabel(label)), nil
	}
}

func (p *Parser) parseReturnStatement(start uint32) (ast.Statement, error) {
	if _, err := p.consumeWord("return"); err != nil {
		return nil, err
	}

	var exps []ast.Exp

	if !p.matchToken(lexer.Semi) {
		for {
			e, err := p.parseExp()
			if err != nil {
				return nil, err
			}

			exps = append(exps, e)

			if !p.matchToken(lexer.Comma) {
				break
			}

			if _, _, err := p.consumeToken(lexer.Comma); err != nil {
				return nil, err
			}
		}
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return ast.NewReturnStatement(p.since(start), exps), nil
}

// parseAssignOrExpStatement parses a plain assignment ("lvalues = exp;"),
// an Unpack destructuring assignment, a mutate-through-reference
// assignment ("*e = exp;"), or a bare expression statement. Because the
// lexer offers only one token of lookahead, the three assignment forms
// are distinguished after the fact: an ordinary expression is parsed
// first, and if it turns out to be followed by "=" it is reinterpreted
// as the left-hand side of an assignment (a PackExp becomes an Unpack
// pattern, a DereferenceExp becomes a MutateLValue).
func (p *Parser) parseAssignOrExpStatement(start uint32) (ast.Statement, error) {
	if p.peek() == lexer.Name && !reservedWords[p.content()] {
		lookKind, err := p.lex.Lookahead()
		if err != nil {
			return nil, err
		}

		if lookKind == lexer.Comma {
			return p.parseAssignStatementFrom(start, nil)
		}
	}

	if p.isWord("_") {
		return p.parseAssignStatementFrom(start, nil)
	}

	e, err := p.parseExp()
	if err != nil {
		return nil, err
	}

	if !p.matchToken(lexer.Eq) {
		if _, _, err := p.consumeToken(lexer.Semi); err != nil {
			return nil, err
		}

		return ast.NewExpStatement(p.since(start), e), nil
	}

	switch v := e.(type) {
	case *ast.PackExp:
		return p.finishUnpackStatement(start, v)
	case *ast.DereferenceExp:
		return p.finishAssignStatement(start, []ast.LValue{ast.NewMutateLValue(v.Loc(), v.Exp)})
	case *ast.MoveExp:
		return p.finishAssignStatement(start, []ast.LValue{ast.NewVarLValue(v.Loc(), v.Var)})
	default:
		return nil, token.NewInvalidTokenError(e.Loc(), "invalid assignment target")
	}
}

// parseAssignStatementFrom parses an lvalue list (optionally already
// holding a first element) followed by "= exp;".
func (p *Parser) parseAssignStatementFrom(start uint32, first []ast.LValue) (ast.Statement, error) {
	lvalues := first

	for {
		if len(lvalues) > 0 {
			if _, _, err := p.consumeToken(lexer.Comma); err != nil {
				return nil, err
			}
		}

		lv, err := p.parseLValue()
		if err != nil {
			return nil, err
		}

		lvalues = append(lvalues, lv)

		if !p.matchToken(lexer.Comma) {
			break
		}
	}

	return p.finishAssignStatement(start, lvalues)
}

func (p *Parser) finishAssignStatement(start uint32, lvalues []ast.LValue) (ast.Statement, error) {
	if _, _, err := p.consumeToken(lexer.Eq); err != nil {
		return nil, err
	}

	e, err := p.parseExp()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return ast.NewAssignStatement(p.since(start), lvalues, e), nil
}

// finishUnpackStatement reinterprets an already-parsed PackExp as the
// binding pattern of an Unpack statement: every field's value expression
// must itself be a bare variable reference, since a statement-level
// Unpack binds fresh locals rather than evaluating arbitrary expressions.
func (p *Parser) finishUnpackStatement(start uint32, pack *ast.PackExp) (ast.Statement, error) {
	bindings := make([]ast.UnpackBinding, 0, len(pack.Fields))

	for _, f := range pack.Fields {
		mv, ok := f.Exp.(*ast.MoveExp)
		if !ok {
			return nil, token.NewInvalidTokenError(f.Exp.Loc(), "expected a variable name in unpack pattern")
		}

		bindings = append(bindings, ast.UnpackBinding{Field: f.Field, Var: mv.Var})
	}

	if _, _, err := p.consumeToken(lexer.Eq); err != nil {
		return nil, err
	}

	e, err := p.parseExp()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return ast.NewUnpackStatement(p.since(start), pack.Name, pack.Actuals, bindings, e), nil
}

func (p *Parser) parseLValue() (ast.LValue, error) {
	start := p.lex.StartLoc()

	if p.isWord("_") {
		if _, err := p.consumeWord("_"); err != nil {
			return nil, err
		}

		return ast.NewPopLValue(p.since(start)), nil
	}

	if p.matchToken(lexer.Star) {
		if _, _, err := p.consumeToken(lexer.Star); err != nil {
			return nil, err
		}

		e, err := p.parseUnaryExp()
		if err != nil {
			return nil, err
		}

		return ast.NewMutateLValue(p.since(start), e), nil
	}

	v, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	return ast.NewVarLValue(p.since(start), ast.Var(v)), nil
}
