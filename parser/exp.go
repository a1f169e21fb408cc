// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/lexer"
)

// binPrec gives each binary operator's precedence, high binds tighter.
// Unlisted kinds are not binary operators at all.
var binPrec = map[lexer.Kind]int{
	lexer.OrOr:    1,
	lexer.AndAnd:  2,
	lexer.EqEq:    3,
	lexer.NotEq:   3,
	lexer.Lt:      4,
	lexer.Gt:      4,
	lexer.Le:      4,
	lexer.Ge:      4,
	lexer.Pipe:    5,
	lexer.Caret:   6,
	lexer.Amp:     7,
	lexer.Shl:     8,
	lexer.Shr:     8,
	lexer.Plus:    9,
	lexer.Minus:   9,
	lexer.Star:    10,
	lexer.Slash:   10,
	lexer.Percent: 10,
}

var binOpForKind = map[lexer.Kind]ast.BinOp{
	lexer.OrOr:    ast.Or,
	lexer.AndAnd:  ast.And,
	lexer.EqEq:    ast.Eq,
	lexer.NotEq:   ast.Neq,
	lexer.Lt:      ast.Lt,
	lexer.Gt:      ast.Gt,
	lexer.Le:      ast.Le,
	lexer.Ge:      ast.Ge,
	lexer.Pipe:    ast.BitOr,
	lexer.Caret:   ast.Xor,
	lexer.Amp:     ast.BitAnd,
	lexer.Shl:     ast.Shl,
	lexer.Shr:     ast.Shr,
	lexer.Plus:    ast.Add,
	lexer.Minus:   ast.Sub,
	lexer.Star:    ast.Mul,
	lexer.Slash:   ast.Div,
	lexer.Percent: ast.Mod,
}

// parseExp parses a full expression via precedence climbing, starting at
// precedence 0 (every binary operator binds).
func (p *Parser) parseExp() (ast.Exp, error) {
	return p.parseBinExp(0)
}

func (p *Parser) parseBinExp(minPrec int) (ast.Exp, error) {
	start := p.lex.StartLoc()

	lhs, err := p.parseUnaryExp()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := binPrec[p.peek()]
		if !ok || prec < minPrec {
			return lhs, nil
		}

		opKind := p.peek()

		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.parseBinExp(prec + 1)
		if err != nil {
			return nil, err
		}

		lhs = ast.NewBinopExp(p.since(start), binOpForKind[opKind], lhs, rhs)
	}
}

func (p *Parser) parseUnaryExp() (ast.Exp, error) {
	start := p.lex.StartLoc()

	switch p.peek() {
	case lexer.Bang:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseUnaryExp()
		if err != nil {
			return nil, err
		}

		return ast.NewUnaryExp(p.since(start), ast.Not, inner), nil

	case lexer.Star:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseUnaryExp()
		if err != nil {
			return nil, err
		}

		return ast.NewDereferenceExp(p.since(start), inner), nil

	case lexer.Amp:
		return p.parseBorrowExp()

	default:
		return p.parsePostfixExp()
	}
}

func (p *Parser) parseBorrowExp() (ast.Exp, error) {
	start := p.lex.StartLoc()

	if _, _, err := p.consumeToken(lexer.Amp); err != nil {
		return nil, err
	}

	mutable := false
	if p.isWord("mut") {
		if _, err := p.consumeWord("mut"); err != nil {
			return nil, err
		}

		mutable = true
	}

	if p.peek() == lexer.Name && !reservedWords[p.content()] {
		nextLook, err := p.lex.Lookahead()
		if err != nil {
			return nil, err
		}

		if nextLook != lexer.Dot {
			name, _, err := p.parseName()
			if err != nil {
				return nil, err
			}

			return ast.NewBorrowLocalExp(p.since(start), mutable, ast.Var(name)), nil
		}
	}

	inner, err := p.parsePostfixExp()
	if err != nil {
		return nil, err
	}

	borrowExp, ok := inner.(*ast.BorrowExp)
	if ok {
		borrowExp.Mutable = mutable
		return borrowExp, nil
	}

	return inner, nil
}

// parsePostfixExp parses a primary expression followed by any number of
// ".field" projections, each wrapping the previous result in a BorrowExp
// (immutable by default; an enclosing "&mut" rewrites the outermost one).
func (p *Parser) parsePostfixExp() (ast.Exp, error) {
	start := p.lex.StartLoc()

	e, err := p.parsePrimaryExp()
	if err != nil {
		return nil, err
	}

	for p.matchToken(lexer.Dot) {
		if _, _, err := p.consumeToken(lexer.Dot); err != nil {
			return nil, err
		}

		field, _, err := p.parseName()
		if err != nil {
			return nil, err
		}

		e = ast.NewBorrowExp(p.since(start), false, e, ast.Field(field))
	}

	return e, nil
}

func (p *Parser) parsePrimaryExp() (ast.Exp, error) {
	start := p.lex.StartLoc()

	switch {
	case p.matchToken(lexer.LParen):
		return p.parseExprListExp()

	case p.matchToken(lexer.Num):
		v, loc, err := p.parseNumericLiteral()
		if err != nil {
			return nil, err
		}

		return ast.NewValueExp(loc, v), nil

	case p.matchToken(lexer.AccountAddressValue):
		v, loc, err := p.parseAccountAddress()
		if err != nil {
			return nil, err
		}

		return ast.NewValueExp(loc, ast.NewAddressVal(loc, v)), nil

	case p.matchToken(lexer.ByteArrayValue):
		text, loc, err := p.consumeToken(lexer.ByteArrayValue)
		if err != nil {
			return nil, err
		}

		bytes, err := decodeHexBytes(text)
		if err != nil {
			return nil, newHexDecodeError(loc, text)
		}

		return ast.NewValueExp(loc, ast.NewByteArrayVal(loc, bytes)), nil

	case p.isWord("true"):
		loc := p.loc()

		if err := p.advance(); err != nil {
			return nil, err
		}

		return ast.NewValueExp(loc, ast.NewBoolVal(loc, true)), nil

	case p.isWord("false"):
		loc := p.loc()

		if err := p.advance(); err != nil {
			return nil, err
		}

		return ast.NewValueExp(loc, ast.NewBoolVal(loc, false)), nil

	case p.isWord("move"):
		if _, err := p.consumeWord("move"); err != nil {
			return nil, err
		}

		paren := p.matchToken(lexer.LParen)
		if paren {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		v, _, err := p.parseName()
		if err != nil {
			return nil, err
		}

		if paren {
			if _, _, err := p.consumeToken(lexer.RParen); err != nil {
				return nil, err
			}
		}

		return ast.NewMoveExp(p.since(start), ast.Var(v)), nil

	case p.isWord("copy"):
		if _, err := p.consumeWord("copy"); err != nil {
			return nil, err
		}

		v, _, err := p.parseName()
		if err != nil {
			return nil, err
		}

		return ast.NewCopyExp(p.since(start), ast.Var(v)), nil

	case p.peek() == lexer.NameBeginTy, p.peek() == lexer.DotName:
		return p.parseCallOrPack(start)

	case p.peek() == lexer.Name:
		return p.parseCallOrPackOrVar(start)

	default:
		return nil, p.unexpected(lexer.LParen, lexer.Num, lexer.Name)
	}
}

func (p *Parser) parseExprListExp() (ast.Exp, error) {
	start := p.lex.StartLoc()

	if _, _, err := p.consumeToken(lexer.LParen); err != nil {
		return nil, err
	}

	var exps []ast.Exp

	if !p.matchToken(lexer.RParen) {
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

	if _, _, err := p.consumeToken(lexer.RParen); err != nil {
		return nil, err
	}

	if len(exps) == 1 {
		return exps[0], nil
	}

	return ast.NewExprListExp(p.since(start), exps), nil
}

// parseCallOrPack handles a reference that starts with a fused
// NameBeginTy or DotName token: a builtin call, a module-qualified
// function call, or a struct pack expression, all of which may carry
// type actuals.
func (p *Parser) parseCallOrPack(start uint32) (ast.Exp, error) {
	if p.peek() == lexer.NameBeginTy {
		name := p.content()

		if builtin, ok, err := p.tryParseBuiltin(start, name); ok {
			return builtin, err
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		actuals, err := p.parseTypeActualsTail()
		if err != nil {
			return nil, err
		}

		return p.finishCallOrPack(start, ast.ModuleName{}, name, actuals)
	}

	// DotName: "Module.name" possibly followed by "<actuals>".
	text := p.content()

	dot := indexByte(text, '.')
	if dot < 0 {
		return nil, p.unexpected(lexer.DotName)
	}

	module := text[:dot]
	name := text[dot+1:]

	if err := p.advance(); err != nil {
		return nil, err
	}

	var actuals []ast.Type

	if p.matchToken(lexer.Lt) {
		if _, _, err := p.consumeToken(lexer.Lt); err != nil {
			return nil, err
		}

		var err error

		actuals, err = p.parseTypeActualsTail()
		if err != nil {
			return nil, err
		}
	}

	return p.finishCallOrPack(start, ast.ModuleName(ast.Intern(module)), name, actuals)
}

func (p *Parser) parseCallOrPackOrVar(start uint32) (ast.Exp, error) {
	name := p.content()

	if builtin, ok, err := p.tryParseBuiltin(start, name); ok {
		return builtin, err
	}

	if reservedWords[name] {
		return nil, p.unexpected(lexer.Name)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return p.finishCallOrPack(start, ast.ModuleName{}, name, nil)
}

// finishCallOrPack disambiguates, by the token that follows, between a
// function call "(args)" and a struct pack "{ fields }"; a bare name with
// neither is a local variable reference.
func (p *Parser) finishCallOrPack(start uint32, module ast.ModuleName, name string, actuals []ast.Type) (ast.Exp, error) {
	switch {
	case p.matchToken(lexer.LParen):
		args, err := p.parseExprListExp()
		if err != nil {
			return nil, err
		}

		call := ast.NewModuleFunctionCall(p.since(start), module, ast.FunctionName(ast.Intern(name)), actuals)

		return ast.NewFunctionCallExp(p.since(start), call, args), nil

	case p.matchToken(lexer.LBrace):
		fields, err := p.parsePackFields()
		if err != nil {
			return nil, err
		}

		return ast.NewPackExp(p.since(start), ast.StructName(ast.Intern(name)), actuals, fields), nil

	default:
		if !module.IsEmpty() || len(actuals) > 0 {
			return nil, p.unexpected(lexer.LParen, lexer.LBrace)
		}

		return ast.NewMoveExp(p.since(start), ast.Var(ast.Intern(name))), nil
	}
}

func (p *Parser) parsePackFields() ([]ast.FieldExp, error) {
	if _, _, err := p.consumeToken(lexer.LBrace); err != nil {
		return nil, err
	}

	var fields []ast.FieldExp

	if !p.matchToken(lexer.RBrace) {
		for {
			name, _, err := p.parseName()
			if err != nil {
				return nil, err
			}

			if _, _, err := p.consumeToken(lexer.Colon); err != nil {
				return nil, err
			}

			e, err := p.parseExp()
			if err != nil {
				return nil, err
			}

			fields = append(fields, ast.FieldExp{Field: ast.Field(name), Exp: e})

			if !p.matchToken(lexer.Comma) {
				break
			}

			if _, _, err := p.consumeToken(lexer.Comma); err != nil {
				return nil, err
			}

			if p.matchToken(lexer.RBrace) {
				break
			}
		}
	}

	if _, _, err := p.consumeToken(lexer.RBrace); err != nil {
		return nil, err
	}

	return fields, nil
}
