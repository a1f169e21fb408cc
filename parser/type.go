// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/lexer"
)

// parseType parses a single type expression: a primitive name, "vector<T>",
// a (possibly module-qualified) struct name with optional type actuals,
// "&T"/"&mut T", or a bare type-formal reference.
func (p *Parser) parseType() (ast.Type, error) {
	start := p.lex.StartLoc()

	switch {
	case p.matchToken(lexer.Amp):
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

		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}

		return ast.NewReferenceType(p.since(start), mutable, inner), nil

	case p.peek() == lexer.NameBeginTy && p.content() == "vector":
		if _, _, err := p.consumeToken(lexer.NameBeginTy); err != nil {
			return nil, err
		}

		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}

		p.adjustToken(lexer.Gt)

		if _, _, err := p.consumeToken(lexer.Gt); err != nil {
			return nil, err
		}

		return ast.NewVectorType(p.since(start), elem), nil

	case p.peek() == lexer.NameBeginTy:
		name := p.content()

		if err := p.advance(); err != nil {
			return nil, err
		}

		actuals, err := p.parseTypeActualsTail()
		if err != nil {
			return nil, err
		}

		return ast.NewStructType(p.since(start), ast.ModuleName{}, ast.StructName(ast.Intern(name)), actuals), nil

	case p.peek() == lexer.DotName:
		return p.parseQualifiedStructType(start)

	case p.peek() == lexer.Name:
		name := p.content()

		if kind, ok := ast.PrimitiveKindFromName(name); ok {
			loc := p.loc()

			if err := p.advance(); err != nil {
				return nil, err
			}

			return ast.NewPrimitiveType(loc, kind), nil
		}

		if reservedWords[name] {
			return nil, p.unexpected(lexer.Name)
		}

		loc := p.loc()

		if err := p.advance(); err != nil {
			return nil, err
		}

		// A bare name with no type actuals and no module qualifier is
		// either a type-formal reference or an unparameterized struct in
		// the current module; the parser cannot tell these apart without
		// a symbol table, so it always produces a TypeParameterType and
		// leaves disambiguation to a later resolution pass.
		return ast.NewTypeParameterType(loc, ast.TypeVar(ast.Intern(name))), nil

	default:
		return nil, p.unexpected(lexer.Amp, lexer.NameBeginTy, lexer.Name)
	}
}

// parseTypeActualsTail parses a "T, U, ...>" tail following a
// NameBeginTy/Lt that the caller has already consumed; at least one type
// actual is required. Every call site here is reached only once an
// opening "<" was seen.
func (p *Parser) parseTypeActualsTail() ([]ast.Type, error) {
	var actuals []ast.Type

	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}

		actuals = append(actuals, t)

		if p.matchToken(lexer.Comma) {
			if _, _, err := p.consumeToken(lexer.Comma); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	p.adjustToken(lexer.Gt)

	if _, _, err := p.consumeToken(lexer.Gt); err != nil {
		return nil, err
	}

	return actuals, nil
}

// parseQualifiedStructType handles "Module.Struct" and
// "Module.Struct<Actuals>". Outside spec mode the lexer fuses
// "Module.Struct" into one DotName token, which is what reaches this
// function (in spec mode no such token exists); any type actuals that follow remain as ordinary
// Lt/.../Gt tokens since the fusion only ever joins two components.
func (p *Parser) parseQualifiedStructType(start uint32) (ast.Type, error) {
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

	moduleName := ast.ModuleName(ast.Intern(module))

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

	return ast.NewStructType(p.since(start), moduleName, ast.StructName(ast.Intern(name)), actuals), nil
}
