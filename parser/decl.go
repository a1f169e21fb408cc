// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/lexer"
	"github.com/golangee/movesyntax/token"
)

// parseModule parses "module Addr.Name { ... }".
func (p *Parser) parseModule() (*ast.ModuleDefinition, error) {
	start := p.lex.StartLoc()

	if _, err := p.consumeWord("module"); err != nil {
		return nil, err
	}

	ident, identLoc, err := p.parseModuleIdent()
	if err != nil {
		return nil, err
	}

	if ident.Name.String() == ast.SelfModuleName {
		return nil, token.NewUserError(identLoc, "a module may not be named %q", ast.SelfModuleName)
	}

	if _, _, err := p.consumeToken(lexer.LBrace); err != nil {
		return nil, err
	}

	mod := &ast.ModuleDefinition{Address: ident.Address, Name: ident.Name}

	for !p.matchToken(lexer.RBrace) {
		switch {
		case p.isWord("import"):
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}

			mod.Imports = append(mod.Imports, *imp)

		case p.isWord("friend"):
			friend, err := p.parseFriend()
			if err != nil {
				return nil, err
			}

			mod.Friends = append(mod.Friends, friend)

		case p.isWord("synthetic"):
			syn, err := p.parseSynthetic()
			if err != nil {
				return nil, err
			}

			mod.Synthetics = append(mod.Synthetics, *syn)

		case p.isWord("spec"):
			specVar, block, target, err := p.parseModuleSpec()
			if err != nil {
				return nil, err
			}

			switch {
			case specVar != nil:
				mod.SpecVars = append(mod.SpecVars, *specVar)
			case target != "":
				idx := -1

				for i := range mod.Functions {
					if mod.Functions[i].Name.String() == target {
						idx = i
						break
					}
				}

				if idx < 0 {
					return nil, token.NewInvalidTokenError(block.Loc, "spec block names unknown function %q", target)
				}

				mod.Functions[idx].Specs = append(mod.Functions[idx].Specs, *block)
			default:
				mod.Specs = append(mod.Specs, *block)
			}

		// "native" alone is ambiguous between "native struct ..." and
		// "native fun ..." (and "native public fun ...", "native entry
		// fun ..."): a single token of lookahead past "native" tells
		// struct/resource from fun/public/entry before either parse is
		// committed to.
		case p.isWord("struct") || p.isWord("resource") ||
			(p.isWord("native") && (p.lookaheadIsWord("struct") || p.lookaheadIsWord("resource"))):
			sd, err := p.parseStructDefinition()
			if err != nil {
				return nil, err
			}

			mod.Structs = append(mod.Structs, *sd)

		case p.isWord("public") || p.isWord("entry") || p.isWord("fun") || p.isWord("native"):
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}

			mod.Functions = append(mod.Functions, *fn)

		default:
			return nil, p.unexpected(lexer.Name)
		}
	}

	if _, _, err := p.consumeToken(lexer.RBrace); err != nil {
		return nil, err
	}

	mod.Loc = p.since(start)

	return mod, nil
}

// parseScript parses "script { imports... fun main(...) { ... } }".
func (p *Parser) parseScript() (*ast.Script, error) {
	start := p.lex.StartLoc()

	if _, err := p.consumeWord("script"); err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.LBrace); err != nil {
		return nil, err
	}

	script := &ast.Script{}

	for p.isWord("import") {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}

		script.Imports = append(script.Imports, *imp)
	}

	fn, err := p.parseFunction()
	if err != nil {
		return nil, err
	}

	if fn.Name.String() != "main" {
		return nil, token.NewInvalidTokenError(fn.Loc, "a script's function must be named main, not %q", fn.Name.String())
	}

	script.Main = *fn

	if _, _, err := p.consumeToken(lexer.RBrace); err != nil {
		return nil, err
	}

	script.Loc = p.since(start)

	return script, nil
}

func (p *Parser) parseImport() (*ast.ImportDefinition, error) {
	start := p.lex.StartLoc()

	if _, err := p.consumeWord("import"); err != nil {
		return nil, err
	}

	ident, _, err := p.parseModuleIdent()
	if err != nil {
		return nil, err
	}

	var alias ast.ModuleName

	if p.isWord("as") {
		if _, err := p.consumeWord("as"); err != nil {
			return nil, err
		}

		name, nameLoc, err := p.parseName()
		if err != nil {
			return nil, err
		}

		if name.String() == ast.SelfModuleName {
			return nil, token.NewUserError(nameLoc, "%q may not be used as an import alias", ast.SelfModuleName)
		}

		alias = ast.ModuleName(name)
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return &ast.ImportDefinition{Loc: p.since(start), Ident: ident, Alias: alias}, nil
}

func (p *Parser) parseFriend() (ast.ModuleIdent, error) {
	if _, err := p.consumeWord("friend"); err != nil {
		return ast.ModuleIdent{}, err
	}

	ident, _, err := p.parseModuleIdent()
	if err != nil {
		return ast.ModuleIdent{}, err
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return ast.ModuleIdent{}, err
	}

	return ident, nil
}

// parseAbilities parses a "has copy, drop, store, key" clause, rejecting
// a repeated ability at the location it reappears.
func (p *Parser) parseAbilities() (ast.AbilitySet, error) {
	var set ast.AbilitySet

	if !p.isWord("has") {
		return set, nil
	}

	if _, err := p.consumeWord("has"); err != nil {
		return set, err
	}

	for {
		name, loc, err := p.parseName()
		if err != nil {
			return set, err
		}

		ability, ok := ast.AbilityFromName(name.String())
		if !ok {
			return set, token.NewUserError(loc, "unknown ability %q", name)
		}

		if err := set.Add(ability, loc); err != nil {
			return set, err
		}

		if !p.matchToken(lexer.Comma) {
			break
		}

		if _, _, err := p.consumeToken(lexer.Comma); err != nil {
			return set, err
		}
	}

	return set, nil
}

func (p *Parser) parseStructDefinition() (*ast.StructDefinition, error) {
	start := p.lex.StartLoc()

	native := false

	if p.isWord("native") {
		if _, err := p.consumeWord("native"); err != nil {
			return nil, err
		}

		native = true
	}

	// "resource" is accepted as an older spelling of "struct", matching the
	// original surface syntax this grammar was distilled from; it parses
	// exactly like "struct" and adds no ability of its own. "struct" is the
	// only spelling the distilled grammar documents.
	if p.isWord("resource") {
		if _, err := p.consumeWord("resource"); err != nil {
			return nil, err
		}
	} else if _, err := p.consumeWord("struct"); err != nil {
		return nil, err
	}

	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	formals, err := p.parseStructTypeFormals()
	if err != nil {
		return nil, err
	}

	abilities, err := p.parseAbilities()
	if err != nil {
		return nil, err
	}

	sd := &ast.StructDefinition{Name: ast.StructName(name), TypeFormals: formals, Abilities: abilities, Native: native}

	if native {
		if _, _, err := p.consumeToken(lexer.Semi); err != nil {
			return nil, err
		}

		sd.Loc = p.since(start)

		return sd, nil
	}

	if _, _, err := p.consumeToken(lexer.LBrace); err != nil {
		return nil, err
	}

	for !p.matchToken(lexer.RBrace) && !p.isWord("invariant") {
		field, err := p.parseFieldDecl()
		if err != nil {
			return nil, err
		}

		sd.Fields = append(sd.Fields, *field)

		if p.matchToken(lexer.Comma) {
			if _, _, err := p.consumeToken(lexer.Comma); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	for p.isWord("invariant") {
		inv, err := p.parseInvariant()
		if err != nil {
			return nil, err
		}

		sd.Invariants = append(sd.Invariants, *inv)

		if p.matchToken(lexer.Comma) {
			if _, _, err := p.consumeToken(lexer.Comma); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if _, _, err := p.consumeToken(lexer.RBrace); err != nil {
		return nil, err
	}

	sd.Loc = p.since(start)

	return sd, nil
}

// parseStructTypeFormals parses "<T: copy, phantom U: store>", type
// formals with per-formal optional "phantom" and an ability constraint
// list; function type formals have the same shape without "phantom".
func (p *Parser) parseStructTypeFormals() ([]ast.TypeFormal, error) {
	if p.peek() != lexer.NameBeginTy && p.peek() != lexer.Lt {
		return nil, nil
	}

	hasOpen := p.peek() == lexer.NameBeginTy

	var firstName string

	if hasOpen {
		firstName = p.content()
	}

	if hasOpen {
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else if _, _, err := p.consumeToken(lexer.Lt); err != nil {
		return nil, err
	}

	var formals []ast.TypeFormal

	first := true

	for {
		loc := p.here()

		phantom := false
		name := firstName

		if first && firstName != "" {
			first = false
		} else {
			if p.isWord("phantom") {
				if _, err := p.consumeWord("phantom"); err != nil {
					return nil, err
				}

				phantom = true
			}

			n, l, err := p.parseName()
			if err != nil {
				return nil, err
			}

			name = n.String()
			loc = l
		}

		var abilities ast.AbilitySet

		if p.matchToken(lexer.Colon) {
			if _, _, err := p.consumeToken(lexer.Colon); err != nil {
				return nil, err
			}

			for {
				abName, abLoc, err := p.parseName()
				if err != nil {
					return nil, err
				}

				ability, ok := ast.AbilityFromName(abName.String())
				if !ok {
					return nil, token.NewUserError(abLoc, "unknown ability %q", abName)
				}

				if err := abilities.Add(ability, abLoc); err != nil {
					return nil, err
				}

				if !p.matchToken(lexer.Plus) {
					break
				}

				if _, _, err := p.consumeToken(lexer.Plus); err != nil {
					return nil, err
				}
			}
		}

		formals = append(formals, ast.TypeFormal{Loc: loc, Var: ast.TypeVar(ast.Intern(name)), Phantom: phantom, Abilities: abilities})

		if !p.matchToken(lexer.Comma) {
			break
		}

		if _, _, err := p.consumeToken(lexer.Comma); err != nil {
			return nil, err
		}
	}

	p.adjustToken(lexer.Gt)

	if _, _, err := p.consumeToken(lexer.Gt); err != nil {
		return nil, err
	}

	return formals, nil
}

func (p *Parser) parseFieldDecl() (*ast.FieldDecl, error) {
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Colon); err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	return &ast.FieldDecl{Field: ast.Field(name), Type: t}, nil
}

// parseSynthetic parses "synthetic <field>: <type>;", a module-level
// specification-only pseudo-field. It runs in spec mode, in which the
// lexer never fuses a name and a following "."+identifier into a DotName.
func (p *Parser) parseSynthetic() (*ast.SyntheticDefinition, error) {
	start := p.lex.StartLoc()

	var (
		name ast.Field
		typ  ast.Type
	)

	err := p.withSpecMode(func() error {
		if _, err := p.consumeWord("synthetic"); err != nil {
			return err
		}

		n, _, err := p.parseName()
		if err != nil {
			return err
		}

		name = ast.Field(n)

		if _, _, err := p.consumeToken(lexer.Colon); err != nil {
			return err
		}

		typ, err = p.parseType()
		if err != nil {
			return err
		}

		_, _, err = p.consumeToken(lexer.Semi)

		return err
	})
	if err != nil {
		return nil, err
	}

	return &ast.SyntheticDefinition{Loc: p.since(start), Name: name, Type: typ}, nil
}

// parseInvariant parses "invariant[{modifier}] [target =] expr" (a single
// item of the invariant list inside a struct's closing brace, which is
// itself comma-separated -- see parseStructDefinition). The brace-
// delimited modifier is an arbitrary name, not a fixed keyword set, and
// the assignment-target form is detected by a single token of lookahead
// past a leading name: a name immediately followed by "=" is the target
// of an assignment-form invariant rather than the start of its
// expression.
func (p *Parser) parseInvariant() (*ast.Invariant, error) {
	start := p.lex.StartLoc()

	var (
		modifier ast.Symbol
		target   ast.Var
		e        ast.SpecExp
	)

	err := p.withSpecMode(func() error {
		if _, err := p.consumeWord("invariant"); err != nil {
			return err
		}

		if p.matchToken(lexer.LBrace) {
			if _, _, err := p.consumeToken(lexer.LBrace); err != nil {
				return err
			}

			name, _, err := p.parseName()
			if err != nil {
				return err
			}

			modifier = name

			if _, _, err := p.consumeToken(lexer.RBrace); err != nil {
				return err
			}
		}

		// A name immediately followed by "=" (and not by some other
		// token) is this invariant's assignment target; anything else
		// -- including a name that starts an ordinary spec expression
		// -- falls through to parseSpecImplExp below.
		if p.peek() == lexer.Name && !reservedWords[p.content()] {
			if look, lookErr := p.lex.Lookahead(); lookErr == nil && look == lexer.Eq {
				name, _, nameErr := p.parseName()
				if nameErr != nil {
					return nameErr
				}

				target = ast.Var(name)

				if _, _, eqErr := p.consumeToken(lexer.Eq); eqErr != nil {
					return eqErr
				}
			}
		}

		var expErr error
		e, expErr = p.parseSpecImplExp()

		return expErr
	})
	if err != nil {
		return nil, err
	}

	return &ast.Invariant{Loc: p.since(start), Modifier: modifier, Target: target, Exp: e}, nil
}

func (p *Parser) parseFunction() (*ast.Function, error) {
	start := p.lex.StartLoc()

	native := p.isWord("native")
	if native {
		if _, err := p.consumeWord("native"); err != nil {
			return nil, err
		}
	}

	vis := ast.VisibilityInternal

	if p.isWord("public") {
		if _, err := p.consumeWord("public"); err != nil {
			return nil, err
		}

		vis = ast.VisibilityPublic

		if p.matchToken(lexer.LParen) {
			if _, _, err := p.consumeToken(lexer.LParen); err != nil {
				return nil, err
			}

			switch {
			case p.isWord("script"):
				if _, err := p.consumeWord("script"); err != nil {
					return nil, err
				}

				vis = ast.VisibilityPublicScript
			case p.isWord("friend"):
				if _, err := p.consumeWord("friend"); err != nil {
					return nil, err
				}

				vis = ast.VisibilityPublicFriend
			default:
				return nil, p.unexpected(lexer.Name)
			}

			if _, _, err := p.consumeToken(lexer.RParen); err != nil {
				return nil, err
			}
		}
	}

	isEntry := false

	if p.isWord("entry") {
		if _, err := p.consumeWord("entry"); err != nil {
			return nil, err
		}

		isEntry = true
	}

	if _, err := p.consumeWord("fun"); err != nil {
		return nil, err
	}

	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	typeFormals, err := p.parseFunctionTypeFormals()
	if err != nil {
		return nil, err
	}

	args, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	var returns []ast.Type

	if p.matchToken(lexer.Colon) {
		if _, _, err := p.consumeToken(lexer.Colon); err != nil {
			return nil, err
		}

		returns, err = p.parseReturnTypes()
		if err != nil {
			return nil, err
		}
	}

	var acquires []ast.StructType

	if p.isWord("acquires") {
		if _, err := p.consumeWord("acquires"); err != nil {
			return nil, err
		}

		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}

			st, ok := t.(*ast.StructType)
			if !ok {
				return nil, token.NewUserError(t.Loc(), "acquires clause expects a struct type")
			}

			acquires = append(acquires, *st)

			if !p.matchToken(lexer.Comma) {
				break
			}

			if _, _, err := p.consumeToken(lexer.Comma); err != nil {
				return nil, err
			}
		}
	}

	fn := &ast.Function{
		Name:        ast.FunctionName(name),
		Visibility:  vis,
		IsEntry:     isEntry,
		TypeFormals: typeFormals,
		Args:        args,
		Returns:     returns,
		Acquires:    acquires,
		Native:      native,
	}

	for p.isWord("spec") {
		block, err := p.parseFunctionSpecBlock()
		if err != nil {
			return nil, err
		}

		fn.Specs = append(fn.Specs, *block)
	}

	if native {
		if _, _, err := p.consumeToken(lexer.Semi); err != nil {
			return nil, err
		}

		fn.Loc = p.since(start)

		return fn, nil
	}

	body, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}

	fn.Body = body
	fn.Loc = p.since(start)

	return fn, nil
}

// parseFunctionTypeFormals parses a function's "<T, U>" type-parameter
// list: bare names with an optional ability bound, no phantom modifier
// (phantom only makes sense on a struct's own formals).
func (p *Parser) parseFunctionTypeFormals() ([]ast.TypeFormal, error) {
	if p.peek() != lexer.NameBeginTy && p.peek() != lexer.Lt {
		return nil, nil
	}

	hasOpen := p.peek() == lexer.NameBeginTy

	var firstName string

	if hasOpen {
		firstName = p.content()
	}

	if hasOpen {
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else if _, _, err := p.consumeToken(lexer.Lt); err != nil {
		return nil, err
	}

	var formals []ast.TypeFormal

	name := firstName
	first := true

	for {
		loc := p.here()

		if first && firstName != "" {
			first = false
		} else {
			n, l, err := p.parseName()
			if err != nil {
				return nil, err
			}

			name = n.String()
			loc = l

			first = false
		}

		var abilities ast.AbilitySet

		if p.matchToken(lexer.Colon) {
			if _, _, err := p.consumeToken(lexer.Colon); err != nil {
				return nil, err
			}

			for {
				abName, abLoc, err := p.parseName()
				if err != nil {
					return nil, err
				}

				ability, ok := ast.AbilityFromName(abName.String())
				if !ok {
					return nil, token.NewUserError(abLoc, "unknown ability %q", abName)
				}

				if err := abilities.Add(ability, abLoc); err != nil {
					return nil, err
				}

				if !p.matchToken(lexer.Plus) {
					break
				}

				if _, _, err := p.consumeToken(lexer.Plus); err != nil {
					return nil, err
				}
			}
		}

		formals = append(formals, ast.TypeFormal{Loc: loc, Var: ast.TypeVar(ast.Intern(name)), Abilities: abilities})

		if !p.matchToken(lexer.Comma) {
			break
		}

		if _, _, err := p.consumeToken(lexer.Comma); err != nil {
			return nil, err
		}
	}

	p.adjustToken(lexer.Gt)

	if _, _, err := p.consumeToken(lexer.Gt); err != nil {
		return nil, err
	}

	return formals, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, _, err := p.consumeToken(lexer.LParen); err != nil {
		return nil, err
	}

	var params []ast.Param

	if !p.matchToken(lexer.RParen) {
		for {
			name, _, err := p.parseName()
			if err != nil {
				return nil, err
			}

			if _, _, err := p.consumeToken(lexer.Colon); err != nil {
				return nil, err
			}

			t, err := p.parseType()
			if err != nil {
				return nil, err
			}

			params = append(params, ast.Param{Var: ast.Var(name), Type: t})

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

	return params, nil
}

// parseReturnTypes parses either a single type or a parenthesized,
// comma-separated list of types.
func (p *Parser) parseReturnTypes() ([]ast.Type, error) {
	if !p.matchToken(lexer.LParen) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}

		return []ast.Type{t}, nil
	}

	if _, _, err := p.consumeToken(lexer.LParen); err != nil {
		return nil, err
	}

	var types []ast.Type

	if !p.matchToken(lexer.RParen) {
		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}

			types = append(types, t)

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

	return types, nil
}
