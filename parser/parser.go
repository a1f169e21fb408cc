// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

// Package parser implements a hand-written recursive-descent parser for
// Move IR source text, built directly on top of package lexer. There is
// no intermediate parse tree and no error recovery: the first problem
// encountered aborts the parse and is returned to the caller.
package parser

import (
	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/lexer"
	"github.com/golangee/movesyntax/token"
)

// Parser wraps the lexer, which holds the current token, the single
// lookahead token a recursive-descent grammar needs, and the previous end
// position used to build Locs that span "from the start of this construct
// to just before the next one".
type Parser struct {
	lex *lexer.Lexer
}

func newParser(name, content string) *Parser {
	return &Parser{lex: lexer.New(name, content)}
}

// peek returns the current token's kind.
func (p *Parser) peek() lexer.Kind { return p.lex.Peek() }

// content returns the current token's text.
func (p *Parser) content() string { return p.lex.Content() }

// loc returns the current token's location.
func (p *Parser) loc() token.Loc { return p.lex.Loc() }

// here returns a zero-width Loc at the start of the current token, for
// constructs whose span isn't known until later fields are parsed.
func (p *Parser) here() token.Loc {
	return token.NewLoc(p.lex.FileHash(), p.lex.StartLoc(), p.lex.StartLoc())
}

// since returns a Loc spanning from start to just before the current
// token, i.e. up through whatever was most recently consumed.
func (p *Parser) since(start uint32) token.Loc {
	return token.NewLoc(p.lex.FileHash(), start, p.lex.PreviousEndLoc())
}

// advance moves to the next token, surfacing any lexical error as a
// parse error.
func (p *Parser) advance() error {
	return p.lex.Advance()
}

// matchToken reports whether the current token has the given kind,
// without consuming it.
func (p *Parser) matchToken(k lexer.Kind) bool {
	return p.peek() == k
}

// lookaheadIsWord reports whether the token following the current one is a
// plain Name or NameBeginTy whose content is exactly w, without consuming
// anything. Used for the one-token lookahead a bare reserved word (like
// "native") needs before committing to one of several following
// productions.
func (p *Parser) lookaheadIsWord(w string) bool {
	kind, err := p.lex.Lookahead()
	if err != nil || (kind != lexer.Name && kind != lexer.NameBeginTy) {
		return false
	}

	content, err := p.lex.LookaheadContent()

	return err == nil && content == w
}

// consumeToken consumes the current token if it has kind k, returning its
// text and start location. Otherwise it returns an InvalidToken error
// naming k as the sole expectation.
func (p *Parser) consumeToken(k lexer.Kind) (string, token.Loc, error) {
	return p.consumeTokenOneOf(k)
}

// consumeTokenOneOf consumes the current token if its kind is any of
// kinds, otherwise reports every kind in kinds as an expectation -- the
// same "X or Y" message shape as the rest of this family of tools.
func (p *Parser) consumeTokenOneOf(kinds ...lexer.Kind) (string, token.Loc, error) {
	cur := p.peek()

	for _, k := range kinds {
		if cur == k {
			text := p.content()
			loc := p.loc()

			if err := p.advance(); err != nil {
				return "", token.Loc{}, err
			}

			return text, loc, nil
		}
	}

	return "", token.Loc{}, p.unexpected(kinds...)
}

// unexpected builds the standard "unexpected X, expected Y or Z" error for
// the current token against the given set of acceptable kinds.
func (p *Parser) unexpected(kinds ...lexer.Kind) error {
	return token.NewInvalidTokenError(p.loc(), "unexpected %s, expected %s", p.peek(), joinKinds(kinds))
}

func joinKinds(kinds []lexer.Kind) string {
	if len(kinds) == 0 {
		return "nothing"
	}

	if len(kinds) == 1 {
		return kinds[0].String()
	}

	out := kinds[0].String()
	for i := 1; i < len(kinds)-1; i++ {
		out += ", " + kinds[i].String()
	}

	out += " or " + kinds[len(kinds)-1].String()

	return out
}

// adjustToken splits the current token when it was over-lexed as a Shr
// (">>") but the grammar position wants a single Gt (">"), e.g. closing
// two nested type-actual lists at once: "vector<vector<u8>>". It leaves
// any other current token untouched.
func (p *Parser) adjustToken(k lexer.Kind) {
	if p.peek() == lexer.Shr && k == lexer.Gt {
		p.lex.ReplaceToken(lexer.Gt, 1)
	}
}

// parseCommaList parses open, then zero-or-more comma-separated items
// via parseItem (each item may itself consume many tokens), then close.
// A trailing comma before close is accepted. allowEmpty controls whether
// an immediately-closed list is legal.
func parseCommaList[T any](p *Parser, open, close lexer.Kind, allowEmpty bool, parseItem func(*Parser) (T, error)) ([]T, error) {
	if _, _, err := p.consumeToken(open); err != nil {
		return nil, err
	}

	var items []T

	if p.matchToken(close) {
		if !allowEmpty {
			return nil, p.unexpected(close) // placeholder kind list; the list is empty, so no item was parsed
		}

		if _, _, err := p.consumeToken(close); err != nil {
			return nil, err
		}

		return items, nil
	}

	for {
		item, err := parseItem(p)
		if err != nil {
			return nil, err
		}

		items = append(items, item)

		if !p.matchToken(lexer.Comma) {
			break
		}

		if _, _, err := p.consumeToken(lexer.Comma); err != nil {
			return nil, err
		}

		if p.matchToken(close) {
			break
		}
	}

	if close == lexer.Gt {
		p.adjustToken(close)
	}

	if _, _, err := p.consumeToken(close); err != nil {
		return nil, err
	}

	return items, nil
}

// parseList parses zero-or-more occurrences of parseItem for as long as
// stop returns false for the current token, with no separator and no
// delimiters of its own.
func parseList[T any](p *Parser, stop func(*Parser) bool, parseItem func(*Parser) (T, error)) ([]T, error) {
	var items []T

	for !stop(p) {
		item, err := parseItem(p)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ParseModuleString parses content (named name, for diagnostics and the
// resulting Locs' file hash) as a single module definition.
func ParseModuleString(name, content string) (*ast.ModuleDefinition, error) {
	p := newParser(name, content)

	if err := p.advance(); err != nil {
		return nil, err
	}

	mod, err := p.parseModule()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.EOF); err != nil {
		return nil, err
	}

	return mod, nil
}

// ParseScriptString parses content as a single script.
func ParseScriptString(name, content string) (*ast.Script, error) {
	p := newParser(name, content)

	if err := p.advance(); err != nil {
		return nil, err
	}

	script, err := p.parseScript()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.EOF); err != nil {
		return nil, err
	}

	return script, nil
}

// ParseScriptOrModuleString parses content as whichever of the two unit
// kinds it turns out to be, determined by its leading keyword.
func ParseScriptOrModuleString(name, content string) (*ast.ScriptOrModule, error) {
	p := newParser(name, content)

	if err := p.advance(); err != nil {
		return nil, err
	}

	var result ast.ScriptOrModule

	switch {
	case p.isWord("module"):
		mod, err := p.parseModule()
		if err != nil {
			return nil, err
		}

		result.Module = mod
	case p.isWord("script"):
		script, err := p.parseScript()
		if err != nil {
			return nil, err
		}

		result.Script = script
	default:
		return nil, token.NewInvalidTokenError(p.loc(), `unexpected %s, expected "module" or "script"`, p.content())
	}

	if _, _, err := p.consumeToken(lexer.EOF); err != nil {
		return nil, err
	}

	return &result, nil
}
