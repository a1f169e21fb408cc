// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"math/big"

	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/lexer"
	"github.com/golangee/movesyntax/token"
)

// reservedWords and the other word tables below are deliberately small,
// plain Go maps rather than distinct lexer token kinds: the lexer hands
// back every word-like token as a single Name (or NameBeginTy/DotName)
// kind, and the parser tells them apart by matching on their exact text,
// the same way it tells "u8" from "vector" apart as a PrimitiveType name.
var reservedWords = map[string]bool{
	"module": true, "script": true, "import": true, "as": true,
	"struct": true, "fun": true, "native": true, "public": true,
	"friend": true, "acquires": true, "return": true, "abort": true,
	"assert": true, "if": true, "else": true, "while": true, "loop": true,
	"break": true, "continue": true, "let": true, "spec": true,
	"invariant": true, "requires": true, "ensures": true, "aborts_if": true,
	"succeeds_if": true, "pragma": true, "old": true, "global_exists": true,
	"entry": true, "synthetic": true,
}

// isWord reports whether the current token is a plain Name whose content
// is exactly w. A NameBeginTy also counts -- a reserved word immediately
// followed by "<" with no whitespace (only "global_exists<...>" in
// practice) fuses the same way any other declared name does.
func (p *Parser) isWord(w string) bool {
	return (p.peek() == lexer.Name || p.peek() == lexer.NameBeginTy) && p.content() == w
}

// consumeWord consumes the current token if it is the word w, else
// reports an error naming w as the expectation. When w was fused into a
// NameBeginTy (see isWord), it is split the same way parseName splits one,
// leaving the "<" pending as its own token.
func (p *Parser) consumeWord(w string) (token.Loc, error) {
	if !p.isWord(w) {
		return token.Loc{}, token.NewInvalidTokenError(p.loc(), "unexpected %s, expected %q", describeCurrent(p), w)
	}

	if p.peek() == lexer.NameBeginTy {
		loc := token.NewLoc(p.lex.FileHash(), p.lex.StartLoc(), p.lex.StartLoc()+uint32(len(w)))

		p.lex.ReplaceToken(lexer.Name, uint32(len(w)))

		if err := p.advance(); err != nil {
			return token.Loc{}, err
		}

		return loc, nil
	}

	loc := p.loc()

	if err := p.advance(); err != nil {
		return token.Loc{}, err
	}

	return loc, nil
}

func describeCurrent(p *Parser) string {
	if p.peek() == lexer.Name {
		return p.content()
	}

	return p.peek().String()
}

// parseName consumes a plain identifier not claimed by any reserved
// word, returning it as an ast.Symbol. A declared name immediately
// followed by "<" with no whitespace -- "Coin<phantom T: store>",
// "value<T: store>(..." -- lexes as a single NameBeginTy token fusing
// the identifier with the angle bracket; parseName splits that token
// back into just the name via ReplaceToken, leaving the "<" to be
// rescanned as its own token for whoever parses the type-formal list.
func (p *Parser) parseName() (ast.Symbol, token.Loc, error) {
	if p.peek() == lexer.NameBeginTy {
		text := p.content()
		if reservedWords[text] {
			return ast.Symbol{}, token.Loc{}, p.unexpected(lexer.Name)
		}

		loc := token.NewLoc(p.lex.FileHash(), p.lex.StartLoc(), p.lex.StartLoc()+uint32(len(text)))

		p.lex.ReplaceToken(lexer.Name, uint32(len(text)))

		if err := p.advance(); err != nil {
			return ast.Symbol{}, token.Loc{}, err
		}

		return ast.Intern(text), loc, nil
	}

	if p.peek() != lexer.Name || reservedWords[p.content()] {
		return ast.Symbol{}, token.Loc{}, p.unexpected(lexer.Name)
	}

	text := p.content()
	loc := p.loc()

	if err := p.advance(); err != nil {
		return ast.Symbol{}, token.Loc{}, err
	}

	return ast.Intern(text), loc, nil
}

// parseAccountAddress parses an AccountAddressValue token (the lexer
// fuses "0x" + hex digits into one token already).
func (p *Parser) parseAccountAddress() (ast.AccountAddress, token.Loc, error) {
	text, loc, err := p.consumeToken(lexer.AccountAddressValue)
	if err != nil {
		return ast.AccountAddress{}, token.Loc{}, err
	}

	addr, err := ast.ParseAccountAddress(text)
	if err != nil {
		return ast.AccountAddress{}, token.Loc{}, token.NewUserError(loc, "%s", err)
	}

	return addr, loc, nil
}

// parseModuleIdent parses "Address.Name", which the lexer may have
// already fused into one DotName token (the common case, "0x1.M") or may
// have left as three tokens if spec mode was suppressing fusion.
func (p *Parser) parseModuleIdent() (ast.ModuleIdent, token.Loc, error) {
	start := p.lex.StartLoc()

	if p.peek() == lexer.DotName {
		text := p.content()
		loc := p.loc()

		dot := indexByte(text, '.')
		if dot < 0 {
			return ast.ModuleIdent{}, token.Loc{}, token.NewInvalidTokenError(loc, "malformed module identifier %q", text)
		}

		addrText := text[:dot]
		if len(addrText) > 2 && addrText[0] == '0' && (addrText[1] == 'x' || addrText[1] == 'X') {
			addrText = addrText[2:]
		}

		addr, err := ast.ParseAccountAddress(addrText)
		if err != nil {
			return ast.ModuleIdent{}, token.Loc{}, token.NewUserError(loc, "%s", err)
		}

		if err := p.advance(); err != nil {
			return ast.ModuleIdent{}, token.Loc{}, err
		}

		return ast.ModuleIdent{Address: addr, Name: ast.ModuleName(ast.Intern(text[dot+1:]))}, loc, nil
	}

	addr, _, err := p.parseAccountAddress()
	if err != nil {
		return ast.ModuleIdent{}, token.Loc{}, err
	}

	if _, _, err := p.consumeToken(lexer.Dot); err != nil {
		return ast.ModuleIdent{}, token.Loc{}, err
	}

	name, _, err := p.parseName()
	if err != nil {
		return ast.ModuleIdent{}, token.Loc{}, err
	}

	return ast.ModuleIdent{Address: addr, Name: ast.ModuleName(name)}, p.since(start), nil
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}

	return -1
}

// parseNumericLiteral splits a Num token's text into its digit run and an
// optional typed suffix, matched exactly against ast.NumericSuffixes
// (longest first) rather than by an ends_with check -- see DESIGN.md.
func (p *Parser) parseNumericLiteral() (ast.CopyableVal, token.Loc, error) {
	text, loc, err := p.consumeToken(lexer.Num)
	if err != nil {
		return nil, token.Loc{}, err
	}

	digits := text
	kind := ast.PrimU64

	for _, suf := range ast.NumericSuffixes {
		if len(text) > len(suf.Suffix) && text[len(text)-len(suf.Suffix):] == suf.Suffix {
			allDigitsBefore := true

			for i := 0; i < len(text)-len(suf.Suffix); i++ {
				if text[i] < '0' || text[i] > '9' {
					allDigitsBefore = false
					break
				}
			}

			if allDigitsBefore {
				digits = text[:len(text)-len(suf.Suffix)]
				kind = suf.Kind
				break
			}
		}
	}

	magnitude, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, token.Loc{}, token.NewInvalidTokenError(loc, "invalid numeric literal %q", text)
	}

	switch kind {
	case ast.PrimU8:
		if !magnitude.IsUint64() || magnitude.Uint64() > 0xff {
			return nil, token.Loc{}, token.NewUserError(loc, "literal %q out of range for u8", text)
		}

		return ast.NewU8Val(loc, uint8(magnitude.Uint64())), loc, nil
	case ast.PrimU16:
		if !magnitude.IsUint64() || magnitude.Uint64() > 0xffff {
			return nil, token.Loc{}, token.NewUserError(loc, "literal %q out of range for u16", text)
		}

		return ast.NewU16Val(loc, uint16(magnitude.Uint64())), loc, nil
	case ast.PrimU32:
		if !magnitude.IsUint64() || magnitude.Uint64() > 0xffffffff {
			return nil, token.Loc{}, token.NewUserError(loc, "literal %q out of range for u32", text)
		}

		return ast.NewU32Val(loc, uint32(magnitude.Uint64())), loc, nil
	case ast.PrimU128:
		limit := new(big.Int).Lsh(big.NewInt(1), 128)
		if magnitude.Cmp(limit) >= 0 {
			return nil, token.Loc{}, token.NewUserError(loc, "literal %q out of range for u128", text)
		}

		return ast.NewU128Val(loc, magnitude), loc, nil
	case ast.PrimU256:
		limit := new(big.Int).Lsh(big.NewInt(1), 256)
		if magnitude.Cmp(limit) >= 0 {
			return nil, token.Loc{}, token.NewUserError(loc, "literal %q out of range for u256", text)
		}

		return ast.NewU256Val(loc, magnitude), loc, nil
	default:
		if !magnitude.IsUint64() {
			return nil, token.Loc{}, token.NewUserError(loc, "literal %q out of range for u64", text)
		}

		return ast.NewU64Val(loc, magnitude.Uint64()), loc, nil
	}
}
