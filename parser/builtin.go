// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/lexer"
	"github.com/golangee/movesyntax/token"
)

// simpleBuiltins lists every builtin taking exactly the type actuals
// already parsed as its sole parameterization (no arity suffix, no
// mutability flag encoded in the name). Recognized by content match
// against a Name/NameBeginTy token, mirroring how primitive type names
// are recognized -- see DESIGN.md for why these are not distinct lexer
// tokens.
var simpleBuiltins = map[string]bool{
	"exists": true, "borrow_global": true, "borrow_global_mut": true,
	"move_from": true, "move_to": true, "freeze": true,
	"vec_len": true, "vec_imm_borrow": true, "vec_mut_borrow": true,
	"vec_push_back": true, "vec_pop_back": true, "vec_swap": true,
}

// tryParseBuiltin recognizes a call to one of the fixed set of built-in
// operations by name. It reports ok=false (with a nil error) if name does
// not name a builtin, letting the caller fall back to treating it as an
// ordinary identifier.
func (p *Parser) tryParseBuiltin(start uint32, name string) (ast.Exp, bool, error) {
	if toKind, ok := toUSuffix(name); ok {
		return p.finishBuiltinCall(start, name, func(loc token.Loc, actuals []ast.Type) (ast.Builtin, error) {
			return ast.NewToUBuiltin(loc, toKind), nil
		})
	}

	if n, ok, isPack := vecPackArity(name); ok {
		return p.finishBuiltinCall(start, name, func(loc token.Loc, actuals []ast.Type) (ast.Builtin, error) {
			if isPack {
				return ast.NewVecPackBuiltin(loc, actuals, n), nil
			}

			return ast.NewVecUnpackBuiltin(loc, actuals, n), nil
		})
	}

	if !simpleBuiltins[name] {
		return nil, false, nil
	}

	return p.finishBuiltinCall(start, name, func(loc token.Loc, actuals []ast.Type) (ast.Builtin, error) {
		return p.buildSimpleBuiltin(loc, name, actuals)
	})
}

// finishBuiltinCall consumes the NameBeginTy/Name token for name (if not
// already consumed), its type-actuals tail if there was a NameBeginTy,
// and the parenthesized argument list, then hands the parsed pieces to
// build.
func (p *Parser) finishBuiltinCall(start uint32, name string, build func(token.Loc, []ast.Type) (ast.Builtin, error)) (ast.Exp, bool, error) {
	hasActuals := p.peek() == lexer.NameBeginTy

	if err := p.advance(); err != nil {
		return nil, true, err
	}

	var actuals []ast.Type

	if hasActuals {
		var err error

		actuals, err = p.parseTypeActualsTail()
		if err != nil {
			return nil, true, err
		}
	}

	loc := p.since(start)

	b, err := build(loc, actuals)
	if err != nil {
		return nil, true, err
	}

	if !p.matchToken(lexer.LParen) {
		return nil, true, p.unexpected(lexer.LParen)
	}

	args, err := p.parseExprListExp()
	if err != nil {
		return nil, true, err
	}

	return ast.NewFunctionCallExp(p.since(start), ast.NewBuiltinCall(loc, b), args), true, nil
}

func (p *Parser) buildSimpleBuiltin(loc token.Loc, name string, actuals []ast.Type) (ast.Builtin, error) {
	structType, err := soleStructTypeActual(loc, actuals)

	switch name {
	case "exists":
		if err != nil {
			return nil, err
		}

		return ast.NewExistsBuiltin(loc, structType), nil
	case "borrow_global":
		if err != nil {
			return nil, err
		}

		return ast.NewBorrowGlobalBuiltin(loc, false, structType), nil
	case "borrow_global_mut":
		if err != nil {
			return nil, err
		}

		return ast.NewBorrowGlobalBuiltin(loc, true, structType), nil
	case "move_from":
		if err != nil {
			return nil, err
		}

		return ast.NewMoveFromBuiltin(loc, structType), nil
	case "move_to":
		if err != nil {
			return nil, err
		}

		return ast.NewMoveToBuiltin(loc, structType), nil
	case "freeze":
		return ast.NewFreezeBuiltin(loc), nil
	case "vec_len":
		return ast.NewVecLenBuiltin(loc, actuals), nil
	case "vec_imm_borrow":
		return ast.NewVecImmBorrowBuiltin(loc, actuals), nil
	case "vec_mut_borrow":
		return ast.NewVecMutBorrowBuiltin(loc, actuals), nil
	case "vec_push_back":
		return ast.NewVecPushBackBuiltin(loc, actuals), nil
	case "vec_pop_back":
		return ast.NewVecPopBackBuiltin(loc, actuals), nil
	case "vec_swap":
		return ast.NewVecSwapBuiltin(loc, actuals), nil
	default:
		return nil, token.NewInvalidTokenError(loc, "unknown builtin %q", name)
	}
}

func soleStructTypeActual(loc token.Loc, actuals []ast.Type) (ast.StructType, error) {
	if len(actuals) != 1 {
		return ast.StructType{}, token.NewUserError(loc, "expected exactly one type actual, got %d", len(actuals))
	}

	st, ok := actuals[0].(*ast.StructType)
	if !ok {
		return ast.StructType{}, token.NewUserError(loc, "expected a struct type actual")
	}

	return *st, nil
}

// toUSuffix matches "to_u8".."to_u256" exactly, reusing
// ast.NumericSuffixes so the same longest-match table governs both typed
// literal suffixes and these conversion builtins.
func toUSuffix(name string) (ast.PrimitiveKind, bool) {
	if !strings.HasPrefix(name, "to_u") {
		return 0, false
	}

	suffix := strings.TrimPrefix(name, "to_")

	for _, s := range ast.NumericSuffixes {
		if s.Suffix == suffix {
			return s.Kind, true
		}
	}

	return 0, false
}

// vecPackArity matches "vec_pack_N" / "vec_unpack_N" for a non-negative
// integer N, since these builtins carry their arity in the name rather
// than as a conventional argument.
func vecPackArity(name string) (uint64, bool, bool) {
	for _, prefix := range []struct {
		text   string
		isPack bool
	}{
		{"vec_pack_", true},
		{"vec_unpack_", false},
	} {
		if strings.HasPrefix(name, prefix.text) {
			n, err := strconv.ParseUint(strings.TrimPrefix(name, prefix.text), 10, 64)
			if err != nil {
				return 0, false, false
			}

			return n, true, prefix.isPack
		}
	}

	return 0, false, false
}

func decodeHexBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

func newHexDecodeError(loc token.Loc, text string) error {
	return token.NewInvalidTokenError(loc, "invalid byte string literal %q", text)
}
