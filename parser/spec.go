// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/lexer"
	"github.com/golangee/movesyntax/token"
)

// withSpecMode runs body with the lexer's spec mode set to true,
// restoring whatever it was before on every exit path. Spec mode
// suppresses the normal-mode DotName fusion so storage access paths like
// "x.f.g[i]" parse as a chain of plain Name/Dot tokens instead of being
// eagerly fused two components at a time.
func (p *Parser) withSpecMode(body func() error) error {
	prev := p.lex.SpecMode()
	p.lex.SetSpecMode(true)

	defer p.lex.SetSpecMode(prev)

	return body()
}

// parseModuleSpec parses one "spec { ... }", "spec module { ... }",
// "spec var ...;", or "spec <fun> { ... }" appearing directly inside a
// module body. Exactly one of the returned specVar/block is non-nil;
// target names the function a "spec <fun> { ... }" block attaches to and
// is empty for the bare/module-wide forms.
func (p *Parser) parseModuleSpec() (specVar *ast.SpecVar, block *ast.SpecBlock, target string, err error) {
	start := p.lex.StartLoc()

	if _, err := p.consumeWord("spec"); err != nil {
		return nil, nil, "", err
	}

	if p.isWord("var") {
		v, err := p.parseSpecVar(start)
		if err != nil {
			return nil, nil, "", err
		}

		return v, nil, "", nil
	}

	// "spec module { ... }" and a bare "spec { ... }" are both accepted as
	// a module-level spec block; the optional "module" keyword is pure
	// surface sugar with no semantic effect. "spec <fun> { ... }" instead
	// attaches its conditions to the already-declared function <fun>.
	switch {
	case p.isWord("module"):
		if _, err := p.consumeWord("module"); err != nil {
			return nil, nil, "", err
		}
	case p.peek() == lexer.Name && !reservedWords[p.content()]:
		target = p.content()

		if err := p.advance(); err != nil {
			return nil, nil, "", err
		}
	}

	b, err := p.parseSpecBlockBody(start)
	if err != nil {
		return nil, nil, "", err
	}

	return nil, b, target, nil
}

// parseSpecVar parses "spec var name<T1, T2>: Type;", the module-level
// ghost variable surface this grammar supplements beyond the distilled
// specification (see DESIGN.md).
func (p *Parser) parseSpecVar(start uint32) (*ast.SpecVar, error) {
	if _, err := p.consumeWord("var"); err != nil {
		return nil, err
	}

	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	formals, err := p.parseFunctionTypeFormals()
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

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return &ast.SpecVar{Loc: p.since(start), Name: ast.Var(name), TypeFormals: formals, Type: t}, nil
}

// parseFunctionSpecBlock parses a "spec { ... }" block attached directly
// after a function's signature (and, for a Native function, before its
// terminating ";").
func (p *Parser) parseFunctionSpecBlock() (*ast.SpecBlock, error) {
	start := p.lex.StartLoc()

	if _, err := p.consumeWord("spec"); err != nil {
		return nil, err
	}

	return p.parseSpecBlockBody(start)
}

func (p *Parser) parseSpecBlockBody(start uint32) (*ast.SpecBlock, error) {
	if _, _, err := p.consumeToken(lexer.LBrace); err != nil {
		return nil, err
	}

	block := &ast.SpecBlock{}

	for !p.matchToken(lexer.RBrace) {
		var cond *ast.Condition

		err := p.withSpecMode(func() error {
			var condErr error
			cond, condErr = p.parseCondition()
			return condErr
		})
		if err != nil {
			return nil, err
		}

		block.Conditions = append(block.Conditions, *cond)
	}

	if _, _, err := p.consumeToken(lexer.RBrace); err != nil {
		return nil, err
	}

	block.Loc = p.since(start)

	return block, nil
}

func (p *Parser) parseCondition() (*ast.Condition, error) {
	start := p.lex.StartLoc()

	var kind ast.ConditionKind

	switch {
	case p.isWord("requires"):
		if _, err := p.consumeWord("requires"); err != nil {
			return nil, err
		}

		kind = ast.ConditionRequires
	case p.isWord("ensures"):
		if _, err := p.consumeWord("ensures"); err != nil {
			return nil, err
		}

		kind = ast.ConditionEnsures
	case p.isWord("aborts_if"):
		if _, err := p.consumeWord("aborts_if"); err != nil {
			return nil, err
		}

		kind = ast.ConditionAbortsIf
	case p.isWord("succeeds_if"):
		if _, err := p.consumeWord("succeeds_if"); err != nil {
			return nil, err
		}

		kind = ast.ConditionSucceedsIf
	case p.isWord("pragma"):
		return p.parsePragma(start)
	default:
		return nil, p.unexpected(lexer.Name)
	}

	e, err := p.parseSpecExpTopLevel()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return &ast.Condition{Loc: p.since(start), Kind: kind, Exp: e}, nil
}

// parsePragma parses "pragma name = value;", a directive this grammar adds
// on its own account rather than one carried over from the original
// surface syntax (see DESIGN.md).
func (p *Parser) parsePragma(start uint32) (*ast.Condition, error) {
	if _, err := p.consumeWord("pragma"); err != nil {
		return nil, err
	}

	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Eq); err != nil {
		return nil, err
	}

	value, err := p.parseSpecExpTopLevel()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Semi); err != nil {
		return nil, err
	}

	return &ast.Condition{Loc: p.since(start), Kind: ast.SpecPragma, Name: name.String(), PragmaValue: value}, nil
}

// parseSpecExpTopLevel enters spec mode for the duration of parsing one
// spec expression. The expression's first token has already been scanned
// by then, so parseSpecBlockBody also enters spec mode before a
// condition's keyword is consumed; that keeps "c.value" from being fused
// into a DotName.
func (p *Parser) parseSpecExpTopLevel() (ast.SpecExp, error) {
	var e ast.SpecExp

	err := p.withSpecMode(func() error {
		var innerErr error
		e, innerErr = p.parseSpecImplExp()
		return innerErr
	})

	return e, err
}

// parseSpecImplExp parses the lowest-precedence spec binary operators:
// "==>" (implication) and ":=" (update), both right-associative and both
// binding looser than every ordinary binary operator.
func (p *Parser) parseSpecImplExp() (ast.SpecExp, error) {
	start := p.lex.StartLoc()

	lhs, err := p.parseSpecOrExp()
	if err != nil {
		return nil, err
	}

	if p.matchToken(lexer.EqEqGt) {
		if _, _, err := p.consumeToken(lexer.EqEqGt); err != nil {
			return nil, err
		}

		rhs, err := p.parseSpecImplExp()
		if err != nil {
			return nil, err
		}

		return ast.NewSpecBinopExp(p.since(start), ast.SpecImplies, 0, lhs, rhs), nil
	}

	if p.matchToken(lexer.ColonEq) {
		if _, _, err := p.consumeToken(lexer.ColonEq); err != nil {
			return nil, err
		}

		rhs, err := p.parseSpecImplExp()
		if err != nil {
			return nil, err
		}

		return ast.NewSpecBinopExp(p.since(start), ast.SpecUpdate, 0, lhs, rhs), nil
	}

	return lhs, nil
}

var specBinPrec = map[lexer.Kind]int{
	lexer.OrOr:    1,
	lexer.AndAnd:  2,
	lexer.EqEq:    3,
	lexer.NotEq:   3,
	lexer.Lt:      4,
	lexer.Gt:      4,
	lexer.Le:      4,
	lexer.Ge:      4,
	lexer.DotDot:  5,
	lexer.Pipe:    6,
	lexer.Caret:   7,
	lexer.Amp:     8,
	lexer.Shl:     9,
	lexer.Shr:     9,
	lexer.Plus:    10,
	lexer.Minus:   10,
	lexer.Star:    11,
	lexer.Slash:   11,
	lexer.Percent: 11,
}

// parseSpecOrExp parses the ordinary arithmetic/comparison/logical
// operators inside a spec expression via the same precedence-climbing
// shape parseBinExp uses for ordinary expressions.
func (p *Parser) parseSpecOrExp() (ast.SpecExp, error) {
	return p.parseSpecBinExp(0)
}

func (p *Parser) parseSpecBinExp(minPrec int) (ast.SpecExp, error) {
	start := p.lex.StartLoc()

	lhs, err := p.parseSpecUnaryExp()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := specBinPrec[p.peek()]
		if !ok || prec < minPrec {
			return lhs, nil
		}

		opKind := p.peek()

		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.parseSpecBinExp(prec + 1)
		if err != nil {
			return nil, err
		}

		if opKind == lexer.DotDot {
			lhs = ast.NewSpecBinopExp(p.since(start), ast.SpecSubrange, 0, lhs, rhs)
			continue
		}

		lhs = ast.NewSpecBinopExp(p.since(start), ast.SpecArith, binOpForKind[opKind], lhs, rhs)
	}
}

func (p *Parser) parseSpecUnaryExp() (ast.SpecExp, error) {
	start := p.lex.StartLoc()

	switch {
	case p.matchToken(lexer.Bang):
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseSpecUnaryExp()
		if err != nil {
			return nil, err
		}

		return ast.NewSpecNotExp(p.since(start), inner), nil

	case p.matchToken(lexer.Star):
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseSpecUnaryExp()
		if err != nil {
			return nil, err
		}

		return ast.NewSpecDereferenceExp(p.since(start), inner), nil

	case p.matchToken(lexer.Amp):
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseSpecUnaryExp()
		if err != nil {
			return nil, err
		}

		return ast.NewSpecReferenceExp(p.since(start), inner), nil

	default:
		return p.parseSpecPrimaryExp()
	}
}

func (p *Parser) parseSpecPrimaryExp() (ast.SpecExp, error) {
	start := p.lex.StartLoc()

	switch {
	case p.matchToken(lexer.LParen):
		if _, _, err := p.consumeToken(lexer.LParen); err != nil {
			return nil, err
		}

		e, err := p.parseSpecImplExp()
		if err != nil {
			return nil, err
		}

		if _, _, err := p.consumeToken(lexer.RParen); err != nil {
			return nil, err
		}

		return e, nil

	case p.matchToken(lexer.Num):
		v, loc, err := p.parseNumericLiteral()
		if err != nil {
			return nil, err
		}

		return ast.NewSpecConstantExp(loc, v), nil

	case p.matchToken(lexer.AccountAddressValue):
		v, loc, err := p.parseAccountAddress()
		if err != nil {
			return nil, err
		}

		return ast.NewSpecConstantExp(loc, ast.NewAddressVal(loc, v)), nil

	case p.isWord("true"):
		loc := p.loc()

		if err := p.advance(); err != nil {
			return nil, err
		}

		return ast.NewSpecConstantExp(loc, ast.NewBoolVal(loc, true)), nil

	case p.isWord("false"):
		loc := p.loc()

		if err := p.advance(); err != nil {
			return nil, err
		}

		return ast.NewSpecConstantExp(loc, ast.NewBoolVal(loc, false)), nil

	case p.isWord("old"):
		if _, err := p.consumeWord("old"); err != nil {
			return nil, err
		}

		if _, _, err := p.consumeToken(lexer.LParen); err != nil {
			return nil, err
		}

		inner, err := p.parseSpecImplExp()
		if err != nil {
			return nil, err
		}

		if _, _, err := p.consumeToken(lexer.RParen); err != nil {
			return nil, err
		}

		return ast.NewSpecOldExp(p.since(start), inner), nil

	case p.isWord("global_exists"):
		return p.parseGlobalExistsExp(start)

	case p.isWord("RET"):
		return p.parseRetLocation(start)

	default:
		return p.parseStorageLocationOrCallExp(start)
	}
}

// parseGlobalExistsExp parses "global_exists<T>(address_exp)".
func (p *Parser) parseGlobalExistsExp(start uint32) (ast.SpecExp, error) {
	if _, err := p.consumeWord("global_exists"); err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.Lt); err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	p.adjustToken(lexer.Gt)

	if _, _, err := p.consumeToken(lexer.Gt); err != nil {
		return nil, err
	}

	st, ok := t.(*ast.StructType)
	if !ok {
		return nil, token.NewUserError(t.Loc(), "global_exists expects a struct type")
	}

	if _, _, err := p.consumeToken(lexer.LParen); err != nil {
		return nil, err
	}

	addr, err := p.parseSpecImplExp()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.consumeToken(lexer.RParen); err != nil {
		return nil, err
	}

	return ast.NewSpecGlobalExistsExp(p.since(start), *st, addr), nil
}

// parseRetLocation parses "RET(i)", the i'th return value, generalized
// to any non-negative index per DESIGN.md.
func (p *Parser) parseRetLocation(start uint32) (ast.SpecExp, error) {
	if _, err := p.consumeWord("RET"); err != nil {
		return nil, err
	}

	index := uint64(0)

	if p.matchToken(lexer.LParen) {
		if _, _, err := p.consumeToken(lexer.LParen); err != nil {
			return nil, err
		}

		text, loc, err := p.consumeToken(lexer.Num)
		if err != nil {
			return nil, err
		}

		n, ok := parseDecimalUint(text)
		if !ok {
			return nil, token.NewInvalidTokenError(loc, "invalid RET index %q", text)
		}

		index = n

		if _, _, err := p.consumeToken(lexer.RParen); err != nil {
			return nil, err
		}
	}

	loc := p.since(start)

	return ast.NewSpecLocationExp(loc, ast.NewRetStorageLocation(loc, index)), nil
}

func parseDecimalUint(s string) (uint64, bool) {
	var n uint64

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}

		n = n*10 + uint64(s[i]-'0')
	}

	return n, true
}

// parseStorageLocationOrCallExp parses a bare identifier in spec
// position: either a call to a spec variable/pure function, or a
// storage-location read (a formal, possibly extended with ".field" or
// "[index]" projections).
func (p *Parser) parseStorageLocationOrCallExp(start uint32) (ast.SpecExp, error) {
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if p.matchToken(lexer.LParen) {
		args, err := p.parseSpecArgList()
		if err != nil {
			return nil, err
		}

		call := ast.NewModuleFunctionCall(p.since(start), ast.ModuleName{}, ast.FunctionName(name), nil)

		return ast.NewSpecCallExp(p.since(start), *call, args), nil
	}

	var loc ast.StorageLocation = ast.NewFormalStorageLocation(p.since(start), ast.Var(name))

	for {
		switch {
		case p.matchToken(lexer.Dot):
			if _, _, err := p.consumeToken(lexer.Dot); err != nil {
				return nil, err
			}

			field, _, err := p.parseName()
			if err != nil {
				return nil, err
			}

			loc = ast.NewAccessPathStorageLocation(p.since(start), loc, ast.Field(field), nil)

		case p.matchToken(lexer.LBracket):
			if _, _, err := p.consumeToken(lexer.LBracket); err != nil {
				return nil, err
			}

			idx, err := p.parseSpecImplExp()
			if err != nil {
				return nil, err
			}

			if _, _, err := p.consumeToken(lexer.RBracket); err != nil {
				return nil, err
			}

			loc = ast.NewAccessPathStorageLocation(p.since(start), loc, ast.Field{}, idx)

		default:
			return ast.NewSpecLocationExp(p.since(start), loc), nil
		}
	}
}

func (p *Parser) parseSpecArgList() ([]ast.SpecExp, error) {
	if _, _, err := p.consumeToken(lexer.LParen); err != nil {
		return nil, err
	}

	var args []ast.SpecExp

	if !p.matchToken(lexer.RParen) {
		for {
			e, err := p.parseSpecImplExp()
			if err != nil {
				return nil, err
			}

			args = append(args, e)

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

	return args, nil
}
