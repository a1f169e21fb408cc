// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package ast_test

import (
	"testing"

	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/token"
)

func TestExpFamilyImplementsSealedInterface(t *testing.T) {
	loc := token.Loc{}
	v := ast.NewMoveExp(loc, ast.Var(ast.Intern("x")))

	exps := []ast.Exp{
		ast.NewValueExp(loc, ast.NewBoolVal(loc, true)),
		v,
		ast.NewCopyExp(loc, ast.Var(ast.Intern("x"))),
		ast.NewBorrowLocalExp(loc, false, ast.Var(ast.Intern("x"))),
		ast.NewDereferenceExp(loc, v),
		ast.NewBorrowExp(loc, true, v, ast.Field(ast.Intern("f"))),
		ast.NewPackExp(loc, ast.StructName(ast.Intern("Coin")), nil, nil),
		ast.NewFunctionCallExp(loc, ast.NewModuleFunctionCall(loc, ast.ModuleName{}, ast.FunctionName(ast.Intern("f")), nil), v),
		ast.NewUnaryExp(loc, ast.Not, v),
		ast.NewBinopExp(loc, ast.Add, v, v),
		ast.NewExprListExp(loc, []ast.Exp{v}),
	}

	for _, e := range exps {
		if e.Loc() != loc {
			t.Fatalf("unexpected Loc on %T", e)
		}
	}
}

func TestBuiltinFamilyImplementsSealedInterface(t *testing.T) {
	loc := token.Loc{}
	st := ast.NewStructType(loc, ast.ModuleName{}, ast.StructName(ast.Intern("Coin")), nil)

	builtins := []ast.Builtin{
		ast.NewExistsBuiltin(loc, *st),
		ast.NewBorrowGlobalBuiltin(loc, true, *st),
		ast.NewMoveFromBuiltin(loc, *st),
		ast.NewMoveToBuiltin(loc, *st),
		ast.NewVecPackBuiltin(loc, []ast.Type{st}, 2),
		ast.NewVecUnpackBuiltin(loc, []ast.Type{st}, 2),
		ast.NewFreezeBuiltin(loc),
		ast.NewVecLenBuiltin(loc, []ast.Type{st}),
		ast.NewVecImmBorrowBuiltin(loc, []ast.Type{st}),
		ast.NewVecMutBorrowBuiltin(loc, []ast.Type{st}),
		ast.NewVecPushBackBuiltin(loc, []ast.Type{st}),
		ast.NewVecPopBackBuiltin(loc, []ast.Type{st}),
		ast.NewVecSwapBuiltin(loc, []ast.Type{st}),
		ast.NewToUBuiltin(loc, ast.PrimU64),
	}

	for _, b := range builtins {
		if b.Loc() != loc {
			t.Fatalf("unexpected Loc on %T", b)
		}
	}
}

func TestExprListExpCarriesEveryElement(t *testing.T) {
	loc := token.Loc{}
	a := ast.NewMoveExp(loc, ast.Var(ast.Intern("a")))
	b := ast.NewMoveExp(loc, ast.Var(ast.Intern("b")))

	list := ast.NewExprListExp(loc, []ast.Exp{a, b})
	if len(list.Exps) != 2 || list.Exps[0] != ast.Exp(a) || list.Exps[1] != ast.Exp(b) {
		t.Fatalf("unexpected ExprListExp contents: %+v", list.Exps)
	}
}
