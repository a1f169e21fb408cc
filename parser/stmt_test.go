// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"testing"

	"github.com/golangee/movesyntax/ast"
)

// mustParseBody wraps body in a single labelled block "l0: <body>" inside
// a minimal function and returns the parsed statements of that block.
func mustParseBody(t *testing.T, body string) []ast.Statement {
	t.Helper()

	src := "module 0x1.M {\n" +
		"    fun f(v: u64, w: u64, c: Coin<u64>): u64 {\n" +
		"    l0:\n" +
		body + "\n" +
		"    }\n" +
		"}\n"

	mod := mustParseModule(t, src)

	fn := mod.Functions[0]
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 block, got %d", len(fn.Body))
	}

	return fn.Body[0].Statements
}

func mustParseSingleStatement(t *testing.T, body string) ast.Statement {
	t.Helper()

	stmts := mustParseBody(t, body)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d: %+v", len(stmts), stmts)
	}

	return stmts[0]
}

func TestParseBareExpStatement(t *testing.T) {
	stmt := mustParseSingleStatement(t, "move(v);")

	es, ok := stmt.(*ast.ExpStatement)
	if !ok {
		t.Fatalf("expected ExpStatement, got %+v", stmt)
	}

	if _, ok := es.Exp.(*ast.MoveExp); !ok {
		t.Fatalf("expected inner MoveExp, got %+v", es.Exp)
	}
}

func TestParseSingleVarAssignStatement(t *testing.T) {
	stmt := mustParseSingleStatement(t, "v = w;")

	as, ok := stmt.(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %+v", stmt)
	}

	if len(as.LValues) != 1 {
		t.Fatalf("expected 1 lvalue, got %+v", as.LValues)
	}

	lv, ok := as.LValues[0].(*ast.VarLValue)
	if !ok || lv.Var.String() != "v" {
		t.Fatalf("unexpected lvalue: %+v", as.LValues[0])
	}

	mv, ok := as.Exp.(*ast.MoveExp)
	if !ok || mv.Var.String() != "w" {
		t.Fatalf("unexpected assigned expression: %+v", as.Exp)
	}
}

func TestParseMultiLValueAssignStatement(t *testing.T) {
	stmt := mustParseSingleStatement(t, "_, v = f();")

	as, ok := stmt.(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %+v", stmt)
	}

	if len(as.LValues) != 2 {
		t.Fatalf("expected 2 lvalues, got %+v", as.LValues)
	}

	if _, ok := as.LValues[0].(*ast.PopLValue); !ok {
		t.Fatalf("expected first lvalue to be PopLValue, got %+v", as.LValues[0])
	}

	lv, ok := as.LValues[1].(*ast.VarLValue)
	if !ok || lv.Var.String() != "v" {
		t.Fatalf("unexpected second lvalue: %+v", as.LValues[1])
	}
}

func TestParseMutateThroughReferenceStatement(t *testing.T) {
	stmt := mustParseSingleStatement(t, "*(&mut v) = w;")

	as, ok := stmt.(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %+v", stmt)
	}

	if len(as.LValues) != 1 {
		t.Fatalf("expected 1 lvalue, got %+v", as.LValues)
	}

	mlv, ok := as.LValues[0].(*ast.MutateLValue)
	if !ok {
		t.Fatalf("expected MutateLValue, got %+v", as.LValues[0])
	}

	// "(&mut v)" is a parenthesized single expression, which
	// parseExprListExp collapses to the inner BorrowLocalExp itself
	// rather than wrapping it in an ExprListExp.
	bl, ok := mlv.Exp.(*ast.BorrowLocalExp)
	if !ok || !bl.Mutable || bl.Var.String() != "v" {
		t.Fatalf("expected a mutable BorrowLocalExp of v, got %+v", mlv.Exp)
	}
}

func TestParseUnpackStatement(t *testing.T) {
	stmt := mustParseSingleStatement(t, "Coin { value: v } = c;")

	us, ok := stmt.(*ast.UnpackStatement)
	if !ok {
		t.Fatalf("expected UnpackStatement, got %+v", stmt)
	}

	if us.Name.String() != "Coin" {
		t.Fatalf("unexpected struct name: %s", us.Name.String())
	}

	if len(us.Bindings) != 1 || us.Bindings[0].Field.String() != "value" || us.Bindings[0].Var.String() != "v" {
		t.Fatalf("unexpected bindings: %+v", us.Bindings)
	}

	mv, ok := us.Exp.(*ast.MoveExp)
	if !ok || mv.Var.String() != "c" {
		t.Fatalf("unexpected unpacked expression: %+v", us.Exp)
	}
}

func TestParseAbortStatementWithAndWithoutCode(t *testing.T) {
	bare := mustParseSingleStatement(t, "abort;")

	as, ok := bare.(*ast.AbortStatement)
	if !ok || as.Code != nil {
		t.Fatalf("expected bare AbortStatement with nil code, got %+v", bare)
	}

	coded := mustParseSingleStatement(t, "abort 42;")

	as, ok = coded.(*ast.AbortStatement)
	if !ok {
		t.Fatalf("expected AbortStatement, got %+v", coded)
	}

	if _, ok := as.Code.(*ast.ValueExp); !ok {
		t.Fatalf("expected abort code to be a ValueExp, got %+v", as.Code)
	}
}

func TestParseAssertStatement(t *testing.T) {
	stmt := mustParseSingleStatement(t, "assert(v == w, 7);")

	as, ok := stmt.(*ast.AssertStatement)
	if !ok {
		t.Fatalf("expected AssertStatement, got %+v", stmt)
	}

	if _, ok := as.Condition.(*ast.BinopExp); !ok {
		t.Fatalf("expected condition to be a BinopExp, got %+v", as.Condition)
	}

	if _, ok := as.Code.(*ast.ValueExp); !ok {
		t.Fatalf("expected code to be a ValueExp, got %+v", as.Code)
	}
}

func TestParseJumpStatement(t *testing.T) {
	stmts := mustParseBody(t, "jump l0;\n    return v;")

	js, ok := stmts[0].(*ast.JumpStatement)
	if !ok || js.Label.String() != "l0" {
		t.Fatalf("expected JumpStatement to l0, got %+v", stmts[0])
	}
}

func TestParseJumpIfStatement(t *testing.T) {
	stmts := mustParseBody(t, "jump_if(v == w, l0);\n    return v;")

	js, ok := stmts[0].(*ast.JumpIfStatement)
	if !ok || js.Label.String() != "l0" {
		t.Fatalf("expected JumpIfStatement to l0, got %+v", stmts[0])
	}

	if _, ok := js.Condition.(*ast.BinopExp); !ok {
		t.Fatalf("expected condition to be a BinopExp, got %+v", js.Condition)
	}
}

func TestParseJumpIfFalseStatement(t *testing.T) {
	stmts := mustParseBody(t, "jump_if_false(v == w, l0);\n    return v;")

	js, ok := stmts[0].(*ast.JumpIfFalseStatement)
	if !ok || js.Label.String() != "l0" {
		t.Fatalf("expected JumpIfFalseStatement to l0, got %+v", stmts[0])
	}
}

func TestParseReturnStatementBareAndWithValues(t *testing.T) {
	bare := mustParseSingleStatement(t, "return;")

	rs, ok := bare.(*ast.ReturnStatement)
	if !ok || len(rs.Exps) != 0 {
		t.Fatalf("expected bare ReturnStatement, got %+v", bare)
	}

	multi := mustParseSingleStatement(t, "return v, w;")

	rs, ok = multi.(*ast.ReturnStatement)
	if !ok || len(rs.Exps) != 2 {
		t.Fatalf("expected a 2-value ReturnStatement, got %+v", multi)
	}
}

func TestParseMultipleBlocksSplitOnLabels(t *testing.T) {
	src := `
module 0x1.M {
    fun f(v: u64): u64 {
    l0:
        jump l1;
    l1:
        return v;
    }
}
`

	mod := mustParseModule(t, src)

	fn := mod.Functions[0]
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(fn.Body))
	}

	if fn.Body[0].Label.String() != "l0" || fn.Body[1].Label.String() != "l1" {
		t.Fatalf("unexpected block labels: %s, %s", fn.Body[0].Label.String(), fn.Body[1].Label.String())
	}

	if len(fn.Body[0].Statements) != 1 {
		t.Fatalf("expected 1 statement in l0, got %d", len(fn.Body[0].Statements))
	}

	if _, ok := fn.Body[0].Statements[0].(*ast.JumpStatement); !ok {
		t.Fatalf("expected l0's statement to be a JumpStatement, got %+v", fn.Body[0].Statements[0])
	}
}

func TestParseLocalDecls(t *testing.T) {
	src := `
module 0x1.M {
    fun f(): u64 {
        let x: u64, y: bool;
    l0:
        return x;
    }
}
`

	mod := mustParseModule(t, src)

	if len(mod.Functions[0].Body) != 1 {
		t.Fatalf("expected 1 block, got %d", len(mod.Functions[0].Body))
	}
}
