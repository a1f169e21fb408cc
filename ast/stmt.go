// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/golangee/movesyntax/token"

// LValue is the sealed family of statement-level assignment targets.
type LValue interface {
	Loc() token.Loc
	isLValue()
}

type lvalBase struct{ loc token.Loc }

func (l lvalBase) Loc() token.Loc { return l.loc }
func (lvalBase) isLValue()        {}

// VarLValue assigns directly to a local.
type VarLValue struct {
	lvalBase
	Var Var
}

// MutateLValue assigns through a reference, e.g. "*r = e".
type MutateLValue struct {
	lvalBase
	Exp Exp
}

// PopLValue discards the assigned value, e.g. the "_" in "_, x = f()".
type PopLValue struct {
	lvalBase
}

func NewVarLValue(loc token.Loc, v Var) *VarLValue       { return &VarLValue{lvalBase{loc}, v} }
func NewMutateLValue(loc token.Loc, e Exp) *MutateLValue { return &MutateLValue{lvalBase{loc}, e} }
func NewPopLValue(loc token.Loc) *PopLValue               { return &PopLValue{lvalBase{loc}} }

// Statement is the sealed family of statements a function body's blocks are
// made of.
type Statement interface {
	Loc() token.Loc
	isStatement()
}

type stmtBase struct{ loc token.Loc }

func (s stmtBase) Loc() token.Loc { return s.loc }
func (stmtBase) isStatement()     {}

// AssignStatement is "lvalues = exp;", including the single-lvalue case.
type AssignStatement struct {
	stmtBase
	LValues []LValue
	Exp     Exp
}

// UnpackStatement destructures a resource/struct value into its fields:
// "Name { f1: x1, ... } = e;".
type UnpackStatement struct {
	stmtBase
	Name      StructName
	TypeActuals []Type
	Bindings  []UnpackBinding
	Exp       Exp
}

// UnpackBinding is one "field: var" entry of an UnpackStatement.
type UnpackBinding struct {
	Field Field
	Var   Var
}

type AbortStatement struct {
	stmtBase
	Code Exp // nil for a bare "abort;"
}

// AssertStatement is "assert(cond, code);", kept as its own node rather
// than expanded into an AbortStatement so that source-level intent
// survives into the tree. Condition holds the condition as written; the
// parser does not negate it.
type AssertStatement struct {
	stmtBase
	Condition Exp
	Code      Exp
}

type JumpStatement struct {
	stmtBase
	Label BlockLabel
}

type JumpIfStatement struct {
	stmtBase
	Condition Exp
	Label     BlockLabel
}

type JumpIfFalseStatement struct {
	stmtBase
	Condition Exp
	Label     BlockLabel
}

// ReturnStatement returns zero or more values; Exps is empty for a bare
// "return;".
type ReturnStatement struct {
	stmtBase
	Exps []Exp
}

// ExpStatement evaluates Exp and discards its result.
type ExpStatement struct {
	stmtBase
	Exp Exp
}

func NewAssignStatement(loc token.Loc, lvalues []LValue, e Exp) *AssignStatement {
	return &AssignStatement{stmtBase{loc}, lvalues, e}
}

func NewUnpackStatement(loc token.Loc, name StructName, actuals []Type, bindings []UnpackBinding, e Exp) *UnpackStatement {
	return &UnpackStatement{stmtBase{loc}, name, actuals, bindings, e}
}

func NewAbortStatement(loc token.Loc, code Exp) *AbortStatement { return &AbortStatement{stmtBase{loc}, code} }

func NewAssertStatement(loc token.Loc, cond, code Exp) *AssertStatement {
	return &AssertStatement{stmtBase{loc}, cond, code}
}

func NewJumpStatement(loc token.Loc, label BlockLabel) *JumpStatement {
	return &JumpStatement{stmtBase{loc}, label}
}

func NewJumpIfStatement(loc token.Loc, cond Exp, label BlockLabel) *JumpIfStatement {
	return &JumpIfStatement{stmtBase{loc}, cond, label}
}

func NewJumpIfFalseStatement(loc token.Loc, cond Exp, label BlockLabel) *JumpIfFalseStatement {
	return &JumpIfFalseStatement{stmtBase{loc}, cond, label}
}

func NewReturnStatement(loc token.Loc, exps []Exp) *ReturnStatement {
	return &ReturnStatement{stmtBase{loc}, exps}
}

func NewExpStatement(loc token.Loc, e Exp) *ExpStatement { return &ExpStatement{stmtBase{loc}, e} }

// Block is one labelled block of a function body's statement-level
// stack machine: a label followed by a straight-line run of statements
// ending (ordinarily) in a jump or return.
type Block struct {
	Loc        token.Loc
	Label      BlockLabel
	Statements []Statement
}

func NewBlock(loc token.Loc, label BlockLabel, stmts []Statement) *Block {
	return &Block{loc, label, stmts}
}
