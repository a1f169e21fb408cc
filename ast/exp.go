// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/golangee/movesyntax/token"

// BinOp is a binary operator in the ordinary (non-spec) expression
// grammar. Spec-only operators (Update, Implies, Subrange) live in spec.go
// next to the SpecExp family that alone can contain them.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	BitOr
	BitAnd
	Xor
	Shl
	Shr
	Or
	And
	Eq
	Neq
	Lt
	Gt
	Le
	Ge
)

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	Not UnaryOp = iota
)

// Exp is the sealed family of ordinary (non-spec) expressions.
type Exp interface {
	Loc() token.Loc
	isExp()
}

type expBase struct{ loc token.Loc }

func (e expBase) Loc() token.Loc { return e.loc }
func (expBase) isExp()           {}

type ValueExp struct {
	expBase
	Value CopyableVal
}

type MoveExp struct {
	expBase
	Var Var
}

type CopyExp struct {
	expBase
	Var Var
}

// BorrowLocalExp is &v / &mut v for a bare local variable.
type BorrowLocalExp struct {
	expBase
	Mutable bool
	Var     Var
}

type DereferenceExp struct {
	expBase
	Exp Exp
}

// BorrowExp is &e.field / &mut e.field, or a borrow of a pack expression's
// field.
type BorrowExp struct {
	expBase
	Mutable bool
	Exp     Exp
	Field   Field
}

// FieldExp is one "field: exp" entry of a Pack expression.
type FieldExp struct {
	Field Field
	Exp   Exp
}

type PackExp struct {
	expBase
	Name    StructName
	Actuals []Type
	Fields  []FieldExp
}

// FunctionCallExp applies Call to Args, where Args is itself an expression
// (typically an ExprListExp) so a call can supply zero, one, or many
// arguments uniformly.
type FunctionCallExp struct {
	expBase
	Call FunctionCall
	Args Exp
}

type UnaryExp struct {
	expBase
	Op  UnaryOp
	Exp Exp
}

type BinopExp struct {
	expBase
	Op   BinOp
	LHS  Exp
	RHS  Exp
}

// ExprListExp is a parenthesized, comma-separated list of expressions; it
// also represents the single-argument case (a list of one) so call
// arguments and tuple literals share a representation.
type ExprListExp struct {
	expBase
	Exps []Exp
}

func NewValueExp(loc token.Loc, v CopyableVal) *ValueExp { return &ValueExp{expBase{loc}, v} }
func NewMoveExp(loc token.Loc, v Var) *MoveExp           { return &MoveExp{expBase{loc}, v} }
func NewCopyExp(loc token.Loc, v Var) *CopyExp           { return &CopyExp{expBase{loc}, v} }

func NewBorrowLocalExp(loc token.Loc, mutable bool, v Var) *BorrowLocalExp {
	return &BorrowLocalExp{expBase{loc}, mutable, v}
}

func NewDereferenceExp(loc token.Loc, e Exp) *DereferenceExp {
	return &DereferenceExp{expBase{loc}, e}
}

func NewBorrowExp(loc token.Loc, mutable bool, e Exp, f Field) *BorrowExp {
	return &BorrowExp{expBase{loc}, mutable, e, f}
}

func NewPackExp(loc token.Loc, name StructName, actuals []Type, fields []FieldExp) *PackExp {
	return &PackExp{expBase{loc}, name, actuals, fields}
}

func NewFunctionCallExp(loc token.Loc, call FunctionCall, args Exp) *FunctionCallExp {
	return &FunctionCallExp{expBase{loc}, call, args}
}

func NewUnaryExp(loc token.Loc, op UnaryOp, e Exp) *UnaryExp {
	return &UnaryExp{expBase{loc}, op, e}
}

func NewBinopExp(loc token.Loc, op BinOp, lhs, rhs Exp) *BinopExp {
	return &BinopExp{expBase{loc}, op, lhs, rhs}
}

func NewExprListExp(loc token.Loc, exps []Exp) *ExprListExp {
	return &ExprListExp{expBase{loc}, exps}
}

// FunctionCall is either a built-in operation or a call to a named
// function in some module.
type FunctionCall interface {
	Loc() token.Loc
	isFunctionCall()
}

type callBase struct{ loc token.Loc }

func (c callBase) Loc() token.Loc  { return c.loc }
func (callBase) isFunctionCall()   {}

type BuiltinCall struct {
	callBase
	Builtin Builtin
}

func NewBuiltinCall(loc token.Loc, b Builtin) *BuiltinCall { return &BuiltinCall{callBase{loc}, b} }

// ModuleFunctionCall calls Name in Module with TypeActuals instantiating
// its type formals. Module is the zero Symbol when the call is spelled
// with a bare name; a call spelled "Self.f" keeps "Self" as its Module.
type ModuleFunctionCall struct {
	callBase
	Module      ModuleName
	Name        FunctionName
	TypeActuals []Type
}

func NewModuleFunctionCall(loc token.Loc, module ModuleName, name FunctionName, actuals []Type) *ModuleFunctionCall {
	return &ModuleFunctionCall{callBase{loc}, module, name, actuals}
}

// Builtin is the sealed family of built-in (bytecode-primitive)
// operations.
type Builtin interface {
	Loc() token.Loc
	isBuiltin()
}

type builtinBase struct{ loc token.Loc }

func (b builtinBase) Loc() token.Loc { return b.loc }
func (builtinBase) isBuiltin()       {}

type ExistsBuiltin struct {
	builtinBase
	Type    StructType
}

type BorrowGlobalBuiltin struct {
	builtinBase
	Mutable bool
	Type    StructType
}

type MoveFromBuiltin struct {
	builtinBase
	Type StructType
}

type MoveToBuiltin struct {
	builtinBase
	Type StructType
}

// VecPackBuiltin is vec_pack_N<Tys>, producing a vector of N elements
// popped off the stack.
type VecPackBuiltin struct {
	builtinBase
	ElemTypes []Type
	N         uint64
}

// VecUnpackBuiltin is vec_unpack_N<Tys>, the inverse of VecPackBuiltin.
type VecUnpackBuiltin struct {
	builtinBase
	ElemTypes []Type
	N         uint64
}

type (
	VecLenBuiltin       struct{ builtinBase; ElemTypes []Type }
	VecImmBorrowBuiltin struct{ builtinBase; ElemTypes []Type }
	VecMutBorrowBuiltin struct{ builtinBase; ElemTypes []Type }
	VecPushBackBuiltin  struct{ builtinBase; ElemTypes []Type }
	VecPopBackBuiltin   struct{ builtinBase; ElemTypes []Type }
	VecSwapBuiltin      struct{ builtinBase; ElemTypes []Type }
)

type FreezeBuiltin struct{ builtinBase }

// ToUBuiltin is one of to_u8 .. to_u256, narrowing/widening an integer.
type ToUBuiltin struct {
	builtinBase
	Target PrimitiveKind
}

func NewExistsBuiltin(loc token.Loc, t StructType) *ExistsBuiltin { return &ExistsBuiltin{builtinBase{loc}, t} }

func NewBorrowGlobalBuiltin(loc token.Loc, mutable bool, t StructType) *BorrowGlobalBuiltin {
	return &BorrowGlobalBuiltin{builtinBase{loc}, mutable, t}
}

func NewMoveFromBuiltin(loc token.Loc, t StructType) *MoveFromBuiltin {
	return &MoveFromBuiltin{builtinBase{loc}, t}
}

func NewMoveToBuiltin(loc token.Loc, t StructType) *MoveToBuiltin {
	return &MoveToBuiltin{builtinBase{loc}, t}
}

func NewVecPackBuiltin(loc token.Loc, tys []Type, n uint64) *VecPackBuiltin {
	return &VecPackBuiltin{builtinBase{loc}, tys, n}
}

func NewVecUnpackBuiltin(loc token.Loc, tys []Type, n uint64) *VecUnpackBuiltin {
	return &VecUnpackBuiltin{builtinBase{loc}, tys, n}
}

func NewFreezeBuiltin(loc token.Loc) *FreezeBuiltin { return &FreezeBuiltin{builtinBase{loc}} }

func NewVecLenBuiltin(loc token.Loc, tys []Type) *VecLenBuiltin {
	return &VecLenBuiltin{builtinBase{loc}, tys}
}

func NewVecImmBorrowBuiltin(loc token.Loc, tys []Type) *VecImmBorrowBuiltin {
	return &VecImmBorrowBuiltin{builtinBase{loc}, tys}
}

func NewVecMutBorrowBuiltin(loc token.Loc, tys []Type) *VecMutBorrowBuiltin {
	return &VecMutBorrowBuiltin{builtinBase{loc}, tys}
}

func NewVecPushBackBuiltin(loc token.Loc, tys []Type) *VecPushBackBuiltin {
	return &VecPushBackBuiltin{builtinBase{loc}, tys}
}

func NewVecPopBackBuiltin(loc token.Loc, tys []Type) *VecPopBackBuiltin {
	return &VecPopBackBuiltin{builtinBase{loc}, tys}
}

func NewVecSwapBuiltin(loc token.Loc, tys []Type) *VecSwapBuiltin {
	return &VecSwapBuiltin{builtinBase{loc}, tys}
}

func NewToUBuiltin(loc token.Loc, target PrimitiveKind) *ToUBuiltin {
	return &ToUBuiltin{builtinBase{loc}, target}
}
