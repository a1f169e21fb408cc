// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/golangee/movesyntax/token"

// SpecBinOp is a binary operator available only inside the specification
// sub-language: implication and the update operator join the ordinary
// arithmetic/comparison/logical set every SpecExp also accepts via
// SpecBinopExp.
type SpecBinOp int

const (
	SpecImplies SpecBinOp = iota
	SpecUpdate
	// SpecSubrange is "..", e.g. the index expression of "v[i..j]". It has
	// no ordinary-expression counterpart, unlike SpecArith's operators.
	SpecSubrange
	// the ordinary operators reuse ast.BinOp's values inside SpecBinopExp's
	// Op field when Op is one of SpecArith.
	SpecArith
)

// SpecExp is the sealed family of expressions usable inside a spec block;
// it is a separate tree from Exp because several forms (storage
// locations, old(), global_exists) have no meaning outside specifications.
type SpecExp interface {
	Loc() token.Loc
	isSpecExp()
}

type specExpBase struct{ loc token.Loc }

func (s specExpBase) Loc() token.Loc { return s.loc }
func (specExpBase) isSpecExp()       {}

// SpecConstantExp embeds an ordinary literal value.
type SpecConstantExp struct {
	specExpBase
	Value CopyableVal
}

// SpecLocationExp reads a StorageLocation.
type SpecLocationExp struct {
	specExpBase
	Location StorageLocation
}

// SpecGlobalExistsExp is "global_exists<T>(address)".
type SpecGlobalExistsExp struct {
	specExpBase
	Type    StructType
	Address SpecExp
}

type SpecDereferenceExp struct {
	specExpBase
	Exp SpecExp
}

type SpecReferenceExp struct {
	specExpBase
	Exp SpecExp
}

type SpecNotExp struct {
	specExpBase
	Exp SpecExp
}

// SpecOldExp is "old(e)", evaluating e in the function's pre-state.
type SpecOldExp struct {
	specExpBase
	Exp SpecExp
}

// SpecCallExp invokes a spec variable or a pure Move function from spec
// context.
type SpecCallExp struct {
	specExpBase
	Name ModuleFunctionCall
	Args []SpecExp
}

type SpecBinopExp struct {
	specExpBase
	Op  SpecBinOp
	Arith BinOp // valid only when Op == SpecArith
	LHS SpecExp
	RHS SpecExp
}

func NewSpecConstantExp(loc token.Loc, v CopyableVal) *SpecConstantExp {
	return &SpecConstantExp{specExpBase{loc}, v}
}

func NewSpecLocationExp(loc token.Loc, l StorageLocation) *SpecLocationExp {
	return &SpecLocationExp{specExpBase{loc}, l}
}

func NewSpecGlobalExistsExp(loc token.Loc, t StructType, addr SpecExp) *SpecGlobalExistsExp {
	return &SpecGlobalExistsExp{specExpBase{loc}, t, addr}
}

func NewSpecDereferenceExp(loc token.Loc, e SpecExp) *SpecDereferenceExp {
	return &SpecDereferenceExp{specExpBase{loc}, e}
}

func NewSpecReferenceExp(loc token.Loc, e SpecExp) *SpecReferenceExp {
	return &SpecReferenceExp{specExpBase{loc}, e}
}

func NewSpecNotExp(loc token.Loc, e SpecExp) *SpecNotExp { return &SpecNotExp{specExpBase{loc}, e} }

func NewSpecOldExp(loc token.Loc, e SpecExp) *SpecOldExp { return &SpecOldExp{specExpBase{loc}, e} }

func NewSpecCallExp(loc token.Loc, name ModuleFunctionCall, args []SpecExp) *SpecCallExp {
	return &SpecCallExp{specExpBase{loc}, name, args}
}

func NewSpecBinopExp(loc token.Loc, op SpecBinOp, arith BinOp, lhs, rhs SpecExp) *SpecBinopExp {
	return &SpecBinopExp{specExpBase{loc}, op, arith, lhs, rhs}
}

// StorageLocation is the sealed family of places a spec expression can
// read or update.
type StorageLocation interface {
	Loc() token.Loc
	isStorageLocation()
}

type storLocBase struct{ loc token.Loc }

func (s storLocBase) Loc() token.Loc { return s.loc }
func (storLocBase) isStorageLocation() {}

// RetStorageLocation is "RET(i)", the i'th return value of the enclosing
// function. Generalized to a fully general index per DESIGN.md, rather
// than only the special cases "RET" (i=0) and "RET(i)".
type RetStorageLocation struct {
	storLocBase
	Index uint64
}

// AddressStorageLocation is a spec-only binder introduced by an
// "address a" quantifier-like construct in older surface syntax.
type AddressStorageLocation struct {
	storLocBase
	Name Var
}

// FormalStorageLocation refers to a function parameter by name.
type FormalStorageLocation struct {
	storLocBase
	Name Var
}

// GlobalResourceStorageLocation is "global<T>(address)", the resource T
// published at address.
type GlobalResourceStorageLocation struct {
	storLocBase
	Type    StructType
	Address SpecExp
}

// AccessPathStorageLocation extends a base location with a field
// projection or vector index, e.g. "formal.f[0]".
type AccessPathStorageLocation struct {
	storLocBase
	Base  StorageLocation
	Field Field
	Index SpecExp // nil when this step is a field projection, not an index
}

func NewRetStorageLocation(loc token.Loc, index uint64) *RetStorageLocation {
	return &RetStorageLocation{storLocBase{loc}, index}
}

func NewAddressStorageLocation(loc token.Loc, name Var) *AddressStorageLocation {
	return &AddressStorageLocation{storLocBase{loc}, name}
}

func NewFormalStorageLocation(loc token.Loc, name Var) *FormalStorageLocation {
	return &FormalStorageLocation{storLocBase{loc}, name}
}

func NewGlobalResourceStorageLocation(loc token.Loc, t StructType, addr SpecExp) *GlobalResourceStorageLocation {
	return &GlobalResourceStorageLocation{storLocBase{loc}, t, addr}
}

func NewAccessPathStorageLocation(loc token.Loc, base StorageLocation, field Field, index SpecExp) *AccessPathStorageLocation {
	return &AccessPathStorageLocation{storLocBase{loc}, base, field, index}
}

// ConditionKind distinguishes the different clauses a function-level spec
// block may contain.
type ConditionKind int

const (
	ConditionRequires ConditionKind = iota
	ConditionEnsures
	ConditionAbortsIf
	ConditionSucceedsIf
	// SpecPragma is a pragma directive (e.g. "pragma aborts_if_is_partial
	// = true;"), an addition of this grammar not found in the original
	// surface syntax, see DESIGN.md.
	SpecPragma
)

// Condition is one clause of a SpecBlock.
type Condition struct {
	Loc  token.Loc
	Kind ConditionKind
	Exp  SpecExp     // unused (zero) when Kind == SpecPragma
	Name string      // pragma name, only set when Kind == SpecPragma
	PragmaValue SpecExp // pragma value, only set when Kind == SpecPragma
}

// SpecBlock is one "spec { ... }" attached to a function or module.
type SpecBlock struct {
	Loc        token.Loc
	Conditions []Condition
}
