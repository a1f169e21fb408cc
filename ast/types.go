// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/golangee/movesyntax/token"

// PrimitiveKind enumerates Move's built-in, non-composite types.
type PrimitiveKind int

const (
	PrimAddress PrimitiveKind = iota
	PrimSigner
	PrimBool
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimU128
	PrimU256
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimAddress:
		return "address"
	case PrimSigner:
		return "signer"
	case PrimBool:
		return "bool"
	case PrimU8:
		return "u8"
	case PrimU16:
		return "u16"
	case PrimU32:
		return "u32"
	case PrimU64:
		return "u64"
	case PrimU128:
		return "u128"
	case PrimU256:
		return "u256"
	default:
		return "?primitive"
	}
}

// primitiveNames maps the exact identifier content the lexer hands back to
// its PrimitiveKind. parse_type consults this table instead of relying on
// distinct lexer tokens, per spec.md §4.3.
var primitiveNames = map[string]PrimitiveKind{
	"address": PrimAddress,
	"signer":  PrimSigner,
	"bool":    PrimBool,
	"u8":      PrimU8,
	"u16":     PrimU16,
	"u32":     PrimU32,
	"u64":     PrimU64,
	"u128":    PrimU128,
	"u256":    PrimU256,
}

// PrimitiveKindFromName looks up a primitive type by its exact identifier
// spelling.
func PrimitiveKindFromName(name string) (PrimitiveKind, bool) {
	k, ok := primitiveNames[name]
	return k, ok
}

// NumericSuffixes lists every valid typed-literal suffix, longest first so
// a caller doing a manual longest-match can just walk the slice in order.
// This table is also what makes numeric suffix matching exact rather than
// the original implementation's ends_with-based check (see DESIGN.md).
var NumericSuffixes = []struct {
	Suffix string
	Kind   PrimitiveKind
}{
	{"u256", PrimU256},
	{"u128", PrimU128},
	{"u64", PrimU64},
	{"u32", PrimU32},
	{"u16", PrimU16},
	{"u8", PrimU8},
}

// Type is the sealed family of type expressions.
type Type interface {
	Loc() token.Loc
	isType()
}

type typeBase struct {
	loc token.Loc
}

func (t typeBase) Loc() token.Loc { return t.loc }
func (typeBase) isType()          {}

// PrimitiveType is one of address, signer, bool, u8..u256.
type PrimitiveType struct {
	typeBase
	Kind PrimitiveKind
}

func NewPrimitiveType(loc token.Loc, kind PrimitiveKind) *PrimitiveType {
	return &PrimitiveType{typeBase{loc}, kind}
}

// VectorType is vector<Elem>.
type VectorType struct {
	typeBase
	Elem Type
}

func NewVectorType(loc token.Loc, elem Type) *VectorType {
	return &VectorType{typeBase{loc}, elem}
}

// StructType is a (possibly module-qualified) struct name with type
// actuals, e.g. "M.Coin<T>" or a bare "Coin<T>" referring to the current
// module.
type StructType struct {
	typeBase
	Module  ModuleName // zero Symbol if unqualified (refers to the enclosing module)
	Name    StructName
	Actuals []Type
}

func NewStructType(loc token.Loc, module ModuleName, name StructName, actuals []Type) *StructType {
	return &StructType{typeBase{loc}, module, name, actuals}
}

// ReferenceType is &Inner or &mut Inner.
type ReferenceType struct {
	typeBase
	Mutable bool
	Inner   Type
}

func NewReferenceType(loc token.Loc, mutable bool, inner Type) *ReferenceType {
	return &ReferenceType{typeBase{loc}, mutable, inner}
}

// TypeParameterType refers to a type formal in scope.
type TypeParameterType struct {
	typeBase
	Var TypeVar
}

func NewTypeParameterType(loc token.Loc, v TypeVar) *TypeParameterType {
	return &TypeParameterType{typeBase{loc}, v}
}

// TypeFormal is one entry of a NameAndTypeFormals list: a type parameter,
// optionally phantom, with an ability-constraint set.
type TypeFormal struct {
	Loc      token.Loc
	Var      TypeVar
	Phantom  bool
	Abilities AbilitySet
}
