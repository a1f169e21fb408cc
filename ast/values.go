// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"math/big"

	"github.com/golangee/movesyntax/token"
)

// CopyableVal is a literal value: something that can be duplicated freely
// because it carries no resource semantics.
type CopyableVal interface {
	Loc() token.Loc
	isCopyableVal()
}

type valBase struct{ loc token.Loc }

func (v valBase) Loc() token.Loc { return v.loc }
func (valBase) isCopyableVal()   {}

type AddressVal struct {
	valBase
	Value AccountAddress
}

type BoolVal struct {
	valBase
	Value bool
}

// U8Val .. U256Val hold the decoded magnitude of an integer literal. u8
// through u64 fit native Go integers; u128 and u256 need math/big, the way
// the teacher's SemVer/Int nodes reach for a dedicated type once a plain
// int64 no longer suffices.
type (
	U8Val struct {
		valBase
		Value uint8
	}
	U16Val struct {
		valBase
		Value uint16
	}
	U32Val struct {
		valBase
		Value uint32
	}
	U64Val struct {
		valBase
		Value uint64
	}
	U128Val struct {
		valBase
		Value *big.Int
	}
	U256Val struct {
		valBase
		Value *big.Int
	}
)

type ByteArrayVal struct {
	valBase
	Value []byte
}

func NewAddressVal(loc token.Loc, v AccountAddress) *AddressVal   { return &AddressVal{valBase{loc}, v} }
func NewBoolVal(loc token.Loc, v bool) *BoolVal                   { return &BoolVal{valBase{loc}, v} }
func NewU8Val(loc token.Loc, v uint8) *U8Val                      { return &U8Val{valBase{loc}, v} }
func NewU16Val(loc token.Loc, v uint16) *U16Val                   { return &U16Val{valBase{loc}, v} }
func NewU32Val(loc token.Loc, v uint32) *U32Val                   { return &U32Val{valBase{loc}, v} }
func NewU64Val(loc token.Loc, v uint64) *U64Val                   { return &U64Val{valBase{loc}, v} }
func NewU128Val(loc token.Loc, v *big.Int) *U128Val               { return &U128Val{valBase{loc}, v} }
func NewU256Val(loc token.Loc, v *big.Int) *U256Val               { return &U256Val{valBase{loc}, v} }
func NewByteArrayVal(loc token.Loc, v []byte) *ByteArrayVal       { return &ByteArrayVal{valBase{loc}, v} }
