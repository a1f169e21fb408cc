// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

// Package ast defines the abstract syntax tree the parser package builds.
// Every node is immutable once constructed and owns its children
// exclusively; the whole tree is discarded by the caller at the end of a
// parse. Variant families (Type, Exp, Statement, SpecExp, ...) are encoded
// as small sealed interfaces rather than class hierarchies, so a type
// switch on the interface is an exhaustiveness check in disguise.
package ast

import (
	"encoding/hex"
	"fmt"

	"github.com/golangee/movesyntax/token"
)

// Symbol is an interned identifier. Symbols compare equal with ==, exactly
// like the opaque handle spec.md describes; the string is kept alongside
// for diagnostics rather than in a separate global table, since nothing in
// this package needs to recover a Symbol from a numeric id.
type Symbol struct {
	name string
}

// Intern returns the Symbol for s. Called Intern rather than New to match
// how the parser's external symbol-interner collaborator is named in
// spec.md; this package is a self-contained stand-in for it.
func Intern(s string) Symbol {
	return Symbol{name: s}
}

func (s Symbol) String() string {
	return s.name
}

// IsEmpty reports whether s is the zero Symbol.
func (s Symbol) IsEmpty() bool {
	return s.name == ""
}

// Var, Field, TypeVar, StructName, FunctionName, ModuleName, and BlockLabel
// are all Symbol in different syntactic positions. Defining them as
// distinct types (rather than passing Symbol everywhere) keeps e.g. a
// Function's Acquires: []StructName from being accidentally confused with
// its Args: []Var at a call site.
type (
	Var         Symbol
	Field       Symbol
	TypeVar     Symbol
	StructName  Symbol
	FunctionName Symbol
	ModuleName  Symbol
	BlockLabel  Symbol
)

func (v Var) String() string         { return Symbol(v).String() }
func (f Field) String() string       { return Symbol(f).String() }
func (t TypeVar) String() string     { return Symbol(t).String() }
func (s StructName) String() string  { return Symbol(s).String() }
func (f FunctionName) String() string { return Symbol(f).String() }
func (m ModuleName) String() string  { return Symbol(m).String() }
func (b BlockLabel) String() string  { return Symbol(b).String() }

// IsEmpty reports whether m is the zero ModuleName, i.e. an unqualified
// reference to the enclosing module.
func (m ModuleName) IsEmpty() bool { return Symbol(m).IsEmpty() }

// SelfModuleName is the reserved alias every module body may use to refer
// to itself; it may not be used as an import alias or as the module's own
// declared name.
const SelfModuleName = "Self"

// AccountAddress is an up-to-32-byte identifier, left-padded with zero
// bytes the way a 20-byte or shorter address still occupies the low bytes
// of a 32-byte word.
type AccountAddress struct {
	Bytes [32]byte
}

// ParseAccountAddress decodes a hex string (without a "0x" prefix, as
// produced by the lexer's AccountAddressValue token) into an
// AccountAddress. An odd digit count is padded with one leading zero;
// non-hex content and a value longer than 32 bytes are rejected.
func ParseAccountAddress(hexDigits string) (AccountAddress, error) {
	digits := hexDigits
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}

	raw, err := hex.DecodeString(digits)
	if err != nil {
		return AccountAddress{}, fmt.Errorf("invalid account address literal %q: %w", hexDigits, err)
	}

	if len(raw) > 32 {
		return AccountAddress{}, fmt.Errorf("account address literal %q is longer than 32 bytes", hexDigits)
	}

	var addr AccountAddress
	copy(addr.Bytes[32-len(raw):], raw)

	return addr, nil
}

func (a AccountAddress) String() string {
	return "0x" + hex.EncodeToString(a.Bytes[:])
}

// Ability is a static capability a type may have.
type Ability int

const (
	Copy Ability = iota
	Drop
	Store
	Key
)

func (a Ability) String() string {
	switch a {
	case Copy:
		return "copy"
	case Drop:
		return "drop"
	case Store:
		return "store"
	case Key:
		return "key"
	default:
		return "?ability"
	}
}

// AbilityFromName maps a contextual ability keyword to its Ability, or
// reports ok=false if name is not one of the four recognized ability
// names.
func AbilityFromName(name string) (Ability, bool) {
	switch name {
	case "copy":
		return Copy, true
	case "drop":
		return Drop, true
	case "store":
		return Store, true
	case "key":
		return Key, true
	default:
		return 0, false
	}
}

// AbilitySet is a deduplicated, order-preserving set of abilities, built
// incrementally by Add so that a duplicate can be rejected at the
// location it was seen rather than after the fact.
type AbilitySet struct {
	abilities []Ability
}

// Add inserts ability, returning an error located at loc if it is already
// present -- spec.md requires this to surface as a User error at the
// offending ability's own location, not the list's.
func (s *AbilitySet) Add(a Ability, loc token.Loc) error {
	for _, existing := range s.abilities {
		if existing == a {
			return token.NewUserError(loc, "duplicate ability %q", a)
		}
	}

	s.abilities = append(s.abilities, a)

	return nil
}

// Has reports whether a is in the set.
func (s AbilitySet) Has(a Ability) bool {
	for _, existing := range s.abilities {
		if existing == a {
			return true
		}
	}

	return false
}

// List returns the abilities in the order they were added.
func (s AbilitySet) List() []Ability {
	return append([]Ability(nil), s.abilities...)
}
