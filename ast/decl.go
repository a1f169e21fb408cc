// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/golangee/movesyntax/token"

// Visibility is a function's declared visibility.
type Visibility int

const (
	VisibilityInternal Visibility = iota
	VisibilityPublic
	VisibilityPublicScript
	VisibilityPublicFriend
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPublicScript:
		return "public(script)"
	case VisibilityPublicFriend:
		return "public(friend)"
	default:
		return "internal"
	}
}

// Param is one function parameter: a name and its declared type.
type Param struct {
	Var  Var
	Type Type
}

// Function is a single function definition, native or with a body.
type Function struct {
	Loc         token.Loc
	Name        FunctionName
	Visibility  Visibility
	IsEntry     bool
	TypeFormals []TypeFormal
	Args        []Param
	Returns     []Type
	Acquires    []StructType
	Specs       []SpecBlock
	Native      bool
	Body        []Block // nil when Native
}

func NewFunction(loc token.Loc, name FunctionName) *Function {
	return &Function{Loc: loc, Name: name}
}

// FieldDecl is one field declaration of a struct: a name and its type.
type FieldDecl struct {
	Field Field
	Type  Type
}

// Invariant is a struct-level data invariant: "invariant e;", optionally
// carrying a brace-delimited modifier ("invariant{update} e;" -- the
// modifier is an arbitrary name, not a fixed keyword set) and/or an
// assignment target ("invariant total = sum(x);").
type Invariant struct {
	Loc      token.Loc
	Modifier Symbol // zero Symbol if no "{modifier}" was given
	Target   Var    // zero Symbol if not of assignment form
	Exp      SpecExp
}

// StructDefinition is a single struct (resource or plain) declaration.
type StructDefinition struct {
	Loc         token.Loc
	Name        StructName
	Abilities   AbilitySet
	TypeFormals []TypeFormal
	Fields      []FieldDecl
	Invariants  []Invariant
	Native      bool
}

func NewStructDefinition(loc token.Loc, name StructName) *StructDefinition {
	return &StructDefinition{Loc: loc, Name: name}
}

// ImportDefinition brings a module into scope, optionally under an alias.
type ImportDefinition struct {
	Loc     token.Loc
	Ident   ModuleIdent
	Alias   ModuleName // zero Symbol if unaliased
}

// ModuleIdent names a module by its publishing address and name.
type ModuleIdent struct {
	Address AccountAddress
	Name    ModuleName
}

// SpecVar is a module-level ghost variable usable only inside spec blocks,
// supplementing the surface grammar the distilled specification omitted
// (see DESIGN.md).
type SpecVar struct {
	Loc         token.Loc
	Name        Var
	TypeFormals []TypeFormal
	Type        Type
}

// SyntheticDefinition is a module-level specification-only pseudo-field
// ("synthetic f: u64;"), usable from spec blocks the same way a real field
// is but never present at runtime.
type SyntheticDefinition struct {
	Loc  token.Loc
	Name Field
	Type Type
}

// ModuleDefinition is a full "module Addr.Name { ... }" unit.
type ModuleDefinition struct {
	Loc         token.Loc
	Address     AccountAddress
	Name        ModuleName
	Friends     []ModuleIdent
	Imports     []ImportDefinition
	Synthetics  []SyntheticDefinition
	Structs     []StructDefinition
	Functions   []Function
	SpecVars    []SpecVar
	Specs       []SpecBlock // module-level spec blocks (spec module { ... })
}

// Script is a single "script { ... }" unit: imports plus exactly one
// entry function named "main" by convention of the surface syntax (the
// parser enforces the name; this type does not).
type Script struct {
	Loc      token.Loc
	Imports  []ImportDefinition
	Main     Function
}

// ScriptOrModule is the top-level sealed result of parsing one
// compilation unit: exactly one of Module or Script is non-nil.
type ScriptOrModule struct {
	Module *ModuleDefinition
	Script *Script
}
