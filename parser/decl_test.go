// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"testing"

	"github.com/golangee/movesyntax/ast"
)

func mustParseModule(t *testing.T, src string) *ast.ModuleDefinition {
	t.Helper()

	mod, err := ParseModuleString(t.Name(), src)
	if err != nil {
		t.Fatalf("ParseModuleString: %v", err)
	}

	return mod
}

func TestParseModuleBasics(t *testing.T) {
	src := `
module 0x1.Coin {
    import 0x1.Signer;

    struct Coin<phantom T: store> has store, key {
        value: u64
    }

    public fun value<T: store>(coin: &Coin<T>): u64 {
        l0:
            return *&(coin).value;
    }
}
`

	mod := mustParseModule(t, src)

	if mod.Name.String() != "Coin" {
		t.Fatalf("module name = %q, want Coin", mod.Name.String())
	}

	if mod.Address.String() != "0x"+zeroes(62)+"01" {
		t.Fatalf("module address = %s", mod.Address.String())
	}

	if len(mod.Imports) != 1 || mod.Imports[0].Ident.Name.String() != "Signer" {
		t.Fatalf("unexpected imports: %+v", mod.Imports)
	}

	if len(mod.Structs) != 1 {
		t.Fatalf("expected 1 struct, got %d", len(mod.Structs))
	}

	st := mod.Structs[0]

	if st.Name.String() != "Coin" {
		t.Fatalf("struct name = %q", st.Name.String())
	}

	if !st.Abilities.Has(ast.Store) || !st.Abilities.Has(ast.Key) {
		t.Fatalf("expected struct to have store+key, got %v", st.Abilities.List())
	}

	if len(st.TypeFormals) != 1 || !st.TypeFormals[0].Phantom {
		t.Fatalf("expected one phantom type formal, got %+v", st.TypeFormals)
	}

	if len(mod.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(mod.Functions))
	}

	fn := mod.Functions[0]
	if fn.Name.String() != "value" || fn.Visibility != ast.VisibilityPublic {
		t.Fatalf("unexpected function: %+v", fn)
	}

	if len(fn.Body) != 1 || fn.Body[0].Label.String() != "l0" {
		t.Fatalf("unexpected body: %+v", fn.Body)
	}
}

func zeroes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}

	return string(b)
}

func TestParseNativeStructAndFunction(t *testing.T) {
	src := `
module 0x2.M {
    native struct Box<T>;

    native public fun id<T>(x: T): T;
}
`

	mod := mustParseModule(t, src)

	if !mod.Structs[0].Native {
		t.Fatal("expected Box to be native")
	}

	if !mod.Functions[0].Native {
		t.Fatal("expected id to be native")
	}

	if mod.Functions[0].Body != nil {
		t.Fatal("expected a native function to have no body")
	}
}

func TestParseStructDuplicateAbilityRejected(t *testing.T) {
	src := `
module 0x1.M {
    struct S has copy, copy {
        x: u64
    }
}
`

	_, err := ParseModuleString(t.Name(), src)
	if err == nil {
		t.Fatal("expected a duplicate-ability error")
	}
}

func TestParseStructUnknownAbilityRejected(t *testing.T) {
	src := `
module 0x1.M {
    struct S has bogus {
        x: u64
    }
}
`

	_, err := ParseModuleString(t.Name(), src)
	if err == nil {
		t.Fatal("expected an unknown-ability error")
	}
}

func TestParseFriendDeclaration(t *testing.T) {
	src := `
module 0x1.M {
    friend 0x1.Other;

    public(friend) fun f() {
        l0:
            return;
    }
}
`

	mod := mustParseModule(t, src)

	if len(mod.Friends) != 1 || mod.Friends[0].Name.String() != "Other" {
		t.Fatalf("unexpected friends: %+v", mod.Friends)
	}

	if mod.Functions[0].Visibility != ast.VisibilityPublicFriend {
		t.Fatalf("expected public(friend), got %v", mod.Functions[0].Visibility)
	}
}

func TestParsePublicScriptVisibility(t *testing.T) {
	src := `
module 0x1.M {
    public(script) entry fun go() {
        l0:
            return;
    }
}
`

	mod := mustParseModule(t, src)

	fn := mod.Functions[0]
	if fn.Visibility != ast.VisibilityPublicScript || !fn.IsEntry {
		t.Fatalf("unexpected function: %+v", fn)
	}
}

func TestParseAcquiresClauseRejectsNonStructType(t *testing.T) {
	src := `
module 0x1.M {
    fun f() acquires u64 {
        l0:
            return;
    }
}
`

	_, err := ParseModuleString(t.Name(), src)
	if err == nil {
		t.Fatal("expected an error for a non-struct acquires type")
	}
}

func TestParseScript(t *testing.T) {
	src := `
script {
    import 0x1.Coin;

    fun main(sender: &signer, amount: u64) {
        l0:
            return;
    }
}
`

	script, err := ParseScriptString(t.Name(), src)
	if err != nil {
		t.Fatalf("ParseScriptString: %v", err)
	}

	if len(script.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(script.Imports))
	}

	if script.Main.Name.String() != "main" || len(script.Main.Args) != 2 {
		t.Fatalf("unexpected main: %+v", script.Main)
	}
}

func TestParseScriptOrModuleDispatchesOnKeyword(t *testing.T) {
	modUnit, err := ParseScriptOrModuleString(t.Name(), "module 0x1.M { }")
	if err != nil {
		t.Fatalf("parsing module: %v", err)
	}

	if modUnit.Module == nil || modUnit.Script != nil {
		t.Fatalf("expected a module result, got %+v", modUnit)
	}

	scriptUnit, err := ParseScriptOrModuleString(t.Name(), "script { fun main() { l0: return; } }")
	if err != nil {
		t.Fatalf("parsing script: %v", err)
	}

	if scriptUnit.Script == nil || scriptUnit.Module != nil {
		t.Fatalf("expected a script result, got %+v", scriptUnit)
	}
}

func TestParseScriptOrModuleRejectsNeitherKeyword(t *testing.T) {
	_, err := ParseScriptOrModuleString(t.Name(), "fun f() {}")
	if err == nil {
		t.Fatal("expected an error for input starting with neither module nor script")
	}
}

func TestParseInvariantModifierAndTargetForms(t *testing.T) {
	src := `
module 0x1.M {
    struct S has key {
        x: u64,

        invariant x > 0,
        invariant{pack} x > 0,
        invariant{update} x >= old(x),
        invariant total = x
    }
}
`

	mod := mustParseModule(t, src)

	invs := mod.Structs[0].Invariants
	if len(invs) != 4 {
		t.Fatalf("expected 4 invariants, got %d", len(invs))
	}

	if invs[0].Modifier != (ast.Symbol{}) || invs[0].Target != (ast.Var{}) {
		t.Fatalf("expected a bare invariant, got %+v", invs[0])
	}

	if invs[1].Modifier.String() != "pack" || invs[1].Target != (ast.Var{}) {
		t.Fatalf("expected a {pack}-modified invariant, got %+v", invs[1])
	}

	if invs[2].Modifier.String() != "update" || invs[2].Target != (ast.Var{}) {
		t.Fatalf("expected an {update}-modified invariant, got %+v", invs[2])
	}

	if invs[3].Modifier != (ast.Symbol{}) || invs[3].Target.String() != "total" {
		t.Fatalf("expected an assignment-target invariant, got %+v", invs[3])
	}
}

func TestParseSpecVarAndPragma(t *testing.T) {
	src := `
module 0x1.M {
    spec var total<T>: u64;

    fun f(): u64 {
        l0:
            return 0;
    }

    spec f {
        pragma aborts_if_is_strict = true;
        ensures RET(0) == 0;
    }
}
`

	mod := mustParseModule(t, src)

	if len(mod.SpecVars) != 1 || mod.SpecVars[0].Name.String() != "total" {
		t.Fatalf("unexpected spec vars: %+v", mod.SpecVars)
	}

	fn := mod.Functions[0]
	if len(fn.Specs) != 1 || len(fn.Specs[0].Conditions) != 2 {
		t.Fatalf("unexpected function specs: %+v", fn.Specs)
	}

	if fn.Specs[0].Conditions[0].Kind != ast.SpecPragma || fn.Specs[0].Conditions[0].Name != "aborts_if_is_strict" {
		t.Fatalf("unexpected pragma: %+v", fn.Specs[0].Conditions[0])
	}

	if fn.Specs[0].Conditions[1].Kind != ast.ConditionEnsures {
		t.Fatalf("unexpected ensures: %+v", fn.Specs[0].Conditions[1])
	}
}

func TestParseModuleLevelSpecBlock(t *testing.T) {
	src := `
module 0x1.M {
    spec module {
        pragma verify = true;
    }
}
`

	mod := mustParseModule(t, src)

	if len(mod.Specs) != 1 || len(mod.Specs[0].Conditions) != 1 {
		t.Fatalf("unexpected module specs: %+v", mod.Specs)
	}
}

func TestParseRejectsUnknownTopLevelItem(t *testing.T) {
	src := `
module 0x1.M {
    1 + 1;
}
`

	_, err := ParseModuleString(t.Name(), src)
	if err == nil {
		t.Fatal("expected an error for a stray expression at module scope")
	}
}
