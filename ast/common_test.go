// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"strings"
	"testing"

	"github.com/golangee/movesyntax/token"
)

func TestInternReturnsComparableSymbols(t *testing.T) {
	a := Intern("foo")
	b := Intern("foo")
	c := Intern("bar")

	if a != b {
		t.Fatal("two Interns of the same text should compare equal")
	}

	if a == c {
		t.Fatal("Interns of different text should not compare equal")
	}
}

func TestSymbolIsEmpty(t *testing.T) {
	var zero Symbol
	if !zero.IsEmpty() {
		t.Fatal("zero Symbol should report IsEmpty")
	}

	if Intern("x").IsEmpty() {
		t.Fatal("non-empty Symbol should not report IsEmpty")
	}
}

func TestModuleNameIsEmpty(t *testing.T) {
	var zero ModuleName
	if !zero.IsEmpty() {
		t.Fatal("zero ModuleName should report IsEmpty")
	}

	if ModuleName(Intern("M")).IsEmpty() {
		t.Fatal("non-empty ModuleName should not report IsEmpty")
	}
}

func TestParseAccountAddressLeftPads(t *testing.T) {
	addr, err := ParseAccountAddress("1")
	if err != nil {
		t.Fatalf("ParseAccountAddress: %v", err)
	}

	want := "0x" + strings.Repeat("0", 62) + "01"
	if got := addr.String(); got != want {
		t.Fatalf("unexpected address string: %s, want %s", got, want)
	}

	for _, b := range addr.Bytes[:31] {
		if b != 0 {
			t.Fatalf("expected leading zero bytes, got %v", addr.Bytes)
		}
	}

	if addr.Bytes[31] != 1 {
		t.Fatalf("expected trailing byte 1, got %v", addr.Bytes[31])
	}
}

func TestParseAccountAddressOddDigitCount(t *testing.T) {
	addr, err := ParseAccountAddress("abc")
	if err != nil {
		t.Fatalf("ParseAccountAddress: %v", err)
	}

	if addr.Bytes[30] != 0x0a || addr.Bytes[31] != 0xbc {
		t.Fatalf("unexpected bytes for odd-length hex: %v", addr.Bytes[30:])
	}
}

func TestParseAccountAddressRejectsOversize(t *testing.T) {
	_, err := ParseAccountAddress("0100000000000000000000000000000000000000000000000000000000000000ff")
	if err == nil {
		t.Fatal("expected an error for a 33-byte address")
	}
}

func TestParseAccountAddressRejectsNonHex(t *testing.T) {
	_, err := ParseAccountAddress("zz")
	if err == nil {
		t.Fatal("expected an error for non-hex digits")
	}
}

func TestAbilitySetRejectsDuplicate(t *testing.T) {
	var set AbilitySet

	if err := set.Add(Copy, token.Loc{}); err != nil {
		t.Fatalf("first Add: %v", err)
	}

	if err := set.Add(Copy, token.Loc{}); err == nil {
		t.Fatal("expected an error adding a duplicate ability")
	}

	if !set.Has(Copy) {
		t.Fatal("expected Copy to be present")
	}

	if set.Has(Drop) {
		t.Fatal("did not expect Drop to be present")
	}
}

func TestAbilitySetListPreservesOrder(t *testing.T) {
	var set AbilitySet

	for _, a := range []Ability{Key, Copy, Store} {
		if err := set.Add(a, token.Loc{}); err != nil {
			t.Fatalf("Add(%v): %v", a, err)
		}
	}

	got := set.List()
	want := []Ability{Key, Copy, Store}

	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAbilityFromName(t *testing.T) {
	tests := []struct {
		name string
		want Ability
		ok   bool
	}{
		{"copy", Copy, true},
		{"drop", Drop, true},
		{"store", Store, true},
		{"key", Key, true},
		{"bogus", 0, false},
	}

	for _, tc := range tests {
		got, ok := AbilityFromName(tc.name)
		if ok != tc.ok {
			t.Fatalf("AbilityFromName(%q) ok = %v, want %v", tc.name, ok, tc.ok)
		}

		if ok && got != tc.want {
			t.Fatalf("AbilityFromName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
