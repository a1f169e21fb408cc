// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package lexer

import "testing"

// collect drains every token from l (including the trailing EOF) for
// table-driven assertions.
func collect(t *testing.T, l *Lexer) []info {
	t.Helper()

	var toks []info

	for {
		if err := l.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}

		toks = append(toks, l.cur)

		if l.cur.kind == EOF {
			return toks
		}
	}
}

func TestLexerBasics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{"empty", "", []Kind{EOF}},
		{"module header", "module 0x1.M {", []Kind{Name, DotName, LBrace, EOF}},
		{"nested generic", "vector<vector<u8>>", []Kind{NameBeginTy, NameBeginTy, Name, Shr, EOF}},
		{"ability list", "has copy, drop", []Kind{Name, Name, Comma, Name, EOF}},
		{"line comment", "x // trailing\ny", []Kind{Name, Name, EOF}},
		{"block comment", "x /* c */ y", []Kind{Name, Name, EOF}},
		{"byte array", `h"CAFE01"`, []Kind{ByteArrayValue, EOF}},
		{"suffixed number", "10u64", []Kind{Num, EOF}},
		{"implication", "a ==> b", []Kind{Name, EqEqGt, Name, EOF}},
		{"update", "a := b", []Kind{Name, ColonEq, Name, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(t, New(tt.name, tt.src))

			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d %v", len(toks), toks, len(tt.want), tt.want)
			}

			for i, tok := range toks {
				if tok.kind != tt.want[i] {
					t.Errorf("token %d: got %s, want %s", i, tok.kind, tt.want[i])
				}
			}
		})
	}
}

func TestDotNameContent(t *testing.T) {
	l := New("t", "0x1.M")
	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}

	if l.Peek() != DotName {
		t.Fatalf("got %s, want DotName", l.Peek())
	}

	if l.Content() != "0x1.M" {
		t.Fatalf("got %q, want 0x1.M", l.Content())
	}
}

func TestSpecModeSuppressesDotFusion(t *testing.T) {
	l := New("t", "a.b")
	l.SetSpecMode(true)

	var kinds []Kind

	for {
		if err := l.Advance(); err != nil {
			t.Fatal(err)
		}

		kinds = append(kinds, l.Peek())

		if l.Peek() == EOF {
			break
		}
	}

	want := []Kind{Name, Dot, Name, EOF}

	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}

	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
}

func TestNameBeginTyStripsAngle(t *testing.T) {
	l := New("t", "Foo<T>")
	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}

	if l.Peek() != NameBeginTy || l.Content() != "Foo" {
		t.Fatalf("got %s %q, want NameBeginTy \"Foo\"", l.Peek(), l.Content())
	}
}

func TestReplaceTokenSplitsShr(t *testing.T) {
	l := New("t", ">>")
	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}

	if l.Peek() != Shr {
		t.Fatalf("got %s, want Shr", l.Peek())
	}

	l.ReplaceToken(Gt, 1)

	if l.Peek() != Gt || l.Content() != ">" {
		t.Fatalf("ReplaceToken did not rewrite current token: %s", l.Peek())
	}

	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}

	if l.Peek() != Gt {
		t.Fatalf("got %s, want remaining Gt", l.Peek())
	}
}

func TestLookaheadDoesNotConsume(t *testing.T) {
	l := New("t", "a b")
	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}

	k, err := l.Lookahead()
	if err != nil {
		t.Fatal(err)
	}

	if k != Name {
		t.Fatalf("lookahead kind = %s, want Name", k)
	}

	if l.Peek() != Name || l.Content() != "a" {
		t.Fatalf("Lookahead advanced the current token")
	}

	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}

	if l.Content() != "b" {
		t.Fatalf("got %q, want b", l.Content())
	}
}

func TestAccountAddressRejectsOversizeLiteral(t *testing.T) {
	long := ""
	for i := 0; i < 65; i++ {
		long += "f"
	}

	l := New("t", "0x"+long)
	if err := l.Advance(); err == nil {
		t.Fatal("expected an error for an oversized account address literal")
	}
}
