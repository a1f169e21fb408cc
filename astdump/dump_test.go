// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package astdump_test

import (
	"strings"
	"testing"

	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/astdump"
	"github.com/golangee/movesyntax/parser"
)

func TestDumpModuleRendersStructsAndFunctions(t *testing.T) {
	src := `
module 0x1.Coin {
    import 0x1.Signer;

    struct Coin<phantom T: store> has store, key {
        value: u64
    }

    fun value<T: store>(c: &Coin<T>): u64 {
    l0:
        return 0;
    }
}
`

	mod, err := parser.ParseModuleString(t.Name(), src)
	if err != nil {
		t.Fatalf("ParseModuleString: %v", err)
	}

	var buf strings.Builder

	if err := astdump.DumpModule(&buf, mod); err != nil {
		t.Fatalf("DumpModule: %v", err)
	}

	out := buf.String()

	for _, want := range []string{
		"module 0x" + strings.Repeat("0", 62) + "01.Coin",
		"import 0x" + strings.Repeat("0", 62) + "01.Signer",
		"struct Coin",
		"value: u64",
		"fun value",
		"l0:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q, got:\n%s", want, out)
		}
	}
}

func TestDumpEmptyScriptOrModuleProducesPlaceholder(t *testing.T) {
	var buf strings.Builder

	if err := astdump.Dump(&buf, &ast.ScriptOrModule{}); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	if got := buf.String(); !strings.Contains(got, "(empty)") {
		t.Fatalf("expected placeholder output, got %q", got)
	}
}
