// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

// Package astdump renders a parsed compilation unit as an indented,
// human-readable tree, in the same streaming bufio.Writer plus
// indent-counter style the teacher's XML encoder uses to serialize its
// own tree. The parser tests check parsed values directly, by type
// assertions on the tree, instead of comparing dumps; this package exists
// for cmd/moveparse and for readable failure output.
package astdump

import (
	"bufio"
	"fmt"
	"io"

	"github.com/golangee/movesyntax/ast"
)

// writer tracks the current indentation depth while walking the tree,
// mirroring how the teacher's XMLEncoder tracks its own indent field
// across nested node writes.
type writer struct {
	out    *bufio.Writer
	indent int
}

func (w *writer) line(format string, args ...interface{}) {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("  ")
	}

	fmt.Fprintf(w.out, format, args...)
	w.out.WriteByte('\n')
}

func (w *writer) nested(body func()) {
	w.indent++
	body()
	w.indent--
}

// Dump writes unit to wr as an indented tree. Exactly one of
// unit.Module / unit.Script is expected to be non-nil.
func Dump(wr io.Writer, unit *ast.ScriptOrModule) error {
	w := &writer{out: bufio.NewWriter(wr)}

	switch {
	case unit.Module != nil:
		dumpModule(w, unit.Module)
	case unit.Script != nil:
		dumpScript(w, unit.Script)
	default:
		w.line("(empty)")
	}

	return w.out.Flush()
}

// DumpModule writes mod alone, for callers that already know they have a
// module rather than a ScriptOrModule.
func DumpModule(wr io.Writer, mod *ast.ModuleDefinition) error {
	w := &writer{out: bufio.NewWriter(wr)}
	dumpModule(w, mod)

	return w.out.Flush()
}

func dumpModule(w *writer, mod *ast.ModuleDefinition) {
	w.line("module %s.%s", mod.Address.String(), mod.Name)

	w.nested(func() {
		for _, imp := range mod.Imports {
			w.line("import %s.%s", imp.Ident.Address, imp.Ident.Name)
		}

		for _, friend := range mod.Friends {
			w.line("friend %s.%s", friend.Address, friend.Name)
		}

		for _, sv := range mod.SpecVars {
			w.line("spec var %s: %s", sv.Name, dumpType(sv.Type))
		}

		for i := range mod.Structs {
			dumpStruct(w, &mod.Structs[i])
		}

		for i := range mod.Functions {
			dumpFunction(w, &mod.Functions[i])
		}
	})
}

func dumpScript(w *writer, script *ast.Script) {
	w.line("script")

	w.nested(func() {
		for _, imp := range script.Imports {
			w.line("import %s.%s", imp.Ident.Address, imp.Ident.Name)
		}

		dumpFunction(w, &script.Main)
	})
}

func dumpStruct(w *writer, sd *ast.StructDefinition) {
	abilities := ""

	for _, a := range sd.Abilities.List() {
		abilities += " " + a.String()
	}

	w.line("struct %s%s", sd.Name, abilities)

	w.nested(func() {
		for _, f := range sd.Fields {
			w.line("%s: %s", f.Field, dumpType(f.Type))
		}
	})
}

func dumpFunction(w *writer, fn *ast.Function) {
	w.line("fun %s (%s) %s", fn.Name, fn.Visibility, dumpParams(fn.Args))

	w.nested(func() {
		for _, b := range fn.Body {
			w.line("%s:", b.Label)

			w.nested(func() {
				for _, s := range b.Statements {
					w.line("%T", s)
				}
			})
		}
	})
}

func dumpParams(params []ast.Param) string {
	s := ""

	for i, p := range params {
		if i > 0 {
			s += ", "
		}

		s += p.Var.String() + ": " + dumpType(p.Type)
	}

	return s
}

func dumpType(t ast.Type) string {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		return v.Kind.String()
	case *ast.VectorType:
		return "vector<" + dumpType(v.Elem) + ">"
	case *ast.StructType:
		s := v.Name.String()
		if !v.Module.IsEmpty() {
			s = v.Module.String() + "." + s
		}

		if len(v.Actuals) > 0 {
			s += "<"

			for i, a := range v.Actuals {
				if i > 0 {
					s += ", "
				}

				s += dumpType(a)
			}

			s += ">"
		}

		return s
	case *ast.ReferenceType:
		if v.Mutable {
			return "&mut " + dumpType(v.Inner)
		}

		return "&" + dumpType(v.Inner)
	case *ast.TypeParameterType:
		return v.Var.String()
	default:
		return "?type"
	}
}
