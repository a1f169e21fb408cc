// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

// moveparse parses a single Move IR source file and prints its syntax
// tree, or reports a parse error with its source location.
//
// Usage:
//
//	moveparse [flags] <file.mvir>
//	  -script   Parse the file as a transaction script; without it the
//	            file may hold either a script or a module
//	  -help     Show this help message
//
// Examples:
//
//	moveparse M.mvir
//	moveparse -script main.mvir
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golangee/movesyntax/ast"
	"github.com/golangee/movesyntax/astdump"
	"github.com/golangee/movesyntax/parser"
	"github.com/golangee/movesyntax/token"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("moveparse", flag.ContinueOnError)
	asScript := fs.Bool("script", false, "parse the file as a transaction script")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: moveparse [flags] <file.mvir>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	path := fs.Arg(0)

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "moveparse: %v\n", err)
		return 1
	}

	name := filepath.Base(path)

	unit, err := parseUnit(name, string(src), *asScript)
	if err != nil {
		reportError(path, err)
		return 1
	}

	if err := astdump.Dump(os.Stdout, unit); err != nil {
		fmt.Fprintf(os.Stderr, "moveparse: %v\n", err)
		return 1
	}

	return 0
}

func parseUnit(name, content string, asScript bool) (*ast.ScriptOrModule, error) {
	if asScript {
		script, err := parser.ParseScriptString(name, content)
		if err != nil {
			return nil, err
		}

		return &ast.ScriptOrModule{Script: script}, nil
	}

	return parser.ParseScriptOrModuleString(name, content)
}

func reportError(path string, err error) {
	var tokErr *token.Error
	if asTokenError(err, &tokErr) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, tokErr.Error())

		return
	}

	fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
}

func asTokenError(err error, out **token.Error) bool {
	te, ok := err.(*token.Error)
	if !ok {
		return false
	}

	*out = te

	return true
}
